package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"restaurant-reviews/review-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token shape issued by the identity provider.
type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type actorKey struct{}

func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns nil for anonymous requests.
func ActorFrom(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorKey{}).(*domain.Actor)
	return actor
}

type Authenticator struct {
	Secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{Secret: []byte(secret)}
}

func (a *Authenticator) ParseActor(tokenStr string) (*domain.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject := claims.Sub
	if subject == "" {
		subject = claims.Subject
	}
	if subject == "" {
		return nil, errors.New("token has no subject")
	}

	role := domain.RoleUser
	if domain.Role(claims.Role) == domain.RoleAdmin {
		role = domain.RoleAdmin
	}
	return &domain.Actor{ID: subject, Role: role}, nil
}

// Middleware attaches the bearer token's actor to the request context.
// Requests without a token continue anonymously; a bad token is rejected.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		actor, err := a.ParseActor(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
