package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "restaurant-reviews/review-svc/internal/api/http"
	"restaurant-reviews/review-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signWith(t *testing.T, method jwt.SigningMethod, secret string, claims httpapi.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// signToken issues an HS256 token valid for an hour unless claims set their
// own expiry.
func signToken(t *testing.T, secret string, claims httpapi.Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	return signWith(t, jwt.SigningMethodHS256, secret, claims)
}

func TestAuthenticator_ParseActor(t *testing.T) {
	auth := httpapi.NewAuthenticator(testSecret)
	expiry := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name          string
		token         string
		expectedActor *domain.Actor
		expectError   bool
	}{
		{
			name:          "admin",
			token:         signToken(t, testSecret, httpapi.Claims{Sub: "root", Role: "Admin", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiry}}),
			expectedActor: &domain.Actor{ID: "root", Role: domain.RoleAdmin},
		},
		{
			name:          "unknown_role_is_user",
			token:         signToken(t, testSecret, httpapi.Claims{Sub: "alice", Role: "Moderator"}),
			expectedActor: &domain.Actor{ID: "alice", Role: domain.RoleUser},
		},
		{
			name:          "registered_subject",
			token:         signToken(t, testSecret, httpapi.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "bob"}}),
			expectedActor: &domain.Actor{ID: "bob", Role: domain.RoleUser},
		},
		{
			name:        "wrong_secret",
			token:       signToken(t, "other-secret", httpapi.Claims{Sub: "alice"}),
			expectError: true,
		},
		{
			name:        "expired",
			token:       signToken(t, testSecret, httpapi.Claims{Sub: "alice", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}}),
			expectError: true,
		},
		{
			name:        "missing_expiry",
			token:       signWith(t, jwt.SigningMethodHS256, testSecret, httpapi.Claims{Sub: "alice"}),
			expectError: true,
		},
		{
			name:        "other_hmac_algorithm",
			token:       signWith(t, jwt.SigningMethodHS512, testSecret, httpapi.Claims{Sub: "alice", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiry}}),
			expectError: true,
		},
		{
			name:        "no_subject",
			token:       signToken(t, testSecret, httpapi.Claims{Role: "Admin"}),
			expectError: true,
		},
		{
			name:        "garbage",
			token:       "not-a-token",
			expectError: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			actor, err := auth.ParseActor(testCase.token)
			if testCase.expectError {
				assert.Error(t, err)
				assert.Nil(t, actor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedActor, actor)
		})
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	auth := httpapi.NewAuthenticator(testSecret)

	var seen *domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpapi.ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(next)

	tests := []struct {
		name          string
		header        string
		expectedCode  int
		expectedActor *domain.Actor
	}{
		{
			name:         "anonymous",
			expectedCode: http.StatusOK,
		},
		{
			name:          "bearer",
			header:        "Bearer " + signToken(t, testSecret, httpapi.Claims{Sub: "alice", Role: "User"}),
			expectedCode:  http.StatusOK,
			expectedActor: &domain.Actor{ID: "alice", Role: domain.RoleUser},
		},
		{
			name:         "not_bearer",
			header:       "Basic YWxpY2U6cHc=",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "bad_signature",
			header:       "Bearer " + signToken(t, "other-secret", httpapi.Claims{Sub: "alice"}),
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/api/restaurants", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			assert.Equal(t, testCase.expectedActor, seen)
		})
	}
}
