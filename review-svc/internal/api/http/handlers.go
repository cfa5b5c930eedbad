package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"restaurant-reviews/review-svc/internal/domain"
	"restaurant-reviews/review-svc/internal/service"

	"github.com/gorilla/mux"
)

// SubmissionGuard deduplicates create requests carrying an Idempotency-Key.
type SubmissionGuard interface {
	MarkerKey(scope, actorID, key string) string
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Handler struct {
	Mutations service.CoordinatorInterface
	Catalog   service.CatalogInterface
	Users     service.UserPurger
	QR        service.QRGenerator
	Guard     SubmissionGuard
}

func NewHandler(mutations service.CoordinatorInterface, catalog service.CatalogInterface, users service.UserPurger, qr service.QRGenerator, guard SubmissionGuard) *Handler {
	return &Handler{
		Mutations: mutations,
		Catalog:   catalog,
		Users:     users,
		QR:        qr,
		Guard:     guard,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurantDetails).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.editRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/qrcode", h.getRestaurantQRCode).Methods("GET")

	r.HandleFunc("/api/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/reviews/{id}", h.editReview).Methods("PUT")
	r.HandleFunc("/api/reviews/{id}", h.deleteReview).Methods("DELETE")

	r.HandleFunc("/api/identity/users/{userId}", h.deleteUserReviews).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "review-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurantDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Catalog.GetRestaurantDetails(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var fields domain.RestaurantFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.withSubmissionGuard(w, r, "restaurant", func() (int, error) {
		return h.Mutations.CreateRestaurant(r.Context(), ActorFrom(r.Context()), fields)
	})
}

func (h *Handler) editRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var update domain.RestaurantUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Mutations.EditRestaurant(r.Context(), ActorFrom(r.Context()), id, update); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Mutations.DeleteRestaurant(r.Context(), ActorFrom(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRestaurantQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.Catalog.GetRestaurant(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	png, err := h.QR.Generate(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var fields domain.ReviewFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.withSubmissionGuard(w, r, "review", func() (int, error) {
		return h.Mutations.CreateReview(r.Context(), ActorFrom(r.Context()), fields)
	})
}

func (h *Handler) editReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var update domain.ReviewUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Mutations.EditReview(r.Context(), ActorFrom(r.Context()), id, update); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	restaurantID, err := h.Mutations.DeleteReview(r.Context(), ActorFrom(r.Context()), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"restaurant_id": restaurantID})
}

func (h *Handler) deleteUserReviews(w http.ResponseWriter, r *http.Request) {
	actor := ActorFrom(r.Context())
	if actor == nil {
		writeServiceError(w, domain.ErrUnauthorized)
		return
	}
	if !service.CanManageRestaurants(actor.Role) {
		writeServiceError(w, domain.ErrForbidden)
		return
	}

	removed, err := h.Users.CascadeDeleteUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted_reviews": removed})
}

// withSubmissionGuard runs create once per Idempotency-Key. A key whose
// create failed is released so the client can retry it.
func (h *Handler) withSubmissionGuard(w http.ResponseWriter, r *http.Request, scope string, create func() (int, error)) {
	key := r.Header.Get("Idempotency-Key")
	actor := ActorFrom(r.Context())
	if h.Guard == nil || key == "" || actor == nil {
		h.respondCreated(w, create)
		return
	}

	markerKey := h.Guard.MarkerKey(scope, actor.ID, key)
	claimed, err := h.Guard.Claim(r.Context(), markerKey)
	if err != nil {
		log.Printf("Warning: failed to claim submission marker %s: %v", markerKey, err)
		h.respondCreated(w, create)
		return
	}
	if !claimed {
		writeServiceError(w, domain.ErrDuplicateSubmission)
		return
	}

	if !h.respondCreated(w, create) {
		if err := h.Guard.Release(r.Context(), markerKey); err != nil {
			log.Printf("Warning: failed to release submission marker %s: %v", markerKey, err)
		}
	}
}

func (h *Handler) respondCreated(w http.ResponseWriter, create func() (int, error)) bool {
	id, err := create()
	if err != nil {
		writeServiceError(w, err)
		return false
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, domain.ErrNotFound.Error())
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  domain.ErrValidation.Error(),
			"fields": validation.Fields,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict), errors.Is(err, domain.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
