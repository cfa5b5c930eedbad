package service

import "restaurant-reviews/review-svc/internal/domain"

// CanManageRestaurants reports whether role may create, edit or delete
// restaurants.
func CanManageRestaurants(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CanManageReview reports whether actor may edit or delete review: its
// author and any admin may.
func CanManageReview(actor domain.Actor, review domain.Review) bool {
	return actor.ID == review.UserID || actor.Role == domain.RoleAdmin
}
