package domain

import "time"

const (
	EventRestaurantCreated = "restaurant_created"
	EventRestaurantUpdated = "restaurant_updated"
	EventRestaurantDeleted = "restaurant_deleted"
	EventReviewCreated     = "review_created"
	EventReviewUpdated     = "review_updated"
	EventReviewDeleted     = "review_deleted"
	EventUserReviewsPurged = "user_reviews_purged"

	IdentityUserDeleted = "user_deleted"
)

// Event is published to the reviews topic after a mutation commits.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID int       `json:"restaurant_id,omitempty"`
	ReviewID     int       `json:"review_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// IdentityMessage is produced by the identity provider.
type IdentityMessage struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
