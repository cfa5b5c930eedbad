package domain

import "time"

// Review service event types that affect projected ratings.
const (
	EventRestaurantCreated = "restaurant_created"
	EventRestaurantUpdated = "restaurant_updated"
	EventRestaurantDeleted = "restaurant_deleted"
	EventReviewCreated     = "review_created"
	EventReviewUpdated     = "review_updated"
	EventReviewDeleted     = "review_deleted"
	EventUserReviewsPurged = "user_reviews_purged"
)

type ReviewEvent struct {
	Type         string    `json:"type"`
	RestaurantID int       `json:"restaurant_id,omitempty"`
	ReviewID     int       `json:"review_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// RatingSnapshot is the projected rating state of one restaurant.
type RatingSnapshot struct {
	RestaurantID  int
	ReviewCount   int
	AverageRating float64
}
