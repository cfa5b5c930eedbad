package domain

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Actor is the authenticated identity behind a request. A nil *Actor means
// the request is anonymous.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	CuisineType string    `json:"cuisine_type"`
	CreatedDate time.Time `json:"created_date"`
	Version     int       `json:"version"`
}

type Review struct {
	ID           int       `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	RestaurantID int       `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	CreatedDate  time.Time `json:"created_date"`
	Version      int       `json:"version"`
}

type RestaurantFields struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Location    string `json:"location" validate:"required,min=2,max=100"`
	CuisineType string `json:"cuisine_type" validate:"required,min=2,max=50"`
}

// RestaurantUpdate carries the version token the caller loaded. Zero means
// the version read inside the same operation.
type RestaurantUpdate struct {
	RestaurantFields
	Version int `json:"version"`
}

// ReviewFields is the caller-supplied part of a review. UserID is accepted
// on the wire but never trusted.
type ReviewFields struct {
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	Comment      string `json:"comment" validate:"required,min=5,max=500"`
	RestaurantID int    `json:"restaurant_id"`
	UserID       string `json:"user_id,omitempty"`
}

type ReviewUpdate struct {
	ReviewFields
	Version int `json:"version"`
}

type RestaurantSummary struct {
	Restaurant
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

type RestaurantDetails struct {
	Restaurant
	Reviews            []Review    `json:"reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
