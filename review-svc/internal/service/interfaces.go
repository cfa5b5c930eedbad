package service

import (
	"context"

	"restaurant-reviews/review-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Store opens transaction scopes and serves the read paths. Everything a
// mutation touches goes through the Tx handed to fn; returning an error
// from fn rolls the whole scope back.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
	ListRestaurantReviews(ctx context.Context, restaurantID int) ([]domain.Review, error)
}

// Tx is the transactional view of the entity store. Get* return
// domain.ErrNotFound for absent ids. Update* report false when no row
// matched id and expectedVersion.
type Tx interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ExistsRestaurant(ctx context.Context, id int) (bool, error)
	InsertRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant, expectedVersion int) (bool, error)
	DeleteRestaurant(ctx context.Context, id int) (int64, error)

	GetReview(ctx context.Context, id int) (*domain.Review, error)
	ExistsReview(ctx context.Context, id int) (bool, error)
	InsertReview(ctx context.Context, review *domain.Review) error
	UpdateReview(ctx context.Context, review *domain.Review, expectedVersion int) (bool, error)
	DeleteReview(ctx context.Context, id int) (int64, error)
	DeleteReviewsByRestaurant(ctx context.Context, restaurantID int) (int64, error)
	DeleteReviewsByUser(ctx context.Context, userID string) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type CoordinatorInterface interface {
	CreateRestaurant(ctx context.Context, actor *domain.Actor, fields domain.RestaurantFields) (int, error)
	EditRestaurant(ctx context.Context, actor *domain.Actor, id int, update domain.RestaurantUpdate) error
	DeleteRestaurant(ctx context.Context, actor *domain.Actor, id int) error
	CreateReview(ctx context.Context, actor *domain.Actor, fields domain.ReviewFields) (int, error)
	EditReview(ctx context.Context, actor *domain.Actor, id int, update domain.ReviewUpdate) error
	DeleteReview(ctx context.Context, actor *domain.Actor, id int) (int, error)
}

type CatalogInterface interface {
	ListRestaurants(ctx context.Context) ([]domain.RestaurantSummary, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	GetRestaurantDetails(ctx context.Context, id int) (*domain.RestaurantDetails, error)
}

// UserPurger is the callback surface the identity provider drives when an
// account is removed.
type UserPurger interface {
	CascadeDeleteUser(ctx context.Context, userID string) (int64, error)
}

type QRGenerator interface {
	Generate(restaurantID int) ([]byte, error)
}

var (
	_ CoordinatorInterface = (*Coordinator)(nil)
	_ CatalogInterface     = (*Catalog)(nil)
	_ UserPurger           = (*IntegrityManager)(nil)
	_ QRGenerator          = DefaultQRGenerator{}
)
