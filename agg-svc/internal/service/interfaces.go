package service

import (
	"context"

	"restaurant-reviews/agg-svc/internal/domain"
	"restaurant-reviews/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RefreshRestaurant(ctx context.Context, restaurantID int) error
	DropRestaurant(ctx context.Context, restaurantID int) error
	RebuildAll(ctx context.Context) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.ReviewEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
