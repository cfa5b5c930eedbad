package service

import (
	"context"
	"encoding/json"
	"log"

	"restaurant-reviews/agg-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Aggregation Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.ReviewEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			log.Printf("Error projecting %s for restaurant %d: %v", event.Type, event.RestaurantID, err)
		}
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.ReviewEvent) error {
	switch event.Type {
	case domain.EventReviewCreated, domain.EventReviewUpdated, domain.EventReviewDeleted,
		domain.EventRestaurantCreated, domain.EventRestaurantUpdated:
		if event.RestaurantID <= 0 {
			return nil
		}
		log.Printf("Refreshing rating: RestaurantID=%d, Event=%s", event.RestaurantID, event.Type)
		return c.Store.RefreshRestaurant(ctx, event.RestaurantID)
	case domain.EventRestaurantDeleted:
		return c.Store.DropRestaurant(ctx, event.RestaurantID)
	case domain.EventUserReviewsPurged:
		log.Printf("Rebuilding ratings after purge of user %s", event.UserID)
		return c.Store.RebuildAll(ctx)
	default:
		return nil
	}
}
