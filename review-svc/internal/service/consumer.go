package service

import (
	"context"
	"encoding/json"
	"log"

	"restaurant-reviews/review-svc/internal/domain"
)

// IdentityConsumer reacts to account removals published by the identity
// provider.
type IdentityConsumer struct {
	Reader MessageReader
	Purger UserPurger
}

func NewIdentityConsumer(reader MessageReader, purger UserPurger) *IdentityConsumer {
	return &IdentityConsumer{
		Reader: reader,
		Purger: purger,
	}
}

// Start blocks until ctx is cancelled.
func (c *IdentityConsumer) Start(ctx context.Context) {
	log.Println("Starting identity events consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Identity events consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.IdentityMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if err := c.ProcessMessage(ctx, msg); err != nil {
			log.Printf("Error processing %s for user %s: %v", msg.Type, msg.UserID, err)
		}
	}
}

func (c *IdentityConsumer) ProcessMessage(ctx context.Context, msg domain.IdentityMessage) error {
	if msg.Type != domain.IdentityUserDeleted || msg.UserID == "" {
		return nil
	}
	_, err := c.Purger.CascadeDeleteUser(ctx, msg.UserID)
	return err
}
