package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"restaurant-reviews/review-svc/internal/domain"
)

// IntegrityManager removes dependent reviews together with their parent.
type IntegrityManager struct {
	store     Store
	publisher EventPublisher
}

func NewIntegrityManager(store Store, publisher EventPublisher) *IntegrityManager {
	return &IntegrityManager{
		store:     store,
		publisher: publisher,
	}
}

// CascadeDeleteRestaurant deletes the restaurant's reviews and then the
// restaurant inside tx. It returns the number of reviews removed. Any
// error must be returned from the enclosing scope so nothing is committed.
func (m *IntegrityManager) CascadeDeleteRestaurant(ctx context.Context, tx Tx, restaurantID int) (int64, error) {
	removed, err := tx.DeleteReviewsByRestaurant(ctx, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews of restaurant %d: %w", restaurantID, err)
	}

	rows, err := tx.DeleteRestaurant(ctx, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete restaurant %d: %w", restaurantID, err)
	}
	if rows == 0 {
		return 0, domain.ErrNotFound
	}
	return removed, nil
}

// CascadeDeleteUser deletes every review authored by userID in its own
// transaction.
func (m *IntegrityManager) CascadeDeleteUser(ctx context.Context, userID string) (int64, error) {
	var removed int64
	err := m.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		removed, err = tx.DeleteReviewsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete reviews of user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Removed %d reviews of deleted user %s", removed, userID)
	if m.publisher != nil {
		event := domain.Event{Type: domain.EventUserReviewsPurged, UserID: userID, Timestamp: time.Now().UTC()}
		if err := m.publisher.Publish(ctx, event); err != nil {
			log.Printf("Warning: failed to publish %s event: %v", event.Type, err)
		}
	}
	return removed, nil
}
