package service

import (
	"context"
	"log"
	"time"

	"restaurant-reviews/review-svc/internal/domain"
)

// Coordinator runs every restaurant and review mutation as one transaction
// scope: authorize, validate, write with a version check, then publish.
type Coordinator struct {
	store     Store
	integrity *IntegrityManager
	publisher EventPublisher
	now       func() time.Time
}

func NewCoordinator(store Store, integrity *IntegrityManager, publisher EventPublisher) *Coordinator {
	return &Coordinator{
		store:     store,
		integrity: integrity,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for creation timestamps.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

func requireRestaurantManager(actor *domain.Actor) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !CanManageRestaurants(actor.Role) {
		return domain.ErrForbidden
	}
	return nil
}

func (c *Coordinator) CreateRestaurant(ctx context.Context, actor *domain.Actor, fields domain.RestaurantFields) (int, error) {
	if err := requireRestaurantManager(actor); err != nil {
		return 0, err
	}
	fields, err := normalizeRestaurant(fields)
	if err != nil {
		return 0, err
	}

	rest := &domain.Restaurant{
		Name:        fields.Name,
		Location:    fields.Location,
		CuisineType: fields.CuisineType,
		CreatedDate: c.now().UTC(),
	}
	if err := c.store.WithinTx(ctx, func(tx Tx) error {
		return tx.InsertRestaurant(ctx, rest)
	}); err != nil {
		return 0, err
	}

	log.Printf("Restaurant %d created by %s", rest.ID, actor.ID)
	c.publish(ctx, domain.Event{Type: domain.EventRestaurantCreated, RestaurantID: rest.ID, UserID: actor.ID})
	return rest.ID, nil
}

func (c *Coordinator) EditRestaurant(ctx context.Context, actor *domain.Actor, id int, update domain.RestaurantUpdate) error {
	if err := requireRestaurantManager(actor); err != nil {
		return err
	}

	err := c.store.WithinTx(ctx, func(tx Tx) error {
		current, err := tx.GetRestaurant(ctx, id)
		if err != nil {
			return err
		}
		fields, err := normalizeRestaurant(update.RestaurantFields)
		if err != nil {
			return err
		}

		next := *current
		next.Name = fields.Name
		next.Location = fields.Location
		next.CuisineType = fields.CuisineType

		ok, err := tx.UpdateRestaurant(ctx, &next, expectedVersion(update.Version, current.Version))
		if err != nil {
			return err
		}
		if !ok {
			return resolveMiss(tx.ExistsRestaurant(ctx, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, domain.Event{Type: domain.EventRestaurantUpdated, RestaurantID: id, UserID: actor.ID})
	return nil
}

func (c *Coordinator) DeleteRestaurant(ctx context.Context, actor *domain.Actor, id int) error {
	if err := requireRestaurantManager(actor); err != nil {
		return err
	}

	var removed int64
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		exists, err := tx.ExistsRestaurant(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		removed, err = c.integrity.CascadeDeleteRestaurant(ctx, tx, id)
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("Restaurant %d deleted by %s together with %d reviews", id, actor.ID, removed)
	c.publish(ctx, domain.Event{Type: domain.EventRestaurantDeleted, RestaurantID: id, UserID: actor.ID})
	return nil
}

func (c *Coordinator) CreateReview(ctx context.Context, actor *domain.Actor, fields domain.ReviewFields) (int, error) {
	if actor == nil {
		return 0, domain.ErrUnauthorized
	}

	errs := &domain.ValidationError{}
	fields, err := normalizeReview(errs, fields)
	if err != nil {
		return 0, err
	}
	review := &domain.Review{
		Rating:       fields.Rating,
		Comment:      fields.Comment,
		RestaurantID: fields.RestaurantID,
		UserID:       actor.ID,
		CreatedDate:  c.now().UTC(),
	}

	err = c.store.WithinTx(ctx, func(tx Tx) error {
		exists := false
		if fields.RestaurantID > 0 {
			var err error
			if exists, err = tx.ExistsRestaurant(ctx, fields.RestaurantID); err != nil {
				return err
			}
		}
		if !exists {
			errs.Add("restaurant_id", "Invalid restaurant")
		}
		if err := errs.OrNil(); err != nil {
			return err
		}
		return tx.InsertReview(ctx, review)
	})
	if err != nil {
		return 0, err
	}

	c.publish(ctx, domain.Event{
		Type:         domain.EventReviewCreated,
		RestaurantID: review.RestaurantID,
		ReviewID:     review.ID,
		UserID:       review.UserID,
		Rating:       review.Rating,
	})
	return review.ID, nil
}

func (c *Coordinator) EditReview(ctx context.Context, actor *domain.Actor, id int, update domain.ReviewUpdate) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	var next domain.Review
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		current, err := tx.GetReview(ctx, id)
		if err != nil {
			return err
		}
		if !CanManageReview(*actor, *current) {
			return domain.ErrForbidden
		}

		errs := &domain.ValidationError{}
		content, err := normalizeReview(errs, update.ReviewFields)
		if err != nil {
			return err
		}
		if err := errs.OrNil(); err != nil {
			return err
		}

		// Author and restaurant stay as stored whatever the caller sent.
		next = *current
		next.Rating = update.Rating
		next.Comment = content.Comment

		ok, err := tx.UpdateReview(ctx, &next, expectedVersion(update.Version, current.Version))
		if err != nil {
			return err
		}
		if !ok {
			return resolveMiss(tx.ExistsReview(ctx, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, domain.Event{
		Type:         domain.EventReviewUpdated,
		RestaurantID: next.RestaurantID,
		ReviewID:     id,
		UserID:       actor.ID,
		Rating:       next.Rating,
	})
	return nil
}

// DeleteReview returns the restaurant the review belonged to.
func (c *Coordinator) DeleteReview(ctx context.Context, actor *domain.Actor, id int) (int, error) {
	if actor == nil {
		return 0, domain.ErrUnauthorized
	}

	var restaurantID int
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		current, err := tx.GetReview(ctx, id)
		if err != nil {
			return err
		}
		if !CanManageReview(*actor, *current) {
			return domain.ErrForbidden
		}

		rows, err := tx.DeleteReview(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		restaurantID = current.RestaurantID
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.publish(ctx, domain.Event{Type: domain.EventReviewDeleted, RestaurantID: restaurantID, ReviewID: id, UserID: actor.ID})
	return restaurantID, nil
}

func (c *Coordinator) publish(ctx context.Context, event domain.Event) {
	if c.publisher == nil {
		return
	}
	event.Timestamp = c.now().UTC()
	if err := c.publisher.Publish(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event.Type, err)
	}
}

func expectedVersion(supplied, loaded int) int {
	if supplied > 0 {
		return supplied
	}
	return loaded
}

// resolveMiss classifies a version-checked write that matched no row.
func resolveMiss(exists bool, err error) error {
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConcurrencyConflict
}
