package service

import (
	"context"

	"restaurant-reviews/review-svc/internal/domain"
)

// Catalog serves the read paths. Ratings are derived from the reviews
// loaded for each call.
type Catalog struct {
	store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) ListRestaurants(ctx context.Context) ([]domain.RestaurantSummary, error) {
	restaurants, err := c.store.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := c.store.ListReviews(ctx)
	if err != nil {
		return nil, err
	}

	byRestaurant := make(map[int][]domain.Review, len(restaurants))
	for _, review := range reviews {
		byRestaurant[review.RestaurantID] = append(byRestaurant[review.RestaurantID], review)
	}

	summaries := make([]domain.RestaurantSummary, 0, len(restaurants))
	for _, rest := range restaurants {
		own := byRestaurant[rest.ID]
		summaries = append(summaries, domain.RestaurantSummary{
			Restaurant:    rest,
			ReviewCount:   len(own),
			AverageRating: AverageRating(own),
		})
	}
	return summaries, nil
}

func (c *Catalog) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return c.store.GetRestaurant(ctx, id)
}

func (c *Catalog) GetRestaurantDetails(ctx context.Context, id int) (*domain.RestaurantDetails, error) {
	rest, err := c.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := c.store.ListRestaurantReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &domain.RestaurantDetails{
		Restaurant:         *rest,
		Reviews:            reviews,
		AverageRating:      AverageRating(reviews),
		RatingDistribution: RatingDistribution(reviews),
	}, nil
}
