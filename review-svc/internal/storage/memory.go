package storage

import (
	"context"
	"sort"
	"sync"

	"restaurant-reviews/review-svc/internal/domain"
	"restaurant-reviews/review-svc/internal/service"
)

type memoryState struct {
	restaurants      map[int]domain.Restaurant
	reviews          map[int]domain.Review
	nextRestaurantID int
	nextReviewID     int
}

func (s *memoryState) clone() *memoryState {
	cp := &memoryState{
		restaurants:      make(map[int]domain.Restaurant, len(s.restaurants)),
		reviews:          make(map[int]domain.Review, len(s.reviews)),
		nextRestaurantID: s.nextRestaurantID,
		nextReviewID:     s.nextReviewID,
	}
	for id, rest := range s.restaurants {
		cp.restaurants[id] = rest
	}
	for id, review := range s.reviews {
		cp.reviews[id] = review
	}
	return cp
}

// MemoryStore keeps committed state in an immutable snapshot. Transactions
// are serialised and work on a private copy that replaces the snapshot on
// commit, so readers never wait for a writer and never see partial work.
type MemoryStore struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   *memoryState
}

func NewMemoryStore(seed ...domain.Restaurant) *MemoryStore {
	state := &memoryState{
		restaurants:      make(map[int]domain.Restaurant),
		reviews:          make(map[int]domain.Review),
		nextRestaurantID: 1,
		nextReviewID:     1,
	}
	for _, rest := range seed {
		state.restaurants[rest.ID] = rest
		if rest.ID >= state.nextRestaurantID {
			state.nextRestaurantID = rest.ID + 1
		}
	}
	return &MemoryStore{state: state}
}

func (s *MemoryStore) snapshot() *memoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.snapshot().clone()
	if err := fn(&memoryTx{state: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	state := s.snapshot()
	restaurants := make([]domain.Restaurant, 0, len(state.restaurants))
	for _, rest := range state.restaurants {
		restaurants = append(restaurants, rest)
	}
	sort.Slice(restaurants, func(i, j int) bool { return restaurants[i].ID < restaurants[j].ID })
	return restaurants, nil
}

func (s *MemoryStore) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, ok := s.snapshot().restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rest, nil
}

func (s *MemoryStore) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.filterReviews(func(domain.Review) bool { return true }), nil
}

func (s *MemoryStore) ListRestaurantReviews(ctx context.Context, restaurantID int) ([]domain.Review, error) {
	return s.filterReviews(func(review domain.Review) bool { return review.RestaurantID == restaurantID }), nil
}

func (s *MemoryStore) filterReviews(keep func(domain.Review) bool) []domain.Review {
	var reviews []domain.Review
	for _, review := range s.snapshot().reviews {
		if keep(review) {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedDate.Equal(reviews[j].CreatedDate) {
			return reviews[i].CreatedDate.After(reviews[j].CreatedDate)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews
}

type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, ok := t.state.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rest, nil
}

func (t *memoryTx) ExistsRestaurant(ctx context.Context, id int) (bool, error) {
	_, ok := t.state.restaurants[id]
	return ok, nil
}

func (t *memoryTx) InsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.ID = t.state.nextRestaurantID
	rest.Version = 1
	t.state.nextRestaurantID++
	t.state.restaurants[rest.ID] = *rest
	return nil
}

func (t *memoryTx) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant, expectedVersion int) (bool, error) {
	stored, ok := t.state.restaurants[rest.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	stored.Name = rest.Name
	stored.Location = rest.Location
	stored.CuisineType = rest.CuisineType
	stored.Version++
	t.state.restaurants[rest.ID] = stored
	rest.Version = stored.Version
	return true, nil
}

func (t *memoryTx) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	if _, ok := t.state.restaurants[id]; !ok {
		return 0, nil
	}
	delete(t.state.restaurants, id)
	return 1, nil
}

func (t *memoryTx) GetReview(ctx context.Context, id int) (*domain.Review, error) {
	review, ok := t.state.reviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &review, nil
}

func (t *memoryTx) ExistsReview(ctx context.Context, id int) (bool, error) {
	_, ok := t.state.reviews[id]
	return ok, nil
}

func (t *memoryTx) InsertReview(ctx context.Context, review *domain.Review) error {
	review.ID = t.state.nextReviewID
	review.Version = 1
	t.state.nextReviewID++
	t.state.reviews[review.ID] = *review
	return nil
}

func (t *memoryTx) UpdateReview(ctx context.Context, review *domain.Review, expectedVersion int) (bool, error) {
	stored, ok := t.state.reviews[review.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.Version++
	t.state.reviews[review.ID] = stored
	review.Version = stored.Version
	return true, nil
}

func (t *memoryTx) DeleteReview(ctx context.Context, id int) (int64, error) {
	if _, ok := t.state.reviews[id]; !ok {
		return 0, nil
	}
	delete(t.state.reviews, id)
	return 1, nil
}

func (t *memoryTx) DeleteReviewsByRestaurant(ctx context.Context, restaurantID int) (int64, error) {
	return t.deleteReviewsWhere(func(review domain.Review) bool { return review.RestaurantID == restaurantID }), nil
}

func (t *memoryTx) DeleteReviewsByUser(ctx context.Context, userID string) (int64, error) {
	return t.deleteReviewsWhere(func(review domain.Review) bool { return review.UserID == userID }), nil
}

func (t *memoryTx) deleteReviewsWhere(match func(domain.Review) bool) int64 {
	var removed int64
	for id, review := range t.state.reviews {
		if match(review) {
			delete(t.state.reviews, id)
			removed++
		}
	}
	return removed
}

var (
	_ service.Store = (*MemoryStore)(nil)
	_ service.Store = (*PostgresRepository)(nil)
)
