package storage

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-reviews/review-svc/internal/domain"
	"restaurant-reviews/review-svc/internal/service"

	"github.com/lib/pq"
)

// SQLSTATE 23503
const foreignKeyViolation = pq.ErrorCode("23503")

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, location, cuisine_type, created_date, version
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.CuisineType, &rest.CreatedDate, &rest.Version); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return getRestaurant(ctx, r.DB, id)
}

func (r *PostgresRepository) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return queryReviews(ctx, r.DB, `
		SELECT id, rating, comment, restaurant_id, user_id, created_date, version
		FROM reviews
		ORDER BY created_date DESC, id DESC`)
}

func (r *PostgresRepository) ListRestaurantReviews(ctx context.Context, restaurantID int) ([]domain.Review, error) {
	return queryReviews(ctx, r.DB, `
		SELECT id, rating, comment, restaurant_id, user_id, created_date, version
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_date DESC, id DESC`, restaurantID)
}

type postgresTx struct {
	q queryer
}

func (t *postgresTx) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return getRestaurant(ctx, t.q, id)
}

func (t *postgresTx) ExistsRestaurant(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := t.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (t *postgresTx) InsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return t.q.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, location, cuisine_type, created_date, version)
		VALUES ($1, $2, $3, $4, 1)
		RETURNING id, version`,
		rest.Name, rest.Location, rest.CuisineType, rest.CreatedDate).
		Scan(&rest.ID, &rest.Version)
}

func (t *postgresTx) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant, expectedVersion int) (bool, error) {
	err := t.q.QueryRowContext(ctx, `
		UPDATE restaurants
		SET name = $1, location = $2, cuisine_type = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`,
		rest.Name, rest.Location, rest.CuisineType, rest.ID, expectedVersion).
		Scan(&rest.Version)
	return matched(err)
}

func (t *postgresTx) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	return execAffected(ctx, t.q, `DELETE FROM restaurants WHERE id = $1`, id)
}

func (t *postgresTx) GetReview(ctx context.Context, id int) (*domain.Review, error) {
	var review domain.Review
	err := t.q.QueryRowContext(ctx, `
		SELECT id, rating, comment, restaurant_id, user_id, created_date, version
		FROM reviews
		WHERE id = $1`, id).
		Scan(&review.ID, &review.Rating, &review.Comment, &review.RestaurantID, &review.UserID, &review.CreatedDate, &review.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (t *postgresTx) ExistsReview(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := t.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// InsertReview reports a restaurant removed after the caller's existence
// check the same way as one that never existed.
func (t *postgresTx) InsertReview(ctx context.Context, review *domain.Review) error {
	err := t.q.QueryRowContext(ctx, `
		INSERT INTO reviews (rating, comment, restaurant_id, user_id, created_date, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id, version`,
		review.Rating, review.Comment, review.RestaurantID, review.UserID, review.CreatedDate).
		Scan(&review.ID, &review.Version)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		errs := &domain.ValidationError{}
		errs.Add("restaurant_id", "Invalid restaurant")
		return errs
	}
	return err
}

func (t *postgresTx) UpdateReview(ctx context.Context, review *domain.Review, expectedVersion int) (bool, error) {
	err := t.q.QueryRowContext(ctx, `
		UPDATE reviews
		SET rating = $1, comment = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`,
		review.Rating, review.Comment, review.ID, expectedVersion).
		Scan(&review.Version)
	return matched(err)
}

func (t *postgresTx) DeleteReview(ctx context.Context, id int) (int64, error) {
	return execAffected(ctx, t.q, `DELETE FROM reviews WHERE id = $1`, id)
}

func (t *postgresTx) DeleteReviewsByRestaurant(ctx context.Context, restaurantID int) (int64, error) {
	return execAffected(ctx, t.q, `DELETE FROM reviews WHERE restaurant_id = $1`, restaurantID)
}

func (t *postgresTx) DeleteReviewsByUser(ctx context.Context, userID string) (int64, error) {
	return execAffected(ctx, t.q, `DELETE FROM reviews WHERE user_id = $1`, userID)
}

func getRestaurant(ctx context.Context, q queryer, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := q.QueryRowContext(ctx, `
		SELECT id, name, location, cuisine_type, created_date, version
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Location, &rest.CuisineType, &rest.CreatedDate, &rest.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func queryReviews(ctx context.Context, q queryer, query string, args ...any) ([]domain.Review, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.Rating, &review.Comment, &review.RestaurantID, &review.UserID, &review.CreatedDate, &review.Version); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func execAffected(ctx context.Context, q queryer, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// matched turns the outcome of a version-checked UPDATE ... RETURNING into
// the Tx contract: no row means the id/version pair did not match.
func matched(err error) (bool, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
