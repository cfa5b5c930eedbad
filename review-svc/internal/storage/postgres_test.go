package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"restaurant-reviews/review-svc/internal/domain"
	"restaurant-reviews/review-svc/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to install sqlmock-backed DB.
func setupPostgresMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresRepository(mockDB), mock
}

func TestPostgresRepository_InsertRestaurantCommits(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	rest := &domain.Restaurant{Name: "Golden Wok", Location: "Harbourside", CuisineType: "Chinese", CreatedDate: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO restaurants").
		WithArgs("Golden Wok", "Harbourside", "Chinese", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(3, 1))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(tx service.Tx) error {
		return tx.InsertRestaurant(context.Background(), rest)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rest.ID)
	assert.Equal(t, 1, rest.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_RollsBackOnError(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	failure := errors.New("abort")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(tx service.Tx) error { return failure })
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CascadeRollsBack(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	integrity := service.NewIntegrityManager(repo, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reviews WHERE restaurant_id").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM restaurants").
		WithArgs(1).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(tx service.Tx) error {
		_, err := integrity.CascadeDeleteRestaurant(context.Background(), tx, 1)
		return err
	})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CascadeCommits(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	integrity := service.NewIntegrityManager(repo, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reviews WHERE restaurant_id").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM restaurants").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var removed int64
	err := repo.WithinTx(context.Background(), func(tx service.Tx) error {
		var err error
		removed, err = integrity.CascadeDeleteRestaurant(context.Background(), tx, 2)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTx_UpdateReviewVersionCheck(t *testing.T) {
	tests := []struct {
		name          string
		rows          *sqlmock.Rows
		queryErr      error
		expectedMatch bool
		expectedError error
	}{
		{
			name:          "matched",
			rows:          sqlmock.NewRows([]string{"version"}).AddRow(3),
			expectedMatch: true,
		},
		{
			name:          "stale_or_missing",
			rows:          sqlmock.NewRows([]string{"version"}),
			expectedMatch: false,
		},
		{
			name:          "store_failure",
			queryErr:      sql.ErrConnDone,
			expectedError: sql.ErrConnDone,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			expectation := mock.ExpectQuery("UPDATE reviews").WithArgs(4, "Still good", 9, 2)
			if testCase.queryErr != nil {
				expectation.WillReturnError(testCase.queryErr)
			} else {
				expectation.WillReturnRows(testCase.rows)
			}

			review := &domain.Review{ID: 9, Rating: 4, Comment: "Still good", Version: 2}
			ok, err := (&postgresTx{q: mockDB}).UpdateReview(context.Background(), review, 2)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedMatch, ok)
			if ok {
				assert.Equal(t, 3, review.Version)
			}
		})
	}
}

func TestPostgresTx_GetReviewNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT id, rating, comment").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rating", "comment", "restaurant_id", "user_id", "created_date", "version"}))

	review, err := (&postgresTx{q: mockDB}).GetReview(context.Background(), 5)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_ListRestaurants(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	created := time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, name, location, cuisine_type").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "cuisine_type", "created_date", "version"}).
			AddRow(1, "The Italian Kitchen", "Downtown", "Italian", created, 1).
			AddRow(2, "Spice Route", "Midtown", "Indian", created, 4))

	restaurants, err := repo.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Spice Route", restaurants[1].Name)
	assert.Equal(t, 4, restaurants[1].Version)
}

func TestPostgresRepository_GetRestaurantDBError(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery("SELECT id, name, location, cuisine_type").
		WithArgs(1).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.GetRestaurant(context.Background(), 1)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS restaurants").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reviews").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reviews_restaurant_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reviews_user_id").WillReturnResult(sqlmock.NewResult(0, 0))
	for _, rest := range SeedRestaurants() {
		mock.ExpectExec("INSERT INTO restaurants").
			WithArgs(rest.ID, rest.Name, rest.Location, rest.CuisineType, rest.CreatedDate, rest.Version).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("SELECT setval").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateReviewRestaurantVanished(t *testing.T) {
	repo, mock := setupPostgresMock(t)
	coordinator := service.NewCoordinator(repo, service.NewIntegrityManager(repo, nil), nil)
	actor := &domain.Actor{ID: "alice", Role: domain.RoleUser}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(4, "Lovely pasta", 1, "alice", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23503", Message: "insert or update on table \"reviews\" violates foreign key constraint"})
	mock.ExpectRollback()

	id, err := coordinator.CreateReview(context.Background(), actor, domain.ReviewFields{Rating: 4, Comment: "Lovely pasta", RestaurantID: 1})
	assert.Zero(t, id)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, map[string]string{"restaurant_id": "Invalid restaurant"}, validation.Fields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTx_InsertReviewOtherErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	uniqueViolation := &pq.Error{Code: "23505"}
	mock.ExpectQuery("INSERT INTO reviews").WillReturnError(uniqueViolation)

	err = (&postgresTx{q: mockDB}).InsertReview(context.Background(), &domain.Review{Rating: 3, Comment: "Fine food", RestaurantID: 2, UserID: "bob"})
	assert.ErrorIs(t, err, uniqueViolation)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
