package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(mockDB, rdb, time.Hour), sqlMock, mr
}

func TestStore_RefreshRestaurant(t *testing.T) {
	store, sqlMock, mr := setupStore(t)

	sqlMock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(AVG").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(2, 3.0))

	require.NoError(t, store.RefreshRestaurant(context.Background(), 2))
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	assert.Equal(t, "3", mr.HGet(RatingKey(2), "avg_rating"))
	assert.Equal(t, "2", mr.HGet(RatingKey(2), "review_count"))
	assert.Equal(t, time.Hour, mr.TTL(RatingKey(2)))

	score, err := mr.ZScore(LeaderboardKey, "2")
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
}

func TestStore_RefreshRestaurant_NoReviewsLeavesLeaderboard(t *testing.T) {
	store, sqlMock, mr := setupStore(t)
	mr.ZAdd(LeaderboardKey, 4, "1")

	sqlMock.ExpectQuery("SELECT COUNT").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(0, 0.0))

	require.NoError(t, store.RefreshRestaurant(context.Background(), 1))

	members, _ := mr.ZMembers(LeaderboardKey)
	assert.NotContains(t, members, "1")
	assert.Equal(t, "0", mr.HGet(RatingKey(1), "review_count"))
}

func TestStore_RefreshRestaurant_QueryError(t *testing.T) {
	store, sqlMock, mr := setupStore(t)

	sqlMock.ExpectQuery("SELECT COUNT").
		WithArgs(1).
		WillReturnError(errors.New("db down"))

	assert.Error(t, store.RefreshRestaurant(context.Background(), 1))
	assert.False(t, mr.Exists(RatingKey(1)))
}

func TestStore_DropRestaurant(t *testing.T) {
	store, _, mr := setupStore(t)
	mr.HSet(RatingKey(1), "avg_rating", "4")
	mr.ZAdd(LeaderboardKey, 4, "1")
	mr.ZAdd(LeaderboardKey, 5, "2")

	require.NoError(t, store.DropRestaurant(context.Background(), 1))

	assert.False(t, mr.Exists(RatingKey(1)))
	members, err := mr.ZMembers(LeaderboardKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, members)
}

func TestStore_RebuildAll(t *testing.T) {
	store, sqlMock, mr := setupStore(t)
	mr.ZAdd(LeaderboardKey, 1, "99")

	sqlMock.ExpectQuery("SELECT r.id, COUNT\\(v.id\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "count", "avg"}).
			AddRow(1, 2, 4.5).
			AddRow(2, 0, 0.0))

	require.NoError(t, store.RebuildAll(context.Background()))
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	members, err := mr.ZMembers(LeaderboardKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, members)
	assert.Equal(t, "4.5", mr.HGet(RatingKey(1), "avg_rating"))
	assert.Equal(t, "0", mr.HGet(RatingKey(2), "review_count"))
}
