package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"restaurant-reviews/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// LeaderboardKey ranks restaurants by average rating.
const LeaderboardKey = "leaderboard:restaurants"

func RatingKey(restaurantID int) string {
	return fmt.Sprintf("restaurant:%d:rating", restaurantID)
}

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(db *sql.DB, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
		ttl: ttl,
	}
}

// RefreshRestaurant recomputes one restaurant's rating from the review table
// and mirrors it to Redis.
func (s *Store) RefreshRestaurant(ctx context.Context, restaurantID int) error {
	snapshot := domain.RatingSnapshot{RestaurantID: restaurantID}
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating::numeric), 0)
		FROM reviews
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&snapshot.ReviewCount, &snapshot.AverageRating); err != nil {
		return err
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.writeSnapshot(ctx, pipe, snapshot)
		return nil
	})
	return err
}

func (s *Store) DropRestaurant(ctx context.Context, restaurantID int) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, RatingKey(restaurantID))
		pipe.ZRem(ctx, LeaderboardKey, strconv.Itoa(restaurantID))
		return nil
	})
	return err
}

// RebuildAll replaces the whole projection. Used when a purge touched an
// unknown set of restaurants.
func (s *Store) RebuildAll(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, COUNT(v.id), COALESCE(AVG(v.rating::numeric), 0)
		FROM restaurants r
		LEFT JOIN reviews v ON v.restaurant_id = r.id
		GROUP BY r.id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var snapshots []domain.RatingSnapshot
	for rows.Next() {
		var snapshot domain.RatingSnapshot
		if err := rows.Scan(&snapshot.RestaurantID, &snapshot.ReviewCount, &snapshot.AverageRating); err != nil {
			return err
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, LeaderboardKey)
		for _, snapshot := range snapshots {
			s.writeSnapshot(ctx, pipe, snapshot)
		}
		return nil
	})
	return err
}

func (s *Store) writeSnapshot(ctx context.Context, pipe redis.Pipeliner, snapshot domain.RatingSnapshot) {
	key := RatingKey(snapshot.RestaurantID)
	pipe.HSet(ctx, key, map[string]interface{}{
		"avg_rating":   snapshot.AverageRating,
		"review_count": snapshot.ReviewCount,
		"last_updated": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, s.ttl)

	member := strconv.Itoa(snapshot.RestaurantID)
	if snapshot.ReviewCount == 0 {
		pipe.ZRem(ctx, LeaderboardKey, member)
		return
	}
	pipe.ZAdd(ctx, LeaderboardKey, redis.Z{Score: snapshot.AverageRating, Member: member})
}
