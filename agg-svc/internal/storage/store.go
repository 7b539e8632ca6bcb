package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ctx context.Context
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
		ctx: context.Background(),
	}
}

// RecordSale books the order total into the hourly sales hash for the day.
// A week of history is enough for the reporting screens.
func (s *Store) RecordSale(total float64, at time.Time) error {
	key := fmt.Sprintf("sales:hourly:%s", at.Format("2006-01-02"))
	hour := strconv.Itoa(at.Hour())

	if err := s.rdb.HIncrByFloat(s.ctx, key, hour, total).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(s.ctx, key, 7*24*time.Hour).Err()
}

// BumpPopularity keeps the durable per-product order counter in postgres
// and a daily leaderboard in redis.
func (s *Store) BumpPopularity(productID, quantity int, at time.Time) error {
	if _, err := s.db.Exec(
		"UPDATE products SET times_ordered = times_ordered + $1 WHERE id = $2",
		quantity, productID); err != nil {
		return err
	}

	dailyKey := fmt.Sprintf("popularity:daily:%s", at.Format("2006-01-02"))
	if err := s.rdb.ZIncrBy(s.ctx, dailyKey, float64(quantity), strconv.Itoa(productID)).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(s.ctx, dailyKey, 7*24*time.Hour).Err()
}
