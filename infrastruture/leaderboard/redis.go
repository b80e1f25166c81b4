package leaderboard

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockSuffix = ":record_lock"

// RedisLeaderboard keeps best step counts in Redis sorted sets with TTL support.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client and TTL.
// Boards expire ttlSeconds after their first score.
func NewRedisLeaderboard(client *redis.Client, ttlSeconds int) (i.Leaderboard, error) {
	if client == nil {
		return nil, errors.New("leaderboard: nil redis client")
	}
	board := &RedisLeaderboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record stores steps for member unless the member already holds an equal or lower count.
// The read and the write happen under a per-board lock.
func (rl *RedisLeaderboard) Record(ctx context.Context, board, member string, steps int) (bool, error) {
	mutex := rl.locker.NewMutex(board + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	best, err := rl.client.ZScore(ctx, board, member).Result()
	switch {
	case err == nil && best <= float64(steps):
		return false, nil
	case err != nil && !errors.Is(err, redis.Nil):
		return false, err
	}

	if err := rl.client.ZAdd(ctx, board, redis.Z{Score: float64(steps), Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	ttl, err := rl.client.TTL(ctx, board).Result()
	if err == nil && ttl == -1 && rl.ttl > 0 {
		_ = rl.client.Expire(ctx, board, rl.ttl).Err()
	}

	return true, nil
}

// Top returns up to n members with the fewest steps.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, n int64) ([]dmn.Score, error) {
	if n <= 0 {
		return []dmn.Score{}, nil
	}
	entries, err := rl.client.ZRangeWithScores(ctx, board, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]dmn.Score, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, dmn.Score{Member: member, Steps: int(e.Score)})
	}
	return scores, nil
}
