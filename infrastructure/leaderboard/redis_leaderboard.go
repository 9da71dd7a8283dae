package leaderboard

import (
	"context"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/service/i"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard ranks escape times in a Redis sorted set, lowest time
// first. Submissions are guarded by a distributed lock so the
// check-and-improve step stays atomic across instances.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard over the given sorted
// set key.
func NewRedisLeaderboard(client *redis.Client, key string) (i.Leaderboard, error) {
	board := &RedisLeaderboard{
		client: client,
		key:    key,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// SubmitTime records an escape time for a player, keeping only their
// fastest. Returns whether the ranking changed.
func (rl *RedisLeaderboard) SubmitTime(ctx context.Context, id uuid.UUID, millis int64) (bool, error) {
	mutex := rl.locker.NewMutex(rl.key + ":submit_lock")
	if err := mutex.Lock(); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	current, err := rl.client.ZScore(ctx, rl.key, id.String()).Result()
	if err == nil && int64(current) <= millis {
		return false, nil
	}
	if err != nil && err != redis.Nil {
		return false, err
	}

	_, err = rl.client.ZAdd(ctx, rl.key, redis.Z{Score: float64(millis), Member: id.String()}).Result()
	if err != nil {
		return false, err
	}
	return true, nil
}

// Top returns the n fastest entries in rank order.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	members, err := rl.client.ZRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		raw, ok := m.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		entries = append(entries, i.LeaderboardEntry{
			PlayerID:   id,
			TimeMillis: int64(m.Score),
		})
	}
	return entries, nil
}
