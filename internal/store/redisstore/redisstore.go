// Package redisstore mirrors the leaderboard into Redis: a hash of records
// by ID, a sorted set in ranking order and a list in insertion order.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/expomatematica/quizmat/internal/leaderboard"
)

// DefaultKey is the key prefix used when none is configured.
const DefaultKey = "quizmat:leaderboard"

// rankFactor separates score from time in the sorted-set score. It must
// stay above leaderboard.MaxTimeSpentSeconds.
const rankFactor = 1_000_000

// appendScript stores a record once. It returns 1 when the record is new.
//
// KEYS[1] records hash, KEYS[2] ranking zset, KEYS[3] insertion list
// ARGV[1] id, ARGV[2] json, ARGV[3] rank score
var appendScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 1 then
  redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
  redis.call('RPUSH', KEYS[3], ARGV[1])
  return 1
end
return 0
`)

// Repo is a leaderboard.Repo backed by Redis.
type Repo struct {
	client *redis.Client
	key    string
}

var _ leaderboard.Repo = (*Repo)(nil)

// New returns a Repo using client with keys under prefix.
func New(client *redis.Client, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKey
	}
	return &Repo{client: client, key: prefix}
}

// Options configures Dial.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Dial connects to Redis and checks the connection.
func Dial(ctx context.Context, opts Options) (*Repo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return New(client, opts.Key), nil
}

// Close closes the underlying client.
func (r *Repo) Close() error {
	return r.client.Close()
}

func (r *Repo) recordsKey() string { return r.key + ":records" }
func (r *Repo) rankingKey() string { return r.key + ":ranking" }
func (r *Repo) logKey() string     { return r.key + ":log" }

// rankScore orders ascending by score descending, then time ascending.
// Exact ties fall back to member order, which for v7 IDs is creation order.
func rankScore(rec leaderboard.PlayerRecord) float64 {
	return float64(rec.TimeSpentSeconds - rec.Score*rankFactor)
}

// Append stores rec unless its ID is already present. Records that fail
// Validate are rejected because their rank score would be wrong.
func (r *Repo) Append(ctx context.Context, rec leaderboard.PlayerRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("append record %s: %w", rec.ID, err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	keys := []string{r.recordsKey(), r.rankingKey(), r.logKey()}
	if err := appendScript.Run(ctx, r.client, keys, rec.ID, data, rankScore(rec)).Err(); err != nil {
		return fmt.Errorf("append record %s: %w", rec.ID, err)
	}
	return nil
}

// All returns every record in insertion order.
func (r *Repo) All(ctx context.Context) ([]leaderboard.PlayerRecord, error) {
	ids, err := r.client.LRange(ctx, r.logKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list record ids: %w", err)
	}
	return r.load(ctx, ids)
}

// Top returns the n best records in ranked order.
func (r *Repo) Top(ctx context.Context, n int) ([]leaderboard.PlayerRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	ids, err := r.client.ZRange(ctx, r.rankingKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("range ranking: %w", err)
	}
	return r.load(ctx, ids)
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.client.HLen(ctx, r.recordsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *Repo) load(ctx context.Context, ids []string) ([]leaderboard.PlayerRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vals, err := r.client.HMGet(ctx, r.recordsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	out := make([]leaderboard.PlayerRecord, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Listed but missing from the hash; skip rather than fail the read.
			continue
		}
		var rec leaderboard.PlayerRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", ids[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}
