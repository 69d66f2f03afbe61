package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// quotaTTL keeps a monthly counter around a little past its month.
const quotaTTL = 62 * 24 * time.Hour

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisStore keeps each record as a JSON value under calc:{id} and indexes
// ids per owner in the set calcs:{owner}.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store on client. prefix namespaces every key.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) recordKey(id uuid.UUID) string {
	return s.prefix + "calc:" + id.String()
}

func (s *RedisStore) ownerKey(owner string) string {
	return s.prefix + "calcs:" + owner
}

func (s *RedisStore) Save(ctx context.Context, rec Record) (Record, error) {
	rec, err := prepare(rec, s.now())
	if err != nil {
		return Record{}, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode record: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(rec.ID), data, 0)
		pipe.SAdd(ctx, s.ownerKey(rec.Owner), rec.ID.String())
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to save record: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Get(ctx context.Context, owner string, id uuid.UUID) (Record, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	if rec.Owner != owner {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns the owner's records, newest first. Index entries whose
// record has vanished are skipped.
func (s *RedisStore) List(ctx context.Context, owner string) ([]Record, error) {
	ids, err := s.client.SMembers(ctx, s.ownerKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	out := []Record{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + "calc:" + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		if rec.Owner == owner {
			out = append(out, rec)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.recordKey(id))
		pipe.SRem(ctx, s.ownerKey(owner), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// RedisQuota counts usage with INCR on quota:{user}:{YYYY-MM}.
type RedisQuota struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisQuota creates a tracker on client.
func NewRedisQuota(client redis.UniversalClient, prefix string) *RedisQuota {
	return &RedisQuota{client: client, prefix: prefix}
}

func (q *RedisQuota) Usage(ctx context.Context, user, month string) (int, error) {
	n, err := q.client.Get(ctx, q.prefix+quotaKey(user, month)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}
	return n, nil
}

func (q *RedisQuota) Consume(ctx context.Context, user string, plan Plan, month string) (int, error) {
	key := q.prefix + quotaKey(user, month)
	var incr *redis.IntCmd
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, quotaTTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	n := incr.Val()
	if limit := plan.Limit(); limit != Unlimited && n > int64(limit) {
		// give the slot back so Usage keeps reporting the real count
		if err := q.client.Decr(ctx, key).Err(); err != nil {
			return 0, fmt.Errorf("failed to release usage: %w", err)
		}
		return int(n - 1), ErrQuotaExceeded
	}
	return int(n), nil
}

func (q *RedisQuota) Release(ctx context.Context, user, month string) error {
	key := q.prefix + quotaKey(user, month)
	n, err := q.client.Decr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to release usage: %w", err)
	}
	if n < 0 {
		if err := q.client.Set(ctx, key, 0, quotaTTL).Err(); err != nil {
			return fmt.Errorf("failed to release usage: %w", err)
		}
	}
	return nil
}
