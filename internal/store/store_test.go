package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(owner, name string) Record {
	return Record{
		Owner:  owner,
		Kind:   domain.KindMortgage,
		Name:   name,
		Input:  json.RawMessage(`{"propertyPrice":"250000"}`),
		Result: json.RawMessage(`{"monthlyPayment":"1001"}`),
	}
}

// testStore exercises the Store contract against any implementation.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	first, err := s.Save(ctx, sampleRecord("alice", "first"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := sampleRecord("alice", "second")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	second, err = s.Save(ctx, second)
	require.NoError(t, err)

	_, err = s.Save(ctx, sampleRecord("bob", "other"))
	require.NoError(t, err)

	got, err := s.Get(ctx, "alice", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.JSONEq(t, `{"monthlyPayment":"1001"}`, string(got.Result), "result is stored verbatim")

	_, err = s.Get(ctx, "bob", first.ID)
	assert.ErrorIs(t, err, ErrNotFound, "records are private to their owner")

	list, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name, "newest first")

	empty, err := s.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.ErrorIs(t, s.Delete(ctx, "bob", first.ID), ErrNotFound)
	require.NoError(t, s.Delete(ctx, "alice", first.ID))
	_, err = s.Get(ctx, "alice", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "alice", first.ID), ErrNotFound)

	list, err = s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.Save(ctx, sampleRecord("", "anonymous"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func testQuota(t *testing.T, q QuotaTracker) {
	ctx := context.Background()
	month := Month(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "2024-03", month)

	for i := 1; i <= 5; i++ {
		used, err := q.Consume(ctx, "carol", PlanFree, month)
		require.NoError(t, err)
		assert.Equal(t, i, used)
	}
	used, err := q.Consume(ctx, "carol", PlanFree, month)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 5, used)

	n, err := q.Usage(ctx, "carol", month)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "a refused calculation is not counted")

	n, err = q.Usage(ctx, "carol", "2024-04")
	require.NoError(t, err)
	assert.Zero(t, n, "each month starts at zero")

	used, err = q.Consume(ctx, "carol", PlanPro, month)
	require.NoError(t, err, "upgrading raises the limit")
	assert.Equal(t, 6, used)

	for i := 0; i < 60; i++ {
		_, err := q.Consume(ctx, "dave", PlanEnterprise, month)
		require.NoError(t, err)
	}

	require.NoError(t, q.Release(ctx, "carol", month))
	n, err = q.Usage(ctx, "carol", month)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "a released calculation is given back")

	require.NoError(t, q.Release(ctx, "erin", month))
	n, err = q.Usage(ctx, "erin", month)
	require.NoError(t, err)
	assert.Zero(t, n, "release never goes below zero")
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryQuota(t *testing.T) {
	testQuota(t, NewMemoryQuota())
}

func TestMemoryQuota_ConcurrentConsume(t *testing.T) {
	q := NewMemoryQuota()
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := q.Consume(context.Background(), "erin", PlanFree, "2024-03"); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, accepted)
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in      string
		want    Plan
		limit   int
		wantErr bool
	}{
		{"", PlanFree, 5, false},
		{"free", PlanFree, 5, false},
		{" Pro ", PlanPro, 50, false},
		{"premium", PlanPremium, Unlimited, false},
		{"enterprise", PlanEnterprise, Unlimited, false},
		{"gold", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePlan(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.limit, p.Limit())
		})
	}
}

func TestUsage_Remaining(t *testing.T) {
	assert.Equal(t, 3, Usage{Used: 2, Limit: 5}.Remaining())
	assert.Equal(t, 0, Usage{Used: 7, Limit: 5}.Remaining())
	assert.Equal(t, Unlimited, Usage{Used: 100, Limit: Unlimited}.Remaining())
}

func redisAddr(t *testing.T) string {
	addr := os.Getenv("INMOCALC_TEST_REDIS")
	if addr == "" {
		t.Skip("INMOCALC_TEST_REDIS not set")
	}
	return addr
}

func TestRedisStore(t *testing.T) {
	addr := redisAddr(t)
	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	prefix := fmt.Sprintf("inmocalc-test:%s:", uuid.NewString())
	testStore(t, NewRedisStore(client, prefix))
}

func TestRedisQuota(t *testing.T) {
	addr := redisAddr(t)
	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	prefix := fmt.Sprintf("inmocalc-test:%s:", uuid.NewString())
	testQuota(t, NewRedisQuota(client, prefix))

	ttl, err := client.TTL(context.Background(), prefix+quotaKey("carol", "2024-03")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "monthly counters expire")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
