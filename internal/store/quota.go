package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Unlimited marks plans without a monthly cap.
const Unlimited = -1

var planLimits = map[Plan]int{
	PlanFree:       5,
	PlanPro:        50,
	PlanPremium:    Unlimited,
	PlanEnterprise: Unlimited,
}

// ParsePlan maps a plan name to a Plan. An empty name is the free plan.
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PlanFree, nil
	}
	if _, ok := planLimits[p]; !ok {
		return "", fmt.Errorf("unknown plan %q", s)
	}
	return p, nil
}

// Limit returns the monthly calculation limit of a plan, or Unlimited.
func (p Plan) Limit() int {
	if limit, ok := planLimits[p]; ok {
		return limit
	}
	return planLimits[PlanFree]
}

// Month formats the usage period key of t, e.g. "2024-03".
func Month(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Usage is a user's consumption in one month.
type Usage struct {
	User  string `json:"user"`
	Plan  Plan   `json:"plan"`
	Month string `json:"month"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
}

// Remaining is the number of calculations left, or Unlimited.
func (u Usage) Remaining() int {
	if u.Limit == Unlimited {
		return Unlimited
	}
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

// QuotaTracker is the subscription/quota collaborator.
type QuotaTracker interface {
	Usage(ctx context.Context, user, month string) (int, error)
	// Consume counts one calculation, or returns ErrQuotaExceeded without
	// counting when the plan limit is already reached.
	Consume(ctx context.Context, user string, plan Plan, month string) (int, error)
	// Release gives back one consumed calculation, never going below zero.
	Release(ctx context.Context, user, month string) error
}

// MemoryQuota is an in-memory QuotaTracker.
type MemoryQuota struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryQuota creates an empty in-memory tracker.
func NewMemoryQuota() *MemoryQuota {
	return &MemoryQuota{counts: make(map[string]int)}
}

func quotaKey(user, month string) string {
	return "quota:" + user + ":" + month
}

func (q *MemoryQuota) Usage(ctx context.Context, user, month string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.counts[quotaKey(user, month)], nil
}

func (q *MemoryQuota) Consume(ctx context.Context, user string, plan Plan, month string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := quotaKey(user, month)
	used := q.counts[key]
	if limit := plan.Limit(); limit != Unlimited && used >= limit {
		return used, ErrQuotaExceeded
	}
	used++
	q.counts[key] = used
	return used, nil
}

func (q *MemoryQuota) Release(ctx context.Context, user, month string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := quotaKey(user, month)
	if q.counts[key] > 0 {
		q.counts[key]--
	}
	return nil
}
