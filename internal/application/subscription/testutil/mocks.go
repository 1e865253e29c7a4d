// Package testutil provides mock implementations for testing the
// subscription and entitlement application layers.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/shared/biztime"
)

// MockPlanRepository is an in-memory implementation of
// subscription.PlanRepository for testing.
type MockPlanRepository struct {
	mu         sync.RWMutex
	plans      map[uint]*subscription.Plan
	plansBySID map[string]*subscription.Plan
	nextID     uint

	// Error injection for testing
	createError error
	getError    error
	updateError error
	listError   error
}

// NewMockPlanRepository creates a new mock plan repository.
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		plans:      make(map[uint]*subscription.Plan),
		plansBySID: make(map[string]*subscription.Plan),
	}
}

// SetGetError injects an error into reads.
func (m *MockPlanRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

// SetCreateError injects an error into Create.
func (m *MockPlanRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}

	if plan.ID() == 0 {
		m.nextID++
		if err := plan.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.plans[plan.ID()] = plan
	m.plansBySID[plan.SID()] = plan
	return nil
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	plan, exists := m.plans[id]
	if !exists {
		return nil, nil
	}
	return plan, nil
}

func (m *MockPlanRepository) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	plan, exists := m.plansBySID[sid]
	if !exists {
		return nil, nil
	}
	return plan, nil
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *subscription.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	if _, exists := m.plans[plan.ID()]; !exists {
		return fmt.Errorf("plan %d not found", plan.ID())
	}

	m.plans[plan.ID()] = plan
	m.plansBySID[plan.SID()] = plan
	return nil
}

func (m *MockPlanRepository) ListActive(ctx context.Context, productLine vo.ProductLine) ([]*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}

	var result []*subscription.Plan
	for _, plan := range m.plans {
		if plan.IsActive() && plan.ProductLine() == productLine {
			result = append(result, plan)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Price() < result[j].Price() })
	return result, nil
}

func (m *MockPlanRepository) List(ctx context.Context, filter subscription.PlanFilter) ([]*subscription.Plan, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	var matched []*subscription.Plan
	for _, plan := range m.plans {
		if filter.ProductLine != nil && plan.ProductLine() != *filter.ProductLine {
			continue
		}
		if filter.Status != nil && string(plan.Status()) != *filter.Status {
			continue
		}
		if filter.Category != nil && string(plan.Category()) != *filter.Category {
			continue
		}
		matched = append(matched, plan)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID() < matched[j].ID() })

	total := int64(len(matched))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}

// MockSubscriptionRepository is an in-memory implementation of
// subscription.SubscriptionRepository. CreateIfNoActive holds the lock
// across the check and the insert, mirroring the atomicity the real
// repository gets from its unique index.
type MockSubscriptionRepository struct {
	mu        sync.Mutex
	subs      map[uint]*subscription.Subscription
	subsBySID map[string]*subscription.Subscription
	nextID    uint

	createError error
	getError    error
	updateError error
	listError   error
}

// NewMockSubscriptionRepository creates a new mock subscription repository.
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		subs:      make(map[uint]*subscription.Subscription),
		subsBySID: make(map[string]*subscription.Subscription),
	}
}

// SetGetError injects an error into reads.
func (m *MockSubscriptionRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

// SetUpdateError injects an error into Update.
func (m *MockSubscriptionRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func (m *MockSubscriptionRepository) CreateIfNoActive(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}

	now := biztime.NowUTC()
	for _, existing := range m.subs {
		if existing.UserID() != sub.UserID() || existing.ProductLine() != sub.ProductLine() {
			continue
		}
		if existing.Status() != vo.StatusActive {
			continue
		}
		if existing.IsExpiredAt(now) {
			// Stale active row: release it the way the real repository does
			// before inserting.
			_ = existing.MarkAsExpired()
			continue
		}
		return subscription.ErrActiveSubscriptionExists
	}

	if sub.ID() == 0 {
		m.nextID++
		if err := sub.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.subs[sub.ID()] = sub
	m.subsBySID[sub.SID()] = sub
	return nil
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	sub, exists := m.subs[id]
	if !exists {
		return nil, nil
	}
	return sub, nil
}

func (m *MockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	sub, exists := m.subsBySID[sid]
	if !exists {
		return nil, nil
	}
	return sub, nil
}

func (m *MockSubscriptionRepository) GetActiveByUser(ctx context.Context, userID uint, productLine vo.ProductLine) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, sub := range m.subs {
		if sub.UserID() == userID && sub.ProductLine() == productLine && sub.Status() == vo.StatusActive {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listError != nil {
		return nil, m.listError
	}

	var result []*subscription.Subscription
	for _, sub := range m.subs {
		if sub.UserID() == userID {
			result = append(result, sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() > result[j].ID() })
	return result, nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	if _, exists := m.subs[sub.ID()]; !exists {
		return fmt.Errorf("subscription %d not found", sub.ID())
	}

	m.subs[sub.ID()] = sub
	m.subsBySID[sub.SID()] = sub
	return nil
}

type counterKey struct {
	subscriptionID uint
	feature        vo.Feature
}

// MockUsageCounterRepository is an in-memory implementation of
// subscription.UsageCounterRepository. Both increment variants run under
// one lock, giving the same atomicity the real repository provides with
// conditional updates.
type MockUsageCounterRepository struct {
	mu     sync.Mutex
	counts map[counterKey]uint64

	incrementError error
	getError       error
}

// NewMockUsageCounterRepository creates a new mock usage counter repository.
func NewMockUsageCounterRepository() *MockUsageCounterRepository {
	return &MockUsageCounterRepository{
		counts: make(map[counterKey]uint64),
	}
}

// SetIncrementError injects an error into both increment variants.
func (m *MockUsageCounterRepository) SetIncrementError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incrementError = err
}

// SetCount seeds a counter value.
func (m *MockUsageCounterRepository) SetCount(subscriptionID uint, feature vo.Feature, count uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[counterKey{subscriptionID, feature}] = count
}

func (m *MockUsageCounterRepository) GetCount(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return 0, m.getError
	}

	return m.counts[counterKey{subscriptionID, feature}], nil
}

func (m *MockUsageCounterRepository) Increment(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incrementError != nil {
		return 0, m.incrementError
	}

	key := counterKey{subscriptionID, feature}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *MockUsageCounterRepository) IncrementIfBelow(ctx context.Context, subscriptionID uint, feature vo.Feature, ceiling uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incrementError != nil {
		return 0, m.incrementError
	}

	key := counterKey{subscriptionID, feature}
	if m.counts[key] >= ceiling {
		return 0, subscription.ErrCeilingReached
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *MockUsageCounterRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.UsageCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	now := time.Now()
	var result []*subscription.UsageCounter
	var id uint
	for key, count := range m.counts {
		if key.subscriptionID != subscriptionID {
			continue
		}
		id++
		counter, err := subscription.ReconstructUsageCounter(id, key.subscriptionID, key.feature, count, now, now)
		if err != nil {
			return nil, err
		}
		result = append(result, counter)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Feature() < result[j].Feature() })
	return result, nil
}
