package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"talenthub/internal/application/subscription/usecases"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/shared/logger"
)

const (
	catalogKeyPrefix = "plan:catalog:"
	baseCatalogTTL   = 30 * time.Minute
	catalogTTLJitter = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
)

// cachedPlan is the cache snapshot of a plan. Ceilings carry the storage
// encoding (-1 means unlimited).
type cachedPlan struct {
	ID           uint             `json:"id"`
	SID          string           `json:"sid"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	ProductLine  string           `json:"product_line"`
	Ceilings     map[string]int64 `json:"ceilings"`
	ValidityDays int              `json:"validity_days"`
	Price        uint64           `json:"price"`
	Currency     string           `json:"currency"`
	Status       string           `json:"status"`
	SortOrder    int              `json:"sort_order"`
	Version      int              `json:"version"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// RedisPlanCatalogCache caches the public catalog listing per product line.
// An empty catalog is cached as an empty list, distinct from a miss.
type RedisPlanCatalogCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisPlanCatalogCache(client *redis.Client, logger logger.Interface) usecases.PlanCatalogCache {
	return &RedisPlanCatalogCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisPlanCatalogCache) key(productLine vo.ProductLine) string {
	return catalogKeyPrefix + string(productLine)
}

func (c *RedisPlanCatalogCache) GetActivePlans(ctx context.Context, productLine vo.ProductLine) ([]*subscription.Plan, error) {
	raw, err := c.client.Get(ctx, c.key(productLine)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get plan catalog from cache: %w", err)
	}

	var snapshots []cachedPlan
	if err := json.Unmarshal([]byte(raw), &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode cached plan catalog: %w", err)
	}

	plans := make([]*subscription.Plan, 0, len(snapshots))
	for i := range snapshots {
		plan, err := snapshotToPlan(&snapshots[i])
		if err != nil {
			return nil, fmt.Errorf("failed to restore cached plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (c *RedisPlanCatalogCache) SetActivePlans(ctx context.Context, productLine vo.ProductLine, plans []*subscription.Plan) error {
	snapshots := make([]cachedPlan, 0, len(plans))
	for _, plan := range plans {
		snapshots = append(snapshots, planToSnapshot(plan))
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to encode plan catalog: %w", err)
	}

	if err := c.client.Set(ctx, c.key(productLine), data, catalogTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set plan catalog in cache: %w", err)
	}

	c.logger.Debugw("plan catalog cached",
		"product_line", productLine,
		"plans", len(plans),
	)

	return nil
}

func (c *RedisPlanCatalogCache) InvalidateActivePlans(ctx context.Context, productLine vo.ProductLine) error {
	if err := c.client.Del(ctx, c.key(productLine)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan catalog cache: %w", err)
	}

	c.logger.Debugw("plan catalog cache invalidated", "product_line", productLine)
	return nil
}

func planToSnapshot(plan *subscription.Plan) cachedPlan {
	ceilings := plan.Ceilings()
	encoded := make(map[string]int64, len(ceilings))
	for feature, ceiling := range ceilings {
		encoded[string(feature)] = ceiling.Encoded()
	}

	return cachedPlan{
		ID:           plan.ID(),
		SID:          plan.SID(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		Category:     string(plan.Category()),
		ProductLine:  string(plan.ProductLine()),
		Ceilings:     encoded,
		ValidityDays: plan.ValidityDays(),
		Price:        plan.Price(),
		Currency:     plan.Currency(),
		Status:       string(plan.Status()),
		SortOrder:    plan.SortOrder(),
		Version:      plan.Version(),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

func snapshotToPlan(s *cachedPlan) (*subscription.Plan, error) {
	ceilings := make(map[vo.Feature]vo.Ceiling, len(s.Ceilings))
	for name, encoded := range s.Ceilings {
		ceiling, err := vo.CeilingFromEncoded(encoded)
		if err != nil {
			return nil, err
		}
		ceilings[vo.Feature(name)] = ceiling
	}

	return subscription.ReconstructPlan(
		s.ID,
		s.SID,
		s.Name,
		s.Description,
		vo.PlanCategory(s.Category),
		vo.ProductLine(s.ProductLine),
		ceilings,
		s.ValidityDays,
		s.Price,
		s.Currency,
		s.Status,
		s.SortOrder,
		s.Version,
		s.CreatedAt,
		s.UpdatedAt,
	)
}

// catalogTTLWithJitter returns a randomized TTL to prevent cache stampede.
func catalogTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(catalogTTLJitter)))
	return baseCatalogTTL + jitter
}
