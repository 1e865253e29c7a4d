package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
)

// fakeCatalogCache is an in-memory PlanCatalogCache recording hits and
// invalidations.
type fakeCatalogCache struct {
	mu            sync.Mutex
	entries       map[vo.ProductLine][]*subscription.Plan
	hits          int
	invalidations int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{entries: make(map[vo.ProductLine][]*subscription.Plan)}
}

func (c *fakeCatalogCache) GetActivePlans(ctx context.Context, productLine vo.ProductLine) ([]*subscription.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	plans, ok := c.entries[productLine]
	if !ok {
		return nil, nil
	}
	c.hits++
	return plans, nil
}

func (c *fakeCatalogCache) SetActivePlans(ctx context.Context, productLine vo.ProductLine, plans []*subscription.Plan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[productLine] = plans
	return nil
}

func (c *fakeCatalogCache) InvalidateActivePlans(ctx context.Context, productLine vo.ProductLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, productLine)
	c.invalidations++
	return nil
}

func TestCreatePlan_Success(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	uc := NewCreatePlanUseCase(planRepo, nil, newTestLogger())

	result, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:        "Premium Recruiter",
		Description: "Unlimited postings",
		Category:    "premium",
		ProductLine: "recruiter",
		Ceilings: map[string]int64{
			"cv_view":     100,
			"job_posting": -1,
		},
		ValidityDays: 30,
		Price:        14900,
		Currency:     "EUR",
	})
	require.NoError(t, err)

	assert.Contains(t, result.ID, "plan_")
	assert.Equal(t, "premium", result.Category)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, int64(100), result.Ceilings["cv_view"])
	assert.Equal(t, int64(-1), result.Ceilings["job_posting"])
}

func TestCreatePlan_Validation(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	uc := NewCreatePlanUseCase(planRepo, nil, newTestLogger())

	tests := []struct {
		name string
		cmd  CreatePlanCommand
	}{
		{
			name: "unknown category",
			cmd: CreatePlanCommand{
				Name: "P", Category: "gold", ProductLine: "recruiter",
				Ceilings: map[string]int64{"cv_view": 5}, ValidityDays: 30, Currency: "EUR",
			},
		},
		{
			name: "unknown product line",
			cmd: CreatePlanCommand{
				Name: "P", Category: "standard", ProductLine: "florist",
				Ceilings: map[string]int64{"cv_view": 5}, ValidityDays: 30, Currency: "EUR",
			},
		},
		{
			name: "negative ceiling other than the unlimited encoding",
			cmd: CreatePlanCommand{
				Name: "P", Category: "standard", ProductLine: "recruiter",
				Ceilings: map[string]int64{"cv_view": -2}, ValidityDays: 30, Currency: "EUR",
			},
		},
		{
			name: "no features",
			cmd: CreatePlanCommand{
				Name: "P", Category: "standard", ProductLine: "recruiter",
				Ceilings: map[string]int64{}, ValidityDays: 30, Currency: "EUR",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestListActivePlans_OrderedByPrice(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	uc := NewListActivePlansUseCase(planRepo, nil, newTestLogger())

	prices := []uint64{14900, 4900, 29900}
	sids := []string{"plan_premium00001", "plan_standard0001", "plan_entpr000001"}
	for i, price := range prices {
		plan, err := subscription.NewPlan("Plan", "", vo.CategoryStandard, vo.ProductLineRecruiter,
			map[vo.Feature]vo.Ceiling{vo.FeatureCVView: vo.NewBoundedCeiling(5)}, 30, price, "EUR")
		require.NoError(t, err)
		require.NoError(t, plan.SetSID(sids[i]))
		require.NoError(t, planRepo.Create(context.Background(), plan))
	}

	result, err := uc.Execute(context.Background(), ListActivePlansQuery{ProductLine: "recruiter"})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, uint64(4900), result[0].Price)
	assert.Equal(t, uint64(14900), result[1].Price)
	assert.Equal(t, uint64(29900), result[2].Price)
}

func TestListActivePlans_CacheReadThrough(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	cache := newFakeCatalogCache()
	uc := NewListActivePlansUseCase(planRepo, cache, newTestLogger())

	seedTestPlan(t, planRepo)

	first, err := uc.Execute(context.Background(), ListActivePlansQuery{ProductLine: "recruiter"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Zero(t, cache.hits, "first read misses and fills the cache")

	second, err := uc.Execute(context.Background(), ListActivePlansQuery{ProductLine: "recruiter"})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, cache.hits)
}

func TestDeactivatePlan_RemovedFromCatalogButReadable(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	cache := newFakeCatalogCache()

	deactivate := NewDeactivatePlanUseCase(planRepo, cache, newTestLogger())
	listActive := NewListActivePlansUseCase(planRepo, cache, newTestLogger())
	getPlan := NewGetPlanUseCase(planRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)

	result, err := deactivate.Execute(context.Background(), DeactivatePlanCommand{PlanSID: plan.SID()})
	require.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
	assert.Equal(t, 1, cache.invalidations)

	listed, err := listActive.Execute(context.Background(), ListActivePlansQuery{ProductLine: "recruiter"})
	require.NoError(t, err)
	assert.Empty(t, listed, "deactivated plans leave the public catalog")

	fetched, err := getPlan.Execute(context.Background(), GetPlanQuery{PlanSID: plan.SID()})
	require.NoError(t, err, "existing subscribers can still resolve the plan")
	assert.Equal(t, plan.SID(), fetched.ID)
}

func TestUpdatePlan_CeilingsAndPrice(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	uc := NewUpdatePlanUseCase(planRepo, nil, newTestLogger())

	plan := seedTestPlan(t, planRepo)

	newPrice := uint64(9900)
	result, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanSID:  plan.SID(),
		Price:    &newPrice,
		Ceilings: map[string]int64{"cv_view": 50, "candidate_search": -1},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(9900), result.Price)
	assert.Equal(t, int64(50), result.Ceilings["cv_view"])
	assert.Equal(t, int64(-1), result.Ceilings["candidate_search"])
}

func TestListPlans_FiltersByStatus(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	uc := NewListPlansUseCase(planRepo, newTestLogger())

	active := seedTestPlan(t, planRepo)

	inactive, err := subscriptionPlanForLine(vo.ProductLineRecruiter)
	require.NoError(t, err)
	require.NoError(t, inactive.SetSID("plan_inactive0001"))
	inactive.Deactivate()
	require.NoError(t, planRepo.Create(context.Background(), inactive))

	status := "active"
	result, err := uc.Execute(context.Background(), ListPlansQuery{Status: status})
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	assert.Equal(t, active.SID(), result.Plans[0].ID)
	assert.Equal(t, int64(1), result.Total)
}
