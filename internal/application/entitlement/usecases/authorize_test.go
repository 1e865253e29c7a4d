package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	subusecases "talenthub/internal/application/subscription/usecases"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fixture struct {
	planRepo  *testutil.MockPlanRepository
	subRepo   *testutil.MockSubscriptionRepository
	usageRepo *testutil.MockUsageCounterRepository
	authorize *AuthorizeFeatureUseCase
}

func newFixture() *fixture {
	log := newTestLogger()
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	usageRepo := testutil.NewMockUsageCounterRepository()
	ledger := subusecases.NewLedger(subRepo, log)

	return &fixture{
		planRepo:  planRepo,
		subRepo:   subRepo,
		usageRepo: usageRepo,
		authorize: NewAuthorizeFeatureUseCase(ledger, planRepo, usageRepo, log),
	}
}

func (f *fixture) seedPlan(t *testing.T, ceilings map[vo.Feature]vo.Ceiling) *subscription.Plan {
	t.Helper()

	plan, err := subscription.NewPlan("Standard Recruiter", "", vo.CategoryStandard, vo.ProductLineRecruiter, ceilings, 30, 4900, "EUR")
	require.NoError(t, err)
	require.NoError(t, plan.SetSID("plan_test00000001"))
	require.NoError(t, f.planRepo.Create(context.Background(), plan))
	return plan
}

func (f *fixture) seedSubscription(t *testing.T, userID uint, plan *subscription.Plan) *subscription.Subscription {
	t.Helper()

	sub, err := subscription.NewSubscription(userID, plan.ID(), plan.ProductLine(), time.Now().UTC(), plan.ValidityDays(), false)
	require.NoError(t, err)
	require.NoError(t, sub.SetSID("sub_test00000001"))
	require.NoError(t, f.subRepo.CreateIfNoActive(context.Background(), sub))
	return sub
}

func TestAuthorizeFeature_BoundedCeilingExhaustsExactly(t *testing.T) {
	f := newFixture()
	plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureCVView: vo.NewBoundedCeiling(5),
	})
	f.seedSubscription(t, 1, plan)

	cmd := AuthorizeFeatureCommand{UserID: 1, ProductLine: "recruiter", Feature: "cv_view"}

	wantRemaining := []uint64{4, 3, 2, 1, 0}
	for i, want := range wantRemaining {
		decision, err := f.authorize.Execute(context.Background(), cmd)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "call %d should be allowed", i+1)
		require.NotNil(t, decision.Remaining)
		assert.Equal(t, want, *decision.Remaining, "call %d remaining", i+1)
	}

	decision, err := f.authorize.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonQuotaExceeded, decision.Reason)
}

func TestAuthorizeFeature_UnlimitedNeverDenies(t *testing.T) {
	f := newFixture()
	plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureJobPosting: vo.NewUnlimitedCeiling(),
	})
	sub := f.seedSubscription(t, 1, plan)

	cmd := AuthorizeFeatureCommand{UserID: 1, ProductLine: "recruiter", Feature: "job_posting"}

	for i := 0; i < 50; i++ {
		decision, err := f.authorize.Execute(context.Background(), cmd)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Nil(t, decision.Remaining, "unlimited path reports no remaining")
	}

	count, err := f.usageRepo.GetCount(context.Background(), sub.ID(), vo.FeatureJobPosting)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), count, "usage still counted on the unlimited path")
}

func TestAuthorizeFeature_UnlimitedUsageNeverCapped(t *testing.T) {
	f := newFixture()
	plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureJobPosting: vo.NewUnlimitedCeiling(),
	})
	sub := f.seedSubscription(t, 1, plan)

	cmd := AuthorizeFeatureCommand{UserID: 1, ProductLine: "recruiter", Feature: "job_posting"}

	var last uint64
	for i := 0; i < 10000; i++ {
		decision, err := f.authorize.Execute(context.Background(), cmd)
		require.NoError(t, err)
		require.True(t, decision.Allowed)

		count, err := f.usageRepo.GetCount(context.Background(), sub.ID(), vo.FeatureJobPosting)
		require.NoError(t, err)
		require.Greater(t, count, last, "count must keep increasing")
		last = count
	}

	assert.Equal(t, uint64(10000), last)
}

func TestAuthorizeFeature_AbsentFeatureDenied(t *testing.T) {
	f := newFixture()
	plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureCVView: vo.NewBoundedCeiling(5),
	})
	sub := f.seedSubscription(t, 1, plan)

	decision, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "recruiter",
		Feature:     "training_offer",
	})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonQuotaExceeded, decision.Reason)

	count, err := f.usageRepo.GetCount(context.Background(), sub.ID(), vo.FeatureTrainingOffer)
	require.NoError(t, err)
	assert.Zero(t, count, "denial must not touch the meter")
}

func TestAuthorizeFeature_NoSubscriptionDenied(t *testing.T) {
	f := newFixture()
	f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureCVView: vo.NewBoundedCeiling(5),
	})

	decision, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "recruiter",
		Feature:     "cv_view",
	})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNoActiveSubscription, decision.Reason)
}

func TestAuthorizeFeature_ExpiredSubscriptionDenied(t *testing.T) {
	f := newFixture()
	plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
		vo.FeatureCVView: vo.NewBoundedCeiling(5),
	})

	// Stored status still says active, but the window has passed.
	start := time.Now().UTC().AddDate(0, 0, -60)
	sub, err := subscription.NewSubscription(1, plan.ID(), plan.ProductLine(), start, 30, false)
	require.NoError(t, err)
	require.NoError(t, sub.SetSID("sub_test00000002"))
	require.NoError(t, f.subRepo.CreateIfNoActive(context.Background(), sub))
	require.Equal(t, vo.StatusActive, sub.Status())

	decision, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "recruiter",
		Feature:     "cv_view",
	})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNoActiveSubscription, decision.Reason)
}

func TestAuthorizeFeature_DanglingPlanIsHardError(t *testing.T) {
	f := newFixture()

	sub, err := subscription.NewSubscription(1, 999, vo.ProductLineRecruiter, time.Now().UTC(), 30, false)
	require.NoError(t, err)
	require.NoError(t, sub.SetSID("sub_test00000003"))
	require.NoError(t, f.subRepo.CreateIfNoActive(context.Background(), sub))

	decision, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "recruiter",
		Feature:     "cv_view",
	})
	require.Error(t, err)
	assert.Nil(t, decision)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAuthorizeFeature_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "gardening",
		Feature:     "cv_view",
	})
	require.Error(t, err)

	_, err = f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
		UserID:      1,
		ProductLine: "recruiter",
		Feature:     "CV VIEW",
	})
	require.Error(t, err)
}

func TestAuthorizeFeature_ConcurrentCallsNeverOvershoot(t *testing.T) {
	const (
		ceiling = 10
		callers = 40
		rounds  = 20
	)

	for round := 0; round < rounds; round++ {
		f := newFixture()
		plan := f.seedPlan(t, map[vo.Feature]vo.Ceiling{
			vo.FeatureCVView: vo.NewBoundedCeiling(ceiling),
		})
		sub := f.seedSubscription(t, 1, plan)

		var (
			wg           sync.WaitGroup
			mu           sync.Mutex
			allowedCount int
			deniedCount  int
			firstErr     error
		)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				decision, err := f.authorize.Execute(context.Background(), AuthorizeFeatureCommand{
					UserID:      1,
					ProductLine: "recruiter",
					Feature:     "cv_view",
				})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return
				}
				if decision.Allowed {
					allowedCount++
				} else {
					deniedCount++
				}
			}()
		}
		wg.Wait()

		require.NoError(t, firstErr)

		assert.Equal(t, ceiling, allowedCount, "round %d: exactly ceiling calls allowed", round)
		assert.Equal(t, callers-ceiling, deniedCount, "round %d", round)

		count, err := f.usageRepo.GetCount(context.Background(), sub.ID(), vo.FeatureCVView)
		require.NoError(t, err)
		assert.Equal(t, uint64(ceiling), count, "round %d: counter never exceeds ceiling", round)
	}
}
