package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedTestPlan(t *testing.T, repo *testutil.MockPlanRepository) *subscription.Plan {
	t.Helper()

	plan, err := subscription.NewPlan("Standard Recruiter", "Entry plan", vo.CategoryStandard, vo.ProductLineRecruiter,
		map[vo.Feature]vo.Ceiling{vo.FeatureCVView: vo.NewBoundedCeiling(5)}, 30, 4900, "EUR")
	require.NoError(t, err)
	require.NoError(t, plan.SetSID("plan_ledgertest01"))
	require.NoError(t, repo.Create(context.Background(), plan))
	return plan
}

func seedTestSubscription(t *testing.T, repo *testutil.MockSubscriptionRepository, userID, planID uint, start time.Time, days int) *subscription.Subscription {
	t.Helper()

	sub, err := subscription.NewSubscription(userID, planID, vo.ProductLineRecruiter, start, days, false)
	require.NoError(t, err)
	require.NoError(t, sub.SetSID(fmt.Sprintf("sub_ledger%08d", userID)))
	require.NoError(t, repo.CreateIfNoActive(context.Background(), sub))
	return sub
}

func TestLedger_ActiveSubscription(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	ledger := NewLedger(subRepo, newTestLogger())

	seeded := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)

	sub, err := ledger.ActiveSubscription(context.Background(), 1, vo.ProductLineRecruiter)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, seeded.ID(), sub.ID())
}

func TestLedger_NoSubscription(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	ledger := NewLedger(subRepo, newTestLogger())

	sub, err := ledger.ActiveSubscription(context.Background(), 1, vo.ProductLineRecruiter)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestLedger_LazyExpiry(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	ledger := NewLedger(subRepo, newTestLogger())

	start := time.Now().UTC().AddDate(0, 0, -60)
	seeded := seedTestSubscription(t, subRepo, 1, 10, start, 30)
	require.Equal(t, vo.StatusActive, seeded.Status())

	sub, err := ledger.ActiveSubscription(context.Background(), 1, vo.ProductLineRecruiter)
	require.NoError(t, err)
	assert.Nil(t, sub, "window passed, record presented as expired")

	stored, err := subRepo.GetByID(context.Background(), seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, stored.Status(), "expiry written back")
}

func TestLedger_LazyExpirySurvivesWriteFailure(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	ledger := NewLedger(subRepo, newTestLogger())

	start := time.Now().UTC().AddDate(0, 0, -60)
	seedTestSubscription(t, subRepo, 1, 10, start, 30)

	subRepo.SetUpdateError(fmt.Errorf("storage unavailable"))

	sub, err := ledger.ActiveSubscription(context.Background(), 1, vo.ProductLineRecruiter)
	require.NoError(t, err, "correctness must not depend on the self-heal write")
	assert.Nil(t, sub)
}
