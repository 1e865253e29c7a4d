package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
)

func TestGetUsage_ReportsAllGrantedFeatures(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	usageRepo := testutil.NewMockUsageCounterRepository()
	uc := NewGetUsageUseCase(subRepo, planRepo, usageRepo, newTestLogger())

	plan, err := subscription.NewPlan("Premium Recruiter", "", vo.CategoryPremium, vo.ProductLineRecruiter,
		map[vo.Feature]vo.Ceiling{
			vo.FeatureCVView:     vo.NewBoundedCeiling(100),
			vo.FeatureJobPosting: vo.NewUnlimitedCeiling(),
		}, 30, 14900, "EUR")
	require.NoError(t, err)
	require.NoError(t, plan.SetSID("plan_usagetest001"))
	require.NoError(t, planRepo.Create(context.Background(), plan))

	sub := seedTestSubscription(t, subRepo, 1, plan.ID(), time.Now().UTC(), 30)
	usageRepo.SetCount(sub.ID(), vo.FeatureCVView, 37)

	usages, err := uc.Execute(context.Background(), GetUsageQuery{
		UserID:          1,
		SubscriptionSID: sub.SID(),
	})
	require.NoError(t, err)
	require.Len(t, usages, 2)

	// Features come back in stable order.
	cvView := usages[0]
	assert.Equal(t, "cv_view", cvView.Feature)
	assert.Equal(t, uint64(37), cvView.Used)
	assert.Equal(t, int64(100), cvView.Ceiling)
	assert.False(t, cvView.Unlimited)
	require.NotNil(t, cvView.Remaining)
	assert.Equal(t, uint64(63), *cvView.Remaining)

	jobPosting := usages[1]
	assert.Equal(t, "job_posting", jobPosting.Feature)
	assert.Zero(t, jobPosting.Used, "never-consumed feature reports zero")
	assert.True(t, jobPosting.Unlimited)
	assert.Nil(t, jobPosting.Remaining)
}

func TestGetUsage_OwnershipEnforced(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	usageRepo := testutil.NewMockUsageCounterRepository()
	uc := NewGetUsageUseCase(subRepo, planRepo, usageRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)
	sub := seedTestSubscription(t, subRepo, 1, plan.ID(), time.Now().UTC(), 30)

	_, err := uc.Execute(context.Background(), GetUsageQuery{
		UserID:          2,
		SubscriptionSID: sub.SID(),
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)

	_, err = uc.Execute(context.Background(), GetUsageQuery{
		UserID:          2,
		SubscriptionSID: sub.SID(),
		IsAdmin:         true,
	})
	require.NoError(t, err)
}
