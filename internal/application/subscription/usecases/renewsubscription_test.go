package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	apperrors "talenthub/internal/shared/errors"
)

func newRenewFixture() (*testutil.MockPlanRepository, *testutil.MockSubscriptionRepository, *RenewSubscriptionUseCase) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	log := newTestLogger()
	uc := NewRenewSubscriptionUseCase(subRepo, planRepo, NewLedger(subRepo, log), log)
	return planRepo, subRepo, uc
}

func TestRenewSubscription_CreatesFreshSubscription(t *testing.T) {
	planRepo, subRepo, uc := newRenewFixture()

	plan := seedTestPlan(t, planRepo)
	old := seedTestSubscription(t, subRepo, 1, plan.ID(), time.Now().UTC().AddDate(0, 0, -60), 30)

	result, err := uc.Execute(context.Background(), RenewSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: old.SID(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, old.SID(), result.ID, "renewal creates a new record, never resurrects")
	assert.True(t, result.IsActive)
	require.NotNil(t, result.Plan)
	assert.Equal(t, plan.SID(), result.Plan.ID)
}

func TestRenewSubscription_BlockedWhileActive(t *testing.T) {
	planRepo, subRepo, uc := newRenewFixture()

	plan := seedTestPlan(t, planRepo)
	current := seedTestSubscription(t, subRepo, 1, plan.ID(), time.Now().UTC(), 30)

	_, err := uc.Execute(context.Background(), RenewSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: current.SID(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRenewSubscription_DeactivatedPlanRejected(t *testing.T) {
	planRepo, subRepo, uc := newRenewFixture()

	plan := seedTestPlan(t, planRepo)
	old := seedTestSubscription(t, subRepo, 1, plan.ID(), time.Now().UTC().AddDate(0, 0, -60), 30)

	plan.Deactivate()
	require.NoError(t, planRepo.Update(context.Background(), plan))

	_, err := uc.Execute(context.Background(), RenewSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: old.SID(),
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}
