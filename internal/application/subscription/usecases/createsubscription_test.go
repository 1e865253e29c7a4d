package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
)

func subscriptionPlanForLine(line vo.ProductLine) (*subscription.Plan, error) {
	return subscription.NewPlan("Training Starter", "", vo.CategoryStandard, line,
		map[vo.Feature]vo.Ceiling{vo.FeatureTrainingOffer: vo.NewBoundedCeiling(3)}, 30, 2900, "EUR")
}

func TestCreateSubscription_Success(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)

	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID:  1,
		PlanSID: plan.SID(),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint(1), result.UserID)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, "recruiter", result.ProductLine)
	assert.True(t, result.IsActive)
	assert.Contains(t, result.ID, "sub_")
	require.NotNil(t, result.Plan)
	assert.Equal(t, plan.SID(), result.Plan.ID)
	assert.Equal(t, result.StartDate.AddDate(0, 0, 30), result.EndDate)
}

func TestCreateSubscription_PlanNotFound(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID:  1,
		PlanSID: "plan_missing00001",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateSubscription_InactivePlanRejected(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)
	plan.Deactivate()
	require.NoError(t, planRepo.Update(context.Background(), plan))

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID:  1,
		PlanSID: plan.SID(),
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCreateSubscription_DuplicateActiveConflicts(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: plan.SID()})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: plan.SID()})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateSubscription_AllowedAfterExpiry(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	plan := seedTestPlan(t, planRepo)

	// Old subscription ran out but its stored status still says active.
	start := time.Now().UTC().AddDate(0, 0, -60)
	seedTestSubscription(t, subRepo, 1, plan.ID(), start, 30)

	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: plan.SID()})
	require.NoError(t, err)
	assert.True(t, result.IsActive)
}

func TestCreateSubscription_ConcurrentCreationOneWinner(t *testing.T) {
	for round := 0; round < 20; round++ {
		planRepo := testutil.NewMockPlanRepository()
		subRepo := testutil.NewMockSubscriptionRepository()
		uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

		plan := seedTestPlan(t, planRepo)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
			hardErrs  int
		)

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: plan.SID()})

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case apperrors.IsConflict(err):
					conflicts++
				default:
					hardErrs++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created, "round %d: exactly one creation wins", round)
		assert.Equal(t, 1, conflicts, "round %d: the loser gets a conflict", round)
		assert.Zero(t, hardErrs, "round %d", round)
	}
}

func TestCreateSubscription_TrainingLineIndependent(t *testing.T) {
	planRepo := testutil.NewMockPlanRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, newTestLogger())

	recruiterPlan := seedTestPlan(t, planRepo)

	trainingPlan, err := subscriptionPlanForLine(vo.ProductLineTrainingInstitution)
	require.NoError(t, err)
	require.NoError(t, trainingPlan.SetSID("plan_training0001"))
	require.NoError(t, planRepo.Create(context.Background(), trainingPlan))

	_, err = uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: recruiterPlan.SID()})
	require.NoError(t, err)

	// One active subscription per product line, not per user globally.
	_, err = uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 1, PlanSID: trainingPlan.SID()})
	require.NoError(t, err)
}
