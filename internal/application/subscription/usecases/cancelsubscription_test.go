package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/application/subscription/testutil"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
)

func TestCancelSubscription_Success(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	sub := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)

	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: sub.SID(),
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.NotNil(t, result.CancelledAt)

	stored, err := subRepo.GetByID(context.Background(), sub.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, stored.Status())
}

func TestCancelSubscription_Idempotent(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	sub := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)

	cmd := CancelSubscriptionCommand{UserID: 1, SubscriptionSID: sub.SID()}

	first, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err, "cancelling an already cancelled subscription is a no-op")

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.CancelledAt, second.CancelledAt)

	stored, err := subRepo.GetByID(context.Background(), sub.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version(), "repeat cancel must not bump the version")
}

func TestCancelSubscription_ForbiddenForOtherUser(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	sub := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		UserID:          2,
		SubscriptionSID: sub.SID(),
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}

func TestCancelSubscription_AdminOverridesOwnership(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	sub := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)

	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		UserID:          2,
		SubscriptionSID: sub.SID(),
		IsAdmin:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
}

func TestCancelSubscription_ExpiredCannotBeCancelled(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	sub := seedTestSubscription(t, subRepo, 1, 10, time.Now().UTC(), 30)
	require.NoError(t, sub.MarkAsExpired())
	require.NoError(t, subRepo.Update(context.Background(), sub))

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: sub.SID(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCancelSubscription_NotFound(t *testing.T) {
	subRepo := testutil.NewMockSubscriptionRepository()
	uc := NewCancelSubscriptionUseCase(subRepo, newTestLogger())

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		UserID:          1,
		SubscriptionSID: "sub_missing000001",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
