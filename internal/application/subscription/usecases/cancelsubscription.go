package usecases

import (
	"context"
	"errors"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	UserID          uint
	SubscriptionSID string
	IsAdmin         bool
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute cancels a subscription. Cancelling an already cancelled
// subscription succeeds without changing anything.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	if !cmd.IsAdmin && sub.UserID() != cmd.UserID {
		return nil, apperrors.NewForbiddenError("subscription does not belong to this user")
	}

	alreadyCancelled := sub.CancelledAt() != nil

	if err := sub.Cancel(); err != nil {
		if errors.Is(err, subscription.ErrInvalidStatusTransition) {
			return nil, apperrors.NewConflictError("subscription cannot be cancelled", err.Error())
		}
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	if !alreadyCancelled {
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
			return nil, fmt.Errorf("failed to update subscription: %w", err)
		}
		uc.logger.Infow("subscription cancelled",
			"subscription_id", sub.ID(),
			"user_id", sub.UserID(),
		)
	}

	return dto.ToSubscriptionDTO(sub, nil), nil
}
