package usecases

import (
	"context"
	"errors"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	"talenthub/internal/shared/biztime"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/id"
	"talenthub/internal/shared/logger"
)

type RenewSubscriptionCommand struct {
	UserID          uint
	SubscriptionSID string
}

type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	ledger           *Ledger
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	ledger *Ledger,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		ledger:           ledger,
		logger:           logger,
	}
}

// Execute renews an ended subscription by creating a fresh one on the
// same plan. Usage does not carry over: the new subscription gets new
// counters. The old record is never resurrected.
func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	prev, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if prev == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	if prev.UserID() != cmd.UserID {
		return nil, apperrors.NewForbiddenError("subscription does not belong to this user")
	}

	plan, err := uc.planRepo.GetByID(ctx, prev.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", prev.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan referenced by subscription not found")
	}
	if !plan.IsActive() {
		return nil, apperrors.NewValidationError("plan is no longer available for new subscriptions")
	}

	sub, err := subscription.NewSubscription(cmd.UserID, plan.ID(), plan.ProductLine(), biztime.NowUTC(), plan.ValidityDays(), prev.AutoRenew())
	if err != nil {
		return nil, apperrors.NewValidationError("invalid subscription", err.Error())
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}
	if err := sub.SetSID(sid); err != nil {
		return nil, fmt.Errorf("failed to set subscription ID: %w", err)
	}

	if err := uc.subscriptionRepo.CreateIfNoActive(ctx, sub); err != nil {
		if errors.Is(err, subscription.ErrActiveSubscriptionExists) {
			return nil, apperrors.NewConflictError("an active subscription already exists for this product line")
		}
		uc.logger.Errorw("failed to create renewal subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.logger.Infow("subscription renewed",
		"previous_subscription_id", prev.ID(),
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
		"plan_sid", plan.SID(),
	)

	return dto.ToSubscriptionDTO(sub, plan), nil
}
