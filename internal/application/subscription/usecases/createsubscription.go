package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	"talenthub/internal/shared/biztime"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/id"
	"talenthub/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	UserID    uint
	PlanSID   string
	StartDate time.Time // zero value means now
	AutoRenew bool
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Execute subscribes the user to a plan. The repository is the final
// guard against two concurrent creations for the same (user, product
// line): the loser of that race gets a conflict.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	if !plan.IsActive() {
		return nil, apperrors.NewValidationError("plan is not available for new subscriptions")
	}

	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = biztime.NowUTC()
	}

	sub, err := subscription.NewSubscription(cmd.UserID, plan.ID(), plan.ProductLine(), startDate, plan.ValidityDays(), cmd.AutoRenew)
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
			uc.logger.Warnw("active subscription already exists",
				"user_id", cmd.UserID,
				"product_line", plan.ProductLine(),
			)
			return nil, apperrors.NewConflictError("an active subscription already exists for this product line")
		}
		uc.logger.Errorw("failed to create subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"subscription_sid", sub.SID(),
		"user_id", cmd.UserID,
		"plan_sid", plan.SID(),
		"end_date", sub.EndDate(),
	)

	return dto.ToSubscriptionDTO(sub, plan), nil
}
