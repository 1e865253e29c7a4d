package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type GetActiveSubscriptionQuery struct {
	UserID      uint
	ProductLine string
}

type GetActiveSubscriptionUseCase struct {
	ledger   *Ledger
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewGetActiveSubscriptionUseCase(
	ledger *Ledger,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *GetActiveSubscriptionUseCase {
	return &GetActiveSubscriptionUseCase{
		ledger:   ledger,
		planRepo: planRepo,
		logger:   logger,
	}
}

// Execute returns the user's currently usable subscription for the
// product line, or nil when there is none. "None" is a normal outcome,
// not an error.
func (uc *GetActiveSubscriptionUseCase) Execute(ctx context.Context, query GetActiveSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	productLine, err := vo.ParseProductLine(query.ProductLine)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product line", err.Error())
	}

	sub, err := uc.ledger.ActiveSubscription(ctx, query.UserID, productLine)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		// A subscription must never reference a nonexistent plan.
		uc.logger.Errorw("subscription references missing plan",
			"subscription_id", sub.ID(),
			"plan_id", sub.PlanID(),
		)
		return nil, apperrors.NewNotFoundError("plan referenced by subscription not found")
	}

	return dto.ToSubscriptionDTO(sub, plan), nil
}
