package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID     string
	Description *string
	Price       *uint64
	Currency    *string          // required when Price is set
	Ceilings    map[string]int64 // nil means no change
	SortOrder   *int
}

type UpdatePlanUseCase struct {
	planRepo subscription.PlanRepository
	cache    PlanCatalogCache
	logger   logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo subscription.PlanRepository,
	cache PlanCatalogCache,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Execute applies a partial update to a plan. Ceiling changes only affect
// reads made after the update; existing subscriptions keep resolving
// through their own plan reference.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	if cmd.Description != nil {
		plan.UpdateDescription(*cmd.Description)
	}

	if cmd.Price != nil {
		currency := plan.Currency()
		if cmd.Currency != nil {
			currency = *cmd.Currency
		}
		if err := plan.UpdatePrice(*cmd.Price, currency); err != nil {
			return nil, apperrors.NewValidationError("invalid price", err.Error())
		}
	}

	if cmd.Ceilings != nil {
		ceilings, err := parseCeilings(cmd.Ceilings)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid ceilings", err.Error())
		}
		if err := plan.UpdateCeilings(ceilings); err != nil {
			return nil, apperrors.NewValidationError("invalid ceilings", err.Error())
		}
	}

	if cmd.SortOrder != nil {
		plan.SetSortOrder(*cmd.SortOrder)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", plan.ID())
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateActivePlans(ctx, plan.ProductLine()); err != nil {
			uc.logger.Warnw("failed to invalidate plan catalog cache", "error", err, "product_line", plan.ProductLine())
		}
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID(), "plan_sid", plan.SID())

	return dto.ToPlanDTO(plan), nil
}
