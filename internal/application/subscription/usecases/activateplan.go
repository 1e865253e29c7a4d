package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type ActivatePlanCommand struct {
	PlanSID string
}

type ActivatePlanUseCase struct {
	planRepo subscription.PlanRepository
	cache    PlanCatalogCache
	logger   logger.Interface
}

func NewActivatePlanUseCase(
	planRepo subscription.PlanRepository,
	cache PlanCatalogCache,
	logger logger.Interface,
) *ActivatePlanUseCase {
	return &ActivatePlanUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *ActivatePlanUseCase) Execute(ctx context.Context, cmd ActivatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	plan.Activate()

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", plan.ID())
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateActivePlans(ctx, plan.ProductLine()); err != nil {
			uc.logger.Warnw("failed to invalidate plan catalog cache", "error", err, "product_line", plan.ProductLine())
		}
	}

	uc.logger.Infow("plan activated", "plan_id", plan.ID(), "plan_sid", plan.SID())

	return dto.ToPlanDTO(plan), nil
}
