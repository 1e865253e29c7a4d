package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type GetPlanQuery struct {
	PlanSID string
}

type GetPlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, query GetPlanQuery) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.GetBySID(ctx, query.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", query.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	return dto.ToPlanDTO(plan), nil
}
