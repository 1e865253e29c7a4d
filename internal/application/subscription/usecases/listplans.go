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

type ListPlansQuery struct {
	ProductLine string
	Status      string
	Category    string
	Page        int
	PageSize    int
}

type ListPlansResult struct {
	Plans []*dto.PlanDTO
	Total int64
}

// ListPlansUseCase is the admin-facing listing; it returns plans in every
// status. The public catalog goes through ListActivePlansUseCase.
type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*ListPlansResult, error) {
	filter := subscription.PlanFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if query.ProductLine != "" {
		productLine, err := vo.ParseProductLine(query.ProductLine)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid product line", err.Error())
		}
		filter.ProductLine = &productLine
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}
	if query.Category != "" {
		if _, err := vo.ParsePlanCategory(query.Category); err != nil {
			return nil, apperrors.NewValidationError("invalid plan category", err.Error())
		}
		filter.Category = &query.Category
	}

	plans, total, err := uc.planRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &ListPlansResult{
		Plans: dto.ToPlanDTOList(plans),
		Total: total,
	}, nil
}
