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

type ListActivePlansQuery struct {
	ProductLine string
}

// ListActivePlansUseCase serves the public catalog: active plans for one
// product line, ordered by price ascending. Results are cached; the cache
// is read-through and failures fall back to the repository.
type ListActivePlansUseCase struct {
	planRepo subscription.PlanRepository
	cache    PlanCatalogCache
	logger   logger.Interface
}

func NewListActivePlansUseCase(
	planRepo subscription.PlanRepository,
	cache PlanCatalogCache,
	logger logger.Interface,
) *ListActivePlansUseCase {
	return &ListActivePlansUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *ListActivePlansUseCase) Execute(ctx context.Context, query ListActivePlansQuery) ([]*dto.PlanDTO, error) {
	productLine, err := vo.ParseProductLine(query.ProductLine)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product line", err.Error())
	}

	if uc.cache != nil {
		plans, err := uc.cache.GetActivePlans(ctx, productLine)
		if err != nil {
			uc.logger.Warnw("plan catalog cache read failed", "error", err, "product_line", productLine)
		} else if plans != nil {
			return dto.ToPlanDTOList(plans), nil
		}
	}

	plans, err := uc.planRepo.ListActive(ctx, productLine)
	if err != nil {
		uc.logger.Errorw("failed to list active plans", "error", err, "product_line", productLine)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetActivePlans(ctx, productLine, plans); err != nil {
			uc.logger.Warnw("plan catalog cache write failed", "error", err, "product_line", productLine)
		}
	}

	return dto.ToPlanDTOList(plans), nil
}
