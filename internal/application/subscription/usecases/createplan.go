package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/id"
	"talenthub/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name         string
	Description  string
	Category     string
	ProductLine  string
	Ceilings     map[string]int64 // encoded form, -1 means unlimited
	ValidityDays int
	Price        uint64
	Currency     string
	SortOrder    int
}

type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	cache    PlanCatalogCache
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	cache PlanCatalogCache,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	category, err := vo.ParsePlanCategory(cmd.Category)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan category", err.Error())
	}

	productLine, err := vo.ParseProductLine(cmd.ProductLine)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product line", err.Error())
	}

	ceilings, err := parseCeilings(cmd.Ceilings)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ceilings", err.Error())
	}

	plan, err := subscription.NewPlan(cmd.Name, cmd.Description, category, productLine, ceilings, cmd.ValidityDays, cmd.Price, cmd.Currency)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan", err.Error())
	}
	plan.SetSortOrder(cmd.SortOrder)

	sid, err := id.GenerateWithPrefix(id.PrefixPlan, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}
	if err := plan.SetSID(sid); err != nil {
		return nil, fmt.Errorf("failed to set plan ID: %w", err)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.invalidateCatalog(ctx, productLine)

	uc.logger.Infow("plan created",
		"plan_id", plan.ID(),
		"plan_sid", plan.SID(),
		"name", plan.Name(),
		"product_line", productLine,
	)

	return dto.ToPlanDTO(plan), nil
}

func (uc *CreatePlanUseCase) invalidateCatalog(ctx context.Context, productLine vo.ProductLine) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateActivePlans(ctx, productLine); err != nil {
		uc.logger.Warnw("failed to invalidate plan catalog cache", "error", err, "product_line", productLine)
	}
}

// parseCeilings converts the encoded wire form into tagged ceilings.
func parseCeilings(encoded map[string]int64) (map[vo.Feature]vo.Ceiling, error) {
	ceilings := make(map[vo.Feature]vo.Ceiling, len(encoded))
	for name, value := range encoded {
		feature, err := vo.NewFeature(name)
		if err != nil {
			return nil, err
		}
		ceiling, err := vo.CeilingFromEncoded(value)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", name, err)
		}
		ceilings[feature] = ceiling
	}
	return ceilings, nil
}
