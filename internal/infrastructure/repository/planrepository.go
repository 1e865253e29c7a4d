package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/infrastructure/persistence/mappers"
	"talenthub/internal/infrastructure/persistence/models"
	"talenthub/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "name", plan.Name())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created", "plan_id", model.ID, "sid", plan.SID())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get plan by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.PlanModel{}).
		Where("id = ?", plan.ID()).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"description":   model.Description,
			"category":      model.Category,
			"ceilings":      model.Ceilings,
			"validity_days": model.ValidityDays,
			"price":         model.Price,
			"currency":      model.Currency,
			"status":        model.Status,
			"sort_order":    model.SortOrder,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	// RowsAffected may be 0 when updated values are identical to existing values.

	r.logger.Infow("plan updated", "plan_id", plan.ID())
	return nil
}

func (r *PlanRepositoryImpl) ListActive(ctx context.Context, productLine vo.ProductLine) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	err := r.db.WithContext(ctx).
		Where("product_line = ? AND status = ?", string(productLine), string(subscription.PlanStatusActive)).
		Order("price ASC").
		Find(&planModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active plans", "error", err, "product_line", productLine)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	return r.mapper.ToEntities(planModels)
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter subscription.PlanFilter) ([]*subscription.Plan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PlanModel{})

	if filter.ProductLine != nil {
		query = query.Where("product_line = ?", string(*filter.ProductLine))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count plans", "error", err)
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var planModels []*models.PlanModel
	if err := query.Order("sort_order ASC, id ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	plans, err := r.mapper.ToEntities(planModels)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}
