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
	"talenthub/internal/shared/biztime"
	"talenthub/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// CreateIfNoActive inserts the subscription unless an active one already
// exists for the same (user, product line). The guard is the unique index
// on active_key, so the check and the insert are one atomic statement and
// two concurrent creations cannot both win. Rows whose validity window
// already passed get their key released first; that write is an
// optimization, the insert stays correct without it.
func (r *SubscriptionRepositoryImpl) CreateIfNoActive(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to convert subscription to model", "error", err)
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	now := biztime.NowUTC()
	release := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND product_line = ? AND status = ? AND end_date < ?",
			sub.UserID(), string(sub.ProductLine()), string(vo.StatusActive), now).
		Updates(map[string]interface{}{
			"status":     string(vo.StatusExpired),
			"active_key": nil,
			"updated_at": now,
		})
	if release.Error != nil {
		r.logger.Warnw("failed to release stale active subscriptions",
			"error", release.Error,
			"user_id", sub.UserID(),
		)
	} else if release.RowsAffected > 0 {
		r.logger.Infow("stale active subscriptions expired",
			"user_id", sub.UserID(),
			"count", release.RowsAffected,
		)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return subscription.ErrActiveSubscriptionExists
		}
		r.logger.Errorw("failed to create subscription", "error", err, "user_id", sub.UserID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription created", "subscription_id", model.ID, "sid", sub.SID())
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "error", err, "subscription_id", id)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetActiveByUser(ctx context.Context, userID uint, productLine vo.ProductLine) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_line = ? AND status = ?", userID, string(productLine), string(vo.StatusActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subModels)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to convert subscription to model", "error", err)
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"active_key":   model.ActiveKey,
			"auto_renew":   model.AutoRenew,
			"cancelled_at": model.CancelledAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	return nil
}
