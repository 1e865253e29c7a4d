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

// maxIncrementRetries bounds the read-compare-swap loop under concurrent
// spenders on the same counter.
const maxIncrementRetries = 5

type UsageCounterRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UsageCounterMapper
	logger logger.Interface
}

func NewUsageCounterRepository(db *gorm.DB, logger logger.Interface) subscription.UsageCounterRepository {
	return &UsageCounterRepositoryImpl{
		db:     db,
		mapper: mappers.NewUsageCounterMapper(),
		logger: logger,
	}
}

func (r *UsageCounterRepositoryImpl) GetCount(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error) {
	var model models.UsageCounterModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND feature = ?", subscriptionID, string(feature)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Counters are created lazily; no row means no usage yet.
			return 0, nil
		}
		r.logger.Errorw("failed to get usage count", "error", err, "subscription_id", subscriptionID, "feature", feature)
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}

	return model.Count, nil
}

// Increment bumps the counter without a ceiling and returns the new
// count. Used on the unlimited path; still a conditional update so the
// returned count is exact under concurrency.
func (r *UsageCounterRepositoryImpl) Increment(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error) {
	return r.increment(ctx, subscriptionID, feature, nil)
}

// IncrementIfBelow bumps the counter only while it is below ceiling.
// Returns ErrCeilingReached when the counter is already at the ceiling
// and ErrUsageConflict when the retry budget runs out.
func (r *UsageCounterRepositoryImpl) IncrementIfBelow(ctx context.Context, subscriptionID uint, feature vo.Feature, ceiling uint64) (uint64, error) {
	return r.increment(ctx, subscriptionID, feature, &ceiling)
}

// increment is a read-compare-swap loop: read the current count, then
// update only the row still holding that count. A concurrent writer makes
// the update match zero rows, in which case we re-read and try again.
// Two spenders can therefore never both advance from the same value.
func (r *UsageCounterRepositoryImpl) increment(ctx context.Context, subscriptionID uint, feature vo.Feature, ceiling *uint64) (uint64, error) {
	for attempt := 0; attempt < maxIncrementRetries; attempt++ {
		current, err := r.loadOrCreate(ctx, subscriptionID, feature)
		if err != nil {
			return 0, err
		}

		if ceiling != nil && current >= *ceiling {
			return 0, subscription.ErrCeilingReached
		}

		result := r.db.WithContext(ctx).Model(&models.UsageCounterModel{}).
			Where("subscription_id = ? AND feature = ? AND count = ?", subscriptionID, string(feature), current).
			Updates(map[string]interface{}{
				"count":      current + 1,
				"updated_at": biztime.NowUTC(),
			})
		if result.Error != nil {
			r.logger.Errorw("failed to increment usage counter", "error", result.Error, "subscription_id", subscriptionID, "feature", feature)
			return 0, fmt.Errorf("failed to increment usage counter: %w", result.Error)
		}
		if result.RowsAffected == 1 {
			return current + 1, nil
		}

		// Lost against a concurrent writer; re-read and retry.
	}

	r.logger.Warnw("usage counter increment exhausted retries",
		"subscription_id", subscriptionID,
		"feature", feature,
	)
	return 0, subscription.ErrUsageConflict
}

// loadOrCreate reads the current count, inserting the zero row on first
// use. A concurrent first use loses the insert race on the composite
// unique index and falls back to reading the winner's row.
func (r *UsageCounterRepositoryImpl) loadOrCreate(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error) {
	var model models.UsageCounterModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND feature = ?", subscriptionID, string(feature)).
		First(&model).Error
	if err == nil {
		return model.Count, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to get usage counter: %w", err)
	}

	model = models.UsageCounterModel{
		SubscriptionID: subscriptionID,
		Feature:        string(feature),
		Count:          0,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.UsageCounterModel
			if err := r.db.WithContext(ctx).
				Where("subscription_id = ? AND feature = ?", subscriptionID, string(feature)).
				First(&existing).Error; err != nil {
				return 0, fmt.Errorf("failed to get usage counter: %w", err)
			}
			return existing.Count, nil
		}
		return 0, fmt.Errorf("failed to create usage counter: %w", err)
	}

	return 0, nil
}

func (r *UsageCounterRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.UsageCounter, error) {
	var counterModels []*models.UsageCounterModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("feature ASC").
		Find(&counterModels).Error
	if err != nil {
		r.logger.Errorw("failed to list usage counters", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to list usage counters: %w", err)
	}

	return r.mapper.ToEntities(counterModels)
}
