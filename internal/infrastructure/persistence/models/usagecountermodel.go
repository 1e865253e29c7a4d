package models

import (
	"time"

	"talenthub/internal/shared/constants"
)

// UsageCounterModel is the persistence model for per-feature usage
// counters. The composite unique index makes (subscription, feature) a
// single row, so conditional updates on count serialize concurrent
// spenders.
type UsageCounterModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;uniqueIndex:idx_usage_sub_feature"`
	Feature        string `gorm:"not null;size:64;uniqueIndex:idx_usage_sub_feature"`
	Count          uint64 `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (UsageCounterModel) TableName() string {
	return constants.TableUsageCounters
}
