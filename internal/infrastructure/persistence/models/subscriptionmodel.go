package models

import (
	"time"

	"talenthub/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions.
//
// ActiveKey carries "<user_id>:<product_line>" while the row's status is
// active and NULL otherwise. The unique index on it enforces at most one
// active subscription per (user, product line) at the data layer; MySQL
// permits any number of NULLs in a unique index, so ended subscriptions
// never collide.
type SubscriptionModel struct {
	ID          uint    `gorm:"primarykey"`
	SID         string  `gorm:"column:sid;uniqueIndex;not null;size:32"`
	UserID      uint    `gorm:"not null;index"`
	PlanID      uint    `gorm:"not null;index"`
	ProductLine string  `gorm:"not null;size:30"`
	Status      string  `gorm:"not null;size:20;default:active;index"`
	ActiveKey   *string `gorm:"uniqueIndex;size:64"`
	StartDate   time.Time
	EndDate     time.Time `gorm:"index"`
	AutoRenew   bool      `gorm:"default:false"`
	CancelledAt *time.Time
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
