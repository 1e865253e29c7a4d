package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talenthub/internal/shared/constants"
)

// PlanModel is the persistence model for subscription plans, the
// anti-corruption layer between domain and database. Ceilings hold the
// per-feature JSON map in encoded form: -1 means unlimited.
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Name         string `gorm:"not null;size:100"`
	Description  string `gorm:"size:500"`
	Category     string `gorm:"not null;size:20;index"`
	ProductLine  string `gorm:"not null;size:30;index"`
	Ceilings     datatypes.JSON
	ValidityDays int    `gorm:"not null"`
	Price        uint64 `gorm:"not null"`
	Currency     string `gorm:"not null;size:3"`
	Status       string `gorm:"not null;size:20;default:active;index"`
	SortOrder    int    `gorm:"default:0"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
