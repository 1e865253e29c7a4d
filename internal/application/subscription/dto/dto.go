package dto

import (
	"time"

	"talenthub/internal/domain/subscription"
)

// PlanDTO is the presentation shape of a plan. Ceilings use the encoded
// integer form where -1 means unlimited.
type PlanDTO struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	ProductLine  string           `json:"product_line"`
	Ceilings     map[string]int64 `json:"ceilings"`
	ValidityDays int              `json:"validity_days"`
	Price        uint64           `json:"price"`
	Currency     string           `json:"currency"`
	Status       string           `json:"status"`
	SortOrder    int              `json:"sort_order"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type SubscriptionDTO struct {
	ID          string     `json:"id"`
	UserID      uint       `json:"user_id"`
	Plan        *PlanDTO   `json:"plan,omitempty"`
	ProductLine string     `json:"product_line"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	AutoRenew   bool       `json:"auto_renew"`
	IsActive    bool       `json:"is_active"`
	IsExpired   bool       `json:"is_expired"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UsageDTO reports one feature's consumption under a subscription.
// Remaining is omitted on the unlimited path.
type UsageDTO struct {
	Feature   string  `json:"feature"`
	Used      uint64  `json:"used"`
	Ceiling   int64   `json:"ceiling"`
	Unlimited bool    `json:"unlimited"`
	Remaining *uint64 `json:"remaining,omitempty"`
}

// ToPlanDTO converts a plan aggregate to its presentation shape.
func ToPlanDTO(plan *subscription.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}

	ceilings := make(map[string]int64)
	for feature, ceiling := range plan.Ceilings() {
		ceilings[string(feature)] = ceiling.Encoded()
	}

	return &PlanDTO{
		ID:           plan.SID(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		Category:     string(plan.Category()),
		ProductLine:  string(plan.ProductLine()),
		Ceilings:     ceilings,
		ValidityDays: plan.ValidityDays(),
		Price:        plan.Price(),
		Currency:     plan.Currency(),
		Status:       string(plan.Status()),
		SortOrder:    plan.SortOrder(),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

// ToPlanDTOList batch converts plans, skipping nil entries.
func ToPlanDTOList(plans []*subscription.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, plan := range plans {
		if plan != nil {
			dtos = append(dtos, ToPlanDTO(plan))
		}
	}
	return dtos
}

// ToSubscriptionDTO converts a subscription aggregate. plan may be nil
// when the caller has not resolved it.
func ToSubscriptionDTO(sub *subscription.Subscription, plan *subscription.Plan) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	now := time.Now()
	return &SubscriptionDTO{
		ID:          sub.SID(),
		UserID:      sub.UserID(),
		Plan:        ToPlanDTO(plan),
		ProductLine: string(sub.ProductLine()),
		Status:      string(sub.Status()),
		StartDate:   sub.StartDate(),
		EndDate:     sub.EndDate(),
		AutoRenew:   sub.AutoRenew(),
		IsActive:    sub.IsActiveAt(now),
		IsExpired:   sub.IsExpiredAt(now),
		CancelledAt: sub.CancelledAt(),
		CreatedAt:   sub.CreatedAt(),
		UpdatedAt:   sub.UpdatedAt(),
	}
}
