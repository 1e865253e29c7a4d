package subscription

import (
	"fmt"
	"sort"
	"time"

	vo "talenthub/internal/domain/subscription/valueobjects"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

var validCurrencies = map[string]bool{
	"EUR": true,
	"USD": true,
	"XOF": true,
	"MAD": true,
	"GBP": true,
}

// Plan is a purchasable bundle of per-feature usage ceilings and a validity
// duration. Plans are read-only from the entitlement core's perspective;
// only the admin surface mutates them. Deactivation blocks new
// subscriptions, never existing entitlements.
type Plan struct {
	id           uint
	sid          string
	name         string
	description  string
	category     vo.PlanCategory
	productLine  vo.ProductLine
	ceilings     map[vo.Feature]vo.Ceiling
	validityDays int
	price        uint64
	currency     string
	status       PlanStatus
	sortOrder    int
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPlan(name, description string, category vo.PlanCategory, productLine vo.ProductLine,
	ceilings map[vo.Feature]vo.Ceiling, validityDays int, price uint64, currency string) (*Plan, error) {

	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid plan category: %s", category)
	}
	if !productLine.IsValid() {
		return nil, fmt.Errorf("invalid product line: %s", productLine)
	}
	if validityDays <= 0 {
		return nil, fmt.Errorf("validity period must be at least one day")
	}
	if !validCurrencies[currency] {
		return nil, fmt.Errorf("invalid currency code: %s", currency)
	}
	if len(ceilings) == 0 {
		return nil, fmt.Errorf("plan must grant at least one feature")
	}

	copied := make(map[vo.Feature]vo.Ceiling, len(ceilings))
	for f, c := range ceilings {
		copied[f] = c
	}

	now := time.Now()
	return &Plan{
		name:         name,
		description:  description,
		category:     category,
		productLine:  productLine,
		ceilings:     copied,
		validityDays: validityDays,
		price:        price,
		currency:     currency,
		status:       PlanStatusActive,
		sortOrder:    0,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(id uint, sid, name, description string, category vo.PlanCategory,
	productLine vo.ProductLine, ceilings map[vo.Feature]vo.Ceiling, validityDays int,
	price uint64, currency string, status string, sortOrder, version int,
	createdAt, updatedAt time.Time) (*Plan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid plan category: %s", category)
	}
	if !productLine.IsValid() {
		return nil, fmt.Errorf("invalid product line: %s", productLine)
	}

	planStatus := PlanStatus(status)
	if planStatus != PlanStatusActive && planStatus != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}

	if ceilings == nil {
		ceilings = make(map[vo.Feature]vo.Ceiling)
	}

	return &Plan{
		id:           id,
		sid:          sid,
		name:         name,
		description:  description,
		category:     category,
		productLine:  productLine,
		ceilings:     ceilings,
		validityDays: validityDays,
		price:        price,
		currency:     currency,
		status:       planStatus,
		sortOrder:    sortOrder,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) SID() string {
	return p.sid
}

// SetSID assigns the public identifier, used by the persistence layer only.
func (p *Plan) SetSID(sid string) error {
	if p.sid != "" {
		return fmt.Errorf("plan SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("plan SID cannot be empty")
	}
	p.sid = sid
	return nil
}

func (p *Plan) Name() string {
	return p.name
}

func (p *Plan) Description() string {
	return p.description
}

func (p *Plan) Category() vo.PlanCategory {
	return p.category
}

func (p *Plan) ProductLine() vo.ProductLine {
	return p.productLine
}

func (p *Plan) ValidityDays() int {
	return p.validityDays
}

func (p *Plan) Price() uint64 {
	return p.price
}

func (p *Plan) Currency() string {
	return p.currency
}

func (p *Plan) Status() PlanStatus {
	return p.status
}

func (p *Plan) SortOrder() int {
	return p.sortOrder
}

// Version returns the aggregate version for optimistic locking
func (p *Plan) Version() int {
	return p.version
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Plan) IsActive() bool {
	return p.status == PlanStatusActive
}

// CeilingFor resolves the ceiling governing a feature. A feature absent
// from the plan gets a zero ceiling: absence never grants access.
func (p *Plan) CeilingFor(feature vo.Feature) vo.Ceiling {
	if c, ok := p.ceilings[feature]; ok {
		return c
	}
	return vo.ZeroCeiling()
}

// Grants reports whether the plan meters the feature at all.
func (p *Plan) Grants(feature vo.Feature) bool {
	_, ok := p.ceilings[feature]
	return ok
}

// Ceilings returns a copy of the per-feature ceilings.
func (p *Plan) Ceilings() map[vo.Feature]vo.Ceiling {
	copied := make(map[vo.Feature]vo.Ceiling, len(p.ceilings))
	for f, c := range p.ceilings {
		copied[f] = c
	}
	return copied
}

// Features returns the granted feature names in stable order.
func (p *Plan) Features() []vo.Feature {
	features := make([]vo.Feature, 0, len(p.ceilings))
	for f := range p.ceilings {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}

func (p *Plan) Activate() {
	if p.status == PlanStatusActive {
		return
	}
	p.status = PlanStatusActive
	p.updatedAt = time.Now()
	p.version++
}

func (p *Plan) Deactivate() {
	if p.status == PlanStatusInactive {
		return
	}
	p.status = PlanStatusInactive
	p.updatedAt = time.Now()
	p.version++
}

func (p *Plan) UpdatePrice(price uint64, currency string) error {
	if !validCurrencies[currency] {
		return fmt.Errorf("invalid currency code: %s", currency)
	}
	p.price = price
	p.currency = currency
	p.updatedAt = time.Now()
	p.version++
	return nil
}

func (p *Plan) UpdateDescription(description string) {
	p.description = description
	p.updatedAt = time.Now()
	p.version++
}

// UpdateCeilings replaces the full ceiling map. Existing subscriptions keep
// resolving through their own plan reference, so this only affects reads
// made after the update.
func (p *Plan) UpdateCeilings(ceilings map[vo.Feature]vo.Ceiling) error {
	if len(ceilings) == 0 {
		return fmt.Errorf("plan must grant at least one feature")
	}
	copied := make(map[vo.Feature]vo.Ceiling, len(ceilings))
	for f, c := range ceilings {
		copied[f] = c
	}
	p.ceilings = copied
	p.updatedAt = time.Now()
	p.version++
	return nil
}

func (p *Plan) SetSortOrder(order int) {
	p.sortOrder = order
	p.updatedAt = time.Now()
	p.version++
}
