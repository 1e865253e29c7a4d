package valueobjects

import "fmt"

// PlanCategory is the explicit commercial tier of a plan. It replaces the
// legacy practice of inferring the tier from the display name.
type PlanCategory string

const (
	CategoryStandard   PlanCategory = "standard"
	CategoryPremium    PlanCategory = "premium"
	CategoryEnterprise PlanCategory = "enterprise"
)

var validCategories = map[PlanCategory]bool{
	CategoryStandard:   true,
	CategoryPremium:    true,
	CategoryEnterprise: true,
}

// ParsePlanCategory validates and returns a plan category. The category is
// mandatory; there is no default.
func ParsePlanCategory(s string) (PlanCategory, error) {
	c := PlanCategory(s)
	if !validCategories[c] {
		return "", fmt.Errorf("invalid plan category: %s", s)
	}
	return c, nil
}

// IsValid reports whether the category is a known value.
func (c PlanCategory) IsValid() bool {
	return validCategories[c]
}

func (c PlanCategory) String() string {
	return string(c)
}
