package valueobjects

import "fmt"

// ProductLine is the independent subscription domain within which the
// one-active-subscription-per-user invariant is scoped.
type ProductLine string

const (
	ProductLineRecruiter           ProductLine = "recruiter"
	ProductLineTrainingInstitution ProductLine = "training_institution"
)

var validProductLines = map[ProductLine]bool{
	ProductLineRecruiter:           true,
	ProductLineTrainingInstitution: true,
}

// ParseProductLine validates and returns a product line.
func ParseProductLine(s string) (ProductLine, error) {
	line := ProductLine(s)
	if !validProductLines[line] {
		return "", fmt.Errorf("invalid product line: %s", s)
	}
	return line, nil
}

// IsValid reports whether the product line is a known value.
func (p ProductLine) IsValid() bool {
	return validProductLines[p]
}

func (p ProductLine) String() string {
	return string(p)
}
