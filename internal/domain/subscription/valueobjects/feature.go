package valueobjects

import (
	"fmt"
	"regexp"
)

// Feature identifies a metered resource whose consumption is counted
// against a plan ceiling.
type Feature string

const (
	FeatureCVView          Feature = "cv_view"
	FeatureJobPosting      Feature = "job_posting"
	FeatureTrainingOffer   Feature = "training_offer"
	FeatureCandidateSearch Feature = "candidate_search"
)

var featureNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NewFeature validates and returns a feature name. Names are lowercase
// snake_case so they can double as counter keys and JSON map keys.
func NewFeature(name string) (Feature, error) {
	if name == "" {
		return "", fmt.Errorf("feature name is required")
	}
	if len(name) > 64 {
		return "", fmt.Errorf("feature name too long (max 64 characters)")
	}
	if !featureNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid feature name: %s", name)
	}
	return Feature(name), nil
}

func (f Feature) String() string {
	return string(f)
}
