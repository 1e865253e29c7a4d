package valueobjects

import (
	"strings"
	"testing"
)

func TestNewFeature(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"known feature", "cv_view", false},
		{"custom feature", "featured_listing", false},
		{"empty", "", true},
		{"uppercase", "CV_VIEW", true},
		{"leading digit", "1cv", true},
		{"spaces", "cv view", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFeature(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewFeature(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("NewFeature(%q) unexpected error = %v", tt.input, err)
				return
			}
			if f.String() != tt.input {
				t.Errorf("String() = %q, want %q", f.String(), tt.input)
			}
		})
	}
}

func TestParseProductLine(t *testing.T) {
	if _, err := ParseProductLine("recruiter"); err != nil {
		t.Errorf("ParseProductLine(recruiter) unexpected error = %v", err)
	}
	if _, err := ParseProductLine("training_institution"); err != nil {
		t.Errorf("ParseProductLine(training_institution) unexpected error = %v", err)
	}
	if _, err := ParseProductLine("jobseeker"); err == nil {
		t.Error("ParseProductLine(jobseeker) expected error, got nil")
	}
	if _, err := ParseProductLine(""); err == nil {
		t.Error("ParseProductLine(empty) expected error, got nil")
	}
}

func TestParsePlanCategory(t *testing.T) {
	for _, valid := range []string{"standard", "premium", "enterprise"} {
		if _, err := ParsePlanCategory(valid); err != nil {
			t.Errorf("ParsePlanCategory(%s) unexpected error = %v", valid, err)
		}
	}

	// category is mandatory and explicit; nothing is inferred from names
	if _, err := ParsePlanCategory(""); err == nil {
		t.Error("ParsePlanCategory(empty) expected error, got nil")
	}
	if _, err := ParsePlanCategory("Recrutement Complet"); err == nil {
		t.Error("ParsePlanCategory(display name) expected error, got nil")
	}
}
