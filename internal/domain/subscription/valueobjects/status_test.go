package valueobjects

import "testing"

func TestSubscriptionStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from SubscriptionStatus
		to   SubscriptionStatus
		want bool
	}{
		{"active to expired", StatusActive, StatusExpired, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"expired to active", StatusExpired, StatusActive, false},
		{"expired to cancelled", StatusExpired, StatusCancelled, false},
		{"cancelled to active", StatusCancelled, StatusActive, false},
		{"cancelled to expired", StatusCancelled, StatusExpired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSubscriptionStatusIsTerminal(t *testing.T) {
	if StatusActive.IsTerminal() {
		t.Error("active must not be terminal")
	}
	if !StatusExpired.IsTerminal() {
		t.Error("expired must be terminal")
	}
	if !StatusCancelled.IsTerminal() {
		t.Error("cancelled must be terminal")
	}
}
