package valueobjects

// SubscriptionStatus is the lifecycle state of a subscription.
// Expired and cancelled are terminal; no transition leads back to active.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// ValidStatuses is the set of persistable subscription statuses.
var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}

var statusTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusActive:    {StatusExpired, StatusCancelled},
	StatusExpired:   {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the status machine permits the move.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

func (s SubscriptionStatus) String() string {
	return string(s)
}
