package constants

// Database table names.
const (
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"
	TableUsageCounters = "usage_counters"
)
