package valueobjects

import (
	"fmt"
)

// legacySentinelUnlimited is the storage-level encoding of an unlimited
// ceiling. It must never leak into arithmetic; conversion happens only at
// the persistence and transport boundaries.
const legacySentinelUnlimited = -1

// Ceiling is the maximum permitted usage count for a feature under a plan.
// It is either bounded by a non-negative limit or unlimited.
type Ceiling struct {
	unlimited bool
	limit     uint64
}

// NewBoundedCeiling creates a ceiling capped at limit uses per subscription.
func NewBoundedCeiling(limit uint64) Ceiling {
	return Ceiling{limit: limit}
}

// NewUnlimitedCeiling creates a ceiling that never denies.
func NewUnlimitedCeiling() Ceiling {
	return Ceiling{unlimited: true}
}

// ZeroCeiling is the ceiling applied to features a plan does not grant.
// Absence is never interpreted permissively.
func ZeroCeiling() Ceiling {
	return Ceiling{}
}

// CeilingFromEncoded converts the storage encoding (-1 means unlimited)
// into a Ceiling. Any other negative value is rejected.
func CeilingFromEncoded(v int64) (Ceiling, error) {
	if v == legacySentinelUnlimited {
		return NewUnlimitedCeiling(), nil
	}
	if v < 0 {
		return Ceiling{}, fmt.Errorf("invalid ceiling encoding: %d", v)
	}
	return NewBoundedCeiling(uint64(v)), nil
}

// Encoded returns the storage encoding of the ceiling (-1 for unlimited).
func (c Ceiling) Encoded() int64 {
	if c.unlimited {
		return legacySentinelUnlimited
	}
	return int64(c.limit)
}

// IsUnlimited reports whether the ceiling never denies.
func (c Ceiling) IsUnlimited() bool {
	return c.unlimited
}

// Limit returns the bounded limit. It is only meaningful when the ceiling
// is not unlimited.
func (c Ceiling) Limit() uint64 {
	return c.limit
}

// Allows reports whether one more use is permitted given the current count.
func (c Ceiling) Allows(used uint64) bool {
	if c.unlimited {
		return true
	}
	return used < c.limit
}

// Remaining returns the number of uses left given the current count.
// The second return value is false when the ceiling is unlimited.
func (c Ceiling) Remaining(used uint64) (uint64, bool) {
	if c.unlimited {
		return 0, false
	}
	if used >= c.limit {
		return 0, true
	}
	return c.limit - used, true
}

func (c Ceiling) String() string {
	if c.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", c.limit)
}
