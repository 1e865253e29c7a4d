package valueobjects

import "testing"

func TestCeilingFromEncoded(t *testing.T) {
	tests := []struct {
		name          string
		encoded       int64
		wantErr       bool
		wantUnlimited bool
		wantLimit     uint64
	}{
		{
			name:          "unlimited sentinel",
			encoded:       -1,
			wantUnlimited: true,
		},
		{
			name:      "zero ceiling",
			encoded:   0,
			wantLimit: 0,
		},
		{
			name:      "bounded ceiling",
			encoded:   25,
			wantLimit: 25,
		},
		{
			name:    "invalid negative",
			encoded: -2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CeilingFromEncoded(tt.encoded)

			if tt.wantErr {
				if err == nil {
					t.Errorf("CeilingFromEncoded(%d) expected error, got nil", tt.encoded)
				}
				return
			}

			if err != nil {
				t.Errorf("CeilingFromEncoded(%d) unexpected error = %v", tt.encoded, err)
				return
			}
			if c.IsUnlimited() != tt.wantUnlimited {
				t.Errorf("IsUnlimited() = %v, want %v", c.IsUnlimited(), tt.wantUnlimited)
			}
			if !tt.wantUnlimited && c.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", c.Limit(), tt.wantLimit)
			}
			if c.Encoded() != tt.encoded {
				t.Errorf("Encoded() = %d, want round-trip %d", c.Encoded(), tt.encoded)
			}
		})
	}
}

func TestCeilingAllows(t *testing.T) {
	tests := []struct {
		name    string
		ceiling Ceiling
		used    uint64
		want    bool
	}{
		{"unlimited always allows", NewUnlimitedCeiling(), 1 << 40, true},
		{"below limit", NewBoundedCeiling(5), 4, true},
		{"at limit", NewBoundedCeiling(5), 5, false},
		{"above limit", NewBoundedCeiling(5), 6, false},
		{"zero ceiling denies first use", ZeroCeiling(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ceiling.Allows(tt.used); got != tt.want {
				t.Errorf("Allows(%d) = %v, want %v", tt.used, got, tt.want)
			}
		})
	}
}

func TestCeilingRemaining(t *testing.T) {
	c := NewBoundedCeiling(5)

	remaining, bounded := c.Remaining(2)
	if !bounded {
		t.Fatal("Remaining() bounded = false, want true")
	}
	if remaining != 3 {
		t.Errorf("Remaining(2) = %d, want 3", remaining)
	}

	// usage never exceeds the ceiling, but the arithmetic must stay safe
	remaining, _ = c.Remaining(7)
	if remaining != 0 {
		t.Errorf("Remaining(7) = %d, want 0", remaining)
	}

	if _, bounded := NewUnlimitedCeiling().Remaining(100); bounded {
		t.Error("unlimited ceiling reported a bounded remaining value")
	}
}
