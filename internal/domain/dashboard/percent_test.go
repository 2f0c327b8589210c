package dashboard

import "testing"

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name       string
		this, last int
		want       float64
	}{
		{"growth", 15, 10, 50},
		{"decline", 5, 10, -50},
		{"flat", 10, 10, 0},
		{"both zero", 0, 0, 0},
		{"growth from nothing", 7, 0, 100},
		{"drop to nothing", 0, 10, -100},
		{"rounds to two places", 1, 3, -66.67},
		{"small growth", 101, 100, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PercentChange(tc.this, tc.last); got != tc.want {
				t.Errorf("PercentChange(%d, %d) = %v, want %v", tc.this, tc.last, got, tc.want)
			}
		})
	}
}

func TestPercentChange_SentinelNotScaled(t *testing.T) {
	// Growth from an empty period is always the fixed 100, no matter
	// how large the current period is.
	if got := PercentChange(5000, 0); got != 100 {
		t.Errorf("PercentChange(5000, 0) = %v, want 100", got)
	}
}
