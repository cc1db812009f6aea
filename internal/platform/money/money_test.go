package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.235, 1.24},
		{1.005, 1.0},  // 1.005 is stored as 1.00499..., rounds down
		{37.4961, 37.50},
		{-1.235, -1.24},
		{99.999, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name                string
		q, rate, tax, disc  float64
		want                float64
	}{
		{"plain", 10, 3.333, 0, 0, 33.33},
		{"with tax", 10, 3.333, 17, 0, 39.00},
		{"tax and discount", 10, 3.333, 17, 1.5, 37.50},
		{"discount only", 2, 5, 0, 1, 9},
		{"zero quantity", 0, 5, 17, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.q, tt.rate, tt.tax, tt.disc); got != tt.want {
				t.Errorf("LineTotal = %v, want %v", got, tt.want)
			}
		})
	}
}

// Recomputing a total from the same inputs must yield the stored value.
func TestLineTotal_Stable(t *testing.T) {
	first := LineTotal(7, 12.345, 17, 2.5)
	for i := 0; i < 100; i++ {
		if got := LineTotal(7, 12.345, 17, 2.5); got != first {
			t.Fatalf("recompute %d = %v, want %v", i, got, first)
		}
	}
}

func TestSum(t *testing.T) {
	// 0.1+0.2 style drift must not survive Sum.
	if got := Sum(0.1, 0.2); got != 0.3 {
		t.Errorf("Sum(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Sum(); got != 0 {
		t.Errorf("Sum() = %v, want 0", got)
	}
	if got := Sum(10.11, 20.22, 30.33); got != 60.66 {
		t.Errorf("Sum = %v, want 60.66", got)
	}
}
