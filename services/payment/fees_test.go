package payment

import "testing"

func TestComputeFeeSplit(t *testing.T) {
	cases := []struct {
		amount     float64
		percent    float64
		wantFee    float64
		wantPayout float64
	}{
		{1000, 10, 100, 900},
		{999, 10, 99.9, 899.1},
		{33.33, 10, 3.33, 30},
		{0.01, 10, 0, 0.01},
		{1000, 0, 0, 1000},
		{1500, 12.5, 187.5, 1312.5},
	}

	for _, tc := range cases {
		fee, payout := ComputeFeeSplit(tc.amount, tc.percent)
		if fee != tc.wantFee {
			t.Errorf("ComputeFeeSplit(%v, %v) fee = %v, want %v", tc.amount, tc.percent, fee, tc.wantFee)
		}
		if payout != tc.wantPayout {
			t.Errorf("ComputeFeeSplit(%v, %v) payout = %v, want %v", tc.amount, tc.percent, payout, tc.wantPayout)
		}
		if round2(fee+payout) != round2(tc.amount) {
			t.Errorf("split of %v does not sum back: %v + %v", tc.amount, fee, payout)
		}
	}
}
