package payment

import "testing"

func TestDetectCardBrand(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "Visa"},
		{"4012-8888-8888-1881", "Visa"},
		{"5105105105105100", "Mastercard"},
		{"5500 0000 0000 0004", "Mastercard"},
		{"2221000000000009", "Mastercard"},
		{"2720999999999996", "Mastercard"},
		{"340000000000009", "American Express"},
		{"370000000000002", "American Express"},
		{"6011000000000004", "Discover"},
		{"6221261111111117", "Discover"},
		{"6445000000000007", "Discover"},
		{"6500000000000002", "Discover"},
		{"1234567890123456", "Unknown"},
		{"5600000000000003", "Unknown"}, // 56 is outside the Mastercard range
		{"", "Unknown"},
	}

	for _, tc := range cases {
		if got := DetectCardBrand(tc.number); got != tc.want {
			t.Errorf("DetectCardBrand(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestLastFour(t *testing.T) {
	if got := lastFour("4111 1111 1111 1234"); got != "1234" {
		t.Errorf("lastFour = %q, want 1234", got)
	}
	if got := lastFour("123"); got != "123" {
		t.Errorf("lastFour short input = %q, want 123", got)
	}
}
