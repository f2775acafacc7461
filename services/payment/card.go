package payment

import "strings"

// DetectCardBrand classifies a card number by its issuer prefix ranges.
// Unknown prefixes return "Unknown"; the number itself is never stored.
func DetectCardBrand(cardNumber string) string {
	n := strings.NewReplacer(" ", "", "-", "").Replace(cardNumber)
	if n == "" {
		return "Unknown"
	}

	if strings.HasPrefix(n, "4") {
		return "Visa"
	}

	// Mastercard: 51-55 or 2221-2720.
	if len(n) >= 2 && n[:2] >= "51" && n[:2] <= "55" {
		return "Mastercard"
	}
	if len(n) >= 4 && n[:4] >= "2221" && n[:4] <= "2720" {
		return "Mastercard"
	}

	if len(n) >= 2 && (n[:2] == "34" || n[:2] == "37") {
		return "American Express"
	}

	// Discover: 6011, 622126-622925, 644-649, 65.
	if strings.HasPrefix(n, "6") {
		switch {
		case len(n) >= 4 && n[:4] == "6011":
			return "Discover"
		case len(n) >= 6 && n[:6] >= "622126" && n[:6] <= "622925":
			return "Discover"
		case len(n) >= 3 && n[:3] >= "644" && n[:3] <= "649":
			return "Discover"
		case len(n) >= 2 && n[:2] == "65":
			return "Discover"
		}
	}

	return "Unknown"
}

// lastFour returns the trailing four digits of an account or card number,
// or the whole string when it is shorter.
func lastFour(number string) string {
	n := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}
