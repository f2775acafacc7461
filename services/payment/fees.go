package payment

import "math"

// round2 rounds to two decimal places, the precision all money amounts are
// stored at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeFeeSplit splits a captured amount into the platform fee and the
// stylist's net share. Both sides are rounded to two decimals and the
// stylist share is derived by subtraction so the two always sum back to the
// rounded gross amount.
func ComputeFeeSplit(amount, feePercent float64) (platformFee, stylistAmount float64) {
	platformFee = round2(amount * feePercent / 100)
	stylistAmount = round2(amount - platformFee)
	return platformFee, stylistAmount
}
