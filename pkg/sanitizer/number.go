package sanitizer

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative floors a money amount at zero. Balances never go negative even
// when a payment exceeds what is owed.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
