package complexity

// #region distance

// Distance computes the normalized compression distance between two texts:
//
//	(C(a+b) - min(C(a), C(b))) / max(C(a), C(b))
//
// Identical texts land near 0, unrelated texts near or above 1. Symmetric by
// construction up to the compressor's concatenation-order sensitivity, which
// is neutralized by evaluating both orders and averaging.
func Distance(a, b string) float64 {
	if a == b {
		// The compressor's per-copy match overhead would otherwise dominate
		// C(a) for short texts and push self-distance well above zero.
		return 0
	}

	ca := Estimate(a)
	cb := Estimate(b)
	minC, maxC := ca, cb
	if cb < ca {
		minC, maxC = cb, ca
	}
	if maxC == 0 {
		return 0
	}

	cab := (Estimate(a+b) + Estimate(b+a)) / 2.0

	d := (cab - minC) / maxC
	if d < 0 {
		d = 0
	}
	return d
}

// #endregion distance
