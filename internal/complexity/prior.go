package complexity

import "math"

// #region prior

// DefaultPriorScaleBits normalizes the prior so typical one-sentence texts
// land well inside (0, 1].
const DefaultPriorScaleBits = 128.0

// Prior returns a Solomonoff-style simplicity weight in (0, 1] for text,
// strictly decreasing in the complexity estimate. Empty text yields 1.
func Prior(text string) float64 {
	return PriorFromBits(Estimate(text), DefaultPriorScaleBits)
}

// PriorFromBits maps a complexity estimate to 2^(-bits/scaleBits).
// A non-positive scale falls back to DefaultPriorScaleBits.
func PriorFromBits(bits, scaleBits float64) float64 {
	if scaleBits <= 0 {
		scaleBits = DefaultPriorScaleBits
	}
	if bits <= 0 {
		return 1
	}
	p := math.Exp2(-bits / scaleBits)
	if p <= 0 {
		// Exp2 underflows for pathologically long inputs; keep the prior
		// strictly positive so it still ranks rather than zeroing scores.
		return math.SmallestNonzeroFloat64
	}
	return p
}

// #endregion prior
