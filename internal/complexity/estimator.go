package complexity

import (
	"bytes"
	"compress/flate"
)

// #region baseline

// flateOverheadBytes is the compressed size of the empty input — the fixed
// framing cost of a flate stream, subtracted so estimates track content only.
var flateOverheadBytes = compressedLen("")

// #endregion baseline

// #region estimate

// Estimate returns an approximate Kolmogorov complexity for text, in bits.
// The proxy is the DEFLATE-compressed length of the UTF-8 bytes, minus the
// fixed stream overhead. Deterministic and pure; only relative orderings
// between estimates are meaningful. The empty string estimates to exactly 0.
func Estimate(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	n := compressedLen(text) - flateOverheadBytes
	if n < 1 {
		n = 1
	}
	return float64(n) * 8.0
}

// compressedLen compresses text at the highest flate level and returns the
// stream length in bytes.
func compressedLen(text string) int {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		// Only possible with an invalid level constant.
		panic(err)
	}
	w.Write([]byte(text))
	w.Close()
	return buf.Len()
}

// #endregion estimate
