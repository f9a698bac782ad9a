package errors

import "time"

// Bounds accepted by the editing layer. The path engine itself works on any
// well-formed graph; these limits describe what the tool lets a user build.
const (
	MinNodes  = 2
	MaxNodes  = 15
	MinWeight = 1
	MaxWeight = 99

	MinInterval = 100 * time.Millisecond
	MaxInterval = 2000 * time.Millisecond
)

// ValidateNodeCount checks that n is a node count the editor supports.
func ValidateNodeCount(n int) error {
	if n < MinNodes || n > MaxNodes {
		return New(ErrCodeInvalidInput, "node count %d out of range [%d, %d]", n, MinNodes, MaxNodes)
	}
	return nil
}

// ValidateWeight checks that w is a positive edge weight within the editor's range.
func ValidateWeight(w int) error {
	if w < MinWeight || w > MaxWeight {
		return New(ErrCodeInvalidEdge, "weight %d out of range [%d, %d]", w, MinWeight, MaxWeight)
	}
	return nil
}

// ValidateInterval checks that d lies within the playback interval range.
func ValidateInterval(d time.Duration) error {
	if d < MinInterval || d > MaxInterval {
		return New(ErrCodeInvalidInput, "interval %s out of range [%s, %s]", d, MinInterval, MaxInterval)
	}
	return nil
}

// ValidateDensity checks that p is a usable edge probability for random graphs.
func ValidateDensity(p float64) error {
	if p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "density %.2f out of range [0, 1]", p)
	}
	return nil
}
