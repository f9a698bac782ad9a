package playback

import (
	"time"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
)

// Interval bounds and the speed slider granularity.
const (
	DefaultInterval = time.Second
	MinInterval     = apperrors.MinInterval
	MaxInterval     = apperrors.MaxInterval
	SpeedStep       = 100
)

// speedOffset is the sum of the slider bounds in milliseconds.
const speedOffset = int(MinInterval/time.Millisecond + MaxInterval/time.Millisecond)

// ClampInterval limits d to [MinInterval, MaxInterval].
func ClampInterval(d time.Duration) time.Duration {
	return min(max(d, MinInterval), MaxInterval)
}

// SpeedToInterval maps a slider speed in [100, 2000] to a tick interval.
// Speeds outside the range are clamped.
func SpeedToInterval(speed int) time.Duration {
	ms := speedOffset - speed
	return ClampInterval(time.Duration(ms) * time.Millisecond)
}

// IntervalToSpeed is the inverse of [SpeedToInterval].
func IntervalToSpeed(d time.Duration) int {
	return speedOffset - int(ClampInterval(d)/time.Millisecond)
}

// Faster shortens d by one slider step.
func Faster(d time.Duration) time.Duration {
	return ClampInterval(d - SpeedStep*time.Millisecond)
}

// Slower lengthens d by one slider step.
func Slower(d time.Duration) time.Duration {
	return ClampInterval(d + SpeedStep*time.Millisecond)
}
