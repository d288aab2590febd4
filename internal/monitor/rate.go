package monitor

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInterval is returned when a rate is requested over a non-positive interval.
var ErrInvalidInterval = errors.New("invalid interval: elapsed time must be positive")

// CounterMax returns the largest value a hardware counter of the given width can hold.
// Widths outside 1..64 are treated as 64 bits.
func CounterMax(bits int) uint64 {
	if bits <= 0 || bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}

// Delta returns how far a monotonically incrementing counter advanced from
// old to new. A smaller new value means the counter wrapped past maxValue once.
func Delta(old, new, maxValue uint64) uint64 {
	if new >= old {
		return new - old
	}
	return maxValue - old + new
}

// NewRateSpeed builds a RateSpeed, rejecting non-positive intervals.
func NewRateSpeed(bytes uint64, secs float64) (RateSpeed, error) {
	if !(secs > 0) {
		return RateSpeed{}, fmt.Errorf("%w (got %v s)", ErrInvalidInterval, secs)
	}
	return RateSpeed{Bytes: bytes, Secs: secs}, nil
}

// Speeds computes the tx/rx speeds between two successive samples of one interface.
func Speeds(prev, cur RateSample, maxValue uint64) (RateSpeeds, error) {
	secs := cur.Time.Sub(prev.Time).Seconds()

	tx, err := NewRateSpeed(Delta(prev.TxBytes, cur.TxBytes, maxValue), secs)
	if err != nil {
		return RateSpeeds{}, err
	}
	rx, err := NewRateSpeed(Delta(prev.RxBytes, cur.RxBytes, maxValue), secs)
	if err != nil {
		return RateSpeeds{}, err
	}

	return RateSpeeds{Tx: tx, Rx: rx}, nil
}
