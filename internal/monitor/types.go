package monitor

import (
	"math"
	"time"
)

// RateSample is a timestamped raw counter snapshot for one network interface.
type RateSample struct {
	Time    time.Time
	RxBytes uint64
	TxBytes uint64
}

// RateSpeed is a wraparound-corrected byte delta over an interval.
// Secs is always positive; use NewRateSpeed to build one.
type RateSpeed struct {
	Bytes uint64
	Secs  float64
}

// Mbps returns the throughput in megabits per second.
func (s RateSpeed) Mbps() float64 {
	if s.Secs <= 0 {
		return 0
	}
	return float64(s.Bytes) * 8 / 1_000_000 / s.Secs
}

// RateSpeeds pairs the transmit and receive speeds of one interface at one poll.
type RateSpeeds struct {
	Tx RateSpeed
	Rx RateSpeed
}

// Peak is the ceiling of the highest tx and rx throughput seen in a window,
// in whole megabits per second. The two maxima are independent.
type Peak struct {
	TxMbps int
	RxMbps int
}

// ceilMbps rounds a throughput up to whole megabits, saturating at MaxInt32.
func ceilMbps(v float64) int {
	c := math.Ceil(v)
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	if c < 0 {
		return 0
	}
	return int(c)
}

// Snapshot is everything the dashboard shows for one poll.
type Snapshot struct {
	Time       time.Time
	CoreLoads  []float64 // busy ratio per core, each in [0,1]
	Links      []Link
	MemoryUsed float64 // used ratio in [0,1]
	TempC      float64
	Peak       Peak
}

// Link is the throughput of one monitored interface in a snapshot.
type Link struct {
	Name   string
	Speeds RateSpeeds
}
