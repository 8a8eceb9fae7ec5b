// Package capacity counts overlapping bookings per hour bucket and classifies
// occupancy into bands. The booking service uses the same counter to enforce
// the per-hour cap; the calendar endpoints use it for color-coding.
package capacity

import "time"

type Band string

const (
	BandGood    Band = "good"
	BandLimited Band = "limited"
	BandFull    Band = "full"
)

// Defaults; the effective values come from configuration.
const (
	DefaultLimitedAt  = 15
	DefaultMaxPerHour = 20
)

// Interval is a half-open booking window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the interval occupies any part of [bucketStart, bucketEnd).
func (i Interval) Overlaps(bucketStart, bucketEnd time.Time) bool {
	return i.Start.Before(bucketEnd) && i.End.After(bucketStart)
}

// HourBucket is one hour of the requested window with its occupancy count.
type HourBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
	Band  Band      `json:"band"`
}

// Classify maps an occupancy count to its band: below limitedAt is good,
// below maxPerHour is limited, everything else is full.
func Classify(count, limitedAt, maxPerHour int) Band {
	switch {
	case count < limitedAt:
		return BandGood
	case count < maxPerHour:
		return BandLimited
	default:
		return BandFull
	}
}

// CountBuckets walks [from, to) in hour steps counting overlapping bookings.
// from is truncated to the hour; a to inside an hour extends to its end.
func CountBuckets(from, to time.Time, bookings []Interval, limitedAt, maxPerHour int) []HourBucket {
	start := from.Truncate(time.Hour)

	var buckets []HourBucket
	for cur := start; cur.Before(to); cur = cur.Add(time.Hour) {
		bucketEnd := cur.Add(time.Hour)
		count := 0
		for _, b := range bookings {
			if b.Overlaps(cur, bucketEnd) {
				count++
			}
		}
		buckets = append(buckets, HourBucket{
			Start: cur,
			Count: count,
			Band:  Classify(count, limitedAt, maxPerHour),
		})
	}
	return buckets
}

// MaxCount returns the highest bucket occupancy across [from, to).
func MaxCount(from, to time.Time, bookings []Interval) int {
	max := 0
	for _, b := range CountBuckets(from, to, bookings, DefaultLimitedAt, DefaultMaxPerHour) {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}
