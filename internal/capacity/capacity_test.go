package capacity

import (
	"testing"
	"time"
)

var base = time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

func hours(n int) time.Time {
	return base.Add(time.Duration(n) * time.Hour)
}

func nBookings(n int, start, end time.Time) []Interval {
	out := make([]Interval, n)
	for i := range out {
		out[i] = Interval{Start: start, End: end}
	}
	return out
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		count int
		want  Band
	}{
		{0, BandGood},
		{14, BandGood},
		{15, BandLimited}, // 14 -> 15 boundary
		{19, BandLimited},
		{20, BandFull}, // 19 -> 20 boundary
		{35, BandFull},
	}
	for _, c := range cases {
		if got := Classify(c.count, DefaultLimitedAt, DefaultMaxPerHour); got != c.want {
			t.Errorf("Classify(%d): got %s, want %s", c.count, got, c.want)
		}
	}
}

func TestBandMonotonicNoGaps(t *testing.T) {
	rank := map[Band]int{BandGood: 0, BandLimited: 1, BandFull: 2}

	prev := Classify(0, DefaultLimitedAt, DefaultMaxPerHour)
	for count := 1; count <= 40; count++ {
		got := Classify(count, DefaultLimitedAt, DefaultMaxPerHour)
		if rank[got] < rank[prev] {
			t.Fatalf("band moved backwards at count %d: %s -> %s", count, prev, got)
		}
		if rank[got] > rank[prev]+1 {
			t.Fatalf("band skipped a level at count %d: %s -> %s", count, prev, got)
		}
		prev = got
	}
}

func TestCountBucketsOverlap(t *testing.T) {
	bookings := []Interval{
		{Start: hours(0), End: hours(2)},                              // covers buckets 0 and 1
		{Start: hours(1), End: hours(2)},                              // bucket 1 only
		{Start: hours(0).Add(30 * time.Minute), End: hours(1)},        // partial hour, bucket 0 only
		{Start: hours(2), End: hours(3)},                              // bucket 2; end-exclusive of bucket 1
	}

	buckets := CountBuckets(hours(0), hours(3), bookings, DefaultLimitedAt, DefaultMaxPerHour)
	if len(buckets) != 3 {
		t.Fatalf("bucket count: got %d, want 3", len(buckets))
	}

	want := []int{2, 2, 1}
	for i, b := range buckets {
		if b.Count != want[i] {
			t.Errorf("bucket %d: got count %d, want %d", i, b.Count, want[i])
		}
	}
}

func TestCountBucketsTruncatesWindowStart(t *testing.T) {
	from := hours(0).Add(20 * time.Minute)
	buckets := CountBuckets(from, hours(1), nil, DefaultLimitedAt, DefaultMaxPerHour)

	if len(buckets) != 1 {
		t.Fatalf("bucket count: got %d, want 1", len(buckets))
	}
	if !buckets[0].Start.Equal(hours(0)) {
		t.Fatalf("bucket start: got %s, want %s", buckets[0].Start, hours(0))
	}
}

func TestMaxCountFindsBusiestHour(t *testing.T) {
	bookings := append(
		nBookings(19, hours(1), hours(2)),
		Interval{Start: hours(0), End: hours(3)},
	)

	if got := MaxCount(hours(0), hours(3), bookings); got != 20 {
		t.Fatalf("max count: got %d, want 20", got)
	}
}

func TestEndExclusiveBoundary(t *testing.T) {
	// A booking ending exactly at a bucket start does not occupy that bucket.
	b := Interval{Start: hours(0), End: hours(1)}
	if b.Overlaps(hours(1), hours(2)) {
		t.Fatal("booking ending at bucket start must not overlap the bucket")
	}
	if !b.Overlaps(hours(0), hours(1)) {
		t.Fatal("booking must overlap its own hour")
	}
}
