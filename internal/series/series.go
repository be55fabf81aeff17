// Package series turns raw mention timestamps into fixed-interval bucket
// counts suitable for charting several terms on one shared axis.
package series

import "time"

// Point is one bucket of the series: the bucket's start time and how many
// mentions fell into it.
type Point struct {
	Time  time.Time
	Count int
}

type Series []Point

// Build buckets the event times into an interval-spaced grid covering
// [start, now]. The grid has ceil((now-start)/interval)+1 buckets and is
// zero-filled, so its length depends only on (start, now, interval) and not
// on how many events there were. Events outside the grid are clamped into
// the nearest bucket.
func Build(events []time.Time, start, now time.Time, interval time.Duration) Series {
	if interval <= 0 {
		interval = time.Minute
	}
	if now.Before(start) {
		now = start
	}

	elapsed := now.Sub(start)
	n := int(elapsed/interval) + 1
	if elapsed%interval != 0 {
		n++
	}

	s := make(Series, n)
	for i := range s {
		s[i].Time = start.Add(time.Duration(i) * interval)
	}

	for _, t := range events {
		idx := int(t.Sub(start) / interval)
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		s[idx].Count++
	}
	return s
}

// Max returns the largest bucket count, 0 for an empty series.
func (s Series) Max() int {
	max := 0
	for _, p := range s {
		if p.Count > max {
			max = p.Count
		}
	}
	return max
}

// Total returns the sum of all bucket counts.
func (s Series) Total() int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}
