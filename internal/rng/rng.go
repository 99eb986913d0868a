// Package rng is the seeded pseudorandom stream every battle threads through
// its transitions. The stream is a plain value so it is copied along with the
// battle state; nothing here is global.
package rng

// Next advances a mulberry32 state by one step and returns a value in [0,1)
// together with the next state.
func Next(state uint32) (float64, uint32) {
	next := state + 0x6D2B79F5
	r := next
	r = (r ^ (r >> 15)) * (r | 1)
	r ^= r + (r^(r>>7))*(r|61)
	r ^= r >> 14
	return float64(r) / 4294967296.0, next
}

// Stream is a resumable cursor over the mulberry32 sequence.
type Stream struct {
	State uint32 `json:"state"`
}

// New creates a stream from a seed. A zero seed is remapped to 1.
func New(seed uint32) Stream {
	if seed == 0 {
		seed = 1
	}
	return Stream{State: seed}
}

// Float returns the next value in [0,1).
func (s *Stream) Float() float64 {
	v, next := Next(s.State)
	s.State = next
	return v
}

// Intn returns a value in [0,n). Returns 0 when n <= 0 without advancing.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Pick returns a uniformly chosen element and its index.
// The index is -1 (and the stream untouched) for an empty slice.
func Pick[T any](s *Stream, items []T) (T, int) {
	var zero T
	if len(items) == 0 {
		return zero, -1
	}
	i := s.Intn(len(items))
	return items[i], i
}

// WeightedPick scans items in order, accumulating weight, and returns the
// first entry whose cumulative weight reaches a scaled draw. Entries with a
// non-positive weight never win. When no entry has positive weight the pick
// falls back to uniform.
func WeightedPick[T any](s *Stream, items []T, weight func(T) float64) (T, int) {
	var zero T
	if len(items) == 0 {
		return zero, -1
	}
	total := 0.0
	for _, it := range items {
		if w := weight(it); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Pick(s, items)
	}
	roll := s.Float() * total
	cum := 0.0
	last := -1
	for i, it := range items {
		w := weight(it)
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if cum >= roll {
			return it, i
		}
	}
	// Floating point drift: the last positive entry wins.
	return items[last], last
}

// Shuffle permutes items in place (Fisher-Yates from the end).
func Shuffle[T any](s *Stream, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
