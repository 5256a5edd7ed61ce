// Package forced holds the immutable set of rule keys that may not be
// overwritten once a world has loaded.
package forced

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"
)

// DefaultFPRate is the bloom prefilter's target false-positive rate.
const DefaultFPRate = 0.01

// Set answers membership with a bloom prefilter in front of an exact map:
// a negative from the filter is final, a positive is confirmed by the map.
// A Set is never modified after construction.
type Set struct {
	keys  map[string]struct{}
	order []string
	bf    *bitsbloom.BloomFilter
}

// New builds a set from keys using DefaultFPRate. Duplicates collapse; the
// first occurrence fixes the key's position in Keys.
func New(keys []string) *Set {
	return NewWithRate(keys, DefaultFPRate)
}

// NewWithRate builds a set whose prefilter is sized for len(keys) at fpRate.
// An fpRate outside (0, 1) falls back to DefaultFPRate.
func NewWithRate(keys []string, fpRate float64) *Set {
	if !(fpRate > 0 && fpRate < 1) {
		fpRate = DefaultFPRate
	}
	n := uint(len(keys))
	if n == 0 {
		n = 1
	}

	s := &Set{
		keys: make(map[string]struct{}, len(keys)),
		bf:   bitsbloom.NewWithEstimates(n, fpRate),
	}
	for _, k := range keys {
		if _, dup := s.keys[k]; dup {
			continue
		}
		s.keys[k] = struct{}{}
		s.order = append(s.order, k)
		s.bf.AddString(k)
	}
	return s
}

// Contains reports whether key is forced. A nil set contains nothing.
func (s *Set) Contains(key string) bool {
	if s == nil || len(s.keys) == 0 {
		return false
	}
	if !s.bf.TestString(key) {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of distinct keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
