package fs

import "sort"

// lutCountStart and lutCountResize set this LUT's growth policy: start
// small, grow in small increments. Go slices already amortize growth, so
// these constants only document the intended starting capacity; they are
// not load-bearing the way a manual malloc/memmove implementation would
// need them to be.
const (
	lutCountStart  = 64
	lutCountResize = 8
)

// lut is a sorted parallel-array lookup table: keys ascending, each key
// paired with a value at the same index. Insertion is O(log n) search plus
// O(n) shift, matching the source's binary-search-for-position + memmove
// approach — re-expressed with sort.Search and slice insertion since Go has
// no raw buffer-resize equivalent worth hand-rolling here.
type lut[K ~uint8 | ~uint16, V any] struct {
	keys []K
	vals []V
}

func newLUT[K ~uint8 | ~uint16, V any]() *lut[K, V] {
	return &lut[K, V]{keys: make([]K, 0, lutCountStart), vals: make([]V, 0, lutCountStart)}
}

// insert places key/val in ascending key order. If key already exists, its
// value is overwritten (a fresh rebuild never inserts the same key twice in
// practice, since IDs/SIDs are unique by invariant, but overwrite is the
// safer behavior for a library function).
func (l *lut[K, V]) insert(key K, val V) {
	i := sort.Search(len(l.keys), func(i int) bool { return l.keys[i] >= key })
	if i < len(l.keys) && l.keys[i] == key {
		l.vals[i] = val
		return
	}
	l.keys = append(l.keys, key)
	copy(l.keys[i+1:], l.keys[i:len(l.keys)-1])
	l.keys[i] = key

	var zero V
	l.vals = append(l.vals, zero)
	copy(l.vals[i+1:], l.vals[i:len(l.vals)-1])
	l.vals[i] = val
}

// lookup returns the value for key and true if found.
func (l *lut[K, V]) lookup(key K) (V, bool) {
	i := sort.Search(len(l.keys), func(i int) bool { return l.keys[i] >= key })
	if i < len(l.keys) && l.keys[i] == key {
		return l.vals[i], true
	}
	var zero V
	return zero, false
}

// reset empties the table in place, keeping its backing arrays.
func (l *lut[K, V]) reset() {
	l.keys = l.keys[:0]
	l.vals = l.vals[:0]
}

// keysAscending reports whether the table's keys are strictly increasing,
// an invariant the disk-level tests check after every rebuild.
func (l *lut[K, V]) keysAscending() bool {
	for i := 1; i < len(l.keys); i++ {
		if l.keys[i] <= l.keys[i-1] {
			return false
		}
	}
	return true
}
