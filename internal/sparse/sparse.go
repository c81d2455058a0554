// Package sparse provides a sparse set over small unsigned integers.
//
// The DFA builder uses it to union per-symbol destination subsets
// during determinization: insertion is O(1), duplicates are free, and
// the dense array preserves insertion order for cheap iteration. The
// universe (the NFA's state-id bound) is known up front.
package sparse

// Set is a set of uint32 values below a fixed capacity. It keeps a
// sparse array mapping values to positions in a dense array of the
// members, giving O(1) insert and membership with O(n) iteration over
// exactly the members.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New returns an empty set able to hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set; inserting a member again is a no-op.
// Values at or above the capacity are ignored.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) || value >= uint32(len(s.sparse)) {
		return
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order. The slice aliases the
// set's storage and is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}
