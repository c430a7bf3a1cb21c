// Package intlist implements IndexTuple: the ordered sequence of sibling
// indices from the root of a collection tree down to a given node.
package intlist

// IntList is an ordered sequence of signed integers, growable at both
// ends. It represents the full-index path through parent collections
// used to name a collection's runtime table in the generated C code.
type IntList struct {
	values []int
}

// New returns an empty IntList.
func New() *IntList {
	return &IntList{}
}

// FromValues returns an IntList holding a copy of values, in order.
func FromValues(values []int) *IntList {
	l := &IntList{values: make([]int, len(values))}
	copy(l.values, values)
	return l
}

// PushBack appends v to the end of the list.
func (l *IntList) PushBack(v int) {
	l.values = append(l.values, v)
}

// PushFront prepends v to the start of the list.
func (l *IntList) PushFront(v int) {
	l.values = append(l.values, 0)
	copy(l.values[1:], l.values)
	l.values[0] = v
}

// PopBack removes and returns the last value. It panics if the list is empty.
func (l *IntList) PopBack() int {
	n := len(l.values)
	v := l.values[n-1]
	l.values = l.values[:n-1]
	return v
}

// PopFront removes and returns the first value. It panics if the list is empty.
func (l *IntList) PopFront() int {
	v := l.values[0]
	l.values = l.values[1:]
	return v
}

// Len returns the number of values in the list.
func (l *IntList) Len() int {
	return len(l.values)
}

// At returns the value at index i.
func (l *IntList) At(i int) int {
	return l.values[i]
}

// Values returns the underlying values as a plain slice (read-only view).
func (l *IntList) Values() []int {
	return l.values
}

// Copy returns an independent deep copy of l.
func (l *IntList) Copy() *IntList {
	return FromValues(l.values)
}

// Compare performs a lexicographic comparison between l and other,
// returning -1, 0, or 1. A shorter list that is a prefix of the longer
// one compares as less than it.
func (l *IntList) Compare(other *IntList) int {
	n := l.Len()
	if other.Len() < n {
		n = other.Len()
	}
	for i := 0; i < n; i++ {
		if l.values[i] < other.values[i] {
			return -1
		}
		if l.values[i] > other.values[i] {
			return 1
		}
	}
	switch {
	case l.Len() < other.Len():
		return -1
	case l.Len() > other.Len():
		return 1
	default:
		return 0
	}
}
