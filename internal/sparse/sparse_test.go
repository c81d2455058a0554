package sparse

import (
	"reflect"
	"testing"
)

func TestSetInsertionOrder(t *testing.T) {
	s := New(10)
	s.Insert(7)
	s.Insert(2)
	s.Insert(5)
	s.Insert(2) // duplicate, no-op

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if got := s.Values(); !reflect.DeepEqual(got, []uint32{7, 2, 5}) {
		t.Errorf("Values = %v, want insertion order [7 2 5]", got)
	}
}

func TestSetContains(t *testing.T) {
	s := New(4)
	s.Insert(1)
	s.Insert(3)

	for v, want := range map[uint32]bool{0: false, 1: true, 2: false, 3: true} {
		if got := s.Contains(v); got != want {
			t.Errorf("Contains(%d) = %v, want %v", v, got, want)
		}
	}
	if s.Contains(99) {
		t.Error("Contains beyond capacity should be false")
	}
}

func TestSetOutOfRangeInsertIgnored(t *testing.T) {
	s := New(2)
	s.Insert(5)
	if s.Len() != 0 {
		t.Errorf("insert beyond capacity changed the set: %v", s.Values())
	}
}

func TestSetClear(t *testing.T) {
	s := New(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	if s.Len() != 0 || s.Contains(1) || s.Contains(2) {
		t.Error("Clear left members behind")
	}
	s.Insert(2)
	if !s.Contains(2) || s.Len() != 1 {
		t.Error("set unusable after Clear")
	}
}
