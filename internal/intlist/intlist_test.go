package intlist

import "testing"

func TestPushPop(t *testing.T) {
	l := New()
	l.PushBack(1)
	l.PushBack(2)
	l.PushFront(0)
	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}
	if l.At(0) != 0 || l.At(1) != 1 || l.At(2) != 2 {
		t.Fatalf("unexpected values: %v", l.Values())
	}
	if v := l.PopBack(); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
	if v := l.PopFront(); v != 0 {
		t.Fatalf("expected 0, got %d", v)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	l := FromValues([]int{1, 2, 3})
	c := l.Copy()
	c.PushBack(4)
	if l.Len() != 3 {
		t.Fatalf("original list was mutated by copy")
	}
	if c.Len() != 4 {
		t.Fatalf("copy did not grow")
	}
}

func TestCompareLexicographic(t *testing.T) {
	cases := []struct {
		a, b []int
		want int
	}{
		{[]int{0, 1}, []int{0, 2}, -1},
		{[]int{0, 2}, []int{0, 1}, 1},
		{[]int{0, 1}, []int{0, 1}, 0},
		{[]int{0}, []int{0, 1}, -1},
		{[]int{0, 1}, []int{0}, 1},
	}
	for _, c := range cases {
		got := FromValues(c.a).Compare(FromValues(c.b))
		if got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
