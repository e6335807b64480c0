package pagenav

import "testing"

func TestNavigator_Clamps(t *testing.T) {
	n := New()

	cases := []struct {
		name  string
		apply func() int
		want  int
	}{
		{name: "set within range", apply: func() int { return n.Set(2, 4) }, want: 2},
		{name: "set past end", apply: func() int { return n.Set(9, 4) }, want: 3},
		{name: "set negative", apply: func() int { return n.Set(-3, 4) }, want: 0},
		{name: "prev at start", apply: func() int { return n.Prev(4) }, want: 0},
		{name: "next", apply: func() int { return n.Next(4) }, want: 1},
		{name: "clamp after shrink", apply: func() int { n.Set(3, 4); return n.Clamp(2) }, want: 1},
		{name: "no pages", apply: func() int { return n.Clamp(0) }, want: 0},
	}

	for _, tc := range cases {
		if got := tc.apply(); got != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, got)
		}
		if n.Current() != tc.want {
			t.Fatalf("%s: Current() = %d, want %d", tc.name, n.Current(), tc.want)
		}
	}
}

func TestNavigator_AddPolicy(t *testing.T) {
	stay := New()
	stay.Set(0, 2)
	if got := stay.AfterAdd(3); got != 0 {
		t.Fatalf("default policy should stay on the current page, got %d", got)
	}

	advance := New(WithAdvanceOnAdd(true))
	if got := advance.AfterAdd(3); got != 2 {
		t.Fatalf("advance policy should jump to the last page, got %d", got)
	}
}

func TestNavigator_AfterDelete(t *testing.T) {
	n := New()
	n.Set(2, 3)

	if got := n.AfterDelete(0, 2); got != 1 {
		t.Fatalf("deleting an earlier page should keep the same page in view, got %d", got)
	}
	if got := n.AfterDelete(1, 1); got != 0 {
		t.Fatalf("deleting the current last page should clamp, got %d", got)
	}
}

func TestNavigator_AfterMove(t *testing.T) {
	n := New()
	n.Set(1, 4)

	if got := n.AfterMove(1, 3, 4); got != 3 {
		t.Fatalf("moving the current page should follow it, got %d", got)
	}
	if got := n.AfterMove(0, 3, 4); got != 2 {
		t.Fatalf("moving an earlier page past the current one should shift down, got %d", got)
	}
	if got := n.AfterMove(3, 0, 4); got != 3 {
		t.Fatalf("moving a later page before the current one should shift up, got %d", got)
	}
}
