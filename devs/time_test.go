package devs

import "testing"

func TestIntTimeLess(t *testing.T) {
	cases := []struct {
		a, b IntTime
		want bool
	}{
		{0, 1, true},
		{1, 0, false},
		{5, 5, false},
		{Infinity, 1, false},
		{1, Infinity, true},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%v.Less(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIntTimeAddSaturatesAtInfinity(t *testing.T) {
	if got := Infinity.Add(5); got != Infinity {
		t.Errorf("Infinity.Add(5) = %v, want Infinity", got)
	}
	if got := IntTime(3).Add(4); got != 7 {
		t.Errorf("3.Add(4) = %v, want 7", got)
	}
}

func TestIntTimeSub(t *testing.T) {
	if got := IntTime(10).Sub(4); got != 6 {
		t.Errorf("10.Sub(4) = %v, want 6", got)
	}
}

func TestIntTimeInfinity(t *testing.T) {
	if IntTime(0).Infinity() != Infinity {
		t.Errorf("Infinity() = %v, want %v", IntTime(0).Infinity(), Infinity)
	}
}
