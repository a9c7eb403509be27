package date

import (
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}
	if got, want := h.Days(), []Date{d2, d1}; !slices.Equal(got, want) {
		t.Errorf("Days() = %v want %v", got, want)
	}

	// overwrite
	h.Append(d1, "again")
	if v, _ := h.Get(d1); h.Len() != 2 || v != "again" {
		t.Errorf("Append(d1, again) = %v (len %d) want again (len 2)", v, h.Len())
	}

	day, v := h.Latest()
	if day != d1 || v != "again" {
		t.Errorf("Latest() = %v, %v want %v, again", day, v, d1)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, 1, 2), 10)
	h.Append(New(2024, 1, 5), 12)

	testCases := []struct {
		on     Date
		want   float64
		wantOK bool
	}{
		{New(2024, 1, 1), 0, false},
		{New(2024, 1, 2), 10, true},
		{New(2024, 1, 4), 10, true},
		{New(2024, 1, 5), 12, true},
		{New(2024, 2, 1), 12, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(tc.on)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestIterate(t *testing.T) {
	a, b := new(History[int]), new(History[int])
	a.Append(New(2024, 1, 2), 1).Append(New(2024, 1, 4), 1)
	b.Append(New(2024, 1, 3), 1).Append(New(2024, 1, 4), 1).Append(New(2024, 1, 5), 1)

	got := slices.Collect(Iterate(a, b))
	want := []Date{New(2024, 1, 2), New(2024, 1, 3), New(2024, 1, 4), New(2024, 1, 5)}
	if !slices.Equal(got, want) {
		t.Errorf("Iterate() = %v want %v", got, want)
	}
}
