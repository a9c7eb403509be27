package portfolio

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		in   Money
		want string
	}{
		{USD(1234.5), "$1,234.50"},
		{USD(34.5), "$34.50"},
		{USD(0), "$0.00"},
		{USD(-5), "-$5.00"},
		{USD(1234567.891), "$1,234,567.89"},
		{USD(0.005), "$0.01"},
		{USD(-0.005), "-$0.01"},
		{M(12.5, ""), "$12.50"},
	}
	for _, tc := range testCases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.in.Decimal(), got, tc.want)
		}
	}
}

func TestMoney_PctChange(t *testing.T) {
	testCases := []struct {
		from, to Money
		want     Percent
	}{
		{USD(200), USD(210), 5},
		{USD(200), USD(190), -5},
		{USD(0), USD(10), 0},
		{USD(10), USD(10), 0},
	}
	for _, tc := range testCases {
		if got := tc.from.PctChange(tc.to); !got.Equal(tc.want) {
			t.Errorf("%v.PctChange(%v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(USD(12.345))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if got, want := string(data), `{"currency":"USD","amount":12.35}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	for _, in := range []string{`{"currency":"USD","amount":12.35}`, `12.35`} {
		var m Money
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("Unmarshal(%s) unexpected error: %v", in, err)
		}
		if got, want := m.String(), "$12.35"; got != want {
			t.Errorf("Unmarshal(%s) = %v, want %v", in, got, want)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"twelve"`), &m); err == nil {
		t.Errorf("Unmarshal(\"twelve\") expected an error")
	}
}

func TestPercentAndQuantity_String(t *testing.T) {
	if got, want := Percent(2.8749).String(), "2.87"; got != want {
		t.Errorf("Percent.String() = %q, want %q", got, want)
	}
	if got, want := Percent(-1.2).Abs().String(), "1.20"; got != want {
		t.Errorf("Percent.Abs().String() = %q, want %q", got, want)
	}
	if got, want := Q(10).Fixed(3), "10.000"; got != want {
		t.Errorf("Q(10).Fixed(3) = %q, want %q", got, want)
	}
	if got, want := Q(-2.5).Fixed(3), "-2.500"; got != want {
		t.Errorf("Q(-2.5).Fixed(3) = %q, want %q", got, want)
	}
}
