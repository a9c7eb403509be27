package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultCurrency is the currency used to format a Money without one.
const DefaultCurrency = money.USD

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney reads an amount like "1234.5" in the given currency.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the money's currency, an empty one is formatted as the default one.
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the amount formatted in its currency, like "$1,234.56".
//
// The amount is rounded half away from zero to the currency fraction.
func (m Money) String() string {
	cur := m.currency()
	fraction := int32(cur.Fraction)
	minor := m.value.Round(fraction).Shift(fraction)
	return cur.Formatter().Format(minor.IntPart())
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) Sign() int                       { return m.value.Sign() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// In returns the same amount expressed in currency.
func (m Money) In(currency string) Money { return Money{value: m.value, cur: currency} }

// Div returns how many times n fits in m, typically a number of shares for a cash amount and a price.
func (m Money) Div(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// PctChange returns the percent change from m to n, 0 when m is zero.
func (m Money) PctChange(n Money) Percent {
	if m.value.IsZero() {
		return 0
	}
	pct := n.value.Sub(m.value).Div(m.value).Shift(2)
	return Percent(pct.InexactFloat64())
}

func (m Money) MarshalJSON() ([]byte, error) {
	obj := orderedmap.New[string, any]()
	if m.cur != "" {
		obj.Set("currency", m.cur)
	}
	obj.Set("amount", m.value.Round(int32(m.currency().Fraction)))
	return json.Marshal(obj)
}

// UnmarshalJSON reads either a bare number or an object {"currency":..,"amount":..}.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var d decimal.Decimal
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		*m = Money{value: d}
		return nil
	}
	var obj struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = Money{value: obj.Amount, cur: obj.Currency}
	return nil
}
