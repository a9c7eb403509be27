package portfolio

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidAccountNumber is returned for account numbers that are not at least 8 digits.
var ErrInvalidAccountNumber = errors.New("account numbers must be a minimum of 8 digits with no punctuation")

var accountNumberRE = regexp.MustCompile(`^[0-9]{8,}$`)

// Account is a named and numbered account holding a portfolio.
type Account struct {
	number    string
	Name      string
	Owner     string
	Portfolio *Portfolio
}

// NewAccount returns an account after validating its number.
func NewAccount(number string, pf *Portfolio, name, owner string) (*Account, error) {
	if !accountNumberRE.MatchString(number) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountNumber, number)
	}
	return &Account{number: number, Name: name, Owner: owner, Portfolio: pf}, nil
}

// Number returns the account number in masked form: ******1234.
func (a *Account) Number() string {
	return strings.Repeat("*", len(a.number)-4) + a.number[len(a.number)-4:]
}

// Len returns the number of symbols held in the account.
func (a *Account) Len() int { return len(a.Portfolio.Symbols()) }

// Balance returns the total value of the holdings on the last trading day.
func (a *Account) Balance() Money {
	days := a.Portfolio.Days()
	if len(days) == 0 {
		return M(0, a.Portfolio.Currency)
	}
	return a.Portfolio.Total(days[len(days)-1])
}

func (a *Account) String() string {
	return fmt.Sprintf("Account %s worth %s", a.Number(), a.Balance())
}
