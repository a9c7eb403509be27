package portfolio

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/phuslu/log"
	"github.com/tstivers/portfolio/date"
)

// Command is the kind of operation recorded in the holdings ledger.
type Command string

const (
	CmdDeclare Command = "declare" // starts tracking a symbol with an initial number of shares
	CmdAdd     Command = "add"     // shares purchased
	CmdRemove  Command = "remove"  // shares sold
	CmdSet     Command = "set"     // position reset to an absolute number of shares
)

// Operation is a single change recorded in the holdings ledger.
type Operation struct {
	Date    date.Date `json:"date"`
	Command Command   `json:"command"`
	Symbol  string    `json:"symbol"`
	Shares  Quantity  `json:"shares"`
}

// Change is the signed number of shares of a symbol that changed on a day.
type Change struct {
	On     date.Date
	Symbol string
	Shares Quantity
}

// Ledger records the holdings operations.
//
// In a Ledger operations are always in chronological order, operations on the same day
// keep the order they were recorded in.
type Ledger struct {
	ops      []Operation
	declared map[string]date.Date // declaration day by symbol
	symbols  []string             // in declaration order
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		ops:      make([]Operation, 0),
		declared: make(map[string]date.Date),
	}
}

// NormalizeSymbol returns the canonical form of a ticker symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// Has returns true if the symbol has been declared.
func (l *Ledger) Has(symbol string) bool {
	_, ok := l.declared[NormalizeSymbol(symbol)]
	return ok
}

// Symbols returns the declared symbols in declaration order.
func (l *Ledger) Symbols() []string { return slices.Clone(l.symbols) }

// Operations returns a copy of all operations in chronological order.
func (l *Ledger) Operations() []Operation { return slices.Clone(l.ops) }

// Len returns the number of operations.
func (l *Ledger) Len() int { return len(l.ops) }

// Start returns the day of the first operation, and false if the ledger is empty.
func (l *Ledger) Start() (date.Date, bool) {
	if len(l.ops) == 0 {
		return date.Date{}, false
	}
	return l.ops[0].Date, true
}

// Declare starts tracking a new symbol with an initial number of shares.
func (l *Ledger) Declare(symbol string, shares Quantity, on date.Date) error {
	return l.Apply(Operation{Date: on, Command: CmdDeclare, Symbol: symbol, Shares: shares})
}

// Add records shares purchased on a day.
func (l *Ledger) Add(symbol string, shares Quantity, on date.Date) error {
	return l.Apply(Operation{Date: on, Command: CmdAdd, Symbol: symbol, Shares: shares})
}

// Remove records shares sold on a day.
func (l *Ledger) Remove(symbol string, shares Quantity, on date.Date) error {
	return l.Apply(Operation{Date: on, Command: CmdRemove, Symbol: symbol, Shares: shares})
}

// Set resets the number of shares held on a day.
func (l *Ledger) Set(symbol string, shares Quantity, on date.Date) error {
	return l.Apply(Operation{Date: on, Command: CmdSet, Symbol: symbol, Shares: shares})
}

// Apply validates and records an operation.
//
// The ledger is left unchanged when an error is returned.
func (l *Ledger) Apply(op Operation) error {
	op.Symbol = NormalizeSymbol(op.Symbol)
	if op.Symbol == "" {
		return fmt.Errorf("%s: %w: empty symbol", op.Command, ErrUnknownSymbol)
	}
	if op.Date.IsZero() {
		return fmt.Errorf("%s %s: missing date", op.Command, op.Symbol)
	}

	declared, exists := l.declared[op.Symbol]
	switch op.Command {
	case CmdDeclare:
		if exists {
			return fmt.Errorf("declare %s: %w", op.Symbol, ErrSymbolExists)
		}
		if op.Shares.IsNegative() {
			return fmt.Errorf("declare %s: %w", op.Symbol, ErrInvalidQuantity)
		}
	case CmdAdd, CmdRemove, CmdSet:
		if !exists {
			return fmt.Errorf("%s %s: %w", op.Command, op.Symbol, ErrUnknownSymbol)
		}
		if op.Date.Before(declared) {
			return fmt.Errorf("%s %s: %w before its declaration on %s", op.Command, op.Symbol, ErrUnknownSymbol, declared)
		}
		if !op.Shares.IsPositive() {
			return fmt.Errorf("%s %s: %w", op.Command, op.Symbol, ErrInvalidQuantity)
		}
	default:
		return fmt.Errorf("unknown command %q", op.Command)
	}

	previous := l.ops
	l.ops = l.insert(op)
	if op.Command == CmdRemove || op.Command == CmdSet {
		if err := l.checkPositive(op.Symbol); err != nil {
			l.ops = previous
			return fmt.Errorf("%s %s %s on %s: %w", op.Command, op.Shares, op.Symbol, op.Date, err)
		}
	}
	if op.Command == CmdDeclare {
		l.declared[op.Symbol] = op.Date
		l.symbols = append(l.symbols, op.Symbol)
	}
	log.Debug().Str("command", string(op.Command)).Str("symbol", op.Symbol).Str("shares", op.Shares.String()).Str("date", op.Date.String()).Msg("ledger operation")
	return nil
}

// insert returns a new slice of operations with op after every operation on or before its day.
func (l *Ledger) insert(op Operation) []Operation {
	i := sort.Search(len(l.ops), func(i int) bool { return l.ops[i].Date.After(op.Date) })
	return slices.Insert(slices.Clone(l.ops), i, op)
}

// checkPositive replays the operations of symbol and fails if its position ever goes below zero.
func (l *Ledger) checkPositive(symbol string) error {
	var pos Quantity
	for _, op := range l.ops {
		if op.Symbol != symbol {
			continue
		}
		pos = op.apply(pos)
		if pos.IsNegative() {
			return fmt.Errorf("%w: position would be %s on %s", ErrInsufficientShares, pos, op.Date)
		}
	}
	return nil
}

// apply returns the position after the operation.
func (op Operation) apply(pos Quantity) Quantity {
	switch op.Command {
	case CmdDeclare, CmdSet:
		return op.Shares
	case CmdAdd:
		return pos.Add(op.Shares)
	case CmdRemove:
		return pos.Sub(op.Shares)
	default:
		return pos
	}
}

// Position returns the number of shares of symbol held at the end of the day on.
func (l *Ledger) Position(symbol string, on date.Date) Quantity {
	symbol = NormalizeSymbol(symbol)
	var pos Quantity
	for _, op := range l.ops {
		if op.Date.After(on) {
			break
		}
		if op.Symbol == symbol {
			pos = op.apply(pos)
		}
	}
	return pos
}

// Days returns the distinct days with at least one operation, in chronological order.
func (l *Ledger) Days() []date.Date {
	days := make([]date.Date, 0, len(l.ops))
	for _, op := range l.ops {
		if n := len(days); n == 0 || days[n-1] != op.Date {
			days = append(days, op.Date)
		}
	}
	return days
}

// Changes returns the signed share changes of every day in r, in chronological order then
// in the order the symbols were operated that day. Days where the operations cancel out
// are omitted.
func (l *Ledger) Changes(r date.Range) []Change {
	var changes []Change
	for _, day := range l.Days() {
		if !r.Contains(day) {
			continue
		}
		var seen []string
		for _, op := range l.ops {
			if op.Date != day || slices.Contains(seen, op.Symbol) {
				continue
			}
			seen = append(seen, op.Symbol)
			delta := l.Position(op.Symbol, day).Sub(l.Position(op.Symbol, day.Add(-1)))
			if delta.IsZero() {
				continue
			}
			changes = append(changes, Change{On: day, Symbol: op.Symbol, Shares: delta})
		}
	}
	return changes
}
