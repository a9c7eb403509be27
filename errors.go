package portfolio

import "errors"

var (
	// ErrSymbolExists is returned when declaring a symbol twice.
	ErrSymbolExists = errors.New("symbol already exists")
	// ErrUnknownSymbol is returned when operating on a symbol that was never declared.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidQuantity is returned for a number of shares that is not strictly positive.
	ErrInvalidQuantity = errors.New("shares must be greater than zero")
	// ErrInsufficientShares is returned when a removal would take a position below zero.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrNoPrice is returned when no close price is known on or before a day.
	ErrNoPrice = errors.New("no price available")
	// ErrNoData is returned when the portfolio has no trading day to report on.
	ErrNoData = errors.New("no market data")
)
