package entity

import "strings"

// Symbol is a player marker placed on the board. The zero value marks an empty cell.
type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"

	EmptyCell Symbol = ""
)

// Symbols lists both players in turn order.
var Symbols = [2]Symbol{SymbolX, SymbolO}

// ParseSymbol - reads a symbol the way clients send it, ignoring case and surrounding space.
func ParseSymbol(raw string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(raw)))
}

func (that Symbol) IsValid() bool {
	return that == SymbolX || that == SymbolO
}

func (that Symbol) String() string {
	return string(that)
}
