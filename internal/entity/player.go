package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	DefaultNameX = "Player 1"
	DefaultNameO = "Player 2"
)

type Player struct {
	Symbol Symbol `json:"symbol"`
	Name   string `json:"name"`
}

// Registry maps each symbol to its display name.
type Registry struct {
	names map[Symbol]string
}

func NewRegistry(nameX, nameO string) *Registry {
	return &Registry{
		names: map[Symbol]string{
			SymbolX: nameX,
			SymbolO: nameO,
		},
	}
}

func (that *Registry) Name(symbol Symbol) string {
	return that.names[symbol]
}

// Rename - replaces the name stored for the symbol. Name content is not checked here.
func (that *Registry) Rename(symbol Symbol, name string) error {
	if !symbol.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownSymbol, symbol)
	}

	that.names[symbol] = name

	return nil
}

// Players - both players in turn order.
func (that *Registry) Players() []Player {
	players := make([]Player, 0, len(Symbols))
	for _, symbol := range Symbols {
		players = append(players, Player{Symbol: symbol, Name: that.names[symbol]})
	}

	return players
}
