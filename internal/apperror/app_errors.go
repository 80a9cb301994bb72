package apperror

import "errors"

var (
	ErrInvalidCell    = errors.New("invalid cell")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrGameFinished   = errors.New("game is already finished")
	ErrUnknownSymbol  = errors.New("unknown player symbol")
	ErrEmptyName      = errors.New("player name is empty")
	ErrNamesLocked    = errors.New("player names are locked until restart")
	ErrManagerStopped = errors.New("game manager is stopped")
)
