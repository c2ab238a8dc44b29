package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInsufficientPlayers = errors.New("insufficient players")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrIllegalPlacement    = errors.New("illegal tile placement")
	ErrEmptyPlacement      = errors.New("no tiles placed")
	ErrUndesignatedBlank   = errors.New("play contains an undesignated blank")
	ErrTilesNotOnRack      = errors.New("tiles are not on the rack")
	ErrNoPlacementToReturn = errors.New("last event is not a tile placement")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidBonus        = errors.New("challenge bonus must not be negative")

	// Board errors
	ErrBoardNotFound   = errors.New("board not found")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidLayout   = errors.New("invalid board layout")
	ErrUnknownLayout   = errors.New("unknown board layout")
	ErrInvalidFEN      = errors.New("invalid board FEN")

	// Alphabet errors
	ErrUnknownAlphabet = errors.New("unknown alphabet")
	ErrInvalidRune     = errors.New("text cannot be encoded in alphabet")
)
