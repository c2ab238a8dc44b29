package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeInvalidCoordinates  = "INVALID_COORDINATES"
	CodeInvalidLayout       = "INVALID_LAYOUT"
	CodeInvalidFEN          = "INVALID_FEN"
	CodeInvalidRune         = "INVALID_RUNE"
	CodeInvalidBonus        = "INVALID_BONUS"
	CodeUnknownAlphabet     = "UNKNOWN_ALPHABET"
	CodeUnknownLayout       = "UNKNOWN_LAYOUT"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeBoardNotFound       = "BOARD_NOT_FOUND"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodeIllegalPlacement    = "ILLEGAL_PLACEMENT"
	CodeEmptyPlacement      = "EMPTY_PLACEMENT"
	CodeUndesignatedBlank   = "UNDESIGNATED_BLANK"
	CodeTilesNotOnRack      = "TILES_NOT_ON_RACK"
	CodeNoPlacementToReturn = "NO_PLACEMENT_TO_RETURN"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Describe returns the envelope an error maps to, for transports that
// cannot carry an HTTP status
func Describe(err error) APIError {
	return toHTTPError(err).apiError
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Encoding errors carry the offending text
	var encErr *alphabet.EncodingError
	if errors.As(err, &encErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRune, encErr.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in game"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBoardNotFound, "Board not found"}}
	case errors.Is(err, model.ErrUnknownAlphabet):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownAlphabet, "Unknown alphabet"}}
	case errors.Is(err, model.ErrUnknownLayout):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownLayout, "Unknown board layout"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, "A game needs at least two distinct players"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrInvalidCoordinates):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinates, "Invalid move coordinates"}}
	case errors.Is(err, model.ErrInvalidLayout):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLayout, "Invalid board layout"}}
	case errors.Is(err, model.ErrInvalidFEN):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFEN, "Invalid board FEN"}}
	case errors.Is(err, model.ErrInvalidRune):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRune, "Text cannot be encoded in alphabet"}}
	case errors.Is(err, model.ErrInvalidBonus):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBonus, "Challenge bonus must not be negative"}}
	case errors.Is(err, model.ErrEmptyPlacement):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlacement, "No tiles placed"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrIllegalPlacement):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeIllegalPlacement, "Tiles do not form a legal play"}}
	case errors.Is(err, model.ErrUndesignatedBlank):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUndesignatedBlank, "Play contains an undesignated blank"}}
	case errors.Is(err, model.ErrTilesNotOnRack):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeTilesNotOnRack, "Tiles are not on the rack"}}
	case errors.Is(err, model.ErrNoPlacementToReturn):
		return &httpError{http.StatusConflict, APIError{CodeNoPlacementToReturn, "Last event is not a tile placement"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
