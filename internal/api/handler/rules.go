package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/api/apierr"
	"github.com/mcoot/cwrules/internal/api/request"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

// RulesHandler handles the stateless rules endpoints: alphabets, layouts
// and scoring
type RulesHandler struct {
	boardService board.ServiceInterface
	scorer       scoring.ServiceInterface
}

// NewRulesHandler creates a new rules handler
func NewRulesHandler(boardService board.ServiceInterface, scorer scoring.ServiceInterface) *RulesHandler {
	return &RulesHandler{
		boardService: boardService,
		scorer:       scorer,
	}
}

// ListAlphabets handles GET /api/v1/alphabets
func (h *RulesHandler) ListAlphabets(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.AlphabetList{Names: alphabet.Names()})
}

// GetAlphabet handles GET /api/v1/alphabets/{name}
func (h *RulesHandler) GetAlphabet(w http.ResponseWriter, r *http.Request) {
	alph, err := alphabet.Lookup(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AlphabetFromModel(alph))
}

// Tokenize handles POST /api/v1/alphabets/{name}/tokenize
func (h *RulesHandler) Tokenize(w http.ResponseWriter, r *http.Request) {
	alph, err := alphabet.Lookup(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.TokenizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := response.NewTokenizeResponse(alph, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Decode handles POST /api/v1/alphabets/{name}/decode
func (h *RulesHandler) Decode(w http.ResponseWriter, r *http.Request) {
	alph, err := alphabet.Lookup(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.DecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	letters := make([]model.MachineLetter, len(req.Letters))
	for i, v := range req.Letters {
		if v < 0 || v > 0xff {
			WriteError(w, apierr.NewInvalidRequestError("letters must be between 0 and 255"))
			return
		}
		letters[i] = model.MachineLetter(v)
	}

	text := alph.Decode(letters)
	if req.Played {
		text = alph.DecodePlayed(letters)
	}
	response.JSON(w, http.StatusOK, response.DecodeResponse{Text: text})
}

// GetLayout handles GET /api/v1/layouts/{name}
func (h *RulesHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := model.LayoutByName(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LayoutFromModel(layout))
}

// Score handles POST /api/v1/score. An illegal placement is not an error:
// the response reports it with legal set to false.
func (h *RulesHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	alphabetName := req.Alphabet
	if alphabetName == "" {
		alphabetName = alphabet.NameEnglish
	}
	alph, err := alphabet.Lookup(alphabetName)
	if err != nil {
		WriteError(w, err)
		return
	}
	layout, err := model.LayoutByName(req.Layout)
	if err != nil {
		WriteError(w, err)
		return
	}

	var b *model.Board
	switch {
	case req.FEN != "":
		b, err = h.boardService.FromFEN(layout, req.FEN, alph)
	case len(req.Rows) > 0:
		b, err = h.boardService.LoadLayout(layout, req.Rows, alph)
	default:
		b = model.NewBoard(layout)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	tiles, err := request.Tiles(alph, req.Tiles)
	if err != nil {
		WriteError(w, err)
		return
	}
	p := model.NewPlacement(tiles...)
	score, legal := h.scorer.Score(b, p, alph)
	response.JSON(w, http.StatusOK, response.NewScoreResponse(b, p, alph, score, legal))
}
