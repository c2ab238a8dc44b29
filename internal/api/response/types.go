package response

import (
	"strings"
	"time"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/editor"
	"github.com/mcoot/cwrules/internal/services/moves"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// AlphabetList lists the built-in alphabets
type AlphabetList struct {
	Names []string `json:"names"`
}

// Alphabet represents an alphabet in API responses
type Alphabet struct {
	Name        string            `json:"name"`
	Letters     []alphabet.Letter `json:"letters"`
	TileCount   int               `json:"tile_count"`
	LongestRune int               `json:"longest_rune"`
}

// AlphabetFromModel converts an alphabet.Alphabet
func AlphabetFromModel(a *alphabet.Alphabet) Alphabet {
	return Alphabet{
		Name:        a.Name(),
		Letters:     a.Letters(),
		TileCount:   a.TileCount(),
		LongestRune: a.LongestRune(),
	}
}

// TokenizeResponse is the response for tokenizing text
type TokenizeResponse struct {
	Letters   []int    `json:"letters"`
	Runes     []string `json:"runes"`
	Canonical string   `json:"canonical"`
}

// NewTokenizeResponse tokenizes text as played tiles, so '.' is accepted
// as a play-through marker
func NewTokenizeResponse(alph *alphabet.Alphabet, text string) (TokenizeResponse, error) {
	word, err := alph.TokenizePlayed(text)
	if err != nil {
		return TokenizeResponse{}, err
	}
	runes, err := alph.TokenizeToRunes(text)
	if err != nil {
		return TokenizeResponse{}, err
	}

	letters := make([]int, len(word))
	for i, ml := range word {
		letters[i] = int(ml)
	}
	return TokenizeResponse{
		Letters:   letters,
		Runes:     runes,
		Canonical: alph.DecodePlayed(word),
	}, nil
}

// DecodeResponse is the response for decoding machine letters
type DecodeResponse struct {
	Text string `json:"text"`
}

// Layout represents a bonus square layout
type Layout struct {
	Name   string         `json:"name"`
	Dim    int            `json:"dim"`
	Rows   []string       `json:"rows"`
	Center model.Position `json:"center"`
}

// LayoutFromModel converts a model.Layout
func LayoutFromModel(l *model.Layout) Layout {
	return Layout{
		Name:   l.Name(),
		Dim:    l.Dim(),
		Rows:   l.Rows(),
		Center: l.Center(),
	}
}

// Move represents an encoded placement move
type Move struct {
	Position    string          `json:"position"`
	Row         int             `json:"row"`
	Col         int             `json:"col"`
	Direction   model.Direction `json:"direction"`
	PlayedTiles string          `json:"played_tiles"`
}

// MoveFromModel converts a moves.Move
func MoveFromModel(m moves.Move, alph *alphabet.Alphabet) *Move {
	return &Move{
		Position:    m.Position,
		Row:         m.Row,
		Col:         m.Col,
		Direction:   m.Direction,
		PlayedTiles: alph.DecodePlayed(m.Letters),
	}
}

// ScoreResponse is the response for scoring a tentative play
type ScoreResponse struct {
	Legal bool     `json:"legal"`
	Score int      `json:"score"`
	Move  *Move    `json:"move,omitempty"`
	Words []string `json:"words"`
}

// NewScoreResponse describes a tentative placement on a board
func NewScoreResponse(b *model.Board, p model.Placement, alph *alphabet.Alphabet, score int, legal bool) *ScoreResponse {
	resp := &ScoreResponse{
		Legal: legal,
		Score: score,
		Words: editor.WordsFormed(b, &p, alph),
	}
	if resp.Words == nil {
		resp.Words = []string{}
	}
	if mv, ok := moves.FromPlacement(b, p); ok {
		resp.Move = MoveFromModel(mv, alph)
	}
	return resp
}

// Board represents a board in API responses
type Board struct {
	Layout string   `json:"layout"`
	Rows   []string `json:"rows"`
	FEN    string   `json:"fen"`
	Tiles  int      `json:"tiles"`
}

// BoardFromModel renders a model.Board
func BoardFromModel(b *model.Board, alph *alphabet.Alphabet) Board {
	return Board{
		Layout: b.Layout().Name(),
		Rows:   board.Render(b, alph),
		FEN:    board.ToFEN(b, alph),
		Tiles:  b.TileCount(),
	}
}

// Game represents a game record in API responses
type Game struct {
	ID         string         `json:"id"`
	Alphabet   string         `json:"alphabet"`
	Layout     string         `json:"layout"`
	Players    []string       `json:"players"`
	Scores     map[string]int `json:"scores"`
	OnTurn     string         `json:"on_turn"`
	EventCount int            `json:"event_count"`
	Board      *Board         `json:"board,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}
	return Game{
		ID:         string(g.ID),
		Alphabet:   g.Alphabet,
		Layout:     g.Layout,
		Players:    players,
		Scores:     ScoresFromModel(g.Scores),
		OnTurn:     string(g.CurrentPlayer()),
		EventCount: g.EventCount,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// EventResponse is the response for an appended event
type EventResponse struct {
	Event   model.GameEvent `json:"event"`
	Summary string          `json:"summary"`
}

// EventsResponse lists a game's events
type EventsResponse struct {
	Events []model.GameEvent `json:"events"`
}

// TurnsResponse lists a game's turns
type TurnsResponse struct {
	Turns []model.Turn `json:"turns"`
}

// SummariesResponse lists one-line event descriptions
type SummariesResponse struct {
	Summaries []string `json:"summaries"`
}

// ReplayResponse is a game position rebuilt from its events
type ReplayResponse struct {
	Board  Board          `json:"board"`
	Scores map[string]int `json:"scores"`
	Pool   map[string]int `json:"pool"`
	Unseen int            `json:"unseen"`
	Turns  int            `json:"turns"`
}

// PoolFromModel keys pool counts by rune text
func PoolFromModel(pool map[model.MachineLetter]int, alph *alphabet.Alphabet) (map[string]int, int) {
	out := make(map[string]int, len(pool))
	total := 0
	for ml, n := range pool {
		out[alph.RuneOf(ml)] = n
		total += n
	}
	return out, total
}

// RackText renders a displayed rack with a space for each gap
func RackText(rack model.MachineWord, alph *alphabet.Alphabet) string {
	var sb strings.Builder
	for _, ml := range rack {
		if ml == model.EmptyRackSpace {
			sb.WriteString(" ")
			continue
		}
		sb.WriteString(alph.RuneOf(ml))
	}
	return sb.String()
}

// ScoresFromModel converts per-player scores
func ScoresFromModel(scores map[model.PlayerID]int) map[string]int {
	out := make(map[string]int, len(scores))
	for p, s := range scores {
		out[string(p)] = s
	}
	return out
}
