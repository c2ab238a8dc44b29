package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mcoot/cwrules/internal/api/live"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// FENResult is the output of the fen command
type FENResult struct {
	FEN  string   `json:"fen"`
	Rows []string `json:"rows"`
}

// LeaveResult is the output of the leave command
type LeaveResult struct {
	Played string `json:"played"`
	Rack   string `json:"rack"`
	Leave  string `json:"leave"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == outputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == outputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			errData["error"] = apiErr
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == outputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// printf ignores write errors; output goes to a terminal or pipe
func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		o.printf("Status: %s\n", v.Status)
	case response.AlphabetList:
		for _, name := range v.Names {
			o.printf("%s\n", name)
		}
	case response.Alphabet:
		o.printAlphabet(v)
	case response.TokenizeResponse:
		o.printTokenize(v)
	case response.DecodeResponse:
		o.printf("%s\n", v.Text)
	case *response.ScoreResponse:
		o.printScore(v)
	case response.Board:
		o.printBoard(v.Rows)
	case response.Game:
		o.printGame(v)
	case response.EventResponse:
		o.printf("%s\n", v.Summary)
	case response.EventsResponse:
		o.printEvents(v.Events)
	case response.TurnsResponse:
		o.printTurns(v.Turns)
	case response.SummariesResponse:
		for _, s := range v.Summaries {
			o.printf("%s\n", s)
		}
	case response.ReplayResponse:
		o.printReplay(v)
	case live.Outbound:
		o.printOutbound(v)
	case FENResult:
		o.printf("%s\n", v.FEN)
		if len(v.Rows) > 0 {
			o.printBoard(v.Rows)
		}
	case LeaveResult:
		o.printf("%s\n", v.Leave)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAlphabet(a response.Alphabet) {
	o.printf("Alphabet: %s (%d tiles)\n", a.Name, a.TileCount)
	for _, l := range a.Letters {
		if l.Count == 0 {
			continue
		}
		vowel := ""
		if l.Vowel {
			vowel = " vowel"
		}
		o.printf("  %-4s %2d pts x%d%s\n", l.Rune, l.Score, l.Count, vowel)
	}
}

func (o *Output) printTokenize(t response.TokenizeResponse) {
	letters := make([]string, len(t.Letters))
	for i, l := range t.Letters {
		letters[i] = fmt.Sprintf("%d", l)
	}
	o.printf("Letters: %s\n", strings.Join(letters, " "))
	o.printf("Runes: %s\n", strings.Join(t.Runes, " "))
	o.printf("Canonical: %s\n", t.Canonical)
}

func (o *Output) printScore(s *response.ScoreResponse) {
	if !s.Legal {
		o.printf("Illegal placement\n")
		return
	}
	o.printf("Score: %d\n", s.Score)
	if s.Move != nil {
		o.printf("Move: %s %s\n", s.Move.Position, s.Move.PlayedTiles)
	} else {
		o.printf("Move: undesignated blank\n")
	}
	if len(s.Words) > 0 {
		o.printf("Words: %s\n", strings.Join(s.Words, ", "))
	}
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("Alphabet: %s\n", g.Alphabet)
	o.printf("Layout: %s\n", g.Layout)
	o.printf("On turn: %s\n", g.OnTurn)
	o.printf("Events: %d\n", g.EventCount)
	o.printf("Scores:\n")
	for _, p := range g.Players {
		o.printf("  %s: %d\n", p, g.Scores[p])
	}
	if g.Board != nil {
		o.printf("\n")
		o.printBoard(g.Board.Rows)
	}
}

func (o *Output) printEvents(events []model.GameEvent) {
	if len(events) == 0 {
		o.printf("No events\n")
		return
	}
	for i, e := range events {
		detail := ""
		switch e.Type {
		case model.EventTilePlacement:
			detail = fmt.Sprintf(" %s %s +%d", e.Position, e.PlayedTiles, e.Score)
		case model.EventExchange:
			detail = " " + e.Exchanged
		case model.EventChallengeBonus:
			detail = fmt.Sprintf(" +%d", e.Bonus)
		case model.EventPhonyTilesReturned:
			detail = fmt.Sprintf(" -%d", e.LostScore)
		}
		o.printf("%3d  %-8s %s%s (%d)\n", i+1, e.PlayerID, e.Type, detail, e.Cumulative)
	}
}

func (o *Output) printTurns(turns []model.Turn) {
	for i, t := range turns {
		kinds := make([]string, len(t.Events))
		for j, e := range t.Events {
			kinds[j] = string(e.Type)
		}
		o.printf("%3d  %-8s %s (%d)\n", i+1, t.PlayerID(), strings.Join(kinds, ", "), t.Cumulative())
	}
}

func (o *Output) printReplay(r response.ReplayResponse) {
	o.printBoard(r.Board.Rows)
	o.printf("\nTurns: %d\n", r.Turns)

	players := make([]string, 0, len(r.Scores))
	for p := range r.Scores {
		players = append(players, p)
	}
	sort.Strings(players)
	o.printf("Scores:\n")
	for _, p := range players {
		o.printf("  %s: %d\n", p, r.Scores[p])
	}

	letters := make([]string, 0, len(r.Pool))
	for l := range r.Pool {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	var pool strings.Builder
	for _, l := range letters {
		pool.WriteString(strings.Repeat(l, r.Pool[l]))
	}
	o.printf("Unseen (%d): %s\n", r.Unseen, pool.String())
}

func (o *Output) printOutbound(m live.Outbound) {
	switch m.Type {
	case live.TypeEvent:
		o.printf("%s\n", m.Summary)
	case live.TypeError:
		if m.Error != nil {
			o.printf("Error: %s (%s)\n", m.Error.Message, m.Error.Code)
		}
	case live.TypeScore:
		if m.Score != nil {
			o.printScore(m.Score)
		}
	}
}

// printBoard draws display rows with column letters and row numbers.
// Multi-codepoint tiles widen their row.
func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)

	var header strings.Builder
	for col := 0; col < size; col++ {
		header.WriteRune(rune('A' + col))
	}
	o.printf("    %s\n", header.String())
	o.printf("   +%s+\n", strings.Repeat("-", size))
	for row, line := range rows {
		o.printf("%3d|%s|\n", row+1, line)
	}
	o.printf("   +%s+\n", strings.Repeat("-", size))
}
