package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/api/request"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/moves"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

// boardFlags selects the position local commands work on
type boardFlags struct {
	alphabet string
	layout   string
	file     string
	fen      string
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.alphabet, "alphabet", alphabet.NameEnglish, "Alphabet name")
	cmd.Flags().StringVar(&f.layout, "layout", "standard", "Board layout: standard, super")
	cmd.Flags().StringVar(&f.file, "board", "", "Board file, one row per line ('.' or space for empty squares)")
	cmd.Flags().StringVar(&f.fen, "fen", "", "Board position as FEN")
}

// load returns the alphabet and board the flags describe. With neither a
// board file nor FEN the board is empty.
func (f *boardFlags) load() (*alphabet.Alphabet, *model.Board, error) {
	alph, err := alphabet.Lookup(f.alphabet)
	if err != nil {
		return nil, nil, err
	}
	layout, err := model.LayoutByName(f.layout)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case f.file != "" && f.fen != "":
		return nil, nil, fmt.Errorf("give either --board or --fen, not both")
	case f.fen != "":
		b, err := board.FromFEN(layout, f.fen, alph)
		return alph, b, err
	case f.file != "":
		rows, err := readBoardFile(f.file, layout.Dim(), alph)
		if err != nil {
			return nil, nil, err
		}
		b := model.NewBoard(layout)
		if err := b.LoadLayout(rows, alph); err != nil {
			return nil, nil, err
		}
		return alph, b, nil
	default:
		return alph, model.NewBoard(layout), nil
	}
}

// readBoardFile reads display rows, padding short rows with empty squares
func readBoardFile(path string, dim int, alph *alphabet.Alphabet) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for len(lines) < dim {
		lines = append(lines, "")
	}

	rows := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(strings.TrimRight(line, "\r"), ".", " ")
		cells := 0
		for j, chunk := range strings.Split(line, " ") {
			if j > 0 {
				cells++
			}
			runes, err := alph.TokenizeToRunes(chunk)
			if err != nil {
				return nil, fmt.Errorf("board file row %d: %w", i+1, err)
			}
			cells += len(runes)
		}
		if cells < dim {
			line += strings.Repeat(" ", dim-cells)
		}
		rows[i] = line
	}
	return rows, nil
}

// parseTile parses "row,col,LETTER" with 0-based row and column
func parseTile(s string) (request.Tile, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		return request.Tile{}, fmt.Errorf("invalid tile %q (want row,col,LETTER)", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return request.Tile{}, fmt.Errorf("invalid tile row in %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return request.Tile{}, fmt.Errorf("invalid tile column in %q: %w", s, err)
	}
	return request.Tile{Row: row, Col: col, Letter: strings.TrimSpace(parts[2])}, nil
}

func parseTiles(args []string) ([]request.Tile, error) {
	tiles := make([]request.Tile, 0, len(args))
	for _, a := range args {
		t, err := parseTile(a)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func newTokenizeCmd() *cobra.Command {
	var alphabetName string

	cmd := &cobra.Command{
		Use:   "tokenize <text>",
		Short: "Split text into machine letters",
		Long: `Split text into machine letters. Lower case letters are designated
blanks, '?' is an undesignated blank and '.' a play-through square.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alph, err := alphabet.Lookup(alphabetName)
			if err != nil {
				return err
			}
			result, err := response.NewTokenizeResponse(alph, args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&alphabetName, "alphabet", alphabet.NameEnglish, "Alphabet name")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var alphabetName string
	var played bool

	cmd := &cobra.Command{
		Use:   "decode <letter>...",
		Short: "Render machine letters as text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alph, err := alphabet.Lookup(alphabetName)
			if err != nil {
				return err
			}

			letters := make([]model.MachineLetter, len(args))
			for i, a := range args {
				v, err := strconv.ParseUint(a, 0, 8)
				if err != nil {
					return fmt.Errorf("invalid machine letter %q: %w", a, err)
				}
				letters[i] = model.MachineLetter(v)
			}

			text := alph.Decode(letters)
			if played {
				text = alph.DecodePlayed(letters)
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(response.DecodeResponse{Text: text})
			return nil
		},
	}

	cmd.Flags().StringVar(&alphabetName, "alphabet", alphabet.NameEnglish, "Alphabet name")
	cmd.Flags().BoolVar(&played, "played", false, "Render 0 as a play-through square instead of a blank")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var bf boardFlags

	cmd := &cobra.Command{
		Use:   "score <row,col,LETTER>...",
		Short: "Check and score a tentative play",
		Long: `Check and score a tentative play. Rows and columns are 0-based; a
lower case letter is a designated blank.

  cwrules score 7,4,R 7,5,E 7,6,T 7,7,A 7,8,I 7,9,N 7,10,S`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alph, b, err := bf.load()
			if err != nil {
				return err
			}
			reqTiles, err := parseTiles(args)
			if err != nil {
				return err
			}
			tiles, err := request.Tiles(alph, reqTiles)
			if err != nil {
				return err
			}

			p := model.NewPlacement(tiles...)
			score, legal := scoring.New().Score(b, p, alph)
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(response.NewScoreResponse(b, p, alph, score, legal))
			return nil
		},
	}

	bf.register(cmd)
	return cmd
}

func newFENCmd() *cobra.Command {
	var bf boardFlags
	var render bool

	cmd := &cobra.Command{
		Use:   "fen",
		Short: "Convert a board file to FEN, or render FEN as rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alph, b, err := bf.load()
			if err != nil {
				return err
			}

			result := FENResult{FEN: board.ToFEN(b, alph)}
			if render {
				result.Rows = board.Render(b, alph)
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	bf.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "Also print the board rows")
	return cmd
}

func newLeaveCmd() *cobra.Command {
	var alphabetName string
	var gaps bool

	cmd := &cobra.Command{
		Use:   "leave <played> <rack>",
		Short: "Compute the tiles kept after a play",
		Long: `Compute the tiles kept after a play. Play-through squares ('.') in
the played tiles are skipped and designated blanks use up a '?'.

  cwrules leave .OTa AEOT?RS`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alph, err := alphabet.Lookup(alphabetName)
			if err != nil {
				return err
			}

			compute := moves.ComputeLeave
			if gaps {
				compute = moves.ComputeLeaveWithGaps
			}
			leave, err := compute(alph, args[0], args[1])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(LeaveResult{Played: args[0], Rack: args[1], Leave: leave})
			return nil
		},
	}

	cmd.Flags().StringVar(&alphabetName, "alphabet", alphabet.NameEnglish, "Alphabet name")
	cmd.Flags().BoolVar(&gaps, "gaps", false, "Keep rack order, leaving a space for each used tile")
	return cmd
}
