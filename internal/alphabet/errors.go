package alphabet

import (
	"fmt"

	"github.com/mcoot/cwrules/internal/model"
)

// EncodingError reports text that no tile of the alphabet matches
type EncodingError struct {
	Text   string // the full input
	Offset int    // codepoint offset of the first unmatched character
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %q at offset %d", e.Text, e.Offset)
}

// Unwrap lets callers match the error with errors.Is(err, model.ErrInvalidRune)
func (e *EncodingError) Unwrap() error {
	return model.ErrInvalidRune
}
