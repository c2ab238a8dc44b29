package alphabet

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/mcoot/cwrules/internal/model"
)

// Built-in alphabet names
const (
	NameEnglish      = "english"
	NameGerman       = "german"
	NameNorwegian    = "norwegian"
	NameFrench       = "french"
	NameSuperEnglish = "english_super"
	NameCatalan      = "catalan"
)

func blank(count int) Letter {
	return Letter{Rune: BlankRune, Score: 0, Count: count, Category: 3}
}

// l is shorthand for a consonant entry
func l(r string, score, count, category int) Letter {
	return Letter{Rune: r, Score: score, Count: count, Category: category}
}

// v is shorthand for a vowel entry
func v(r string, score, count, category int) Letter {
	return Letter{Rune: r, Score: score, Count: count, Vowel: true, Category: category}
}

func withShortcut(le Letter, shortcut string) Letter {
	le.Shortcut = shortcut
	return le
}

var englishScores = []Letter{
	v("A", 1, 9, 0), l("B", 3, 2, 2), l("C", 3, 2, 2), l("D", 2, 4, 1),
	v("E", 1, 12, 0), l("F", 4, 2, 2), l("G", 2, 3, 1), l("H", 4, 2, 2),
	v("I", 1, 9, 0), l("J", 8, 1, 3), l("K", 5, 1, 3), l("L", 1, 4, 1),
	l("M", 3, 2, 2), l("N", 1, 6, 1), v("O", 1, 8, 0), l("P", 3, 2, 2),
	l("Q", 10, 1, 3), l("R", 1, 6, 1), l("S", 1, 4, 3), l("T", 1, 6, 1),
	v("U", 1, 4, 0), l("V", 4, 2, 2), l("W", 4, 2, 2), l("X", 8, 1, 3),
	l("Y", 4, 2, 2), l("Z", 10, 1, 3),
}

// English is the standard English tile set
var English = sync.OnceValue(func() *Alphabet {
	return mustNew(NameEnglish, language.English, append([]Letter{blank(2)}, englishScores...))
})

// SuperEnglish is the English tile set sized for the 21x21 board
var SuperEnglish = sync.OnceValue(func() *Alphabet {
	counts := map[string]int{
		"A": 16, "B": 4, "C": 6, "D": 8, "E": 24, "F": 4, "G": 5, "H": 5, "I": 13,
		"J": 2, "K": 2, "L": 7, "M": 6, "N": 13, "O": 15, "P": 4, "Q": 2, "R": 13,
		"S": 10, "T": 15, "U": 7, "V": 3, "W": 4, "X": 2, "Y": 4, "Z": 2,
	}
	letters := []Letter{blank(4)}
	for _, le := range englishScores {
		le.Count = counts[le.Rune]
		letters = append(letters, le)
	}
	return mustNew(NameSuperEnglish, language.English, letters)
})

// German is the German tile set
var German = sync.OnceValue(func() *Alphabet {
	return mustNew(NameGerman, language.German, []Letter{
		blank(2),
		v("A", 1, 5, 0), v("Ä", 6, 1, 3), l("B", 3, 2, 2), l("C", 4, 2, 2),
		l("D", 1, 4, 1), v("E", 1, 15, 0), l("F", 4, 2, 2), l("G", 2, 3, 1),
		l("H", 2, 4, 1), v("I", 1, 6, 0), l("J", 6, 1, 3), l("K", 4, 2, 2),
		l("L", 2, 3, 1), l("M", 3, 4, 2), l("N", 1, 9, 1), v("O", 2, 3, 0),
		v("Ö", 8, 1, 3), l("P", 4, 1, 2), l("Q", 10, 1, 3), l("R", 1, 6, 1),
		l("S", 1, 7, 1), l("T", 1, 6, 1), v("U", 1, 6, 0), v("Ü", 6, 1, 3),
		l("V", 6, 1, 3), l("W", 3, 1, 2), l("X", 8, 1, 3), l("Y", 10, 1, 3),
		l("Z", 3, 1, 2),
	})
})

// Norwegian is the Norwegian tile set. Letters with no tiles are kept so
// that machine letter codes stay stable, and are hidden from detail views.
var Norwegian = sync.OnceValue(func() *Alphabet {
	return mustNew(NameNorwegian, language.Norwegian, []Letter{
		blank(2),
		v("A", 1, 7, 0), v("Ä", 0, 0, -1), l("B", 4, 3, 2), l("C", 10, 1, 3),
		l("D", 1, 5, 1), v("E", 1, 9, 0), l("F", 2, 4, 1), l("G", 2, 4, 1),
		l("H", 3, 3, 2), v("I", 1, 5, 0), l("J", 4, 2, 2), l("K", 2, 4, 1),
		l("L", 1, 5, 1), l("M", 2, 3, 1), l("N", 1, 6, 1), v("O", 2, 4, 0),
		v("Ö", 0, 0, -1), l("P", 4, 2, 2), l("Q", 0, 0, -1), l("R", 1, 6, 1),
		l("S", 1, 6, 1), l("T", 1, 6, 1), v("U", 4, 3, 0), v("Ü", 0, 0, -1),
		l("V", 4, 3, 2), l("W", 8, 1, 3), l("X", 0, 0, -1), l("Y", 6, 1, 3),
		l("Z", 0, 0, -1), v("Æ", 6, 1, 3), v("Ø", 5, 2, 3), v("Å", 4, 2, 2),
	})
})

// French is the French tile set
var French = sync.OnceValue(func() *Alphabet {
	return mustNew(NameFrench, language.French, []Letter{
		blank(2),
		v("A", 1, 9, 0), l("B", 3, 2, 2), l("C", 3, 2, 2), l("D", 2, 3, 1),
		v("E", 1, 15, 0), l("F", 4, 2, 2), l("G", 2, 2, 1), l("H", 4, 2, 2),
		v("I", 1, 8, 0), l("J", 8, 1, 3), l("K", 10, 1, 3), l("L", 1, 5, 1),
		l("M", 2, 3, 1), l("N", 1, 6, 1), v("O", 1, 6, 0), l("P", 3, 2, 1),
		l("Q", 8, 1, 3), l("R", 1, 6, 1), l("S", 1, 6, 3), l("T", 1, 6, 1),
		v("U", 1, 6, 0), l("V", 4, 2, 2), l("W", 10, 1, 3), l("X", 10, 1, 3),
		v("Y", 10, 1, 3), l("Z", 10, 1, 3),
	})
})

// Catalan is the Catalan tile set, including the digraph tiles L·L, NY and
// QU. Digraphs and Ç can be typed with single-key shortcuts.
var Catalan = sync.OnceValue(func() *Alphabet {
	return mustNew(NameCatalan, language.Catalan, []Letter{
		blank(2),
		v("A", 1, 12, 0), l("B", 3, 2, 2), l("C", 2, 3, 2),
		withShortcut(l("Ç", 10, 1, 3), "K"),
		l("D", 2, 3, 2), v("E", 1, 13, 0), l("F", 4, 1, 2), l("G", 3, 2, 2),
		l("H", 8, 1, 3), v("I", 1, 8, 0), l("J", 8, 1, 3), l("L", 1, 4, 1),
		withShortcut(l("L·L", 10, 1, 3), "W"),
		l("M", 2, 3, 2), l("N", 1, 6, 1),
		withShortcut(l("NY", 10, 1, 3), "Y"),
		v("O", 1, 5, 0), l("P", 3, 2, 2),
		withShortcut(l("QU", 8, 1, 3), "Q"),
		l("R", 1, 8, 1), l("S", 1, 8, 1), l("T", 1, 5, 1), v("U", 1, 4, 0),
		l("V", 4, 1, 2), l("X", 10, 1, 3), l("Z", 8, 1, 3),
	})
})

var builtins = map[string]func() *Alphabet{
	NameEnglish:      English,
	NameGerman:       German,
	NameNorwegian:    Norwegian,
	NameFrench:       French,
	NameSuperEnglish: SuperEnglish,
	NameCatalan:      Catalan,
}

// Lookup returns the built-in alphabet with the given name
func Lookup(name string) (*Alphabet, error) {
	ctor, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownAlphabet, name)
	}
	return ctor(), nil
}

// FromName returns the named built-in alphabet, falling back to English
func FromName(name string) *Alphabet {
	a, err := Lookup(name)
	if err != nil {
		return English()
	}
	return a
}

// Names lists the built-in alphabet names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
