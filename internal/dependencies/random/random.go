package random

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	gameIDLength   = 12
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Random issues identifiers for games and events
type Random interface {
	// GameID is short enough to read out or type into the CLI
	GameID() string

	// EventID is globally unique
	EventID() string
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) GameID() string {
	return randomString(gameIDLength, gameIDAlphabet)
}

// EventID returns a version 4 UUID
func (r *CryptoRandom) EventID() string {
	return uuid.NewString()
}

func randomString(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS source is broken
			panic(err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
