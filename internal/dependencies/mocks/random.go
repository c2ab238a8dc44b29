package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/cwrules/internal/dependencies/random"
)

// MockRandom hands out queued IDs, then numbered ones once a queue runs dry
type MockRandom struct {
	mu       sync.Mutex
	gameIDs  []string
	eventIDs []string
	games    int
	events   int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) GameID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games++
	if len(r.gameIDs) > 0 {
		id := r.gameIDs[0]
		r.gameIDs = r.gameIDs[1:]
		return id
	}
	return fmt.Sprintf("game-%d", r.games)
}

// EventID yields "id-1", "id-2", ... unless IDs were queued
func (r *MockRandom) EventID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events++
	if len(r.eventIDs) > 0 {
		id := r.eventIDs[0]
		r.eventIDs = r.eventIDs[1:]
		return id
	}
	return fmt.Sprintf("id-%d", r.events)
}

func (r *MockRandom) QueueGameID(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameIDs = append(r.gameIDs, ids...)
}

func (r *MockRandom) QueueEventID(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eventIDs = append(r.eventIDs, ids...)
}
