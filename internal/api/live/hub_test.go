package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub("GAME01", testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

// client returns a registered client with no connection behind it
func (s *HubSuite) client() *Client {
	c := newClient(s.hub, nil, testutil.NopLogger())
	s.Require().True(s.hub.Register(c))
	return c
}

func (s *HubSuite) waitForClients(n int) {
	s.Eventually(func() bool { return s.hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func (s *HubSuite) receive(c *Client) []byte {
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		s.FailNow("no message received")
		return nil
	}
}

func (s *HubSuite) TestBroadcastReachesEveryClient() {
	a, b := s.client(), s.client()
	s.waitForClients(2)

	s.hub.Broadcast([]byte("hello"))

	s.Equal("hello", string(s.receive(a)))
	s.Equal("hello", string(s.receive(b)))
}

func (s *HubSuite) TestBroadcastEventEncodesOutbound() {
	c := s.client()
	s.waitForClients(1)

	s.hub.BroadcastEvent(model.GameEvent{PlayerID: "alice", Type: model.EventPass}, "alice passed their turn.")

	var msg Outbound
	s.Require().NoError(json.Unmarshal(s.receive(c), &msg))
	s.Equal(TypeEvent, msg.Type)
	s.Equal("alice passed their turn.", msg.Summary)
	s.Require().NotNil(msg.Event)
	s.Equal(model.EventPass, msg.Event.Type)
}

func (s *HubSuite) TestUnregisterClosesClient() {
	c := s.client()
	s.waitForClients(1)

	s.hub.Unregister(c)
	s.waitForClients(0)

	select {
	case <-c.done:
	default:
		s.Fail("client not closed")
	}
	s.False(c.enqueue([]byte("late")))
}

func (s *HubSuite) TestCloseDisconnectsClientsAndRejectsNewOnes() {
	c := s.client()
	s.waitForClients(1)

	s.hub.Close()
	s.Eventually(func() bool {
		select {
		case <-c.done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	s.False(s.hub.Register(newClient(s.hub, nil, testutil.NopLogger())))
}

func (s *HubSuite) TestEnqueueDropsWhenBufferFull() {
	c := newClient(s.hub, nil, testutil.NopLogger())
	for i := 0; i < sendBufferSize; i++ {
		s.Require().True(c.enqueue([]byte("x")))
	}
	s.False(c.enqueue([]byte("overflow")))
}

func TestHubManager(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Shutdown()

	hub := m.GetOrCreateHub("GAME01")
	if m.GetOrCreateHub("GAME01") != hub {
		t.Fatal("GetOrCreateHub returned a second hub for the same game")
	}
	if m.GetHub("GAME02") != nil {
		t.Fatal("GetHub created a hub")
	}

	busy := m.GetOrCreateHub("GAME02")
	c := newClient(busy, nil, testutil.NopLogger())
	if !busy.Register(c) {
		t.Fatal("register failed")
	}
	deadline := time.Now().Add(time.Second)
	for busy.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	m.CleanupEmptyHubs()
	if m.GetHub("GAME01") != nil {
		t.Error("empty hub survived cleanup")
	}
	if m.GetHub("GAME02") != busy {
		t.Error("hub with a client was cleaned up")
	}

	m.RemoveHub("GAME02")
	if m.GetHub("GAME02") != nil {
		t.Error("hub survived RemoveHub")
	}
	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("client of removed hub not closed")
	}
	if busy.Register(newClient(busy, nil, testutil.NopLogger())) {
		t.Error("removed hub accepted a client")
	}
}
