package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/game"
	"github.com/DoyleJ11/wordbomb-backend/internal/lobby"
	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

type noDict struct{}

func (noDict) IsValid(string) bool                { return false }
func (noDict) RandomFragment(int) (string, error) { return "aa", nil }

func newTestHub(t *testing.T) *Hub {
	return NewHub(context.Background(), Settings{
		Rules:           game.DefaultRules(),
		Dictionary:      noDict{},
		DisconnectGrace: time.Second,
		Logger:          zap.NewNop(),
	})
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newTestHub(t)
	defer func() { h.Inbox() <- ShutdownHub{} }()
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "ZED123", Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	if lb1 == nil || lb2 == nil || lb1 != lb2 {
		t.Fatalf("expected same lobby pointer")
	}

	h.Inbox() <- CreateLobby{Code: "ZED123", Reply: reply}
	assert.Nil(t, <-reply, "duplicate code must not create a room")
	assert.Equal(t, 1, h.Count())
}

func TestHub_EmptyRoomIsRemoved(t *testing.T) {
	h := newTestHub(t)
	defer func() { h.Inbox() <- ShutdownHub{} }()
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- CreateLobby{Code: "ROOM01", Reply: reply}
	lb := <-reply

	out := make(chan types.Envelope, 16)
	require.True(t, lb.Send(lobby.Join{PlayerID: "p1", Outbox: out}))
	require.True(t, lb.Send(lobby.Leave{PlayerID: "p1"}))

	require.Eventually(t, func() bool { return h.Get("ROOM01") == nil }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, h.Count())
}

func TestHub_StaleRemoveKeepsNewRoom(t *testing.T) {
	h := newTestHub(t)
	defer func() { h.Inbox() <- ShutdownHub{} }()
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- CreateLobby{Code: "ROOM01", Reply: reply}
	lb := <-reply

	h.Inbox() <- RemoveLobby{Code: "ROOM01", Lobby: nil}
	assert.Same(t, lb, h.Get("ROOM01"))
}

func TestHub_ShutdownStopsRooms(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- CreateLobby{Code: "ROOM01", Reply: reply}
	lb := <-reply

	h.Inbox() <- ShutdownHub{}

	select {
	case <-lb.Done():
	case <-time.After(time.Second):
		t.Fatal("lobby still running after hub shutdown")
	}
	<-h.Done()
	assert.Nil(t, h.Get("ROOM01"))
	assert.Equal(t, 0, h.Count())
}
