package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/game"
	"github.com/DoyleJ11/wordbomb-backend/internal/lobby"
)

// Settings are applied to every room the hub creates.
type Settings struct {
	Rules           game.Rules
	Dictionary      lobby.Dictionary
	DisconnectGrace time.Duration
	Logger          *zap.Logger
}

type HubMsg interface{ isHubMsg() }

// CreateLobby replies nil when the code is already taken.
type CreateLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

// RemoveLobby drops Code only while it still maps to Lobby, so a stale
// removal cannot evict a newer room that reused the code.
type RemoveLobby struct {
	Code  string
	Lobby *lobby.Lobby
}

type CountLobbies struct {
	Reply chan int
}

type Hub struct {
	inbox    chan HubMsg
	lobbies  map[string]*lobby.Lobby
	settings Settings
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg()  {}
func (GetLobby) isHubMsg()     {}
func (RemoveLobby) isHubMsg()  {}
func (CountLobbies) isHubMsg() {}
func (ShutdownHub) isHubMsg()  {}

func NewHub(parent context.Context, settings Settings) *Hub {
	ctx, cancel := context.WithCancel(parent)
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		lobbies:  make(map[string]*lobby.Lobby),
		settings: settings,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed after the hub shuts down.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

// Get looks up a room, returning nil if it does not exist.
func (h *Hub) Get(code string) *lobby.Lobby {
	if h.ctx.Err() != nil {
		return nil
	}
	reply := make(chan *lobby.Lobby, 1)
	select {
	case h.inbox <- GetLobby{Code: code, Reply: reply}:
	case <-h.ctx.Done():
		return nil
	}
	select {
	case lb := <-reply:
		return lb
	case <-h.ctx.Done():
		return nil
	}
}

// Count reports how many rooms are open, or 0 once the hub stopped.
func (h *Hub) Count() int {
	if h.ctx.Err() != nil {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case h.inbox <- CountLobbies{Reply: reply}:
	case <-h.ctx.Done():
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-h.ctx.Done():
		return 0
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if h.lobbies[msg.Code] != nil {
					msg.Reply <- nil
					break
				}
				msg.Reply <- h.open(msg.Code)

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case RemoveLobby:
				if h.lobbies[msg.Code] == msg.Lobby {
					delete(h.lobbies, msg.Code)
					h.logger.Info("room removed", zap.String("room", msg.Code))
				}

			case CountLobbies:
				msg.Reply <- len(h.lobbies)

			case ShutdownHub:
				h.cancel()
			}
		}
	}
}

func (h *Hub) open(code string) *lobby.Lobby {
	lb := lobby.NewLobby(h.ctx, lobby.Config{
		Code:            code,
		Rules:           h.settings.Rules,
		Dictionary:      h.settings.Dictionary,
		DisconnectGrace: h.settings.DisconnectGrace,
		Logger:          h.logger,
		OnEmpty:         h.onEmpty,
	})
	h.lobbies[code] = lb
	h.logger.Info("room created", zap.String("room", code))
	return lb
}

// onEmpty runs on the lobby goroutine, so it must not block on the hub.
func (h *Hub) onEmpty(lb *lobby.Lobby) {
	go func() {
		select {
		case h.inbox <- RemoveLobby{Code: lb.Code(), Lobby: lb}:
		case <-h.ctx.Done():
		}
	}()
}

func (h *Hub) shutdown() {
	for _, lb := range h.lobbies {
		lb.Send(lobby.Shutdown{})
	}
	clear(h.lobbies)
}
