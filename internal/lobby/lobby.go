package lobby

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/engine"
	"github.com/DoyleJ11/wordbomb-backend/internal/game"
	"github.com/DoyleJ11/wordbomb-backend/internal/roster"
	"github.com/DoyleJ11/wordbomb-backend/internal/scheduler"
	"github.com/DoyleJ11/wordbomb-backend/internal/telemetry"
	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

var ErrNotLeader = errors.New("only the room leader can do that")
var ErrGameInProgress = errors.New("a game is already running")
var ErrNotEnoughPlayers = errors.New("at least two seated players are needed")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrUnknownMessage = errors.New("unknown message type")
var ErrInvalidName = errors.New("name must be 1 to 24 characters")

type Msg interface{ isLobbyMsg() }

// Join attaches a connection. Joining with the id of a member who is still
// inside the disconnect grace period resumes that member.
type Join struct {
	PlayerID string
	Name     string
	Outbox   chan types.Envelope // the lobby closes it when it is done writing
	Reply    chan error          // optional, buffered
}

// Leave removes a member immediately.
type Leave struct{ PlayerID string }

// Disconnect reports that the connection owning Outbox went away. It is
// ignored if the member has since reconnected on a different outbox.
type Disconnect struct {
	PlayerID string
	Outbox   chan types.Envelope
}

type FromClient struct {
	PlayerID string
	Msg      types.ClientMessage
}

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

type timerFired struct{ fn func() }

func (Join) isLobbyMsg()       {}
func (Leave) isLobbyMsg()      {}
func (Disconnect) isLobbyMsg() {}
func (FromClient) isLobbyMsg() {}
func (GetState) isLobbyMsg()   {}
func (Shutdown) isLobbyMsg()   {}
func (timerFired) isLobbyMsg() {}

// Dictionary is what a room needs from the word list.
type Dictionary interface {
	IsValid(word string) bool
	RandomFragment(minWords int) (string, error)
}

type Config struct {
	Code            string
	Rules           game.Rules
	Dictionary      Dictionary
	DisconnectGrace time.Duration
	Logger          *zap.Logger
	// OnEmpty runs once after the last member left and the lobby stopped.
	OnEmpty func(l *Lobby)
}

type View struct {
	Code       string
	LeaderID   string
	Members    []roster.Entry
	NumClients int
	Phase      engine.Phase
	Game       *types.GameState
}

type member struct {
	id         string
	name       string
	seated     bool
	connected  bool
	outbox     chan types.Envelope
	grace      scheduler.Token
	graceArmed bool
}

// Lobby owns everything about one room and runs it on a single goroutine:
// client messages, turn timeouts and grace timers are all serialized
// through the inbox.
type Lobby struct {
	cfg    Config
	logger *zap.Logger

	inbox    chan Msg
	members  map[string]*member
	order    []string
	leaderID string
	joined   int

	roster  *roster.Synchronizer
	emitter *telemetry.Emitter
	timers  *scheduler.Timers

	game   *game.Game
	engine *engine.Engine

	emptied bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, cfg Config) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("room", cfg.Code))

	l := &Lobby{
		cfg:     cfg,
		logger:  logger,
		inbox:   make(chan Msg, 64), // Small buffer
		members: make(map[string]*member),
		roster:  roster.New(),
		ctx:     ctx,
		cancel:  cancel,
	}
	l.emitter = telemetry.NewEmitter(cfg.Code, transport{l}, logger)
	l.timers = scheduler.NewTimers(l.dispatch)

	go l.loop()
	return l
}

func (l *Lobby) Code() string { return l.cfg.Code }

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the lobby stops accepting messages.
func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }

// Send delivers m unless the lobby has stopped. It reports whether m was queued.
func (l *Lobby) Send(m Msg) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case l.inbox <- m:
		return true
	case <-l.ctx.Done():
		return false
	}
}

func (l *Lobby) dispatch(fn func()) {
	select {
	case l.inbox <- timerFired{fn: fn}:
	case <-l.ctx.Done():
	}
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			l.handle(m)
			if l.ctx.Err() != nil {
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handle(m Msg) {
	switch msg := m.(type) {
	case Join:
		err := l.join(msg)
		if msg.Reply != nil {
			msg.Reply <- err
		}

	case Leave:
		l.removeMember(msg.PlayerID, "left")

	case Disconnect:
		l.disconnect(msg.PlayerID, msg.Outbox)

	case FromClient:
		if err := l.fromClient(msg); err != nil {
			_ = l.emitter.SendTo(msg.PlayerID, types.EvtError, types.Error{Message: err.Error()})
		}

	case GetState:
		// test-only: reflect internal state without data races
		msg.Reply <- l.view()

	case timerFired:
		msg.fn()

	case Shutdown:
		l.cancel()
	}
}

func (l *Lobby) shutdown() {
	if l.engine != nil {
		l.engine.ClearTimeout()
	}
	l.timers.Stop()
	for id, m := range l.members {
		if m.outbox != nil {
			close(m.outbox) // Tell client no more events
		}
		delete(l.members, id)
	}
	l.order = nil
	l.roster.Reset()
	l.cancel()
	if l.emptied && l.cfg.OnEmpty != nil {
		l.cfg.OnEmpty(l)
	}
	l.logger.Info("room closed")
}

func (l *Lobby) running() bool {
	return l.engine != nil && l.engine.Phase() != engine.PhaseGameOver
}

func (l *Lobby) view() View {
	v := View{
		Code:     l.cfg.Code,
		LeaderID: l.leaderID,
		Members:  l.entries(),
		Phase:    engine.PhaseIdle,
		Game:     l.gameState(),
	}
	for _, m := range l.members {
		if m.outbox != nil {
			v.NumClients++
		}
	}
	if l.engine != nil {
		v.Phase = l.engine.Phase()
	}
	return v
}
