package engine

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/dictionary"
	"github.com/DoyleJ11/wordbomb-backend/internal/game"
	"github.com/DoyleJ11/wordbomb-backend/internal/scheduler"
)

// Rules is the game aggregate the engine drives. *game.Game implements it.
type Rules interface {
	CurrentPlayer() (*game.Player, bool)
	Player(id string) (*game.Player, bool)
	Players() []*game.Player
	ActivePlayers() []*game.Player
	SetTurnIndex(i int)
	ValidateSubmission(playerID, word string) error
	ApplyAcceptedWord(p *game.Player, word string) bool
	AdvanceTurn()
	CheckGameOver() (bool, string)
	Fragment() string
	SetFragment(f string)
	BombDuration() int
	MinWordsPerPrompt() int
}

// Prompts draws the fragment for a new turn.
type Prompts interface {
	RandomFragment(minWords int) (string, error)
}

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseAwaitingTurn Phase = "awaiting_turn"
	PhaseTurnResolved Phase = "turn_resolved"
	PhaseGameOver     Phase = "game_over"
)

type SubmitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Options struct {
	Logger *zap.Logger
	// OnTimeout is called with the player who just lost a life to the timer.
	OnTimeout func(p *game.Player)
}

// Engine runs the turn state machine for one game. It is not safe for
// concurrent use; the owning room serializes every call, including timer
// callbacks.
type Engine struct {
	rules     Rules
	sched     scheduler.Scheduler
	prompts   Prompts
	bus       *Bus
	logger    *zap.Logger
	onTimeout func(p *game.Player)

	phase   Phase
	token   scheduler.Token
	pending bool
}

func New(rules Rules, sched scheduler.Scheduler, prompts Prompts, bus *Bus, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = NewBus()
	}
	return &Engine{
		rules:     rules,
		sched:     sched,
		prompts:   prompts,
		bus:       bus,
		logger:    logger,
		onTimeout: opts.OnTimeout,
		phase:     PhaseIdle,
	}
}

func (e *Engine) Phase() Phase { return e.phase }

// HasPendingTimer reports whether a turn timeout is outstanding.
func (e *Engine) HasPendingTimer() bool { return e.pending }

// BeginGame starts the first turn. A fragment already set on the game is
// kept; otherwise one is drawn.
func (e *Engine) BeginGame() {
	if e.phase != PhaseIdle {
		return
	}
	e.startTurn(e.rules.Fragment() == "")
}

// SubmitWord validates word for playerID and, when accepted, either ends
// the game or moves on to the next turn.
func (e *Engine) SubmitWord(playerID, word string) SubmitResult {
	if e.phase != PhaseAwaitingTurn {
		return SubmitResult{Error: game.ErrNotInProgress.Error()}
	}
	if err := e.rules.ValidateSubmission(playerID, word); err != nil {
		return SubmitResult{Error: err.Error()}
	}
	p, ok := e.rules.CurrentPlayer()
	if !ok {
		return SubmitResult{Error: game.ErrNotYourTurn.Error()}
	}

	e.cancelPending()
	e.phase = PhaseTurnResolved
	w := game.Normalize(word)
	gained := e.rules.ApplyAcceptedWord(p, w)
	e.bus.Publish(Event{Type: EvtWordAccepted, PlayerID: p.ID, Word: w})
	if gained {
		e.bus.Publish(Event{Type: EvtPlayerUpdated, PlayerID: p.ID, Lives: p.Lives})
	}
	e.resolve()
	return SubmitResult{Success: true}
}

// ForfeitPlayer eliminates a player who stayed disconnected past the grace
// period. Unknown or already eliminated players are ignored.
func (e *Engine) ForfeitPlayer(playerID string) {
	if e.phase == PhaseIdle || e.phase == PhaseGameOver {
		return
	}
	p, ok := e.rules.Player(playerID)
	if !ok || p.IsEliminated {
		return
	}

	active, known := e.rules.CurrentPlayer()
	forfeitedIdx := e.activeIndex(p.ID)

	p.Eliminate()
	e.bus.Publish(Event{Type: EvtPlayerUpdated, PlayerID: p.ID, Lives: 0})

	if ended, winner := e.rules.CheckGameOver(); ended {
		e.endGame(winner)
		return
	}

	switch {
	case !known:
		e.logger.Warn("forfeit with no current player, advancing", zap.String("player_id", p.ID))
		e.advance()
	case active.ID == p.ID:
		e.retreatFrom(forfeitedIdx)
		e.advance()
	default:
		i := e.activeIndex(active.ID)
		if i < 0 {
			e.logger.Warn("active player missing after forfeit, advancing",
				zap.String("player_id", p.ID),
				zap.String("active_id", active.ID),
			)
			e.advance()
			return
		}
		// indices shift when a player drops out; the running timer stays
		e.rules.SetTurnIndex(i)
	}
}

// ClearTimeout cancels the pending turn timeout without starting a new turn.
func (e *Engine) ClearTimeout() { e.cancelPending() }

func (e *Engine) onTurnTimeout() {
	e.pending = false
	if e.phase != PhaseAwaitingTurn {
		return
	}
	p, ok := e.rules.CurrentPlayer()
	if !ok {
		e.logger.Warn("turn timeout with no current player, advancing")
		e.phase = PhaseTurnResolved
		e.advance()
		return
	}

	e.phase = PhaseTurnResolved
	idx := e.activeIndex(p.ID)
	lives := p.LoseLife()
	e.bus.Publish(Event{Type: EvtPlayerUpdated, PlayerID: p.ID, Lives: lives})
	if e.onTimeout != nil {
		e.onTimeout(p)
	}
	if p.IsEliminated {
		e.retreatFrom(idx)
	}
	e.resolve()
}

func (e *Engine) resolve() {
	if ended, winner := e.rules.CheckGameOver(); ended {
		e.endGame(winner)
		return
	}
	e.advance()
}

func (e *Engine) advance() {
	e.rules.AdvanceTurn()
	e.startTurn(true)
}

func (e *Engine) endGame(winnerID string) {
	e.cancelPending()
	e.phase = PhaseGameOver
	e.bus.Publish(Event{Type: EvtGameEnded, WinnerID: winnerID})
}

func (e *Engine) startTurn(drawFragment bool) {
	e.cancelPending()
	if drawFragment {
		e.drawFragment()
	}
	p, ok := e.rules.CurrentPlayer()
	if !ok {
		e.logger.Error("cannot start turn: no current player")
		return
	}

	d := time.Duration(e.rules.BombDuration()) * time.Second
	e.token = e.sched.Schedule(d, e.onTurnTimeout)
	e.pending = true
	e.phase = PhaseAwaitingTurn

	e.bus.Publish(Event{Type: EvtTurnStarted, Turn: TurnStarted{
		PlayerID:   p.ID,
		Fragment:   e.rules.Fragment(),
		DurationMs: d.Milliseconds(),
		Players:    playerViews(e.rules.Players()),
	}})
}

func (e *Engine) drawFragment() {
	if e.prompts == nil {
		return
	}
	f, err := e.prompts.RandomFragment(e.rules.MinWordsPerPrompt())
	if err != nil {
		if errors.Is(err, dictionary.ErrNoFragment) {
			e.logger.Error("dictionary cannot satisfy prompt threshold, keeping fragment",
				zap.Int("min_words", e.rules.MinWordsPerPrompt()),
				zap.String("fragment", e.rules.Fragment()),
				zap.Error(err),
			)
			return
		}
		e.logger.Warn("fragment draw failed, keeping fragment", zap.Error(err))
		return
	}
	e.rules.SetFragment(f)
}

func (e *Engine) cancelPending() {
	if !e.pending {
		return
	}
	e.sched.Cancel(e.token)
	e.pending = false
}
