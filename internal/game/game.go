package game

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Validation errors. The text is shown to players verbatim.
var ErrNotYourTurn = errors.New("Not your turn.")
var ErrTooShort = errors.New("Invalid word (too short).")
var ErrMissingFragment = errors.New("Word doesn't contain the fragment.")
var ErrAlreadyUsed = errors.New("Word already used this game.")
var ErrNotInDictionary = errors.New("Word not in dictionary.")
var ErrNotInProgress = errors.New("Game is not in progress.")

type State string

const (
	StatePlaying State = "playing"
	StateOver    State = "over"
)

// Lexicon answers dictionary membership.
type Lexicon interface {
	IsValid(word string) bool
}

// Game is one round of play in a room. The turn index addresses the
// ordered list of players that are not eliminated.
type Game struct {
	RoomCode string

	players   []*Player
	turnIndex int
	fragment  string
	rules     Rules
	state     State
	used      map[string]struct{}
	lexicon   Lexicon
}

// New seats players in the given order with the starting lives.
func New(roomCode string, rules Rules, lexicon Lexicon, players []*Player) *Game {
	for _, p := range players {
		p.Lives = rules.StartingLives
		p.IsEliminated = p.Lives == 0
	}
	return &Game{
		RoomCode: roomCode,
		players:  players,
		rules:    rules,
		state:    StatePlaying,
		used:     map[string]struct{}{},
		lexicon:  lexicon,
	}
}

// Normalize is the form in which words are validated, stored and announced.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func (g *Game) State() State           { return g.state }
func (g *Game) Fragment() string       { return g.fragment }
func (g *Game) SetFragment(f string)   { g.fragment = strings.ToLower(f) }
func (g *Game) BombDuration() int      { return g.rules.BombDuration() }
func (g *Game) MinWordsPerPrompt() int { return g.rules.MinWordsPerPrompt }

// Players returns every player in seat order, eliminated ones included.
func (g *Game) Players() []*Player { return g.players }

func (g *Game) Player(id string) (*Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ActivePlayers returns the non-eliminated players in seat order.
func (g *Game) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}
	return active
}

// CurrentPlayer reports false when the turn index does not address an
// active player.
func (g *Game) CurrentPlayer() (*Player, bool) {
	active := g.ActivePlayers()
	if g.turnIndex < 0 || g.turnIndex >= len(active) {
		return nil, false
	}
	return active[g.turnIndex], true
}

func (g *Game) SetTurnIndex(i int) { g.turnIndex = i }

// AdvanceTurn moves the pointer forward to the next active player.
func (g *Game) AdvanceTurn() {
	n := len(g.ActivePlayers())
	if n == 0 {
		g.turnIndex = 0
		return
	}
	g.turnIndex = (g.turnIndex + 1) % n
}

// ValidateSubmission checks, in order: turn ownership, length, fragment,
// reuse within this game, and dictionary membership.
func (g *Game) ValidateSubmission(playerID, word string) error {
	if g.state != StatePlaying {
		return ErrNotInProgress
	}
	cur, ok := g.CurrentPlayer()
	if !ok || cur.ID != playerID {
		return ErrNotYourTurn
	}
	w := Normalize(word)
	if utf8.RuneCountInString(w) < g.rules.MinWordLength || w == "" {
		return ErrTooShort
	}
	if !strings.Contains(w, g.fragment) {
		return ErrMissingFragment
	}
	if _, dup := g.used[w]; dup {
		return ErrAlreadyUsed
	}
	if g.lexicon == nil || !g.lexicon.IsValid(w) {
		return ErrNotInDictionary
	}
	return nil
}

// ApplyAcceptedWord marks the word used and updates bonus progress. It
// reports whether the player earned a life.
func (g *Game) ApplyAcceptedWord(p *Player, word string) bool {
	w := Normalize(word)
	g.used[w] = struct{}{}
	if !p.collectBonus(w, g.rules.BonusTemplate) {
		return false
	}
	if p.Lives >= g.rules.MaxLives {
		return false
	}
	p.Lives++
	return true
}

// UsedWords returns how many distinct words were accepted this game.
func (g *Game) UsedWords() int { return len(g.used) }

// CheckGameOver ends the game once at most one player is left standing.
func (g *Game) CheckGameOver() (bool, string) {
	active := g.ActivePlayers()
	if len(active) > 1 {
		return false, ""
	}
	g.state = StateOver
	if len(active) == 1 {
		return true, active[0].ID
	}
	return true, ""
}
