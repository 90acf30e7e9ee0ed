package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wordSet map[string]bool

func (w wordSet) IsValid(word string) bool { return w[word] }

func newTestGame(ids ...string) *Game {
	var players []*Player
	for _, id := range ids {
		players = append(players, NewPlayer(id, "name-"+id))
	}
	rules := DefaultRules()
	g := New("ROOM01", rules, wordSet{"aab": true, "baa": true, "caab": true, "xyz": true}, players)
	g.SetFragment("aa")
	return g
}

func TestValidateSubmission_Precedence(t *testing.T) {
	cases := []struct {
		name     string
		playerID string
		word     string
		prepare  func(g *Game)
		want     error
	}{
		{name: "wrong player even with valid word", playerID: "B", word: "aab", want: ErrNotYourTurn},
		{name: "too short beats missing fragment", playerID: "A", word: "zz", want: ErrTooShort},
		{name: "missing fragment", playerID: "A", word: "xyz", want: ErrMissingFragment},
		{
			name: "already used", playerID: "A", word: "AAB",
			prepare: func(g *Game) { g.used["aab"] = struct{}{} },
			want:    ErrAlreadyUsed,
		},
		{name: "not in dictionary", playerID: "A", word: "aaq", want: ErrNotInDictionary},
		{name: "valid", playerID: "A", word: " Aab ", want: nil},
		{
			name: "finished game", playerID: "A", word: "aab",
			prepare: func(g *Game) { g.state = StateOver },
			want:    ErrNotInProgress,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame("A", "B")
			if tc.prepare != nil {
				tc.prepare(g)
			}
			err := g.ValidateSubmission(tc.playerID, tc.word)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestErrorTextIsExact(t *testing.T) {
	assert.Equal(t, "Not your turn.", ErrNotYourTurn.Error())
	assert.Equal(t, "Invalid word (too short).", ErrTooShort.Error())
	assert.Equal(t, "Word doesn't contain the fragment.", ErrMissingFragment.Error())
	assert.Equal(t, "Word already used this game.", ErrAlreadyUsed.Error())
}

func TestUsedWordsScopedPerGame(t *testing.T) {
	a := newTestGame("A", "B")
	p, _ := a.CurrentPlayer()
	require.NoError(t, a.ValidateSubmission(p.ID, "aab"))
	a.ApplyAcceptedWord(p, "aab")
	require.ErrorIs(t, a.ValidateSubmission(p.ID, "aab"), ErrAlreadyUsed)

	b := newTestGame("A", "B")
	p, _ = b.CurrentPlayer()
	assert.NoError(t, b.ValidateSubmission(p.ID, "aab"))
}

func TestAdvanceTurn_SkipsEliminated(t *testing.T) {
	g := newTestGame("A", "B", "C")
	g.players[1].Eliminate()

	cur, ok := g.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, "A", cur.ID)

	g.AdvanceTurn()
	cur, _ = g.CurrentPlayer()
	assert.Equal(t, "C", cur.ID)

	g.AdvanceTurn()
	cur, _ = g.CurrentPlayer()
	assert.Equal(t, "A", cur.ID)
}

func TestCurrentPlayer_OutOfRange(t *testing.T) {
	g := newTestGame("A", "B")
	g.SetTurnIndex(5)
	_, ok := g.CurrentPlayer()
	assert.False(t, ok)
}

func TestLoseLife_NeverBelowZero(t *testing.T) {
	p := NewPlayer("A", "a")
	p.Lives = 1

	assert.Equal(t, 0, p.LoseLife())
	assert.True(t, p.IsEliminated)
	assert.Equal(t, 0, p.LoseLife())
}

func TestCheckGameOver(t *testing.T) {
	g := newTestGame("A", "B")
	ended, _ := g.CheckGameOver()
	assert.False(t, ended)
	assert.Equal(t, StatePlaying, g.State())

	g.players[0].Eliminate()
	ended, winner := g.CheckGameOver()
	assert.True(t, ended)
	assert.Equal(t, "B", winner)
	assert.Equal(t, StateOver, g.State())
}

func TestApplyAcceptedWord_BonusLife(t *testing.T) {
	g := newTestGame("A", "B")
	g.rules.BonusTemplate = "ab"
	g.rules.MaxLives = 3
	p, _ := g.CurrentPlayer()

	gained := g.ApplyAcceptedWord(p, "aab")
	assert.True(t, gained)
	assert.Equal(t, 3, p.Lives)
	assert.Equal(t, 0, p.BonusLetters())

	// already at the cap: progress resets but no extra life
	gained = g.ApplyAcceptedWord(p, "baa")
	assert.False(t, gained)
	assert.Equal(t, 3, p.Lives)
}

func TestBombDuration_Floor(t *testing.T) {
	r := Rules{TurnDurationSec: 2, MinTurnDurationSec: 5}
	assert.Equal(t, 5, r.BombDuration())
	r.TurnDurationSec = 9
	assert.Equal(t, 9, r.BombDuration())
}
