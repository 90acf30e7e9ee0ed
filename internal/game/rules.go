package game

// Rules are fixed for the lifetime of one Game.
type Rules struct {
	StartingLives      int
	MaxLives           int
	BonusTemplate      string
	TurnDurationSec    int
	MinTurnDurationSec int
	MinWordLength      int
	MinWordsPerPrompt  int
}

func DefaultRules() Rules {
	return Rules{
		StartingLives:      2,
		MaxLives:           3,
		BonusTemplate:      "abcdefghijlmnopqrstuv",
		TurnDurationSec:    8,
		MinTurnDurationSec: 5,
		MinWordLength:      3,
		MinWordsPerPrompt:  5,
	}
}

// BombDuration is the per-turn limit in seconds, never below the minimum.
func (r Rules) BombDuration() int {
	return max(r.TurnDurationSec, r.MinTurnDurationSec)
}
