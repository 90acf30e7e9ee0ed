package engine

import "github.com/DoyleJ11/wordbomb-backend/internal/game"

func (e *Engine) activeIndex(playerID string) int {
	for i, p := range e.rules.ActivePlayers() {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// retreatFrom points the turn at the player before the seat that idx held,
// so the next AdvanceTurn lands on whoever followed the removed player.
func (e *Engine) retreatFrom(idx int) {
	n := len(e.rules.ActivePlayers())
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	e.rules.SetTurnIndex((idx - 1 + n) % n)
}

func playerViews(players []*game.Player) []PlayerView {
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Lives:        p.Lives,
			IsEliminated: p.IsEliminated,
			IsConnected:  p.IsConnected,
		})
	}
	return out
}
