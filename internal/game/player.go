package game

type Player struct {
	ID           string
	Name         string
	Lives        int
	IsEliminated bool
	IsConnected  bool
	IsSeated     bool

	// letters of the bonus template used since the last bonus life
	bonus map[rune]struct{}
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		IsConnected: true,
		IsSeated:    true,
		bonus:       map[rune]struct{}{},
	}
}

// LoseLife removes one life, never going below zero, and eliminates the
// player when none are left. It returns the remaining lives.
func (p *Player) LoseLife() int {
	if p.Lives > 0 {
		p.Lives--
	}
	if p.Lives == 0 {
		p.IsEliminated = true
	}
	return p.Lives
}

func (p *Player) Eliminate() {
	p.Lives = 0
	p.IsEliminated = true
}

// BonusLetters returns how many template letters the player has collected.
func (p *Player) BonusLetters() int { return len(p.bonus) }

// collectBonus records the template letters found in word and reports
// whether the whole template is now covered. Progress resets on completion.
func (p *Player) collectBonus(word, template string) bool {
	if template == "" {
		return false
	}
	if p.bonus == nil {
		p.bonus = map[rune]struct{}{}
	}
	for _, r := range word {
		for _, t := range template {
			if r == t {
				p.bonus[r] = struct{}{}
				break
			}
		}
	}
	for _, t := range template {
		if _, ok := p.bonus[t]; !ok {
			return false
		}
	}
	clear(p.bonus)
	return true
}
