// Package schedulertest provides a Scheduler driven by the test itself.
package schedulertest

import (
	"sort"
	"time"

	"github.com/DoyleJ11/wordbomb-backend/internal/scheduler"
)

type entry struct {
	delay time.Duration
	fn    func()
}

// Manual never fires on its own; call Fire to run the oldest pending callback.
type Manual struct {
	next      scheduler.Token
	pending   map[scheduler.Token]entry
	Scheduled int
	Cancelled int
}

func New() *Manual {
	return &Manual{pending: make(map[scheduler.Token]entry)}
}

func (m *Manual) Schedule(d time.Duration, fn func()) scheduler.Token {
	m.next++
	m.pending[m.next] = entry{delay: d, fn: fn}
	m.Scheduled++
	return m.next
}

func (m *Manual) Cancel(t scheduler.Token) {
	if _, ok := m.pending[t]; ok {
		delete(m.pending, t)
		m.Cancelled++
	}
}

func (m *Manual) Outstanding() int { return len(m.pending) }

// LastDelay returns the delay of the newest pending callback.
func (m *Manual) LastDelay() (time.Duration, bool) {
	toks := m.tokens()
	if len(toks) == 0 {
		return 0, false
	}
	return m.pending[toks[len(toks)-1]].delay, true
}

// Fire runs the oldest pending callback and reports whether one existed.
func (m *Manual) Fire() bool {
	toks := m.tokens()
	if len(toks) == 0 {
		return false
	}
	e := m.pending[toks[0]]
	delete(m.pending, toks[0])
	e.fn()
	return true
}

func (m *Manual) tokens() []scheduler.Token {
	toks := make([]scheduler.Token, 0, len(m.pending))
	for t := range m.pending {
		toks = append(toks, t)
	}
	sort.Slice(toks, func(i, j int) bool { return toks[i] < toks[j] })
	return toks
}
