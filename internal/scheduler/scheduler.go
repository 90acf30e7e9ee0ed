package scheduler

import (
	"sync"
	"time"
)

// Token identifies one scheduled callback. The zero Token is never issued.
type Token uint64

// Scheduler runs a callback once after a delay unless cancelled first.
// Cancelling a fired or already cancelled token is a no-op.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Token
	Cancel(t Token)
}

// Timers is a Scheduler backed by time.AfterFunc. Fired callbacks are
// handed to dispatch, which lets a room run them on its own goroutine.
// A callback cancelled after its timer fired but before dispatch ran it
// is dropped.
type Timers struct {
	mu       sync.Mutex
	dispatch func(func())
	next     Token
	live     map[Token]*time.Timer
}

// NewTimers returns a Scheduler. A nil dispatch runs callbacks on the
// timer goroutine.
func NewTimers(dispatch func(func())) *Timers {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Timers{dispatch: dispatch, live: make(map[Token]*time.Timer)}
}

func (t *Timers) Schedule(d time.Duration, fn func()) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	tok := t.next
	t.live[tok] = time.AfterFunc(d, func() {
		t.dispatch(func() {
			if t.take(tok) {
				fn()
			}
		})
	})
	return tok
}

func (t *Timers) take(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.live[tok]; !ok {
		return false
	}
	delete(t.live, tok)
	return true
}

func (t *Timers) Cancel(tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.live[tok]; ok {
		timer.Stop()
		delete(t.live, tok)
	}
}

// Outstanding returns how many callbacks are still pending.
func (t *Timers) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Stop cancels everything.
func (t *Timers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for tok, timer := range t.live {
		timer.Stop()
		delete(t.live, tok)
	}
}
