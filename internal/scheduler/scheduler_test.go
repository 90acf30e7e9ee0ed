package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimers_FiresOnce(t *testing.T) {
	ts := NewTimers(nil)
	fired := make(chan struct{}, 2)

	ts.Schedule(10*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, 0, ts.Outstanding())
}

func TestTimers_CancelPreventsFire(t *testing.T) {
	ts := NewTimers(nil)
	var n atomic.Int32

	tok := ts.Schedule(20*time.Millisecond, func() { n.Add(1) })
	ts.Cancel(tok)
	ts.Cancel(tok) // idempotent

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), n.Load())
	assert.Equal(t, 0, ts.Outstanding())
}

func TestTimers_CancelAfterFireBeforeDispatchDrops(t *testing.T) {
	queued := make(chan func(), 1)
	ts := NewTimers(func(fn func()) { queued <- fn })
	var n atomic.Int32

	tok := ts.Schedule(time.Millisecond, func() { n.Add(1) })

	var fn func()
	select {
	case fn = <-queued:
	case <-time.After(time.Second):
		t.Fatal("timer did not dispatch")
	}
	ts.Cancel(tok)
	fn()
	assert.Equal(t, int32(0), n.Load())
}

func TestTimers_StopCancelsAll(t *testing.T) {
	ts := NewTimers(nil)
	var n atomic.Int32
	for i := 0; i < 3; i++ {
		ts.Schedule(20*time.Millisecond, func() { n.Add(1) })
	}
	require.Equal(t, 3, ts.Outstanding())

	ts.Stop()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), n.Load())
}
