package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type sent struct {
	target, event string
	payload       any
}

type fakeTransport struct {
	sent []sent
	err  error
}

func (f *fakeTransport) Send(target, event string, payload any) error {
	f.sent = append(f.sent, sent{target, event, payload})
	return f.err
}

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestEmit_LogsSizeThenSends(t *testing.T) {
	logger, logs := newObserved()
	tr := &fakeTransport{}
	e := NewEmitter("ROOM01", tr, logger)

	require.NoError(t, e.Broadcast("TurnStarted", map[string]string{"a": "b"}))

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "TurnStarted", tr.sent[0].event)
	assert.Equal(t, "", tr.sent[0].target)

	entries := logs.FilterMessage("outbound event").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "TurnStarted", ctx["event"])
	assert.Equal(t, "ROOM01", ctx["room"])
	assert.EqualValues(t, len(`{"a":"b"}`), ctx["bytes"])
}

type cyclic struct {
	Next *cyclic
}

func TestEmit_CyclicPayloadStillDelivered(t *testing.T) {
	logger, logs := newObserved()
	tr := &fakeTransport{}
	e := NewEmitter("ROOM01", tr, logger)

	c := &cyclic{}
	c.Next = c
	require.NoError(t, e.SendTo("p1", "Weird", c))

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "p1", tr.sent[0].target)
	assert.Equal(t, 1, logs.FilterMessage("payload size unavailable").Len())
	debug := logs.FilterMessage("outbound event").All()
	require.Len(t, debug, 1)
	_, hasBytes := debug[0].ContextMap()["bytes"]
	assert.False(t, hasBytes)
}

func TestEmit_MeasurePanicIsSwallowed(t *testing.T) {
	logger, _ := newObserved()
	tr := &fakeTransport{}
	e := NewEmitter("ROOM01", tr, logger)
	e.measure = func(any) (int, error) { panic("boom") }

	require.NoError(t, e.Broadcast("X", nil))
	assert.Len(t, tr.sent, 1)
}

func TestEmit_ReturnsTransportError(t *testing.T) {
	tr := &fakeTransport{err: errors.New("closed")}
	e := NewEmitter("ROOM01", tr, nil)

	assert.EqualError(t, e.Broadcast("X", 1), "closed")
}
