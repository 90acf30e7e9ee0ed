package telemetry

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Transport delivers one event. An empty target means every client in the room.
type Transport interface {
	Send(target, event string, payload any) error
}

// Emitter is the single outbound path for a room. It measures and logs each
// payload before handing it to the transport; measuring never blocks or
// fails a send.
type Emitter struct {
	roomID    string
	transport Transport
	logger    *zap.Logger
	measure   func(payload any) (int, error)
}

func NewEmitter(roomID string, t Transport, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{roomID: roomID, transport: t, logger: logger, measure: jsonSize}
}

func (e *Emitter) Broadcast(event string, payload any) error {
	return e.emit("", event, payload)
}

func (e *Emitter) SendTo(clientID, event string, payload any) error {
	return e.emit(clientID, event, payload)
}

func (e *Emitter) emit(target, event string, payload any) error {
	fields := []zap.Field{zap.String("event", event), zap.String("room", e.roomID)}
	if target != "" {
		fields = append(fields, zap.String("client", target))
	}
	size, err := e.safeMeasure(payload)
	if err != nil {
		e.logger.Warn("payload size unavailable", append(fields, zap.Error(err))...)
		fields = append(fields, zap.Bool("size_unknown", true))
	} else {
		fields = append(fields, zap.Int("bytes", size))
	}
	e.logger.Debug("outbound event", fields...)
	return e.transport.Send(target, event, payload)
}

func (e *Emitter) safeMeasure(payload any) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("measure panicked: %v", r)
		}
	}()
	return e.measure(payload)
}

func jsonSize(payload any) (int, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}
