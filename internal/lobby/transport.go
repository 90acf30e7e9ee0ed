package lobby

import (
	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

// transport writes envelopes into member outboxes. A member whose outbox
// is full is treated as disconnected.
type transport struct{ l *Lobby }

func (t transport) Send(target, event string, payload any) error {
	env := types.Envelope{Type: event, Data: payload}
	if target != "" {
		m, ok := t.l.members[target]
		if !ok {
			return ErrUnknownPlayer
		}
		if !t.deliver(m, env) {
			t.l.markDisconnected(m)
			t.l.syncRoster()
		}
		return nil
	}

	var slow []*member
	for _, id := range t.l.order {
		m := t.l.members[id]
		if !t.deliver(m, env) {
			slow = append(slow, m)
		}
	}
	for _, m := range slow {
		t.l.markDisconnected(m)
	}
	if len(slow) > 0 {
		t.l.syncRoster()
	}
	return nil
}

func (t transport) deliver(m *member, env types.Envelope) bool {
	if m.outbox == nil {
		return true
	}
	select {
	case m.outbox <- env:
		return true
	default:
		t.l.logger.Warn("dropping slow client", zap.String("player_id", m.id), zap.String("event", env.Type))
		return false
	}
}
