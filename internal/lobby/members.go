package lobby

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/roster"
	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

const maxNameLength = 24

func (l *Lobby) join(msg Join) error {
	if msg.PlayerID == "" || msg.Outbox == nil {
		return ErrUnknownPlayer
	}
	name := strings.TrimSpace(msg.Name)
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrInvalidName
	}

	m, ok := l.members[msg.PlayerID]
	if ok {
		if m.outbox != nil {
			close(m.outbox)
		}
		l.cancelGrace(m)
		m.outbox = msg.Outbox
		m.connected = true
		if name != "" {
			m.name = name
		}
		l.logger.Info("member reconnected", zap.String("player_id", m.id))
	} else {
		l.joined++
		if name == "" {
			name = fmt.Sprintf("Player %d", l.joined)
		}
		m = &member{id: msg.PlayerID, name: name, connected: true, outbox: msg.Outbox}
		l.members[m.id] = m
		l.order = append(l.order, m.id)
		if l.leaderID == "" {
			l.leaderID = m.id
		}
		l.logger.Info("member joined", zap.String("player_id", m.id))
	}
	l.setGameConnected(m.id, true)

	_ = l.emitter.SendTo(m.id, types.EvtRoomState, l.roomState(m.id))
	// the snapshot already covers the joiner
	l.syncRosterExcept(m.id)
	return nil
}

func (l *Lobby) disconnect(id string, outbox chan types.Envelope) {
	m, ok := l.members[id]
	if !ok || m.outbox == nil || m.outbox != outbox {
		return
	}
	l.markDisconnected(m)
	l.syncRoster()
}

// markDisconnected detaches the outbox and starts the grace timer. The
// timer re-checks the connection when it fires.
func (l *Lobby) markDisconnected(m *member) {
	if m.outbox != nil {
		close(m.outbox)
		m.outbox = nil
	}
	m.connected = false
	l.setGameConnected(m.id, false)

	l.cancelGrace(m)
	id := m.id
	m.grace = l.timers.Schedule(l.cfg.DisconnectGrace, func() { l.graceExpired(id) })
	m.graceArmed = true
	l.logger.Info("member disconnected", zap.String("player_id", id), zap.Duration("grace", l.cfg.DisconnectGrace))
}

func (l *Lobby) graceExpired(id string) {
	m, ok := l.members[id]
	if !ok {
		return
	}
	m.graceArmed = false
	if m.connected {
		return
	}
	l.removeMember(id, "disconnect grace expired")
}

func (l *Lobby) cancelGrace(m *member) {
	if m.graceArmed {
		l.timers.Cancel(m.grace)
		m.graceArmed = false
	}
}

func (l *Lobby) removeMember(id, reason string) {
	m, ok := l.members[id]
	if !ok {
		return
	}
	l.cancelGrace(m)
	if m.outbox != nil {
		close(m.outbox)
		m.outbox = nil
	}
	delete(l.members, id)
	l.order = slices.DeleteFunc(l.order, func(o string) bool { return o == id })
	l.logger.Info("member removed", zap.String("player_id", id), zap.String("reason", reason))

	if l.running() {
		l.engine.ForfeitPlayer(id)
	}
	if l.leaderID == id {
		l.leaderID = ""
		if len(l.order) > 0 {
			l.leaderID = l.order[0]
		}
	}

	if len(l.members) == 0 {
		l.emptied = true
		l.cancel()
		return
	}
	l.syncRoster()
}

func (l *Lobby) setName(id, name string) error {
	m, ok := l.members[id]
	if !ok {
		return ErrUnknownPlayer
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return ErrInvalidName
	}
	m.name = name
	if l.game != nil {
		if p, ok := l.game.Player(id); ok {
			p.Name = name
		}
	}
	l.syncRoster()
	return nil
}

func (l *Lobby) setSeated(id string, seated bool) error {
	m, ok := l.members[id]
	if !ok {
		return ErrUnknownPlayer
	}
	if l.running() {
		return ErrGameInProgress
	}
	m.seated = seated
	l.syncRoster()
	return nil
}

func (l *Lobby) setGameConnected(id string, connected bool) {
	if l.game == nil {
		return
	}
	if p, ok := l.game.Player(id); ok {
		p.IsConnected = connected
	}
}

// syncRoster broadcasts whatever changed since the last broadcast roster.
func (l *Lobby) syncRoster() {
	d := l.roster.Compute(roster.Snapshot{Players: l.entries(), LeaderID: l.leaderID})
	if d == nil {
		return
	}
	_ = l.emitter.Broadcast(types.EvtPlayersDiff, d)
}

// syncRosterExcept is syncRoster for everyone but skip.
func (l *Lobby) syncRosterExcept(skip string) {
	d := l.roster.Compute(roster.Snapshot{Players: l.entries(), LeaderID: l.leaderID})
	if d == nil {
		return
	}
	for _, id := range slices.Clone(l.order) {
		if id == skip {
			continue
		}
		if m, ok := l.members[id]; ok && m.outbox != nil {
			_ = l.emitter.SendTo(id, types.EvtPlayersDiff, d)
		}
	}
}

func (l *Lobby) entries() []roster.Entry {
	out := make([]roster.Entry, 0, len(l.order))
	for _, id := range l.order {
		m := l.members[id]
		out = append(out, roster.Entry{ID: m.id, Name: m.name, IsSeated: m.seated, IsConnected: m.connected})
	}
	return out
}

func (l *Lobby) roomState(you string) types.RoomState {
	s := types.RoomState{Code: l.cfg.Code, You: you, LeaderID: l.leaderID, Game: l.gameState()}
	for _, e := range l.entries() {
		s.Members = append(s.Members, types.Member{ID: e.ID, Name: e.Name, IsSeated: e.IsSeated, IsConnected: e.IsConnected})
	}
	return s
}
