package lobby

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/engine"
	"github.com/DoyleJ11/wordbomb-backend/internal/game"
	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

func (l *Lobby) fromClient(msg FromClient) error {
	if _, ok := l.members[msg.PlayerID]; !ok {
		return ErrUnknownPlayer
	}
	switch msg.Msg.Type {
	case types.MsgSetName:
		return l.setName(msg.PlayerID, msg.Msg.Name)
	case types.MsgSeat:
		return l.setSeated(msg.PlayerID, true)
	case types.MsgUnseat:
		return l.setSeated(msg.PlayerID, false)
	case types.MsgStartGame:
		return l.startGame(msg.PlayerID)
	case types.MsgSubmitWord:
		l.submitWord(msg.PlayerID, msg.Msg.Word)
		return nil
	case types.MsgLeave:
		l.removeMember(msg.PlayerID, "left")
		return nil
	default:
		return ErrUnknownMessage
	}
}

func (l *Lobby) startGame(by string) error {
	if by != l.leaderID {
		return ErrNotLeader
	}
	if l.running() {
		return ErrGameInProgress
	}
	var players []*game.Player
	for _, id := range l.order {
		m := l.members[id]
		if !m.seated {
			continue
		}
		p := game.NewPlayer(m.id, m.name)
		p.IsConnected = m.connected
		players = append(players, p)
	}
	if len(players) < 2 {
		return ErrNotEnoughPlayers
	}

	rules := l.cfg.Rules
	fragment, err := l.cfg.Dictionary.RandomFragment(rules.MinWordsPerPrompt)
	if err != nil {
		l.logger.Error("cannot start game: no usable fragment",
			zap.Int("min_words", rules.MinWordsPerPrompt),
			zap.Error(err),
		)
		return fmt.Errorf("start game: %w", err)
	}

	g := game.New(l.cfg.Code, rules, l.cfg.Dictionary, players)
	g.SetFragment(fragment)
	bus := engine.NewBus(
		engine.PortSubscriber(port{l}),
		engine.LegacySubscriber(l.emitLegacy),
	)
	l.game = g
	l.engine = engine.New(g, l.timers, l.cfg.Dictionary, bus, engine.Options{
		Logger:    l.logger,
		OnTimeout: l.onTimeout,
	})
	l.logger.Info("game started", zap.Int("players", len(players)), zap.String("fragment", fragment))
	l.engine.BeginGame()
	return nil
}

func (l *Lobby) submitWord(playerID, word string) {
	if l.engine == nil {
		_ = l.emitter.SendTo(playerID, types.EvtWordRejected, types.WordRejected{Word: word, Error: game.ErrNotInProgress.Error()})
		return
	}
	res := l.engine.SubmitWord(playerID, word)
	if !res.Success {
		_ = l.emitter.SendTo(playerID, types.EvtWordRejected, types.WordRejected{Word: word, Error: res.Error})
	}
}

func (l *Lobby) onTimeout(p *game.Player) {
	l.logger.Info("turn timed out", zap.String("player_id", p.ID), zap.Int("lives", p.Lives))
}

func (l *Lobby) emitLegacy(event string, payload map[string]any) {
	_ = l.emitter.Broadcast(types.LegacyPrefix+event, payload)
}

func (l *Lobby) gameState() *types.GameState {
	if l.game == nil {
		return nil
	}
	s := &types.GameState{Running: l.running(), Fragment: l.game.Fragment(), WordsUsed: l.game.UsedWords()}
	if cur, ok := l.game.CurrentPlayer(); ok && s.Running {
		s.CurrentPlayerID = cur.ID
	}
	for _, p := range l.game.Players() {
		s.Players = append(s.Players, types.PlayerState{
			ID:           p.ID,
			Name:         p.Name,
			Lives:        p.Lives,
			IsEliminated: p.IsEliminated,
			IsConnected:  p.IsConnected,
			BonusLetters: p.BonusLetters(),
		})
	}
	return s
}

// port is the structured engine.Events implementation for a room.
type port struct{ l *Lobby }

func (p port) TurnStarted(t engine.TurnStarted) {
	msg := types.TurnStarted{PlayerID: t.PlayerID, Fragment: t.Fragment, DurationMs: t.DurationMs}
	for _, v := range t.Players {
		ps := types.PlayerState{ID: v.ID, Name: v.Name, Lives: v.Lives, IsEliminated: v.IsEliminated, IsConnected: v.IsConnected}
		if gp, ok := p.l.game.Player(v.ID); ok {
			ps.BonusLetters = gp.BonusLetters()
		}
		msg.Players = append(msg.Players, ps)
	}
	_ = p.l.emitter.Broadcast(types.EvtTurnStarted, msg)
}

func (p port) PlayerUpdated(playerID string, lives int) {
	_ = p.l.emitter.Broadcast(types.EvtPlayerUpdated, types.PlayerUpdated{PlayerID: playerID, Lives: lives})
}

func (p port) WordAccepted(playerID, word string) {
	_ = p.l.emitter.Broadcast(types.EvtWordAccepted, types.WordAccepted{PlayerID: playerID, Word: word})
}

func (p port) GameEnded(winnerID string) {
	p.l.logger.Info("game ended", zap.String("winner_id", winnerID))
	_ = p.l.emitter.Broadcast(types.EvtGameEnded, types.GameEnded{WinnerID: winnerID})
}
