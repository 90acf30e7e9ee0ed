package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/hub"
	"github.com/DoyleJ11/wordbomb-backend/internal/lobby"
	"github.com/DoyleJ11/wordbomb-backend/pkg/types"
)

const (
	writeTimeout = 3 * time.Second
	pingInterval = 20 * time.Second
	outboxSize   = 32
)

func Handler(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		lb := h.Get(code)
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			playerID = uuid.NewString()
		}
		log := logger.With(zap.String("room", code), zap.String("player_id", playerID))

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Warn("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan types.Envelope, outboxSize)
		reply := make(chan error, 1)
		if !lb.Send(lobby.Join{PlayerID: playerID, Name: r.URL.Query().Get("name"), Outbox: out, Reply: reply}) {
			conn.Close(websocket.StatusGoingAway, "room closed")
			return
		}
		select {
		case err := <-reply:
			if err != nil {
				conn.Close(websocket.StatusPolicyViolation, err.Error())
				return
			}
		case <-lb.Done():
			conn.Close(websocket.StatusGoingAway, "room closed")
			return
		}
		defer lb.Send(lobby.Disconnect{PlayerID: playerID, Outbox: out})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go writeLoop(ctx, cancel, conn, out, log)

		// Reader loop
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					if !errors.Is(err, context.Canceled) {
						log.Debug("read failed", zap.Error(err))
					}
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = wsjson.Write(ctx, conn, types.Envelope{Type: types.EvtError, Data: types.Error{Message: "bad json"}})
				continue
			}
			if !lb.Send(lobby.FromClient{PlayerID: playerID, Msg: cm}) {
				return
			}
			if cm.Type == types.MsgLeave {
				return
			}
		}
	}
}

// writeLoop drains the outbox until the lobby closes it.
func writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan types.Envelope, log *zap.Logger) {
	defer cancel()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case env, ok := <-out:
			if !ok {
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, env)
			wcancel()
			if err != nil {
				log.Debug("write failed", zap.String("event", env.Type), zap.Error(err))
				return
			}

		case <-ping.C:
			pctx, pcancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pctx)
			pcancel()
			if err != nil {
				log.Debug("ping failed", zap.Error(err))
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
