package engine

type EventType string

const (
	EvtTurnStarted   EventType = "turnStarted"
	EvtPlayerUpdated EventType = "playerUpdated"
	EvtWordAccepted  EventType = "wordAccepted"
	EvtGameEnded     EventType = "gameEnded"
)

type PlayerView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Lives        int    `json:"lives"`
	IsEliminated bool   `json:"is_eliminated"`
	IsConnected  bool   `json:"is_connected"`
}

type TurnStarted struct {
	PlayerID   string       `json:"player_id"`
	Fragment   string       `json:"fragment"`
	DurationMs int64        `json:"duration_ms"`
	Players    []PlayerView `json:"players"`
}

// Event is one engine notification. Only the fields relevant to Type are set.
type Event struct {
	Type     EventType
	Turn     TurnStarted
	PlayerID string
	Lives    int
	Word     string
	WinnerID string
}

// Events is the structured notification port implemented by transports.
type Events interface {
	TurnStarted(t TurnStarted)
	PlayerUpdated(playerID string, lives int)
	WordAccepted(playerID, word string)
	GameEnded(winnerID string)
}

// LegacyEmitter sends a raw named event straight to clients.
type LegacyEmitter func(event string, payload map[string]any)

type Subscriber interface {
	Handle(e Event)
}

type SubscriberFunc func(e Event)

func (f SubscriberFunc) Handle(e Event) { f(e) }

// Bus fans every engine event out to its subscribers in registration order,
// so the structured port and the legacy emitter always see the same stream.
type Bus struct {
	subs []Subscriber
}

func NewBus(subs ...Subscriber) *Bus {
	return &Bus{subs: subs}
}

func (b *Bus) Publish(e Event) {
	for _, s := range b.subs {
		s.Handle(e)
	}
}

// PortSubscriber delivers bus events to a structured Events port.
func PortSubscriber(port Events) Subscriber {
	return SubscriberFunc(func(e Event) {
		switch e.Type {
		case EvtTurnStarted:
			port.TurnStarted(e.Turn)
		case EvtPlayerUpdated:
			port.PlayerUpdated(e.PlayerID, e.Lives)
		case EvtWordAccepted:
			port.WordAccepted(e.PlayerID, e.Word)
		case EvtGameEnded:
			port.GameEnded(e.WinnerID)
		}
	})
}

// LegacySubscriber delivers bus events to the raw emitter.
func LegacySubscriber(emit LegacyEmitter) Subscriber {
	return SubscriberFunc(func(e Event) {
		switch e.Type {
		case EvtTurnStarted:
			emit(string(e.Type), map[string]any{
				"playerId": e.Turn.PlayerID,
				"fragment": e.Turn.Fragment,
				"duration": e.Turn.DurationMs,
				"players":  e.Turn.Players,
			})
		case EvtPlayerUpdated:
			emit(string(e.Type), map[string]any{"playerId": e.PlayerID, "lives": e.Lives})
		case EvtWordAccepted:
			emit(string(e.Type), map[string]any{"playerId": e.PlayerID, "word": e.Word})
		case EvtGameEnded:
			emit(string(e.Type), map[string]any{"winnerId": e.WinnerID})
		}
	})
}
