package types

// Client -> Server message types.
const (
	MsgSetName    = "SetName"
	MsgSeat       = "Seat"
	MsgUnseat     = "Unseat"
	MsgStartGame  = "StartGame"
	MsgSubmitWord = "SubmitWord"
	MsgLeave      = "Leave"
)

type ClientMessage struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Word string `json:"word,omitempty"`
}

// Server -> Client event names.
const (
	EvtRoomState     = "RoomState"
	EvtPlayersDiff   = "PlayersDiff"
	EvtTurnStarted   = "TurnStarted"
	EvtPlayerUpdated = "PlayerUpdated"
	EvtWordAccepted  = "WordAccepted"
	EvtWordRejected  = "WordRejected"
	EvtGameEnded     = "GameEnded"
	EvtError         = "Error"

	// LegacyPrefix marks raw events kept for clients that predate the
	// typed messages above.
	LegacyPrefix = "legacy:"
)

// TurnStarted opens a turn. Clients count down from DurationMs; the server
// owns the timeout.
type TurnStarted struct {
	PlayerID   string        `json:"player_id"`
	Fragment   string        `json:"fragment"`
	DurationMs int64         `json:"duration_ms"`
	Players    []PlayerState `json:"players"`
}

// Envelope is the frame written to the socket for every server event.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Error struct {
	Message string `json:"message"`
}

type WordRejected struct {
	Word  string `json:"word"`
	Error string `json:"error"`
}

type PlayerUpdated struct {
	PlayerID string `json:"player_id"`
	Lives    int    `json:"lives"`
}

type WordAccepted struct {
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
}

type GameEnded struct {
	WinnerID string `json:"winner_id,omitempty"`
}
