package types

// RoomState is the full view sent to a client when it joins or rejoins.
type RoomState struct {
	Code     string     `json:"code"`
	You      string     `json:"you"`
	LeaderID string     `json:"leader_id"`
	Members  []Member   `json:"members"`
	Game     *GameState `json:"game,omitempty"`
}

type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsSeated    bool   `json:"is_seated"`
	IsConnected bool   `json:"is_connected"`
}

type GameState struct {
	Running         bool          `json:"running"`
	Fragment        string        `json:"fragment"`
	CurrentPlayerID string        `json:"current_player_id,omitempty"`
	WordsUsed       int           `json:"words_used"`
	Players         []PlayerState `json:"players"`
}

type PlayerState struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Lives        int    `json:"lives"`
	IsEliminated bool   `json:"is_eliminated"`
	IsConnected  bool   `json:"is_connected"`
	BonusLetters int    `json:"bonus_letters"`
}
