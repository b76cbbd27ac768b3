package game

// Outbound wire messages. Every message is a flat JSON object carrying a
// "type" discriminator, matching what fight clients already parse.

type ConnectedMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Lobby   string `json:"lobby"`
}

type RegisteredMsg struct {
	Type    string `json:"type"`
	BotID   string `json:"botId"`
	Message string `json:"message"`
}

// Position is the corner a fighter starts from. Purely cosmetic for clients
// that render the arena.
type Position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type MatchFoundMsg struct {
	Type     string   `json:"type"`
	GameID   string   `json:"gameId"`
	Opponent string   `json:"opponent"`
	Role     string   `json:"role"`
	Position Position `json:"position"`
}

type EntranceStartMsg struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"` // milliseconds
}

type FightStartMsg struct {
	Type  string `json:"type"`
	Round int    `json:"round"`
	Time  int    `json:"time"`
}

type TimerTickMsg struct {
	Type string `json:"type"`
	Time int    `json:"time"`
}

type ActionResultMsg struct {
	Type     string `json:"type"`
	Actor    string `json:"actor"`
	Action   string `json:"action"`
	Hit      bool   `json:"hit"`
	Damage   int    `json:"damage"`
	Health1  int    `json:"health1"`
	Health2  int    `json:"health2"`
	Stamina1 int    `json:"stamina1"`
	Stamina2 int    `json:"stamina2"`
}

type RoundEndMsg struct {
	Type  string `json:"type"`
	Round int    `json:"round"`
}

type FightEndMsg struct {
	Type     string `json:"type"`
	Winner   string `json:"winner"`
	WinnerID string `json:"winnerId"`
	Method   string `json:"method"`
	Health1  int    `json:"health1"`
	Health2  int    `json:"health2"`
}

type OpponentDisconnectedMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type WaitingBot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

type StatusMsg struct {
	Type    string       `json:"type"`
	Waiting int          `json:"waiting"`
	Active  int          `json:"active"`
	Bots    []WaitingBot `json:"bots"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func errorMsg(text string) ErrorMsg {
	return ErrorMsg{Type: "error", Message: text}
}
