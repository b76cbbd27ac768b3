package game

// Sender is one agent's outbound half of the wire connection. Implementations
// must be safe for concurrent use; the hub, sessions and the round timer all
// send from their own goroutines.
type Sender interface {
	Send(v any)
}

// Style is a declared fighting style. The server does not use it for
// matchmaking or resolution; it is carried through to standings so external
// reporting can show it.
type Style string

const (
	StyleStriker    Style = "striker"
	StyleGrappler   Style = "grappler"
	StyleBrawler    Style = "brawler"
	StyleBalanced   Style = "balanced"
	StyleTechnician Style = "technician"
)

// NormalizeStyle maps unknown style names to balanced.
func NormalizeStyle(s string) Style {
	switch Style(s) {
	case StyleStriker, StyleGrappler, StyleBrawler, StyleBalanced, StyleTechnician:
		return Style(s)
	default:
		return StyleBalanced
	}
}

// Stats is a fighter's fixed stat tuple. All values live in [0,100].
type Stats struct {
	Power   int `json:"power"`
	Speed   int `json:"speed"`
	Defense int `json:"defense"`
	Cardio  int `json:"cardio"`
}

const defaultStat = 80

// NormalizeStats fills missing stats with the default and clamps everything
// to [0,100]. A nil input yields the all-default tuple.
func NormalizeStats(s *Stats) Stats {
	if s == nil {
		return Stats{Power: defaultStat, Speed: defaultStat, Defense: defaultStat, Cardio: defaultStat}
	}
	out := *s
	for _, f := range []*int{&out.Power, &out.Speed, &out.Defense, &out.Cardio} {
		if *f == 0 {
			*f = defaultStat
		}
		*f = clamp(*f, 0, 100)
	}
	return out
}

// Agent is one connected combat participant. Identity and stats are fixed at
// registration; the win/loss record lives in the standings store, not here.
type Agent struct {
	ID    string
	Name  string
	Style Style
	Stats Stats

	sender Sender

	// gameID is the session the agent is currently fighting in, empty while
	// waiting. Guarded by the hub's mutex.
	gameID string
}

func (a *Agent) send(v any) {
	if a != nil && a.sender != nil {
		a.sender.Send(v)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
