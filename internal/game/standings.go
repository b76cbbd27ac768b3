package game

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Entry is one agent's derived standing, recomputed on every result.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Style     Style  `json:"style"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Knockouts int    `json:"knockouts"`
	WinRate   int    `json:"winRate"`
}

// HistoryEntry is one immutable record of a finished fight.
type HistoryEntry struct {
	GameID   string    `json:"id"`
	Winner   string    `json:"winner"`
	WinnerID string    `json:"winnerId"`
	Loser    string    `json:"loser"`
	LoserID  string    `json:"loserId"`
	Method   string    `json:"method"`
	Round    int       `json:"round"`
	Time     time.Time `json:"time"`
}

// Totals are the process-wide fight counters.
type Totals struct {
	TotalFights int `json:"totalFights"`
	TotalKOs    int `json:"totalKOs"`
}

// Orderings for Top.
const (
	OrderByWins  = "wins"
	OrderByScore = "score" // wins*3 + knockouts
)

// Standings aggregates completed-fight outcomes. Entries outlive the
// connection that produced them; disconnecting never erases a record.
type Standings struct {
	mu      sync.Mutex
	entries map[string]*Entry
	history []HistoryEntry
	totals  Totals
}

func NewStandings() *Standings {
	return &Standings{entries: make(map[string]*Entry)}
}

// RecordResult applies one finished fight: bumps the winner's wins (and
// knockouts on a KO), the loser's losses, recomputes both win rates, appends
// the history entry and updates global totals.
func (st *Standings) RecordResult(gameID string, winner, loser *Agent, method string, round int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	w := st.entryLocked(winner)
	l := st.entryLocked(loser)
	w.Wins++
	if method == MethodKO {
		w.Knockouts++
	}
	l.Losses++
	w.WinRate = winRate(w.Wins, w.Losses)
	l.WinRate = winRate(l.Wins, l.Losses)

	st.totals.TotalFights++
	if method == MethodKO {
		st.totals.TotalKOs++
	}

	st.history = append(st.history, HistoryEntry{
		GameID:   gameID,
		Winner:   winner.Name,
		WinnerID: winner.ID,
		Loser:    loser.Name,
		LoserID:  loser.ID,
		Method:   method,
		Round:    round,
		Time:     time.Now().UTC(),
	})
}

func (st *Standings) entryLocked(a *Agent) *Entry {
	e, ok := st.entries[a.ID]
	if !ok {
		e = &Entry{ID: a.ID, Name: a.Name, Style: a.Style}
		st.entries[a.ID] = e
	}
	return e
}

func winRate(wins, losses int) int {
	if wins+losses == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(wins+losses) * 100))
}

// Top returns up to n entries under the requested ordering. Unknown orderings
// fall back to raw win count.
func (st *Standings) Top(n int, orderBy string) []Entry {
	st.mu.Lock()
	out := make([]Entry, 0, len(st.entries))
	for _, e := range st.entries {
		out = append(out, *e)
	}
	st.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if orderBy == OrderByScore {
			si, sj := out[i].Wins*3+out[i].Knockouts, out[j].Wins*3+out[j].Knockouts
			if si != sj {
				return si > sj
			}
		} else if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// WinsOf reports the win count for an agent id, zero when unranked.
func (st *Standings) WinsOf(id string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.entries[id]; ok {
		return e.Wins
	}
	return 0
}

// Totals returns the global counters.
func (st *Standings) Totals() Totals {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.totals
}

// History returns a copy of the append-only match log, oldest first.
func (st *Standings) History() []HistoryEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]HistoryEntry, len(st.history))
	copy(out, st.history)
	return out
}
