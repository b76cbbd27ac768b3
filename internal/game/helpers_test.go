package game

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// recorder captures everything sent to one agent.
type recorder struct {
	mu   sync.Mutex
	msgs []any
}

func (r *recorder) Send(v any) {
	r.mu.Lock()
	r.msgs = append(r.msgs, v)
	r.mu.Unlock()
}

func (r *recorder) all() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recorder) actionResults() []ActionResultMsg {
	var out []ActionResultMsg
	for _, m := range r.all() {
		if ar, ok := m.(ActionResultMsg); ok {
			out = append(out, ar)
		}
	}
	return out
}

func (r *recorder) errors() []ErrorMsg {
	var out []ErrorMsg
	for _, m := range r.all() {
		if e, ok := m.(ErrorMsg); ok {
			out = append(out, e)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedSource makes the resolver deterministic: 0 always hits, and
// 1<<63 - 1024 always misses (it maps to a float just under 1.0; larger
// values round to exactly 1.0, which rand.Float64 rejects and retries
// forever against a constant source).
type fixedSource struct{ v int64 }

func (f fixedSource) Int63() int64 { return f.v }
func (f fixedSource) Seed(int64)   {}

func alwaysHit() *Resolver  { return NewResolverWithSource(fixedSource{0}) }
func alwaysMiss() *Resolver { return NewResolverWithSource(fixedSource{1<<63 - 1024}) }

// testRules keeps every wall-clock delay far away so tests drive all
// transitions themselves.
func testRules() Rules {
	r := DefaultRules()
	r.RoundSeconds = 5
	r.EntranceDelay = time.Hour
	r.BreakDelay = time.Hour
	r.Retention = time.Hour
	r.TickInterval = time.Hour
	return r
}

func testAgent(id, name string, rec *recorder) *Agent {
	return &Agent{
		ID:     id,
		Name:   name,
		Style:  StyleBalanced,
		Stats:  Stats{Power: 100, Speed: 100, Defense: 80, Cardio: 80},
		sender: rec,
	}
}

// fightingSession builds a session already in the fighting state, with no
// live timers.
func fightingSession(rules Rules, resolver *Resolver, f1, f2 *Agent) *Session {
	s := newSession("game-1", f1, f2, rules, resolver, testLogger(), nil, nil)
	s.state = StateFighting
	return s
}
