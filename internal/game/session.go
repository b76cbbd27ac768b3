package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/openclaw/ufc-arena/internal/metrics"
)

// Session states.
const (
	StateEntrance   = "entrance"
	StateFighting   = "fighting"
	StateRoundBreak = "round_break"
	StateFinished   = "finished"
)

// Fight-ending methods.
const (
	MethodKO       = "KO"
	MethodDecision = "DECISION"
	MethodForfeit  = "FORFEIT"
)

// Session owns one match between exactly two agents. All fight state is
// guarded by mu; the round timer's tick and action submissions serialize on
// it, so two effects never interleave on the same session.
type Session struct {
	ID       string
	fighter1 *Agent
	fighter2 *Agent

	rules    Rules
	resolver *Resolver
	log      *slog.Logger

	// onFinished fires exactly once, on entry to the finished state, before
	// the fight_end broadcast. onRetire fires after the retention delay.
	onFinished func(s *Session, winner, loser *Agent, method string, round int)
	onRetire   func(s *Session)

	mu       sync.Mutex
	state    string
	round    int
	clock    int
	health1  int
	health2  int
	stamina1 int
	stamina2 int
	winner   *Agent
	method   string
	timer    *roundTimer
	delay    *time.Timer
}

func newSession(id string, f1, f2 *Agent, rules Rules, resolver *Resolver, log *slog.Logger,
	onFinished func(*Session, *Agent, *Agent, string, int), onRetire func(*Session)) *Session {
	return &Session{
		ID:         id,
		fighter1:   f1,
		fighter2:   f2,
		rules:      rules,
		resolver:   resolver,
		log:        log,
		onFinished: onFinished,
		onRetire:   onRetire,
		state:      StateEntrance,
		round:      1,
		clock:      rules.RoundSeconds,
		health1:    100,
		health2:    100,
		stamina1:   100,
		stamina2:   100,
	}
}

// Start kicks off the entrance sequence and schedules the first round.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEntrance {
		return
	}
	s.broadcast(EntranceStartMsg{Type: "entrance_start", Duration: int(s.rules.EntranceDelay / time.Millisecond)})
	s.delay = time.AfterFunc(s.rules.EntranceDelay, s.beginRound)
}

// beginRound moves entrance or round_break into fighting and starts the
// round timer.
func (s *Session) beginRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEntrance && s.state != StateRoundBreak {
		return
	}
	s.state = StateFighting
	s.broadcast(FightStartMsg{Type: "fight_start", Round: s.round, Time: s.clock})
	s.timer = startRoundTimer(s.rules.TickInterval, s.Tick)
}

// Tick advances the round clock by one second and regenerates stamina. Ticks
// outside the fighting state are dropped; the timer may race its own halt.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFighting {
		return
	}
	s.clock--
	s.stamina1 = clamp(s.stamina1+s.rules.StaminaRegen, 0, 100)
	s.stamina2 = clamp(s.stamina2+s.rules.StaminaRegen, 0, 100)
	s.broadcast(TimerTickMsg{Type: "timer_tick", Time: s.clock})
	if s.clock <= 0 {
		s.endRoundLocked()
	}
}

func (s *Session) endRoundLocked() {
	if s.round >= s.rules.Rounds {
		s.finishLocked(s.decisionWinnerLocked(), MethodDecision)
		return
	}
	s.state = StateRoundBreak
	if s.timer != nil {
		s.timer.halt()
		s.timer = nil
	}
	s.round++
	s.clock = s.rules.RoundSeconds
	s.broadcast(RoundEndMsg{Type: "round_end", Round: s.round})
	s.delay = time.AfterFunc(s.rules.BreakDelay, s.beginRound)
}

// decisionWinnerLocked picks the fighter with strictly higher health; exact
// ties go to fighter1.
func (s *Session) decisionWinnerLocked() *Agent {
	if s.health2 > s.health1 {
		return s.fighter2
	}
	return s.fighter1
}

// SubmitAction resolves one action from the given agent. Submissions for a
// session the sender is not part of, or outside the fighting state, are
// silently ignored. A fighter too gassed to act gets an error message and no
// state changes.
func (s *Session) SubmitAction(agentID, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFighting {
		return
	}
	var actor *Agent
	switch agentID {
	case s.fighter1.ID:
		actor = s.fighter1
	case s.fighter2.ID:
		actor = s.fighter2
	default:
		return
	}

	stamina := s.stamina1
	if actor == s.fighter2 {
		stamina = s.stamina2
	}
	if stamina < s.rules.MinActionStamina {
		actor.send(errorMsg("Not enough stamina!"))
		return
	}

	out := s.resolver.Resolve(action, actor.Stats)
	metrics.RecordAction(out.Action, out.Hit)
	if actor == s.fighter1 {
		s.stamina1 = clamp(s.stamina1-out.StaminaCost, 0, 100)
		if out.Hit {
			s.health2 = clamp(s.health2-out.Damage, 0, 100)
		}
	} else {
		s.stamina2 = clamp(s.stamina2-out.StaminaCost, 0, 100)
		if out.Hit {
			s.health1 = clamp(s.health1-out.Damage, 0, 100)
		}
	}

	s.broadcast(ActionResultMsg{
		Type:     "action_result",
		Actor:    actor.Name,
		Action:   out.Action,
		Hit:      out.Hit,
		Damage:   out.Damage,
		Health1:  s.health1,
		Health2:  s.health2,
		Stamina1: s.stamina1,
		Stamina2: s.stamina2,
	})

	// KO beats the clock: a fighter dropping to zero ends the fight on the
	// spot, whatever the timer says.
	if s.health1 <= 0 || s.health2 <= 0 {
		s.finishLocked(actor, MethodKO)
	}
}

// Forfeit ends the fight because the given participant's connection dropped.
// The survivor wins. No-op once finished or if the id is not a participant.
func (s *Session) Forfeit(leaverID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished {
		return
	}
	var survivor *Agent
	switch leaverID {
	case s.fighter1.ID:
		survivor = s.fighter2
	case s.fighter2.ID:
		survivor = s.fighter1
	default:
		return
	}
	survivor.send(OpponentDisconnectedMsg{
		Type:    "opponent_disconnected",
		Message: "Opponent disconnected. You win by forfeit!",
	})
	s.finishLocked(survivor, MethodForfeit)
}

// finishLocked transitions to finished exactly once: tears down timers,
// records the result, broadcasts fight_end and schedules retirement.
func (s *Session) finishLocked(winner *Agent, method string) {
	if s.state == StateFinished {
		return
	}
	s.state = StateFinished
	s.winner = winner
	s.method = method
	if s.timer != nil {
		s.timer.halt()
		s.timer = nil
	}
	if s.delay != nil {
		s.delay.Stop()
	}

	loser := s.fighter1
	if winner == s.fighter1 {
		loser = s.fighter2
	}
	if s.onFinished != nil {
		s.onFinished(s, winner, loser, method, s.round)
	}

	s.log.Info("fight finished",
		slog.String("game", s.ID),
		slog.String("winner", winner.Name),
		slog.String("method", method),
		slog.Int("round", s.round))

	s.broadcast(FightEndMsg{
		Type:     "fight_end",
		Winner:   winner.Name,
		WinnerID: winner.ID,
		Method:   method,
		Health1:  s.health1,
		Health2:  s.health2,
	})

	if s.onRetire != nil {
		s.delay = time.AfterFunc(s.rules.Retention, func() { s.onRetire(s) })
	}
}

func (s *Session) broadcast(v any) {
	s.fighter1.send(v)
	s.fighter2.send(v)
}

// Snapshot is a point-in-time view of a session for live reporting.
type Snapshot struct {
	ID       string `json:"id"`
	Fighter1 string `json:"fighter1"`
	Fighter2 string `json:"fighter2"`
	State    string `json:"state"`
	Round    int    `json:"round"`
	Time     int    `json:"time"`
	Health1  int    `json:"health1"`
	Health2  int    `json:"health2"`
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.ID,
		Fighter1: s.fighter1.Name,
		Fighter2: s.fighter2.Name,
		State:    s.state,
		Round:    s.round,
		Time:     s.clock,
		Health1:  s.health1,
		Health2:  s.health2,
	}
}

// State returns the current FSM state.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Winner returns the recorded winner and method, nil until finished.
func (s *Session) Winner() (*Agent, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner, s.method
}

// Vitals returns both fighters' health and stamina.
func (s *Session) Vitals() (health1, health2, stamina1, stamina2 int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health1, s.health2, s.stamina1, s.stamina2
}

// Participants returns both agents in role order.
func (s *Session) Participants() (*Agent, *Agent) {
	return s.fighter1, s.fighter2
}
