package game

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/openclaw/ufc-arena/internal/metrics"
)

// Hub is the connection registry. It binds wire connections to agents, feeds
// the match queue, routes actions to sessions and turns disconnects into
// forfeits.
//
// Lock domains are deliberately separate: mu guards which agents exist,
// sessionsMu guards which sessions exist, and each session guards its own
// fight state. The hub never takes a session's lock while holding mu.
type Hub struct {
	rules     Rules
	resolver  *Resolver
	standings *Standings
	queue     *Queue
	log       *slog.Logger

	mu       sync.Mutex
	bySender map[Sender]*Agent
	byID     map[string]*Agent

	sessionsMu sync.Mutex
	sessions   map[string]*Session
}

func NewHub(rules Rules, resolver *Resolver, standings *Standings, log *slog.Logger) *Hub {
	return &Hub{
		rules:     rules,
		resolver:  resolver,
		standings: standings,
		queue:     NewQueue(),
		log:       log,
		bySender:  make(map[Sender]*Agent),
		byID:      make(map[string]*Agent),
		sessions:  make(map[string]*Session),
	}
}

// Connect greets a raw connection before any registration.
func (h *Hub) Connect(sender Sender) {
	metrics.ConnectionOpened()
	sender.Send(ConnectedMsg{
		Type:    "connected",
		Message: "Connected to UFC Arena Server",
		Lobby:   fmt.Sprintf("%d bots waiting", h.queue.Len()),
	})
}

// Register creates (or re-queues) the agent bound to this connection and
// attempts a pairing. A repeated register_bot on the same connection keeps
// the existing identity and record.
func (h *Hub) Register(sender Sender, name, style string, stats *Stats) *Agent {
	if name == "" {
		name = "Anonymous Bot"
	}

	h.mu.Lock()
	agent, ok := h.bySender[sender]
	if !ok {
		agent = &Agent{
			ID:     uuid.NewString(),
			Name:   name,
			Style:  NormalizeStyle(style),
			Stats:  NormalizeStats(stats),
			sender: sender,
		}
		h.bySender[sender] = agent
		h.byID[agent.ID] = agent
	} else if agent.gameID == "" {
		// A repeat register_bot refreshes the profile but keeps the id and
		// record. Mid-fight the profile is frozen until retirement.
		agent.Name = name
		agent.Style = NormalizeStyle(style)
		agent.Stats = NormalizeStats(stats)
	}
	inFight := agent.gameID != ""
	// Queue under the registry lock so a concurrent Disconnect either sees
	// the agent and removes it, or runs first and we never queue a ghost.
	if !inFight {
		h.queue.Push(agent)
	}
	h.mu.Unlock()

	if !inFight {
		metrics.SetWaiting(h.queue.Len())
	}

	agent.send(RegisteredMsg{
		Type:    "registered",
		BotID:   agent.ID,
		Message: fmt.Sprintf("Welcome %s! Looking for opponent...", agent.Name),
	})
	h.log.Info("agent registered",
		slog.String("id", agent.ID),
		slog.String("name", agent.Name),
		slog.String("style", string(agent.Style)))

	h.tryPair()
	return agent
}

// tryPair drains the queue two agents at a time, earliest arrival becoming
// fighter1. Redundant calls with fewer than two waiting are no-ops.
func (h *Hub) tryPair() {
	for {
		f1, f2, ok := h.queue.PopPair()
		if !ok {
			return
		}
		metrics.SetWaiting(h.queue.Len())

		sess := newSession(uuid.NewString(), f1, f2, h.rules, h.resolver, h.log, h.finished, h.retire)

		h.sessionsMu.Lock()
		h.sessions[sess.ID] = sess
		active := len(h.sessions)
		h.sessionsMu.Unlock()
		metrics.SetActive(active)

		h.mu.Lock()
		f1.gameID = sess.ID
		f2.gameID = sess.ID
		_, alive1 := h.byID[f1.ID]
		_, alive2 := h.byID[f2.ID]
		h.mu.Unlock()

		f1.send(MatchFoundMsg{Type: "match_found", GameID: sess.ID, Opponent: f2.Name, Role: "fighter1", Position: Position{X: -5, Z: 20}})
		f2.send(MatchFoundMsg{Type: "match_found", GameID: sess.ID, Opponent: f1.Name, Role: "fighter2", Position: Position{X: 5, Z: 20}})

		h.log.Info("match started",
			slog.String("game", sess.ID),
			slog.String("fighter1", f1.Name),
			slog.String("fighter2", f2.Name))

		sess.Start()

		// A disconnect landing between the queue pop and the gameID binding
		// sees neither a queued agent nor a bound session, so nothing
		// forfeits on its behalf. Settle any fighter that vanished in that
		// window here.
		if !alive1 {
			sess.Forfeit(f1.ID)
		}
		if !alive2 {
			sess.Forfeit(f2.ID)
		}
	}
}

// SubmitAction routes a fighter_action to its session. Unknown senders,
// unknown sessions and sessions the sender is not part of are ignored.
func (h *Hub) SubmitAction(sender Sender, gameID, action string) {
	h.mu.Lock()
	agent := h.bySender[sender]
	h.mu.Unlock()
	if agent == nil {
		return
	}
	sess := h.session(gameID)
	if sess == nil {
		return
	}
	sess.SubmitAction(agent.ID, action)
}

// Disconnect tears down the agent bound to a closed connection: out of the
// queue if waiting, forfeit if fighting. Standings entries stay.
func (h *Hub) Disconnect(sender Sender) {
	metrics.ConnectionClosed()

	h.mu.Lock()
	agent := h.bySender[sender]
	if agent != nil {
		delete(h.bySender, sender)
		delete(h.byID, agent.ID)
	}
	var gameID string
	if agent != nil {
		gameID = agent.gameID
	}
	h.mu.Unlock()
	if agent == nil {
		return
	}

	h.queue.Remove(agent.ID)
	metrics.SetWaiting(h.queue.Len())

	if gameID != "" {
		if sess := h.session(gameID); sess != nil {
			sess.Forfeit(agent.ID)
		}
	}
	h.log.Info("agent disconnected", slog.String("id", agent.ID), slog.String("name", agent.Name))
}

// Status answers a get_status request with queue and session counts plus the
// waiting agents and their win counts.
func (h *Hub) Status(sender Sender) {
	waiting := h.queue.Snapshot()
	bots := make([]WaitingBot, 0, len(waiting))
	for _, a := range waiting {
		bots = append(bots, WaitingBot{ID: a.ID, Name: a.Name, Wins: h.standings.WinsOf(a.ID)})
	}
	sender.Send(StatusMsg{
		Type:    "status",
		Waiting: len(waiting),
		Active:  h.activeCount(),
		Bots:    bots,
	})
}

// Counts reports (waiting, active) for the HTTP surface.
func (h *Hub) Counts() (waiting, active int) {
	return h.queue.Len(), h.activeCount()
}

// Live returns snapshots of every live session.
func (h *Hub) Live() []Snapshot {
	h.sessionsMu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessionsMu.Unlock()

	out := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}

func (h *Hub) activeCount() int {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()
	return len(h.sessions)
}

func (h *Hub) session(id string) *Session {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()
	return h.sessions[id]
}

// finished records a session result into standings and metrics. Runs on
// entry to the finished state, before the fight_end broadcast.
func (h *Hub) finished(s *Session, winner, loser *Agent, method string, round int) {
	h.standings.RecordResult(s.ID, winner, loser, method, round)
	metrics.RecordFight(method == MethodKO)
}

// retire drops a finished session after its retention delay and re-queues
// both participants that are still connected.
func (h *Hub) retire(s *Session) {
	h.sessionsMu.Lock()
	delete(h.sessions, s.ID)
	active := len(h.sessions)
	h.sessionsMu.Unlock()
	metrics.SetActive(active)

	f1, f2 := s.Participants()
	for _, a := range []*Agent{f1, f2} {
		// Check and push under the registry lock, else a disconnect between
		// the two would re-queue a dead agent.
		h.mu.Lock()
		if _, connected := h.byID[a.ID]; connected {
			a.gameID = ""
			h.queue.Push(a)
		}
		h.mu.Unlock()
	}
	metrics.SetWaiting(h.queue.Len())
	h.tryPair()
}
