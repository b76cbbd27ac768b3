package game

import "sync"

// Queue holds agents waiting for an opponent, strictly first come first
// served. It carries its own lock; callers never need to hold anything else.
type Queue struct {
	mu      sync.Mutex
	waiting []*Agent
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an agent. Pushing an agent that is already queued is a no-op
// so redundant re-queues (e.g. a repeated register_bot) cannot double-book.
func (q *Queue) Push(a *Agent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, w := range q.waiting {
		if w.ID == a.ID {
			return
		}
	}
	q.waiting = append(q.waiting, a)
}

// Remove drops the agent with the given id if it is still waiting.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, w := range q.waiting {
		if w.ID == id {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}

// PopPair removes and returns the two longest-waiting agents, earliest first.
// Safe to call redundantly: with fewer than two waiting it reports false and
// changes nothing.
func (q *Queue) PopPair() (first, second *Agent, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.waiting) < 2 {
		return nil, nil, false
	}
	first, second = q.waiting[0], q.waiting[1]
	q.waiting = q.waiting[2:]
	return first, second, true
}

// Len reports how many agents are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// Snapshot returns the waiting agents in queue order.
func (q *Queue) Snapshot() []*Agent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Agent, len(q.waiting))
	copy(out, q.waiting)
	return out
}
