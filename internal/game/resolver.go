package game

import (
	"math/rand"
	"sync"
	"time"
)

// Outcome is the result of scoring one action. The resolver never touches
// session state; the caller applies the stamina and health deltas.
type Outcome struct {
	Action      string
	Hit         bool
	StaminaCost int
	Damage      int
}

// Resolver scores actions against fighter stats. Randomness comes from the
// injected source so a fixed seed yields a fixed outcome sequence.
type Resolver struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver builds a resolver seeded from the wall clock.
func NewResolver() *Resolver {
	return NewResolverWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewResolverWithSource builds a resolver over a caller-supplied source.
func NewResolverWithSource(src rand.Source) *Resolver {
	return &Resolver{rng: rand.New(src)}
}

const (
	baseHitChance = 0.5
	hitStatBonus  = 0.3
	maxHitChance  = 0.95
)

// Resolve scores one action by the acting fighter. Hit chance is 50% plus up
// to 30% from the power+speed average, capped at 95% so nothing is a
// guaranteed hit. Landed damage scales with power: floor(base * power/100).
func (r *Resolver) Resolve(action string, actor Stats) Outcome {
	spec := LookupAction(action)

	chance := baseHitChance + hitStatBonus*float64(actor.Power+actor.Speed)/200
	if chance > maxHitChance {
		chance = maxHitChance
	}

	r.mu.Lock()
	roll := r.rng.Float64()
	r.mu.Unlock()

	out := Outcome{Action: action, StaminaCost: spec.Stamina}
	if roll < chance {
		out.Hit = true
		out.Damage = spec.Damage * actor.Power / 100
	}
	return out
}
