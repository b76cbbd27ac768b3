package game

import "time"

// Rules are the server-controlled fight parameters. One Rules value is shared
// by every session the hub creates.
type Rules struct {
	Rounds           int
	RoundSeconds     int
	EntranceDelay    time.Duration
	BreakDelay       time.Duration
	Retention        time.Duration
	TickInterval     time.Duration
	StaminaRegen     int
	MinActionStamina int
}

// DefaultRules matches the canonical fight format: three five-minute rounds,
// five second walkout, three second break, finished fights linger ten seconds
// for final broadcasts.
func DefaultRules() Rules {
	return Rules{
		Rounds:           3,
		RoundSeconds:     300,
		EntranceDelay:    5 * time.Second,
		BreakDelay:       3 * time.Second,
		Retention:        10 * time.Second,
		TickInterval:     time.Second,
		StaminaRegen:     2,
		MinActionStamina: 10,
	}
}
