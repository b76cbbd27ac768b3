// Package config defines server configuration and its loading order.
package config

// Config contains process configuration. Fight parameters here feed the
// session rules; everything has a sane default for a zero-config start.
type Config struct {
	// Addr is the HTTP/websocket listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Rounds per fight; round three expiring without a KO goes to decision.
	Rounds int `koanf:"rounds"`

	// RoundSeconds is the countdown each round starts from.
	RoundSeconds int `koanf:"round_seconds"`

	// EntranceSeconds is the walkout delay before round one.
	EntranceSeconds int `koanf:"entrance_seconds"`

	// BreakSeconds is the pause between rounds.
	BreakSeconds int `koanf:"break_seconds"`

	// RetentionSeconds keeps finished fights queryable before removal.
	RetentionSeconds int `koanf:"retention_seconds"`

	// StaminaRegen is added to both fighters' stamina every tick.
	StaminaRegen int `koanf:"stamina_regen"`

	// MinActionStamina gates action submission entirely.
	MinActionStamina int `koanf:"min_action_stamina"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Addr:             ":3000",
		LogLevel:         "info",
		Rounds:           3,
		RoundSeconds:     300,
		EntranceSeconds:  5,
		BreakSeconds:     3,
		RetentionSeconds: 10,
		StaminaRegen:     2,
		MinActionStamina: 10,
	}
}
