package game

// ActionSpec is one entry of the fixed action catalogue: the stamina it burns
// and the damage it deals before the power modifier.
type ActionSpec struct {
	Stamina int
	Damage  int
}

// actionCatalogue mirrors the canonical move list. Block costs stamina but
// deals nothing.
var actionCatalogue = map[string]ActionSpec{
	"jab":      {Stamina: 5, Damage: 4},
	"cross":    {Stamina: 8, Damage: 8},
	"hook":     {Stamina: 10, Damage: 12},
	"uppercut": {Stamina: 12, Damage: 15},
	"kick":     {Stamina: 15, Damage: 14},
	"takedown": {Stamina: 20, Damage: 8},
	"block":    {Stamina: 3, Damage: 0},
}

// LookupAction resolves an action name to its spec. Unknown names resolve to
// jab's values on purpose: agents are free to send creative move names and the
// server treats them all as the cheapest strike rather than rejecting them.
// The submitted name is still echoed verbatim in broadcasts.
func LookupAction(name string) ActionSpec {
	if spec, ok := actionCatalogue[name]; ok {
		return spec
	}
	return actionCatalogue["jab"]
}
