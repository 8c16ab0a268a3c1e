package optparse

import "fmt"

// Action selects the mutation applied to the result when an option fires.
type Action int

const (
	ActionStore Action = iota
	ActionStoreConst
	ActionStoreTrue
	ActionStoreFalse
	ActionAppend
	ActionAppendConst
	ActionCount
	ActionCallback
	ActionHelp
	ActionVersion
)

var actionNames = [...]string{
	ActionStore:       "store",
	ActionStoreConst:  "store_const",
	ActionStoreTrue:   "store_true",
	ActionStoreFalse:  "store_false",
	ActionAppend:      "append",
	ActionAppendConst: "append_const",
	ActionCount:       "count",
	ActionCallback:    "callback",
	ActionHelp:        "help",
	ActionVersion:     "version",
}

// String returns the action's tag as used in settings maps.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a tag such as "store_true" to its Action.
func ParseAction(tag string) (Action, error) {
	for i, name := range actionNames {
		if name == tag {
			return Action(i), nil
		}
	}
	return 0, &ConfigurationError{Message: fmt.Sprintf("invalid action: %q", tag)}
}

// implied holds the settings an action supplies before explicit ones apply.
type implied struct {
	nargs      int
	def        any
	hasDefault bool
	hasDest    bool
}

func (a Action) implied() implied {
	switch a {
	case ActionStore:
		return implied{nargs: 1, hasDest: true}
	case ActionStoreConst:
		return implied{hasDest: true}
	case ActionStoreTrue:
		return implied{def: false, hasDefault: true, hasDest: true}
	case ActionStoreFalse:
		return implied{def: true, hasDefault: true, hasDest: true}
	case ActionAppend:
		return implied{nargs: 1, def: []any{}, hasDefault: true, hasDest: true}
	case ActionAppendConst:
		return implied{def: []any{}, hasDefault: true, hasDest: true}
	case ActionCount:
		return implied{def: 0, hasDefault: true, hasDest: true}
	case ActionCallback, ActionHelp, ActionVersion:
		return implied{}
	default:
		return implied{}
	}
}

// writesValue reports whether the built-in semantics store under dest.
func (a Action) writesValue() bool {
	switch a {
	case ActionStore, ActionStoreConst, ActionStoreTrue, ActionStoreFalse,
		ActionAppend, ActionAppendConst, ActionCount:
		return true
	case ActionCallback, ActionHelp, ActionVersion:
		return false
	default:
		return false
	}
}
