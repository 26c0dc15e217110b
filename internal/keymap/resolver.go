package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings  map[string]Action            // key -> action
	byContext map[string]map[string]Action // context -> key -> action
	byAction  map[Action][]string          // action -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:  make(map[string]Action),
		byContext: make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
	}
	for _, b := range bindings {
		ctx := r.byContext[b.Context]
		if ctx == nil {
			ctx = make(map[string]Action)
			r.byContext[b.Context] = ctx
		}
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			ctx[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// ResolveIn returns the action for a key in the first context that binds it.
func (r *Resolver) ResolveIn(key string, contexts ...string) Action {
	for _, c := range contexts {
		if a, ok := r.byContext[c][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Hint renders "key label" pairs for a footer, e.g. "p play · r rewind".
// Actions without keys are skipped.
func (r *Resolver) Hint(pairs ...HintPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys := r.KeysFor(p.Action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, displayKey(keys[0])+" "+p.Label)
	}
	return strings.Join(parts, " · ")
}

// HintPair labels an action in a footer hint.
type HintPair struct {
	Action Action
	Label  string
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
