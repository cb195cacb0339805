package resolver

import "strings"

// Separator joins a context and an action in a composite key.
const Separator = "::"

// Key is an action, optionally scoped by a context.
type Key struct {
	Context string
	Action  string
}

// ParseKey splits raw on its last Separator. A raw key without one is a
// bare action.
func ParseKey(raw string) Key {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, Separator); i >= 0 {
		return Key{Context: raw[:i], Action: raw[i+len(Separator):]}
	}
	return Key{Action: raw}
}

func (k Key) String() string {
	if k.Context == "" {
		return k.Action
	}
	return k.Context + Separator + k.Action
}
