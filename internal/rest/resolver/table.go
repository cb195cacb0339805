package resolver

import "sort"

// Table maps bare or composite keys to class names. It is immutable.
type Table struct {
	entries map[string]string
}

func NewTable(entries map[string]string) Table {
	t := Table{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Lookup tries context::action, then action.
func (t Table) Lookup(k Key) (string, bool) {
	if k.Action == "" {
		return "", false
	}
	if k.Context != "" {
		if name, ok := t.entries[k.String()]; ok {
			return name, true
		}
	}
	name, ok := t.entries[k.Action]
	return name, ok
}

func (t Table) Len() int { return len(t.entries) }

// Keys returns the table keys in sorted order.
func (t Table) Keys() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t Table) Get(key string) (string, bool) {
	name, ok := t.entries[key]
	return name, ok
}
