package dto

import "sort"

// Visits is embedded by concrete DTOs to track assigned fields.
type Visits struct {
	visited map[string]struct{}
}

func (v *Visits) Visited() []string {
	out := make([]string, 0, len(v.visited))
	for name := range v.visited {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (v *Visits) SetVisited(field string) {
	if v.visited == nil {
		v.visited = make(map[string]struct{})
	}
	v.visited[field] = struct{}{}
}

func (v *Visits) IsVisited(field string) bool {
	_, ok := v.visited[field]
	return ok
}
