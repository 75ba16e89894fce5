package board

import "github.com/nhle/kanban-board/internal/model"

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Filter selects the tasks shown on the board. An empty field behaves like
// FilterAll.
type Filter struct {
	// Priority is FilterAll or one of the model priorities.
	Priority model.Priority

	// Assignee is FilterAll, model.Unassigned, or an owner display name.
	Assignee string
}

// NewFilter returns a filter that matches every task.
func NewFilter() Filter {
	return Filter{Priority: FilterAll, Assignee: FilterAll}
}

// Active reports whether any dimension narrows the result.
func (f Filter) Active() bool {
	return !isAll(string(f.Priority)) || !isAll(f.Assignee)
}

// Matches reports whether t satisfies both predicates.
func (f Filter) Matches(t model.Task) bool {
	if !isAll(string(f.Priority)) && t.Priority != f.Priority {
		return false
	}
	switch {
	case isAll(f.Assignee):
		return true
	case f.Assignee == model.Unassigned:
		return t.IsUnassigned()
	default:
		return t.Owner == f.Assignee
	}
}

// Apply returns the tasks matching f in their original order. The input is
// not modified.
func (f Filter) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Summary renders the active dimensions for the status bar.
func (f Filter) Summary() string {
	var s string
	if !isAll(string(f.Priority)) {
		s = "prioridad: " + string(f.Priority)
	}
	if !isAll(f.Assignee) {
		if s != "" {
			s += " | "
		}
		s += "responsable: " + f.Assignee
	}
	return s
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}
