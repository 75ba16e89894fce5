package model

import "strings"

// Status is the workflow stage of a task. Its value is also the title of
// the column that holds tasks in that stage.
type Status string

// Closed set of workflow statuses.
const (
	StatusPending    Status = "Pendiente"
	StatusInProgress Status = "En progreso"
	StatusReview     Status = "En revisión"
	StatusDone       Status = "Completado"
)

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusReview, StatusDone}
}

// Priority is the urgency label of a task.
type Priority string

// Priority constants, highest first.
const (
	PriorityHigh   Priority = "Alta"
	PriorityMedium Priority = "Media"
	PriorityLow    Priority = "Baja"
)

// Priorities returns every priority, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Defaults applied to freshly created tasks.
const (
	Unassigned         = "Sin asignar"
	UnassignedInitials = "SA"
	DefaultTaskTitle   = "Nueva tarea"
	DefaultDueLabel    = "Sin fecha"
)

// Task is a unit of work on the board.
type Task struct {
	// ID is globally unique and stable for the task's lifetime (e.g. KB-298).
	ID string `json:"id" db:"id"`

	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	// Owner is the display name of the assignee; OwnerInitials is the
	// avatar text shown on cards.
	Owner         string `json:"owner" db:"owner"`
	OwnerInitials string `json:"owner_initials" db:"owner_initials"`

	// Due is a free-form display label, not a parsed date.
	Due string `json:"due" db:"due"`

	Status   Status   `json:"status" db:"status"`
	Priority Priority `json:"priority" db:"priority"`

	// CreatedAt and UpdatedAt are display strings.
	CreatedAt string `json:"created_at" db:"created_at"`
	UpdatedAt string `json:"updated_at" db:"updated_at"`
}

// IsUnassigned reports whether the task has no owner.
func (t Task) IsUnassigned() bool {
	return t.Owner == "" || t.Owner == Unassigned
}

// Differs reports whether any user-editable field of t differs from o.
// OwnerInitials is derived from Owner and is not compared.
func (t Task) Differs(o Task) bool {
	return t.Title != o.Title ||
		t.Description != o.Description ||
		t.Status != o.Status ||
		t.Priority != o.Priority ||
		t.Owner != o.Owner ||
		t.Due != o.Due ||
		t.CreatedAt != o.CreatedAt ||
		t.UpdatedAt != o.UpdatedAt
}

// Initials builds avatar initials from a display name: the first letter of
// the first two words, upper-cased.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return UnassignedInitials
	}
	if len(fields) > 2 {
		fields = fields[:2]
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}
