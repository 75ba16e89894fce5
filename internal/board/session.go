package board

import (
	"strings"

	"github.com/nhle/kanban-board/internal/model"
)

// Session is the selection state of the detail view. It is exactly one of
// Closed, Viewing or Editing.
type Session interface {
	session()
}

// Closed means no task is selected.
type Closed struct{}

// Viewing shows the committed record of a selected task.
type Viewing struct {
	Task   model.Task
	Column model.ColumnID
}

// Editing holds the committed record and the draft being edited.
type Editing struct {
	Task   model.Task
	Column model.ColumnID
	Draft  model.Task
}

func (Closed) session()  {}
func (Viewing) session() {}
func (Editing) session() {}

// Dirty reports whether the draft differs from the committed record.
func (e Editing) Dirty() bool {
	return e.Draft.Differs(e.Task)
}

// CanSave reports whether the draft may be committed: it must be dirty and
// keep a non-blank title.
func (e Editing) CanSave() bool {
	return e.Dirty() && strings.TrimSpace(e.Draft.Title) != ""
}

// startEditing snapshots the committed record into a fresh draft.
func startEditing(v Viewing) Editing {
	return Editing{Task: v.Task, Column: v.Column, Draft: v.Task}
}

// selection returns the selected task and its column, if any.
func selection(s Session) (model.Task, model.ColumnID, bool) {
	switch st := s.(type) {
	case Viewing:
		return st.Task, st.Column, true
	case Editing:
		return st.Task, st.Column, true
	default:
		return model.Task{}, "", false
	}
}
