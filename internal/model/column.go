package model

// ColumnID identifies a workflow column.
type ColumnID string

// Fixed column identifiers.
const (
	ColumnPending    ColumnID = "pending"
	ColumnInProgress ColumnID = "in-progress"
	ColumnReview     ColumnID = "review"
	ColumnDone       ColumnID = "done"
)

// Column is a fixed workflow stage of the board.
type Column struct {
	ID ColumnID `json:"id"`

	// Title is always one of the Status values.
	Title Status `json:"title"`

	// Accent is a display hint used by the theme (e.g. "blue").
	Accent string `json:"accent"`
}

// Columns returns the static column registry in display order. A fresh
// slice is returned on every call so callers cannot mutate the registry.
func Columns() []Column {
	return []Column{
		{ID: ColumnPending, Title: StatusPending, Accent: "blue"},
		{ID: ColumnInProgress, Title: StatusInProgress, Accent: "yellow"},
		{ID: ColumnReview, Title: StatusReview, Accent: "magenta"},
		{ID: ColumnDone, Title: StatusDone, Accent: "green"},
	}
}

// LookupColumn returns the registry entry for id.
func LookupColumn(id ColumnID) (Column, bool) {
	for _, c := range Columns() {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnForStatus returns the column whose title equals status.
func ColumnForStatus(status Status) (Column, bool) {
	for _, c := range Columns() {
		if c.Title == status {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnIndex returns the display position of id, or -1.
func ColumnIndex(id ColumnID) int {
	for i, c := range Columns() {
		if c.ID == id {
			return i
		}
	}
	return -1
}
