package model

// SideKey scopes comments, attachments and labels to a task in a specific
// column. It is comparable and used directly as a map key.
type SideKey struct {
	TaskID   string   `json:"task_id" db:"task_id"`
	ColumnID ColumnID `json:"column_id" db:"column_id"`
}

// KeyFor builds the side key for a task residing in column.
func KeyFor(taskID string, column ColumnID) SideKey {
	return SideKey{TaskID: taskID, ColumnID: column}
}

// String renders the key as "taskID-columnID" for display and logs.
func (k SideKey) String() string {
	return k.TaskID + "-" + string(k.ColumnID)
}

// DeepLink is a request from the shell to open a task directly.
// ColumnID is an optional lookup hint.
type DeepLink struct {
	TaskID   string
	ColumnID ColumnID
}
