// Package board implements the task board engine: the column store, the
// keyed side-stores that follow a task between columns, the draft
// reconciler and the read-side filter.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nhle/kanban-board/internal/model"
)

// Move describes the outcome of a successful board transition.
type Move struct {
	TaskID string
	From   model.ColumnID
	To     model.ColumnID

	// Task is the record as it now sits in To.
	Task model.Task

	// Fallback is set when a status edit named no known column and the
	// task stayed in its current column.
	Fallback bool
}

// CrossColumn reports whether the task changed columns.
func (m Move) CrossColumn() bool {
	return m.From != m.To
}

// Board maps each column to its ordered task list. A task ID lives in
// exactly one column. Every mutation builds a new column map and swaps it
// in, so readers never observe a half-applied transition.
type Board struct {
	columns map[model.ColumnID][]model.Task
	prefix  string
	next    int
}

// New builds a board from seeded column lists. Tasks seeded into unknown
// columns or repeating an ID already placed are skipped, and each task's
// status is aligned with its column title.
func New(columns map[model.ColumnID][]model.Task, idPrefix string) *Board {
	if idPrefix == "" {
		idPrefix = "KB"
	}
	b := &Board{
		columns: make(map[model.ColumnID][]model.Task, len(model.Columns())),
		prefix:  idPrefix,
	}

	seen := make(map[string]bool)
	for _, col := range model.Columns() {
		tasks := make([]model.Task, 0, len(columns[col.ID]))
		for _, t := range columns[col.ID] {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			t.Status = col.Title
			tasks = append(tasks, t)
			if n, ok := b.sequence(t.ID); ok && n >= b.next {
				b.next = n + 1
			}
		}
		b.columns[col.ID] = tasks
	}
	if b.next == 0 {
		b.next = 1
	}

	return b
}

// sequence extracts the numeric part of an ID minted with this board's
// prefix (e.g. 298 from "KB-298").
func (b *Board) sequence(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, b.prefix+"-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Tasks returns a copy of the task list for column.
func (b *Board) Tasks(column model.ColumnID) []model.Task {
	return append([]model.Task(nil), b.columns[column]...)
}

// Snapshot returns a deep copy of the column map.
func (b *Board) Snapshot() map[model.ColumnID][]model.Task {
	out := make(map[model.ColumnID][]model.Task, len(b.columns))
	for id, tasks := range b.columns {
		out[id] = append([]model.Task(nil), tasks...)
	}
	return out
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	n := 0
	for _, tasks := range b.columns {
		n += len(tasks)
	}
	return n
}

// NextID returns the identifier the next AddTask call will mint.
func (b *Board) NextID() string {
	n := b.next
	for b.contains(b.format(n)) {
		n++
	}
	return b.format(n)
}

func (b *Board) format(n int) string {
	return fmt.Sprintf("%s-%d", b.prefix, n)
}

func (b *Board) contains(id string) bool {
	_, _, ok := b.Find(id, "")
	return ok
}

// AddTask appends a new task with default fields to the pending column.
// createdAt is the display label used for both timestamps.
func (b *Board) AddTask(createdAt string) model.Task {
	id := b.NextID()
	n, _ := b.sequence(id)
	b.next = n + 1

	task := model.Task{
		ID:            id,
		Title:         model.DefaultTaskTitle,
		Owner:         model.Unassigned,
		OwnerInitials: model.UnassignedInitials,
		Due:           model.DefaultDueLabel,
		Status:        model.StatusPending,
		Priority:      model.PriorityLow,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	next := b.cloneColumns()
	next[model.ColumnPending] = append(next[model.ColumnPending], task)
	b.columns = next

	return task
}

// Find looks the task up in hint first, then scans every column in
// registry order.
func (b *Board) Find(taskID string, hint model.ColumnID) (model.Task, model.ColumnID, bool) {
	if hint != "" {
		if i := indexOf(b.columns[hint], taskID); i >= 0 {
			return b.columns[hint][i], hint, true
		}
	}
	for _, col := range model.Columns() {
		if col.ID == hint {
			continue
		}
		if i := indexOf(b.columns[col.ID], taskID); i >= 0 {
			return b.columns[col.ID][i], col.ID, true
		}
	}
	return model.Task{}, "", false
}

// Move removes taskID from from and appends it to to. Moving within a
// column sends the task to the end of that column. A stale origin or an
// unknown target leaves the board untouched and returns false.
func (b *Board) Move(from model.ColumnID, taskID string, to model.ColumnID) (Move, bool) {
	target, ok := model.LookupColumn(to)
	if !ok {
		return Move{}, false
	}
	i := indexOf(b.columns[from], taskID)
	if i < 0 {
		return Move{}, false
	}

	task := b.columns[from][i]
	if from != to {
		task.Status = target.Title
	}

	next := b.cloneColumns()
	next[from] = removeAt(next[from], i)
	next[to] = append(next[to], task)
	b.columns = next

	return Move{TaskID: taskID, From: from, To: to, Task: task}, true
}

// Replace commits an edited record. The target column is the one titled
// with the record's status; when no column matches, the task stays in its
// current column and its status is aligned with that column. A same-column
// replace keeps the task's position.
func (b *Board) Replace(prev model.ColumnID, task model.Task) (Move, bool) {
	_, current, ok := b.Find(task.ID, prev)
	if !ok {
		return Move{}, false
	}

	mv := Move{TaskID: task.ID, From: current}
	target, ok := model.ColumnForStatus(task.Status)
	if !ok {
		target, _ = model.LookupColumn(current)
		task.Status = target.Title
		mv.Fallback = true
	}
	mv.To = target.ID
	mv.Task = task

	next := b.cloneColumns()
	i := indexOf(next[current], task.ID)
	if current == target.ID {
		next[current][i] = task
	} else {
		next[current] = removeAt(next[current], i)
		next[target.ID] = append(next[target.ID], task)
	}
	b.columns = next

	return mv, true
}

// Update applies fn to the task in place without moving it. The ID and
// status are not editable through Update.
func (b *Board) Update(column model.ColumnID, taskID string, fn func(*model.Task)) (model.Task, bool) {
	i := indexOf(b.columns[column], taskID)
	if i < 0 {
		return model.Task{}, false
	}

	next := b.cloneColumns()
	task := next[column][i]
	fn(&task)
	task.ID = taskID
	task.Status = b.columns[column][i].Status
	next[column][i] = task
	b.columns = next

	return task, true
}

// Owners returns the distinct assignee names on the board in first-seen
// order, excluding the unassigned sentinel.
func (b *Board) Owners() []string {
	seen := make(map[string]bool)
	var owners []string
	for _, col := range model.Columns() {
		for _, t := range b.columns[col.ID] {
			if t.IsUnassigned() || seen[t.Owner] {
				continue
			}
			seen[t.Owner] = true
			owners = append(owners, t.Owner)
		}
	}
	return owners
}

// cloneColumns copies every column slice so the current map stays intact
// until the caller swaps in the result.
func (b *Board) cloneColumns() map[model.ColumnID][]model.Task {
	next := make(map[model.ColumnID][]model.Task, len(b.columns))
	for id, tasks := range b.columns {
		next[id] = append(make([]model.Task, 0, len(tasks)+1), tasks...)
	}
	return next
}

func indexOf(tasks []model.Task, taskID string) int {
	for i, t := range tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

func removeAt(tasks []model.Task, i int) []model.Task {
	return append(tasks[:i], tasks[i+1:]...)
}
