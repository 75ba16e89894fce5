// Package boardview renders the four board columns and drives keyboard
// drag-and-drop against the board engine.
package boardview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
	"github.com/nhle/kanban-board/internal/ui"
)

// OpenTaskMsg is sent when the user opens the card under the cursor.
type OpenTaskMsg struct {
	Column model.ColumnID
	TaskID string
}

// Model is the board view component.
type Model struct {
	engine  *board.Engine
	keys    *keys.KeyMap
	columns []model.Column
	catalog []model.LabelPreset
	filter  board.Filter

	col  int   // focused column
	rows []int // cursor row per column

	// dropTarget is the column a dragged card will land in.
	dropTarget int

	notice string
	width  int
	height int
}

// New creates a new board view model.
func New(e *board.Engine, k *keys.KeyMap, catalog []model.LabelPreset, width, height int) Model {
	cols := e.Columns()
	return Model{
		engine:  e,
		keys:    k,
		columns: cols,
		catalog: catalog,
		filter:  board.NewFilter(),
		rows:    make([]int, len(cols)),
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	if _, dragging := m.engine.Dragging(); dragging {
		return m.handleDragKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleDragKeys processes keys while a card is picked up.
func (m Model) handleDragKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.dropTarget > 0 {
			m.dropTarget--
		}

	case key.Matches(msg, m.keys.Right):
		if m.dropTarget < len(m.columns)-1 {
			m.dropTarget++
		}

	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Drag):
		ref, _ := m.engine.Dragging()
		target := m.columns[m.dropTarget]
		moved := m.engine.OnDrop(target.ID)
		m.engine.OnDragEnd()
		if moved {
			m.FocusTask(target.ID, ref.TaskID)
			m.notice = fmt.Sprintf("%s → %s", ref.TaskID, target.Title)
		} else {
			m.notice = "No se pudo mover la tarjeta"
		}

	case key.Matches(msg, m.keys.Back):
		m.engine.OnDragEnd()
		m.notice = "Movimiento cancelado"
	}
	return m, nil
}

// handleNormalKeys processes navigation and board actions.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.rows[m.col] < len(m.visible(m.col))-1 {
			m.rows[m.col]++
		}

	case key.Matches(msg, m.keys.Open):
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		col := m.columns[m.col].ID
		return m, func() tea.Msg {
			return OpenTaskMsg{Column: col, TaskID: t.ID}
		}

	case key.Matches(msg, m.keys.NewTask):
		t := m.engine.AddTask()
		m.FocusTask(model.ColumnPending, t.ID)
		m.notice = "Creada " + t.ID

	case key.Matches(msg, m.keys.Drag):
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		m.engine.OnDragStart(m.columns[m.col].ID, t.ID)
		m.dropTarget = m.col

	case key.Matches(msg, m.keys.FilterPriority):
		m.filter.Priority = nextPriority(m.filter.Priority)
		m.clampRows()

	case key.Matches(msg, m.keys.FilterAssignee):
		m.filter.Assignee = nextAssignee(m.filter.Assignee, m.engine.Owners())
		m.clampRows()

	case key.Matches(msg, m.keys.ClearFilters):
		m.filter = board.NewFilter()
		m.clampRows()
	}

	m.clampRows()
	return m, nil
}

// nextPriority cycles all → Alta → Media → Baja → all.
func nextPriority(p model.Priority) model.Priority {
	opts := append([]model.Priority{board.FilterAll}, model.Priorities()...)
	return opts[(indexOf(opts, p)+1)%len(opts)]
}

// nextAssignee cycles all → unassigned → each owner → all.
func nextAssignee(current string, owners []string) string {
	opts := append([]string{board.FilterAll, model.Unassigned}, owners...)
	return opts[(indexOf(opts, current)+1)%len(opts)]
}

func indexOf[T comparable](opts []T, v T) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return 0
}

// visible returns the filtered tasks of column i.
func (m Model) visible(i int) []model.Task {
	return m.filter.Apply(m.engine.Tasks(m.columns[i].ID))
}

// current returns the task under the cursor.
func (m Model) current() (model.Task, bool) {
	tasks := m.visible(m.col)
	r := m.rows[m.col]
	if r < 0 || r >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[r], true
}

// Selected returns the column and task under the cursor.
func (m Model) Selected() (model.ColumnID, model.Task, bool) {
	t, ok := m.current()
	return m.columns[m.col].ID, t, ok
}

// clampRows keeps every cursor inside its column.
func (m *Model) clampRows() {
	for i := range m.columns {
		n := len(m.visible(i))
		if m.rows[i] >= n {
			m.rows[i] = n - 1
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}

// FocusTask moves the cursor to taskID in column, if it is visible.
func (m *Model) FocusTask(column model.ColumnID, taskID string) {
	ci := model.ColumnIndex(column)
	if ci < 0 {
		return
	}
	m.col = ci
	for i, t := range m.visible(ci) {
		if t.ID == taskID {
			m.rows[ci] = i
			return
		}
	}
	m.clampRows()
}

// Filter returns the active filter.
func (m Model) Filter() board.Filter {
	return m.filter
}

// SetFilter replaces the active filter.
func (m *Model) SetFilter(f board.Filter) {
	m.filter = f
	m.clampRows()
}

// FilterSummary describes the active filter for the status bar.
func (m Model) FilterSummary() string {
	return m.filter.Summary()
}

// Notice returns the message produced by the last action.
func (m Model) Notice() string {
	return m.notice
}

// Dragging reports whether a card is picked up.
func (m Model) Dragging() bool {
	_, ok := m.engine.Dragging()
	return ok
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the board.
func (m Model) View() string {
	colWidth := ui.ColumnWidth(m.width, len(m.columns))
	ref, dragging := m.engine.Dragging()

	rendered := make([]string, len(m.columns))
	for i, c := range m.columns {
		rendered[i] = m.renderColumn(i, c, colWidth, ref, dragging)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(i int, c model.Column, width int, ref board.DragRef, dragging bool) string {
	tasks := m.visible(i)
	total := len(m.engine.Tasks(c.ID))

	count := fmt.Sprintf("%d", total)
	if len(tasks) != total {
		count = fmt.Sprintf("%d/%d", len(tasks), total)
	}
	header := theme.ColumnHeaderStyle(c).Render(fmt.Sprintf("%s (%s)", c.Title, count))

	// Header and frame take three lines.
	fit := max((m.height-3)/cardHeight, 1)
	offset := 0
	if i == m.col && m.rows[i] >= fit {
		offset = m.rows[i] - fit + 1
	}

	lines := []string{header}
	if len(tasks) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("  sin tareas"))
	}
	for r := offset; r < len(tasks) && r < offset+fit; r++ {
		t := tasks[r]
		state := cardIdle
		switch {
		case dragging && t.ID == ref.TaskID:
			state = cardDragging
		case !dragging && i == m.col && r == m.rows[i]:
			state = cardSelected
		}
		labels := m.engine.Labels(model.KeyFor(t.ID, c.ID))
		lines = append(lines, renderCard(t, labels, m.catalog, width-2, state))
	}

	frame := theme.ColumnStyle
	if dragging && i == m.dropTarget {
		frame = theme.DropTargetStyle
	}
	return frame.
		Width(width - 2).
		Height(max(m.height-2, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
