package taskform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
)

// SavedMsg is dispatched when the draft was committed.
type SavedMsg struct {
	TaskID string
	Column model.ColumnID
}

// CancelMsg is dispatched when the user leaves the form without saving.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	status      model.Status
	priority    model.Priority
	owner       string
	due         string
}

// Model is the Bubble Tea model for the task edit form. Every change to a
// field is mirrored into the engine draft as it happens.
type Model struct {
	engine *board.Engine
	keys   *keys.KeyMap
	form   *huh.Form
	fb     *formBindings
	notice string
	width  int
	height int
}

// New creates a new task form model.
func New(e *board.Engine, k *keys.KeyMap, width, height int) Model {
	return Model{
		engine: e,
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start moves the selected task into editing and builds the form from
// its draft. Without a selection the form stays inactive.
func (m *Model) Start() tea.Cmd {
	if _, editing := m.engine.Draft(); !editing && !m.engine.StartEdit() {
		return nil
	}
	m.notice = ""
	return m.rebuild()
}

// rebuild reloads the bindings from the engine draft and recreates the form.
func (m *Model) rebuild() tea.Cmd {
	draft, ok := m.engine.Draft()
	if !ok {
		m.form = nil
		return nil
	}
	m.fb.title = draft.Title
	m.fb.description = draft.Description
	m.fb.status = draft.Status
	m.fb.priority = draft.Priority
	m.fb.owner = draft.Owner
	m.fb.due = draft.Due
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.engine.CancelEdit()
			m.form = nil
			return m, func() tea.Msg { return CancelMsg{} }

		case key.Matches(keyMsg, m.keys.Reset):
			m.engine.ResetDraft()
			cmd := m.rebuild()
			m.notice = "Borrador restablecido"
			return m, cmd
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	m.syncDraft()

	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		m.engine.CancelEdit()
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// syncDraft copies the bindings into the engine draft.
func (m Model) syncDraft() {
	fb := m.fb
	m.engine.EditDraft(func(t *model.Task) {
		t.Title = fb.title
		t.Description = fb.description
		t.Status = fb.status
		t.Priority = fb.priority
		t.Due = fb.due
		if t.Owner != fb.owner {
			t.Owner = fb.owner
			t.OwnerInitials = model.Initials(fb.owner)
		}
	})
}

// submit commits the draft. A clean or invalid draft keeps the form open.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.engine.SaveEdit() {
		m.notice = "No hay cambios que guardar"
		cmd := m.rebuild()
		return m, cmd
	}
	m.form = nil
	t, col, _ := m.engine.Selected()
	return m, func() tea.Msg { return SavedMsg{TaskID: t.ID, Column: col} }
}

// Active reports whether a form is open.
func (m Model) Active() bool {
	return m.form != nil
}

// Dirty reports whether the draft differs from the committed record.
func (m Model) Dirty() bool {
	ed, ok := m.engine.Session().(board.Editing)
	return ok && ed.Dirty()
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	draft, _ := m.engine.Draft()
	titleText := "Editar " + draft.ID

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	state := theme.DimmedStyle.Render("sin cambios · guardar desactivado")
	if m.Dirty() {
		state = theme.PriorityStyle(model.PriorityMedium).Render("● cambios sin guardar")
	}
	if m.notice != "" {
		state += "  " + theme.DimmedStyle.Render(m.notice)
	}
	hints := theme.HelpStyle.Render("enter guardar · ctrl+r restablecer · esc cancelar")

	content := titleStyle.Render(titleText) + "\n" + m.form.View() + "\n" + state + "\n" + hints

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

func (m *Model) buildForm() *huh.Form {
	statusOpts := make([]huh.Option[model.Status], 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		statusOpts = append(statusOpts, huh.NewOption(string(s), s))
	}
	priorityOpts := make([]huh.Option[model.Priority], 0, len(model.Priorities()))
	for _, p := range model.Priorities() {
		priorityOpts = append(priorityOpts, huh.NewOption(string(p), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Título").
				Placeholder("¿Qué hay que hacer?").
				Value(&m.fb.title).
				Validate(validateRequired("El título")),
			huh.NewText().
				Title("Descripción").
				Placeholder("Detalles opcionales...").
				Value(&m.fb.description),
			huh.NewSelect[model.Status]().
				Title("Estado").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewSelect[model.Priority]().
				Title("Prioridad").
				Options(priorityOpts...).
				Value(&m.fb.priority),
			huh.NewSelect[string]().
				Title("Responsable").
				Options(m.ownerOptions()...).
				Value(&m.fb.owner),
			huh.NewInput().
				Title("Vence").
				Placeholder(model.DefaultDueLabel).
				Value(&m.fb.due),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithShowHelp(false)
}

// ownerOptions lists the unassigned entry, the current user, the board's
// owners and the draft's own owner, without repeats.
func (m *Model) ownerOptions() []huh.Option[string] {
	names := []string{model.Unassigned, m.engine.CurrentUser().Name}
	names = append(names, m.engine.Owners()...)
	names = append(names, m.fb.owner)

	seen := make(map[string]bool, len(names))
	opts := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		opts = append(opts, huh.NewOption(n, n))
	}
	return opts
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-6, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", fieldName)
		}
		return nil
	}
}
