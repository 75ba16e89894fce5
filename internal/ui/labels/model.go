// Package labels is the label picker for the selected task: preset labels
// from the catalog can be toggled and free-text labels added.
package labels

import (
	"errors"
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

// CloseMsg signals the parent to close the label picker.
type CloseMsg struct{}

type pickerMode int

const (
	modeList pickerMode = iota
	modeForm
)

// formBindings keeps the custom label input on the heap for huh.
type formBindings struct {
	name string
}

// Model is the Bubble Tea model for the label picker.
type Model struct {
	mode        pickerMode
	engine      *board.Engine
	keys        *keys.KeyMap
	catalog     []model.LabelPreset
	selectedIdx int
	form        *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new label picker model.
func New(e *board.Engine, k *keys.KeyMap, catalog []model.LabelPreset, width, height int) Model {
	return Model{
		mode:    modeList,
		engine:  e,
		keys:    k,
		catalog: catalog,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Open resets the picker for the currently selected task.
func (m *Model) Open() {
	m.mode = modeList
	m.selectedIdx = 0
	m.statusMsg = ""
	m.form = nil
}

// Editing reports whether the custom label input has focus.
func (m Model) Editing() bool {
	return m.mode == modeForm
}

// current returns the selected task's labels.
func (m Model) current() []string {
	sk, ok := m.engine.SelectedKey()
	if !ok {
		return nil
	}
	return m.engine.Labels(sk)
}

// items lists the catalog followed by the task's custom labels.
func (m Model) items() []model.LabelPreset {
	out := append([]model.LabelPreset(nil), m.catalog...)
	for _, l := range m.current() {
		found := false
		for _, p := range out {
			if model.SameLabel(p.Name, l) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, model.LabelPreset{Name: l})
		}
	}
	return out
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleListKey(keyMsg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.items()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(items)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(items) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(items) - 1
			}
		}
		return m, nil

	case msg.String() == " ", key.Matches(msg, m.keys.Open):
		if m.selectedIdx >= len(items) {
			return m, nil
		}
		name := items[m.selectedIdx].Name
		if m.engine.ToggleLabel(name) {
			if board.HasLabel(m.current(), name) {
				m.statusMsg = "Añadida #" + name
			} else {
				m.statusMsg = "Quitada #" + name
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.NewTask):
		m.fb.name = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	existing := m.current()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nueva etiqueta").
				Placeholder("Nombre de la etiqueta").
				Value(&m.fb.name).
				Validate(func(s string) error {
					return validateLabel(s, existing)
				}),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

// validateLabel rejects blank labels and labels the task already has.
func validateLabel(s string, existing []string) error {
	if model.NormalizeLabel(s) == "" {
		return errors.New("la etiqueta no puede estar vacía")
	}
	if board.HasLabel(existing, s) {
		return fmt.Errorf("la tarea ya tiene la etiqueta %q", model.NormalizeLabel(s))
	}
	return nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		m.mode = modeList
		m.form = nil
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		if m.engine.AddCustomLabel(m.fb.name) {
			m.statusMsg = "Añadida #" + model.NormalizeLabel(m.fb.name)
		}
		m.mode = modeList
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.mode = modeList
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View renders the label picker.
func (m Model) View() string {
	if m.mode == modeForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	title := "Etiquetas"
	if t, _, ok := m.engine.Selected(); ok {
		title += " · " + t.ID
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	current := m.current()
	items := m.items()
	if len(items) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("Sin etiquetas. Pulsa 'n' para crear una."))
	}
	for i, p := range items {
		mark := "[ ]"
		if board.HasLabel(current, p.Name) {
			mark = "[x]"
		}
		label := mark + " " + theme.LabelStyle(p.Name, m.catalog).Render("#"+p.Name)

		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.DimmedStyle.Render("espacio/enter alternar | n nueva | esc volver"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}
