package detail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/crossref"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
)

// BackMsg signals the parent to close the task and return to the board.
type BackMsg struct{}

// EditRequestMsg asks the parent to open the edit form.
type EditRequestMsg struct{}

// LabelsRequestMsg asks the parent to open the label picker.
type LabelsRequestMsg struct{}

// prompt is the inline input currently open, if any.
type prompt int

const (
	promptNone prompt = iota
	promptComment
	promptUpload
)

// pane is the side list that j/k and d act on.
type pane int

const (
	paneNone pane = iota
	paneComments
	paneAttachments
)

// Model is the task detail view component.
type Model struct {
	engine   *board.Engine
	keys     *keys.KeyMap
	catalog  []model.LabelPreset
	viewport viewport.Model
	input    textinput.Model

	prompt prompt
	pane   pane
	item   int

	notice string
	err    error
	width  int
	height int
}

// New creates a new detail view model.
func New(e *board.Engine, k *keys.KeyMap, catalog []model.LabelPreset, width, height int) Model {
	vp := viewport.New(width, max(height-2, 1))
	vp.Style = lipgloss.NewStyle()

	ti := textinput.New()
	ti.CharLimit = 500

	return Model{
		engine:   e,
		keys:     k,
		catalog:  catalog,
		viewport: vp,
		input:    ti,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.notice = ""
	m.err = nil

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		if m.pane != paneNone {
			m.pane = paneNone
			m.Refresh()
			return m, nil
		}
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Edit):
		return m, func() tea.Msg { return EditRequestMsg{} }

	case key.Matches(keyMsg, m.keys.Labels):
		return m, func() tea.Msg { return LabelsRequestMsg{} }

	case key.Matches(keyMsg, m.keys.AssignMe):
		if m.engine.AssignToCurrentUser() {
			m.notice = "Asignada a " + m.engine.CurrentUser().Name
		}
		m.Refresh()
		return m, nil

	case key.Matches(keyMsg, m.keys.Comment):
		cmd := m.openPrompt(promptComment, "Comentario: ", "Escribe un comentario")
		return m, cmd

	case key.Matches(keyMsg, m.keys.Upload):
		cmd := m.openPrompt(promptUpload, "Archivos: ", "rutas separadas por comas")
		return m, cmd

	case key.Matches(keyMsg, m.keys.NextPane):
		m.pane = (m.pane + 1) % 3
		m.item = 0
		m.Refresh()
		return m, nil
	}

	if m.pane != paneNone {
		m.updatePane(keyMsg)
		m.Refresh()
		return m, nil
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updatePane moves the item cursor and deletes the focused item.
func (m *Model) updatePane(msg tea.KeyMsg) {
	n := m.paneLen()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.item > 0 {
			m.item--
		}
	case key.Matches(msg, m.keys.Down):
		if m.item < n-1 {
			m.item++
		}
	case key.Matches(msg, m.keys.DeleteItem):
		t, col, ok := m.engine.Selected()
		if !ok || n == 0 {
			return
		}
		var removed bool
		if m.pane == paneComments {
			removed = m.engine.DeleteComment(t.ID, col, m.item)
		} else {
			removed = m.engine.RemoveAttachment(t.ID, col, m.item)
		}
		if removed {
			m.notice = "Elemento eliminado"
		}
		if m.item >= m.paneLen() {
			m.item = max(m.paneLen()-1, 0)
		}
	}
}

func (m Model) paneLen() int {
	sk, ok := m.engine.SelectedKey()
	if !ok {
		return 0
	}
	switch m.pane {
	case paneComments:
		return len(m.engine.Comments(sk))
	case paneAttachments:
		return len(m.engine.Attachments(sk))
	default:
		return 0
	}
}

func (m *Model) openPrompt(p prompt, label, placeholder string) tea.Cmd {
	m.prompt = p
	m.input.Reset()
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

// updatePrompt feeds keys to the inline input and submits it on enter.
func (m Model) updatePrompt(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.closePrompt()
			return m, nil
		case tea.KeyEnter:
			value := m.input.Value()
			p := m.prompt
			m.closePrompt()
			m.submit(p, value)
			m.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

func (m *Model) submit(p prompt, value string) {
	switch p {
	case promptComment:
		if m.engine.AddComment(value) {
			m.notice = "Comentario añadido"
		}
	case promptUpload:
		files, err := ReadAttachments(value)
		if n := m.engine.UploadAttachments(files); n > 0 {
			m.notice = fmt.Sprintf("%d archivo(s) adjuntado(s)", n)
		}
		m.err = err
	}
}

// ReadAttachments stats every comma-separated path in paths. Files that
// cannot be read are reported in the joined error and skipped.
func ReadAttachments(paths string) ([]model.Attachment, error) {
	var files []model.Attachment
	var errs []error
	for _, p := range strings.Split(paths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		a, err := model.AttachmentFromFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, a)
	}
	return files, errors.Join(errs...)
}

// Prompting reports whether an inline input has focus. The parent uses it
// to keep global keys such as q from firing while typing.
func (m Model) Prompting() bool {
	return m.prompt != promptNone
}

// Notice returns the message produced by the last action.
func (m Model) Notice() string {
	return m.notice
}

// Refresh re-renders the selected task into the viewport.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.renderContent())
}

// Reset scrolls to the top and clears pane focus. Call it when a task is
// opened.
func (m *Model) Reset() {
	m.pane = paneNone
	m.item = 0
	m.notice = ""
	m.err = nil
	m.closePrompt()
	m.Refresh()
	m.viewport.GotoTop()
}

// View renders the detail view.
func (m Model) View() string {
	if _, _, ok := m.engine.Selected(); !ok {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Ninguna tarea seleccionada")
	}

	footer := theme.HelpStyle.Render("e editar · a asignarme · c comentar · u adjuntar · t etiquetas · tab lista · esc volver")
	switch {
	case m.prompt != promptNone:
		footer = m.input.View()
	case m.err != nil:
		footer = theme.ErrorStyle.Render(m.err.Error())
	case m.notice != "":
		footer = theme.DimmedStyle.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), "", footer)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	task, col, ok := m.engine.Selected()
	if !ok {
		return ""
	}
	sk := model.KeyFor(task.ID, col)

	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(task.Title))

	// Badges line: id + status + priority
	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.DimmedStyle.Render(task.ID), "  ",
		theme.StatusStyle(task.Status).Render(string(task.Status)), "  ",
		theme.PriorityStyle(task.Priority).Render(string(task.Priority)),
	)
	sections = append(sections, badgeLine, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(14)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return metaStyle.Render(label) + valStyle.Render(value)
	}

	initials := task.OwnerInitials
	if initials == "" {
		initials = model.Initials(task.Owner)
	}
	owner := task.Owner
	if owner == "" {
		owner = model.Unassigned
	}
	sections = append(sections,
		row("Responsable:", theme.AvatarStyle.Render(initials)+" "+owner),
		row("Vence:", task.Due),
		row("Creada:", task.CreatedAt),
		row("Actualizada:", task.UpdatedAt),
	)

	if labels := m.engine.Labels(sk); len(labels) > 0 {
		chips := make([]string, 0, len(labels))
		for _, l := range labels {
			chips = append(chips, theme.LabelStyle(l, m.catalog).Render("#"+l))
		}
		sections = append(sections, row("Etiquetas:", strings.Join(chips, " ")))
	}

	if refs := m.references(task, sk); len(refs) > 0 {
		sections = append(sections, row("Referencias:", strings.Join(refs, ", ")))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, "")

	// Description
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, headerStyle.Render("Descripción"))

	body := task.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Sin descripción")
	}
	sections = append(sections, body)

	// Comments
	comments := m.engine.Comments(sk)
	sections = append(sections, "", separator, "",
		headerStyle.Render(fmt.Sprintf("Comentarios (%d)", len(comments))))
	for i, c := range comments {
		sections = append(sections, m.renderItem(paneComments, i, c.Text))
	}

	// Attachments
	attachments := m.engine.Attachments(sk)
	sections = append(sections, "",
		headerStyle.Render(fmt.Sprintf("Adjuntos (%d)", len(attachments))))
	for i, a := range attachments {
		sections = append(sections, m.renderItem(paneAttachments, i,
			fmt.Sprintf("%s  %s", a.Name, theme.DimmedStyle.Render(a.HumanSize()))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// references lists the board tasks named in the description or comments.
func (m Model) references(task model.Task, sk model.SideKey) []string {
	texts := []string{task.Title, task.Description}
	for _, c := range m.engine.Comments(sk) {
		texts = append(texts, c.Text)
	}
	return crossref.References(task.ID, texts, func(id string) bool {
		_, _, ok := m.engine.Find(id, "")
		return ok
	})
}

func (m Model) renderItem(p pane, i int, text string) string {
	if m.pane == p && m.item == i {
		return theme.SelectedItemStyle.Render(text)
	}
	return theme.ListItemStyle.Render(text)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.input.Width = max(width-14, 10)
	m.Refresh()
}
