package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Kind identifies a parsed palette command.
type Kind int

const (
	KindNewTask Kind = iota + 1
	KindFilterPriority
	KindFilterAssignee
	KindClearFilters
	KindOpen
	KindHelp
	KindQuit
)

// Command is a parsed palette command.
type Command struct {
	Kind Kind

	// Arg is the priority, assignee or task ID, depending on Kind.
	Arg string

	// Column is the optional lookup hint of KindOpen.
	Column model.ColumnID
}

// ErrUnknown is returned for commands the palette does not recognize.
var ErrUnknown = errors.New("comando desconocido")

// Parse turns palette input into a Command. Keywords are accepted in
// Spanish and English.
func Parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, ErrUnknown
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "nueva", "new":
		return Command{Kind: KindNewTask}, nil
	case "limpiar", "clear":
		return Command{Kind: KindClearFilters}, nil
	case "ayuda", "help":
		return Command{Kind: KindHelp}, nil
	case "salir", "quit", "q":
		return Command{Kind: KindQuit}, nil
	case "abrir", "open":
		return parseOpen(args)
	case "filtrar", "filter":
		return parseFilter(args)
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknown, fields[0])
}

func parseOpen(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, errors.New("uso: abrir <id> [columna]")
	}
	c := Command{Kind: KindOpen, Arg: strings.ToUpper(args[0])}
	if len(args) > 1 {
		col := model.ColumnID(strings.ToLower(args[1]))
		if _, ok := model.LookupColumn(col); !ok {
			return Command{}, fmt.Errorf("columna desconocida: %s", args[1])
		}
		c.Column = col
	}
	return c, nil
}

func parseFilter(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, errors.New("uso: filtrar prioridad|responsable <valor>")
	}
	value := strings.Join(args[1:], " ")

	switch strings.ToLower(args[0]) {
	case "prioridad", "priority":
		for _, p := range model.Priorities() {
			if strings.EqualFold(string(p), value) {
				return Command{Kind: KindFilterPriority, Arg: string(p)}, nil
			}
		}
		if strings.EqualFold(value, "todas") || strings.EqualFold(value, "all") {
			return Command{Kind: KindFilterPriority, Arg: board.FilterAll}, nil
		}
		return Command{}, fmt.Errorf("prioridad desconocida: %s", value)

	case "responsable", "assignee":
		switch {
		case strings.EqualFold(value, "todos"), strings.EqualFold(value, "all"):
			value = board.FilterAll
		case strings.EqualFold(value, model.Unassigned):
			value = model.Unassigned
		}
		return Command{Kind: KindFilterAssignee, Arg: value}, nil
	}
	return Command{}, fmt.Errorf("filtro desconocido: %s", args[0])
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "nueva | filtrar prioridad Alta | abrir KB-298 | limpiar"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Comandos")
	input := m.input.View()

	content := lipgloss.JoinVertical(lipgloss.Left, title, input)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}
