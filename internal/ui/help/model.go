// Package help shows the board's key bindings in titled groups, followed
// by the command palette syntax.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/theme"
)

// groupTitles names the groups returned by KeyMap.FullHelp, in order.
var groupTitles = []string{"Navegación", "Tablero", "Filtros", "Tarea"}

// paletteCommands documents the ":" command syntax.
var paletteCommands = []string{
	"nueva",
	"abrir <id> [columna]",
	"filtrar prioridad <Alta|Media|Baja|todas>",
	"filtrar responsable <nombre|sin asignar|todos>",
	"limpiar",
	"ayuda · salir",
}

// Model is the help screen.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a help screen for k.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the parent closes the screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the groups side by side when they fit, stacked otherwise.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	groupStyle := lipgloss.NewStyle().MarginRight(4).MarginBottom(1)

	groups := m.keys.FullHelp()
	blocks := make([]string, 0, len(groups))
	for i, bindings := range groups {
		title := ""
		if i < len(groupTitles) {
			title = groupTitles[i]
		}
		body := m.help.FullHelpView([][]key.Binding{bindings})
		blocks = append(blocks, groupStyle.Render(titleStyle.Render(title)+"\n"+body))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	if lipgloss.Width(body) > m.width-6 {
		body = lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}

	palette := titleStyle.Render("Comandos (:)") + "\n" +
		theme.DimmedStyle.Render("  "+strings.Join(paletteCommands, "\n  "))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.MarginBottom(1).Render("Atajos de teclado"),
		body,
		palette,
		"",
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 20)).
		Height(max(m.height-4, 1)).
		Render(content)
}

// SetSize updates the help screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-8, 20)
}
