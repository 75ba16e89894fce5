package app

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
	"github.com/nhle/kanban-board/internal/ui"
	"github.com/nhle/kanban-board/internal/ui/boardview"
	"github.com/nhle/kanban-board/internal/ui/command"
	"github.com/nhle/kanban-board/internal/ui/detail"
	helpview "github.com/nhle/kanban-board/internal/ui/help"
	"github.com/nhle/kanban-board/internal/ui/labels"
	"github.com/nhle/kanban-board/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewDetail
	ViewEdit
	ViewLabels
	ViewHelp
	ViewCommand
)

func (v ViewState) String() string {
	switch v {
	case ViewBoard:
		return "board"
	case ViewDetail:
		return "detail"
	case ViewEdit:
		return "edit"
	case ViewLabels:
		return "labels"
	case ViewHelp:
		return "help"
	case ViewCommand:
		return "command"
	default:
		return "unknown"
	}
}

// deepLinkMsg carries the shell's open request into the update loop.
type deepLinkMsg struct {
	link model.DeepLink
}

// Options configures the root model.
type Options struct {
	Logger  *log.Logger
	Catalog []model.LabelPreset

	// DeepLink, when it names a task, opens that task on start.
	DeepLink model.DeepLink
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the board engine. The engine is only touched from Update.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	engine       *board.Engine
	logger       *log.Logger
	keys         *keys.KeyMap
	deepLink     model.DeepLink

	boardView   boardview.Model
	detail      detail.Model
	taskForm    taskform.Model
	labelView   labels.Model
	helpView    helpview.Model
	commandView command.Model

	notice string
	ready  bool
}

// New creates a new root application model around e.
func New(e *board.Engine, opts Options) Model {
	k := keys.DefaultKeyMap()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		currentView: ViewBoard,
		engine:      e,
		logger:      logger,
		keys:        k,
		deepLink:    opts.DeepLink,
		boardView:   boardview.New(e, k, opts.Catalog, 80, 24),
		detail:      detail.New(e, k, opts.Catalog, 80, 24),
		taskForm:    taskform.New(e, k, 80, 24),
		labelView:   labels.New(e, k, opts.Catalog, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
}

// Init delivers the pending deep link, if any.
func (m Model) Init() tea.Cmd {
	if m.deepLink.TaskID == "" {
		return nil
	}
	link := m.deepLink
	return func() tea.Msg { return deepLinkMsg{link: link} }
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.boardView.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.labelView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case deepLinkMsg:
		// The link is consumed once, whether or not it resolves.
		m.deepLink = model.DeepLink{}
		if m.openLink(msg.link) {
			return m, nil
		}
		m.notice = "Tarea no encontrada: " + msg.link.TaskID
		m.logger.Warn("deep link did not resolve", "task", msg.link.TaskID, "column", msg.link.ColumnID)
		return m, nil

	case boardview.OpenTaskMsg:
		if m.engine.OpenTask(msg.Column, msg.TaskID) {
			m.switchTo(ViewDetail)
			m.detail.Reset()
		}
		return m, nil

	case detail.BackMsg:
		if t, col, ok := m.engine.Selected(); ok {
			m.boardView.FocusTask(col, t.ID)
		}
		m.engine.CloseTask()
		m.switchTo(ViewBoard)
		return m, nil

	case detail.EditRequestMsg:
		cmd := m.taskForm.Start()
		if m.taskForm.Active() {
			m.switchTo(ViewEdit)
		}
		return m, cmd

	case detail.LabelsRequestMsg:
		m.labelView.Open()
		m.switchTo(ViewLabels)
		return m, nil

	case taskform.SavedMsg:
		m.notice = fmt.Sprintf("%s guardada en %s", msg.TaskID, columnTitle(msg.Column))
		m.boardView.FocusTask(msg.Column, msg.TaskID)
		m.switchTo(ViewDetail)
		m.detail.Refresh()
		return m, nil

	case taskform.CancelMsg:
		m.switchTo(ViewDetail)
		m.detail.Refresh()
		return m, nil

	case labels.CloseMsg:
		m.switchTo(ViewDetail)
		m.detail.Refresh()
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		m.notice = ""

		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewBoard && !m.boardView.Dragging() {
				return m, tea.Quit
			}

		case "?":
			if m.typing() {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.switchTo(ViewHelp)
			return m, nil

		case ":":
			if m.typing() || m.boardView.Dragging() {
				break
			}
			m.switchTo(ViewCommand)
			cmd := m.commandView.Focus()
			return m, cmd

		case "esc":
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// switchTo records the current view and activates next.
func (m *Model) switchTo(next ViewState) {
	if m.currentView == next {
		return
	}
	m.logger.Debug("view", "from", m.currentView, "to", next)
	m.previousView = m.currentView
	m.currentView = next
}

// toBoard closes any open task and shows the board.
func (m *Model) toBoard() {
	m.engine.CloseTask()
	m.currentView = ViewBoard
}

// typing reports whether a text field has focus, so printable global
// keys belong to it.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewEdit, ViewCommand:
		return true
	case ViewDetail:
		return m.detail.Prompting()
	case ViewLabels:
		return m.labelView.Editing()
	default:
		return false
	}
}

// openLink opens the linked task in the detail view.
func (m *Model) openLink(link model.DeepLink) bool {
	if !m.engine.OpenDeepLink(link) {
		return false
	}
	if t, col, ok := m.engine.Selected(); ok {
		m.boardView.FocusTask(col, t.ID)
	}
	m.switchTo(ViewDetail)
	m.detail.Reset()
	return true
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewLabels:
		m.labelView, cmd = m.labelView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	header := m.layout.RenderHeader("Tablero Kanban", m.boardStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBoard:
		return m.boardView.View()
	case ViewDetail:
		return m.detail.View()
	case ViewEdit:
		return m.taskForm.View()
	case ViewLabels:
		return m.labelView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// boardStatus summarizes the board for the header.
func (m Model) boardStatus() string {
	total := 0
	for _, tasks := range m.engine.Snapshot() {
		total += len(tasks)
	}
	s := fmt.Sprintf("%d tareas", total)
	if f := m.boardView.FilterSummary(); f != "" {
		s += " | " + f
	}
	return s
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? cerrar ayuda | esc volver"
	case ViewCommand:
		return "enter ejecutar | esc volver"
	case ViewDetail:
		if n := m.detail.Notice(); n != "" {
			return n
		}
		return "esc volver | e editar | a asignarme | c comentar | u adjuntar | t etiquetas | tab lista"
	case ViewEdit:
		return "enter guardar | ctrl+r restablecer | esc cancelar"
	case ViewLabels:
		return "espacio alternar | n nueva | esc volver"
	default:
		if n := m.boardView.Notice(); n != "" {
			return n
		}
		if m.boardView.Dragging() {
			return "h/l elegir columna | enter soltar | esc cancelar"
		}
		if m.boardView.Filter().Active() {
			return "1 prioridad | 2 responsable | 0 quitar filtros"
		}
		return "q salir | ? ayuda | n nueva | m mover | enter abrir | 1 prioridad | 2 responsable"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(input string) tea.Cmd {
	c, err := command.Parse(input)
	if err != nil {
		m.notice = theme.ErrorStyle.Render(err.Error())
		return nil
	}

	switch c.Kind {
	case command.KindNewTask:
		t := m.engine.AddTask()
		m.toBoard()
		m.boardView.FocusTask(model.ColumnPending, t.ID)
		m.notice = "Creada " + t.ID

	case command.KindFilterPriority:
		f := m.boardView.Filter()
		f.Priority = model.Priority(c.Arg)
		m.boardView.SetFilter(f)
		m.toBoard()

	case command.KindFilterAssignee:
		f := m.boardView.Filter()
		f.Assignee = c.Arg
		m.boardView.SetFilter(f)
		m.toBoard()

	case command.KindClearFilters:
		m.boardView.SetFilter(board.NewFilter())
		m.toBoard()

	case command.KindOpen:
		link := model.DeepLink{TaskID: c.Arg, ColumnID: c.Column}
		if !m.openLink(link) {
			m.notice = "Tarea no encontrada: " + c.Arg
		}

	case command.KindHelp:
		m.switchTo(ViewHelp)

	case command.KindQuit:
		return tea.Quit
	}
	return nil
}

func columnTitle(id model.ColumnID) string {
	if c, ok := model.LookupColumn(id); ok {
		return string(c.Title)
	}
	return string(id)
}
