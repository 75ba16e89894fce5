package app

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/ui/command"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, opts Options) (Model, *board.Engine) {
	t.Helper()
	e := board.NewEngine(board.DemoSeed(), board.WithCurrentUser("Ana Pérez", "AP"))
	if opts.Catalog == nil {
		opts.Catalog = model.PresetsFromNames(model.DefaultLabelCatalog)
	}
	m := New(e, opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), e
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestDeepLinkOpensTask(t *testing.T) {
	m, e := newTestApp(t, Options{DeepLink: model.DeepLink{TaskID: "KB-287"}})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected the deep link command")
	}
	m, _ = send(t, m, cmd())

	if m.currentView != ViewDetail {
		t.Errorf("view = %v, want detail", m.currentView)
	}
	task, col, ok := e.Selected()
	if !ok || task.ID != "KB-287" || col != model.ColumnReview {
		t.Errorf("selected %s in %s", task.ID, col)
	}
	if m.deepLink.TaskID != "" {
		t.Error("deep link should be consumed")
	}
	if !strings.Contains(m.View(), "Exportar informes a CSV") {
		t.Error("detail view should show the linked task")
	}
}

func TestDeepLinkUnknownTask(t *testing.T) {
	var buf bytes.Buffer
	m, e := newTestApp(t, Options{
		Logger:   log.New(&buf),
		DeepLink: model.DeepLink{TaskID: "KB-999"},
	})

	m, _ = send(t, m, m.Init()())

	if m.currentView != ViewBoard {
		t.Errorf("view = %v, want board", m.currentView)
	}
	if _, ok := e.Session().(board.Closed); !ok {
		t.Errorf("session = %T, want Closed", e.Session())
	}
	if !strings.Contains(m.keyHints(), "KB-999") {
		t.Errorf("status bar %q should name the missing task", m.keyHints())
	}
	if !strings.Contains(buf.String(), "deep link did not resolve") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestNoDeepLinkNoInitCmd(t *testing.T) {
	m, _ := newTestApp(t, Options{})
	if m.Init() != nil {
		t.Error("Init should be nil without a deep link")
	}
}

func TestOpenAndCloseTask(t *testing.T) {
	m, e := newTestApp(t, Options{})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should open the card")
	}
	m, _ = send(t, m, cmd())
	if m.currentView != ViewDetail {
		t.Fatalf("view = %v, want detail", m.currentView)
	}
	if task, _, _ := e.Selected(); task.ID != "KB-301" {
		t.Errorf("selected %q, want KB-301", task.ID)
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should request back")
	}
	m, _ = send(t, m, cmd())
	if m.currentView != ViewBoard {
		t.Errorf("view = %v, want board", m.currentView)
	}
	if _, ok := e.Session().(board.Closed); !ok {
		t.Errorf("session = %T, want Closed", e.Session())
	}
}

func TestEditCancelReturnsToDetail(t *testing.T) {
	m, e := newTestApp(t, Options{DeepLink: model.DeepLink{TaskID: "KB-305"}})
	m, _ = send(t, m, m.Init()())

	m, cmd := send(t, m, runes("e"))
	m, _ = send(t, m, cmd())
	if m.currentView != ViewEdit {
		t.Fatalf("view = %v, want edit", m.currentView)
	}
	if _, ok := e.Session().(board.Editing); !ok {
		t.Fatalf("session = %T, want Editing", e.Session())
	}

	// q and ? are typed into the form, not handled globally.
	if !m.typing() {
		t.Error("edit view should own printable keys")
	}
	m, _ = send(t, m, runes("?"))
	if m.currentView != ViewEdit {
		t.Fatalf("? should not leave the form, view = %v", m.currentView)
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, cmd())
	if m.currentView != ViewDetail {
		t.Errorf("view = %v, want detail", m.currentView)
	}
	if _, ok := e.Session().(board.Viewing); !ok {
		t.Errorf("session = %T, want Viewing", e.Session())
	}
}

func TestCommandPaletteFilters(t *testing.T) {
	m, _ := newTestApp(t, Options{})

	m, _ = send(t, m, runes(":"))
	if m.currentView != ViewCommand {
		t.Fatalf("view = %v, want command", m.currentView)
	}
	m, _ = send(t, m, runes("filtrar prioridad alta"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit the command")
	}
	msg, ok := cmd().(command.CommandMsg)
	if !ok {
		t.Fatalf("got %T, want CommandMsg", cmd())
	}
	m, _ = send(t, m, msg)

	if m.currentView != ViewBoard {
		t.Errorf("view = %v, want board", m.currentView)
	}
	if got := m.boardView.Filter().Priority; got != model.PriorityHigh {
		t.Errorf("priority filter = %q, want Alta", got)
	}
	if !strings.Contains(m.boardStatus(), "prioridad: Alta") {
		t.Errorf("header %q should show the filter", m.boardStatus())
	}
}

func TestExecuteCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, m Model, e *board.Engine)
	}{
		{"new task", "nueva", func(t *testing.T, m Model, e *board.Engine) {
			if len(e.Tasks(model.ColumnPending)) != 3 {
				t.Error("expected a new pending task")
			}
			if !strings.Contains(m.notice, "KB-306") {
				t.Errorf("notice = %q", m.notice)
			}
		}},
		{"open", "abrir kb-298", func(t *testing.T, m Model, e *board.Engine) {
			if m.currentView != ViewDetail {
				t.Errorf("view = %v, want detail", m.currentView)
			}
			if task, _, _ := e.Selected(); task.ID != "KB-298" {
				t.Errorf("selected %q", task.ID)
			}
		}},
		{"open missing", "abrir KB-1", func(t *testing.T, m Model, e *board.Engine) {
			if !strings.Contains(m.notice, "KB-1") {
				t.Errorf("notice = %q", m.notice)
			}
		}},
		{"unknown", "borrar", func(t *testing.T, m Model, e *board.Engine) {
			if !strings.Contains(m.notice, "desconocido") {
				t.Errorf("notice = %q", m.notice)
			}
		}},
		{"assignee", "filtrar responsable sin asignar", func(t *testing.T, m Model, e *board.Engine) {
			if m.boardView.Filter().Assignee != model.Unassigned {
				t.Errorf("assignee = %q", m.boardView.Filter().Assignee)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, e := newTestApp(t, Options{})
			m.executeCommand(tt.input)
			tt.check(t, m, e)
		})
	}
}

func TestQuitOnlyFromBoard(t *testing.T) {
	m, _ := newTestApp(t, Options{})

	_, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q on the board should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want QuitMsg", cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestApp(t, Options{})

	m, _ = send(t, m, runes("?"))
	if m.currentView != ViewHelp {
		t.Fatalf("view = %v, want help", m.currentView)
	}
	if !strings.Contains(m.View(), "Atajos de teclado") {
		t.Error("help view should render its title")
	}
	m, _ = send(t, m, runes("?"))
	if m.currentView != ViewBoard {
		t.Errorf("view = %v, want board", m.currentView)
	}
}
