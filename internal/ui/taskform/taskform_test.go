package taskform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
)

func startForm(t *testing.T, taskID string, column model.ColumnID) (Model, *board.Engine) {
	t.Helper()
	e := board.NewEngine(board.DemoSeed(), board.WithCurrentUser("Ana Pérez", "AP"))
	if !e.OpenTask(column, taskID) {
		t.Fatalf("could not open %s", taskID)
	}
	m := New(e, keys.DefaultKeyMap(), 100, 40)
	m.Start()
	if !m.Active() {
		t.Fatal("Start should build a form")
	}
	return m, e
}

func TestStartLoadsDraft(t *testing.T) {
	m, e := startForm(t, "KB-298", model.ColumnInProgress)

	if _, ok := e.Session().(board.Editing); !ok {
		t.Fatalf("session = %T, want Editing", e.Session())
	}
	if m.fb.title != "Integrar autenticación OAuth" || m.fb.owner != "Carlos Ruiz" {
		t.Errorf("bindings not loaded: %+v", *m.fb)
	}
	if m.Dirty() {
		t.Error("fresh form should be clean")
	}
}

func TestStartWithoutSelection(t *testing.T) {
	e := board.NewEngine(board.DemoSeed())
	m := New(e, keys.DefaultKeyMap(), 100, 40)
	m.Start()
	if m.Active() {
		t.Error("Start without a selection should do nothing")
	}
	if m.View() != "" {
		t.Error("view should be empty without a form")
	}
}

func TestEditMarksDirtyAndResetClears(t *testing.T) {
	m, e := startForm(t, "KB-301", model.ColumnPending)

	m.fb.title = "Diseñar ajustes v2"
	m.syncDraft()
	if !m.Dirty() {
		t.Fatal("changed title should mark the draft dirty")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Dirty() {
		t.Error("reset should leave a clean draft")
	}
	if m.fb.title != "Diseñar pantalla de ajustes" {
		t.Errorf("bindings not reloaded, title = %q", m.fb.title)
	}
	if _, ok := e.Session().(board.Editing); !ok {
		t.Error("reset should stay in Editing")
	}
}

func TestOwnerChangeDerivesInitials(t *testing.T) {
	m, e := startForm(t, "KB-305", model.ColumnPending)

	m.fb.owner = "Ana Pérez"
	m.syncDraft()

	draft, _ := e.Draft()
	if draft.OwnerInitials != "AP" {
		t.Errorf("initials = %q, want AP", draft.OwnerInitials)
	}
}

func TestSubmitMovesTask(t *testing.T) {
	m, e := startForm(t, "KB-287", model.ColumnReview)

	m.fb.status = model.StatusDone
	m.syncDraft()
	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected SavedMsg")
	}
	msg, ok := cmd().(SavedMsg)
	if !ok {
		t.Fatalf("got %T, want SavedMsg", cmd())
	}
	if msg.TaskID != "KB-287" || msg.Column != model.ColumnDone {
		t.Errorf("saved %+v, want KB-287 in done", msg)
	}
	if _, ok := e.Session().(board.Viewing); !ok {
		t.Errorf("session = %T, want Viewing", e.Session())
	}
	if m.Active() {
		t.Error("form should close after saving")
	}
}

func TestSubmitCleanStaysOpen(t *testing.T) {
	m, e := startForm(t, "KB-287", model.ColumnReview)

	m, _ = m.submit()
	if m.notice == "" {
		t.Error("clean submit should explain why nothing was saved")
	}
	if _, ok := e.Session().(board.Editing); !ok {
		t.Errorf("session = %T, want Editing", e.Session())
	}
}

func TestEscCancels(t *testing.T) {
	m, e := startForm(t, "KB-287", model.ColumnReview)
	m.fb.title = "Otro título"
	m.syncDraft()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected CancelMsg")
	}
	if _, ok := cmd().(CancelMsg); !ok {
		t.Errorf("got %T, want CancelMsg", cmd())
	}
	v, ok := e.Session().(board.Viewing)
	if !ok {
		t.Fatalf("session = %T, want Viewing", e.Session())
	}
	if v.Task.Title != "Exportar informes a CSV" {
		t.Errorf("cancel leaked the draft: %q", v.Task.Title)
	}
}

func TestOwnerOptionsUnique(t *testing.T) {
	m, _ := startForm(t, "KB-298", model.ColumnInProgress)

	seen := map[string]bool{}
	for _, o := range m.ownerOptions() {
		if seen[o.Value] {
			t.Errorf("duplicate owner option %q", o.Value)
		}
		seen[o.Value] = true
	}
	for _, want := range []string{model.Unassigned, "Ana Pérez", "Carlos Ruiz", "Marta Gómez"} {
		if !seen[want] {
			t.Errorf("missing owner option %q", want)
		}
	}
}
