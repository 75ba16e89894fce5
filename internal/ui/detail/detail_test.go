package detail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openDetail(t *testing.T, taskID string, column model.ColumnID) (Model, *board.Engine) {
	t.Helper()
	e := board.NewEngine(board.DemoSeed(), board.WithCurrentUser("Ana Pérez", "AP"))
	if !e.OpenTask(column, taskID) {
		t.Fatalf("could not open %s", taskID)
	}
	m := New(e, keys.DefaultKeyMap(), model.PresetsFromNames(model.DefaultLabelCatalog), 100, 40)
	m.Reset()
	return m, e
}

func TestViewShowsTask(t *testing.T) {
	m, _ := openDetail(t, "KB-287", model.ColumnReview)

	view := m.View()
	for _, want := range []string{"Exportar informes a CSV", "KB-287", "Marta Gómez", "informe-ejemplo.csv", "18.0 KB", "#Frontend"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAddComment(t *testing.T) {
	m, e := openDetail(t, "KB-301", model.ColumnPending)

	m, _ = m.Update(runes("c"))
	if !m.Prompting() {
		t.Fatal("c should open the comment prompt")
	}
	m, _ = m.Update(runes("Listo para revisar"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.Prompting() {
		t.Error("enter should close the prompt")
	}
	got := e.Comments(model.KeyFor("KB-301", model.ColumnPending))
	if len(got) != 1 || got[0].Text != "Listo para revisar" {
		t.Errorf("comments = %+v", got)
	}
}

func TestPromptEscDiscards(t *testing.T) {
	m, e := openDetail(t, "KB-301", model.ColumnPending)

	m, _ = m.Update(runes("c"))
	m, _ = m.Update(runes("borrador"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.Prompting() {
		t.Error("esc should close the prompt")
	}
	if got := e.Comments(model.KeyFor("KB-301", model.ColumnPending)); len(got) != 0 {
		t.Errorf("esc should not add a comment, got %d", len(got))
	}
}

func TestDeleteAttachmentFromPane(t *testing.T) {
	m, e := openDetail(t, "KB-287", model.ColumnReview)

	// tab twice focuses the attachment list.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(runes("d"))

	if got := e.Attachments(model.KeyFor("KB-287", model.ColumnReview)); len(got) != 0 {
		t.Errorf("attachment not removed: %+v", got)
	}
	if m.Notice() == "" {
		t.Error("expected a notice after deleting")
	}
}

func TestAssignMe(t *testing.T) {
	m, e := openDetail(t, "KB-305", model.ColumnPending)

	m, _ = m.Update(runes("a"))

	task, _, _ := e.Selected()
	if task.Owner != "Ana Pérez" || task.OwnerInitials != "AP" {
		t.Errorf("owner = %q/%q", task.Owner, task.OwnerInitials)
	}
	if !strings.Contains(m.View(), "Ana Pérez") {
		t.Error("view should show the new owner")
	}
}

func TestRequestMessages(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"edit", runes("e"), EditRequestMsg{}},
		{"labels", runes("t"), LabelsRequestMsg{}},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, BackMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := openDetail(t, "KB-287", model.ColumnReview)
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestReadAttachments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notas.txt")
	if err := os.WriteFile(path, []byte("hola"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "falta.txt")

	files, err := ReadAttachments(path + ", " + missing + ",")
	if len(files) != 1 || files[0].Name != "notas.txt" || files[0].Size != 4 {
		t.Errorf("files = %+v", files)
	}
	if err == nil || !strings.Contains(err.Error(), "falta.txt") {
		t.Errorf("err = %v, want mention of the missing file", err)
	}

	files, err = ReadAttachments("  ")
	if len(files) != 0 || err != nil {
		t.Errorf("blank input = %v, %v", files, err)
	}
}

func TestReferencesFromComments(t *testing.T) {
	m, e := openDetail(t, "KB-298", model.ColumnInProgress)

	if strings.Contains(m.View(), "Referencias") {
		t.Fatal("no references expected before commenting")
	}
	e.AddComment("Bloqueada por KB-287 y KB-999")
	m.Refresh()

	view := m.View()
	if !strings.Contains(view, "Referencias") || !strings.Contains(view, "KB-287") {
		t.Error("view should list the referenced task")
	}
	task, col, _ := e.Selected()
	refs := m.references(task, model.KeyFor(task.ID, col))
	if len(refs) != 1 || refs[0] != "KB-287" {
		t.Errorf("references = %v, want [KB-287]", refs)
	}
}
