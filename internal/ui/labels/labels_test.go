package labels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/keys"
	"github.com/nhle/kanban-board/internal/model"
)

func openPicker(t *testing.T, taskID string, column model.ColumnID) (Model, *board.Engine) {
	t.Helper()
	e := board.NewEngine(board.DemoSeed())
	if !e.OpenTask(column, taskID) {
		t.Fatalf("could not open %s", taskID)
	}
	catalog := model.PresetsFromNames([]string{"Frontend", "Backend", "Bug"})
	m := New(e, keys.DefaultKeyMap(), catalog, 80, 30)
	m.Open()
	return m, e
}

func TestToggleFromCatalog(t *testing.T) {
	m, e := openPicker(t, "KB-287", model.ColumnReview)
	sk := model.KeyFor("KB-287", model.ColumnReview)

	// Frontend is first and already set: toggling removes it.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if board.HasLabel(e.Labels(sk), "Frontend") {
		t.Error("Frontend should be removed")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !board.HasLabel(e.Labels(sk), "Backend") {
		t.Errorf("Backend should be added, labels = %v", e.Labels(sk))
	}
	if !strings.Contains(m.View(), "[x] #Backend") {
		t.Error("view should check Backend")
	}
}

func TestItemsIncludeCustomLabels(t *testing.T) {
	m, _ := openPicker(t, "KB-298", model.ColumnInProgress)

	var names []string
	for _, p := range m.items() {
		names = append(names, p.Name)
	}
	want := []string{"Frontend", "Backend", "Bug", "Urgente"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", names, want)
	}
}

func TestValidateLabel(t *testing.T) {
	existing := []string{"Frontend"}
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"Backend", false},
		{"   ", true},
		{"frontend", true},
		{" Frontend ", true},
	}
	for _, tt := range tests {
		err := validateLabel(tt.in, existing)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateLabel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestEscCloses(t *testing.T) {
	m, _ := openPicker(t, "KB-287", model.ColumnReview)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected CloseMsg")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Errorf("got %T, want CloseMsg", cmd())
	}
}

func TestNewOpensForm(t *testing.T) {
	m, _ := openPicker(t, "KB-287", model.ColumnReview)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.mode != modeForm {
		t.Fatal("n should open the custom label form")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeList {
		t.Error("esc should return to the list")
	}
}
