package command

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/nhle/kanban-board/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"nueva", Command{Kind: KindNewTask}},
		{"NEW", Command{Kind: KindNewTask}},
		{"limpiar", Command{Kind: KindClearFilters}},
		{"q", Command{Kind: KindQuit}},
		{"ayuda", Command{Kind: KindHelp}},
		{"abrir kb-298", Command{Kind: KindOpen, Arg: "KB-298"}},
		{"open KB-287 review", Command{Kind: KindOpen, Arg: "KB-287", Column: model.ColumnReview}},
		{"filtrar prioridad alta", Command{Kind: KindFilterPriority, Arg: "Alta"}},
		{"filter priority all", Command{Kind: KindFilterPriority, Arg: "all"}},
		{"filtrar responsable Marta Gómez", Command{Kind: KindFilterAssignee, Arg: "Marta Gómez"}},
		{"filtrar responsable sin asignar", Command{Kind: KindFilterAssignee, Arg: model.Unassigned}},
		{"filtrar responsable todos", Command{Kind: KindFilterAssignee, Arg: "all"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"borrar todo",
		"abrir",
		"abrir KB-1 archivo",
		"filtrar prioridad",
		"filtrar prioridad urgentísima",
		"filtrar color rojo",
	} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
	if _, err := Parse("borrar"); !errors.Is(err, ErrUnknown) {
		t.Errorf("unknown verb should wrap ErrUnknown, got %v", err)
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 20)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" nueva ")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd(); got != CommandMsg("nueva") {
		t.Errorf("got %v, want CommandMsg(nueva)", got)
	}
}
