package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nhle/kanban-board/internal/model"
)

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

// checkBoardInvariants fails the test when a task appears in more than one
// column or its status disagrees with its column.
func checkBoardInvariants(t *testing.T, snap map[model.ColumnID][]model.Task) {
	t.Helper()
	seen := make(map[string]model.ColumnID)
	for _, col := range model.Columns() {
		for _, task := range snap[col.ID] {
			if prev, dup := seen[task.ID]; dup {
				t.Errorf("task %s in both %s and %s", task.ID, prev, col.ID)
			}
			seen[task.ID] = col.ID
			if task.Status != col.Title {
				t.Errorf("task %s in %s has status %q, want %q", task.ID, col.ID, task.Status, col.Title)
			}
		}
	}
}

func TestNewNormalizesSeed(t *testing.T) {
	b := New(map[model.ColumnID][]model.Task{
		model.ColumnPending: {
			{ID: "KB-1", Status: model.StatusDone},
			{ID: "KB-1"},
			{ID: ""},
		},
		model.ColumnDone: {{ID: "KB-1"}, {ID: "KB-7"}},
		"archive":        {{ID: "KB-9"}},
	}, "KB")

	snap := b.Snapshot()
	checkBoardInvariants(t, snap)
	if diff := cmp.Diff([]string{"KB-1"}, ids(snap[model.ColumnPending])); diff != "" {
		t.Errorf("pending mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"KB-7"}, ids(snap[model.ColumnDone])); diff != "" {
		t.Errorf("done mismatch (-want +got):\n%s", diff)
	}
	if b.Len() != 2 {
		t.Errorf("Len: got %d, want 2", b.Len())
	}
	if got := b.NextID(); got != "KB-8" {
		t.Errorf("NextID: got %s, want KB-8", got)
	}
}

func TestAddTask(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")

	first := b.AddTask("19 Oct 2026")
	second := b.AddTask("19 Oct 2026")

	if first.ID != "KB-306" || second.ID != "KB-307" {
		t.Fatalf("minted %s, %s; want KB-306, KB-307", first.ID, second.ID)
	}

	want := model.Task{
		ID:            "KB-306",
		Title:         model.DefaultTaskTitle,
		Owner:         model.Unassigned,
		OwnerInitials: model.UnassignedInitials,
		Due:           model.DefaultDueLabel,
		Status:        model.StatusPending,
		Priority:      model.PriorityLow,
		CreatedAt:     "19 Oct 2026",
		UpdatedAt:     "19 Oct 2026",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("new task mismatch (-want +got):\n%s", diff)
	}

	pending := ids(b.Tasks(model.ColumnPending))
	if diff := cmp.Diff([]string{"KB-301", "KB-305", "KB-306", "KB-307"}, pending); diff != "" {
		t.Errorf("pending order mismatch (-want +got):\n%s", diff)
	}
	checkBoardInvariants(t, b.Snapshot())
}

func TestAddTaskSkipsTakenIDs(t *testing.T) {
	b := New(map[model.ColumnID][]model.Task{
		model.ColumnPending: {{ID: "KB-1"}, {ID: "KB-2"}},
	}, "KB")

	if got := b.AddTask("hoy").ID; got != "KB-3" {
		t.Errorf("got %s, want KB-3", got)
	}

	empty := New(nil, "")
	if got := empty.AddTask("hoy").ID; got != "KB-1" {
		t.Errorf("empty board minted %s, want KB-1", got)
	}
}

func TestFind(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")

	tests := []struct {
		name    string
		id      string
		hint    model.ColumnID
		wantCol model.ColumnID
		wantOK  bool
	}{
		{name: "hint hit", id: "KB-298", hint: model.ColumnInProgress, wantCol: model.ColumnInProgress, wantOK: true},
		{name: "hint miss falls back to scan", id: "KB-298", hint: model.ColumnDone, wantCol: model.ColumnInProgress, wantOK: true},
		{name: "no hint", id: "KB-280", wantCol: model.ColumnDone, wantOK: true},
		{name: "unknown hint", id: "KB-287", hint: "backlog", wantCol: model.ColumnReview, wantOK: true},
		{name: "absent", id: "KB-999", hint: model.ColumnPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, col, ok := b.Find(tt.id, tt.hint)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if col != tt.wantCol {
				t.Errorf("column: got %s, want %s", col, tt.wantCol)
			}
			if task.ID != tt.id {
				t.Errorf("task: got %s, want %s", task.ID, tt.id)
			}
		})
	}
}

func TestMoveAcrossColumns(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")

	mv, ok := b.Move(model.ColumnInProgress, "KB-298", model.ColumnReview)
	if !ok {
		t.Fatal("expected move to succeed")
	}
	if !mv.CrossColumn() {
		t.Error("expected a cross-column move")
	}
	if mv.Task.Status != model.StatusReview {
		t.Errorf("status: got %q, want %q", mv.Task.Status, model.StatusReview)
	}
	if diff := cmp.Diff([]string{"KB-293"}, ids(b.Tasks(model.ColumnInProgress))); diff != "" {
		t.Errorf("in-progress mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"KB-287", "KB-298"}, ids(b.Tasks(model.ColumnReview))); diff != "" {
		t.Errorf("review mismatch (-want +got):\n%s", diff)
	}
	checkBoardInvariants(t, b.Snapshot())
}

func TestMoveWithinColumnReorders(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")

	mv, ok := b.Move(model.ColumnInProgress, "KB-298", model.ColumnInProgress)
	if !ok {
		t.Fatal("expected reorder to succeed")
	}
	if mv.CrossColumn() {
		t.Error("reorder reported as cross-column")
	}
	if diff := cmp.Diff([]string{"KB-293", "KB-298"}, ids(b.Tasks(model.ColumnInProgress))); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveStaleReferenceIsNoop(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")
	before := b.Snapshot()

	if _, ok := b.Move(model.ColumnPending, "KB-298", model.ColumnDone); ok {
		t.Error("move from wrong origin should be ignored")
	}
	if _, ok := b.Move(model.ColumnInProgress, "KB-298", "archive"); ok {
		t.Error("move to unknown column should be ignored")
	}
	if _, ok := b.Move(model.ColumnInProgress, "KB-404", model.ColumnDone); ok {
		t.Error("move of unknown task should be ignored")
	}

	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("board changed (-before +after):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	t.Run("status change moves task", func(t *testing.T) {
		b := New(DemoSeed().Columns, "KB")
		task, _, _ := b.Find("KB-287", model.ColumnReview)
		task.Status = model.StatusDone

		mv, ok := b.Replace(model.ColumnReview, task)
		if !ok {
			t.Fatal("expected replace to succeed")
		}
		if mv.From != model.ColumnReview || mv.To != model.ColumnDone {
			t.Errorf("move: got %s→%s, want review→done", mv.From, mv.To)
		}
		if len(b.Tasks(model.ColumnReview)) != 0 {
			t.Error("review column should be empty")
		}
		if diff := cmp.Diff([]string{"KB-280", "KB-287"}, ids(b.Tasks(model.ColumnDone))); diff != "" {
			t.Errorf("done mismatch (-want +got):\n%s", diff)
		}
		checkBoardInvariants(t, b.Snapshot())
	})

	t.Run("same status keeps position", func(t *testing.T) {
		b := New(DemoSeed().Columns, "KB")
		task, _, _ := b.Find("KB-298", "")
		task.Title = "OAuth con PKCE"

		mv, ok := b.Replace(model.ColumnInProgress, task)
		if !ok || mv.CrossColumn() {
			t.Fatalf("got ok=%v cross=%v, want in-place replace", ok, mv.CrossColumn())
		}
		got := b.Tasks(model.ColumnInProgress)
		if got[0].ID != "KB-298" || got[0].Title != "OAuth con PKCE" {
			t.Errorf("expected edited KB-298 first, got %+v", got[0])
		}
	})

	t.Run("unknown status falls back to current column", func(t *testing.T) {
		b := New(DemoSeed().Columns, "KB")
		task, _, _ := b.Find("KB-298", "")
		task.Status = "Bloqueada"

		mv, ok := b.Replace(model.ColumnInProgress, task)
		if !ok {
			t.Fatal("expected replace to succeed")
		}
		if !mv.Fallback || mv.To != model.ColumnInProgress {
			t.Errorf("got fallback=%v to=%s, want fallback into in-progress", mv.Fallback, mv.To)
		}
		checkBoardInvariants(t, b.Snapshot())
	})

	t.Run("stale hint still finds task", func(t *testing.T) {
		b := New(DemoSeed().Columns, "KB")
		task, _, _ := b.Find("KB-301", "")
		task.Status = model.StatusInProgress

		mv, ok := b.Replace(model.ColumnDone, task)
		if !ok || mv.From != model.ColumnPending || mv.To != model.ColumnInProgress {
			t.Errorf("got ok=%v %s→%s, want pending→in-progress", ok, mv.From, mv.To)
		}
	})

	t.Run("missing task is noop", func(t *testing.T) {
		b := New(DemoSeed().Columns, "KB")
		before := b.Snapshot()
		if _, ok := b.Replace(model.ColumnPending, model.Task{ID: "KB-999", Status: model.StatusDone}); ok {
			t.Error("expected replace of unknown task to fail")
		}
		if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
			t.Errorf("board changed (-before +after):\n%s", diff)
		}
	})
}

func TestUpdateKeepsIdentityAndStatus(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")

	got, ok := b.Update(model.ColumnReview, "KB-287", func(task *model.Task) {
		task.ID = "KB-1"
		task.Status = model.StatusDone
		task.Owner = "Ana Pérez"
	})
	if !ok {
		t.Fatal("expected update to succeed")
	}
	if got.ID != "KB-287" || got.Status != model.StatusReview || got.Owner != "Ana Pérez" {
		t.Errorf("unexpected record %+v", got)
	}
	if _, ok := b.Update(model.ColumnDone, "KB-287", func(*model.Task) {}); ok {
		t.Error("update in wrong column should fail")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")
	snap := b.Snapshot()
	snap[model.ColumnDone][0].Title = "mutated"
	snap[model.ColumnPending] = nil

	if b.Tasks(model.ColumnDone)[0].Title == "mutated" {
		t.Error("snapshot shares task storage with the board")
	}
	if len(b.Tasks(model.ColumnPending)) != 2 {
		t.Error("snapshot shares column map with the board")
	}
}

func TestOwners(t *testing.T) {
	b := New(DemoSeed().Columns, "KB")
	want := []string{"Lucía Fernández", "Carlos Ruiz", "Marta Gómez"}
	if diff := cmp.Diff(want, b.Owners()); diff != "" {
		t.Errorf("owners mismatch (-want +got):\n%s", diff)
	}
}
