package board

import (
	"errors"
	"fmt"

	"github.com/nhle/kanban-board/internal/model"
)

// Seed is the initial state handed to NewEngine.
type Seed struct {
	Columns     map[model.ColumnID][]model.Task
	Comments    map[model.SideKey][]model.Comment
	Attachments map[model.SideKey][]model.Attachment
	Labels      map[model.SideKey][]string
}

// EmptySeed returns a seed with four empty columns.
func EmptySeed() Seed {
	cols := make(map[model.ColumnID][]model.Task)
	for _, c := range model.Columns() {
		cols[c.ID] = nil
	}
	return Seed{
		Columns:     cols,
		Comments:    make(map[model.SideKey][]model.Comment),
		Attachments: make(map[model.SideKey][]model.Attachment),
		Labels:      make(map[model.SideKey][]string),
	}
}

// Validate reports every inconsistency in the seed: unknown columns,
// duplicated or empty IDs, statuses that disagree with their column, and
// side entries keyed to a column the task does not live in.
func (s Seed) Validate() error {
	var errs []error
	residency := make(map[string]model.ColumnID)

	for colID, tasks := range s.Columns {
		col, ok := model.LookupColumn(colID)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown column %q", colID))
			continue
		}
		for _, t := range tasks {
			if t.ID == "" {
				errs = append(errs, fmt.Errorf("task with empty id in column %q", colID))
				continue
			}
			if prev, dup := residency[t.ID]; dup {
				errs = append(errs, fmt.Errorf("task %s appears in %q and %q", t.ID, prev, colID))
				continue
			}
			residency[t.ID] = colID
			if t.Status != col.Title {
				errs = append(errs, fmt.Errorf("task %s has status %q but lives in %q", t.ID, t.Status, colID))
			}
		}
	}

	checkKey := func(store string, key model.SideKey) {
		if col, ok := residency[key.TaskID]; !ok || col != key.ColumnID {
			errs = append(errs, fmt.Errorf("%s entry %s does not match task residency", store, key))
		}
	}
	for k := range s.Comments {
		checkKey("comments", k)
	}
	for k := range s.Attachments {
		checkKey("attachments", k)
	}
	for k := range s.Labels {
		checkKey("labels", k)
	}

	return errors.Join(errs...)
}

// DemoSeed builds the demonstration board. A new value is built on every
// call.
func DemoSeed() Seed {
	s := EmptySeed()

	s.Columns[model.ColumnPending] = []model.Task{
		{
			ID:            "KB-301",
			Title:         "Diseñar pantalla de ajustes",
			Description:   "Bocetos de la nueva pantalla de ajustes del proyecto.",
			Owner:         "Lucía Fernández",
			OwnerInitials: "LF",
			Due:           "28 Oct",
			Status:        model.StatusPending,
			Priority:      model.PriorityMedium,
			CreatedAt:     "12 Oct 2026",
			UpdatedAt:     "14 Oct 2026",
		},
		{
			ID:            "KB-305",
			Title:         "Revisar dependencias del build",
			Owner:         model.Unassigned,
			OwnerInitials: model.UnassignedInitials,
			Due:           model.DefaultDueLabel,
			Status:        model.StatusPending,
			Priority:      model.PriorityLow,
			CreatedAt:     "15 Oct 2026",
			UpdatedAt:     "15 Oct 2026",
		},
	}
	s.Columns[model.ColumnInProgress] = []model.Task{
		{
			ID:            "KB-298",
			Title:         "Integrar autenticación OAuth",
			Description:   "Conectar el flujo de login con el proveedor corporativo.",
			Owner:         "Carlos Ruiz",
			OwnerInitials: "CR",
			Due:           "22 Oct",
			Status:        model.StatusInProgress,
			Priority:      model.PriorityHigh,
			CreatedAt:     "02 Oct 2026",
			UpdatedAt:     "16 Oct 2026",
		},
		{
			ID:            "KB-293",
			Title:         "Optimizar consultas del tablero",
			Owner:         "Lucía Fernández",
			OwnerInitials: "LF",
			Due:           "25 Oct",
			Status:        model.StatusInProgress,
			Priority:      model.PriorityMedium,
			CreatedAt:     "30 Sep 2026",
			UpdatedAt:     "13 Oct 2026",
		},
	}
	s.Columns[model.ColumnReview] = []model.Task{
		{
			ID:            "KB-287",
			Title:         "Exportar informes a CSV",
			Description:   "Botón de exportación en la página de informes.",
			Owner:         "Marta Gómez",
			OwnerInitials: "MG",
			Due:           "20 Oct",
			Status:        model.StatusReview,
			Priority:      model.PriorityMedium,
			CreatedAt:     "25 Sep 2026",
			UpdatedAt:     "17 Oct 2026",
		},
	}
	s.Columns[model.ColumnDone] = []model.Task{
		{
			ID:            "KB-280",
			Title:         "Configurar pipeline de CI",
			Owner:         "Carlos Ruiz",
			OwnerInitials: "CR",
			Due:           "10 Oct",
			Status:        model.StatusDone,
			Priority:      model.PriorityHigh,
			CreatedAt:     "18 Sep 2026",
			UpdatedAt:     "09 Oct 2026",
		},
	}

	s.Comments[model.KeyFor("KB-298", model.ColumnInProgress)] = []model.Comment{
		{ID: "c-298-1", Text: "Pendiente de credenciales del entorno de pruebas."},
	}
	s.Attachments[model.KeyFor("KB-287", model.ColumnReview)] = []model.Attachment{
		{ID: "a-287-1", Name: "informe-ejemplo.csv", Size: 18432},
	}
	s.Labels[model.KeyFor("KB-287", model.ColumnReview)] = []string{"Frontend"}
	s.Labels[model.KeyFor("KB-298", model.ColumnInProgress)] = []string{"Backend", "Urgente"}

	return s
}
