package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Open key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Board
	NewTask key.Binding
	Drag    key.Binding

	// Filters
	FilterPriority key.Binding
	FilterAssignee key.Binding
	ClearFilters   key.Binding

	// Detail actions
	Edit       key.Binding
	AssignMe   key.Binding
	Comment    key.Binding
	Upload     key.Binding
	Labels     key.Binding
	NextPane   key.Binding
	DeleteItem key.Binding

	// Form
	Reset key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "abajo"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "arriba"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "columna anterior"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "columna siguiente"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir / soltar"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "volver / cancelar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "salir"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "comandos"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nueva tarea"),
		),
		Drag: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mover tarjeta"),
		),
		FilterPriority: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "filtrar prioridad"),
		),
		FilterAssignee: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "filtrar responsable"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "quitar filtros"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "editar"),
		),
		AssignMe: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "asignarme"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comentar"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "adjuntar"),
		),
		Labels: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "etiquetas"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "comentarios / adjuntos"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "borrar elemento"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restablecer"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.Open, k.Drag,
		k.NewTask, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Open, k.Back, k.Quit},
		{k.NewTask, k.Drag, k.Command, k.Help},
		{k.FilterPriority, k.FilterAssignee, k.ClearFilters},
		{k.Edit, k.AssignMe, k.Comment, k.Upload, k.Labels, k.NextPane, k.DeleteItem, k.Reset},
	}
}
