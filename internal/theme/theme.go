package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nhle/kanban-board/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle is the base style for a task card on the board.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle highlights the card under the cursor.
var SelectedCardStyle = CardStyle.
	BorderForeground(ColorBlue)

// DraggingCardStyle marks the card picked up by a keyboard drag.
var DraggingCardStyle = CardStyle.
	BorderStyle(lipgloss.DoubleBorder()).
	BorderForeground(ColorOrange)

// DropTargetStyle outlines the column a dragged card will land in.
var DropTargetStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(ColorOrange)

// ColumnStyle is the frame around an idle column.
var ColumnStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorSubtle)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ErrorStyle renders inline validation and I/O errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// LabelChipStyle renders a label on cards and in the detail view.
var LabelChipStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta)

// AvatarStyle renders owner initials.
var AvatarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// AccentColor maps an accent name to a terminal color. Unknown names are
// passed through as hex or ANSI codes.
func AccentColor(accent string) lipgloss.TerminalColor {
	switch accent {
	case "blue":
		return ColorBlue
	case "yellow":
		return ColorYellow
	case "magenta":
		return ColorMagenta
	case "green":
		return ColorGreen
	case "red":
		return ColorRed
	case "orange":
		return ColorOrange
	case "", "gray":
		return ColorGray
	default:
		return lipgloss.Color(accent)
	}
}

// ColumnHeaderStyle returns the title style for a board column.
func ColumnHeaderStyle(c model.Column) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(AccentColor(c.Accent)).
		Padding(0, 1)
}

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	if c, ok := model.ColumnForStatus(status); ok {
		return base.Foreground(AccentColor(c.Accent))
	}
	return base.Foreground(ColorGray)
}

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// LabelStyle colors a label chip from its catalog entry, if any.
func LabelStyle(label string, catalog []model.LabelPreset) lipgloss.Style {
	for _, p := range catalog {
		if model.SameLabel(p.Name, label) && p.Color != "" {
			return LabelChipStyle.Foreground(AccentColor(p.Color))
		}
	}
	return LabelChipStyle
}

// Theme names accepted by Apply.
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// Apply selects the named theme. "mono" drops all colors, for terminals
// or recordings where ANSI colors are unwanted. An empty name means
// default.
func Apply(name string) error {
	switch name {
	case "", ThemeDefault:
		return nil
	case ThemeMono:
		lipgloss.SetColorProfile(termenv.Ascii)
		return nil
	default:
		return fmt.Errorf("unknown theme %q", name)
	}
}
