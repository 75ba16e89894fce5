package boardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/theme"
)

// cardHeight is the number of lines a rendered card takes, borders included.
const cardHeight = 5

// cardState selects the frame used for a card.
type cardState int

const (
	cardIdle cardState = iota
	cardSelected
	cardDragging
)

// renderCard draws one task card: title, identifier and priority, then
// owner avatar, due label and the first labels.
func renderCard(t model.Task, labels []string, catalog []model.LabelPreset, width int, state cardState) string {
	inner := max(width-4, 8)

	title := lipgloss.NewStyle().Bold(true).Render(truncate(t.Title, inner))

	meta := fmt.Sprintf("%s  %s",
		theme.DimmedStyle.Render(t.ID),
		theme.PriorityStyle(t.Priority).Render(string(t.Priority)),
	)

	initials := t.OwnerInitials
	if initials == "" {
		initials = model.Initials(t.Owner)
	}
	footer := theme.AvatarStyle.Render(initials) + " " + theme.DimmedStyle.Render(t.Due)
	if chips := renderChips(labels, catalog, 2); chips != "" {
		footer += " " + chips
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, meta, truncateStyled(footer, inner))

	style := theme.CardStyle
	switch state {
	case cardSelected:
		style = theme.SelectedCardStyle
	case cardDragging:
		style = theme.DraggingCardStyle
	}
	return style.Width(width - 2).Render(body)
}

// renderChips renders up to limit labels followed by a "+n" marker.
func renderChips(labels []string, catalog []model.LabelPreset, limit int) string {
	if len(labels) == 0 {
		return ""
	}
	shown := labels
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, l := range shown {
		parts = append(parts, theme.LabelStyle(l, catalog).Render("#"+l))
	}
	if extra := len(labels) - len(shown); extra > 0 {
		parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf("+%d", extra)))
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// truncateStyled caps an already styled line at width cells.
func truncateStyled(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
