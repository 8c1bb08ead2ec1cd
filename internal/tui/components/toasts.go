package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nkvxness/shelftui/internal/notify"
	"github.com/nkvxness/shelftui/internal/tui/styles"
)

// toastIcons per severity, matching the severity order in notify.
var toastIcons = map[notify.Severity]string{
	notify.SeveritySuccess: "✓",
	notify.SeverityError:   "✗",
	notify.SeverityWarning: "!",
	notify.SeverityInfo:    "·",
}

func toastStyle(s notify.Severity) lipgloss.Style {
	switch s {
	case notify.SeveritySuccess:
		return styles.SuccessStyle
	case notify.SeverityError:
		return styles.ErrorStyle
	case notify.SeverityWarning:
		return styles.WarningStyle
	default:
		return styles.InfoStyle
	}
}

// Toasts renders the active notifications as a vertical stack in FIFO
// order, oldest on top.
func Toasts(notes []notify.Notification, maxWidth int) string {
	if len(notes) == 0 {
		return ""
	}

	var rendered []string
	for _, n := range notes {
		line := toastIcons[n.Severity] + " " + n.Message
		st := toastStyle(n.Severity).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.DimGray).
			Padding(0, 1)
		if maxWidth > 4 {
			st = st.MaxWidth(maxWidth)
		}
		rendered = append(rendered, st.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
