package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#737373")

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedText   = lipgloss.NewStyle().Foreground(muted)
	highlight   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	statusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	statusWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	statusErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	headerCell  = lipgloss.NewStyle().Foreground(muted).Bold(true)
	statBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	activeField = lipgloss.NewStyle().Foreground(accent)
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	keyBack    = key.NewBinding(key.WithKeys("esc"))
	keyEnter   = key.NewBinding(key.WithKeys("enter"))
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyTab     = key.NewBinding(key.WithKeys("tab"))
	keyBackTab = key.NewBinding(key.WithKeys("shift+tab"))
)

type helpPair struct {
	Key  string
	Desc string
}

func renderHeader(title, sub string) string {
	s := "  " + titleStyle.Render(title)
	if sub != "" {
		s += mutedText.Render(" / " + sub)
	}
	return s
}

func renderSeparator(width int) string {
	if width <= 0 {
		width = 60
	}
	return mutedText.Render(strings.Repeat("─", width))
}

func renderFooter(pairs []helpPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = highlight.Render(p.Key) + " " + mutedText.Render(p.Desc)
	}
	return "  " + strings.Join(parts, mutedText.Render("  •  "))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
