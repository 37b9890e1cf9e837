package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/presentation"
	"github.com/liamcoop/churn/prediction"
)

var (
	accent = lipgloss.Color("#F97316")
	muted  = lipgloss.Color("#7B8794")

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	headingStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Width(18)
	cursorStyle      = lipgloss.NewStyle().Foreground(accent).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	buttonStyle      = lipgloss.NewStyle().Padding(0, 2).Bold(true).Background(accent).Foreground(lipgloss.Color("#FFFFFF"))

	resultBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(56)
	highStyle = resultBox.BorderForeground(lipgloss.Color("#DC2626"))
	lowStyle  = resultBox.BorderForeground(lipgloss.Color("#16A34A"))
	warnStyle = resultBox.BorderForeground(lipgloss.Color("#D97706"))
)

func renderMarkdown(src string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.overview)
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	left := m.renderPanel()
	right := m.renderResult()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))

	b.WriteString(helpStyle.Render("tab/shift+tab: section • ↑/↓: field • ←/→/space: change • enter: next / run • ctrl+r: run • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTabs() string {
	titles := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			titles[i] = activeTabStyle.Render(t.title)
		} else {
			titles[i] = inactiveTabStyle.Render(t.title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, titles...)
}

func (m *Model) renderPanel() string {
	t := m.tabs[m.active]
	if len(t.fields) == 0 {
		return m.technical + "\n" + m.renderButton(true)
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(t.heading))
	b.WriteString("\n")
	for i, in := range t.fields {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + labelStyle.Render(in.spec.Name) + renderWidget(in, i == m.cursor) + "\n")
	}
	b.WriteString("\n" + m.renderButton(m.cursor == len(t.fields)))
	return b.String()
}

func (m *Model) renderButton(focused bool) string {
	label := presentation.AnalyzeLabel
	if m.running {
		label = "ANALYZING..."
	}
	if focused {
		return cursorStyle.Render("> ") + buttonStyle.Render(label)
	}
	return "  " + buttonStyle.Faint(true).Render(label)
}

func renderWidget(in *input, focused bool) string {
	switch in.spec.Kind {
	case catalog.KindChoice:
		parts := make([]string, len(in.spec.Options))
		for i, opt := range in.spec.Options {
			if i == in.option {
				parts[i] = cursorStyle.Render("(" + opt + ")")
			} else {
				parts[i] = opt
			}
		}
		return strings.Join(parts, "  ")
	case catalog.KindBoolean:
		if in.on {
			return "[x]"
		}
		return "[ ]"
	case catalog.KindRange:
		return renderSlider(in.level, in.sliderN)
	default:
		if focused {
			return in.text.View()
		}
		return in.text.Value()
	}
}

func renderSlider(level, top int) string {
	const width = 24
	filled := 0
	if top > 0 {
		filled = min(level*width/top, width)
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "] " + strconv.Itoa(level)
}

func (m *Model) renderResult() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("📊 Live Analysis"))
	b.WriteString("\n" + presentation.ResultLabel + "\n")

	style := resultBox
	text := ""
	if m.result != nil {
		text = m.result.Text
		switch {
		case m.result.Failed():
			style = warnStyle
		case m.result.Result != nil && m.result.Result.RiskLevel == prediction.RiskHigh:
			style = highStyle
		default:
			style = lowStyle
		}
	}
	b.WriteString(style.Render(text))
	b.WriteString("\n\n🟢 Low Risk: < 50%\n🔴 High Risk: > 50%\n")
	return b.String()
}
