package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/folio/internal/scrollspy"
)

func (a *App) View() string {
	if !a.loaded {
		if a.status != "" {
			return errorStyle.Render(a.status)
		}
		return "loading..."
	}
	if a.width <= 0 {
		return ""
	}

	nav := a.renderNav()
	rows := a.viewportRows()
	top := a.scroll.row(a.rowPx())
	out := make([]string, 0, rows+2)
	for i := 0; i < rows; i++ {
		if a.navMode.Pinned() && i < len(nav) {
			out = append(out, nav[i])
			continue
		}
		idx := top + i
		if idx >= len(a.layout.lines) {
			out = append(out, "")
			continue
		}
		out = append(out, a.renderLine(a.layout.lines[idx], nav))
	}
	out = append(out, a.renderStatus(), a.renderFooter())
	return strings.Join(out, "\n")
}

// renderNav highlights the active section with its accent and underlines the
// target of an in-flight navigation.
func (a *App) renderNav() []string {
	labels := a.navLabels()
	st := a.engine.Status()
	var rows []string
	for _, idx := range navRowsFor(labels, a.width) {
		parts := make([]string, 0, len(idx))
		for _, i := range idx {
			s, _ := a.catalog.At(i)
			style := navItemStyle
			switch {
			case s.ID == st.CurrentSection:
				style = navItemStyle.Bold(true).Foreground(colorMantle).Background(a.accent)
			case st.IsNavigating && s.ID == st.TargetSection:
				style = navTargetStyle
			}
			parts = append(parts, style.Render(labels[i]))
		}
		line := " " + strings.Join(parts, navItemStyle.Render("  "))
		rows = append(rows, navBarStyle.Width(a.width).MaxWidth(a.width).MaxHeight(1).Render(line))
	}
	return rows
}

func (a *App) renderLine(l docLine, nav []string) string {
	const indent = "  "
	switch l.kind {
	case lineNav:
		if l.nav < len(nav) {
			return nav[l.nav]
		}
		return ""
	case lineHeroName:
		return indent + heroNameStyle.Render(l.text)
	case lineHeroTagline:
		return indent + heroTagStyle.Render(l.text)
	case lineTitle:
		if l.section == a.engine.Active().Section {
			return indent + titleStyle.Foreground(a.accent).Render("› "+l.text)
		}
		return indent + titleStyle.Foreground(colorSubtext1).Render(l.text)
	case lineHeading:
		return indent + headingStyle.Render(l.text)
	case lineSubheading:
		return indent + subheadingStyle.Render(l.text)
	case lineBody:
		return indent + bodyStyle.Render(l.text)
	case linePager:
		return indent + dimStyle.Render(l.text+"  (n/p)")
	case lineEnd:
		return dimStyle.Render(l.text)
	}
	return ""
}

// renderStatus shows the location, the navigation state and the body marker.
func (a *App) renderStatus() string {
	st := a.engine.Status()
	parts := []string{st.Location.String()}
	if st.IsNavigating {
		switch {
		case st.TargetSection != scrollspy.None && st.TargetSubPath != "":
			parts = append(parts, fmt.Sprintf("%s -> %s/%s", st.State, st.TargetSection, st.TargetSubPath))
		case st.TargetSection != scrollspy.None:
			parts = append(parts, fmt.Sprintf("%s -> %s", st.State, st.TargetSection))
		default:
			parts = append(parts, st.State.String())
		}
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(a.accent).Background(colorSurface1).Render(a.marker))
	if a.showTop {
		parts = append(parts, "t: back to top")
	}
	line := " " + strings.Join(parts, "  ")
	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		line += "  " + style.Render(a.status)
	}
	return statusStyle.Width(a.width).MaxWidth(a.width).MaxHeight(1).Render(line)
}

func (a *App) renderFooter() string {
	footer := a.help.View(a.keys)
	if a.mode == modeJump {
		footer = a.prompt.View() + "  " + a.help.View(promptKeys{a.keys})
	}
	return lipgloss.NewStyle().MaxWidth(a.width).MaxHeight(1).Render(footer)
}
