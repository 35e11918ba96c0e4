package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/folio/internal/scrollspy"
)

// Catppuccin Mocha, as the rest of the jask tools use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorRed      lipgloss.Color = "#f38ba8"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorMantle   lipgloss.Color = "#181825"
)

// sectionAccents is indexed by catalog position.
var sectionAccents = []lipgloss.Color{
	colorBlue, colorGreen, colorPeach, colorMauve,
	colorTeal, colorYellow, colorPink, colorSapphire,
}

// accentFor is the colour marking a section while it is active. The header
// zone (no section) uses the neutral lavender.
func accentFor(c *scrollspy.Catalog, id scrollspy.SectionID) lipgloss.Color {
	i := c.Index(id)
	if i < 0 {
		return colorLavender
	}
	return sectionAccents[i%len(sectionAccents)]
}

var (
	navBarStyle     = lipgloss.NewStyle().Background(colorMantle)
	navItemStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Background(colorMantle)
	navTargetStyle  = navItemStyle.Underline(true)
	heroNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	heroTagStyle    = lipgloss.NewStyle().Foreground(colorSubtext1)
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subheadingStyle = lipgloss.NewStyle().Italic(true).Foreground(colorOverlay1)
	bodyStyle       = lipgloss.NewStyle().Foreground(colorSubtext1)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay1)
	statusStyle     = lipgloss.NewStyle().Foreground(colorSubtext1).Background(colorSurface1)
	errorStyle      = lipgloss.NewStyle().Foreground(colorRed).Background(colorSurface1)
)
