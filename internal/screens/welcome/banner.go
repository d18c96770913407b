package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗   ██╗███╗   ███╗██╗███╗   ██╗ █████╗ ██████╗
 ██║     ██║   ██║████╗ ████║██║████╗  ██║██╔══██╗██╔══██╗
 ██║     ██║   ██║██╔████╔██║██║██╔██╗ ██║███████║██████╔╝
 ██║     ██║   ██║██║╚██╔╝██║██║██║╚██╗██║██╔══██║██╔══██╗
 ███████╗╚██████╔╝██║ ╚═╝ ██║██║██║ ╚████║██║  ██║██║  ██║
 ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "L U M I N A R"

// RenderBanner returns the LUMINAR banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
