package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

const bannerArt = ` ╔═╗┌┬┐┬ ┬┌┬┐┬ ┬  ╔═╗┌─┐┌┐┌┬┌─┐
 ╚═╗ │ │ │ ││└┬┘  ║ ╦├┤ │││├┤ 
 ╚═╝ ┴ └─┘─┴┘ ┴   ╚═╝└─┘┘└┘┴└─┘`

const bannerCompact = "S T U D Y G E N I E"

// Banner returns the StudyGenie title art, or a one-line fallback when
// compact is set.
func Banner(compact bool) string {
	if compact {
		return bannerCompact
	}
	return bannerArt
}

// RenderBanner returns the banner styled in the primary color. Uses the
// compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	return style.Render(Banner(width < 40))
}
