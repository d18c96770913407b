package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/ui/theme"
)

// Smallest terminal the forms and result cards fit in.
const (
	MinWidth  = 64
	MinHeight = 20
)

const brand = "✦ Luminar"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal pequeno demais!\n\nAumente para pelo menos\n%d x %d\n\nAtual: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar draws a full-width rounded strip around a single line.
func bar(line string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(line)
}

// innerWidth is the usable line width inside a bar.
func innerWidth(width int) int {
	return max(0, width-4)
}

// RenderHeader renders the brand on the left, the screen title centered and
// an optional status on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	w := innerWidth(width)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	// The title stays centered on the bar unless the status pushes it left.
	gapLeft := max(1, (w-cw)/2-lw)
	gapRight := max(1, w-lw-gapLeft-cw-rw)

	return bar(left+strings.Repeat(" ", gapLeft)+center+strings.Repeat(" ", gapRight)+right, width)
}

// RenderFooter renders key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	w := innerWidth(width)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > w {
			break
		}
		line = next
	}
	return bar(line, width)
}

// RenderFrame stacks header, content and footer, giving the content every
// row the bars leave free.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
