package components

import "github.com/abhisek/luminar/internal/ui/theme"

// ButtonState selects how a button is drawn.
type ButtonState int

const (
	ButtonReady ButtonState = iota
	ButtonBusy
)

// SubmitButton renders the action button of a form or result card. Busy
// buttons show a waiting label in place of the action.
func SubmitButton(label string, state ButtonState) string {
	if state == ButtonBusy {
		return theme.ButtonInactive.Render("Aguarde...")
	}
	return theme.ButtonActive.Render("▸ " + label)
}
