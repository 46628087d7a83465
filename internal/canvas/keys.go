package canvas

// KeyAction is what a keyboard event should trigger.
type KeyAction int

const (
	KeyNone KeyAction = iota
	// KeyConfirmDelete opens the delete-confirmation flow for the selection.
	KeyConfirmDelete
	// KeyFocusSearch moves focus to the search input.
	KeyFocusSearch
)

// HandleKey maps a keyboard event onto an action. Delete and Backspace
// act only when something is selected; Ctrl/Cmd+K always focuses search.
func (c *Controller) HandleKey(key string, ctrlOrMeta bool) KeyAction {
	switch key {
	case "Delete", "Backspace":
		if c.Selection().Kind != SelectNone {
			return KeyConfirmDelete
		}
	case "k", "K":
		if ctrlOrMeta {
			return KeyFocusSearch
		}
	}
	return KeyNone
}
