package geometry

// KeyEvent is a normalized keyboard event from the UI layer. EditingText is
// true when a text input has focus; shortcuts must not fire then.
type KeyEvent struct {
	Key         string
	Ctrl        bool
	Meta        bool
	Shift       bool
	EditingText bool
}

// Key routes global keyboard shortcuts: Escape clears selection and any
// pending gesture, Delete removes the selected entity, Ctrl/Cmd+Z undoes,
// Ctrl/Cmd+Y or Ctrl/Cmd+Shift+Z redoes. Returns true if the event was
// consumed.
func (e *Engine) Key(ev KeyEvent) bool {
	if ev.EditingText {
		return false
	}
	mod := ev.Ctrl || ev.Meta

	switch ev.Key {
	case "Escape":
		e.CancelPending()
		e.canvas.ClearSelection()
		return true
	case "Delete", "Backspace":
		e.canvas.DeleteSelection()
		return true
	case "z", "Z":
		if mod && ev.Shift {
			e.canvas.Redo()
			return true
		}
		if mod {
			e.canvas.Undo()
			return true
		}
	case "y", "Y":
		if mod {
			e.canvas.Redo()
			return true
		}
	case " ":
		e.SetSpaceHeld(true)
		return true
	}
	return false
}

// KeyUp tracks release of the space bar for pan gating.
func (e *Engine) KeyUp(key string) {
	if key == " " {
		e.SetSpaceHeld(false)
	}
}
