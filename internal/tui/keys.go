package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
)

// keyOf reduces a terminal key event to a shortcut key. Control letters arrive
// as dedicated key codes and are mapped back to their letter.
func keyOf(event *tcell.EventKey) browser.Key {
	mods := event.Modifiers()
	key := browser.Key{
		Ctrl: mods&tcell.ModCtrl != 0,
		Meta: mods&(tcell.ModAlt|tcell.ModMeta) != 0,
	}

	switch k := event.Key(); {
	case k == tcell.KeyEscape:
		key.Name = "Escape"
	case k == tcell.KeyRune:
		key.Name = string(event.Rune())
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		key.Name = string(rune('a' + int(k-tcell.KeyCtrlA)))
		key.Ctrl = true
	default:
		key.Name = event.Name()
	}
	return key
}
