package browser

import "strings"

// Key is a key press reduced to what the shortcut table needs.
type Key struct {
	Name string
	Ctrl bool
	Meta bool
}

type shortcut struct {
	match  func(route string, key Key) bool
	target string
}

var shortcuts = []shortcut{
	// Ctrl/Cmd+N opens the add form.
	{
		match: func(_ string, key Key) bool {
			return (key.Ctrl || key.Meta) && strings.EqualFold(key.Name, "n")
		},
		target: RouteAdd,
	},
	// Escape goes back to the list.
	{
		match: func(route string, key Key) bool {
			return key.Name == "Escape" && route != RouteList
		},
		target: RouteList,
	},
}

// ResolveShortcut returns the route a key press navigates to from route.
func ResolveShortcut(route string, key Key) (string, bool) {
	for _, s := range shortcuts {
		if s.match(route, key) {
			return s.target, true
		}
	}
	return "", false
}
