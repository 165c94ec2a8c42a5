//go:build linux

package clipboard

import "os"

// platformTools prefers the Wayland tool when a compositor is running and
// otherwise falls back to the X11 tools.
func platformTools() [][]string {
	x11 := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		return x11
	}
	return append([][]string{{"wl-copy"}}, x11...)
}
