package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tessera ASCII art banner to w.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text, color string
	}{
		{"  _____                              ", "#818cf8"},
		{" |_   _|__  ___ ___  ___ _ __ __ _   ", "#a78bfa"},
		{"   | |/ _ \\/ __/ __|/ _ \\ '__/ _` |  ", "#c084fc"},
		{"   | |  __/\\__ \\__ \\  __/ | | (_| |  ", "#e879f9"},
		{"   |_|\\___||___/___/\\___|_|  \\__,_|  ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
