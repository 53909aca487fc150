package tui_test

import "github.com/charmbracelet/glamour"

func glamourNoTTY() []glamour.TermRendererOption {
	return []glamour.TermRendererOption{
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(0),
	}
}
