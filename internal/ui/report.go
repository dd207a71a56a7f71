package ui

import (
	"fmt"
	"io"
	"strings"
)

// StatusLine renders "✓ name  detail" or "✗ name  detail". Names are padded
// to nameWidth so details line up.
func StatusLine(ok bool, name, detail string, nameWidth int) string {
	sym := SuccessStyle().Render(SymbolSuccess)
	if !ok {
		sym = ErrorStyle().Render(SymbolFail)
	}

	pad := ""
	if n := nameWidth - len(name); n > 0 {
		pad = strings.Repeat(" ", n)
	}

	line := sym + " " + name + pad
	if detail != "" {
		style := MutedStyle()
		if !ok {
			style = WarningStyle()
		}
		line += "  " + style.Render(detail)
	}
	return line
}

// Heading writes a section heading followed by a blank line.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w, HeadingStyle().Render(title))
	fmt.Fprintln(w)
}

// Summary renders "passed/total available" in the color of the outcome.
func Summary(passed, total int) string {
	text := fmt.Sprintf("%d/%d sensors available", passed, total)
	switch {
	case total > 0 && passed == total:
		return SuccessStyle().Render(text)
	case passed == 0:
		return ErrorStyle().Render(text)
	default:
		return WarningStyle().Render(text)
	}
}
