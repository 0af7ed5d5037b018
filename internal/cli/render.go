package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/stufflog/internal/journal"
)

// Terminal styles for text output.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// renderEntry formats one entry as a titled block.
func renderEntry(e journal.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("## "+e.Title))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("- Datetime:"), e.At)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("- Rating:"), e.Rating)
	if e.Comment != nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("- Comment:"), *e.Comment)
	}
	return b.String()
}

// renderEntries formats a result set with a match count header.
func renderEntries(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "No matching entries found."
	}

	var b strings.Builder
	noun := "entries"
	if len(entries) == 1 {
		noun = "entry"
	}
	fmt.Fprintf(&b, "%s\n\n", countStyle.Render(fmt.Sprintf("Found %d matching %s:", len(entries), noun)))
	for i, e := range entries {
		b.WriteString(renderEntry(e))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderError formats an error for text output, appending the detail hint
// when the error carries one (e.g. the duplicate-add edit suggestion).
func renderError(err error) string {
	var je *journal.Error
	if errors.As(err, &je) {
		out := errStyle.Render("Error:") + " " + je.Message + identifierSuffix(je)
		if je.Detail != "" {
			out += "\n" + hintStyle.Render(je.Detail)
		}
		return out
	}
	return errStyle.Render("Error:") + " " + err.Error()
}

func identifierSuffix(je *journal.Error) string {
	switch {
	case je.Title != "":
		return fmt.Sprintf(": %q", je.Title)
	case je.Category != "":
		return fmt.Sprintf(": %q", je.Category)
	case je.Path != "":
		return fmt.Sprintf(": %s", je.Path)
	default:
		return ""
	}
}
