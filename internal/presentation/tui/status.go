package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func profileOf(w io.Writer) termenv.Profile {
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// PrintOutcome writes a one-line summary of o: a check mark and the result on
// success, the tag and normalized errors on failure.
func PrintOutcome(w io.Writer, o domain.Outcome) {
	p := profileOf(w)
	if o.Succeeded() {
		mark := p.String("✔").Foreground(p.Color("#22c55e")).Bold()
		fmt.Fprintf(w, "%s %v\n", mark, o.Result())
		return
	}
	mark := p.String("✘ " + string(o.Tag())).Foreground(p.Color("#f59e0b")).Bold()
	fmt.Fprintf(w, "%s %v\n", mark, o.Result())
}

// PrintError writes err in the error color.
func PrintError(w io.Writer, err error) {
	p := profileOf(w)
	fmt.Fprintln(w, p.String("error: "+err.Error()).Foreground(p.Color("#ef4444")))
}
