package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Diag writes verbose diagnostics (unresolved bindings, parse warnings,
// scan summaries) to stderr. Silent unless verbose mode is on; colored
// only when stderr is a terminal and NO_COLOR is unset.
type Diag struct {
	w       *os.File
	verbose bool
	warn    *color.Color
	note    *color.Color
}

// NewDiag creates a Diag for the given stream, typically os.Stderr.
func NewDiag(w *os.File, verbose bool) *Diag {
	warn := color.New(color.FgYellow)
	note := color.New(color.Faint)
	if os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())) {
		warn.DisableColor()
		note.DisableColor()
	}
	return &Diag{w: w, verbose: verbose, warn: warn, note: note}
}

// Warnf prints a highlighted warning line.
func (d *Diag) Warnf(format string, args ...interface{}) {
	if !d.verbose {
		return
	}
	d.warn.Fprintf(d.w, "warning: "+format+"\n", args...)
}

// Notef prints a dimmed informational line.
func (d *Diag) Notef(format string, args ...interface{}) {
	if !d.verbose {
		return
	}
	d.note.Fprintf(d.w, format+"\n", args...)
}

// Enabled reports whether verbose diagnostics are on.
func (d *Diag) Enabled() bool {
	return d.verbose
}
