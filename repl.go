package calc

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// REPL prints the results of a Session's statements as they are evaluated.
type REPL struct {
	// Session is the session to run.
	Session *Session
	// Out receives prompts and results.
	Out io.Writer
	// Diag receives error messages. If nil, errors go to Out.
	Diag io.Writer
	// Prompt is written to Out before each statement.
	Prompt string
	// Format is the fmt verb for results, e.g. "%g". If empty, "%g" is used.
	Format string
	// Color renders error messages. If nil, they are written plainly.
	Color *color.Color
}

// Run runs the session until it quits or its input ends. The result is
// non-nil only if the input could not be read.
func (r *REPL) Run() error {
	verb := r.Format
	if verb == "" {
		verb = "%g"
	}
	verb = "= " + verb + "\n"
	diag := r.Diag
	if diag == nil {
		diag = r.Out
	}
	prompt := func() {
		io.WriteString(r.Out, r.Prompt)
	}
	emit := func(v float64, err error) {
		if err == nil {
			fmt.Fprintf(r.Out, verb, v)
			return
		}
		if r.Color != nil {
			r.Color.Fprintln(diag, "error:", err)
			return
		}
		fmt.Fprintln(diag, "error:", err)
	}
	return r.Session.Run(prompt, emit)
}

// DiagColor is the default color for error messages. Until EnableColor or
// DisableColor is called on it, it is used only when stdout is a terminal.
func DiagColor() *color.Color {
	return color.New(color.FgRed, color.Bold)
}
