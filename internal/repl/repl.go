// Package repl implements Loom's interactive Read-Eval-Print Loop: line
// editing and history via readline, colored diagnostics via color, and a
// single environment kept alive across the whole session so bindings and
// watches from one line are visible to the next.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/loomlang/loom/internal/eval"
	"github.com/loomlang/loom/internal/object"
	"github.com/loomlang/loom/internal/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `
  _
 | | ___   ___  _ __ ___
 | |/ _ \ / _ \| '_ ' _ \
 | | (_) | (_) | | | | | |
 |_|\___/ \___/|_| |_| |_|
`

// Repl holds the display configuration for an interactive session.
type Repl struct {
	Version string
	Prompt  string
	Line    string
}

// New returns a Repl with the given version banner and prompt.
func New(version, prompt string) *Repl {
	return &Repl{Version: version, Prompt: prompt, Line: strings.Repeat("-", 48)}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "Loom %s\n", r.Version)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type an expression and press enter.")
	cyanColor.Fprintln(w, "Type '.exit' to quit, up/down arrows for history.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop until the user exits or sends EOF. Every line is
// lexed, parsed, and evaluated against the same environment, so state
// (including watch bindings) carries across lines exactly as it would
// across statements in a single file.
func (r *Repl) Start(out io.Writer) error {
	r.printBanner(out)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	env := eval.NewGlobalEnvironment(out)

	for {
		line, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good bye!\n"))
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			out.Write([]byte("Good bye!\n"))
			return nil
		}
		rl.SaveHistory(line)

		r.evalLine(out, line, env)
	}
}

// evalLine parses and evaluates one line against env, printing the result
// or error. Unlike file mode, a failing line never exits the loop.
func (r *Repl) evalLine(out io.Writer, line string, env *object.Environment) {
	program, err := parser.Parse(line)
	if err != nil {
		redColor.Fprintf(out, "%s\n", err)
		return
	}

	value, err := eval.Eval(program, env)
	if err != nil {
		redColor.Fprintf(out, "%s\n", err)
		return
	}

	switch v := value.(type) {
	case *object.None:
		return
	case *object.Return:
		yellowColor.Fprintf(out, "%s\n", v.Value.String())
	case *object.BlockReturn:
		yellowColor.Fprintf(out, "%s\n", v.Value.String())
	default:
		yellowColor.Fprintf(out, "%s\n", v.String())
	}
}
