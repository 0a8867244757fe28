// Command loom is the CLI entry point: given a file argument it lexes,
// parses, and evaluates that file and exits nonzero on failure; given none
// it starts the interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loomlang/loom/internal/eval"
	"github.com/loomlang/loom/internal/parser"
	"github.com/loomlang/loom/internal/repl"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "loom [file]",
		Short:   "Loom is a small, dynamically typed scripting language",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return repl.New(version, "loom >>> ").Start(cmd.OutOrStdout())
			}
			return runFile(cmd, args[0])
		},
	}
	return cmd
}

// runFile reads and executes path, reporting lex/parse/eval failures to
// stderr in red. Unlike the REPL, a failure here is fatal: the caller
// turns the returned error into a nonzero exit code.
func runFile(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	program, err := parser.Parse(string(src))
	if err != nil {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%s\n", err)
		return err
	}

	env := eval.NewGlobalEnvironment(cmd.OutOrStdout())
	if _, err := eval.Eval(program, env); err != nil {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%s\n", err)
		return err
	}
	return nil
}
