// Command heavyql is a non-interactive front end over the analyzer: it
// parses, analyzes, or runs DDL for a single SQL statement and prints the
// result, then exits. It is deliberately not a REPL (spec.md §1 places an
// interactive CLI out of scope; see DESIGN.md's note on why
// golang.org/x/term has nothing to attach to here).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heavyql/analyzer"
)

func main() {
	root := &cobra.Command{
		Use:           "heavyql",
		Short:         "Parse, analyze, or run DDL for a single SQL statement",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newAnalyzeCmd(), newDDLCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "heavyql:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode mirrors spec.md §1.1's "the CLI exits 2 on NameError/TypeError/
// ... and 1 on anything else", recovered with errors.As rather than an
// error-code enum, matching the original's exception-type dispatch.
func exitCode(err error) int {
	for _, isKind := range []func(error) bool{
		func(err error) bool { var e *analyzer.NameError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.AmbiguityError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.TypeError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.ArgError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.ExistsError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.MissingError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.NotSupportedError; return errors.As(err, &e) },
		func(err error) bool { var e *analyzer.PermissionError; return errors.As(err, &e) },
	} {
		if isKind(err) {
			return 2
		}
	}
	return 1
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}
