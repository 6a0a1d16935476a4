package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heavyql/analyzer/compiler"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <sql>",
		Short: "Lex and parse a single SQL statement, printing its pretty-printed form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := parseOne(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), compiler.StmtToString(stmt))
			return nil
		},
	}
}

func parseOne(sql string) (compiler.Stmt, error) {
	toks := compiler.NewLexer(sql).Lex()
	return compiler.NewParser(toks).Parse()
}
