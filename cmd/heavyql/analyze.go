package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heavyql/analyzer"
)

func newAnalyzeCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "analyze <sql>",
		Short: "Analyze a single SQL statement against a catalog and print the resulting query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			stmt, err := parseOne(args[0])
			if err != nil {
				return err
			}
			q, err := analyzer.Analyze(cat, stmt)
			if err != nil {
				return err
			}
			printAnalyzedQuery(cmd.OutOrStdout(), q)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a `;`-separated DDL script seeding the catalog")
	return cmd
}

func printAnalyzedQuery(w io.Writer, q *analyzer.AnalyzedQuery) {
	fmt.Fprintf(w, "stmt_type: %v\n", q.StmtType)
	fmt.Fprintln(w, "range_table:")
	for i, rte := range q.RangeTable {
		fmt.Fprintf(w, "  [%d] %s (table %q)\n", i, rte.RangeVar, rte.TableDesc.TableName)
	}
	fmt.Fprintln(w, "target_list:")
	for i, te := range q.TargetList {
		fmt.Fprintf(w, "  [%d] %s: %s\n", i, te.ResName, te.Expr.GetTypeInfo().Type)
	}
	if q.WherePredicate != nil {
		fmt.Fprintf(w, "where: %s\n", q.WherePredicate.GetTypeInfo().Type)
	}
	if q.HavingPredicate != nil {
		fmt.Fprintf(w, "having: %s\n", q.HavingPredicate.GetTypeInfo().Type)
	}
	if q.ResultTableID != 0 {
		fmt.Fprintf(w, "insert_into_table_id: %d\n", q.ResultTableID)
		fmt.Fprintf(w, "result_col_list: %v\n", q.ResultColList)
	}
}
