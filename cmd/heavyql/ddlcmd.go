package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/ddl"
)

func newDDLCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "ddl <sql>",
		Short: "Run a single DDL statement against a catalog and print its resulting state",
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
			exec := ddl.NewExecutor(cat, catalog.Session{CurrentDBName: catalog.SystemDBName})
			if err := exec.Execute(stmt); err != nil {
				return err
			}
			printCatalogState(cmd.OutOrStdout(), cat)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a `;`-separated DDL script seeding the catalog")
	return cmd
}

func printCatalogState(w io.Writer, cat *catalog.MemSysCatalog) {
	for _, name := range cat.TableNames() {
		td, _ := cat.GetMetadataForTable(name)
		kind := "TABLE"
		if td.IsView {
			kind = "VIEW"
		}
		fmt.Fprintf(w, "%s %s (id=%d, ready=%v)\n", kind, name, td.TableID, td.IsReady)
		for _, cd := range cat.GetAllColumnMetadataForTable(td.TableID) {
			fmt.Fprintf(w, "  %s %s\n", cd.ColumnName, cd.ColumnType.Type)
		}
	}
}
