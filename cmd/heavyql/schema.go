package main

import (
	"os"
	"strings"

	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
	"github.com/heavyql/analyzer/ddl"
)

// loadSchema runs every `;`-separated DDL statement in the file at path
// against a fresh in-memory system catalog, returning the catalog so a
// later `analyze`/`ddl` command can query it. An empty path returns an
// empty catalog.
func loadSchema(path string) (*catalog.MemSysCatalog, error) {
	cat := catalog.NewMemSysCatalog()
	if path == "" {
		return cat, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	exec := ddl.NewExecutor(cat, catalog.Session{CurrentDBName: catalog.SystemDBName})
	for _, stmtText := range splitStatements(string(raw)) {
		toks := compiler.NewLexer(stmtText).Lex()
		stmt, err := compiler.NewParser(toks).Parse()
		if err != nil {
			return nil, err
		}
		if err := exec.Execute(stmt); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
