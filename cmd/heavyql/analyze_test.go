package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/sqltype"
)

func TestAnalyzeCommandEndToEnd(t *testing.T) {
	cat := catalog.NewMemSysCatalog()
	if err := cat.CreateTable(catalog.TableDescriptor{TableName: "t"}, []catalog.ColumnDescriptor{
		{ColumnName: "a", ColumnType: sqltype.TypeInfo{Type: sqltype.INT}},
	}); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	stmt, err := parseOne("SELECT a FROM t")
	if err != nil {
		t.Fatalf("parseOne: %v", err)
	}
	q, err := analyzer.Analyze(cat, stmt)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var buf bytes.Buffer
	printAnalyzedQuery(&buf, q)
	out := buf.String()
	if !strings.Contains(out, "stmt_type: SELECT") {
		t.Fatalf("expected stmt_type in output, got %q", out)
	}
	if !strings.Contains(out, "a: INT") {
		t.Fatalf("expected target list entry in output, got %q", out)
	}
}
