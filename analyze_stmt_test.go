package analyzer

import (
	"testing"

	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/sqltype"
)

func TestAnalyzeInsertValues(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("id", sqltype.INT), col("name", sqltype.VARCHAR))

	q, err := analyzeSQL(t, cat, "INSERT INTO t (id, name) VALUES (1, 'gud')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.StmtType != StmtInsert {
		t.Fatalf("expected StmtInsert, got %v", q.StmtType)
	}
	if len(q.TargetList) != 2 || len(q.ResultColList) != 2 {
		t.Fatalf("expected 2 targets and 2 result columns, got %+v", q)
	}
	if q.TargetList[0].Expr.GetTypeInfo().Type != sqltype.INT {
		t.Fatalf("expected id value cast to INT, got %s", q.TargetList[0].Expr.GetTypeInfo().Type)
	}
}

func TestAnalyzeInsertValuesColumnCountMismatchIsArgError(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("id", sqltype.INT), col("name", sqltype.VARCHAR))

	_, err := analyzeSQL(t, cat, "INSERT INTO t (id, name) VALUES (1)")
	if _, ok := err.(*ArgError); !ok {
		t.Fatalf("expected *ArgError, got %#v", err)
	}
}

func TestAnalyzeInsertValuesMultiRow(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("id", sqltype.INT), col("name", sqltype.VARCHAR))

	q, err := analyzeSQL(t, cat, "INSERT INTO t (id, name) VALUES (1, 'a'), (2, 'b')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.TargetList) != 2 {
		t.Fatalf("expected first row in TargetList, got %+v", q.TargetList)
	}
	if len(q.ExtraRows) != 1 || len(q.ExtraRows[0]) != 2 {
		t.Fatalf("expected 1 extra row of 2 values, got %+v", q.ExtraRows)
	}
}

func TestAnalyzeInsertValuesDefaultColumnOrder(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("id", sqltype.INT), col("name", sqltype.VARCHAR))

	q, err := analyzeSQL(t, cat, "INSERT INTO t VALUES (1, 'a')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.ResultColList) != 2 || q.ResultColList[0] != 1 || q.ResultColList[1] != 2 {
		t.Fatalf("expected result col list to default to catalog order, got %+v", q.ResultColList)
	}
}

func TestAnalyzeInsertQuery(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "src", col("a", sqltype.INT))
	mustCreateTable(t, cat, "dst", col("a", sqltype.NUMERIC))

	q, err := analyzeSQL(t, cat, "INSERT INTO dst (a) SELECT a FROM src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.StmtType != StmtInsert {
		t.Fatalf("expected StmtInsert, got %v", q.StmtType)
	}
	if q.TargetList[0].Expr.GetTypeInfo().Type != sqltype.NUMERIC {
		t.Fatalf("expected projected column cast to NUMERIC, got %s", q.TargetList[0].Expr.GetTypeInfo().Type)
	}
}

func TestAnalyzeInsertQueryColumnCountMismatchIsArgError(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "src", col("a", sqltype.INT), col("b", sqltype.INT))
	mustCreateTable(t, cat, "dst", col("a", sqltype.INT))

	_, err := analyzeSQL(t, cat, "INSERT INTO dst (a) SELECT a, b FROM src")
	if _, ok := err.(*ArgError); !ok {
		t.Fatalf("expected *ArgError, got %#v", err)
	}
}

func TestAnalyzeInsertIntoUnknownTable(t *testing.T) {
	cat := catalog.NewMemCatalog()
	_, err := analyzeSQL(t, cat, "INSERT INTO ghost VALUES (1)")
	if _, ok := err.(*NameError); !ok {
		t.Fatalf("expected *NameError, got %#v", err)
	}
}

func TestAnalyzeUpdateAndDeleteAreNotSupported(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("a", sqltype.INT))

	if _, err := analyzeSQL(t, cat, "UPDATE t SET a = 1"); true {
		if _, ok := err.(*NotSupportedError); !ok {
			t.Fatalf("expected *NotSupportedError for UPDATE, got %#v", err)
		}
	}
	if _, err := analyzeSQL(t, cat, "DELETE FROM t"); true {
		if _, ok := err.(*NotSupportedError); !ok {
			t.Fatalf("expected *NotSupportedError for DELETE, got %#v", err)
		}
	}
}
