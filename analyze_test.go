package analyzer

import (
	"testing"

	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
	"github.com/heavyql/analyzer/sqltype"
)

func mustCreateTable(t *testing.T, cat *catalog.MemCatalog, name string, cols ...catalog.ColumnDescriptor) {
	t.Helper()
	if err := cat.CreateTable(catalog.TableDescriptor{TableName: name, IsReady: true}, cols); err != nil {
		t.Fatalf("CreateTable(%q): %v", name, err)
	}
}

func col(name string, ty sqltype.Tag) catalog.ColumnDescriptor {
	return catalog.ColumnDescriptor{ColumnName: name, ColumnType: sqltype.TypeInfo{Type: ty}}
}

func analyzeSQL(t *testing.T, cat catalog.Catalog, sql string) (*AnalyzedQuery, error) {
	t.Helper()
	toks := compiler.NewLexer(sql).Lex()
	stmt, err := compiler.NewParser(toks).Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", sql, err)
	}
	return Analyze(cat, stmt)
}

// S1 - ambiguous column.
func TestAnalyzeAmbiguousColumn(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "r", col("a", sqltype.INT), col("b", sqltype.INT))
	mustCreateTable(t, cat, "s", col("a", sqltype.INT), col("c", sqltype.INT))

	_, err := analyzeSQL(t, cat, "SELECT a FROM r, s")
	if _, ok := err.(*AmbiguityError); !ok {
		t.Fatalf("expected *AmbiguityError, got %#v", err)
	}

	q, err := analyzeSQL(t, cat, "SELECT r.a FROM r, s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.TargetList) != 1 {
		t.Fatalf("expected 1 target, got %d", len(q.TargetList))
	}
	cv, ok := q.TargetList[0].Expr.(*ColumnVar)
	if !ok {
		t.Fatalf("expected *ColumnVar, got %T", q.TargetList[0].Expr)
	}
	if cv.RteIdx != 0 {
		t.Fatalf("expected rte_idx 0, got %d", cv.RteIdx)
	}
}

// S2 - integer literal narrowing.
func TestAnalyzeIntLiteralNarrowing(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("x", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT 1, 40000, 9999999999 FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantTags := []sqltype.Tag{sqltype.SMALLINT, sqltype.INT, sqltype.BIGINT}
	for i, want := range wantTags {
		c, ok := q.TargetList[i].Expr.(*Constant)
		if !ok {
			t.Fatalf("target %d: expected *Constant, got %T", i, q.TargetList[i].Expr)
		}
		if c.Type.Type != want {
			t.Fatalf("target %d: expected %s, got %s", i, want, c.Type.Type)
		}
	}
}

// S3 - BETWEEN expansion.
func TestAnalyzeBetween(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("x", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT x FROM t WHERE x BETWEEN 1 AND 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := q.WherePredicate.(*BinOper)
	if !ok || and.Op != "AND" {
		t.Fatalf("expected top-level AND BinOper, got %#v", q.WherePredicate)
	}
	ge, ok := and.Left.(*BinOper)
	if !ok || ge.Op != ">=" {
		t.Fatalf("expected >= on the left, got %#v", and.Left)
	}
	le, ok := and.Right.(*BinOper)
	if !ok || le.Op != "<=" {
		t.Fatalf("expected <= on the right, got %#v", and.Right)
	}
	if ge.Type.Type != sqltype.BOOLEAN || le.Type.Type != sqltype.BOOLEAN {
		t.Fatalf("expected both predicates boolean, got %#v and %#v", ge.Type, le.Type)
	}
	// The two operand subtrees must share no interior node (property 7).
	geArg := ge.Left.(*ColumnVar)
	leArg := le.Left.(*ColumnVar)
	if geArg == leArg {
		t.Fatalf("expected BETWEEN's two operand copies to be distinct nodes")
	}
}

// S4 - CASE type reconciliation.
func TestAnalyzeCaseReconciliation(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("b", sqltype.BOOLEAN))

	q, err := analyzeSQL(t, cat, "SELECT CASE WHEN b THEN 1 WHEN b THEN 2.5 ELSE NULL END FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ce, ok := q.TargetList[0].Expr.(*CaseExpr)
	if !ok {
		t.Fatalf("expected *CaseExpr, got %T", q.TargetList[0].Expr)
	}
	if ce.Type.Type != sqltype.NUMERIC {
		t.Fatalf("expected NUMERIC result type, got %s", ce.Type.Type)
	}
	for i, w := range ce.Whens {
		if w.Then.GetTypeInfo().Type != sqltype.NUMERIC {
			t.Fatalf("when %d: expected Then cast to NUMERIC, got %s", i, w.Then.GetTypeInfo().Type)
		}
	}
	elseConst, ok := ce.Else.(*Constant)
	if !ok || !elseConst.IsNull || elseConst.Type.Type != sqltype.NUMERIC {
		t.Fatalf("expected ELSE NULL retyped to NUMERIC, got %#v", ce.Else)
	}
}

// S5 - GROUP BY enforcement.
func TestAnalyzeGroupByEnforcement(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("a", sqltype.INT), col("b", sqltype.INT))

	_, err := analyzeSQL(t, cat, "SELECT a, SUM(b) FROM t")
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected *TypeError, got %#v", err)
	}

	q, err := analyzeSQL(t, cat, "SELECT a, SUM(b) FROM t GROUP BY a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.NumAggs != 1 {
		t.Fatalf("expected num_aggs 1, got %d", q.NumAggs)
	}
}

func TestAnalyzeLikeRequiresStrings(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("x", sqltype.INT))

	_, err := analyzeSQL(t, cat, "SELECT x FROM t WHERE x LIKE 'a%'")
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected *TypeError, got %#v", err)
	}
}

func TestAnalyzeUnknownTable(t *testing.T) {
	cat := catalog.NewMemCatalog()
	_, err := analyzeSQL(t, cat, "SELECT * FROM ghost")
	if _, ok := err.(*NameError); !ok {
		t.Fatalf("expected *NameError, got %#v", err)
	}
}

func TestAnalyzeNonMaterializedViewIsNotSupported(t *testing.T) {
	cat := catalog.NewMemCatalog()
	if err := cat.CreateTable(catalog.TableDescriptor{TableName: "v", IsView: true, IsMaterialized: false}, nil); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	_, err := analyzeSQL(t, cat, "SELECT * FROM v")
	if _, ok := err.(*NotSupportedError); !ok {
		t.Fatalf("expected *NotSupportedError, got %#v", err)
	}
}

func TestAnalyzeSelectStarExpansion(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("a", sqltype.INT), col("b", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT * FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.TargetList) != 2 || q.TargetList[0].ResName != "a" || q.TargetList[1].ResName != "b" {
		t.Fatalf("unexpected expansion: %+v", q.TargetList)
	}
}

func TestAnalyzeQualifiedStarExpansion(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "r", col("a", sqltype.INT))
	mustCreateTable(t, cat, "s", col("c", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT r.* FROM r, s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.TargetList) != 1 || q.TargetList[0].ResName != "a" {
		t.Fatalf("unexpected expansion: %+v", q.TargetList)
	}
}

func TestAnalyzeUnionAll(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("a", sqltype.INT))
	mustCreateTable(t, cat, "u", col("a", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT a FROM t UNION ALL SELECT a FROM u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.NextQuery == nil || !q.IsUnionAll {
		t.Fatalf("expected a linked union-all next query, got %+v", q)
	}
}

func TestAnalyzeOrderByOrdinalAndName(t *testing.T) {
	cat := catalog.NewMemCatalog()
	mustCreateTable(t, cat, "t", col("a", sqltype.INT), col("b", sqltype.INT))

	q, err := analyzeSQL(t, cat, "SELECT a, b FROM t ORDER BY 2 DESC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.OrderBy) != 1 || q.OrderBy[0].TleIndex != 2 || !q.OrderBy[0].IsDesc {
		t.Fatalf("unexpected order by: %+v", q.OrderBy)
	}

	q, err = analyzeSQL(t, cat, "SELECT a, b FROM t ORDER BY b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.OrderBy) != 1 || q.OrderBy[0].TleIndex != 2 {
		t.Fatalf("unexpected order by: %+v", q.OrderBy)
	}

	_, err = analyzeSQL(t, cat, "SELECT a, b FROM t ORDER BY ghost")
	if _, ok := err.(*NameError); !ok {
		t.Fatalf("expected *NameError, got %#v", err)
	}
}
