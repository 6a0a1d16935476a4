package analyzer

import (
	"testing"

	"github.com/heavyql/analyzer/sqltype"
)

func TestAddCastNoopWhenTypeMatches(t *testing.T) {
	cv := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}}
	got := cv.AddCast(sqltype.TypeInfo{Type: sqltype.INT})
	if got != cv {
		t.Fatalf("expected AddCast to return the same node when types match")
	}
}

func TestAddCastIsIdempotent(t *testing.T) {
	cv := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}}
	target := sqltype.TypeInfo{Type: sqltype.DOUBLE}
	once := cv.AddCast(target)
	twice := once.AddCast(target)
	if once.GetTypeInfo() != twice.GetTypeInfo() {
		t.Fatalf("expected idempotent AddCast, got %+v then %+v", once.GetTypeInfo(), twice.GetTypeInfo())
	}
	if _, ok := twice.(*UOper); !ok {
		t.Fatalf("expected the second AddCast to be a no-op returning the same CAST node, got %T", twice)
	}
}

func TestConstantAddCastRetypesInPlaceWhenRepresentable(t *testing.T) {
	c := &Constant{Type: sqltype.TypeInfo{Type: sqltype.SMALLINT}, Value: int64(1)}
	got := c.AddCast(sqltype.TypeInfo{Type: sqltype.NUMERIC, Dimension: 5, Scale: 1})
	rc, ok := got.(*Constant)
	if !ok {
		t.Fatalf("expected a retyped *Constant, got %T", got)
	}
	if rc.Type.Type != sqltype.NUMERIC {
		t.Fatalf("expected NUMERIC, got %s", rc.Type.Type)
	}
}

func TestConstantAddCastWrapsWhenNotRepresentable(t *testing.T) {
	c := &Constant{Type: sqltype.TypeInfo{Type: sqltype.INT}, Value: int64(1)}
	got := c.AddCast(sqltype.TypeInfo{Type: sqltype.VARCHAR, Dimension: 8})
	if _, ok := got.(*UOper); !ok {
		t.Fatalf("expected a CAST UOper wrapper, got %T", got)
	}
}

func TestDeepCopySharesNoInteriorNode(t *testing.T) {
	inner := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 1}
	b := &BinOper{
		Type:  sqltype.TypeInfo{Type: sqltype.BOOLEAN},
		Op:    "=",
		Left:  inner,
		Right: &Constant{Type: sqltype.TypeInfo{Type: sqltype.INT}, Value: int64(1)},
	}
	cp := b.DeepCopy().(*BinOper)
	if cp == b {
		t.Fatalf("expected a distinct root node")
	}
	if cp.Left == b.Left || cp.Right == b.Right {
		t.Fatalf("expected distinct child nodes, got shared interior node")
	}
	if !exprEqual(cp, b) {
		t.Fatalf("expected the copy to be structurally equal to the original")
	}
}

func TestCheckGroupByColumnCoveredByGroupByExpression(t *testing.T) {
	a := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 1}
	groupBy := []AnalyzedExpr{a}

	same := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 1}
	if !same.CheckGroupBy(groupBy) {
		t.Fatalf("expected a column matching a group-by entry to pass")
	}

	other := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 2}
	if other.CheckGroupBy(groupBy) {
		t.Fatalf("expected an unrelated column to fail check_group_by")
	}
}

func TestCheckGroupByAggregateAlwaysPasses(t *testing.T) {
	agg := &AggExpr{Type: sqltype.TypeInfo{Type: sqltype.BIGINT}, Agg: AggCount}
	if !agg.CheckGroupBy(nil) {
		t.Fatalf("expected an aggregate to always satisfy check_group_by")
	}
}

func TestCheckGroupByCompositeOfGroupByColumns(t *testing.T) {
	a := &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 1}
	groupBy := []AnalyzedExpr{a}

	expr := &UOper{
		Type: sqltype.TypeInfo{Type: sqltype.INT},
		Op:   OpUMinus,
		Operand: &ColumnVar{Type: sqltype.TypeInfo{Type: sqltype.INT}, TableID: 1, ColumnID: 1},
	}
	if !expr.CheckGroupBy(groupBy) {
		t.Fatalf("expected an expression built only from group-by columns to pass")
	}
}
