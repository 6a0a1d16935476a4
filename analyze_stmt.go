package analyzer

import (
	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
	"github.com/heavyql/analyzer/sqltype"
)

// Analyze is the package's entry point: it dispatches a parsed statement
// to the right analyzer and returns the AnalyzedQuery the planner would
// consume (spec.md §4.2, §6.3). DDL statements are not handled here; they
// go through the ddl package's executor instead (spec.md §4.3).
func Analyze(cat catalog.Catalog, stmt compiler.Stmt) (*AnalyzedQuery, error) {
	switch s := stmt.(type) {
	case *compiler.SelectStmt:
		return analyzeSelectStmt(cat, s)
	case *compiler.InsertValuesStmt:
		return analyzeInsertValuesStmt(cat, s)
	case *compiler.InsertQueryStmt:
		return analyzeInsertQueryStmt(cat, s)
	case *compiler.UpdateStmt:
		return nil, NotSupportedErrorf("UPDATE is not supported")
	case *compiler.DeleteStmt:
		return nil, NotSupportedErrorf("DELETE is not supported")
	}
	return nil, NotSupportedErrorf("%T is not a DML statement the analyzer handles", stmt)
}

func analyzeSelectStmt(cat catalog.Catalog, s *compiler.SelectStmt) (*AnalyzedQuery, error) {
	q, err := analyzeQueryStmt(cat, s.Query)
	if err != nil {
		return nil, err
	}
	q.Limit = s.Limit
	q.Offset = s.Offset
	for _, oe := range s.OrderBy {
		idx, err := resolveOrderIndex(q, oe.Expr)
		if err != nil {
			return nil, err
		}
		q.OrderBy = append(q.OrderBy, OrderEntry{TleIndex: idx, IsDesc: oe.Desc})
	}
	return q, nil
}

// analyzeQueryStmt dispatches the query-expression half of a SelectStmt:
// a single QuerySpec, or a UnionQuery chaining several.
func analyzeQueryStmt(cat catalog.Catalog, s compiler.Stmt) (*AnalyzedQuery, error) {
	switch n := s.(type) {
	case *compiler.QuerySpec:
		return analyzeQuerySpec(cat, n)
	case *compiler.UnionQuery:
		return analyzeUnionQuery(cat, n)
	}
	return nil, InternalErrorf("unexpected query expression type %T", s)
}

func analyzeUnionQuery(cat catalog.Catalog, u *compiler.UnionQuery) (*AnalyzedQuery, error) {
	left, err := analyzeQueryStmt(cat, u.Left)
	if err != nil {
		return nil, err
	}
	rightSpec, ok := u.Right.(*compiler.QuerySpec)
	if !ok {
		return nil, InternalErrorf("UNION right-hand side must be a query spec, got %T", u.Right)
	}
	right, err := analyzeQuerySpec(cat, rightSpec)
	if err != nil {
		return nil, err
	}
	left.NextQuery = right
	left.IsUnionAll = u.UnionAll
	return left, nil
}

func resolveOrderIndex(q *AnalyzedQuery, e compiler.Expr) (int, error) {
	if il, ok := e.(*compiler.IntLiteral); ok {
		idx := int(il.Value)
		if idx < 1 || idx > len(q.TargetList) {
			return 0, NameErrorf("ORDER BY position %d is out of range", idx)
		}
		return idx, nil
	}
	if cr, ok := e.(*compiler.ColumnRef); ok && !cr.All && cr.Table == "" {
		for i, te := range q.TargetList {
			if te.ResName == cr.Column {
				return i + 1, nil
			}
		}
		return 0, NameErrorf("ORDER BY column %q does not appear in the select list", cr.Column)
	}
	return 0, NameErrorf("ORDER BY entry must be a target-list position or a select-list column name")
}

// analyzeQuerySpec runs the fixed FROM -> SELECT -> WHERE -> GROUP BY ->
// HAVING clause order spec.md §4.2 and §5 require.
func analyzeQuerySpec(cat catalog.Catalog, qs *compiler.QuerySpec) (*AnalyzedQuery, error) {
	q := NewAnalyzedQuery(StmtSelect)
	q.IsDistinct = qs.Distinct

	for _, tr := range qs.From {
		td, ok := cat.GetMetadataForTable(tr.TableName)
		if !ok {
			return nil, NameErrorf("table %q does not exist", tr.TableName)
		}
		if td.IsView && !td.IsMaterialized {
			return nil, NotSupportedErrorf("view %q is not materialized and cannot be read", tr.TableName)
		}
		rangeVar := tr.RangeVar
		if rangeVar == "" {
			rangeVar = tr.TableName
		}
		q.RangeTable = append(q.RangeTable, RangeTblEntry{RangeVar: rangeVar, TableDesc: td})
	}

	if len(qs.ResultColumns) == 0 {
		for i := range q.RangeTable {
			expandRte(cat, q, i)
		}
	}
	for _, rc := range qs.ResultColumns {
		if rc.All {
			for i := range q.RangeTable {
				expandRte(cat, q, i)
			}
			continue
		}
		if rc.AllTable != "" {
			rteIdx, ok := q.rteByRangeVar(rc.AllTable)
			if !ok {
				return nil, NameErrorf("range variable %q does not exist", rc.AllTable)
			}
			expandRte(cat, q, rteIdx)
			continue
		}
		expr, err := analyzeExpr(cat, q, rc.Expression)
		if err != nil {
			return nil, err
		}
		resName := rc.Alias
		if resName == "" {
			if cr, ok := rc.Expression.(*compiler.ColumnRef); ok && !cr.All {
				resName = cr.Column
			}
		}
		q.TargetList = append(q.TargetList, TargetEntry{ResName: resName, Expr: expr})
	}

	if qs.Where != nil {
		w, err := analyzeExpr(cat, q, qs.Where)
		if err != nil {
			return nil, err
		}
		if w.GetTypeInfo().Type != sqltype.BOOLEAN {
			return nil, TypeErrorf("WHERE must be boolean")
		}
		q.WherePredicate = w
	}

	for _, g := range qs.GroupBy {
		ge, err := analyzeExpr(cat, q, g)
		if err != nil {
			return nil, err
		}
		q.GroupBy = append(q.GroupBy, ge)
	}
	if q.NumAggs > 0 || len(q.GroupBy) > 0 {
		for _, te := range q.TargetList {
			if !te.Expr.CheckGroupBy(q.GroupBy) {
				label := te.ResName
				if label == "" {
					label = "<expr>"
				}
				return nil, TypeErrorf("column %q must appear in GROUP BY or be used inside an aggregate", label)
			}
		}
	}

	if qs.Having != nil {
		h, err := analyzeExpr(cat, q, qs.Having)
		if err != nil {
			return nil, err
		}
		if h.GetTypeInfo().Type != sqltype.BOOLEAN {
			return nil, TypeErrorf("HAVING must be boolean")
		}
		if (q.NumAggs > 0 || len(q.GroupBy) > 0) && !h.CheckGroupBy(q.GroupBy) {
			return nil, TypeErrorf("HAVING clause must be covered by GROUP BY or aggregates")
		}
		q.HavingPredicate = h
	}

	return q, nil
}

func expandRte(cat catalog.Catalog, q *AnalyzedQuery, rteIdx int) {
	td := q.RangeTable[rteIdx].TableDesc
	for _, cd := range cat.GetAllColumnMetadataForTable(td.TableID) {
		q.TargetList = append(q.TargetList, TargetEntry{
			ResName: cd.ColumnName,
			Expr:    columnVarFrom(cd, rteIdx),
		})
	}
}

// resolveInsertTarget looks up the destination table and the ordered
// column list an INSERT assigns into: the explicit column list if given,
// else every catalog column in catalog order (spec.md §4.2,
// "InsertStmt.analyze (base)").
func resolveInsertTarget(cat catalog.Catalog, tableName string, colNames []string) (*catalog.TableDescriptor, []*catalog.ColumnDescriptor, error) {
	td, ok := cat.GetMetadataForTable(tableName)
	if !ok {
		return nil, nil, NameErrorf("table %q does not exist", tableName)
	}
	if td.IsView && !td.IsMaterialized {
		return nil, nil, NotSupportedErrorf("view %q is not materialized and cannot be inserted into", tableName)
	}
	if len(colNames) == 0 {
		return td, cat.GetAllColumnMetadataForTable(td.TableID), nil
	}
	cols := make([]*catalog.ColumnDescriptor, len(colNames))
	for i, name := range colNames {
		cd, ok := cat.GetMetadataForColumn(td.TableID, name)
		if !ok {
			return nil, nil, NameErrorf("column %q does not exist on %q", name, tableName)
		}
		cols[i] = cd
	}
	return td, cols, nil
}

func analyzeInsertValuesStmt(cat catalog.Catalog, s *compiler.InsertValuesStmt) (*AnalyzedQuery, error) {
	td, cols, err := resolveInsertTarget(cat, s.TableName, s.ColNames)
	if err != nil {
		return nil, err
	}
	q := NewAnalyzedQuery(StmtInsert)
	q.ResultTableID = td.TableID
	for _, cd := range cols {
		q.ResultColList = append(q.ResultColList, cd.ColumnID)
	}

	// spec.md §9 open question 1: a row/column count mismatch is an
	// ArgError raised before any value is analyzed, not left unchecked.
	for _, row := range s.Rows {
		if len(row) != len(cols) {
			return nil, ArgErrorf("INSERT has %d values but %d columns", len(row), len(cols))
		}
	}

	for rowIdx, row := range s.Rows {
		values := make([]AnalyzedExpr, len(row))
		for i, ve := range row {
			val, err := analyzeExpr(cat, q, ve)
			if err != nil {
				return nil, err
			}
			values[i] = val.AddCast(cols[i].ColumnType)
		}
		if rowIdx == 0 {
			for _, v := range values {
				q.TargetList = append(q.TargetList, TargetEntry{Expr: v})
			}
		} else {
			q.ExtraRows = append(q.ExtraRows, values)
		}
	}
	return q, nil
}

func analyzeInsertQueryStmt(cat catalog.Catalog, s *compiler.InsertQueryStmt) (*AnalyzedQuery, error) {
	td, cols, err := resolveInsertTarget(cat, s.TableName, s.ColNames)
	if err != nil {
		return nil, err
	}
	inner, err := analyzeSelectStmt(cat, s.Query)
	if err != nil {
		return nil, err
	}
	if len(inner.TargetList) != len(cols) {
		return nil, ArgErrorf("INSERT ... SELECT projects %d columns but %d were given", len(inner.TargetList), len(cols))
	}
	for i := range inner.TargetList {
		inner.TargetList[i].Expr = inner.TargetList[i].Expr.AddCast(cols[i].ColumnType)
	}
	inner.StmtType = StmtInsert
	inner.ResultTableID = td.TableID
	for _, cd := range cols {
		inner.ResultColList = append(inner.ResultColList, cd.ColumnID)
	}
	return inner, nil
}
