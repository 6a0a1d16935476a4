package analyzer

import "github.com/heavyql/analyzer/catalog"

// StmtType is the analyzed statement kind an AnalyzedQuery carries.
type StmtType int

const (
	StmtSelect StmtType = iota
	StmtInsert
	StmtUpdate
	StmtDelete
)

func (s StmtType) String() string {
	switch s {
	case StmtSelect:
		return "SELECT"
	case StmtInsert:
		return "INSERT"
	case StmtUpdate:
		return "UPDATE"
	case StmtDelete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// RangeTblEntry is one FROM-clause table, indexed in source order; that
// index is what every ColumnVar.RteIdx in the query refers back into
// (invariant I1). TableDesc is borrowed from the catalog, which outlives
// analysis (spec.md §9, "Cyclic ownership").
type RangeTblEntry struct {
	RangeVar  string
	TableDesc *catalog.TableDescriptor
}

// TargetEntry is one projected column: a result name plus its analyzed
// expression.
type TargetEntry struct {
	ResName string
	Expr    AnalyzedExpr
}

// OrderEntry is one resolved ORDER BY key. TleIndex is 1-based, indexing
// into the owning AnalyzedQuery's TargetList (invariant I4).
type OrderEntry struct {
	TleIndex   int
	IsDesc     bool
	NullsFirst bool
}

// AnalyzedQuery is the typed, resolved, validated representation the
// planner consumes (spec.md §3.3, §6.3). It is built up by exactly one
// analyze pass and then handed off by exclusive ownership; nothing in this
// package mutates it afterward.
type AnalyzedQuery struct {
	StmtType StmtType

	RangeTable []RangeTblEntry
	TargetList []TargetEntry

	WherePredicate  AnalyzedExpr
	GroupBy         []AnalyzedExpr
	HavingPredicate AnalyzedExpr
	OrderBy         []OrderEntry

	NumAggs    int
	IsDistinct bool

	Limit  *int64
	Offset *int64

	// NextQuery and IsUnionAll link a UNION's right-hand query to the left,
	// which is the AnalyzedQuery this field lives on.
	NextQuery  *AnalyzedQuery
	IsUnionAll bool

	// ResultTableID and ResultColList are set for INSERT: the destination
	// table and the catalog column ids TargetList entries are assigned to,
	// in the same order (invariant I5). TargetList holds the first (or
	// only) VALUES row; ExtraRows holds any rows beyond the first from a
	// multi-row `VALUES (...), (...)` insert, each aligned to
	// ResultColList the same way TargetList is.
	ResultTableID int
	ResultColList []int
	ExtraRows     [][]AnalyzedExpr
}

// NewAnalyzedQuery returns an empty query of the given statement type,
// ready for the statement analyzer to populate.
func NewAnalyzedQuery(stmtType StmtType) *AnalyzedQuery {
	return &AnalyzedQuery{StmtType: stmtType}
}

// rteByRangeVar returns the range-table index whose RangeVar matches name,
// and whether one was found. Used by column resolution (a qualified
// ColumnRef) and by `t.*` expansion.
func (q *AnalyzedQuery) rteByRangeVar(name string) (int, bool) {
	for i, rte := range q.RangeTable {
		if rte.RangeVar == name {
			return i, true
		}
	}
	return 0, false
}
