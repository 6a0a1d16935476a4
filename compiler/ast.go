package compiler

import "github.com/heavyql/analyzer/sqltype"

// ast (Abstract Syntax Tree) defines the data structure representing a SQL
// program as produced by the parser. This tree is consumed by the analyzer
// package, which resolves names and types against a catalog and produces an
// analyzed query, and by the ddl package, which applies DDL statements to a
// catalog.

// Stmt is any top level SQL statement the parser can produce.
type Stmt interface {
	StmtNode()
}

type StmtBase struct{}

func (*StmtBase) StmtNode() {}

// Expr is any parse-tree expression node. BreadthWalk is a pre-order
// visitor walk over the tree; the analyzer and the pretty printer do not
// use it and dispatch on the node type with a type switch instead.
type Expr interface {
	BreadthWalk(v ExprVisitor)
}

type ExprVisitor interface {
	VisitNullLiteral(*NullLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitIntLiteral(*IntLiteral)
	VisitFixedPtLiteral(*FixedPtLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitDoubleLiteral(*DoubleLiteral)
	VisitUserLiteral(*UserLiteral)
	VisitColumnRef(*ColumnRef)
	VisitOperExpr(*OperExpr)
	VisitIsNullExpr(*IsNullExpr)
	VisitInValues(*InValues)
	VisitBetweenExpr(*BetweenExpr)
	VisitLikeExpr(*LikeExpr)
	VisitFunctionRef(*FunctionRef)
	VisitCastExpr(*CastExpr)
	VisitCaseExpr(*CaseExpr)
	VisitSubqueryExpr(*SubqueryExpr)
	VisitExistsExpr(*ExistsExpr)
	VisitInSubquery(*InSubquery)
}

// ---- Literals ----

type NullLiteral struct{}

func (n *NullLiteral) BreadthWalk(v ExprVisitor) { v.VisitNullLiteral(n) }

type StringLiteral struct{ Value string }

func (s *StringLiteral) BreadthWalk(v ExprVisitor) { v.VisitStringLiteral(s) }

type IntLiteral struct{ Value int64 }

func (i *IntLiteral) BreadthWalk(v ExprVisitor) { v.VisitIntLiteral(i) }

// FixedPtLiteral is a literal written with a decimal point and no exponent,
// e.g. 12.50, kept as the exact digits written rather than a float so NUMERIC
// precision is not lost before analysis assigns a TypeInfo.
type FixedPtLiteral struct {
	Digits string
	Scale  int
}

func (f *FixedPtLiteral) BreadthWalk(v ExprVisitor) { v.VisitFixedPtLiteral(f) }

type FloatLiteral struct{ Value float32 }

func (f *FloatLiteral) BreadthWalk(v ExprVisitor) { v.VisitFloatLiteral(f) }

type DoubleLiteral struct{ Value float64 }

func (d *DoubleLiteral) BreadthWalk(v ExprVisitor) { v.VisitDoubleLiteral(d) }

// UserLiteral is the reserved `USER` literal. It parses but Analyze always
// raises NotSupported, matching the original.
type UserLiteral struct{}

func (u *UserLiteral) BreadthWalk(v ExprVisitor) { v.VisitUserLiteral(u) }

// ---- Column / table references ----

// ColumnRef is `t.c`, `t.*`, or bare `c`. All is true for the `t.*` form.
type ColumnRef struct {
	Table  string
	Column string
	All    bool
}

func (c *ColumnRef) BreadthWalk(v ExprVisitor) { v.VisitColumnRef(c) }

// TableRef is a table name with an optional range variable, e.g.
// `orders AS o`.
type TableRef struct {
	TableName string
	RangeVar  string
}

// ---- Operators ----

// OperExpr is a unary or binary operator application. Op is a teacher-style
// string token ("+", "-", "=", "<>", "<", "<=", ">", ">=", "AND", "OR",
// "NOT", "*", "/", "%", "||"). Left is nil for a unary operator.
type OperExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (o *OperExpr) BreadthWalk(v ExprVisitor) {
	v.VisitOperExpr(o)
	if o.Left != nil {
		o.Left.BreadthWalk(v)
	}
	o.Right.BreadthWalk(v)
}

// IsNullExpr is `expr IS [NOT] NULL`.
type IsNullExpr struct {
	Operand Expr
	Negate  bool
}

func (ie *IsNullExpr) BreadthWalk(v ExprVisitor) {
	v.VisitIsNullExpr(ie)
	ie.Operand.BreadthWalk(v)
}

// InValues is `expr [NOT] IN (v1, v2, ...)`.
type InValues struct {
	Operand Expr
	Values  []Expr
	Negate  bool
}

func (iv *InValues) BreadthWalk(v ExprVisitor) {
	v.VisitInValues(iv)
	iv.Operand.BreadthWalk(v)
	for _, e := range iv.Values {
		e.BreadthWalk(v)
	}
}

// BetweenExpr is `expr [NOT] BETWEEN lower AND upper`.
type BetweenExpr struct {
	Operand Expr
	Lower   Expr
	Upper   Expr
	Negate  bool
}

func (be *BetweenExpr) BreadthWalk(v ExprVisitor) {
	v.VisitBetweenExpr(be)
	be.Operand.BreadthWalk(v)
	be.Lower.BreadthWalk(v)
	be.Upper.BreadthWalk(v)
}

// LikeExpr is `expr [NOT] LIKE pattern [ESCAPE escape]`.
type LikeExpr struct {
	Operand Expr
	Pattern Expr
	Escape  Expr
	Negate  bool
}

func (le *LikeExpr) BreadthWalk(v ExprVisitor) {
	v.VisitLikeExpr(le)
	le.Operand.BreadthWalk(v)
	le.Pattern.BreadthWalk(v)
	if le.Escape != nil {
		le.Escape.BreadthWalk(v)
	}
}

// FunctionRef is a function call, most commonly an aggregate such as
// COUNT(*), SUM(x), AVG(x), MIN(x), MAX(x).
type FunctionRef struct {
	Name     string
	Distinct bool
	Star     bool
	Args     []Expr
}

func (f *FunctionRef) BreadthWalk(v ExprVisitor) {
	v.VisitFunctionRef(f)
	for _, a := range f.Args {
		a.BreadthWalk(v)
	}
}

// CastExpr is `CAST(expr AS type)`.
type CastExpr struct {
	Operand Expr
	Type    sqltype.SQLType
}

func (ce *CastExpr) BreadthWalk(v ExprVisitor) {
	v.VisitCastExpr(ce)
	ce.Operand.BreadthWalk(v)
}

// CaseWhen is one `WHEN cond THEN result` arm of a CaseExpr.
type CaseWhen struct {
	When Expr
	Then Expr
}

// CaseExpr is `CASE [operand] WHEN ... THEN ... [ELSE else] END`. Operand is
// nil for the searched form (`CASE WHEN cond THEN ...`).
type CaseExpr struct {
	Operand Expr
	Whens   []CaseWhen
	Else    Expr
}

func (ce *CaseExpr) BreadthWalk(v ExprVisitor) {
	v.VisitCaseExpr(ce)
	if ce.Operand != nil {
		ce.Operand.BreadthWalk(v)
	}
	for _, w := range ce.Whens {
		w.When.BreadthWalk(v)
		w.Then.BreadthWalk(v)
	}
	if ce.Else != nil {
		ce.Else.BreadthWalk(v)
	}
}

// SubqueryExpr, ExistsExpr, and InSubquery are reserved subquery nodes;
// Analyze always raises NotSupported for them, matching the original's
// subquery-analysis gap. The parser builds only ExistsExpr (`[NOT] EXISTS
// (SELECT ...)`); it has no grammar that produces SubqueryExpr or
// InSubquery, so `(SELECT ...)` and `IN (SELECT ...)` fail to parse.
type SubqueryExpr struct{ Query *SelectStmt }

func (s *SubqueryExpr) BreadthWalk(v ExprVisitor) { v.VisitSubqueryExpr(s) }

type ExistsExpr struct {
	Query  *SelectStmt
	Negate bool
}

func (e *ExistsExpr) BreadthWalk(v ExprVisitor) { v.VisitExistsExpr(e) }

type InSubquery struct {
	Operand Expr
	Query   *SelectStmt
	Negate  bool
}

func (i *InSubquery) BreadthWalk(v ExprVisitor) {
	v.VisitInSubquery(i)
	i.Operand.BreadthWalk(v)
}

// ---- Column definitions (CREATE TABLE) ----

// CompressDef is a column's `ENCODING name [(param)]` clause.
type CompressDef struct {
	Name  string
	Param int
}

type ColumnDef struct {
	Name     string
	Type     sqltype.SQLType
	NotNull  bool
	Compress *CompressDef
}

// ---- Query specification ----

// QuerySpec is a single `SELECT ... FROM ... WHERE ... GROUP BY ... HAVING
// ...` block, with no ORDER BY/LIMIT/OFFSET (those live on SelectStmt, which
// may wrap a UnionQuery of several QuerySpecs).
type QuerySpec struct {
	Distinct      bool
	ResultColumns []ResultColumn
	From          []TableRef
	Where         Expr
	GroupBy       []Expr
	Having        Expr
}

// ResultColumn is one entry of a SELECT's column list.
type ResultColumn struct {
	// All is true for `*`; AllTable is set for `t.*`.
	All      bool
	AllTable string
	// Expression is the expression form, e.g. `a + 1`.
	Expression Expr
	Alias      string
}

// OrderEntry is one `ORDER BY` key.
type OrderEntry struct {
	Expr Expr
	Desc bool
}

// UnionQuery chains two query specs with UNION or UNION ALL.
type UnionQuery struct {
	Left    Stmt
	Right   Stmt
	UnionAll bool
}

func (*UnionQuery) StmtNode() {}

// SelectStmt wraps a QuerySpec or UnionQuery and adds ORDER BY/LIMIT/OFFSET.
type SelectStmt struct {
	*StmtBase
	Query   Stmt // *QuerySpec or *UnionQuery
	OrderBy []OrderEntry
	Limit   *int64
	Offset  *int64
}

func (*QuerySpec) StmtNode() {}
func (*SelectStmt) StmtNode() {}

// ---- DML ----

// InsertValuesStmt is `INSERT INTO t (cols) VALUES (v1, v2, ...), ...`.
type InsertValuesStmt struct {
	*StmtBase
	TableName string
	ColNames  []string
	Rows      [][]Expr
}

func (*InsertValuesStmt) StmtNode() {}

// InsertQueryStmt is `INSERT INTO t (cols) <select>`.
type InsertQueryStmt struct {
	*StmtBase
	TableName string
	ColNames  []string
	Query     *SelectStmt
}

func (*InsertQueryStmt) StmtNode() {}

// UpdateStmt and DeleteStmt parse but Analyze raises NotSupported, matching
// spec.md's non-goal for UPDATE/DELETE semantics.
type UpdateStmt struct {
	*StmtBase
	TableName string
	SetList   map[string]Expr
	Where     Expr
}

func (*UpdateStmt) StmtNode() {}

type DeleteStmt struct {
	*StmtBase
	TableName string
	Where     Expr
}

func (*DeleteStmt) StmtNode() {}

// ---- DDL ----

type CreateTableStmt struct {
	*StmtBase
	IfNotExists bool
	TableName   string
	ColDefs     []ColumnDef
	// StorageOption, FragSize, and PageSize correspond to spec.md §4.3's
	// WITH clause. HasFragSize/HasPageSize distinguish "option omitted"
	// (use the config default) from "option supplied" (FragSize/PageSize
	// hold the literal as written, including non-positive, which ddl
	// rejects with an ArgError).
	StorageOption string
	FragSize      int
	HasFragSize   bool
	PageSize      int
	HasPageSize   bool
}

func (*CreateTableStmt) StmtNode() {}

type DropTableStmt struct {
	*StmtBase
	IfExists  bool
	TableName string
}

func (*DropTableStmt) StmtNode() {}

type CreateViewStmt struct {
	*StmtBase
	IfNotExists   bool
	ViewName      string
	// ColNames is the explicit "(a, b, ...)" column list, if any. When
	// present its length must match the query's target list; ddl renames
	// target entries by position rather than by the query's own aliases.
	ColNames      []string
	Materialized  bool
	CheckOption   bool
	StorageOption string
	RefreshOption string
	Query         *SelectStmt
	QuerySQL      string
}

func (*CreateViewStmt) StmtNode() {}

type DropViewStmt struct {
	*StmtBase
	IfExists bool
	ViewName string
}

func (*DropViewStmt) StmtNode() {}

type RefreshViewStmt struct {
	*StmtBase
	ViewName string
}

func (*RefreshViewStmt) StmtNode() {}

type CreateUserStmt struct {
	*StmtBase
	UserName string
	Password string
	IsSuper  bool
}

func (*CreateUserStmt) StmtNode() {}

type AlterUserStmt struct {
	*StmtBase
	UserName string
	Password *string
	IsSuper  *bool
}

func (*AlterUserStmt) StmtNode() {}

type DropUserStmt struct {
	*StmtBase
	UserName string
}

func (*DropUserStmt) StmtNode() {}

type CreateDBStmt struct {
	*StmtBase
	DBName string
	Owner  string
}

func (*CreateDBStmt) StmtNode() {}

type DropDBStmt struct {
	*StmtBase
	DBName string
}

func (*DropDBStmt) StmtNode() {}
