package analyzer

import (
	"reflect"

	"github.com/heavyql/analyzer/sqltype"
)

// AnalyzedExpr is the typed tree the expression analyzer produces, per
// spec.md §3.2. Every variant supports the same four operations the
// original dispatches dynamically; here they are ordinary interface
// methods over tagged struct variants (spec.md §9's "Runtime type
// dispatch" note).
type AnalyzedExpr interface {
	// GetTypeInfo returns the expression's resolved, semantic type.
	GetTypeInfo() sqltype.TypeInfo
	// AddCast is a no-op if GetTypeInfo() already equals target. Otherwise
	// it returns a new expression: a Constant is retyped directly where the
	// conversion is representable, everything else (and any
	// non-representable Constant) is wrapped in a CAST UOper.
	AddCast(target sqltype.TypeInfo) AnalyzedExpr
	// DeepCopy returns an independent tree sharing no interior node with
	// the receiver.
	DeepCopy() AnalyzedExpr
	// CheckGroupBy reports whether e is covered by groupBy: structurally
	// equal to one of its entries, or (recursively) built only from
	// constants, aggregates, and columns that appear in some groupBy
	// expression.
	CheckGroupBy(groupBy []AnalyzedExpr) bool
}

// UnaryOp enumerates UOper's operator set.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpIsNull
	OpUMinus
	OpCast
)

// Qualifier marks a BinOper as comparing against one value, any of a set,
// or all of a set. Only ONE is ever produced since subqueries are not
// supported (spec.md §4.1), but the field is kept so the shape matches the
// original's BinOper and is ready if subquery support is ever added.
type Qualifier int

const (
	QualOne Qualifier = iota
	QualAny
	QualAll
)

// AggKind enumerates the aggregate functions FunctionRef can resolve to.
type AggKind int

const (
	AggCount AggKind = iota
	AggMin
	AggMax
	AggAvg
	AggSum
)

func exprEqual(a, b AnalyzedExpr) bool {
	return reflect.DeepEqual(a, b)
}

// ---- Constant ----

type Constant struct {
	Type   sqltype.TypeInfo
	IsNull bool
	Value  interface{}
}

func (c *Constant) GetTypeInfo() sqltype.TypeInfo { return c.Type }

func (c *Constant) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if c.Type.Equal(target) {
		return c
	}
	if constantRepresentable(c.Type, target) {
		return &Constant{Type: target, IsNull: c.IsNull, Value: c.Value}
	}
	return &UOper{Type: target, Op: OpCast, Operand: c}
}

// constantRepresentable reports whether a Constant's type can be rewritten
// in place rather than wrapped in an explicit CAST: an untyped NULL can
// always adopt any target type, and same-family numeric<->numeric or
// string<->string retyping never changes the underlying Go value's shape.
func constantRepresentable(from, to sqltype.TypeInfo) bool {
	if from.Type == sqltype.NULLT {
		return true
	}
	if sqltype.IsNumber(from.Type) && sqltype.IsNumber(to.Type) {
		return true
	}
	if sqltype.IsString(from.Type) && sqltype.IsString(to.Type) {
		return true
	}
	return false
}

func (c *Constant) DeepCopy() AnalyzedExpr {
	cp := *c
	return &cp
}

func (c *Constant) CheckGroupBy(groupBy []AnalyzedExpr) bool { return true }

// ---- ColumnVar ----

type ColumnVar struct {
	Type     sqltype.TypeInfo
	TableID  int
	ColumnID int
	RteIdx   int
	Encoding sqltype.Encoding
	EncParam int
}

func (cv *ColumnVar) GetTypeInfo() sqltype.TypeInfo { return cv.Type }

func (cv *ColumnVar) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if cv.Type.Equal(target) {
		return cv
	}
	return &UOper{Type: target, Op: OpCast, Operand: cv}
}

func (cv *ColumnVar) DeepCopy() AnalyzedExpr {
	cp := *cv
	return &cp
}

func (cv *ColumnVar) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(cv, groupBy) {
		return true
	}
	return groupByColumnSet(groupBy)[columnKey{cv.TableID, cv.ColumnID}]
}

// ---- UOper ----

type UOper struct {
	Type    sqltype.TypeInfo
	Op      UnaryOp
	Operand AnalyzedExpr
}

func (u *UOper) GetTypeInfo() sqltype.TypeInfo { return u.Type }

func (u *UOper) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if u.Type.Equal(target) {
		return u
	}
	return &UOper{Type: target, Op: OpCast, Operand: u}
}

func (u *UOper) DeepCopy() AnalyzedExpr {
	return &UOper{Type: u.Type, Op: u.Op, Operand: u.Operand.DeepCopy()}
}

func (u *UOper) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(u, groupBy) {
		return true
	}
	return u.Operand.CheckGroupBy(groupBy)
}

// ---- BinOper ----

type BinOper struct {
	Type      sqltype.TypeInfo
	Op        string
	Qualifier Qualifier
	Left      AnalyzedExpr
	Right     AnalyzedExpr
}

func (b *BinOper) GetTypeInfo() sqltype.TypeInfo { return b.Type }

func (b *BinOper) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if b.Type.Equal(target) {
		return b
	}
	return &UOper{Type: target, Op: OpCast, Operand: b}
}

func (b *BinOper) DeepCopy() AnalyzedExpr {
	return &BinOper{
		Type:      b.Type,
		Op:        b.Op,
		Qualifier: b.Qualifier,
		Left:      b.Left.DeepCopy(),
		Right:     b.Right.DeepCopy(),
	}
}

func (b *BinOper) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(b, groupBy) {
		return true
	}
	return b.Left.CheckGroupBy(groupBy) && b.Right.CheckGroupBy(groupBy)
}

// ---- InValues ----

type InValues struct {
	Operand AnalyzedExpr
	Values  []AnalyzedExpr
}

func (iv *InValues) GetTypeInfo() sqltype.TypeInfo {
	return sqltype.TypeInfo{Type: sqltype.BOOLEAN}
}

func (iv *InValues) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if iv.GetTypeInfo().Equal(target) {
		return iv
	}
	return &UOper{Type: target, Op: OpCast, Operand: iv}
}

func (iv *InValues) DeepCopy() AnalyzedExpr {
	values := make([]AnalyzedExpr, len(iv.Values))
	for i, v := range iv.Values {
		values[i] = v.DeepCopy()
	}
	return &InValues{Operand: iv.Operand.DeepCopy(), Values: values}
}

func (iv *InValues) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(iv, groupBy) {
		return true
	}
	if !iv.Operand.CheckGroupBy(groupBy) {
		return false
	}
	for _, v := range iv.Values {
		if !v.CheckGroupBy(groupBy) {
			return false
		}
	}
	return true
}

// ---- LikeExpr ----

type LikeExpr struct {
	Arg     AnalyzedExpr
	Pattern AnalyzedExpr
	Escape  AnalyzedExpr
}

func (l *LikeExpr) GetTypeInfo() sqltype.TypeInfo {
	return sqltype.TypeInfo{Type: sqltype.BOOLEAN}
}

func (l *LikeExpr) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if l.GetTypeInfo().Equal(target) {
		return l
	}
	return &UOper{Type: target, Op: OpCast, Operand: l}
}

func (l *LikeExpr) DeepCopy() AnalyzedExpr {
	cp := &LikeExpr{Arg: l.Arg.DeepCopy(), Pattern: l.Pattern.DeepCopy()}
	if l.Escape != nil {
		cp.Escape = l.Escape.DeepCopy()
	}
	return cp
}

func (l *LikeExpr) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(l, groupBy) {
		return true
	}
	if !l.Arg.CheckGroupBy(groupBy) || !l.Pattern.CheckGroupBy(groupBy) {
		return false
	}
	if l.Escape != nil && !l.Escape.CheckGroupBy(groupBy) {
		return false
	}
	return true
}

// ---- AggExpr ----

type AggExpr struct {
	Type       sqltype.TypeInfo
	Agg        AggKind
	Arg        AnalyzedExpr
	IsDistinct bool
}

func (a *AggExpr) GetTypeInfo() sqltype.TypeInfo { return a.Type }

func (a *AggExpr) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if a.Type.Equal(target) {
		return a
	}
	return &UOper{Type: target, Op: OpCast, Operand: a}
}

func (a *AggExpr) DeepCopy() AnalyzedExpr {
	cp := &AggExpr{Type: a.Type, Agg: a.Agg, IsDistinct: a.IsDistinct}
	if a.Arg != nil {
		cp.Arg = a.Arg.DeepCopy()
	}
	return cp
}

// CheckGroupBy always succeeds for an aggregate: invariant I2 only
// constrains non-aggregate target expressions.
func (a *AggExpr) CheckGroupBy(groupBy []AnalyzedExpr) bool { return true }

// ---- CaseExpr ----

type AnalyzedCaseWhen struct {
	When AnalyzedExpr
	Then AnalyzedExpr
}

type CaseExpr struct {
	Type  sqltype.TypeInfo
	Whens []AnalyzedCaseWhen
	Else  AnalyzedExpr
}

func (c *CaseExpr) GetTypeInfo() sqltype.TypeInfo { return c.Type }

func (c *CaseExpr) AddCast(target sqltype.TypeInfo) AnalyzedExpr {
	if c.Type.Equal(target) {
		return c
	}
	return &UOper{Type: target, Op: OpCast, Operand: c}
}

func (c *CaseExpr) DeepCopy() AnalyzedExpr {
	whens := make([]AnalyzedCaseWhen, len(c.Whens))
	for i, w := range c.Whens {
		whens[i] = AnalyzedCaseWhen{When: w.When.DeepCopy(), Then: w.Then.DeepCopy()}
	}
	cp := &CaseExpr{Type: c.Type, Whens: whens}
	if c.Else != nil {
		cp.Else = c.Else.DeepCopy()
	}
	return cp
}

func (c *CaseExpr) CheckGroupBy(groupBy []AnalyzedExpr) bool {
	if matchesAny(c, groupBy) {
		return true
	}
	for _, w := range c.Whens {
		if !w.When.CheckGroupBy(groupBy) || !w.Then.CheckGroupBy(groupBy) {
			return false
		}
	}
	if c.Else != nil && !c.Else.CheckGroupBy(groupBy) {
		return false
	}
	return true
}

// ---- shared helpers ----

func matchesAny(e AnalyzedExpr, groupBy []AnalyzedExpr) bool {
	for _, g := range groupBy {
		if exprEqual(e, g) {
			return true
		}
	}
	return false
}

type columnKey struct {
	tableID  int
	columnID int
}

// groupByColumnSet collects every ColumnVar reachable from any groupBy
// expression, the set invariant I2 lets a bare column reference lean on
// even when it isn't itself one of the groupBy expressions.
func groupByColumnSet(groupBy []AnalyzedExpr) map[columnKey]bool {
	set := map[columnKey]bool{}
	var walk func(e AnalyzedExpr)
	walk = func(e AnalyzedExpr) {
		switch n := e.(type) {
		case *ColumnVar:
			set[columnKey{n.TableID, n.ColumnID}] = true
		case *UOper:
			walk(n.Operand)
		case *BinOper:
			walk(n.Left)
			walk(n.Right)
		case *InValues:
			walk(n.Operand)
			for _, v := range n.Values {
				walk(v)
			}
		case *LikeExpr:
			walk(n.Arg)
			walk(n.Pattern)
			if n.Escape != nil {
				walk(n.Escape)
			}
		case *AggExpr:
			if n.Arg != nil {
				walk(n.Arg)
			}
		case *CaseExpr:
			for _, w := range n.Whens {
				walk(w.When)
				walk(w.Then)
			}
			if n.Else != nil {
				walk(n.Else)
			}
		}
	}
	for _, g := range groupBy {
		walk(g)
	}
	return set
}
