package analyzer

import (
	"strings"

	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
	"github.com/heavyql/analyzer/sqltype"
)

// analyzeExpr is the central dispatcher spec.md §4.1 describes: every
// parse expression produces an analyzed expression with a resolved type.
// q is the AnalyzedQuery under construction; its RangeTable is read for
// name resolution and its NumAggs counter is bumped by aggregate calls.
func analyzeExpr(cat catalog.Catalog, q *AnalyzedQuery, e compiler.Expr) (AnalyzedExpr, error) {
	switch n := e.(type) {
	case *compiler.NullLiteral:
		return &Constant{Type: sqltype.TypeInfo{Type: sqltype.NULLT}, IsNull: true}, nil
	case *compiler.StringLiteral:
		return &Constant{
			Type:  sqltype.TypeInfo{Type: sqltype.VARCHAR, Dimension: len(n.Value)},
			Value: n.Value,
		}, nil
	case *compiler.IntLiteral:
		return &Constant{Type: narrowestIntType(n.Value), Value: n.Value}, nil
	case *compiler.FixedPtLiteral:
		return &Constant{
			Type:  sqltype.TypeInfo{Type: sqltype.NUMERIC, Dimension: len(n.Digits), Scale: n.Scale},
			Value: n.Digits,
		}, nil
	case *compiler.FloatLiteral:
		return &Constant{Type: sqltype.TypeInfo{Type: sqltype.FLOAT}, Value: n.Value}, nil
	case *compiler.DoubleLiteral:
		return &Constant{Type: sqltype.TypeInfo{Type: sqltype.DOUBLE}, Value: n.Value}, nil
	case *compiler.UserLiteral:
		return nil, NotSupportedErrorf("USER literal is not supported")
	case *compiler.ColumnRef:
		return analyzeColumnRef(cat, q, n)
	case *compiler.OperExpr:
		return analyzeOperExpr(cat, q, n)
	case *compiler.IsNullExpr:
		return analyzeIsNullExpr(cat, q, n)
	case *compiler.InValues:
		return analyzeInValues(cat, q, n)
	case *compiler.BetweenExpr:
		return analyzeBetweenExpr(cat, q, n)
	case *compiler.LikeExpr:
		return analyzeLikeExpr(cat, q, n)
	case *compiler.FunctionRef:
		return analyzeFunctionRef(cat, q, n)
	case *compiler.CastExpr:
		return analyzeCastExpr(cat, q, n)
	case *compiler.CaseExpr:
		return analyzeCaseExpr(cat, q, n)
	case *compiler.SubqueryExpr, *compiler.ExistsExpr, *compiler.InSubquery:
		return nil, NotSupportedErrorf("subqueries are not supported")
	}
	return nil, InternalErrorf("analyzeExpr: unhandled expression type %T", e)
}

func narrowestIntType(v int64) sqltype.TypeInfo {
	switch {
	case v >= -32768 && v <= 32767:
		return sqltype.TypeInfo{Type: sqltype.SMALLINT, NotNull: true}
	case v >= -2147483648 && v <= 2147483647:
		return sqltype.TypeInfo{Type: sqltype.INT, NotNull: true}
	default:
		return sqltype.TypeInfo{Type: sqltype.BIGINT, NotNull: true}
	}
}

func analyzeColumnRef(cat catalog.Catalog, q *AnalyzedQuery, c *compiler.ColumnRef) (AnalyzedExpr, error) {
	if c.All {
		return nil, ArgErrorf("column wildcard is only valid as a select item")
	}
	if c.Table != "" {
		rteIdx, ok := q.rteByRangeVar(c.Table)
		if !ok {
			return nil, NameErrorf("range variable %q does not exist", c.Table)
		}
		cd, ok := cat.GetMetadataForColumn(q.RangeTable[rteIdx].TableDesc.TableID, c.Column)
		if !ok {
			return nil, NameErrorf("column %q does not exist on %q", c.Column, c.Table)
		}
		return columnVarFrom(cd, rteIdx), nil
	}
	var (
		found    bool
		matchIdx int
		matchCd  *catalog.ColumnDescriptor
	)
	for i, rte := range q.RangeTable {
		cd, ok := cat.GetMetadataForColumn(rte.TableDesc.TableID, c.Column)
		if !ok {
			continue
		}
		if found {
			return nil, AmbiguityErrorf("column %q is ambiguous", c.Column)
		}
		found, matchIdx, matchCd = true, i, cd
	}
	if !found {
		return nil, NameErrorf("column %q does not exist", c.Column)
	}
	return columnVarFrom(matchCd, matchIdx), nil
}

func columnVarFrom(cd *catalog.ColumnDescriptor, rteIdx int) *ColumnVar {
	return &ColumnVar{
		Type:     cd.ColumnType,
		TableID:  cd.TableID,
		ColumnID: cd.ColumnID,
		RteIdx:   rteIdx,
		Encoding: cd.Compression,
		EncParam: cd.CompParam,
	}
}

func analyzeOperExpr(cat catalog.Catalog, q *AnalyzedQuery, o *compiler.OperExpr) (AnalyzedExpr, error) {
	if o.Left == nil {
		operand, err := analyzeExpr(cat, q, o.Right)
		if err != nil {
			return nil, err
		}
		switch o.Op {
		case "NOT":
			if operand.GetTypeInfo().Type != sqltype.BOOLEAN {
				return nil, TypeErrorf("NOT requires a boolean operand")
			}
			return &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpNot, Operand: operand}, nil
		case "-":
			if !sqltype.IsNumber(operand.GetTypeInfo().Type) {
				return nil, TypeErrorf("unary - requires a numeric operand")
			}
			return &UOper{Type: operand.GetTypeInfo(), Op: OpUMinus, Operand: operand}, nil
		}
		return nil, InternalErrorf("unknown unary operator %q", o.Op)
	}

	left, err := analyzeExpr(cat, q, o.Left)
	if err != nil {
		return nil, err
	}
	right, err := analyzeExpr(cat, q, o.Right)
	if err != nil {
		return nil, err
	}
	resultType, newLeftType, newRightType, err := analyzeTypeInfo(o.Op, left.GetTypeInfo(), right.GetTypeInfo())
	if err != nil {
		return nil, err
	}
	return &BinOper{
		Type:      resultType,
		Op:        o.Op,
		Qualifier: QualOne,
		Left:      left.AddCast(newLeftType),
		Right:     right.AddCast(newRightType),
	}, nil
}

// analyzeTypeInfo implements spec.md §4.1 step 4: comparisons promote
// their operands to a common type and produce BOOLEAN, arithmetic promotes
// to and produces a common numeric type, logical operators require both
// sides already BOOLEAN, and `||` promotes to and produces a common
// string type.
func analyzeTypeInfo(op string, l, r sqltype.TypeInfo) (result, newL, newR sqltype.TypeInfo, err error) {
	switch op {
	case "AND", "OR":
		if l.Type != sqltype.BOOLEAN || r.Type != sqltype.BOOLEAN {
			return sqltype.TypeInfo{}, l, r, TypeErrorf("%s requires boolean operands", op)
		}
		return sqltype.TypeInfo{Type: sqltype.BOOLEAN}, l, r, nil
	case "=", "<>", "<", "<=", ">", ">=":
		if sqltype.IsNumber(l.Type) && sqltype.IsNumber(r.Type) {
			common := sqltype.CommonNumericType(l, r)
			return sqltype.TypeInfo{Type: sqltype.BOOLEAN}, common, common, nil
		}
		if sqltype.IsString(l.Type) && sqltype.IsString(r.Type) {
			common := sqltype.CommonStringType(l, r)
			return sqltype.TypeInfo{Type: sqltype.BOOLEAN}, common, common, nil
		}
		return sqltype.TypeInfo{}, l, r, TypeErrorf("cannot compare %s and %s", l.Type, r.Type)
	case "+", "-", "*", "/", "%":
		if !sqltype.IsNumber(l.Type) || !sqltype.IsNumber(r.Type) {
			return sqltype.TypeInfo{}, l, r, TypeErrorf("arithmetic requires numeric operands, got %s and %s", l.Type, r.Type)
		}
		common := sqltype.CommonNumericType(l, r)
		return common, common, common, nil
	case "||":
		if !sqltype.IsString(l.Type) || !sqltype.IsString(r.Type) {
			return sqltype.TypeInfo{}, l, r, TypeErrorf("|| requires string operands, got %s and %s", l.Type, r.Type)
		}
		common := sqltype.CommonStringType(l, r)
		return common, common, common, nil
	}
	return sqltype.TypeInfo{}, l, r, InternalErrorf("unknown operator %q", op)
}

func analyzeIsNullExpr(cat catalog.Catalog, q *AnalyzedQuery, ie *compiler.IsNullExpr) (AnalyzedExpr, error) {
	operand, err := analyzeExpr(cat, q, ie.Operand)
	if err != nil {
		return nil, err
	}
	isnull := &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpIsNull, Operand: operand}
	if ie.Negate {
		return &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpNot, Operand: isnull}, nil
	}
	return isnull, nil
}

func analyzeInValues(cat catalog.Catalog, q *AnalyzedQuery, iv *compiler.InValues) (AnalyzedExpr, error) {
	arg, err := analyzeExpr(cat, q, iv.Operand)
	if err != nil {
		return nil, err
	}
	values := make([]AnalyzedExpr, len(iv.Values))
	for i, ve := range iv.Values {
		av, err := analyzeExpr(cat, q, ve)
		if err != nil {
			return nil, err
		}
		values[i] = av.AddCast(arg.GetTypeInfo())
	}
	inValues := &InValues{Operand: arg, Values: values}
	if iv.Negate {
		return &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpNot, Operand: inValues}, nil
	}
	return inValues, nil
}

func analyzeBetweenExpr(cat catalog.Catalog, q *AnalyzedQuery, be *compiler.BetweenExpr) (AnalyzedExpr, error) {
	arg, err := analyzeExpr(cat, q, be.Operand)
	if err != nil {
		return nil, err
	}
	lower, err := analyzeExpr(cat, q, be.Lower)
	if err != nil {
		return nil, err
	}
	upper, err := analyzeExpr(cat, q, be.Upper)
	if err != nil {
		return nil, err
	}

	geType, newArgGE, newLowerType, err := analyzeTypeInfo(">=", arg.GetTypeInfo(), lower.GetTypeInfo())
	if err != nil {
		return nil, err
	}
	gePred := &BinOper{
		Type:  geType,
		Op:    ">=",
		Left:  arg.AddCast(newArgGE),
		Right: lower.AddCast(newLowerType),
	}

	// The upper predicate uses a deep copy of arg: BETWEEN's two predicates
	// must share no node (spec.md §8 property 7), and the LE promotion is
	// computed from upper's type, not lower's (spec.md §9's corrected
	// open question 2).
	argCopy := arg.DeepCopy()
	leType, newArgLE, newUpperType, err := analyzeTypeInfo("<=", argCopy.GetTypeInfo(), upper.GetTypeInfo())
	if err != nil {
		return nil, err
	}
	lePred := &BinOper{
		Type:  leType,
		Op:    "<=",
		Left:  argCopy.AddCast(newArgLE),
		Right: upper.AddCast(newUpperType),
	}

	between := &BinOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: "AND", Left: gePred, Right: lePred}
	if be.Negate {
		return &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpNot, Operand: between}, nil
	}
	return between, nil
}

func analyzeLikeExpr(cat catalog.Catalog, q *AnalyzedQuery, le *compiler.LikeExpr) (AnalyzedExpr, error) {
	arg, err := analyzeExpr(cat, q, le.Operand)
	if err != nil {
		return nil, err
	}
	pattern, err := analyzeExpr(cat, q, le.Pattern)
	if err != nil {
		return nil, err
	}
	var escape AnalyzedExpr
	if le.Escape != nil {
		escape, err = analyzeExpr(cat, q, le.Escape)
		if err != nil {
			return nil, err
		}
	}
	if !sqltype.IsString(arg.GetTypeInfo().Type) || !sqltype.IsString(pattern.GetTypeInfo().Type) {
		return nil, TypeErrorf("LIKE requires string operands")
	}
	if escape != nil && !sqltype.IsString(escape.GetTypeInfo().Type) {
		return nil, TypeErrorf("LIKE ESCAPE requires a string operand")
	}
	like := &LikeExpr{Arg: arg, Pattern: pattern, Escape: escape}
	if le.Negate {
		return &UOper{Type: sqltype.TypeInfo{Type: sqltype.BOOLEAN}, Op: OpNot, Operand: like}, nil
	}
	return like, nil
}

var aggKindByName = map[string]AggKind{
	"MIN": AggMin,
	"MAX": AggMax,
	"AVG": AggAvg,
	"SUM": AggSum,
}

func analyzeFunctionRef(cat catalog.Catalog, q *AnalyzedQuery, f *compiler.FunctionRef) (AnalyzedExpr, error) {
	name := strings.ToUpper(f.Name)
	if name == "COUNT" {
		var arg AnalyzedExpr
		if !f.Star && len(f.Args) > 0 {
			a, err := analyzeExpr(cat, q, f.Args[0])
			if err != nil {
				return nil, err
			}
			arg = a
		}
		q.NumAggs++
		return &AggExpr{
			Type:       sqltype.TypeInfo{Type: sqltype.BIGINT, NotNull: true},
			Agg:        AggCount,
			Arg:        arg,
			IsDistinct: f.Distinct,
		}, nil
	}
	if kind, ok := aggKindByName[name]; ok {
		if f.Star || len(f.Args) == 0 {
			return nil, ArgErrorf("%s requires an argument", name)
		}
		arg, err := analyzeExpr(cat, q, f.Args[0])
		if err != nil {
			return nil, err
		}
		q.NumAggs++
		// DISTINCT is carried only on COUNT per spec.md §4.1.
		return &AggExpr{Type: arg.GetTypeInfo(), Agg: kind, Arg: arg}, nil
	}
	return nil, NotSupportedErrorf("function %q is not supported", f.Name)
}

func analyzeCastExpr(cat catalog.Catalog, q *AnalyzedQuery, ce *compiler.CastExpr) (AnalyzedExpr, error) {
	operand, err := analyzeExpr(cat, q, ce.Operand)
	if err != nil {
		return nil, err
	}
	target := sqltype.FromSQLType(ce.Type, operand.GetTypeInfo().NotNull)
	return operand.AddCast(target), nil
}

func analyzeCaseExpr(cat catalog.Catalog, q *AnalyzedQuery, ce *compiler.CaseExpr) (AnalyzedExpr, error) {
	var caseOperand AnalyzedExpr
	if ce.Operand != nil {
		o, err := analyzeExpr(cat, q, ce.Operand)
		if err != nil {
			return nil, err
		}
		caseOperand = o
	}

	ti := sqltype.TypeInfo{Type: sqltype.NULLT}
	whens := make([]AnalyzedCaseWhen, len(ce.Whens))
	for i, w := range ce.Whens {
		whenExpr, err := analyzeExpr(cat, q, w.When)
		if err != nil {
			return nil, err
		}
		if caseOperand != nil {
			resultType, newLeft, newRight, err := analyzeTypeInfo("=", caseOperand.GetTypeInfo(), whenExpr.GetTypeInfo())
			if err != nil {
				return nil, err
			}
			whenExpr = &BinOper{
				Type:  resultType,
				Op:    "=",
				Left:  caseOperand.DeepCopy().AddCast(newLeft),
				Right: whenExpr.AddCast(newRight),
			}
		} else if whenExpr.GetTypeInfo().Type != sqltype.BOOLEAN {
			return nil, TypeErrorf("CASE WHEN must be boolean")
		}

		thenExpr, err := analyzeExpr(cat, q, w.Then)
		if err != nil {
			return nil, err
		}
		if ti, err = reconcileCaseType(ti, thenExpr.GetTypeInfo()); err != nil {
			return nil, err
		}
		whens[i] = AnalyzedCaseWhen{When: whenExpr, Then: thenExpr}
	}

	var elseExpr AnalyzedExpr
	if ce.Else != nil {
		e, err := analyzeExpr(cat, q, ce.Else)
		if err != nil {
			return nil, err
		}
		elseExpr = e
		var err2 error
		if ti, err2 = reconcileCaseType(ti, elseExpr.GetTypeInfo()); err2 != nil {
			return nil, err2
		}
	}

	if ti.Type != sqltype.NULLT {
		for i := range whens {
			whens[i].Then = whens[i].Then.AddCast(ti)
		}
		if elseExpr != nil {
			elseExpr = elseExpr.AddCast(ti)
		}
	}
	return &CaseExpr{Type: ti, Whens: whens, Else: elseExpr}, nil
}

// reconcileCaseType folds one more THEN/ELSE arm's type into the running
// common type ti, per spec.md §4.1's CaseExpr rule. A NULLT arm never
// changes ti (it is retyped later via AddCast, spec.md §9 open question 3).
func reconcileCaseType(ti, arm sqltype.TypeInfo) (sqltype.TypeInfo, error) {
	if arm.Type == sqltype.NULLT {
		return ti, nil
	}
	if ti.Type == sqltype.NULLT {
		return arm, nil
	}
	if ti == arm {
		return ti, nil
	}
	if sqltype.IsString(ti.Type) && sqltype.IsString(arm.Type) {
		return sqltype.CommonStringType(ti, arm), nil
	}
	if sqltype.IsNumber(ti.Type) && sqltype.IsNumber(arm.Type) {
		return sqltype.CommonNumericType(ti, arm), nil
	}
	return sqltype.TypeInfo{}, TypeErrorf("CASE arms have incompatible types %s and %s", ti.Type, arm.Type)
}
