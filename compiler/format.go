package compiler

import (
	"fmt"
	"strings"
)

// ExprToString renders a single expression tree as SQL text. It recurses
// directly over the node types rather than through ExprVisitor/BreadthWalk:
// that walk is pre-order and has no way to interleave an operator between
// its operands, which infix SQL syntax requires.
func ExprToString(e Expr) string {
	return renderExpr(e)
}

// renderExpr is the infix/prefix renderer every composite node funnels
// through so nested operands are formatted consistently.
func renderExpr(e Expr) string {
	switch n := e.(type) {
	case *NullLiteral:
		return "NULL"
	case *StringLiteral:
		return "'" + strings.ReplaceAll(n.Value, "'", "''") + "'"
	case *IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *FixedPtLiteral:
		if n.Scale == 0 {
			return n.Digits
		}
		cut := len(n.Digits) - n.Scale
		return fmt.Sprintf("%s.%s", n.Digits[:cut], n.Digits[cut:])
	case *FloatLiteral:
		return fmt.Sprintf("%v", n.Value)
	case *DoubleLiteral:
		return fmt.Sprintf("%v", n.Value)
	case *UserLiteral:
		return "USER"
	case *ColumnRef:
		prefix := ""
		if n.Table != "" {
			prefix = n.Table + "."
		}
		if n.All {
			return prefix + "*"
		}
		return prefix + n.Column
	case *OperExpr:
		if n.Left == nil {
			return fmt.Sprintf("%s (%s)", n.Op, renderExpr(n.Right))
		}
		return fmt.Sprintf("(%s %s %s)", renderExpr(n.Left), n.Op, renderExpr(n.Right))
	case *IsNullExpr:
		if n.Negate {
			return renderExpr(n.Operand) + " IS NOT NULL"
		}
		return renderExpr(n.Operand) + " IS NULL"
	case *InValues:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = renderExpr(v)
		}
		neg := ""
		if n.Negate {
			neg = "NOT "
		}
		return fmt.Sprintf("%s %sIN (%s)", renderExpr(n.Operand), neg, strings.Join(parts, ", "))
	case *BetweenExpr:
		neg := ""
		if n.Negate {
			neg = "NOT "
		}
		return fmt.Sprintf("%s %sBETWEEN %s AND %s", renderExpr(n.Operand), neg, renderExpr(n.Lower), renderExpr(n.Upper))
	case *LikeExpr:
		neg := ""
		if n.Negate {
			neg = "NOT "
		}
		out := fmt.Sprintf("%s %sLIKE %s", renderExpr(n.Operand), neg, renderExpr(n.Pattern))
		if n.Escape != nil {
			out += " ESCAPE " + renderExpr(n.Escape)
		}
		return out
	case *FunctionRef:
		if n.Star {
			return n.Name + "(*)"
		}
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = renderExpr(a)
		}
		distinct := ""
		if n.Distinct {
			distinct = "DISTINCT "
		}
		return fmt.Sprintf("%s(%s%s)", n.Name, distinct, strings.Join(parts, ", "))
	case *CastExpr:
		return fmt.Sprintf("CAST(%s AS %s)", renderExpr(n.Operand), n.Type.ToString())
	case *CaseExpr:
		var b strings.Builder
		b.WriteString("CASE")
		if n.Operand != nil {
			b.WriteString(" " + renderExpr(n.Operand))
		}
		for _, w := range n.Whens {
			fmt.Fprintf(&b, " WHEN %s THEN %s", renderExpr(w.When), renderExpr(w.Then))
		}
		if n.Else != nil {
			b.WriteString(" ELSE " + renderExpr(n.Else))
		}
		b.WriteString(" END")
		return b.String()
	case *SubqueryExpr:
		return "(" + SelectStmtToString(n.Query) + ")"
	case *ExistsExpr:
		neg := ""
		if n.Negate {
			neg = "NOT "
		}
		return neg + "EXISTS (" + SelectStmtToString(n.Query) + ")"
	case *InSubquery:
		neg := ""
		if n.Negate {
			neg = "NOT "
		}
		return fmt.Sprintf("%s %sIN (%s)", renderExpr(n.Operand), neg, SelectStmtToString(n.Query))
	}
	return fmt.Sprintf("<unknown expr %T>", e)
}

// SelectStmtToString renders a SelectStmt (or a bare QuerySpec/UnionQuery
// produced internally) back to SQL text.
func SelectStmtToString(s Stmt) string {
	switch n := s.(type) {
	case *SelectStmt:
		out := SelectStmtToString(n.Query)
		if len(n.OrderBy) > 0 {
			parts := make([]string, len(n.OrderBy))
			for i, o := range n.OrderBy {
				d := ""
				if o.Desc {
					d = " DESC"
				}
				parts[i] = renderExpr(o.Expr) + d
			}
			out += " ORDER BY " + strings.Join(parts, ", ")
		}
		if n.Limit != nil {
			out += fmt.Sprintf(" LIMIT %d", *n.Limit)
		}
		if n.Offset != nil {
			out += fmt.Sprintf(" OFFSET %d", *n.Offset)
		}
		return out
	case *UnionQuery:
		op := "UNION"
		if n.UnionAll {
			op = "UNION ALL"
		}
		return fmt.Sprintf("%s %s %s", SelectStmtToString(n.Left), op, SelectStmtToString(n.Right))
	case *QuerySpec:
		var b strings.Builder
		b.WriteString("SELECT ")
		if n.Distinct {
			b.WriteString("DISTINCT ")
		}
		cols := make([]string, len(n.ResultColumns))
		for i, rc := range n.ResultColumns {
			cols[i] = resultColumnToString(rc)
		}
		b.WriteString(strings.Join(cols, ", "))
		if len(n.From) > 0 {
			tables := make([]string, len(n.From))
			for i, t := range n.From {
				tables[i] = t.TableName
				if t.RangeVar != "" {
					tables[i] += " " + t.RangeVar
				}
			}
			b.WriteString(" FROM " + strings.Join(tables, ", "))
		}
		if n.Where != nil {
			b.WriteString(" WHERE " + renderExpr(n.Where))
		}
		if len(n.GroupBy) > 0 {
			parts := make([]string, len(n.GroupBy))
			for i, g := range n.GroupBy {
				parts[i] = renderExpr(g)
			}
			b.WriteString(" GROUP BY " + strings.Join(parts, ", "))
		}
		if n.Having != nil {
			b.WriteString(" HAVING " + renderExpr(n.Having))
		}
		return b.String()
	}
	return fmt.Sprintf("<unknown stmt %T>", s)
}

func resultColumnToString(rc ResultColumn) string {
	if rc.All {
		return "*"
	}
	if rc.AllTable != "" {
		return rc.AllTable + ".*"
	}
	out := renderExpr(rc.Expression)
	if rc.Alias != "" {
		out += " AS " + rc.Alias
	}
	return out
}

// StmtToString renders any top level Stmt back to SQL text, dispatching to
// SelectStmtToString for query forms and formatting DML/DDL directly.
func StmtToString(s Stmt) string {
	switch n := s.(type) {
	case *SelectStmt, *QuerySpec, *UnionQuery:
		return SelectStmtToString(s)
	case *InsertValuesStmt:
		rows := make([]string, len(n.Rows))
		for i, row := range n.Rows {
			parts := make([]string, len(row))
			for j, e := range row {
				parts[j] = renderExpr(e)
			}
			rows[i] = "(" + strings.Join(parts, ", ") + ")"
		}
		cols := ""
		if len(n.ColNames) > 0 {
			cols = " (" + strings.Join(n.ColNames, ", ") + ")"
		}
		return fmt.Sprintf("INSERT INTO %s%s VALUES %s", n.TableName, cols, strings.Join(rows, ", "))
	case *InsertQueryStmt:
		cols := ""
		if len(n.ColNames) > 0 {
			cols = " (" + strings.Join(n.ColNames, ", ") + ")"
		}
		return fmt.Sprintf("INSERT INTO %s%s %s", n.TableName, cols, SelectStmtToString(n.Query))
	case *CreateTableStmt:
		cols := make([]string, len(n.ColDefs))
		for i, c := range n.ColDefs {
			col := c.Name + " " + c.Type.ToString()
			if c.NotNull {
				col += " NOT NULL"
			}
			cols[i] = col
		}
		ine := ""
		if n.IfNotExists {
			ine = "IF NOT EXISTS "
		}
		return fmt.Sprintf("CREATE TABLE %s%s (%s)", ine, n.TableName, strings.Join(cols, ", "))
	case *DropTableStmt:
		ie := ""
		if n.IfExists {
			ie = "IF EXISTS "
		}
		return fmt.Sprintf("DROP TABLE %s%s", ie, n.TableName)
	case *CreateViewStmt:
		kw := "VIEW"
		if n.Materialized {
			kw = "MATERIALIZED VIEW"
		}
		return fmt.Sprintf("CREATE %s %s AS %s", kw, n.ViewName, n.QuerySQL)
	case *DropViewStmt:
		return fmt.Sprintf("DROP VIEW %s", n.ViewName)
	case *RefreshViewStmt:
		return fmt.Sprintf("REFRESH VIEW %s", n.ViewName)
	case *CreateUserStmt:
		return fmt.Sprintf("CREATE USER %s", n.UserName)
	case *AlterUserStmt:
		return fmt.Sprintf("ALTER USER %s", n.UserName)
	case *DropUserStmt:
		return fmt.Sprintf("DROP USER %s", n.UserName)
	case *CreateDBStmt:
		return fmt.Sprintf("CREATE DATABASE %s", n.DBName)
	case *DropDBStmt:
		return fmt.Sprintf("DROP DATABASE %s", n.DBName)
	case *UpdateStmt:
		return fmt.Sprintf("UPDATE %s SET ...", n.TableName)
	case *DeleteStmt:
		return fmt.Sprintf("DELETE FROM %s", n.TableName)
	}
	return fmt.Sprintf("<unknown stmt %T>", s)
}
