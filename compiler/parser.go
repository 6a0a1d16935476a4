// parser takes tokens from the lexer and produces an AST (Abstract Syntax
// Tree). The AST is consumed by the analyzer package.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heavyql/analyzer/sqltype"
)

const (
	tokenErr   = "unexpected token %q"
	identErr   = "expected identifier but got %q"
	literalErr = "expected literal but got %q"
)

type parser struct {
	tokens []token
	pos    int // index of the current (already consumed) token
}

func NewParser(tokens []token) *parser {
	filtered := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if t.tokenType != tkWhitespace {
			filtered = append(filtered, t)
		}
	}
	return &parser{tokens: filtered, pos: -1}
}

func (p *parser) Parse() (Stmt, error) {
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	p.acceptValue(";")
	if p.peek().tokenType != tkEOF {
		return nil, fmt.Errorf(tokenErr, p.peek().value)
	}
	return stmt, nil
}

// ---- token cursor helpers ----

func (p *parser) peek() token {
	if p.pos+1 >= len(p.tokens) {
		return token{tkEOF, ""}
	}
	return p.tokens[p.pos+1]
}

func (p *parser) peekAt(offset int) token {
	idx := p.pos + 1 + offset
	if idx >= len(p.tokens) || idx < 0 {
		return token{tkEOF, ""}
	}
	return p.tokens[idx]
}

func (p *parser) advance() token {
	if p.pos+1 < len(p.tokens) {
		p.pos++
		return p.tokens[p.pos]
	}
	p.pos = len(p.tokens)
	return token{tkEOF, ""}
}

// acceptValue consumes the next token if its value matches (case sensitive
// for punctuation, already-uppercased for keywords) and reports whether it
// did.
func (p *parser) acceptValue(v string) bool {
	if p.peek().value == v {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectValue(v string) error {
	if !p.acceptValue(v) {
		return fmt.Errorf(tokenErr, p.peek().value)
	}
	return nil
}

func (p *parser) expectIdentifier() (string, error) {
	if p.peek().tokenType != tkIdentifier {
		return "", fmt.Errorf(identErr, p.peek().value)
	}
	return p.advance().value, nil
}

// expectOptionName accepts either an identifier or a keyword token as a
// WITH-clause option name. A number of option names this grammar defines
// (STORAGE, REFRESH, PASSWORD, SUPERUSER, FRAGMENT_SIZE, PAGE_SIZE, OWNER)
// are also reserved keywords, so a plain identifier check rejects them.
func (p *parser) expectOptionName() (string, error) {
	if p.peek().tokenType == tkIdentifier || p.peek().tokenType == tkKeyword {
		return p.advance().value, nil
	}
	return "", fmt.Errorf(identErr, p.peek().value)
}

// ---- top level ----

func (p *parser) parseStmt() (Stmt, error) {
	sb := &StmtBase{}
	switch p.peek().value {
	case "SELECT":
		return p.parseSelectStmt(sb)
	case "INSERT":
		return p.parseInsertStmt(sb)
	case "UPDATE":
		return p.parseUpdateStmt(sb)
	case "DELETE":
		return p.parseDeleteStmt(sb)
	case "CREATE":
		return p.parseCreateStmt(sb)
	case "DROP":
		return p.parseDropStmt(sb)
	case "REFRESH":
		return p.parseRefreshViewStmt(sb)
	case "ALTER":
		return p.parseAlterStmt(sb)
	}
	return nil, fmt.Errorf(tokenErr, p.peek().value)
}

// ---- SELECT ----

func (p *parser) parseSelectStmt(sb *StmtBase) (*SelectStmt, error) {
	query, err := p.parseQueryOrUnion()
	if err != nil {
		return nil, err
	}
	stmt := &SelectStmt{StmtBase: sb, Query: query}
	if p.acceptValue("ORDER") {
		if err := p.expectValue("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			desc := false
			if p.acceptValue("DESC") {
				desc = true
			} else {
				p.acceptValue("ASC")
			}
			stmt.OrderBy = append(stmt.OrderBy, OrderEntry{Expr: e, Desc: desc})
			if !p.acceptValue(",") {
				break
			}
		}
	}
	if p.acceptValue("LIMIT") {
		n, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Limit = &n
	}
	if p.acceptValue("OFFSET") {
		n, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Offset = &n
	}
	return stmt, nil
}

func (p *parser) expectIntLiteral() (int64, error) {
	if p.peek().tokenType != tkNumeric {
		return 0, fmt.Errorf(literalErr, p.peek().value)
	}
	v := p.advance().value
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (p *parser) parseQueryOrUnion() (Stmt, error) {
	left, err := p.parseQuerySpec()
	if err != nil {
		return nil, err
	}
	var result Stmt = left
	for p.peek().value == "UNION" {
		p.advance()
		unionAll := p.acceptValue("ALL")
		right, err := p.parseQuerySpec()
		if err != nil {
			return nil, err
		}
		result = &UnionQuery{Left: result, Right: right, UnionAll: unionAll}
	}
	return result, nil
}

func (p *parser) parseQuerySpec() (*QuerySpec, error) {
	if err := p.expectValue("SELECT"); err != nil {
		return nil, err
	}
	qs := &QuerySpec{}
	qs.Distinct = p.acceptValue("DISTINCT")
	for {
		rc, err := p.parseResultColumn()
		if err != nil {
			return nil, err
		}
		qs.ResultColumns = append(qs.ResultColumns, rc)
		if !p.acceptValue(",") {
			break
		}
	}
	if err := p.expectValue("FROM"); err != nil {
		return nil, err
	}
	for {
		tr, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		qs.From = append(qs.From, tr)
		if !p.acceptValue(",") {
			break
		}
	}
	if p.acceptValue("WHERE") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		qs.Where = e
	}
	if p.acceptValue("GROUP") {
		if err := p.expectValue("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			qs.GroupBy = append(qs.GroupBy, e)
			if !p.acceptValue(",") {
				break
			}
		}
	}
	if p.acceptValue("HAVING") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		qs.Having = e
	}
	return qs, nil
}

func (p *parser) parseResultColumn() (ResultColumn, error) {
	if p.peek().value == "*" {
		p.advance()
		return ResultColumn{All: true}, nil
	}
	if p.peek().tokenType == tkIdentifier && p.peekAt(1).value == "." && p.peekAt(2).value == "*" {
		t := p.advance().value
		p.advance()
		p.advance()
		return ResultColumn{AllTable: t}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return ResultColumn{}, err
	}
	rc := ResultColumn{Expression: e}
	if p.acceptValue("AS") {
		alias, err := p.expectIdentifier()
		if err != nil {
			return ResultColumn{}, err
		}
		rc.Alias = alias
	} else if p.peek().tokenType == tkIdentifier {
		rc.Alias = p.advance().value
	}
	return rc, nil
}

func (p *parser) parseTableRef() (TableRef, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return TableRef{}, err
	}
	tr := TableRef{TableName: name}
	if p.acceptValue("AS") {
		rv, err := p.expectIdentifier()
		if err != nil {
			return TableRef{}, err
		}
		tr.RangeVar = rv
	} else if p.peek().tokenType == tkIdentifier {
		tr.RangeVar = p.advance().value
	}
	return tr, nil
}

// ---- INSERT / UPDATE / DELETE ----

func (p *parser) parseInsertStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("INSERT"); err != nil {
		return nil, err
	}
	if err := p.expectValue("INTO"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var colNames []string
	if p.acceptValue("(") {
		for {
			c, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			colNames = append(colNames, c)
			if !p.acceptValue(",") {
				break
			}
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
	}
	if p.peek().value == "SELECT" {
		q, err := p.parseSelectStmt(&StmtBase{})
		if err != nil {
			return nil, err
		}
		return &InsertQueryStmt{StmtBase: sb, TableName: tableName, ColNames: colNames, Query: q}, nil
	}
	if err := p.expectValue("VALUES"); err != nil {
		return nil, err
	}
	stmt := &InsertValuesStmt{StmtBase: sb, TableName: tableName, ColNames: colNames}
	for {
		if err := p.expectValue("("); err != nil {
			return nil, err
		}
		var row []Expr
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			row = append(row, e)
			if !p.acceptValue(",") {
				break
			}
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
		stmt.Rows = append(stmt.Rows, row)
		if !p.acceptValue(",") {
			break
		}
	}
	return stmt, nil
}

func (p *parser) parseUpdateStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("UPDATE"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectValue("SET"); err != nil {
		return nil, err
	}
	stmt := &UpdateStmt{StmtBase: sb, TableName: tableName, SetList: map[string]Expr{}}
	for {
		col, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue("="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.SetList[col] = val
		if !p.acceptValue(",") {
			break
		}
	}
	if p.acceptValue("WHERE") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = e
	}
	return stmt, nil
}

func (p *parser) parseDeleteStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectValue("FROM"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt := &DeleteStmt{StmtBase: sb, TableName: tableName}
	if p.acceptValue("WHERE") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = e
	}
	return stmt, nil
}

// ---- DDL ----

func (p *parser) parseCreateStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("CREATE"); err != nil {
		return nil, err
	}
	switch p.peek().value {
	case "TABLE":
		return p.parseCreateTableStmt(sb)
	case "VIEW":
		return p.parseCreateViewStmt(sb, false)
	case "MATERIALIZED":
		p.advance()
		if err := p.expectValue("VIEW"); err != nil {
			return nil, err
		}
		return p.parseCreateViewStmtBody(sb, true)
	case "USER":
		return p.parseCreateUserStmt(sb)
	case "DATABASE":
		return p.parseCreateDBStmt(sb)
	}
	return nil, fmt.Errorf(tokenErr, p.peek().value)
}

func (p *parser) parseCreateTableStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("TABLE"); err != nil {
		return nil, err
	}
	stmt := &CreateTableStmt{StmtBase: sb}
	if p.acceptValue("IF") {
		if err := p.expectValue("NOT"); err != nil {
			return nil, err
		}
		if err := p.expectValue("EXISTS"); err != nil {
			return nil, err
		}
		stmt.IfNotExists = true
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.TableName = name
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	for {
		if p.peek().value == "PRIMARY" {
			// PRIMARY KEY (col, ...) table constraint: parsed and discarded,
			// since the analyzer does not model a separate key constraint
			// list (spec.md's catalog contract has no primary key concept).
			p.advance()
			if err := p.expectValue("KEY"); err != nil {
				return nil, err
			}
			if err := p.expectValue("("); err != nil {
				return nil, err
			}
			for {
				if _, err := p.expectIdentifier(); err != nil {
					return nil, err
				}
				if !p.acceptValue(",") {
					break
				}
			}
			if err := p.expectValue(")"); err != nil {
				return nil, err
			}
		} else {
			colName, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			colType, err := p.parseSQLType()
			if err != nil {
				return nil, err
			}
			cd := ColumnDef{Name: colName, Type: colType}
			if p.acceptValue("NOT") {
				if err := p.expectValue("NULL"); err != nil {
					return nil, err
				}
				cd.NotNull = true
			}
			if p.acceptValue("ENCODING") {
				enc, err := p.parseCompressDef()
				if err != nil {
					return nil, err
				}
				cd.Compress = enc
			}
			stmt.ColDefs = append(stmt.ColDefs, cd)
		}
		if !p.acceptValue(",") {
			break
		}
	}
	if err := p.expectValue(")"); err != nil {
		return nil, err
	}
	if p.acceptValue("WITH") {
		if err := p.parseTableWithOptions(stmt); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseTableWithOptions(stmt *CreateTableStmt) error {
	if err := p.expectValue("("); err != nil {
		return err
	}
	for {
		opt, err := p.expectOptionName()
		if err != nil {
			return err
		}
		if err := p.expectValue("="); err != nil {
			return err
		}
		switch strings.ToUpper(opt) {
		case "STORAGE":
			v, err := p.expectOptionName()
			if err != nil {
				return err
			}
			stmt.StorageOption = strings.ToUpper(v)
		case "FRAGMENT_SIZE":
			n, err := p.expectIntLiteral()
			if err != nil {
				return err
			}
			stmt.FragSize = int(n)
			stmt.HasFragSize = true
		case "PAGE_SIZE":
			n, err := p.expectIntLiteral()
			if err != nil {
				return err
			}
			stmt.PageSize = int(n)
			stmt.HasPageSize = true
		default:
			return fmt.Errorf("unrecognized table option %q", opt)
		}
		if !p.acceptValue(",") {
			break
		}
	}
	return p.expectValue(")")
}

func (p *parser) parseCompressDef() (*CompressDef, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	cd := &CompressDef{Name: strings.ToUpper(name)}
	if p.acceptValue("(") {
		n, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		cd.Param = int(n)
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
	}
	return cd, nil
}

func (p *parser) parseCreateViewStmt(sb *StmtBase, materialized bool) (Stmt, error) {
	if err := p.expectValue("VIEW"); err != nil {
		return nil, err
	}
	return p.parseCreateViewStmtBody(sb, materialized)
}

func (p *parser) parseCreateViewStmtBody(sb *StmtBase, materialized bool) (Stmt, error) {
	stmt := &CreateViewStmt{StmtBase: sb, Materialized: materialized}
	if p.acceptValue("IF") {
		if err := p.expectValue("NOT"); err != nil {
			return nil, err
		}
		if err := p.expectValue("EXISTS"); err != nil {
			return nil, err
		}
		stmt.IfNotExists = true
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.ViewName = name
	if p.acceptValue("(") {
		for {
			colName, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			stmt.ColNames = append(stmt.ColNames, colName)
			if !p.acceptValue(",") {
				break
			}
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
	}
	if p.acceptValue("WITH") {
		if err := p.expectValue("("); err != nil {
			return nil, err
		}
		for {
			opt, err := p.expectOptionName()
			if err != nil {
				return nil, err
			}
			if err := p.expectValue("="); err != nil {
				return nil, err
			}
			switch strings.ToUpper(opt) {
			case "STORAGE":
				v, err := p.expectOptionName()
				if err != nil {
					return nil, err
				}
				stmt.StorageOption = strings.ToUpper(v)
			case "REFRESH":
				v, err := p.expectOptionName()
				if err != nil {
					return nil, err
				}
				stmt.RefreshOption = strings.ToUpper(v)
			default:
				return nil, fmt.Errorf("unrecognized view option %q", opt)
			}
			if !p.acceptValue(",") {
				break
			}
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
	}
	if p.acceptValue("CHECK") {
		if err := p.expectValue("OPTION"); err != nil {
			return nil, err
		}
		stmt.CheckOption = true
	}
	if err := p.expectValue("AS"); err != nil {
		return nil, err
	}
	start := p.pos + 1
	q, err := p.parseSelectStmt(&StmtBase{})
	if err != nil {
		return nil, err
	}
	stmt.Query = q
	stmt.QuerySQL = renderTokens(p.tokens[start : p.pos+1])
	return stmt, nil
}

func (p *parser) parseCreateUserStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("USER"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt := &CreateUserStmt{StmtBase: sb, UserName: name}
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	for {
		opt, err := p.expectOptionName()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue("="); err != nil {
			return nil, err
		}
		switch strings.ToUpper(opt) {
		case "PASSWORD":
			if p.peek().tokenType != tkLiteral {
				return nil, fmt.Errorf(literalErr, p.peek().value)
			}
			stmt.Password = p.advance().value
		case "SUPERUSER":
			v, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			stmt.IsSuper = strings.EqualFold(v, "true")
		default:
			return nil, fmt.Errorf("unrecognized user option %q", opt)
		}
		if !p.acceptValue(",") {
			break
		}
	}
	return stmt, p.expectValue(")")
}

func (p *parser) parseAlterStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("ALTER"); err != nil {
		return nil, err
	}
	if err := p.expectValue("USER"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt := &AlterUserStmt{StmtBase: sb, UserName: name}
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	for {
		opt, err := p.expectOptionName()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue("="); err != nil {
			return nil, err
		}
		switch strings.ToUpper(opt) {
		case "PASSWORD":
			if p.peek().tokenType != tkLiteral {
				return nil, fmt.Errorf(literalErr, p.peek().value)
			}
			v := p.advance().value
			stmt.Password = &v
		case "SUPERUSER":
			v, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			b := strings.EqualFold(v, "true")
			stmt.IsSuper = &b
		default:
			return nil, fmt.Errorf("unrecognized user option %q", opt)
		}
		if !p.acceptValue(",") {
			break
		}
	}
	return stmt, p.expectValue(")")
}

func (p *parser) parseCreateDBStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("DATABASE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt := &CreateDBStmt{StmtBase: sb, DBName: name}
	if p.acceptValue("(") {
		opt, err := p.expectOptionName()
		if err != nil {
			return nil, err
		}
		if strings.ToUpper(opt) != "OWNER" {
			return nil, fmt.Errorf("unrecognized database option %q", opt)
		}
		if err := p.expectValue("="); err != nil {
			return nil, err
		}
		owner, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		stmt.Owner = owner
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseDropStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("DROP"); err != nil {
		return nil, err
	}
	switch p.peek().value {
	case "TABLE":
		p.advance()
		ifExists := p.acceptValue("IF") && p.acceptValue("EXISTS")
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &DropTableStmt{StmtBase: sb, IfExists: ifExists, TableName: name}, nil
	case "VIEW":
		p.advance()
		ifExists := p.acceptValue("IF") && p.acceptValue("EXISTS")
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &DropViewStmt{StmtBase: sb, IfExists: ifExists, ViewName: name}, nil
	case "USER":
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &DropUserStmt{StmtBase: sb, UserName: name}, nil
	case "DATABASE":
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &DropDBStmt{StmtBase: sb, DBName: name}, nil
	}
	return nil, fmt.Errorf(tokenErr, p.peek().value)
}

func (p *parser) parseRefreshViewStmt(sb *StmtBase) (Stmt, error) {
	if err := p.expectValue("REFRESH"); err != nil {
		return nil, err
	}
	if err := p.expectValue("VIEW"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &RefreshViewStmt{StmtBase: sb, ViewName: name}, nil
}

// parseSQLType parses a column type, e.g. `VARCHAR(32)`, `NUMERIC(10, 2)`,
// `DOUBLE PRECISION`, `INTEGER` (a synonym for INT).
func (p *parser) parseSQLType() (sqltype.SQLType, error) {
	name := p.advance().value
	tag, err := sqlTagFromKeyword(name)
	if err != nil {
		return sqltype.SQLType{}, err
	}
	t := sqltype.SQLType{Tag: tag}
	if tag == sqltype.DOUBLE {
		p.acceptValue("PRECISION")
	}
	if p.acceptValue("(") {
		n1, err := p.expectIntLiteral()
		if err != nil {
			return sqltype.SQLType{}, err
		}
		t.Param1 = int(n1)
		if p.acceptValue(",") {
			n2, err := p.expectIntLiteral()
			if err != nil {
				return sqltype.SQLType{}, err
			}
			t.Param2 = int(n2)
		}
		if err := p.expectValue(")"); err != nil {
			return sqltype.SQLType{}, err
		}
	}
	return t, nil
}

func sqlTagFromKeyword(kw string) (sqltype.Tag, error) {
	switch kw {
	case "BOOLEAN":
		return sqltype.BOOLEAN, nil
	case "CHAR":
		return sqltype.CHAR, nil
	case "VARCHAR":
		return sqltype.VARCHAR, nil
	case "TEXT":
		return sqltype.TEXT, nil
	case "NUMERIC":
		return sqltype.NUMERIC, nil
	case "DECIMAL":
		return sqltype.DECIMAL, nil
	case "SMALLINT":
		return sqltype.SMALLINT, nil
	case "INT", "INTEGER":
		return sqltype.INT, nil
	case "BIGINT":
		return sqltype.BIGINT, nil
	case "FLOAT":
		return sqltype.FLOAT, nil
	case "DOUBLE":
		return sqltype.DOUBLE, nil
	case "TIME":
		return sqltype.TIME, nil
	case "TIMESTAMP":
		return sqltype.TIMESTAMP, nil
	}
	return 0, fmt.Errorf("expected column type but got %q", kw)
}

// ---- expressions, precedence climbing ----
//
// Lowest to highest: OR, AND, NOT, comparison (= <> < <= > >= IS IN BETWEEN
// LIKE), concatenation (||), additive (+ -), multiplicative (* / %), unary
// (- +), primary.

func (p *parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().value == "OR" {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OperExpr{Op: "OR", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().value == "AND" {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &OperExpr{Op: "AND", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.peek().value == "NOT" {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &OperExpr{Op: "NOT", Right: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[string]bool{
	"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case comparisonOps[p.peek().value]:
			op := p.advance().value
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			left = &OperExpr{Op: op, Left: left, Right: right}
		case p.peek().value == "IS":
			p.advance()
			negate := p.acceptValue("NOT")
			if err := p.expectValue("NULL"); err != nil {
				return nil, err
			}
			left = &IsNullExpr{Operand: left, Negate: negate}
		case p.peek().value == "NOT" && (p.peekAt(1).value == "IN" || p.peekAt(1).value == "BETWEEN" || p.peekAt(1).value == "LIKE"):
			p.advance()
			e, err := p.parseNegatablePredicate(left, true)
			if err != nil {
				return nil, err
			}
			left = e
		case p.peek().value == "IN" || p.peek().value == "BETWEEN" || p.peek().value == "LIKE":
			e, err := p.parseNegatablePredicate(left, false)
			if err != nil {
				return nil, err
			}
			left = e
		default:
			return left, nil
		}
	}
}

func (p *parser) parseNegatablePredicate(operand Expr, negate bool) (Expr, error) {
	switch p.peek().value {
	case "IN":
		p.advance()
		if err := p.expectValue("("); err != nil {
			return nil, err
		}
		var values []Expr
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			values = append(values, e)
			if !p.acceptValue(",") {
				break
			}
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
		return &InValues{Operand: operand, Values: values, Negate: negate}, nil
	case "BETWEEN":
		p.advance()
		lower, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue("AND"); err != nil {
			return nil, err
		}
		upper, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return &BetweenExpr{Operand: operand, Lower: lower, Upper: upper, Negate: negate}, nil
	case "LIKE":
		p.advance()
		pattern, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		le := &LikeExpr{Operand: operand, Pattern: pattern, Negate: negate}
		if p.acceptValue("ESCAPE") {
			esc, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			le.Escape = esc
		}
		return le, nil
	}
	return nil, fmt.Errorf(tokenErr, p.peek().value)
}

func (p *parser) parseConcat() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().value == "||" {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &OperExpr{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().value == "+" || p.peek().value == "-" {
		op := p.advance().value
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &OperExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().value == "*" || p.peek().value == "/" || p.peek().value == "%" {
		op := p.advance().value
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &OperExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().value == "-" || p.peek().value == "+" {
		op := p.advance().value
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return &OperExpr{Op: "-", Right: operand}, nil
		}
		return operand, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch {
	case t.value == "(":
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue(")"); err != nil {
			return nil, err
		}
		return e, nil
	case t.value == "NULL":
		p.advance()
		return &NullLiteral{}, nil
	case t.value == "USER":
		p.advance()
		return &UserLiteral{}, nil
	case t.value == "CAST":
		return p.parseCast()
	case t.value == "CASE":
		return p.parseCase()
	case t.value == "EXISTS":
		return p.parseExists(false)
	case t.value == "NOT" && p.peekAt(1).value == "EXISTS":
		p.advance()
		return p.parseExists(true)
	case t.tokenType == tkLiteral:
		p.advance()
		return &StringLiteral{Value: t.value}, nil
	case t.tokenType == tkNumeric:
		return p.parseNumericLiteral()
	case t.value == "COUNT" || t.value == "SUM" || t.value == "AVG" || t.value == "MIN" || t.value == "MAX":
		return p.parseFunctionRef()
	case t.tokenType == tkIdentifier || t.tokenType == tkKeyword:
		return p.parseColumnRefOrFunction()
	}
	return nil, fmt.Errorf(tokenErr, t.value)
}

func (p *parser) parseNumericLiteral() (Expr, error) {
	v := p.advance().value
	if strings.ContainsAny(v, "eE") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		return &DoubleLiteral{Value: f}, nil
	}
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return &FixedPtLiteral{Digits: strings.Replace(v, ".", "", 1), Scale: len(v) - i - 1}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &IntLiteral{Value: n}, nil
}

func (p *parser) parseCast() (Expr, error) {
	p.advance()
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	operand, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectValue("AS"); err != nil {
		return nil, err
	}
	t, err := p.parseSQLType()
	if err != nil {
		return nil, err
	}
	if err := p.expectValue(")"); err != nil {
		return nil, err
	}
	return &CastExpr{Operand: operand, Type: t}, nil
}

func (p *parser) parseCase() (Expr, error) {
	p.advance()
	ce := &CaseExpr{}
	if p.peek().value != "WHEN" {
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Operand = operand
	}
	for p.acceptValue("WHEN") {
		when, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectValue("THEN"); err != nil {
			return nil, err
		}
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Whens = append(ce.Whens, CaseWhen{When: when, Then: then})
	}
	if p.acceptValue("ELSE") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Else = e
	}
	if err := p.expectValue("END"); err != nil {
		return nil, err
	}
	return ce, nil
}

func (p *parser) parseExists(negate bool) (Expr, error) {
	if err := p.expectValue("EXISTS"); err != nil {
		return nil, err
	}
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	q, err := p.parseSelectStmt(&StmtBase{})
	if err != nil {
		return nil, err
	}
	if err := p.expectValue(")"); err != nil {
		return nil, err
	}
	return &ExistsExpr{Query: q, Negate: negate}, nil
}

func (p *parser) parseFunctionRef() (Expr, error) {
	name := p.advance().value
	if err := p.expectValue("("); err != nil {
		return nil, err
	}
	fr := &FunctionRef{Name: name}
	if p.peek().value == "*" {
		p.advance()
		fr.Star = true
		return fr, p.expectValue(")")
	}
	fr.Distinct = p.acceptValue("DISTINCT")
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fr.Args = append(fr.Args, e)
		if !p.acceptValue(",") {
			break
		}
	}
	return fr, p.expectValue(")")
}

func (p *parser) parseColumnRefOrFunction() (Expr, error) {
	first := p.advance().value
	if p.peek().value == "(" {
		p.advance()
		fr := &FunctionRef{Name: first}
		if p.peek().value != ")" {
			for {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				fr.Args = append(fr.Args, e)
				if !p.acceptValue(",") {
					break
				}
			}
		}
		return fr, p.expectValue(")")
	}
	if p.acceptValue(".") {
		if p.peek().value == "*" {
			p.advance()
			return &ColumnRef{Table: first, All: true}, nil
		}
		col, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ColumnRef{Table: first, Column: col}, nil
	}
	return &ColumnRef{Column: first}, nil
}

// renderTokens reconstructs source text from a token slice, used to record
// CreateViewStmt.QuerySQL the way the original stores a view's defining
// SELECT as text rather than re-deriving it from the tree.
func renderTokens(toks []token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.tokenType == tkLiteral {
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(t.value, "'", "''"))
			b.WriteByte('\'')
		} else {
			b.WriteString(t.value)
		}
	}
	return b.String()
}
