// lexer creates tokens from a SQL string. The tokens are fed into the
// parser.
package compiler

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

type token struct {
	tokenType tokenType
	value     string
}

const (
	// tkKeyword is a reserved word. For example SELECT, FROM, or WHERE.
	tkKeyword tokenType = iota + 1
	// tkIdentifier is a word that is not a keyword, like a table or column name.
	tkIdentifier
	// tkWhitespace is a space, tab, or newline.
	tkWhitespace
	// tkEOF (End of file) is the end of input.
	tkEOF
	// tkSeparator is punctuation such as "(", ")", ",", ";".
	tkSeparator
	// tkOperator is a symbol that operates on arguments, e.g. "=", "<>", "||".
	tkOperator
	// tkLiteral is a quoted text value like 'foo'.
	tkLiteral
	// tkNumeric is a numeric value like 1, 1.2, or 3e10.
	tkNumeric
)

var keywords = []string{
	"EXPLAIN", "QUERY", "PLAN",
	"SELECT", "DISTINCT", "FROM", "WHERE", "GROUP", "BY", "HAVING",
	"ORDER", "ASC", "DESC", "LIMIT", "OFFSET", "AS",
	"UNION", "ALL",
	"INSERT", "INTO", "VALUES",
	"UPDATE", "SET", "DELETE",
	"AND", "OR", "NOT", "IS", "NULL", "IN", "BETWEEN", "LIKE", "ESCAPE",
	"EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", "CAST",
	"CREATE", "DROP", "TABLE", "IF", "EXISTS", "VIEW", "MATERIALIZED",
	"REFRESH", "WITH", "OPTION", "CHECK", "STORAGE", "FRAGMENT_SIZE",
	"PAGE_SIZE", "ENCODING",
	"USER", "PASSWORD", "SUPERUSER", "ALTER", "DATABASE", "OWNER",
	"BOOLEAN", "CHAR", "VARCHAR", "TEXT", "NUMERIC", "DECIMAL",
	"SMALLINT", "INT", "INTEGER", "BIGINT", "FLOAT", "DOUBLE", "PRECISION",
	"TIME", "TIMESTAMP",
	"COUNT", "SUM", "AVG", "MIN", "MAX",
	"PRIMARY", "KEY",
}

func (*lexer) isKeyword(w string) bool {
	uw := strings.ToUpper(w)
	return slices.Contains(keywords, uw)
}

type lexer struct {
	src   string
	start int
	end   int
}

func NewLexer(src string) *lexer {
	ts := strings.Trim(src, " \t\n")
	return &lexer{src: ts}
}

func (l *lexer) Lex() []token {
	ret := []token{}
	for {
		t := l.getToken()
		if t.tokenType == tkEOF {
			return ret
		}
		ret = append(ret, t)
	}
}

func (l *lexer) getToken() token {
	l.start = l.end
	r := l.peek(l.start)
	switch {
	case r == 0:
		return token{tkEOF, ""}
	case l.isWhiteSpace(r):
		return l.scanWhiteSpace()
	case l.isLetter(r) || l.isUnderscore(r):
		return l.scanWord()
	case l.isDigit(r):
		return l.scanNumber()
	case l.isSingleQuote(r):
		return l.scanLiteral()
	case l.isSeparator(r):
		return l.scanSeparator()
	default:
		return l.scanOperator()
	}
}

func (l *lexer) peek(pos int) rune {
	if len(l.src) <= pos {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[pos:])
	return r
}

func (l *lexer) next() rune {
	_, sz := utf8.DecodeRuneInString(l.src[l.end:])
	if sz == 0 {
		sz = 1
	}
	l.end += sz
	return l.peek(l.end)
}

func (l *lexer) scanWhiteSpace() token {
	l.next()
	for l.isWhiteSpace(l.peek(l.end)) {
		l.next()
	}
	return token{tokenType: tkWhitespace, value: " "}
}

func (l *lexer) scanWord() token {
	l.next()
	for l.isLetter(l.peek(l.end)) || l.isDigit(l.peek(l.end)) || l.isUnderscore(l.peek(l.end)) {
		l.next()
	}
	value := l.src[l.start:l.end]
	if l.isKeyword(value) {
		return token{tokenType: tkKeyword, value: strings.ToUpper(value)}
	}
	return token{tokenType: tkIdentifier, value: value}
}

// scanNumber handles integers, decimals (12.50), and exponents (1.2e10),
// matching the original's IntLiteral/FixedPtLiteral/FloatLiteral/
// DoubleLiteral split at parse time rather than here: the lexer only needs
// to capture the full literal text.
func (l *lexer) scanNumber() token {
	l.next()
	for l.isDigit(l.peek(l.end)) {
		l.next()
	}
	if l.peek(l.end) == '.' {
		l.next()
		for l.isDigit(l.peek(l.end)) {
			l.next()
		}
	}
	if l.peek(l.end) == 'e' || l.peek(l.end) == 'E' {
		l.next()
		if l.peek(l.end) == '+' || l.peek(l.end) == '-' {
			l.next()
		}
		for l.isDigit(l.peek(l.end)) {
			l.next()
		}
	}
	return token{tokenType: tkNumeric, value: l.src[l.start:l.end]}
}

func (l *lexer) scanSeparator() token {
	l.next()
	return token{tokenType: tkSeparator, value: l.src[l.start:l.end]}
}

// scanOperator handles the multi-character operators (<=, >=, <>, ||) by
// greedily consuming a second character when it extends a known operator.
func (l *lexer) scanOperator() token {
	r := l.peek(l.start)
	l.next()
	two := string(r) + string(l.peek(l.end))
	switch two {
	case "<=", ">=", "<>", "||":
		l.next()
		return token{tokenType: tkOperator, value: two}
	}
	return token{tokenType: tkOperator, value: l.src[l.start:l.end]}
}

func (l *lexer) scanLiteral() token {
	l.next()
	for {
		r := l.peek(l.end)
		if r == 0 {
			break
		}
		if l.isSingleQuote(r) {
			// A doubled quote ('') is an escaped quote inside the literal.
			if l.peek(l.end+1) == '\'' {
				l.next()
				l.next()
				continue
			}
			break
		}
		l.next()
	}
	l.next()
	raw := l.src[l.start:l.end]
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return token{tokenType: tkLiteral, value: strings.ReplaceAll(inner, "''", "'")}
}

func (*lexer) isWhiteSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (*lexer) isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func (*lexer) isUnderscore(r rune) bool {
	return r == '_'
}

func (*lexer) isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

func (*lexer) isSeparator(r rune) bool {
	return r == ',' || r == '(' || r == ')' || r == ';' || r == '*' || r == '.'
}

func (*lexer) isSingleQuote(r rune) bool {
	return r == '\''
}
