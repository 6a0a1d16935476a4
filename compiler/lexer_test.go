package compiler

import (
	"reflect"
	"testing"
)

type tc struct {
	sql      string
	expected []token
}

func TestLexSelect(t *testing.T) {
	cases := []tc{
		{
			sql: "SELECT * FROM foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkSeparator, "*"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "SELECT COUNT(*) FROM foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkKeyword, "COUNT"},
				{tkSeparator, "("},
				{tkSeparator, "*"},
				{tkSeparator, ")"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "select * from foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkSeparator, "*"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "EXPLAIN SELECT 1",
			expected: []token{
				{tkKeyword, "EXPLAIN"},
				{tkWhitespace, " "},
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkNumeric, "1"},
			},
		},
		{
			sql: "SELECT foo.id FROM foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
				{tkSeparator, "."},
				{tkIdentifier, "id"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "SELECT foo.* FROM foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
				{tkSeparator, "."},
				{tkSeparator, "*"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "SELECT 1 AS bar FROM foo",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkNumeric, "1"},
				{tkWhitespace, " "},
				{tkKeyword, "AS"},
				{tkWhitespace, " "},
				{tkIdentifier, "bar"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
			},
		},
		{
			sql: "SELECT 1 + 2 - 3 * 4",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkNumeric, "1"},
				{tkWhitespace, " "},
				{tkOperator, "+"},
				{tkWhitespace, " "},
				{tkNumeric, "2"},
				{tkWhitespace, " "},
				{tkOperator, "-"},
				{tkWhitespace, " "},
				{tkNumeric, "3"},
				{tkWhitespace, " "},
				{tkSeparator, "*"},
				{tkWhitespace, " "},
				{tkNumeric, "4"},
			},
		},
		{
			sql: "SELECT * FROM foo WHERE id = 1",
			expected: []token{
				{tkKeyword, "SELECT"},
				{tkWhitespace, " "},
				{tkSeparator, "*"},
				{tkWhitespace, " "},
				{tkKeyword, "FROM"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
				{tkWhitespace, " "},
				{tkKeyword, "WHERE"},
				{tkWhitespace, " "},
				{tkIdentifier, "id"},
				{tkWhitespace, " "},
				{tkOperator, "="},
				{tkWhitespace, " "},
				{tkNumeric, "1"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.sql, func(t *testing.T) {
			ret := NewLexer(c.sql).Lex()
			if !reflect.DeepEqual(ret, c.expected) {
				t.Errorf("expected %#v got %#v", c.expected, ret)
			}
		})
	}
}

func TestLexCreate(t *testing.T) {
	cases := []tc{
		{
			sql: "CREATE TABLE foo (id INTEGER, first_name TEXT, age INTEGER)",
			expected: []token{
				{tkKeyword, "CREATE"},
				{tkWhitespace, " "},
				{tkKeyword, "TABLE"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
				{tkWhitespace, " "},
				{tkSeparator, "("},
				{tkIdentifier, "id"},
				{tkWhitespace, " "},
				{tkKeyword, "INTEGER"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkIdentifier, "first_name"},
				{tkWhitespace, " "},
				{tkKeyword, "TEXT"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkIdentifier, "age"},
				{tkWhitespace, " "},
				{tkKeyword, "INTEGER"},
				{tkSeparator, ")"},
			},
		},
		{
			sql: "CREATE TABLE IF NOT EXISTS bar (id INTEGER);",
			expected: []token{
				{tkKeyword, "CREATE"},
				{tkWhitespace, " "},
				{tkKeyword, "TABLE"},
				{tkWhitespace, " "},
				{tkKeyword, "IF"},
				{tkWhitespace, " "},
				{tkKeyword, "NOT"},
				{tkWhitespace, " "},
				{tkKeyword, "EXISTS"},
				{tkWhitespace, " "},
				{tkIdentifier, "bar"},
				{tkWhitespace, " "},
				{tkSeparator, "("},
				{tkIdentifier, "id"},
				{tkWhitespace, " "},
				{tkKeyword, "INTEGER"},
				{tkSeparator, ")"},
				{tkSeparator, ";"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.sql, func(t *testing.T) {
			ret := NewLexer(c.sql).Lex()
			if !reflect.DeepEqual(ret, c.expected) {
				t.Errorf("expected %#v got %#v", c.expected, ret)
			}
		})
	}
}

func TestLexInsert(t *testing.T) {
	cases := []tc{
		{
			sql: "INSERT INTO foo (id, name) VALUES (1, 'gud'), (2, 'joe')",
			expected: []token{
				{tkKeyword, "INSERT"},
				{tkWhitespace, " "},
				{tkKeyword, "INTO"},
				{tkWhitespace, " "},
				{tkIdentifier, "foo"},
				{tkWhitespace, " "},
				{tkSeparator, "("},
				{tkIdentifier, "id"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkIdentifier, "name"},
				{tkSeparator, ")"},
				{tkWhitespace, " "},
				{tkKeyword, "VALUES"},
				{tkWhitespace, " "},
				{tkSeparator, "("},
				{tkNumeric, "1"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkLiteral, "gud"},
				{tkSeparator, ")"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkSeparator, "("},
				{tkNumeric, "2"},
				{tkSeparator, ","},
				{tkWhitespace, " "},
				{tkLiteral, "joe"},
				{tkSeparator, ")"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.sql, func(t *testing.T) {
			ret := NewLexer(c.sql).Lex()
			if !reflect.DeepEqual(ret, c.expected) {
				t.Errorf("expected %#v got %#v", c.expected, ret)
			}
		})
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	got := NewLexer("a<=b<>c||d").Lex()
	want := []token{
		{tkIdentifier, "a"},
		{tkOperator, "<="},
		{tkIdentifier, "b"},
		{tkOperator, "<>"},
		{tkIdentifier, "c"},
		{tkOperator, "||"},
		{tkIdentifier, "d"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLexStringLiteralWithEscapedQuote(t *testing.T) {
	got := NewLexer("'it''s'").Lex()
	want := []token{{tkLiteral, "it's"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLexDecimalAndExponent(t *testing.T) {
	got := NewLexer("12.50 1e10").Lex()
	want := []token{
		{tkNumeric, "12.50"},
		{tkWhitespace, " "},
		{tkNumeric, "1e10"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
