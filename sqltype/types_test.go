package sqltype

import "testing"

func TestIsString(t *testing.T) {
	cases := []struct {
		tag  Tag
		want bool
	}{
		{CHAR, true},
		{VARCHAR, true},
		{TEXT, true},
		{INT, false},
		{BOOLEAN, false},
	}
	for _, c := range cases {
		if got := IsString(c.tag); got != c.want {
			t.Fatalf("IsString(%s) = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestIsNumber(t *testing.T) {
	cases := []struct {
		tag  Tag
		want bool
	}{
		{SMALLINT, true},
		{INT, true},
		{BIGINT, true},
		{FLOAT, true},
		{DOUBLE, true},
		{NUMERIC, true},
		{DECIMAL, true},
		{TEXT, false},
		{BOOLEAN, false},
	}
	for _, c := range cases {
		if got := IsNumber(c.tag); got != c.want {
			t.Fatalf("IsNumber(%s) = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestCommonNumericTypeWidensIntegers(t *testing.T) {
	got := CommonNumericType(TypeInfo{Type: SMALLINT}, TypeInfo{Type: BIGINT})
	if got.Type != BIGINT {
		t.Fatalf("expected BIGINT got %s", got.Type)
	}
}

func TestCommonNumericTypeDoubleDominates(t *testing.T) {
	got := CommonNumericType(TypeInfo{Type: FLOAT}, TypeInfo{Type: DOUBLE})
	if got.Type != DOUBLE {
		t.Fatalf("expected DOUBLE got %s", got.Type)
	}
}

func TestCommonNumericTypeNumericSized(t *testing.T) {
	a := TypeInfo{Type: NUMERIC, Dimension: 5, Scale: 2}
	b := TypeInfo{Type: INT}
	got := CommonNumericType(a, b)
	if got.Type != NUMERIC {
		t.Fatalf("expected NUMERIC got %s", got.Type)
	}
	if got.Scale != 2 {
		t.Fatalf("expected scale 2 got %d", got.Scale)
	}
	if got.Dimension < 10+2 {
		t.Fatalf("expected dimension to cover INT's digits, got %d", got.Dimension)
	}
}

func TestCommonStringTypeDominance(t *testing.T) {
	cases := []struct {
		a, b TypeInfo
		want Tag
	}{
		{TypeInfo{Type: CHAR, Dimension: 3}, TypeInfo{Type: VARCHAR, Dimension: 10}, VARCHAR},
		{TypeInfo{Type: VARCHAR, Dimension: 3}, TypeInfo{Type: TEXT}, TEXT},
		{TypeInfo{Type: CHAR, Dimension: 3}, TypeInfo{Type: CHAR, Dimension: 10}, CHAR},
	}
	for _, c := range cases {
		got := CommonStringType(c.a, c.b)
		if got.Type != c.want {
			t.Fatalf("CommonStringType(%v, %v) = %s, want %s", c.a, c.b, got.Type, c.want)
		}
	}
}

func TestCommonStringTypeMaxDimension(t *testing.T) {
	got := CommonStringType(TypeInfo{Type: VARCHAR, Dimension: 3}, TypeInfo{Type: VARCHAR, Dimension: 10})
	if got.Dimension != 10 {
		t.Fatalf("expected dimension 10 got %d", got.Dimension)
	}
}

func TestTypeInfoEqual(t *testing.T) {
	a := TypeInfo{Type: INT, NotNull: true}
	b := TypeInfo{Type: INT, NotNull: true}
	c := TypeInfo{Type: INT, NotNull: false}
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.Equal(c) {
		t.Fatalf("expected %v to not equal %v", a, c)
	}
}

func TestValidFixedBits(t *testing.T) {
	for _, b := range []int{8, 16, 24, 32, 40, 48} {
		if !ValidFixedBits(b) {
			t.Fatalf("expected %d to be valid", b)
		}
	}
	for _, b := range []int{0, 9, 64, -8} {
		if ValidFixedBits(b) {
			t.Fatalf("expected %d to be invalid", b)
		}
	}
}

func TestSQLTypeToString(t *testing.T) {
	cases := []struct {
		t    SQLType
		want string
	}{
		{SQLType{Tag: VARCHAR, Param1: 32}, "VARCHAR(32)"},
		{SQLType{Tag: NUMERIC, Param1: 10, Param2: 2}, "NUMERIC(10, 2)"},
		{SQLType{Tag: NUMERIC, Param1: 10}, "NUMERIC(10)"},
		{SQLType{Tag: BIGINT}, "BIGINT"},
	}
	for _, c := range cases {
		if got := c.t.ToString(); got != c.want {
			t.Fatalf("ToString() = %q, want %q", got, c.want)
		}
	}
}
