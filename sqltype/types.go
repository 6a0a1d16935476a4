// sqltype exports the type tags, dimensioned type descriptors, and
// promotion rules shared by the compiler, analyzer, catalog, and ddl
// packages. Such a central type package mirrors coltype in the teacher
// repo, generalized from 4 result-column tags to the full SQL type system
// the analyzer needs to do coercion and cast insertion.
package sqltype

import "fmt"

// Tag identifies a SQL type independent of its length/precision/scale.
type Tag int

const (
	// NULLT is the type of an untyped NULL literal before it picks up a type
	// from context (CASE reconciliation, cast insertion, ...).
	NULLT Tag = iota
	BOOLEAN
	CHAR
	VARCHAR
	TEXT
	NUMERIC
	DECIMAL
	SMALLINT
	INT
	BIGINT
	FLOAT
	DOUBLE
	TIME
	TIMESTAMP
)

func (t Tag) String() string {
	switch t {
	case NULLT:
		return "NULL"
	case BOOLEAN:
		return "BOOLEAN"
	case CHAR:
		return "CHAR"
	case VARCHAR:
		return "VARCHAR"
	case TEXT:
		return "TEXT"
	case NUMERIC:
		return "NUMERIC"
	case DECIMAL:
		return "DECIMAL"
	case SMALLINT:
		return "SMALLINT"
	case INT:
		return "INT"
	case BIGINT:
		return "BIGINT"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case TIME:
		return "TIME"
	case TIMESTAMP:
		return "TIMESTAMP"
	}
	return "UNKNOWN"
}

// SQLType is the surface-syntax type as written by the user, for example
// `VARCHAR(32)` or `NUMERIC(10, 2)`. Param1 is length/precision, Param2 is
// scale (0 when absent).
type SQLType struct {
	Tag    Tag
	Param1 int
	Param2 int
}

// ToString renders the type the way it was written, matching
// SQLType::to_string in the original.
func (t SQLType) ToString() string {
	switch t.Tag {
	case BOOLEAN:
		return "BOOLEAN"
	case CHAR:
		return fmt.Sprintf("CHAR(%d)", t.Param1)
	case VARCHAR:
		return fmt.Sprintf("VARCHAR(%d)", t.Param1)
	case TEXT:
		return "TEXT"
	case NUMERIC:
		return numericString("NUMERIC", t.Param1, t.Param2)
	case DECIMAL:
		return numericString("DECIMAL", t.Param1, t.Param2)
	case BIGINT:
		return "BIGINT"
	case INT:
		return "INT"
	case SMALLINT:
		return "SMALLINT"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case TIME:
		return "TIME"
	case TIMESTAMP:
		return "TIMESTAMP"
	}
	return t.Tag.String()
}

func numericString(name string, param1, param2 int) string {
	if param2 > 0 {
		return fmt.Sprintf("%s(%d, %d)", name, param1, param2)
	}
	return fmt.Sprintf("%s(%d)", name, param1)
}

// TypeInfo is the semantic, fully-resolved type attached to every analyzed
// expression. Two TypeInfo are equal iff every field matches.
type TypeInfo struct {
	Type      Tag
	Dimension int
	Scale     int
	NotNull   bool
}

// Equal reports whether ti and other describe the same type, including
// nullability. analyzer.AddCast treats this as its no-op test.
func (ti TypeInfo) Equal(other TypeInfo) bool {
	return ti == other
}

// FromSQLType forms a TypeInfo from surface syntax, the way CastExpr and
// CREATE TABLE column definitions do: Param1 becomes Dimension, Param2
// becomes Scale. Nullability is not implied by the surface type alone and
// must be supplied by the caller.
func FromSQLType(t SQLType, notNull bool) TypeInfo {
	return TypeInfo{
		Type:      t.Tag,
		Dimension: t.Param1,
		Scale:     t.Param2,
		NotNull:   notNull,
	}
}

// IsString reports whether t is one of the string-family tags.
func IsString(t Tag) bool {
	switch t {
	case CHAR, VARCHAR, TEXT:
		return true
	}
	return false
}

// IsNumber reports whether t is one of the numeric-family tags.
func IsNumber(t Tag) bool {
	switch t {
	case SMALLINT, INT, BIGINT, FLOAT, DOUBLE, NUMERIC, DECIMAL:
		return true
	}
	return false
}

// integer width ranks SMALLINT < INT < BIGINT, used to widen to the wider
// of two integer operands in CommonNumericType.
func intWidth(t Tag) int {
	switch t {
	case SMALLINT:
		return 1
	case INT:
		return 2
	case BIGINT:
		return 3
	}
	return 0
}

var widthToTag = map[int]Tag{1: SMALLINT, 2: INT, 3: BIGINT}

// CommonNumericType computes the symmetric common numeric type of a and b,
// per spec.md §3.1: widen integers to the wider width; FLOAT/DOUBLE mixed
// with anything numeric yields DOUBLE if either side is DOUBLE else FLOAT;
// NUMERIC/DECIMAL mixed with anything numeric yields NUMERIC sized to hold
// both operands.
func CommonNumericType(a, b TypeInfo) TypeInfo {
	notNull := a.NotNull && b.NotNull
	if a.Type == NUMERIC || a.Type == DECIMAL || b.Type == NUMERIC || b.Type == DECIMAL {
		return commonDecimalType(a, b, notNull)
	}
	if a.Type == DOUBLE || b.Type == DOUBLE {
		return TypeInfo{Type: DOUBLE, NotNull: notNull}
	}
	if a.Type == FLOAT || b.Type == FLOAT {
		return TypeInfo{Type: FLOAT, NotNull: notNull}
	}
	wa, wb := intWidth(a.Type), intWidth(b.Type)
	w := wa
	if wb > w {
		w = wb
	}
	if w == 0 {
		w = intWidth(INT)
	}
	return TypeInfo{Type: widthToTag[w], NotNull: notNull}
}

// commonDecimalType sizes a NUMERIC result large enough to hold either
// operand: the scale is the larger of the two scales, and the dimension is
// the larger of the two integer-part widths plus that scale.
func commonDecimalType(a, b TypeInfo, notNull bool) TypeInfo {
	tag := NUMERIC
	scale := max(decimalScale(a), decimalScale(b))
	intDigitsA := decimalDimension(a) - decimalScale(a)
	intDigitsB := decimalDimension(b) - decimalScale(b)
	intDigits := max(intDigitsA, intDigitsB)
	return TypeInfo{
		Type:      tag,
		Dimension: intDigits + scale,
		Scale:     scale,
		NotNull:   notNull,
	}
}

func decimalScale(ti TypeInfo) int {
	if ti.Type == NUMERIC || ti.Type == DECIMAL {
		return ti.Scale
	}
	return 0
}

func decimalDimension(ti TypeInfo) int {
	if ti.Type == NUMERIC || ti.Type == DECIMAL {
		return ti.Dimension
	}
	// An integer type contributes its own digits with no fractional part; a
	// reasonable upper bound on decimal digits is enough to avoid truncating
	// when mixed with a NUMERIC operand.
	switch ti.Type {
	case SMALLINT:
		return 5
	case INT:
		return 10
	case BIGINT:
		return 19
	}
	return 0
}

// CommonStringType computes the common string type of a and b per
// spec.md §3.1: TEXT dominates VARCHAR dominates CHAR, and the resulting
// dimension is the max of both inputs.
func CommonStringType(a, b TypeInfo) TypeInfo {
	tag := CHAR
	if a.Type == TEXT || b.Type == TEXT {
		tag = TEXT
	} else if a.Type == VARCHAR || b.Type == VARCHAR {
		tag = VARCHAR
	}
	dim := a.Dimension
	if b.Dimension > dim {
		dim = b.Dimension
	}
	return TypeInfo{
		Type:      tag,
		Dimension: dim,
		NotNull:   a.NotNull && b.NotNull,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Encoding identifies a column's physical compression scheme.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingFixed
	EncodingRL
	EncodingDiff
	EncodingDict
	EncodingSparse
)

func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "NONE"
	case EncodingFixed:
		return "FIXED"
	case EncodingRL:
		return "RL"
	case EncodingDiff:
		return "DIFF"
	case EncodingDict:
		return "DICT"
	case EncodingSparse:
		return "SPARSE"
	}
	return "UNKNOWN"
}

// ValidFixedBits reports whether bits is a legal parameter for FIXED or
// SPARSE encoding, per spec.md §4.3's table.
func ValidFixedBits(bits int) bool {
	switch bits {
	case 8, 16, 24, 32, 40, 48:
		return true
	}
	return false
}
