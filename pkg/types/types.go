// Package types defines the tagged value union and data type enumeration that
// flow through every layer of the engine: tuples, B+-tree keys, index entries,
// and operator payloads.
package types

import (
	"fmt"
	"math"
)

// DataType is the declared type of a column.
type DataType int

const (
	INTEGER DataType = iota
	DOUBLE
	VARCHAR
)

func (d DataType) String() string {
	switch d {
	case INTEGER:
		return "INTEGER"
	case DOUBLE:
		return "DOUBLE"
	case VARCHAR:
		return "VARCHAR"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}

// ParseDataType maps a grammar type keyword to a DataType. INT is an alias for
// INTEGER per the grammar (§6).
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case "INT", "INTEGER":
		return INTEGER, true
	case "DOUBLE":
		return DOUBLE, true
	case "VARCHAR":
		return VARCHAR, true
	default:
		return 0, false
	}
}

// Kind identifies the active variant of a Value.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	StringKind
)

// Value is a tagged union with exactly three variants: a signed 64-bit
// integer, an IEEE-754 double, and a UTF-8 string. Ordering is intra-variant
// only; comparing across variants is a programming error.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func IntValue(i int64) Value      { return Value{kind: IntKind, i: i} }
func FloatValue(f float64) Value  { return Value{kind: FloatKind, f: f} }
func StringValue(s string) Value  { return Value{kind: StringKind, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() int64     { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	case FloatKind:
		return fmt.Sprintf("%g", v.f)
	default:
		return v.s
	}
}

// Raw returns the string payload without numeric formatting, valid only for
// StringKind values.
func (v Value) Raw() string { return v.s }

// DataType returns the DataType whose variant matches this value's kind.
func (v Value) DataType() DataType {
	switch v.kind {
	case IntKind:
		return INTEGER
	case FloatKind:
		return DOUBLE
	default:
		return VARCHAR
	}
}

// Conformant reports whether v's variant matches t.
func (v Value) Conformant(t DataType) bool {
	return v.DataType() == t
}

// Zero returns the zero value for a DataType: 0 for INTEGER, 0.0 for DOUBLE,
// "" for VARCHAR. Used for unspecified-column defaulting in InsertOp.
func Zero(t DataType) Value {
	switch t {
	case INTEGER:
		return IntValue(0)
	case DOUBLE:
		return FloatValue(0)
	default:
		return StringValue("")
	}
}

// numeric reports whether v holds a numeric variant and its value as float64.
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case IntKind:
		return float64(v.i), true
	case FloatKind:
		return v.f, true
	default:
		return 0, false
	}
}

// Equals reports value equality within the same variant. Cross-variant
// comparison always returns false rather than panicking, since Equals is used
// in contexts (e.g. group-by keys) where defensive equality is harmless, but
// Compare rejects cross-variant operands outright.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.i == other.i
	case FloatKind:
		return v.f == other.f
	default:
		return v.s == other.s
	}
}

// Compare returns -1, 0, or 1 for v relative to other. Both operands must
// be of the same kind; comparing across kinds (including int against
// float) returns an error, matching the spec's "cross-variant comparison
// is undefined" rule.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("types: cannot compare %v with %v", v.kind, other.kind)
	}
	switch v.kind {
	case IntKind:
		switch {
		case v.i < other.i:
			return -1, nil
		case v.i > other.i:
			return 1, nil
		default:
			return 0, nil
		}
	case FloatKind:
		switch {
		case v.f < other.f:
			return -1, nil
		case v.f > other.f:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		switch {
		case v.s < other.s:
			return -1, nil
		case v.s > other.s:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

// Less reports whether v orders strictly before other. Panics semantics are
// avoided by returning false on incomparable kinds; callers that need the
// error should use Compare directly.
func (v Value) Less(other Value) bool {
	c, err := v.Compare(other)
	return err == nil && c < 0
}

// MinValue and MaxValue return sentinel bounds for a DataType, used by the
// executor's index paths to build the inclusive [v, max] / [min, v] range
// queries for '>' and '<', whose boundary rows are then filtered out.
func MinValue(t DataType) Value {
	switch t {
	case INTEGER:
		return IntValue(math.MinInt64)
	case DOUBLE:
		return FloatValue(math.Inf(-1))
	default:
		return StringValue("")
	}
}

func MaxValue(t DataType) Value {
	switch t {
	case INTEGER:
		return IntValue(math.MaxInt64)
	case DOUBLE:
		return FloatValue(math.Inf(1))
	default:
		return StringValue(maxStringSentinel)
	}
}

// maxStringSentinel is a practical upper bound for string range scans: any
// realistic key sorts below it. There is no true maximum string, so this is
// a pragmatic ceiling rather than a mathematically exact bound.
const maxStringSentinel = "\U0010FFFF\U0010FFFF\U0010FFFF\U0010FFFF\U0010FFFF\U0010FFFF\U0010FFFF\U0010FFFF"
