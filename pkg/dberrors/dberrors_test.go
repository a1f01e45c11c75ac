package dberrors

import (
	"errors"
	"testing"
)

func TestErrorFormatsWithAndWithoutDetail(t *testing.T) {
	e := New(NotFound, "catalog", "GetTable", "table not found")
	if got := e.Error(); got != "NotFound: table not found" {
		t.Errorf("Error() = %q", got)
	}
	e = e.WithDetail("table=users")
	if got := e.Error(); got != "NotFound: table not found (table=users)" {
		t.Errorf("Error() with detail = %q", got)
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	e := Newf(OutOfRange, "schema", "ColumnAt", "index %d out of range [0,%d)", 5, 2)
	if e.Message != "index 5 out of range [0,2)" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	e := Wrap(TypeMismatch, "tuple", "New", cause, "wrapped")
	if e.Unwrap() != cause {
		t.Error("Unwrap() should return the original cause")
	}
	if !errors.Is(e, cause) {
		t.Error("errors.Is should see through DBError.Unwrap to the cause")
	}
}

func TestIsFollowsWrappedChain(t *testing.T) {
	inner := New(NotFound, "a", "b", "inner")
	outer := Wrap(TypeMismatch, "c", "d", inner, "outer")
	if !Is(outer, TypeMismatch) {
		t.Error("Is(outer, TypeMismatch) should be true for outer's own kind")
	}
	if !Is(outer, NotFound) {
		t.Error("Is(outer, NotFound) should follow the cause chain to inner's kind")
	}
	if Is(outer, AlreadyExists) {
		t.Error("Is(outer, AlreadyExists) should be false; kind absent from the chain")
	}
}

func TestIsOnPlainErrorIsFalse(t *testing.T) {
	if Is(errors.New("plain"), NotFound) {
		t.Error("Is on a non-DBError should be false")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		ParseError:          "ParseError",
		NotFound:            "NotFound",
		AlreadyExists:       "AlreadyExists",
		TypeMismatch:        "TypeMismatch",
		OutOfRange:          "OutOfRange",
		UnsupportedOperator: "UnsupportedOperator",
		InvalidArguments:    "InvalidArguments",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(k), got, want)
		}
	}
}
