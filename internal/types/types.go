// Package types defines Raoul's atomic and composite value types and the
// static implicit-cast rules shared by the semantic analyzer, the IR
// generator, and the virtual machine.
package types

import "fmt"

// Atomic is one of Raoul's scalar or special types.
type Atomic int

const (
	Invalid Atomic = iota
	Int
	Float
	Bool
	String
	Void
	Dataframe
)

func (a Atomic) String() string {
	switch a {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	case Dataframe:
		return "dataframe"
	default:
		return "invalid"
	}
}

func (a Atomic) IsNumeric() bool { return a == Int || a == Float }

// Type is a full Raoul static type: an atomic type plus an optional
// compile-time-known array shape (1- or 2-dimensional).
type Type struct {
	Atomic Atomic
	Dims   []int // nil/empty for a scalar, len 1 or 2 for an array
}

func Scalar(a Atomic) Type { return Type{Atomic: a} }

func Array1(elem Atomic, d1 int) Type { return Type{Atomic: elem, Dims: []int{d1}} }

func Array2(elem Atomic, d1, d2 int) Type { return Type{Atomic: elem, Dims: []int{d1, d2}} }

func (t Type) IsArray() bool { return len(t.Dims) > 0 }

func (t Type) Size() int {
	n := 1
	for _, d := range t.Dims {
		n *= d
	}
	return n
}

func (t Type) Equal(o Type) bool {
	if t.Atomic != o.Atomic || len(t.Dims) != len(o.Dims) {
		return false
	}
	for i := range t.Dims {
		if t.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	s := t.Atomic.String()
	for _, d := range t.Dims {
		s += fmt.Sprintf("[%d]", d)
	}
	return s
}

// Assignable reports whether a value of type `from` may be implicitly cast
// to type `to` at an assignment or argument site:
//
//	int <-> float in either direction (truncation on float->int)
//	string -> {int, float} (parsed, runtime error on malformed input)
//	never to/from bool except a literal of the same type
//	arrays are assignable only to an identical shape and element type
func Assignable(from, to Type) bool {
	if from.IsArray() || to.IsArray() {
		return from.Equal(to)
	}
	if from.Atomic == to.Atomic {
		return true
	}
	switch {
	case from.Atomic == Int && to.Atomic == Float:
		return true
	case from.Atomic == Float && to.Atomic == Int:
		return true
	case from.Atomic == String && (to.Atomic == Int || to.Atomic == Float):
		return true
	default:
		return false
	}
}

// RequiresRuntimeCast reports whether an otherwise-legal assignment from
// `from` to `to` needs its value converted at run time rather than being a
// no-op copy (i.e. anything other than identical atomic types).
func RequiresRuntimeCast(from, to Type) bool {
	return from.Atomic != to.Atomic
}
