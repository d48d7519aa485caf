// Package diagnostics defines the structured error types shared by all
// three stages of failure: parse errors, semantic errors, and runtime
// errors.
package diagnostics

import "fmt"

// ParseError is returned by the parser on the first unrecoverable failure
// and does not attempt recovery.
type ParseError struct {
	Line     int
	Col      int
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: expected %s, got %s", e.Line, e.Expected, e.Got)
}

// SemanticKind enumerates the named categories of semantic failure.
type SemanticKind string

const (
	UndeclaredIdentifier SemanticKind = "UndeclaredIdentifier"
	RedeclaredIdentifier SemanticKind = "RedeclaredIdentifier"
	TypeMismatch         SemanticKind = "TypeMismatch"
	ArityMismatch        SemanticKind = "ArityMismatch"
	NotAnArray           SemanticKind = "NotAnArray"
	DimMismatch          SemanticKind = "DimMismatch"
	InvalidGlobalPrefix  SemanticKind = "InvalidGlobalPrefix"
	MissingReturn        SemanticKind = "MissingReturn"
	DuplicateFunction    SemanticKind = "DuplicateFunction"
	MissingMain          SemanticKind = "MissingMain"
)

// SemanticError is one semantic-analysis failure.
type SemanticError struct {
	Kind     SemanticKind
	Line     int
	Message  string
	Expected string
	Actual   string
}

func (e *SemanticError) Error() string {
	if e.Expected != "" || e.Actual != "" {
		return fmt.Sprintf("%s at line %d: expected %s, got %s (%s)", e.Kind, e.Line, e.Expected, e.Actual, e.Message)
	}
	return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
}

// RuntimeKind enumerates the named categories of runtime failure.
type RuntimeKind string

const (
	OutOfBounds   RuntimeKind = "OutOfBounds"
	DivByZero     RuntimeKind = "DivByZero"
	CastFailed    RuntimeKind = "CastFailed"
	StackOverflow RuntimeKind = "StackOverflow"
	UnknownColumn RuntimeKind = "UnknownColumn"
	RuntimeType   RuntimeKind = "RuntimeType"
	EndOfInput    RuntimeKind = "EndOfInput"
)

// RuntimeError is a fatal VM failure, surfaced as {kind, ip, message}.
type RuntimeError struct {
	Kind    RuntimeKind
	IP      int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at quad %d: %s", e.Kind, e.IP, e.Message)
}
