// Package ast defines the tagged tree produced by the parser and consumed
// by the semantic analyzer / IR generator.
package ast

import (
	"fmt"
	"strings"

	"github.com/ricglz/raoul/internal/token"
	"github.com/ricglz/raoul/internal/types"
)

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
	Pos() int
}

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
	Pos() int
}

//  Program structure

// Program is the root of the tree: zero or more global assignments,
// zero or more non-main functions, and exactly one main function.
type Program struct {
	Globals   []*Assignment
	Functions []*Function
	Main      *Function
}

// Param is one formal parameter of a function header.
type Param struct {
	Name string
	Type types.Type
}

// Function is `func id "(" params? ")" ":" type block`.
type Function struct {
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *Block
	Line       int
}

func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	return fmt.Sprintf("func %s(%s): %s %s", f.Name, strings.Join(params, ", "), f.ReturnType, f.Body)
}

//  Statements

type Block struct {
	Stmts []Stmt
	Line  int
}

func (*Block) stmtNode()  {}
func (b *Block) Pos() int { return b.Line }
func (b *Block) String() string {
	lines := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		lines[i] = s.String()
	}
	return "{ " + strings.Join(lines, " ") + " }"
}

// Assignment is `["global"] assignee "=" expr ";"`.
// Target is either an *Identifier or an *ArrayElement.
type Assignment struct {
	Target Expr
	Global bool
	Value  Expr
	Line   int
}

func (*Assignment) stmtNode()  {}
func (a *Assignment) Pos() int { return a.Line }
func (a *Assignment) String() string {
	prefix := ""
	if a.Global {
		prefix = "global "
	}
	return fmt.Sprintf("%s%s = %s;", prefix, a.Target, a.Value)
}

type If struct {
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else branch
	Line int
}

func (*If) stmtNode()  {}
func (i *If) Pos() int { return i.Line }
func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("if (%s) %s", i.Cond, i.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", i.Cond, i.Then, i.Else)
}

type While struct {
	Cond Expr
	Body *Block
	Line int
}

func (*While) stmtNode()  {}
func (w *While) Pos() int { return w.Line }
func (w *While) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond, w.Body)
}

// For is `for (id "=" start "to" limit) block`, limit inclusive.
type For struct {
	Var   string
	Start Expr
	Limit Expr
	Body  *Block
	Line  int
}

func (*For) stmtNode()  {}
func (f *For) Pos() int { return f.Line }
func (f *For) String() string {
	return fmt.Sprintf("for (%s = %s to %s) %s", f.Var, f.Start, f.Limit, f.Body)
}

type Print struct {
	Args []Expr
	Line int
}

func (*Print) stmtNode()  {}
func (p *Print) Pos() int { return p.Line }
func (p *Print) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("print(%s);", strings.Join(args, ", "))
}

// Input is `input(target);`, reading one token from stdin into target.
type Input struct {
	Target Expr
	Line   int
}

func (*Input) stmtNode()  {}
func (i *Input) Pos() int { return i.Line }
func (i *Input) String() string {
	return fmt.Sprintf("input(%s);", i.Target)
}

// Return is `return [expr] ";"`. Value is nil for a void return.
type Return struct {
	Value Expr
	Line  int
}

func (*Return) stmtNode()  {}
func (r *Return) Pos() int { return r.Line }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

// ExprStmt wraps a call used as a statement (a void function call).
type ExprStmt struct {
	Expr Expr
	Line int
}

func (*ExprStmt) stmtNode()  {}
func (e *ExprStmt) Pos() int { return e.Line }
func (e *ExprStmt) String() string {
	return fmt.Sprintf("%s;", e.Expr)
}

// Plot is the `plot(df, x_col, y_col);` statement.
type Plot struct {
	DF   Expr
	XCol Expr
	YCol Expr
	Line int
}

func (*Plot) stmtNode()  {}
func (p *Plot) Pos() int { return p.Line }
func (p *Plot) String() string {
	return fmt.Sprintf("plot(%s, %s, %s);", p.DF, p.XCol, p.YCol)
}

// Histogram is the `histogram(df, col, bins);` statement.
type Histogram struct {
	DF   Expr
	Col  Expr
	Bins Expr
	Line int
}

func (*Histogram) stmtNode()  {}
func (h *Histogram) Pos() int { return h.Line }
func (h *Histogram) String() string {
	return fmt.Sprintf("histogram(%s, %s, %s);", h.DF, h.Col, h.Bins)
}

//  Expressions

// Literal is a compile-time constant of one atomic type.
type Literal struct {
	Type     types.Atomic
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
	Line     int
}

func (*Literal) exprNode()  {}
func (l *Literal) Pos() int { return l.Line }
func (l *Literal) String() string {
	switch l.Type {
	case types.Int:
		return fmt.Sprintf("%d", l.IntVal)
	case types.Float:
		return fmt.Sprintf("%g", l.FloatVal)
	case types.Bool:
		return fmt.Sprintf("%t", l.BoolVal)
	case types.String:
		return fmt.Sprintf("%q", l.StrVal)
	default:
		return "<invalid literal>"
	}
}

// Identifier is a read of a named variable.
type Identifier struct {
	Name string
	Line int
}

func (*Identifier) exprNode()  {}
func (i *Identifier) Pos() int { return i.Line }
func (i *Identifier) String() string {
	return i.Name
}

// ArrayLiteral is `"{" expr ("," expr)* "}"`, used to initialize an array
// variable (possibly nested one level deep for a 2-D array).
type ArrayLiteral struct {
	Elements []Expr
	Line     int
}

func (*ArrayLiteral) exprNode()  {}
func (a *ArrayLiteral) Pos() int { return a.Line }
func (a *ArrayLiteral) String() string {
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = e.String()
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

// ArrayElement is `id "[" e "]"` or `id "[" e1 "]" "[" e2 "]"`.
type ArrayElement struct {
	Name    string
	Indices []Expr
	Line    int
}

func (*ArrayElement) exprNode()  {}
func (a *ArrayElement) Pos() int { return a.Line }
func (a *ArrayElement) String() string {
	var b strings.Builder
	b.WriteString(a.Name)
	for _, idx := range a.Indices {
		fmt.Fprintf(&b, "[%s]", idx)
	}
	return b.String()
}

// BinaryOp is `Left Op Right` for +,-,*,/,==,!=,>,>=,<,<=,and,or.
type BinaryOp struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	Line  int
}

func (*BinaryOp) exprNode()  {}
func (b *BinaryOp) Pos() int { return b.Line }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp is `not Operand`.
type UnaryOp struct {
	Op      token.Kind
	Operand Expr
	Line    int
}

func (*UnaryOp) exprNode()  {}
func (u *UnaryOp) Pos() int { return u.Line }
func (u *UnaryOp) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

// Call is `name "(" args? ")"`.
type Call struct {
	Callee string
	Args   []Expr
	Line   int
}

func (*Call) exprNode()  {}
func (c *Call) Pos() int { return c.Line }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

// DataframeOp is one of the dataframe *value* ops used as a primary
// expression: get_rows, get_columns, average, std, median, variance, min,
// max, range, correlation. Args holds the op's arguments after the
// dataframe identifier itself (e.g. the column name(s)).
type DataframeOp struct {
	Op   token.Kind
	DF   Expr
	Args []Expr
	Line int
}

func (*DataframeOp) exprNode()  {}
func (d *DataframeOp) Pos() int { return d.Line }
func (d *DataframeOp) String() string {
	parts := make([]string, 0, len(d.Args)+1)
	parts = append(parts, d.DF.String())
	for _, a := range d.Args {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s(%s)", d.Op, strings.Join(parts, ", "))
}

// ReadCSV is the `read_csv(path)` expression, the sole way to materialize
// the process's single dataframe value.
type ReadCSV struct {
	Path Expr
	Line int
}

func (*ReadCSV) exprNode()  {}
func (r *ReadCSV) Pos() int { return r.Line }
func (r *ReadCSV) String() string {
	return fmt.Sprintf("read_csv(%s)", r.Path)
}
