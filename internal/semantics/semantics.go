// Package semantics implements Raoul's single top-down semantic analysis
// pass: function-table construction, scope/type resolution, implicit-cast
// checking, and array/call/dataframe/return validation. It shares its walk
// with IR emission (internal/ir), but is specified and testable on its own
// by recording every symbol/type decision it makes into a *symtab.SymbolTable
// and an *Info side table the IR generator later consults.
package semantics

import (
	"fmt"

	"github.com/ricglz/raoul/internal/ast"
	"github.com/ricglz/raoul/internal/diagnostics"
	"github.com/ricglz/raoul/internal/symtab"
	"github.com/ricglz/raoul/internal/token"
	"github.com/ricglz/raoul/internal/types"
)

// Info records, per expression node, the type the analyzer inferred for it,
// keyed by pointer identity. The IR generator uses this instead of
// re-deriving types during emission.
type Info struct {
	ExprTypes map[ast.Expr]types.Type
	// DataframeDeclared is true once a dataframe-typed symbol has been
	// declared, used to enforce the single-dataframe-value rule.
	DataframeDeclared bool
}

func newInfo() *Info {
	return &Info{ExprTypes: make(map[ast.Expr]types.Type)}
}

func (info *Info) TypeOf(e ast.Expr) types.Type {
	return info.ExprTypes[e]
}

func (info *Info) setType(e ast.Expr, t types.Type) types.Type {
	info.ExprTypes[e] = t
	return t
}

// Analyzer runs the pass described above over one *ast.Program.
type Analyzer struct {
	syms *symtab.SymbolTable
	info *Info
	errs []error

	fn string // name of the function currently being analyzed, "" at global scope
}

// Analyze builds the function table, then type-checks every function body
// (including implicit global assignments), returning the populated symbol
// table and per-expression type info, or the accumulated list of semantic
// errors.
func Analyze(prog *ast.Program) (*symtab.SymbolTable, *Info, []error) {
	a := &Analyzer{syms: symtab.New(), info: newInfo()}
	a.declareFunctions(prog)
	if len(a.errs) > 0 {
		return a.syms, a.info, a.errs
	}

	for _, g := range prog.Globals {
		a.analyzeGlobalAssignment(g)
	}

	allFns := append(append([]*ast.Function{}, prog.Functions...), prog.Main)
	for _, fn := range allFns {
		if fn == nil {
			continue
		}
		a.analyzeFunction(fn)
	}

	if prog.Main == nil {
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.MissingMain, Message: "program has no main function"})
	}

	return a.syms, a.info, a.errs
}

func (a *Analyzer) fail(err error) {
	a.errs = append(a.errs, err)
}

func (a *Analyzer) declareFunctions(prog *ast.Program) {
	allFns := append(append([]*ast.Function{}, prog.Functions...), prog.Main)
	for _, fn := range allFns {
		if fn == nil {
			continue
		}
		paramTypes := make([]types.Type, len(fn.Params))
		paramNames := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
			paramNames[i] = p.Name
		}
		entry := &symtab.FuncEntry{
			Name: fn.Name, ReturnType: fn.ReturnType,
			ParamTypes: paramTypes, ParamNames: paramNames,
		}
		if !a.syms.Functions.Declare(entry) {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.DuplicateFunction, Line: fn.Line,
				Message: fmt.Sprintf("function %q already declared", fn.Name),
			})
		}
	}
	if prog.Main != nil {
		if prog.Main.Name != "main" || len(prog.Main.Params) != 0 || prog.Main.ReturnType.Atomic != types.Void {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.MissingMain, Line: prog.Main.Line,
				Message: "main must have signature ():void",
			})
		}
	}
}

func (a *Analyzer) analyzeGlobalAssignment(assign *ast.Assignment) {
	a.fn = ""
	a.analyzeAssignment(assign)
}

func (a *Analyzer) analyzeFunction(fn *ast.Function) {
	a.fn = fn.Name
	a.syms.EnterFunction(fn.Name)
	for _, p := range fn.Params {
		if _, exists := a.syms.LocalScope(fn.Name).Lookup(p.Name); exists {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.RedeclaredIdentifier, Line: fn.Line,
				Message: fmt.Sprintf("parameter %q is declared twice", p.Name),
			})
			continue
		}
		a.syms.DefineLocal(fn.Name, &symtab.Symbol{Name: p.Name, Type: p.Type, IsArgument: true})
	}
	a.analyzeBlock(fn.Body)
	if fn.ReturnType.Atomic != types.Void && !blockGuaranteesReturn(fn.Body) {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.MissingReturn, Line: fn.Line,
			Message: fmt.Sprintf("function %q must return %s on every path", fn.Name, fn.ReturnType),
		})
	}
}

// blockGuaranteesReturn is a conservative, purely syntactic check: a block
// guarantees a return if its last statement is a Return, or an If whose both
// branches guarantee a return.
func blockGuaranteesReturn(b *ast.Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	switch last := b.Stmts[len(b.Stmts)-1].(type) {
	case *ast.Return:
		return true
	case *ast.If:
		return last.Else != nil && blockGuaranteesReturn(last.Then) && blockGuaranteesReturn(last.Else)
	default:
		return false
	}
}

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Assignment:
		a.analyzeAssignment(st)
	case *ast.If:
		a.requireBool(a.analyzeExpr(st.Cond), st.Cond, st.Line)
		a.analyzeBlock(st.Then)
		if st.Else != nil {
			a.analyzeBlock(st.Else)
		}
	case *ast.While:
		a.requireBool(a.analyzeExpr(st.Cond), st.Cond, st.Line)
		a.analyzeBlock(st.Body)
	case *ast.For:
		startT := a.analyzeExpr(st.Start)
		limitT := a.analyzeExpr(st.Limit)
		a.defineOrCheck(st.Var, startT, st.Start, false, st.Line)
		if !limitT.Atomic.IsNumeric() {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: st.Line,
				Message: "for-loop limit must be numeric", Expected: "int or float", Actual: limitT.String(),
			})
		}
		a.analyzeBlock(st.Body)
	case *ast.Print:
		for _, arg := range st.Args {
			a.analyzeExpr(arg)
		}
	case *ast.Input:
		a.analyzeLValue(st.Target)
	case *ast.Return:
		a.analyzeReturn(st)
	case *ast.ExprStmt:
		a.analyzeExpr(st.Expr)
	case *ast.Plot:
		a.analyzeDataframeStmtArgs(st.DF, []ast.Expr{st.XCol, st.YCol}, st.Line)
	case *ast.Histogram:
		a.analyzeDataframeStmtArgs(st.DF, []ast.Expr{st.Col}, st.Line)
		binsT := a.analyzeExpr(st.Bins)
		if binsT.Atomic != types.Int {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: st.Line,
				Message: "histogram bins must be int", Expected: "int", Actual: binsT.String(),
			})
		}
	default:
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.TypeMismatch, Line: s.Pos(), Message: "unsupported statement"})
	}
}

func (a *Analyzer) analyzeDataframeStmtArgs(df ast.Expr, cols []ast.Expr, line int) {
	dfType := a.analyzeExpr(df)
	if dfType.Atomic != types.Dataframe {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: line,
			Message: "expected a dataframe value", Expected: "dataframe", Actual: dfType.String(),
		})
	}
	for _, col := range cols {
		colT := a.analyzeExpr(col)
		if colT.Atomic != types.String {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: line,
				Message: "column argument must be a string name", Expected: "string", Actual: colT.String(),
			})
		}
	}
}

func (a *Analyzer) analyzeReturn(r *ast.Return) {
	fnEntry, ok := a.syms.Functions.Lookup(a.fn)
	if !ok {
		return
	}
	if r.Value == nil {
		if fnEntry.ReturnType.Atomic != types.Void {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: r.Line,
				Message: "missing return value", Expected: fnEntry.ReturnType.String(), Actual: "void",
			})
		}
		return
	}
	if fnEntry.ReturnType.Atomic == types.Void {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: r.Line,
			Message: "void function may not return a value",
		})
		return
	}
	valT := a.analyzeExpr(r.Value)
	if !types.Assignable(valT, fnEntry.ReturnType) {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: r.Line,
			Message: "return type mismatch", Expected: fnEntry.ReturnType.String(), Actual: valT.String(),
		})
	}
}

//  Assignment / lvalues

func (a *Analyzer) analyzeAssignment(assign *ast.Assignment) {
	valT := a.analyzeExpr(assign.Value)
	if valT.Atomic == types.Void {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: assign.Line,
			Message: "a void call produces no value to assign",
		})
		return
	}
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		if assign.Global && a.fn == "" {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.InvalidGlobalPrefix, Line: assign.Line,
				Message: "global prefix is redundant at global scope",
			})
		}
		a.defineOrCheck(target.Name, valT, assign.Value, assign.Global, assign.Line)
		a.info.setType(target, a.resolvedType(target.Name, assign.Global))
		if valT.Atomic == types.Dataframe {
			a.info.DataframeDeclared = true
		}
	case *ast.ArrayElement:
		if assign.Global {
			if _, ok := a.syms.Global.Lookup(target.Name); !ok {
				a.fail(&diagnostics.SemanticError{
					Kind: diagnostics.InvalidGlobalPrefix, Line: assign.Line,
					Message: fmt.Sprintf("global write to %q does not resolve to a global array", target.Name),
				})
				return
			}
		}
		a.analyzeArrayElement(target, assign.Global)
		elemT := a.info.TypeOf(target)
		if elemT.Atomic != types.Invalid && !assignableValue(assign.Value, valT, types.Scalar(elemT.Atomic)) {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: assign.Line,
				Message: "assignment type mismatch", Expected: elemT.String(), Actual: valT.String(),
			})
		}
	default:
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.TypeMismatch, Line: assign.Line, Message: "invalid assignment target"})
	}
}

// assignableValue applies the implicit-cast table to one assignment site,
// except that a string literal never converts to a numeric target: the
// target's type was fixed at first assignment, and a quoted literal is
// not reinterpreted as a number the way a runtime string value is.
func assignableValue(value ast.Expr, valT, declared types.Type) bool {
	if lit, ok := value.(*ast.Literal); ok && lit.Type == types.String && declared.Atomic.IsNumeric() {
		return false
	}
	return types.Assignable(valT, declared)
}

// resolvedType returns the declared type of name after the scope implied by
// global has been searched (falling back to the normal Resolve order).
func (a *Analyzer) resolvedType(name string, global bool) types.Type {
	fn := a.fn
	if global {
		fn = ""
	}
	if sym, ok := a.syms.Resolve(fn, name); ok {
		return sym.Type
	}
	return types.Type{}
}

// defineOrCheck implements the assignment typing rule: first occurrence in
// the target scope defines the variable with the expression's type;
// subsequent occurrences require the expression type to be assignable to
// the already-declared type. value is the assigned expression (for a
// for-loop counter, its start expression), inspected for a string literal.
func (a *Analyzer) defineOrCheck(name string, valT types.Type, value ast.Expr, global bool, line int) {
	fn := a.fn
	if global {
		fn = ""
	}
	if sym, ok := a.syms.Resolve(fn, name); ok {
		if !assignableValue(value, valT, sym.Type) {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: line,
				Message: fmt.Sprintf("cannot assign to %q", name), Expected: sym.Type.String(), Actual: valT.String(),
			})
		}
		return
	}
	if valT.Atomic == types.Invalid {
		return // the expression already failed; nothing sound to declare
	}
	sym := &symtab.Symbol{Name: name, Type: valT}
	if fn == "" {
		a.syms.DefineGlobal(sym)
	} else {
		a.syms.DefineLocal(fn, sym)
	}
}

func (a *Analyzer) analyzeLValue(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Identifier:
		if _, ok := a.syms.Resolve(a.fn, t.Name); !ok {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.UndeclaredIdentifier, Line: t.Line,
				Message: fmt.Sprintf("%q is not declared", t.Name),
			})
		}
	case *ast.ArrayElement:
		a.analyzeArrayElement(t, false)
	}
}

func (a *Analyzer) analyzeArrayElement(elem *ast.ArrayElement, global bool) types.Type {
	fn := a.fn
	if global {
		fn = ""
	}
	sym, ok := a.syms.Resolve(fn, elem.Name)
	if !ok {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.UndeclaredIdentifier, Line: elem.Line,
			Message: fmt.Sprintf("%q is not declared", elem.Name),
		})
		return a.info.setType(elem, types.Type{})
	}
	if !sym.Type.IsArray() {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.NotAnArray, Line: elem.Line,
			Message: fmt.Sprintf("%q is not an array", elem.Name),
		})
		return a.info.setType(elem, types.Type{})
	}
	if len(elem.Indices) != len(sym.Type.Dims) {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.DimMismatch, Line: elem.Line,
			Message: fmt.Sprintf("%q has %d dimension(s), got %d index expression(s)", elem.Name, len(sym.Type.Dims), len(elem.Indices)),
		})
	}
	for _, idx := range elem.Indices {
		idxT := a.analyzeExpr(idx)
		if idxT.Atomic != types.Int {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: elem.Line,
				Message: "array index must be int", Expected: "int", Actual: idxT.String(),
			})
		}
	}
	return a.info.setType(elem, types.Scalar(sym.Type.Atomic))
}

//  Expressions

func (a *Analyzer) requireBool(t types.Type, e ast.Expr, line int) {
	if t.Atomic != types.Bool {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: line,
			Message: "condition must be bool", Expected: "bool", Actual: t.String(),
		})
	}
}

func (a *Analyzer) analyzeExpr(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.Literal:
		return a.info.setType(ex, types.Scalar(ex.Type))
	case *ast.Identifier:
		sym, ok := a.syms.Resolve(a.fn, ex.Name)
		if !ok {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.UndeclaredIdentifier, Line: ex.Line,
				Message: fmt.Sprintf("%q is not declared", ex.Name),
			})
			return a.info.setType(ex, types.Type{})
		}
		return a.info.setType(ex, sym.Type)
	case *ast.ArrayElement:
		return a.analyzeArrayElement(ex, false)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(ex)
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(ex)
	case *ast.UnaryOp:
		operandT := a.analyzeExpr(ex.Operand)
		if ex.Op == token.NOT && operandT.Atomic != types.Bool {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: ex.Line,
				Message: "not requires a bool operand", Expected: "bool", Actual: operandT.String(),
			})
		}
		return a.info.setType(ex, types.Scalar(types.Bool))
	case *ast.Call:
		return a.analyzeCall(ex)
	case *ast.DataframeOp:
		return a.analyzeDataframeOp(ex)
	case *ast.ReadCSV:
		pathT := a.analyzeExpr(ex.Path)
		if pathT.Atomic != types.String {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: ex.Line,
				Message: "read_csv path must be a string", Expected: "string", Actual: pathT.String(),
			})
		}
		if a.info.DataframeDeclared {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: ex.Line,
				Message: "at most one dataframe value may exist in a program",
			})
		}
		return a.info.setType(ex, types.Scalar(types.Dataframe))
	default:
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.TypeMismatch, Line: e.Pos(), Message: "unsupported expression"})
		return types.Type{}
	}
}

func (a *Analyzer) analyzeArrayLiteral(lit *ast.ArrayLiteral) types.Type {
	if len(lit.Elements) == 0 {
		return a.info.setType(lit, types.Type{})
	}
	elemT := a.analyzeExpr(lit.Elements[0])
	for _, elem := range lit.Elements[1:] {
		t := a.analyzeExpr(elem)
		if !types.Assignable(t, elemT) {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: elem.Pos(),
				Message: "array literal elements must share a type", Expected: elemT.String(), Actual: t.String(),
			})
		}
	}
	// Rows of a nested literal are each 1-D; the literal as a whole is the
	// 2-D shape (rows, row-width).
	if elemT.IsArray() {
		return a.info.setType(lit, types.Array2(elemT.Atomic, len(lit.Elements), elemT.Dims[0]))
	}
	return a.info.setType(lit, types.Array1(elemT.Atomic, len(lit.Elements)))
}

func (a *Analyzer) analyzeBinaryOp(b *ast.BinaryOp) types.Type {
	leftT := a.analyzeExpr(b.Left)
	rightT := a.analyzeExpr(b.Right)

	switch b.Op {
	case token.AND, token.OR:
		if leftT.Atomic != types.Bool || rightT.Atomic != types.Bool {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: b.Line,
				Message: "logical operator requires bool operands", Expected: "bool", Actual: fmt.Sprintf("%s, %s", leftT, rightT),
			})
		}
		return a.info.setType(b, types.Scalar(types.Bool))

	case token.EQ, token.NEQ:
		if leftT.Atomic == types.String && rightT.Atomic == types.String {
			return a.info.setType(b, types.Scalar(types.Bool))
		}
		if !leftT.Atomic.IsNumeric() || !rightT.Atomic.IsNumeric() {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: b.Line,
				Message: "equality requires two numeric or two string operands", Actual: fmt.Sprintf("%s, %s", leftT, rightT),
			})
		}
		return a.info.setType(b, types.Scalar(types.Bool))

	case token.GT, token.GTE, token.LT, token.LTE:
		if !leftT.Atomic.IsNumeric() || !rightT.Atomic.IsNumeric() {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: b.Line,
				Message: "relational operators require numeric operands (strings are not ordered)",
				Expected: "int or float", Actual: fmt.Sprintf("%s, %s", leftT, rightT),
			})
		}
		return a.info.setType(b, types.Scalar(types.Bool))

	case token.PLUS, token.MINUS, token.STAR:
		return a.info.setType(b, a.arithmeticResult(leftT, rightT, b.Line))

	case token.SLASH:
		a.arithmeticResult(leftT, rightT, b.Line) // validates operand types
		if leftT.Atomic == types.Int && rightT.Atomic == types.Int {
			return a.info.setType(b, types.Scalar(types.Int))
		}
		return a.info.setType(b, types.Scalar(types.Float))

	default:
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.TypeMismatch, Line: b.Line, Message: "unsupported operator"})
		return types.Type{}
	}
}

func (a *Analyzer) arithmeticResult(leftT, rightT types.Type, line int) types.Type {
	if !leftT.Atomic.IsNumeric() || !rightT.Atomic.IsNumeric() {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: line,
			Message: "arithmetic requires numeric operands", Expected: "int or float", Actual: fmt.Sprintf("%s, %s", leftT, rightT),
		})
		return types.Scalar(types.Int)
	}
	if leftT.Atomic == types.Float || rightT.Atomic == types.Float {
		return types.Scalar(types.Float)
	}
	return types.Scalar(types.Int)
}

func (a *Analyzer) analyzeCall(c *ast.Call) types.Type {
	entry, ok := a.syms.Functions.Lookup(c.Callee)
	if !ok {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.UndeclaredIdentifier, Line: c.Line,
			Message: fmt.Sprintf("function %q is not declared", c.Callee),
		})
		for _, arg := range c.Args {
			a.analyzeExpr(arg)
		}
		return a.info.setType(c, types.Type{})
	}
	if len(c.Args) != len(entry.ParamTypes) {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.ArityMismatch, Line: c.Line,
			Message: fmt.Sprintf("%q expects %d argument(s), got %d", c.Callee, len(entry.ParamTypes), len(c.Args)),
		})
	}
	for i, arg := range c.Args {
		argT := a.analyzeExpr(arg)
		if i < len(entry.ParamTypes) && !types.Assignable(argT, entry.ParamTypes[i]) {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: arg.Pos(),
				Message:  fmt.Sprintf("argument %d to %q", i+1, c.Callee),
				Expected: entry.ParamTypes[i].String(), Actual: argT.String(),
			})
		}
	}
	return a.info.setType(c, entry.ReturnType)
}

var dataframeScalarOps = map[token.Kind]bool{
	token.AVERAGE: true, token.STD: true, token.MEDIAN: true,
	token.VARIANCE: true, token.MIN: true, token.MAX: true, token.RANGE: true,
}

func (a *Analyzer) analyzeDataframeOp(d *ast.DataframeOp) types.Type {
	dfT := a.analyzeExpr(d.DF)
	if dfT.Atomic != types.Dataframe {
		a.fail(&diagnostics.SemanticError{
			Kind: diagnostics.TypeMismatch, Line: d.Line,
			Message: "expected a dataframe value", Expected: "dataframe", Actual: dfT.String(),
		})
	}
	for _, arg := range d.Args {
		argT := a.analyzeExpr(arg)
		if argT.Atomic != types.String {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.TypeMismatch, Line: arg.Pos(),
				Message: "dataframe column argument must be a string", Expected: "string", Actual: argT.String(),
			})
		}
	}
	switch {
	case d.Op == token.GET_ROWS || d.Op == token.GET_COLUMNS:
		return a.info.setType(d, types.Scalar(types.Int))
	case dataframeScalarOps[d.Op]:
		return a.info.setType(d, types.Scalar(types.Float))
	case d.Op == token.CORRELATION:
		if len(d.Args) != 2 {
			a.fail(&diagnostics.SemanticError{
				Kind: diagnostics.ArityMismatch, Line: d.Line,
				Message: "correlation requires exactly two column arguments",
			})
		}
		return a.info.setType(d, types.Scalar(types.Float))
	default:
		a.fail(&diagnostics.SemanticError{Kind: diagnostics.TypeMismatch, Line: d.Line, Message: "unsupported dataframe operator"})
		return types.Type{}
	}
}
