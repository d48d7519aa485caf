// Package ir lowers a type-checked *ast.Program into a flat list of
// quadruples the virtual machine executes. It walks the same tree the
// semantic analyzer already typed, consulting the *semantics.Info and
// *symtab.SymbolTable the analyzer produced instead of re-deriving types.
package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ricglz/raoul/internal/ast"
	"github.com/ricglz/raoul/internal/semantics"
	"github.com/ricglz/raoul/internal/symtab"
	"github.com/ricglz/raoul/internal/token"
	"github.com/ricglz/raoul/internal/types"
)

// Op is one quadruple opcode.
type Op string

const (
	ADD Op = "ADD"
	SUB Op = "SUB"
	MUL Op = "MUL"
	DIV Op = "DIV"

	EQ  Op = "EQ"
	NE  Op = "NE"
	GT  Op = "GT"
	LT  Op = "LT"
	GTE Op = "GTE"
	LTE Op = "LTE"

	AND Op = "AND"
	OR  Op = "OR"
	NOT Op = "NOT"

	ASSIGN  Op = "ASSIGN"
	VERIFY  Op = "VERIFY"
	POINTER Op = "POINTER"

	GOTO  Op = "GOTO"
	GOTOF Op = "GOTOF"
	GOTOT Op = "GOTOT"

	ERA     Op = "ERA"
	PARAM   Op = "PARAM"
	GOSUB   Op = "GOSUB"
	ENDFUNC Op = "ENDFUNC"
	RETURN  Op = "RETURN"

	PRINT Op = "PRINT"
	READ  Op = "READ"

	READ_CSV    Op = "READ_CSV"
	GET_ROWS    Op = "GET_ROWS"
	GET_COLUMNS Op = "GET_COLUMNS"
	AVERAGE     Op = "AVERAGE"
	STD         Op = "STD"
	MEDIAN      Op = "MEDIAN"
	VARIANCE    Op = "VARIANCE"
	MIN         Op = "MIN"
	MAX         Op = "MAX"
	RANGE       Op = "RANGE"
	CORREL      Op = "CORREL"
	PLOT        Op = "PLOT"
	HIST        Op = "HIST"

	END Op = "END"
)

// Quad is a generalized quadruple: (Op, Args..., Result). Most opcodes use
// exactly the two operands and one result the classic (op, arg1, arg2,
// result) tuple describes; a handful of dataframe/call operators need a
// variable-length argument list (e.g. CORREL takes a dataframe plus two
// column addresses) or a compile-time immediate alongside a runtime
// address (e.g. VERIFY's bounds, POINTER's base), so Args/Imm are slices
// rather than two fixed fields.
type Quad struct {
	Op     Op
	Args   []int  // runtime operand addresses, meaning depends on Op
	Imm    []int  // compile-time immediate integers (bounds, strides, param/arg index)
	Callee string // function name, for ERA/GOSUB
	Result int    // result address, target IP for jumps, or -1 when unused
}

// String renders one quadruple for the debug dump: the opcode, its operand
// addresses (immediates prefixed with #), and the result slot, with "_" for
// unused positions.
func (q Quad) String() string {
	parts := []string{string(q.Op)}
	if q.Callee != "" {
		parts = append(parts, q.Callee)
	}
	if len(q.Args) == 0 && q.Callee == "" {
		parts = append(parts, "_")
	}
	for _, a := range q.Args {
		parts = append(parts, strconv.Itoa(a))
	}
	for _, imm := range q.Imm {
		parts = append(parts, "#"+strconv.Itoa(imm))
	}
	if q.Result == noResult {
		parts = append(parts, "_")
	} else {
		parts = append(parts, strconv.Itoa(q.Result))
	}
	return strings.Join(parts, " ")
}

const noResult = -1

// Program is the finished executable image: the quadruple list, the
// materialized constant values, the function table (now carrying each
// function's start IP), and main's entry point.
type Program struct {
	Quads     []Quad
	Constants map[int]any
	Functions *symtab.FunctionTable
	MainEntry int

	// ReturnSlots gives the single well-known global address the VM writes a
	// RETURN value into and a caller reads it back from, keyed by atomic
	// return type. A RETURN quadruple carries only the value's source
	// address (see emitStmt's *ast.Return case), so the VM recovers the
	// destination slot from here rather than from the quadruple itself.
	ReturnSlots map[types.Atomic]int
}

type generator struct {
	syms *symtab.SymbolTable
	info *semantics.Info
	fn   string

	quads    []Quad
	retSlots map[types.Atomic]int
}

// Generate lowers prog into a Program, given the symbol table and type info
// a prior, successful semantics.Analyze pass produced.
//
// Layout: global initializers, then main's body (so the VM can run from IP 0
// straight through both inside the one bootstrap frame vm.Run pushes, with no
// GOSUB for either), then a
// GOTO that bypasses every other function's body, which is otherwise
// reachable only via GOSUB, then the final END.
func Generate(prog *ast.Program, syms *symtab.SymbolTable, info *semantics.Info) *Program {
	g := &generator{syms: syms, info: info, retSlots: make(map[types.Atomic]int)}

	g.fn = ""
	for _, global := range prog.Globals {
		g.emitAssignment(global)
	}

	mainEntry := g.emitFunction(prog.Main)
	skipOthers := g.emit(Quad{Op: GOTO, Result: noResult})
	for _, fn := range prog.Functions {
		g.emitFunction(fn)
	}
	g.patch(skipOthers, g.here())
	g.emit(Quad{Op: END, Result: noResult})

	return &Program{
		Quads:       g.quads,
		Constants:   syms.Constants.Values(),
		Functions:   syms.Functions,
		MainEntry:   mainEntry,
		ReturnSlots: g.retSlots,
	}
}

// emitFunction lowers one function body, records its start IP and resource
// counts in the function table, and returns the start IP.
func (g *generator) emitFunction(fn *ast.Function) int {
	startIP := len(g.quads)
	g.fn = fn.Name
	g.emitBlock(fn.Body)
	g.emit(Quad{Op: ENDFUNC, Result: noResult})
	// Resource counts are read only now: IR emission allocates its own
	// temporaries (binary-op results, loop counters, array pointers) on top
	// of whatever the semantic pass already declared, so the true
	// per-function footprint is only known once its body is fully lowered.
	if entry, ok := g.syms.Functions.Lookup(fn.Name); ok {
		entry.StartIP = startIP
		entry.ResourceCounts = g.syms.ResourceCounts(fn.Name)
		entry.ParamAddrs = make([]int, len(fn.Params))
		scope := g.syms.LocalScope(fn.Name)
		for i, p := range fn.Params {
			if sym, ok := scope.Lookup(p.Name); ok {
				entry.ParamAddrs[i] = sym.Address
			}
		}
	}
	return startIP
}

func (g *generator) emit(q Quad) int {
	g.quads = append(g.quads, q)
	return len(g.quads) - 1
}

func (g *generator) patch(idx, target int) {
	g.quads[idx].Result = target
}

func (g *generator) here() int { return len(g.quads) }

func (g *generator) newTemp(atomic types.Atomic) int {
	if g.fn == "" {
		return g.syms.NewGlobalTemp(atomic)
	}
	return g.syms.NewLocalTemp(g.fn, atomic)
}

// retSlot returns the single well-known global address that holds the
// return value of the given atomic type across every call, allocating it
// on first use.
func (g *generator) retSlot(atomic types.Atomic) int {
	if addr, ok := g.retSlots[atomic]; ok {
		return addr
	}
	addr := g.syms.NewGlobalTemp(atomic)
	g.retSlots[atomic] = addr
	return addr
}

//  Statements

func (g *generator) emitBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		g.emitStmt(s)
	}
}

func (g *generator) emitStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Assignment:
		g.emitAssignment(st)
	case *ast.If:
		g.emitIf(st)
	case *ast.While:
		g.emitWhile(st)
	case *ast.For:
		g.emitFor(st)
	case *ast.Print:
		args := make([]int, len(st.Args))
		for i, a := range st.Args {
			args[i] = g.emitExpr(a)
		}
		g.emit(Quad{Op: PRINT, Args: args, Result: noResult})
	case *ast.Input:
		target := g.lvalueAddr(st.Target)
		g.emit(Quad{Op: READ, Args: []int{target}, Result: noResult})
	case *ast.Return:
		if st.Value == nil {
			g.emit(Quad{Op: RETURN, Result: noResult})
			return
		}
		valAddr := g.emitExpr(st.Value)
		g.emit(Quad{Op: RETURN, Args: []int{valAddr}, Result: noResult})
	case *ast.ExprStmt:
		g.emitExpr(st.Expr)
	case *ast.Plot:
		df := g.emitExpr(st.DF)
		x := g.emitExpr(st.XCol)
		y := g.emitExpr(st.YCol)
		g.emit(Quad{Op: PLOT, Args: []int{df, x, y}, Result: noResult})
	case *ast.Histogram:
		df := g.emitExpr(st.DF)
		col := g.emitExpr(st.Col)
		bins := g.emitExpr(st.Bins)
		g.emit(Quad{Op: HIST, Args: []int{df, col, bins}, Result: noResult})
	default:
		panic(fmt.Sprintf("ir: unsupported statement %T", s))
	}
}

func (g *generator) emitIf(st *ast.If) {
	condAddr := g.emitExpr(st.Cond)
	gotof := g.emit(Quad{Op: GOTOF, Args: []int{condAddr}, Result: noResult})
	g.emitBlock(st.Then)
	if st.Else == nil {
		g.patch(gotof, g.here())
		return
	}
	gotoEnd := g.emit(Quad{Op: GOTO, Result: noResult})
	g.patch(gotof, g.here())
	g.emitBlock(st.Else)
	g.patch(gotoEnd, g.here())
}

func (g *generator) emitWhile(st *ast.While) {
	head := g.here()
	condAddr := g.emitExpr(st.Cond)
	gotof := g.emit(Quad{Op: GOTOF, Args: []int{condAddr}, Result: noResult})
	g.emitBlock(st.Body)
	g.emit(Quad{Op: GOTO, Result: head})
	g.patch(gotof, g.here())
}

func (g *generator) emitFor(st *ast.For) {
	varAddr := g.assigneeAddr(&ast.Identifier{Name: st.Var, Line: st.Line}, false)
	startAddr := g.emitExpr(st.Start)
	g.emit(Quad{Op: ASSIGN, Args: []int{startAddr}, Result: varAddr})

	limitAddr := g.emitExpr(st.Limit)
	limitTemp := g.newTemp(types.Int)
	g.emit(Quad{Op: ASSIGN, Args: []int{limitAddr}, Result: limitTemp})

	head := g.here()
	condTemp := g.newTemp(types.Bool)
	g.emit(Quad{Op: LTE, Args: []int{varAddr, limitTemp}, Result: condTemp})
	gotof := g.emit(Quad{Op: GOTOF, Args: []int{condTemp}, Result: noResult})

	g.emitBlock(st.Body)

	one := g.syms.Constants.Intern(types.Int, "1", int64(1))
	g.emit(Quad{Op: ADD, Args: []int{varAddr, one}, Result: varAddr})
	g.emit(Quad{Op: GOTO, Result: head})
	g.patch(gotof, g.here())
}

func (g *generator) emitAssignment(assign *ast.Assignment) {
	if lit, ok := assign.Value.(*ast.ArrayLiteral); ok {
		g.emitArrayAssignment(assign.Target, assign.Global, lit)
		return
	}
	valAddr := g.emitExpr(assign.Value)
	target := g.assigneeAddr(assign.Target, assign.Global)
	g.emit(Quad{Op: ASSIGN, Args: []int{valAddr}, Result: target})
}

// emitArrayAssignment initializes the contiguous run of slots a
// declared-array identifier owns, one element at a time, since an array
// literal has no single runtime address of its own. Nested rows of a 2-D
// literal flatten into the same run in row-major order, matching the
// base + i*d2 + j linearization element accesses use.
func (g *generator) emitArrayAssignment(target ast.Expr, global bool, lit *ast.ArrayLiteral) {
	ident, ok := target.(*ast.Identifier)
	if !ok {
		panic("ir: array literal may only initialize a plain array identifier")
	}
	base := g.assigneeAddr(ident, global)
	offset := 0
	var walk func(l *ast.ArrayLiteral)
	walk = func(l *ast.ArrayLiteral) {
		for _, elem := range l.Elements {
			if row, ok := elem.(*ast.ArrayLiteral); ok {
				walk(row)
				continue
			}
			addr := g.emitExpr(elem)
			g.emit(Quad{Op: ASSIGN, Args: []int{addr}, Result: base + offset})
			offset++
		}
	}
	walk(lit)
}

// assigneeAddr resolves (or, for a first-occurrence scalar identifier,
// relies on the analyzer having already defined) the address an assignment
// target writes to. For an array element this emits the VERIFY/POINTER
// sequence and returns the resulting pointer-partition address.
func (g *generator) assigneeAddr(target ast.Expr, global bool) int {
	fn := g.fn
	if global {
		fn = ""
	}
	switch t := target.(type) {
	case *ast.Identifier:
		sym, _ := g.syms.Resolve(fn, t.Name)
		return sym.Address
	case *ast.ArrayElement:
		return g.arrayElementPointer(t, fn)
	default:
		panic(fmt.Sprintf("ir: unsupported assignment target %T", target))
	}
}

func (g *generator) lvalueAddr(target ast.Expr) int {
	return g.assigneeAddr(target, false)
}

func (g *generator) arrayElementPointer(elem *ast.ArrayElement, fn string) int {
	sym, _ := g.syms.Resolve(fn, elem.Name)
	base := sym.Address
	dims := sym.Type.Dims
	ptr := g.syms.NewPointer(g.fn)

	idx0 := g.emitExpr(elem.Indices[0])
	g.emit(Quad{Op: VERIFY, Args: []int{idx0}, Imm: []int{0, dims[0]}, Result: noResult})

	if len(elem.Indices) == 1 {
		g.emit(Quad{Op: POINTER, Args: []int{idx0}, Imm: []int{base}, Result: ptr})
		return ptr
	}

	idx1 := g.emitExpr(elem.Indices[1])
	g.emit(Quad{Op: VERIFY, Args: []int{idx1}, Imm: []int{0, dims[1]}, Result: noResult})
	g.emit(Quad{Op: POINTER, Args: []int{idx0, idx1}, Imm: []int{base, dims[1]}, Result: ptr})
	return ptr
}

//  Expressions

func (g *generator) emitExpr(e ast.Expr) int {
	switch ex := e.(type) {
	case *ast.Literal:
		return g.emitLiteral(ex)
	case *ast.Identifier:
		sym, _ := g.syms.Resolve(g.fn, ex.Name)
		return sym.Address
	case *ast.ArrayElement:
		return g.arrayElementPointer(ex, addrScope(g.fn, false))
	case *ast.ArrayLiteral:
		return g.emitArrayLiteral(ex)
	case *ast.BinaryOp:
		return g.emitBinaryOp(ex)
	case *ast.UnaryOp:
		operand := g.emitExpr(ex.Operand)
		t := g.newTemp(types.Bool)
		g.emit(Quad{Op: NOT, Args: []int{operand}, Result: t})
		return t
	case *ast.Call:
		return g.emitCall(ex)
	case *ast.DataframeOp:
		return g.emitDataframeOp(ex)
	case *ast.ReadCSV:
		path := g.emitExpr(ex.Path)
		result := g.newTemp(types.Dataframe)
		g.emit(Quad{Op: READ_CSV, Args: []int{path}, Result: result})
		return result
	default:
		panic(fmt.Sprintf("ir: unsupported expression %T", e))
	}
}

func addrScope(fn string, global bool) string {
	if global {
		return ""
	}
	return fn
}

func (g *generator) emitLiteral(l *ast.Literal) int {
	switch l.Type {
	case types.Int:
		return g.syms.Constants.Intern(types.Int, strconv.FormatInt(l.IntVal, 10), l.IntVal)
	case types.Float:
		return g.syms.Constants.Intern(types.Float, strconv.FormatFloat(l.FloatVal, 'g', -1, 64), l.FloatVal)
	case types.Bool:
		return g.syms.Constants.Intern(types.Bool, strconv.FormatBool(l.BoolVal), l.BoolVal)
	case types.String:
		return g.syms.Constants.Intern(types.String, l.StrVal, l.StrVal)
	default:
		panic(fmt.Sprintf("ir: unsupported literal type %v", l.Type))
	}
}

// emitArrayLiteral handles an array literal encountered outside the
// top-level-assignment position emitAssignment special-cases; it has no
// single home address, so it materializes into a fresh scratch run of
// temporaries and returns the first one's address.
func (g *generator) emitArrayLiteral(lit *ast.ArrayLiteral) int {
	elemAtomic := g.info.TypeOf(lit).Atomic
	first := noResult
	for i, elem := range lit.Elements {
		addr := g.emitExpr(elem)
		slot := g.newTemp(elemAtomic)
		g.emit(Quad{Op: ASSIGN, Args: []int{addr}, Result: slot})
		if i == 0 {
			first = slot
		}
	}
	if first == noResult {
		first = g.newTemp(elemAtomic)
	}
	return first
}

var binOpToQuad = map[token.Kind]Op{
	token.PLUS:  ADD,
	token.MINUS: SUB,
	token.STAR:  MUL,
	token.SLASH: DIV,
	token.EQ:    EQ,
	token.NEQ:   NE,
	token.GT:    GT,
	token.GTE:   GTE,
	token.LT:    LT,
	token.LTE:   LTE,
	token.AND:   AND,
	token.OR:    OR,
}

func (g *generator) emitBinaryOp(b *ast.BinaryOp) int {
	left := g.emitExpr(b.Left)
	right := g.emitExpr(b.Right)
	op, ok := binOpToQuad[b.Op]
	if !ok {
		panic(fmt.Sprintf("ir: unsupported binary operator %v", b.Op))
	}
	resultType := g.info.TypeOf(b)
	t := g.newTemp(resultType.Atomic)
	g.emit(Quad{Op: op, Args: []int{left, right}, Result: t})
	return t
}

func (g *generator) emitCall(c *ast.Call) int {
	entry, ok := g.syms.Functions.Lookup(c.Callee)
	if !ok {
		panic(fmt.Sprintf("ir: call to undeclared function %q", c.Callee))
	}
	// Argument expressions are lowered before ERA opens the staging frame:
	// an argument containing its own call would clobber a frame already
	// pending between ERA and GOSUB.
	argAddrs := make([]int, len(c.Args))
	for i, arg := range c.Args {
		argAddrs[i] = g.emitExpr(arg)
	}
	g.emit(Quad{Op: ERA, Callee: c.Callee, Result: noResult})
	for i, addr := range argAddrs {
		g.emit(Quad{Op: PARAM, Args: []int{addr}, Imm: []int{i}, Result: noResult})
	}
	g.emit(Quad{Op: GOSUB, Callee: c.Callee, Result: noResult})
	if entry.ReturnType.Atomic == types.Void {
		return noResult
	}
	// The shared return slot is overwritten by the next call with the same
	// return type, so the value is claimed into a fresh temporary right
	// after GOSUB.
	slot := g.retSlot(entry.ReturnType.Atomic)
	t := g.newTemp(entry.ReturnType.Atomic)
	g.emit(Quad{Op: ASSIGN, Args: []int{slot}, Result: t})
	return t
}

var dataframeOpToQuad = map[token.Kind]Op{
	token.GET_ROWS:    GET_ROWS,
	token.GET_COLUMNS: GET_COLUMNS,
	token.AVERAGE:     AVERAGE,
	token.STD:         STD,
	token.MEDIAN:      MEDIAN,
	token.VARIANCE:    VARIANCE,
	token.MIN:         MIN,
	token.MAX:         MAX,
	token.RANGE:       RANGE,
	token.CORRELATION: CORREL,
}

func (g *generator) emitDataframeOp(d *ast.DataframeOp) int {
	op, ok := dataframeOpToQuad[d.Op]
	if !ok {
		panic(fmt.Sprintf("ir: unsupported dataframe operator %v", d.Op))
	}
	dfAddr := g.emitExpr(d.DF)
	args := []int{dfAddr}
	for _, arg := range d.Args {
		args = append(args, g.emitExpr(arg))
	}
	resultType := g.info.TypeOf(d)
	t := g.newTemp(resultType.Atomic)
	g.emit(Quad{Op: op, Args: args, Result: t})
	return t
}
