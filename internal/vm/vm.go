// Package vm implements Raoul's stack-based virtual machine: a typed
// memory model, an activation-record stack, and an opcode dispatch loop
// over the quadruple list an internal/ir.Program carries.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ricglz/raoul/internal/address"
	"github.com/ricglz/raoul/internal/dataframe"
	"github.com/ricglz/raoul/internal/diagnostics"
	"github.com/ricglz/raoul/internal/ir"
	"github.com/ricglz/raoul/internal/types"
)

// PlotSink is the external collaborator the PLOT/HIST opcodes render
// through; the production sink (internal/plot.EbitenSink) opens a
// blocking window, tests inject a recording fake instead.
type PlotSink interface {
	Scatter(xs, ys []float64) error
	Histogram(values []float64, bins int) error
}

type noopSink struct{}

func (noopSink) Scatter(xs, ys []float64) error             { return nil }
func (noopSink) Histogram(values []float64, bins int) error { return nil }

// maxCallDepth bounds the activation stack.
const maxCallDepth = 1024

// frame is one activation record: locals/temporaries/pointer slots for a
// single function invocation. returnIP is the instruction pointer to
// restore on ENDFUNC/RETURN; Run points main's bootstrap frame (which has
// no caller and is never reached via GOSUB) at the final END quadruple, and
// the newFrame default of -1 leaves the instruction pointer unchanged.
type frame struct {
	ints       map[int]int64
	floats     map[int]float64
	bools      map[int]bool
	strings    map[int]string
	dataframes map[int]*dataframe.Frame
	pointers   map[int]int
	returnIP   int
	calleeName string
}

func newFrame() *frame {
	return &frame{
		ints:       make(map[int]int64),
		floats:     make(map[int]float64),
		bools:      make(map[int]bool),
		strings:    make(map[int]string),
		dataframes: make(map[int]*dataframe.Frame),
		pointers:   make(map[int]int),
		returnIP:   -1,
	}
}

// VM executes one compiled Program. It is single-threaded and synchronous:
// no operation suspends cooperatively, and I/O is blocking.
type VM struct {
	prog *ir.Program

	global *frame
	frames []*frame // activation stack; frames[0] is main's bootstrap frame

	staging       *frame
	stagingCallee string

	ip       int
	halted   bool
	plotSink PlotSink

	Stdin  *bufio.Scanner
	Stdout io.Writer
}

// New builds a VM ready to run prog, materializing the constant table into
// the global frame.
func New(prog *ir.Program) *VM {
	vm := &VM{
		prog:     prog,
		global:   newFrame(),
		plotSink: noopSink{},
		Stdout:   os.Stdout,
	}
	vm.Stdin = bufio.NewScanner(os.Stdin)
	vm.Stdin.Split(bufio.ScanWords)

	for addr, val := range prog.Constants {
		_, atomic, _ := address.Decode(addr)
		switch atomic {
		case types.Int:
			vm.global.ints[addr] = val.(int64)
		case types.Float:
			vm.global.floats[addr] = val.(float64)
		case types.Bool:
			vm.global.bools[addr] = val.(bool)
		case types.String:
			vm.global.strings[addr] = val.(string)
		}
	}
	return vm
}

// MountPlotSink attaches the sink PLOT/HIST render through.
func (vm *VM) MountPlotSink(sink PlotSink) { vm.plotSink = sink }

// SetStdin redirects READ's input source, word-tokenized the same way as
// the default os.Stdin scanner; tests use this to feed canned input.
func (vm *VM) SetStdin(r io.Reader) {
	vm.Stdin = bufio.NewScanner(r)
	vm.Stdin.Split(bufio.ScanWords)
}

// Run executes the program to completion (END, PLOT, or HIST) or until a
// runtime error occurs. main's bootstrap frame is pushed once up front, so
// global initializers and main's own locals share it without ever being
// reached via GOSUB (see internal/ir.Generate's layout). Its return IP is
// the final END quadruple, so both main's trailing ENDFUNC and an early
// `return;` inside main land on END rather than falling through.
func (vm *VM) Run() error {
	root := newFrame()
	root.calleeName = "main"
	root.returnIP = len(vm.prog.Quads) - 1
	vm.frames = []*frame{root}
	vm.ip = 0
	vm.halted = false
	for !vm.halted {
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) fail(ip int, kind diagnostics.RuntimeKind, format string, args ...any) error {
	return errors.WithStack(&diagnostics.RuntimeError{Kind: kind, IP: ip, Message: fmt.Sprintf(format, args...)})
}

func (vm *VM) active() *frame { return vm.frames[len(vm.frames)-1] }

func (vm *VM) frameFor(space address.Space) *frame {
	switch space {
	case address.GlobalVar, address.GlobalTmp, address.Const:
		return vm.global
	default:
		return vm.active()
	}
}

// resolveAddr indirects once: an operand whose address lies in the pointer
// partition reads its real target address out of the active frame's
// pointer slot.
func (vm *VM) resolveAddr(addr int) int {
	space, _, _ := address.Decode(addr)
	if space == address.Pointer {
		return vm.active().pointers[addr]
	}
	return addr
}

// readAny reads the (possibly indirect) operand at addr and reports its
// own atomic type, as recorded by the address partition it resolves into.
func (vm *VM) readAny(addr int) (any, types.Atomic) {
	real := vm.resolveAddr(addr)
	space, atomic, _ := address.Decode(real)
	f := vm.frameFor(space)
	switch atomic {
	case types.Int:
		return f.ints[real], types.Int
	case types.Float:
		return f.floats[real], types.Float
	case types.Bool:
		return f.bools[real], types.Bool
	case types.String:
		return f.strings[real], types.String
	case types.Dataframe:
		return f.dataframes[real], types.Dataframe
	default:
		return nil, types.Invalid
	}
}

// writeAny writes val (already of the target atomic type) to the
// (possibly indirect) operand at addr.
func (vm *VM) writeAny(addr int, val any) error {
	real := vm.resolveAddr(addr)
	space, atomic, _ := address.Decode(real)
	f := vm.frameFor(space)
	switch atomic {
	case types.Int:
		f.ints[real] = val.(int64)
	case types.Float:
		f.floats[real] = val.(float64)
	case types.Bool:
		f.bools[real] = val.(bool)
	case types.String:
		f.strings[real] = val.(string)
	case types.Dataframe:
		f.dataframes[real] = val.(*dataframe.Frame)
	default:
		return errors.Errorf("vm: cannot write to address %d with no partition", addr)
	}
	return nil
}

// cast converts val (of atomic `from`) to atomic `to`, per the language's
// implicit cast rules. Only called where the semantic analyzer already
// proved the conversion legal; CastFailed is reserved for the one
// runtime-only failure mode, a malformed numeric string.
func cast(val any, from, to types.Atomic, ip int) (any, error) {
	if from == to {
		return val, nil
	}
	switch to {
	case types.Int:
		switch from {
		case types.Float:
			return int64(val.(float64)), nil
		case types.String:
			s := strings.TrimSpace(val.(string))
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.WithStack(&diagnostics.RuntimeError{Kind: diagnostics.CastFailed, IP: ip, Message: fmt.Sprintf("cannot parse %q as int", s)})
			}
			return int64(f), nil
		}
	case types.Float:
		switch from {
		case types.Int:
			return float64(val.(int64)), nil
		case types.String:
			f, err := strconv.ParseFloat(strings.TrimSpace(val.(string)), 64)
			if err != nil {
				return nil, errors.WithStack(&diagnostics.RuntimeError{Kind: diagnostics.CastFailed, IP: ip, Message: fmt.Sprintf("cannot parse %q as float", val.(string))})
			}
			return f, nil
		}
	}
	return nil, errors.Errorf("vm: no cast path from %v to %v", from, to)
}

// readAs reads addr's value and casts it to want.
func (vm *VM) readAs(addr int, want types.Atomic, ip int) (any, error) {
	val, from := vm.readAny(addr)
	return cast(val, from, want, ip)
}

func (vm *VM) step() error {
	if vm.ip < 0 || vm.ip >= len(vm.prog.Quads) {
		return vm.fail(vm.ip, diagnostics.RuntimeType, "instruction pointer out of program bounds")
	}
	ip := vm.ip
	q := vm.prog.Quads[ip]
	vm.ip++

	switch q.Op {
	case ir.ADD:
		return vm.arith(q, ip, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case ir.SUB:
		return vm.arith(q, ip, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case ir.MUL:
		return vm.arith(q, ip, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case ir.DIV:
		return vm.div(q, ip)

	case ir.EQ, ir.NE, ir.GT, ir.LT, ir.GTE, ir.LTE:
		return vm.compare(q, ip)

	case ir.AND, ir.OR:
		return vm.logical(q, ip)
	case ir.NOT:
		a, err := vm.readAs(q.Args[0], types.Bool, ip)
		if err != nil {
			return err
		}
		return vm.writeAny(q.Result, !a.(bool))

	case ir.ASSIGN:
		val, from := vm.readAny(q.Args[0])
		real := vm.resolveAddr(q.Result)
		_, destAtomic, _ := address.Decode(real)
		casted, err := cast(val, from, destAtomic, ip)
		if err != nil {
			return err
		}
		return vm.writeAny(q.Result, casted)

	case ir.VERIFY:
		idx, err := vm.readAs(q.Args[0], types.Int, ip)
		if err != nil {
			return err
		}
		i := idx.(int64)
		lo, hi := int64(q.Imm[0]), int64(q.Imm[1])
		if i < lo || i >= hi {
			return vm.fail(ip, diagnostics.OutOfBounds, "index %d out of range [%d, %d)", i, lo, hi)
		}
		return nil

	case ir.POINTER:
		return vm.pointer(q, ip)

	case ir.GOTO:
		vm.ip = q.Result
		return nil
	case ir.GOTOF:
		v, err := vm.readAs(q.Args[0], types.Bool, ip)
		if err != nil {
			return err
		}
		if !v.(bool) {
			vm.ip = q.Result
		}
		return nil
	case ir.GOTOT:
		v, err := vm.readAs(q.Args[0], types.Bool, ip)
		if err != nil {
			return err
		}
		if v.(bool) {
			vm.ip = q.Result
		}
		return nil

	case ir.ERA:
		vm.staging = newFrame()
		vm.stagingCallee = q.Callee
		return nil
	case ir.PARAM:
		return vm.param(q, ip)
	case ir.GOSUB:
		return vm.gosub(q, ip)
	case ir.RETURN:
		return vm.ret(q, ip)
	case ir.ENDFUNC:
		return vm.endfunc()

	case ir.PRINT:
		return vm.print(q)
	case ir.READ:
		return vm.read(q, ip)

	case ir.READ_CSV:
		return vm.readCSV(q, ip)
	case ir.GET_ROWS:
		return vm.dfRowCount(q, ip)
	case ir.GET_COLUMNS:
		return vm.dfColumnCount(q, ip)
	case ir.AVERAGE, ir.STD, ir.MEDIAN, ir.VARIANCE, ir.MIN, ir.MAX, ir.RANGE:
		return vm.dfAggregate(q, ip)
	case ir.CORREL:
		return vm.dfCorrel(q, ip)
	case ir.PLOT:
		return vm.plot(q, ip)
	case ir.HIST:
		return vm.hist(q, ip)

	case ir.END:
		vm.halted = true
		return nil

	default:
		return vm.fail(ip, diagnostics.RuntimeType, "unsupported opcode %s", q.Op)
	}
}

func (vm *VM) arith(q ir.Quad, ip int, intFn func(a, b int64) int64, floatFn func(a, b float64) float64) error {
	_, destAtomic, _ := address.Decode(vm.resolveAddr(q.Result))
	a, err := vm.readAs(q.Args[0], destAtomic, ip)
	if err != nil {
		return err
	}
	b, err := vm.readAs(q.Args[1], destAtomic, ip)
	if err != nil {
		return err
	}
	if destAtomic == types.Int {
		return vm.writeAny(q.Result, intFn(a.(int64), b.(int64)))
	}
	return vm.writeAny(q.Result, floatFn(a.(float64), b.(float64)))
}

func (vm *VM) div(q ir.Quad, ip int) error {
	_, destAtomic, _ := address.Decode(vm.resolveAddr(q.Result))
	a, err := vm.readAs(q.Args[0], destAtomic, ip)
	if err != nil {
		return err
	}
	b, err := vm.readAs(q.Args[1], destAtomic, ip)
	if err != nil {
		return err
	}
	if destAtomic == types.Int {
		bi := b.(int64)
		if bi == 0 {
			return vm.fail(ip, diagnostics.DivByZero, "integer division by zero")
		}
		return vm.writeAny(q.Result, a.(int64)/bi)
	}
	return vm.writeAny(q.Result, a.(float64)/b.(float64)) // IEEE-754 +-Inf/NaN on zero divisor
}

func (vm *VM) compare(q ir.Quad, ip int) error {
	aVal, aType := vm.readAny(q.Args[0])
	bVal, bType := vm.readAny(q.Args[1])

	if aType == types.String || bType == types.String {
		as, bs := aVal.(string), bVal.(string)
		var result bool
		switch q.Op {
		case ir.EQ:
			result = as == bs
		case ir.NE:
			result = as != bs
		default:
			return vm.fail(ip, diagnostics.RuntimeType, "relational comparison is not defined for strings")
		}
		return vm.writeAny(q.Result, result)
	}

	af, err := cast(aVal, aType, types.Float, ip)
	if err != nil {
		return err
	}
	bf, err := cast(bVal, bType, types.Float, ip)
	if err != nil {
		return err
	}
	a, b := af.(float64), bf.(float64)
	var result bool
	switch q.Op {
	case ir.EQ:
		result = a == b
	case ir.NE:
		result = a != b
	case ir.GT:
		result = a > b
	case ir.LT:
		result = a < b
	case ir.GTE:
		result = a >= b
	case ir.LTE:
		result = a <= b
	}
	return vm.writeAny(q.Result, result)
}

func (vm *VM) logical(q ir.Quad, ip int) error {
	a, err := vm.readAs(q.Args[0], types.Bool, ip)
	if err != nil {
		return err
	}
	b, err := vm.readAs(q.Args[1], types.Bool, ip)
	if err != nil {
		return err
	}
	if q.Op == ir.AND {
		return vm.writeAny(q.Result, a.(bool) && b.(bool))
	}
	return vm.writeAny(q.Result, a.(bool) || b.(bool))
}

// pointer computes the linear array address a POINTER quad requests: base
// + idx0 for a 1-D access, base + idx0*stride + idx1 for 2-D.
func (vm *VM) pointer(q ir.Quad, ip int) error {
	idx0v, err := vm.readAs(q.Args[0], types.Int, ip)
	if err != nil {
		return err
	}
	base := q.Imm[0]
	idx0 := int(idx0v.(int64))
	var real int
	if len(q.Args) == 1 {
		real = base + idx0
	} else {
		idx1v, err := vm.readAs(q.Args[1], types.Int, ip)
		if err != nil {
			return err
		}
		stride := q.Imm[1]
		real = base + idx0*stride + int(idx1v.(int64))
	}
	vm.active().pointers[q.Result] = real
	return nil
}

func (vm *VM) param(q ir.Quad, ip int) error {
	entry, ok := vm.prog.Functions.Lookup(vm.stagingCallee)
	if !ok {
		return vm.fail(ip, diagnostics.RuntimeType, "call to undeclared function %q", vm.stagingCallee)
	}
	idx := q.Imm[0]
	paramAddr := entry.ParamAddrs[idx]
	paramType := entry.ParamTypes[idx]
	if paramType.IsArray() {
		return vm.paramArray(q.Args[0], paramAddr, paramType)
	}
	_, destAtomic, _ := address.Decode(paramAddr)
	val, err := vm.readAs(q.Args[0], destAtomic, ip)
	if err != nil {
		return err
	}
	vm.writeStaging(paramAddr, destAtomic, val)
	return nil
}

// paramArray copies an array argument's whole contiguous run of elements
// (base..base+size) by value into the callee's staging frame, since the
// single-address PARAM quad an array argument emits names only its base.
func (vm *VM) paramArray(sourceBase, destBase int, paramType types.Type) error {
	_, atomic, _ := address.Decode(sourceBase)
	n := paramType.Size()
	for i := 0; i < n; i++ {
		val, _ := vm.readAny(sourceBase + i)
		vm.writeStaging(destBase+i, atomic, val)
	}
	return nil
}

func (vm *VM) writeStaging(addr int, atomic types.Atomic, val any) {
	switch atomic {
	case types.Int:
		vm.staging.ints[addr] = val.(int64)
	case types.Float:
		vm.staging.floats[addr] = val.(float64)
	case types.Bool:
		vm.staging.bools[addr] = val.(bool)
	case types.String:
		vm.staging.strings[addr] = val.(string)
	case types.Dataframe:
		vm.staging.dataframes[addr] = val.(*dataframe.Frame)
	}
}

func (vm *VM) gosub(q ir.Quad, ip int) error {
	entry, ok := vm.prog.Functions.Lookup(q.Callee)
	if !ok {
		return vm.fail(ip, diagnostics.RuntimeType, "call to undeclared function %q", q.Callee)
	}
	if len(vm.frames) >= maxCallDepth {
		return vm.fail(ip, diagnostics.StackOverflow, "recursion depth exceeds %d", maxCallDepth)
	}
	callee := vm.staging
	if callee == nil {
		callee = newFrame()
	}
	callee.returnIP = vm.ip
	callee.calleeName = q.Callee
	vm.frames = append(vm.frames, callee)
	vm.staging = nil
	vm.ip = entry.StartIP
	return nil
}

func (vm *VM) ret(q ir.Quad, ip int) error {
	if len(q.Args) > 0 {
		top := vm.active()
		if entry, ok := vm.prog.Functions.Lookup(top.calleeName); ok {
			atomic := entry.ReturnType.Atomic
			val, err := vm.readAs(q.Args[0], atomic, ip)
			if err != nil {
				return err
			}
			if slot, ok := vm.prog.ReturnSlots[atomic]; ok {
				if err := vm.writeAny(slot, val); err != nil {
					return err
				}
			}
		}
	}
	return vm.endfunc()
}

func (vm *VM) endfunc() error {
	top := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) == 0 {
		vm.frames = []*frame{newFrame()} // keep a frame for any trailing dead code before END
	}
	if top.returnIP >= 0 {
		vm.ip = top.returnIP
	}
	return nil
}

func (vm *VM) print(q ir.Quad) error {
	parts := make([]string, len(q.Args))
	for i, addr := range q.Args {
		val, atomic := vm.readAny(addr)
		parts[i] = formatValue(val, atomic)
	}
	_, err := fmt.Fprintln(vm.Stdout, strings.Join(parts, " "))
	return err
}

func formatValue(val any, atomic types.Atomic) string {
	switch atomic {
	case types.Int:
		return strconv.FormatInt(val.(int64), 10)
	case types.Float:
		return strconv.FormatFloat(val.(float64), 'g', -1, 64)
	case types.Bool:
		return strconv.FormatBool(val.(bool))
	case types.String:
		return val.(string)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (vm *VM) read(q ir.Quad, ip int) error {
	if !vm.Stdin.Scan() {
		return vm.fail(ip, diagnostics.EndOfInput, "no more input")
	}
	tok := vm.Stdin.Text()
	real := vm.resolveAddr(q.Args[0])
	_, destAtomic, _ := address.Decode(real)
	val, err := cast(tok, types.String, destAtomic, ip)
	if err != nil {
		return err
	}
	return vm.writeAny(q.Args[0], val)
}

func (vm *VM) readCSV(q ir.Quad, ip int) error {
	pathVal, err := vm.readAs(q.Args[0], types.String, ip)
	if err != nil {
		return err
	}
	df, rerr := dataframe.ReadCSV(pathVal.(string))
	if rerr != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "read_csv: %v", rerr)
	}
	return vm.writeAny(q.Result, df)
}

func (vm *VM) dfArg(q ir.Quad, ip int) (*dataframe.Frame, error) {
	dfVal, _ := vm.readAny(q.Args[0])
	df, ok := dfVal.(*dataframe.Frame)
	if !ok || df == nil {
		return nil, vm.fail(ip, diagnostics.RuntimeType, "dataframe operand has not been materialized")
	}
	return df, nil
}

func (vm *VM) dfRowCount(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	return vm.writeAny(q.Result, int64(df.RowCount))
}

func (vm *VM) dfColumnCount(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	return vm.writeAny(q.Result, int64(df.ColumnCount()))
}

func (vm *VM) dfAggregate(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	col, cerr := vm.readAs(q.Args[1], types.String, ip)
	if cerr != nil {
		return cerr
	}
	name := col.(string)
	if !df.HasColumn(name) {
		return vm.fail(ip, diagnostics.UnknownColumn, "unknown column %q", name)
	}
	var v float64
	var aggErr error
	switch q.Op {
	case ir.AVERAGE:
		v, aggErr = df.Average(name)
	case ir.STD:
		v, aggErr = df.Std(name)
	case ir.MEDIAN:
		v, aggErr = df.Median(name)
	case ir.VARIANCE:
		v, aggErr = df.Variance(name)
	case ir.MIN:
		v, aggErr = df.Min(name)
	case ir.MAX:
		v, aggErr = df.Max(name)
	case ir.RANGE:
		v, aggErr = df.Range(name)
	}
	if aggErr != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "column %q is not numeric", name)
	}
	return vm.writeAny(q.Result, v)
}

func (vm *VM) dfCorrel(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	xv, xerr := vm.readAs(q.Args[1], types.String, ip)
	if xerr != nil {
		return xerr
	}
	yv, yerr := vm.readAs(q.Args[2], types.String, ip)
	if yerr != nil {
		return yerr
	}
	xName, yName := xv.(string), yv.(string)
	if !df.HasColumn(xName) {
		return vm.fail(ip, diagnostics.UnknownColumn, "unknown column %q", xName)
	}
	if !df.HasColumn(yName) {
		return vm.fail(ip, diagnostics.UnknownColumn, "unknown column %q", yName)
	}
	r, cerr := df.Correl(xName, yName)
	if cerr != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "correlation requires numeric columns")
	}
	return vm.writeAny(q.Result, r)
}

func (vm *VM) plot(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	xName, xerr := vm.readAs(q.Args[1], types.String, ip)
	if xerr != nil {
		return xerr
	}
	yName, yerr := vm.readAs(q.Args[2], types.String, ip)
	if yerr != nil {
		return yerr
	}
	xs, xe := df.NumericColumn(xName.(string))
	if xe != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "plot: %v", xe)
	}
	ys, ye := df.NumericColumn(yName.(string))
	if ye != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "plot: %v", ye)
	}
	if serr := vm.plotSink.Scatter(xs, ys); serr != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "plot: %v", serr)
	}
	vm.halted = true
	return nil
}

func (vm *VM) hist(q ir.Quad, ip int) error {
	df, err := vm.dfArg(q, ip)
	if err != nil {
		return err
	}
	colName, cerr := vm.readAs(q.Args[1], types.String, ip)
	if cerr != nil {
		return cerr
	}
	binsVal, berr := vm.readAs(q.Args[2], types.Int, ip)
	if berr != nil {
		return berr
	}
	vals, ce := df.NumericColumn(colName.(string))
	if ce != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "histogram: %v", ce)
	}
	if serr := vm.plotSink.Histogram(vals, int(binsVal.(int64))); serr != nil {
		return vm.fail(ip, diagnostics.RuntimeType, "histogram: %v", serr)
	}
	vm.halted = true
	return nil
}
