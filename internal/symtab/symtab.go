// Package symtab implements Raoul's two-level symbol table, the global
// function table, and the de-duplicated constant table.
package symtab

import (
	"fmt"
	"sort"

	"github.com/ricglz/raoul/internal/address"
	"github.com/ricglz/raoul/internal/types"
)

// Symbol is one entry of a scope: {name, type, first_address, dims?,
// is_argument?}.
type Symbol struct {
	Name       string
	Type       types.Type
	Address    int
	IsArgument bool
}

// Scope is a flat name -> Symbol map. Names are unique within a scope.
type Scope struct {
	symbols map[string]*Symbol
	order   []string // insertion order, for deterministic debug dumps
}

func newScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

func (s *Scope) Define(sym *Symbol) {
	if _, exists := s.symbols[sym.Name]; !exists {
		s.order = append(s.order, sym.Name)
	}
	s.symbols[sym.Name] = sym
}

func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// FuncEntry is one row of the global function table: {name -> (return
// type, param types, start ip, resource counts)}.
type FuncEntry struct {
	Name           string
	ReturnType     types.Type
	ParamTypes     []types.Type
	ParamNames     []string
	ParamAddrs     []int
	StartIP        int
	ResourceCounts map[address.Space]map[types.Atomic]int
}

// FunctionTable is the global, forward-declared-first table of every
// function signature, built before any function body is analyzed so
// calls can resolve regardless of textual order.
type FunctionTable struct {
	entries map[string]*FuncEntry
	order   []string
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{entries: make(map[string]*FuncEntry)}
}

func (ft *FunctionTable) Declare(e *FuncEntry) bool {
	if _, exists := ft.entries[e.Name]; exists {
		return false
	}
	ft.entries[e.Name] = e
	ft.order = append(ft.order, e.Name)
	return true
}

func (ft *FunctionTable) Lookup(name string) (*FuncEntry, bool) {
	e, ok := ft.entries[name]
	return e, ok
}

func (ft *FunctionTable) Names() []string {
	out := make([]string, len(ft.order))
	copy(out, ft.order)
	return out
}

// ConstKey identifies one de-duplicated literal value+type pair.
type ConstKey struct {
	Atomic types.Atomic
	Value  string
}

// ConstantTable maps literal value+type pairs to their dedicated constant
// address, de-duplicated by (type, textual value).
type ConstantTable struct {
	alloc  *address.Allocator
	addrs  map[ConstKey]int
	values map[int]any
}

func NewConstantTable() *ConstantTable {
	return &ConstantTable{
		alloc:  address.NewAllocator(),
		addrs:  make(map[ConstKey]int),
		values: make(map[int]any),
	}
}

// Intern returns the address of the constant, allocating a fresh one the
// first time a given (atomic, value) pair is seen.
func (ct *ConstantTable) Intern(atomic types.Atomic, repr string, value any) int {
	key := ConstKey{Atomic: atomic, Value: repr}
	if addr, ok := ct.addrs[key]; ok {
		return addr
	}
	addr := ct.alloc.Alloc(address.Const, atomic, 1)
	ct.addrs[key] = addr
	ct.values[addr] = value
	return addr
}

// Values returns the full address -> materialized-value map the VM loads
// into memory at start.
func (ct *ConstantTable) Values() map[int]any {
	out := make(map[int]any, len(ct.values))
	for k, v := range ct.values {
		out[k] = v
	}
	return out
}

// SymbolTable is the global scope plus one scope per function, the shared
// function table, and the shared constant table.
type SymbolTable struct {
	Global    *Scope
	Functions *FunctionTable
	Constants *ConstantTable

	globalAlloc *address.Allocator
	funcScopes  map[string]*Scope
	funcAllocs  map[string]*address.Allocator

	currentFunc string
}

func New() *SymbolTable {
	return &SymbolTable{
		Global:      newScope(),
		Functions:   NewFunctionTable(),
		Constants:   NewConstantTable(),
		globalAlloc: address.NewAllocator(),
		funcScopes:  make(map[string]*Scope),
		funcAllocs:  make(map[string]*address.Allocator),
	}
}

// EnterFunction creates a fresh local scope and a fresh local address
// allocator for fn, so local slot numbering restarts for every function
// body.
func (st *SymbolTable) EnterFunction(fn string) {
	st.funcScopes[fn] = newScope()
	st.funcAllocs[fn] = address.NewAllocator()
	st.currentFunc = fn
}

func (st *SymbolTable) LocalScope(fn string) *Scope {
	return st.funcScopes[fn]
}

// DefineGlobal allocates a fresh address (or an array run) and defines sym
// in the global scope. Type and Name must already be set on sym.
func (st *SymbolTable) DefineGlobal(sym *Symbol) *Symbol {
	space := address.GlobalVar
	sym.Address = st.globalAlloc.Alloc(space, sym.Type.Atomic, sym.Type.Size())
	st.Global.Define(sym)
	return sym
}

// DefineLocal allocates a fresh address in fn's local scope.
func (st *SymbolTable) DefineLocal(fn string, sym *Symbol) *Symbol {
	alloc := st.funcAllocs[fn]
	space := address.LocalVar
	sym.Address = alloc.Alloc(space, sym.Type.Atomic, sym.Type.Size())
	st.funcScopes[fn].Define(sym)
	return sym
}

// NewGlobalTemp allocates a fresh global temporary address of atomic.
func (st *SymbolTable) NewGlobalTemp(atomic types.Atomic) int {
	return st.globalAlloc.Alloc(address.GlobalTmp, atomic, 1)
}

// NewLocalTemp allocates a fresh local temporary address of atomic within fn.
func (st *SymbolTable) NewLocalTemp(fn string, atomic types.Atomic) int {
	return st.funcAllocs[fn].Alloc(address.LocalTmp, atomic, 1)
}

// NewPointer allocates a fresh indirection-partition slot, used to hold a
// computed array-element address.
func (st *SymbolTable) NewPointer(fn string) int {
	if fn == "" {
		return st.globalAlloc.Alloc(address.Pointer, types.Invalid, 1)
	}
	return st.funcAllocs[fn].Alloc(address.Pointer, types.Invalid, 1)
}

// ResourceCounts reports how many locals/temporaries of each type fn has
// requested so far, keyed the way FuncEntry.ResourceCounts expects.
func (st *SymbolTable) ResourceCounts(fn string) map[address.Space]map[types.Atomic]int {
	alloc := st.funcAllocs[fn]
	out := make(map[address.Space]map[types.Atomic]int)
	for _, space := range []address.Space{address.LocalVar, address.LocalTmp, address.Pointer} {
		byType := make(map[types.Atomic]int)
		for _, atomic := range []types.Atomic{types.Int, types.Float, types.Bool, types.String, types.Dataframe} {
			if n := alloc.Count(space, atomic); n > 0 {
				byType[atomic] = n
			}
		}
		if space == address.Pointer {
			if n := alloc.Count(space, types.Invalid); n > 0 {
				byType[types.Invalid] = n
			}
		}
		out[space] = byType
	}
	return out
}

// Resolve looks up name first in fn's local scope (if fn != ""), then in
// the global scope.
func (st *SymbolTable) Resolve(fn, name string) (*Symbol, bool) {
	if fn != "" {
		if scope, ok := st.funcScopes[fn]; ok {
			if sym, ok := scope.Lookup(name); ok {
				return sym, true
			}
		}
	}
	return st.Global.Lookup(name)
}

// String renders a debug dump of the global scope, every function's local
// scope, and the function table, for the CLI's -d/--debug output.
func (st *SymbolTable) String() string {
	out := "globals:\n"
	for _, name := range st.Global.Names() {
		sym, _ := st.Global.Lookup(name)
		out += fmt.Sprintf("  %s: %s @%d\n", sym.Name, sym.Type, sym.Address)
	}
	fnNames := st.Functions.Names()
	sort.Strings(fnNames)
	for _, fn := range fnNames {
		out += fmt.Sprintf("function %s:\n", fn)
		scope := st.funcScopes[fn]
		if scope == nil {
			continue
		}
		for _, name := range scope.Names() {
			sym, _ := scope.Lookup(name)
			out += fmt.Sprintf("  %s: %s @%d\n", sym.Name, sym.Type, sym.Address)
		}
	}
	return out
}
