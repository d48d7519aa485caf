// Package address implements Raoul's virtual address space: a flat integer
// range partitioned by (scope × kind × type), so that every value --
// variable, temporary, or literal constant -- has exactly one global
// integer address.
package address

import (
	"fmt"

	"github.com/ricglz/raoul/internal/types"
)

// Space is one scope×kind partition of the address space.
type Space int

const (
	GlobalVar Space = iota
	GlobalTmp
	LocalVar
	LocalTmp
	Const
	Pointer
)

func (s Space) String() string {
	switch s {
	case GlobalVar:
		return "global-var"
	case GlobalTmp:
		return "global-tmp"
	case LocalVar:
		return "local-var"
	case LocalTmp:
		return "local-tmp"
	case Const:
		return "const"
	case Pointer:
		return "pointer"
	default:
		return "unknown-space"
	}
}

// bandWidth is the number of addresses reserved for one Space; typeWidth is
// the sub-band reserved for one atomic type within a type-subdivided Space.
// Widths are generous compile-time constants, not a tuned runtime budget --
// a real Raoul program uses a vanishingly small fraction of this range.
const (
	bandWidth = 1_000_000
	typeWidth = bandWidth / 5
)

func typeIndex(a types.Atomic) int {
	switch a {
	case types.Int:
		return 0
	case types.Float:
		return 1
	case types.Bool:
		return 2
	case types.String:
		return 3
	case types.Dataframe:
		return 4
	default:
		panic(fmt.Sprintf("address: no partition slot for atomic type %v", a))
	}
}

// Base returns the first address of the (space, atomic) partition. Pointer
// addresses have no type subdivision: the atomic argument is ignored.
func Base(space Space, atomic types.Atomic) int {
	if space == Pointer {
		return int(space) * bandWidth
	}
	return int(space)*bandWidth + typeIndex(atomic)*typeWidth
}

// Decode reports which partition an address falls in and its offset within
// that partition's sequential allocation order. It never fails: every
// non-negative address decodes to exactly one partition, even if nothing
// was ever allocated there.
func Decode(addr int) (space Space, atomic types.Atomic, offset int) {
	space = Space(addr / bandWidth)
	rem := addr % bandWidth
	if space == Pointer {
		return space, types.Invalid, rem
	}
	idx := rem / typeWidth
	offset = rem % typeWidth
	switch idx {
	case 0:
		atomic = types.Int
	case 1:
		atomic = types.Float
	case 2:
		atomic = types.Bool
	case 3:
		atomic = types.String
	case 4:
		atomic = types.Dataframe
	default:
		atomic = types.Invalid
	}
	return space, atomic, offset
}

// Allocator hands out contiguous runs of addresses within one Space,
// bumping a per-(space,atomic) cursor. internal/symtab keeps one Allocator
// for the lifetime of compilation for GlobalVar/GlobalTmp (and the Pointer
// slots of top-level code), the constant table keeps its own for Const, and
// a fresh Allocator is created per function for that function's
// LocalVar/LocalTmp/Pointer slots, the same way a fresh function activation
// resets its local slot numbering for every function body.
type Allocator struct {
	next map[Space]map[types.Atomic]int
}

func NewAllocator() *Allocator {
	return &Allocator{next: make(map[Space]map[types.Atomic]int)}
}

// Alloc reserves a run of n consecutive addresses of the given type in
// space and returns the address of its first slot.
func (a *Allocator) Alloc(space Space, atomic types.Atomic, n int) int {
	if n <= 0 {
		n = 1
	}
	byType, ok := a.next[space]
	if !ok {
		byType = make(map[types.Atomic]int)
		a.next[space] = byType
	}
	offset := byType[atomic]
	if offset+n > typeWidth {
		panic(fmt.Sprintf("address: partition %v/%v exhausted (budget %d)", space, atomic, typeWidth))
	}
	byType[atomic] = offset + n
	return Base(space, atomic) + offset
}

// Count returns how many addresses have been allocated so far for
// (space, atomic); this is the "resource count" the function table
// records so the VM can size activation records.
func (a *Allocator) Count(space Space, atomic types.Atomic) int {
	byType, ok := a.next[space]
	if !ok {
		return 0
	}
	return byType[atomic]
}
