package address

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricglz/raoul/internal/types"
)

func TestAllocAndDecodeRoundTrip(t *testing.T) {
	a := NewAllocator()
	addr1 := a.Alloc(GlobalVar, types.Int, 1)
	addr2 := a.Alloc(GlobalVar, types.Int, 1)
	require.Equal(t, addr1+1, addr2)

	space, atomic, _ := Decode(addr1)
	require.Equal(t, GlobalVar, space)
	require.Equal(t, types.Int, atomic)
}

func TestPartitionsAreDisjoint(t *testing.T) {
	a := NewAllocator()
	g := a.Alloc(GlobalVar, types.Int, 1)
	l := a.Alloc(LocalVar, types.Int, 1)
	c := a.Alloc(Const, types.String, 1)
	p := a.Alloc(Pointer, types.Invalid, 1)

	addrs := map[int]string{g: "global", l: "local", c: "const", p: "pointer"}
	require.Len(t, addrs, 4, "all four addresses must land in distinct partitions")
}

func TestArrayAllocationIsContiguous(t *testing.T) {
	a := NewAllocator()
	base := a.Alloc(LocalVar, types.Float, 6)
	next := a.Alloc(LocalVar, types.Float, 1)
	require.Equal(t, base+6, next)
	require.Equal(t, 7, a.Count(LocalVar, types.Float))
}

func TestDecodePointerHasNoTypeSubdivision(t *testing.T) {
	a := NewAllocator()
	p := a.Alloc(Pointer, types.Invalid, 1)
	space, _, offset := Decode(p)
	require.Equal(t, Pointer, space)
	require.Equal(t, 0, offset)
}
