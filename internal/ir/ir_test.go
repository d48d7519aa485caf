package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricglz/raoul/internal/lexer"
	"github.com/ricglz/raoul/internal/parser"
	"github.com/ricglz/raoul/internal/semantics"
)

func compile(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	syms, info, errs := semantics.Analyze(prog)
	require.Empty(t, errs)
	return Generate(prog, syms, info)
}

func countOps(quads []Quad, op Op) int {
	n := 0
	for _, q := range quads {
		if q.Op == op {
			n++
		}
	}
	return n
}

func TestGenerateEndsWithEND(t *testing.T) {
	p := compile(t, `func main(): void { print(1); }`)
	require.Equal(t, END, p.Quads[len(p.Quads)-1].Op)
}

func TestGenerateEveryFunctionEndsWithENDFUNC(t *testing.T) {
	p := compile(t, `
func f(): void {
  return;
}
func main(): void {
  f();
}
`)
	require.Equal(t, 2, countOps(p.Quads, ENDFUNC))
}

func TestGenerateMainEntryPointsAtMainsFirstQuad(t *testing.T) {
	p := compile(t, `
func f(): void {
  return;
}
func main(): void {
  print(1);
}
`)
	require.Equal(t, PRINT, p.Quads[p.MainEntry].Op)
}

func TestGenerateArithmeticEmitsTypedTemp(t *testing.T) {
	p := compile(t, `func main(): void { x = 1 + 2 * 3; }`)
	require.Equal(t, 1, countOps(p.Quads, MUL))
	require.Equal(t, 1, countOps(p.Quads, ADD))
}

func TestGenerateIfElseProducesNoDanglingJumps(t *testing.T) {
	p := compile(t, `
func main(): void {
  x = 1;
  if (x > 0) {
    print(1);
  } else {
    print(0);
  }
}
`)
	for _, q := range p.Quads {
		switch q.Op {
		case GOTO, GOTOF, GOTOT:
			require.GreaterOrEqual(t, q.Result, 0, "jump target must be filled before END")
			require.LessOrEqual(t, q.Result, len(p.Quads))
		}
	}
}

func TestGenerateWhileLoopsBackToHead(t *testing.T) {
	p := compile(t, `
func main(): void {
  x = 0;
  while (x < 10) {
    x = x + 1;
  }
}
`)
	foundBackEdge := false
	for i, q := range p.Quads {
		if q.Op == GOTO && q.Result < i {
			foundBackEdge = true
		}
	}
	require.True(t, foundBackEdge)
}

func TestGenerateForLoopIncrementsAndCompares(t *testing.T) {
	p := compile(t, `
func main(): void {
  for (i = 0 to 5) {
    print(i);
  }
}
`)
	require.Equal(t, 1, countOps(p.Quads, LTE))
	require.Equal(t, 1, countOps(p.Quads, ADD))
}

func TestGenerateCallEmitsERAParamGosub(t *testing.T) {
	p := compile(t, `
func add(int a, int b): int {
  return a + b;
}
func main(): void {
  x = add(1, 2);
}
`)
	require.Equal(t, 1, countOps(p.Quads, ERA))
	require.Equal(t, 2, countOps(p.Quads, PARAM))
	require.Equal(t, 1, countOps(p.Quads, GOSUB))
}

func TestGenerateArrayElementEmitsVerifyAndPointer(t *testing.T) {
	p := compile(t, `
func main(): void {
  a = {1, 2, 3};
  x = a[1];
}
`)
	require.Equal(t, 1, countOps(p.Quads, VERIFY))
	require.Equal(t, 1, countOps(p.Quads, POINTER))
}

func TestGenerateTwoDimensionalArrayEmitsTwoVerifies(t *testing.T) {
	p := compile(t, `
func useGrid(int[2][2] g): int {
  g[0][0] = 1;
  return g[0][0];
}
func main(): void {
  x = 0;
}
`)
	require.Equal(t, 4, countOps(p.Quads, VERIFY))
	require.Equal(t, 2, countOps(p.Quads, POINTER))
}

func TestGenerateDataframeAggregateEmitsOneOp(t *testing.T) {
	p := compile(t, `
func main(): void {
  df = read_csv("data.csv");
  m = average(df, "x");
  r = correlation(df, "x", "y");
}
`)
	require.Equal(t, 1, countOps(p.Quads, READ_CSV))
	require.Equal(t, 1, countOps(p.Quads, AVERAGE))
	require.Equal(t, 1, countOps(p.Quads, CORREL))
	for _, q := range p.Quads {
		if q.Op == CORREL {
			require.Len(t, q.Args, 3) // df, col1, col2
		}
	}
}

func TestGenerateActivationStackBalancesAtEnd(t *testing.T) {
	p := compile(t, `
func fib(int n): int {
  if (n < 2) {
    return n;
  }
  return fib(n - 1) + fib(n - 2);
}
func main(): void {
  print(fib(5));
}
`)
	require.Equal(t, countOps(p.Quads, ERA), countOps(p.Quads, GOSUB))
}
