package vm

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricglz/raoul/internal/ir"
	"github.com/ricglz/raoul/internal/lexer"
	"github.com/ricglz/raoul/internal/parser"
	"github.com/ricglz/raoul/internal/semantics"
)

// compile lowers src all the way to a runnable *ir.Program, failing the
// test immediately on any pipeline error.
func compile(t *testing.T, src string) *ir.Program {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	syms, info, errs := semantics.Analyze(prog)
	require.Empty(t, errs)
	return ir.Generate(prog, syms, info)
}

// run compiles and executes src, returning stdout and any runtime error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog := compile(t, src)
	vm := New(prog)
	var out bytes.Buffer
	vm.Stdout = &out
	err := vm.Run()
	return out.String(), err
}

// recordingSink is a fake PlotSink that records what it was asked to draw
// instead of opening a window, the way a headless test double stands in
// for the ebiten-backed production sink.
type recordingSink struct {
	scatters   [][2][]float64
	histograms []struct {
		values []float64
		bins   int
	}
}

func (s *recordingSink) Scatter(xs, ys []float64) error {
	s.scatters = append(s.scatters, [2][]float64{xs, ys})
	return nil
}

func (s *recordingSink) Histogram(values []float64, bins int) error {
	s.histograms = append(s.histograms, struct {
		values []float64
		bins   int
	}{values, bins})
	return nil
}

func TestRunPrintsGlobalInitializerBeforeMain(t *testing.T) {
	out, err := run(t, `
counter = 41;
func main(): void {
  counter = counter + 1;
  print(counter);
}
`)
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestRunFactorialRecursion(t *testing.T) {
	out, err := run(t, `
func factorial(int n): int {
  if (n <= 1) {
    return 1;
  }
  return n * factorial(n - 1);
}
func main(): void {
  print(factorial(6));
}
`)
	require.NoError(t, err)
	require.Equal(t, "720\n", out)
}

func TestRunFibonacciRecursion(t *testing.T) {
	out, err := run(t, `
func fib(int n): int {
  if (n < 2) {
    return n;
  }
  return fib(n - 1) + fib(n - 2);
}
func main(): void {
  print(fib(10));
}
`)
	require.NoError(t, err)
	require.Equal(t, "55\n", out)
}

func TestRunBinarySearchOverArray(t *testing.T) {
	out, err := run(t, `
func binarySearch(int[8] xs, int target): int {
  lo = 0;
  hi = 7;
  while (lo <= hi) {
    mid = (lo + hi) / 2;
    if (xs[mid] == target) {
      return mid;
    }
    if (xs[mid] < target) {
      lo = mid + 1;
    } else {
      hi = mid - 1;
    }
  }
  return -1;
}
func main(): void {
  xs = {1, 3, 5, 7, 9, 11, 13, 15};
  print(binarySearch(xs, 13));
  print(binarySearch(xs, 4));
}
`)
	require.NoError(t, err)
	require.Equal(t, "6\n-1\n", out)
}

func TestRunGlobalQualifierRegistersGlobal(t *testing.T) {
	out, err := run(t, `
func main(): void {
  global b = 3;
  print(b);
}
`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestRunForLoopUpperBoundIsInclusive(t *testing.T) {
	out, err := run(t, `
func main(): void {
  count = 0;
  for (i = 1 to 5) {
    count = count + 1;
  }
  print(count);
  for (j = 3 to 2) {
    count = count + 1;
  }
  print(count);
}
`)
	require.NoError(t, err)
	require.Equal(t, "5\n5\n", out)
}

func TestRunEarlyReturnFromMainHalts(t *testing.T) {
	out, err := run(t, `
func main(): void {
  print(1);
  return;
  print(2);
}
`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestRunNestedCallArgumentsDoNotClobberPendingCall(t *testing.T) {
	out, err := run(t, `
func double(int n): int {
  return n * 2;
}
func addOne(int n): int {
  return n + 1;
}
func main(): void {
  print(double(addOne(4)), addOne(double(4)));
}
`)
	require.NoError(t, err)
	require.Equal(t, "10 9\n", out)
}

func TestRunTwoDimensionalArrayLiteralAndAccess(t *testing.T) {
	out, err := run(t, `
func main(): void {
  grid = {{1, 2, 3}, {4, 5, 6}};
  print(grid[0][2], grid[1][0]);
  grid[1][2] = 60;
  print(grid[1][2]);
}
`)
	require.NoError(t, err)
	require.Equal(t, "3 4\n60\n", out)
}

func TestRunArrayOutOfBoundsReportsOutOfBounds(t *testing.T) {
	_, err := run(t, `
func main(): void {
  xs = {1, 2, 3};
  i = 5;
  print(xs[i]);
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "OutOfBounds")
}

func TestRunIntegerDivisionByZeroFails(t *testing.T) {
	_, err := run(t, `
func main(): void {
  x = 1;
  y = 0;
  print(x / y);
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "DivByZero")
}

func TestRunFloatDivisionByZeroProducesInfNotError(t *testing.T) {
	out, err := run(t, `
func main(): void {
  x = 1.0;
  y = 0.0;
  print(x / y);
}
`)
	require.NoError(t, err)
	require.Equal(t, "+Inf\n", out)
}

func TestRunRecursionJustBelowLimitSucceeds(t *testing.T) {
	out, err := run(t, `
func down(int n): int {
  if (n <= 0) {
    return 0;
  }
  return down(n - 1);
}
func main(): void {
  print(down(1000));
}
`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestRunDeepRecursionOverflows(t *testing.T) {
	_, err := run(t, `
func loop(int n): int {
  return loop(n + 1);
}
func main(): void {
  print(loop(0));
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "StackOverflow")
}

func TestRunStringToNumberCastOnAssignment(t *testing.T) {
	out, err := run(t, `
func main(): void {
  s = "42";
  n = 0;
  n = s;
  print(n + 1);
}
`)
	require.NoError(t, err)
	require.Equal(t, "43\n", out)
}

func TestRunMalformedStringCastFails(t *testing.T) {
	_, err := run(t, `
func main(): void {
  s = "not-a-number";
  n = 0;
  n = s;
  print(n);
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "CastFailed")
}

func TestRunReadParsesLineByDeclaredType(t *testing.T) {
	prog := compile(t, `
func main(): void {
  n = 0;
  input(n);
  print(n + 1);
}
`)
	vm := New(prog)
	vm.SetStdin(strings.NewReader("41\n"))
	var out bytes.Buffer
	vm.Stdout = &out
	require.NoError(t, vm.Run())
	require.Equal(t, "42\n", out.String())
}

func TestRunDataframeAggregatesAndCorrelation(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "data-*.csv")
	require.NoError(t, err)
	_, err = f.WriteString("x,y\n1,2\n2,4\n3,6\n4,8\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, runErr := run(t, `
func main(): void {
  df = read_csv("`+f.Name()+`");
  print(average(df, "x"));
  print(correlation(df, "x", "y"));
}
`)
	require.NoError(t, runErr)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "2.5", lines[0])
	require.Equal(t, "1", lines[1])
}

func TestRunUnknownColumnFails(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "data-*.csv")
	require.NoError(t, err)
	_, err = f.WriteString("x\n1\n2\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, runErr := run(t, `
func main(): void {
  df = read_csv("`+f.Name()+`");
  print(average(df, "nope"));
}
`)
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "UnknownColumn")
}

func TestRunExamplePrograms(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"../../examples/factorial.ra", "120 120\n"},
		{"../../examples/fibonacci.ra", "5 5\n"},
		{"../../examples/binary-search.ra", "0 6 -1\n"},
	}
	for _, tc := range cases {
		src, err := os.ReadFile(tc.path)
		require.NoError(t, err)
		out, runErr := run(t, string(src))
		require.NoError(t, runErr)
		require.Equal(t, tc.want, out, tc.path)
	}
}

func TestRunPlotRendersThenHalts(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "data-*.csv")
	require.NoError(t, err)
	_, err = f.WriteString("x,y\n1,2\n2,4\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	prog := compile(t, `
func main(): void {
  df = read_csv("`+f.Name()+`");
  plot(df, "x", "y");
  print(1);
}
`)
	vm := New(prog)
	sink := &recordingSink{}
	vm.MountPlotSink(sink)
	var out bytes.Buffer
	vm.Stdout = &out
	require.NoError(t, vm.Run())
	require.Len(t, sink.scatters, 1)
	require.Equal(t, "", out.String()) // PLOT halts the program, print(1) never runs
}
