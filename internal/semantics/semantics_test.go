package semantics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricglz/raoul/internal/diagnostics"
	"github.com/ricglz/raoul/internal/lexer"
	"github.com/ricglz/raoul/internal/parser"
)

func analyzeSrc(t *testing.T, src string) []error {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	_, _, errs := Analyze(prog)
	return errs
}

func TestAnalyzeValidProgramHasNoErrors(t *testing.T) {
	errs := analyzeSrc(t, `
func add(int a, int b): int {
  return a + b;
}
func main(): void {
  x = add(1, 2);
  print(x);
}
`)
	require.Empty(t, errs)
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  print(y);
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.UndeclaredIdentifier, se.Kind)
}

func TestAnalyzeArityMismatch(t *testing.T) {
	errs := analyzeSrc(t, `
func add(int a, int b): int {
  return a + b;
}
func main(): void {
  x = add(1);
}
`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.(*diagnostics.SemanticError).Kind == diagnostics.ArityMismatch {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeTypeMismatchOnReassignment(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = 1;
  x = true;
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.TypeMismatch, se.Kind)
}

func TestAnalyzeImplicitIntFloatAssignmentIsAllowed(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = 1;
  x = 2.5;
}
`)
	require.Empty(t, errs)
}

func TestAnalyzeNotAnArray(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = 1;
  y = x[0];
}
`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.(*diagnostics.SemanticError).Kind == diagnostics.NotAnArray {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeDimMismatch(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  a = {1, 2, 3};
  x = a[0][1];
}
`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.(*diagnostics.SemanticError).Kind == diagnostics.DimMismatch {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeStringRelationalIsTypeMismatch(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = "a" < "b";
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.TypeMismatch, se.Kind)
}

func TestAnalyzeStringEqualityIsAllowed(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = "a" == "b";
}
`)
	require.Empty(t, errs)
}

func TestAnalyzeMissingReturn(t *testing.T) {
	errs := analyzeSrc(t, `
func f(): int {
  x = 1;
}
func main(): void {
  y = f();
}
`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.(*diagnostics.SemanticError).Kind == diagnostics.MissingReturn {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeDivisionTyping(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  x = 7 / 2;
  y = 7.0 / 2;
}
`)
	require.Empty(t, errs)
}

func TestAnalyzeGlobalPrefixWritesGlobalScope(t *testing.T) {
	errs := analyzeSrc(t, `
counter = 0;
func bump(): void {
  global counter = counter + 1;
}
func main(): void {
  bump();
  print(counter);
}
`)
	require.Empty(t, errs)
}

func TestAnalyzeStringLiteralCannotRetypeInferredInt(t *testing.T) {
	errs := analyzeSrc(t, `
a = 1;
func main(): void {
  a = "x";
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.TypeMismatch, se.Kind)
	require.Equal(t, "int", se.Expected)
	require.Equal(t, "string", se.Actual)
}

func TestAnalyzeVoidCallHasNoValue(t *testing.T) {
	errs := analyzeSrc(t, `
func report(): void {
  print(1);
}
func main(): void {
  x = report();
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.TypeMismatch, se.Kind)
}

func TestAnalyzeSecondDataframeIsRejected(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  a = read_csv("a.csv");
  b = read_csv("b.csv");
}
`)
	require.NotEmpty(t, errs)
}

func TestAnalyzeDuplicateParameterIsRedeclared(t *testing.T) {
	errs := analyzeSrc(t, `
func f(int a, int a): int {
  return a;
}
func main(): void {
  print(f(1, 2));
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.RedeclaredIdentifier, se.Kind)
}

func TestAnalyzeGlobalArrayWriteWithoutGlobalTarget(t *testing.T) {
	errs := analyzeSrc(t, `
func main(): void {
  xs = {1, 2, 3};
  global xs[0] = 9;
}
`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.(*diagnostics.SemanticError).Kind == diagnostics.InvalidGlobalPrefix {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeDuplicateFunction(t *testing.T) {
	errs := analyzeSrc(t, `
func f(): void {
  return;
}
func f(): void {
  return;
}
func main(): void {
}
`)
	require.NotEmpty(t, errs)
	se := errs[0].(*diagnostics.SemanticError)
	require.Equal(t, diagnostics.DuplicateFunction, se.Kind)
}
