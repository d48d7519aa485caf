package dataframe

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "data-*.csv")
	require.NoError(t, err)
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestReadCSVInfersNumericAndStringColumns(t *testing.T) {
	path := writeCSV(t, "name,age,score\nana,30,9.5\nbeto,25,8.0\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 2, df.RowCount)
	require.Equal(t, KindString, df.ColumnTypes["name"])
	require.Equal(t, KindInt, df.ColumnTypes["age"])
	require.Equal(t, KindFloat, df.ColumnTypes["score"])
}

func TestNumericColumnRejectsStringColumn(t *testing.T) {
	path := writeCSV(t, "name\nana\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	_, err = df.NumericColumn("name")
	require.Error(t, err)
}

func TestHasColumnReportsUnknownColumn(t *testing.T) {
	path := writeCSV(t, "x\n1\n2\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	require.True(t, df.HasColumn("x"))
	require.False(t, df.HasColumn("y"))
}

func TestAggregatesOverSimpleColumn(t *testing.T) {
	path := writeCSV(t, "x\n1\n2\n3\n4\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)

	avg, err := df.Average("x")
	require.NoError(t, err)
	require.Equal(t, 2.5, avg)

	med, err := df.Median("x")
	require.NoError(t, err)
	require.Equal(t, 2.5, med)

	mn, err := df.Min("x")
	require.NoError(t, err)
	require.Equal(t, 1.0, mn)

	mx, err := df.Max("x")
	require.NoError(t, err)
	require.Equal(t, 4.0, mx)

	rng, err := df.Range("x")
	require.NoError(t, err)
	require.Equal(t, 3.0, rng)

	variance, err := df.Variance("x")
	require.NoError(t, err)
	require.InDelta(t, 1.25, variance, 1e-9)

	std, err := df.Std("x")
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(1.25), std, 1e-9)
}

func TestCorrelPerfectlyLinearColumnsIsOne(t *testing.T) {
	path := writeCSV(t, "x,y\n1,2\n2,4\n3,6\n4,8\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	r, err := df.Correl("x", "y")
	require.NoError(t, err)
	require.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelConstantColumnIsNaN(t *testing.T) {
	path := writeCSV(t, "x,y\n1,5\n1,6\n1,7\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	r, err := df.Correl("x", "y")
	require.NoError(t, err)
	require.True(t, math.IsNaN(r))
}

func TestEmptyCSVProducesZeroRowFrame(t *testing.T) {
	path := writeCSV(t, "")
	df, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 0, df.RowCount)
	require.False(t, df.HasColumn("anything"))
}
