// Package dataframe implements the single read-only tabular value a Raoul
// program may hold: a CSV-backed column store with per-column type
// inference and the numeric aggregates the VM's dataframe opcodes need.
package dataframe

import (
	"encoding/csv"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Kind is the inferred static type of one column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Frame is an immutable, in-memory tabular value: named columns, each
// either numeric (held as float64 regardless of int/float inference, so
// the aggregates share one code path) or string-typed.
type Frame struct {
	ColumnNames []string
	ColumnTypes map[string]Kind
	numeric     map[string][]float64
	strings     map[string][]string
	RowCount    int
}

// ReadCSV loads path as a header-row CSV file, inferring each column's
// type as numeric (int or float) if every data cell parses as a float, or
// string otherwise.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataframe: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataframe: read csv")
	}
	if len(records) == 0 {
		return &Frame{ColumnTypes: map[string]Kind{}, numeric: map[string][]float64{}, strings: map[string][]string{}}, nil
	}

	headers := records[0]
	rows := records[1:]
	raw := make(map[string][]string, len(headers))
	for i, h := range headers {
		col := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				col[r] = row[i]
			}
		}
		raw[h] = col
	}

	df := &Frame{
		ColumnNames: append([]string{}, headers...),
		ColumnTypes: make(map[string]Kind, len(headers)),
		numeric:     make(map[string][]float64),
		strings:     make(map[string][]string),
		RowCount:    len(rows),
	}
	for _, h := range headers {
		cells := raw[h]
		if isNumericColumn(cells) {
			nums := make([]float64, len(cells))
			hasFraction := false
			for i, c := range cells {
				v, _ := strconv.ParseFloat(c, 64)
				nums[i] = v
				if v != math.Trunc(v) {
					hasFraction = true
				}
			}
			df.numeric[h] = nums
			if hasFraction {
				df.ColumnTypes[h] = KindFloat
			} else {
				df.ColumnTypes[h] = KindInt
			}
		} else {
			df.strings[h] = cells
			df.ColumnTypes[h] = KindString
		}
	}
	return df, nil
}

func isNumericColumn(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			return false
		}
	}
	return true
}

// HasColumn reports whether name is one of the frame's columns.
func (df *Frame) HasColumn(name string) bool {
	_, ok := df.ColumnTypes[name]
	return ok
}

// NumericColumn returns the named column's values as float64, erroring if
// the column doesn't exist or isn't numeric.
func (df *Frame) NumericColumn(name string) ([]float64, error) {
	if !df.HasColumn(name) {
		return nil, errors.Errorf("dataframe: unknown column %q", name)
	}
	vals, ok := df.numeric[name]
	if !ok {
		return nil, errors.Errorf("dataframe: column %q is not numeric", name)
	}
	return vals, nil
}

func (df *Frame) ColumnCount() int { return len(df.ColumnNames) }

func (df *Frame) Average(name string) (float64, error) {
	vals, err := df.NumericColumn(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}

func (df *Frame) Variance(name string) (float64, error) {
	vals, err := df.NumericColumn(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	mean, _ := df.Average(name)
	sum := 0.0
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(vals)), nil
}

func (df *Frame) Std(name string) (float64, error) {
	v, err := df.Variance(name)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

func (df *Frame) Median(name string) (float64, error) {
	vals, err := df.NumericColumn(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	}
	return sorted[n/2], nil
}

func (df *Frame) Min(name string) (float64, error) {
	vals, err := df.NumericColumn(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func (df *Frame) Max(name string) (float64, error) {
	vals, err := df.NumericColumn(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func (df *Frame) Range(name string) (float64, error) {
	mn, err := df.Min(name)
	if err != nil {
		return 0, err
	}
	mx, err := df.Max(name)
	if err != nil {
		return 0, err
	}
	return mx - mn, nil
}

// Correl computes Pearson's r between two numeric columns over paired rows.
// It is NaN if either column is constant.
func (df *Frame) Correl(nameX, nameY string) (float64, error) {
	xs, err := df.NumericColumn(nameX)
	if err != nil {
		return 0, err
	}
	ys, err := df.NumericColumn(nameY)
	if err != nil {
		return 0, err
	}
	n := len(xs)
	if n > len(ys) {
		n = len(ys)
	}
	if n == 0 {
		return math.NaN(), nil
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN(), nil
	}
	return cov / math.Sqrt(varX*varY), nil
}
