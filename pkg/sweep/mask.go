package sweep

import (
	"gonum.org/v1/gonum/mat"
)

// DefaultThreshold is the separation below which a sample is masked.
const DefaultThreshold = 100.0

// Mask is a row-major boolean table with the shape of the separation table.
type Mask struct {
	rows, cols int
	data       []bool
}

// Threshold marks every cell of table strictly below limit.
func Threshold(table mat.Matrix, limit float64) *Mask {
	r, c := table.Dims()
	m := &Mask{rows: r, cols: c, data: make([]bool, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = table.At(i, j) < limit
		}
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Mask) Dims() (int, int) { return m.rows, m.cols }

// Rows returns the number of time samples.
func (m *Mask) Rows() int { return m.rows }

// Cols returns the number of grid points.
func (m *Mask) Cols() int { return m.cols }

// At reports whether cell (i, j) is masked.
func (m *Mask) At(i, j int) bool {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	return m.data[i*m.cols+j]
}

// Count returns the number of masked cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// ColCount returns the number of masked time samples for grid point j.
func (m *Mask) ColCount(j int) int {
	n := 0
	for i := 0; i < m.rows; i++ {
		if m.At(i, j) {
			n++
		}
	}
	return n
}
