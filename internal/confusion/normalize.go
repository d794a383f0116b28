package confusion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Normalized is a row-normalized confusion matrix. Each row with a positive
// count sums to 1; rows for classes absent from y_true are all zero.
type Normalized struct {
	dense *mat.Dense
}

// Normalize divides every row of m by its sum. Zero rows stay zero instead of
// turning into NaN.
func Normalize(m *Matrix) *Normalized {
	n := m.Classes()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		sum := m.RowSum(i)
		if sum == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			d.Set(i, j, float64(m.At(i, j))/float64(sum))
		}
	}
	return &Normalized{dense: d}
}

// NormalizeDense row-normalizes an arbitrary square matrix of non-negative
// finite values. Normalizing an already normalized matrix is a no-op within
// floating tolerance.
func NormalizeDense(a mat.Matrix) (*Normalized, error) {
	r, c := a.Dims()
	if r == 0 || r != c {
		return nil, fmt.Errorf("%w: matrix must be square and non-empty, got %dx%d", ErrInvalidInput, r, c)
	}
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: cell (%d, %d) = %v is not a non-negative finite value", ErrInvalidInput, i, j, v)
			}
			sum += v
		}
		if sum == 0 {
			continue
		}
		for j := 0; j < c; j++ {
			d.Set(i, j, a.At(i, j)/sum)
		}
	}
	return &Normalized{dense: d}, nil
}

// Classes returns the matrix dimension.
func (n *Normalized) Classes() int {
	r, _ := n.dense.Dims()
	return r
}

// At returns the proportion of true class i predicted as class j.
func (n *Normalized) At(i, j int) float64 { return n.dense.At(i, j) }

// RowSum returns the sum of row i: 1 for observed classes, 0 otherwise.
func (n *Normalized) RowSum(i int) float64 {
	return mat.Sum(n.dense.RowView(i))
}

// Min returns the smallest cell value.
func (n *Normalized) Min() float64 { return mat.Min(n.dense) }

// Max returns the largest cell value.
func (n *Normalized) Max() float64 { return mat.Max(n.dense) }

// Dense returns a copy of the underlying values.
func (n *Normalized) Dense() *mat.Dense {
	return mat.DenseCopyOf(n.dense)
}

// Rows returns a copy of the values as nested slices.
func (n *Normalized) Rows() [][]float64 {
	k := n.Classes()
	out := make([][]float64, k)
	for i := range out {
		out[i] = mat.Row(nil, i, n.dense)
	}
	return out
}
