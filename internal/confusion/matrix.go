// Package confusion builds confusion matrices from label vectors and
// row-normalizes them into per-class prediction proportions.
package confusion

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for shape or range violations in label vectors
// and matrices. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Labels is an ordered vector of class assignments, one per sample.
type Labels []int

// Count returns how many entries equal class c.
func (l Labels) Count(c int) int {
	n := 0
	for _, v := range l {
		if v == c {
			n++
		}
	}
	return n
}

// Matrix is an n×n table of counts: cell (i, j) holds the number of samples
// whose true class is i and whose predicted class is j.
type Matrix struct {
	n     int
	cells []int // row-major
}

// Build counts (true, predicted) pairs into an n×n Matrix.
// Both vectors must be non-empty, of equal length, and hold labels in [0, n).
func Build(yTrue, yPred Labels, n int) (*Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n_classes must be >= 1, got %d", ErrInvalidInput, n)
	}
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: y_true has %d labels, y_pred has %d", ErrInvalidInput, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("%w: label vectors are empty", ErrInvalidInput)
	}
	if err := checkRange("y_true", yTrue, n); err != nil {
		return nil, err
	}
	if err := checkRange("y_pred", yPred, n); err != nil {
		return nil, err
	}

	m := &Matrix{n: n, cells: make([]int, n*n)}
	for k := range yTrue {
		m.cells[yTrue[k]*n+yPred[k]]++
	}
	return m, nil
}

func checkRange(name string, l Labels, n int) error {
	for i, v := range l {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: %s[%d] = %d is outside [0, %d)", ErrInvalidInput, name, i, v, n)
		}
	}
	return nil
}

// Classes returns the matrix dimension.
func (m *Matrix) Classes() int { return m.n }

// At returns the count at (true i, predicted j). It panics on out-of-range
// indices like a slice access would.
func (m *Matrix) At(i, j int) int {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("confusion: index (%d, %d) out of range for %d classes", i, j, m.n))
	}
	return m.cells[i*m.n+j]
}

// RowSum is the number of samples whose true class is i.
func (m *Matrix) RowSum(i int) int {
	s := 0
	for j := 0; j < m.n; j++ {
		s += m.At(i, j)
	}
	return s
}

// ColSum is the number of samples predicted as class j.
func (m *Matrix) ColSum(j int) int {
	s := 0
	for i := 0; i < m.n; i++ {
		s += m.At(i, j)
	}
	return s
}

// Total is the number of samples counted.
func (m *Matrix) Total() int {
	s := 0
	for _, c := range m.cells {
		s += c
	}
	return s
}

// Rows returns a copy of the counts as nested slices.
func (m *Matrix) Rows() [][]int {
	out := make([][]int, m.n)
	for i := range out {
		out[i] = make([]int, m.n)
		copy(out[i], m.cells[i*m.n:(i+1)*m.n])
	}
	return out
}

// Accuracy is the fraction of samples on the diagonal.
func (m *Matrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	hit := 0
	for i := 0; i < m.n; i++ {
		hit += m.At(i, i)
	}
	return float64(hit) / float64(total)
}

// ClassScore holds per-class retrieval scores derived from a Matrix.
type ClassScore struct {
	Class     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// PerClass returns precision, recall and F1 for every class. A zero
// denominator yields a zero score.
func (m *Matrix) PerClass() []ClassScore {
	scores := make([]ClassScore, m.n)
	for c := 0; c < m.n; c++ {
		tp := m.At(c, c)
		support := m.RowSum(c)
		s := ClassScore{
			Class:     c,
			Precision: ratio(tp, m.ColSum(c)),
			Recall:    ratio(tp, support),
			Support:   support,
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		scores[c] = s
	}
	return scores
}

// MacroRecall is the unweighted mean recall over classes with support.
func (m *Matrix) MacroRecall() float64 {
	sum, k := 0.0, 0
	for _, s := range m.PerClass() {
		if s.Support == 0 {
			continue
		}
		sum += s.Recall
		k++
	}
	if k == 0 {
		return 0
	}
	return sum / float64(k)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
