// Package dataset generates seeded synthetic classification data and splits
// it into train and test sets.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"cmreport/internal/confusion"
)

// ErrInvalidInput is returned for non-positive sizes and impossible splits.
var ErrInvalidInput = errors.New("dataset: invalid input")

// Dataset is a feature matrix with one label per row.
type Dataset struct {
	X       *mat.Dense // samples × features
	Y       confusion.Labels
	Classes int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Y) }

// Features returns the number of feature columns.
func (d *Dataset) Features() int {
	_, c := d.X.Dims()
	return c
}

// ClassCounts returns the number of samples per class.
func (d *Dataset) ClassCounts() []int {
	counts := make([]int, d.Classes)
	for _, y := range d.Y {
		counts[y]++
	}
	return counts
}

// rows copies the given sample indices into a new Dataset.
func (d *Dataset) rows(idx []int) *Dataset {
	out := &Dataset{
		X:       mat.NewDense(len(idx), d.Features(), nil),
		Y:       make(confusion.Labels, len(idx)),
		Classes: d.Classes,
	}
	for i, k := range idx {
		out.X.SetRow(i, mat.Row(nil, k, d.X))
		out.Y[i] = d.Y[k]
	}
	return out
}

// SyntheticConfig sizes a generated dataset.
type SyntheticConfig struct {
	Samples  int    `yaml:"samples"`
	Features int    `yaml:"features"`
	Classes  int    `yaml:"classes"`
	Seed     uint64 `yaml:"seed"`
}

// DefaultSynthetic mirrors the classic pyts classifier example: 200 series
// of length 144 over 3 classes, seed 41.
func DefaultSynthetic() SyntheticConfig {
	return SyntheticConfig{Samples: 200, Features: 144, Classes: 3, Seed: 41}
}

// Synthetic draws every feature from N(0, 1) and every label uniformly from
// [0, Classes). The same config always yields the same dataset.
func Synthetic(cfg SyntheticConfig) (*Dataset, error) {
	if cfg.Samples < 1 || cfg.Features < 1 || cfg.Classes < 1 {
		return nil, fmt.Errorf("%w: samples, features and classes must be >= 1, got %d, %d, %d",
			ErrInvalidInput, cfg.Samples, cfg.Features, cfg.Classes)
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	data := make([]float64, cfg.Samples*cfg.Features)
	for i := range data {
		data[i] = normal.Rand()
	}

	rng := rand.New(src)
	y := make(confusion.Labels, cfg.Samples)
	for i := range y {
		y[i] = rng.IntN(cfg.Classes)
	}

	return &Dataset{
		X:       mat.NewDense(cfg.Samples, cfg.Features, data),
		Y:       y,
		Classes: cfg.Classes,
	}, nil
}

// Split holds the two halves of a train/test split.
type Split struct {
	Train *Dataset
	Test  *Dataset
}

// TrainTestSplit shuffles samples with a seeded permutation and moves
// ceil(testSize*n) of them to the test set. Both sides must end up non-empty.
func TrainTestSplit(d *Dataset, testSize float64, seed uint64) (*Split, error) {
	if d == nil || d.Len() == 0 {
		return nil, fmt.Errorf("%w: dataset is empty", ErrInvalidInput)
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, fmt.Errorf("%w: test size must be in (0, 1), got %v", ErrInvalidInput, testSize)
	}
	n := d.Len()
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, fmt.Errorf("%w: test size %v leaves an empty side for %d samples", ErrInvalidInput, testSize, n)
	}

	perm := rand.New(rand.NewPCG(seed, ^seed)).Perm(n)
	return &Split{
		Train: d.rows(perm[nTest:]),
		Test:  d.rows(perm[:nTest]),
	}, nil
}
