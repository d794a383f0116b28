// Package classify defines the classifier collaborator consumed by the
// evaluation pipeline, plus baseline predictors that ignore the features.
package classify

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"cmreport/internal/confusion"
)

var (
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("classify: classifier is not fitted")

	// ErrUnknownStrategy is returned for baseline strategies that do not exist.
	ErrUnknownStrategy = errors.New("classify: unknown strategy")
)

// Classifier learns from a feature matrix and predicts one label per row.
type Classifier interface {
	Fit(X *mat.Dense, y confusion.Labels) error
	Predict(X *mat.Dense) (confusion.Labels, error)
}

// Named attaches a report title to a classifier.
type Named struct {
	Name       string
	Classifier Classifier
}

// Baseline strategy codes.
const (
	MostFrequent = "most_frequent"
	Stratified   = "stratified"
	Uniform      = "uniform"
)

// Strategies lists the supported baseline strategies.
func Strategies() []string { return []string{MostFrequent, Stratified, Uniform} }

// Dummy predicts from the training label distribution alone:
//   - most_frequent: always the most common training class (lowest index on ties)
//   - stratified: random draws following the training class prior
//   - uniform: random draws uniform over all classes
type Dummy struct {
	strategy string
	classes  int
	seed     uint64

	prior  []float64 // cumulative class distribution, set by Fit
	modal  int
	last   int // highest class seen in training
	fitted bool
}

// NewDummy validates the strategy and class count.
func NewDummy(strategy string, classes int, seed uint64) (*Dummy, error) {
	switch strategy {
	case MostFrequent, Stratified, Uniform:
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownStrategy, strategy, Strategies())
	}
	if classes < 1 {
		return nil, fmt.Errorf("%w: classes must be >= 1, got %d", confusion.ErrInvalidInput, classes)
	}
	return &Dummy{strategy: strategy, classes: classes, seed: seed}, nil
}

// Strategy returns the strategy code.
func (d *Dummy) Strategy() string { return d.strategy }

// Fit records the class prior of y. X only has to agree with y on length.
func (d *Dummy) Fit(X *mat.Dense, y confusion.Labels) error {
	if X == nil {
		return fmt.Errorf("%w: feature matrix is nil", confusion.ErrInvalidInput)
	}
	if r, _ := X.Dims(); r != len(y) || r == 0 {
		return fmt.Errorf("%w: %d feature rows for %d labels", confusion.ErrInvalidInput, r, len(y))
	}
	counts := make([]int, d.classes)
	for i, v := range y {
		if v < 0 || v >= d.classes {
			return fmt.Errorf("%w: y[%d] = %d is outside [0, %d)", confusion.ErrInvalidInput, i, v, d.classes)
		}
		counts[v]++
	}

	d.modal = 0
	d.prior = make([]float64, d.classes)
	acc := 0.0
	for c, n := range counts {
		if n > counts[d.modal] {
			d.modal = c
		}
		if n > 0 {
			d.last = c
		}
		acc += float64(n) / float64(len(y))
		d.prior[c] = acc
	}
	d.fitted = true
	return nil
}

// Predict returns one label per row of X. Random strategies restart from
// the configured seed on every call, so repeated calls agree.
func (d *Dummy) Predict(X *mat.Dense) (confusion.Labels, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	if X == nil {
		return nil, fmt.Errorf("%w: feature matrix is nil", confusion.ErrInvalidInput)
	}
	r, _ := X.Dims()
	rng := rand.New(rand.NewPCG(d.seed, uint64(d.classes)))
	out := make(confusion.Labels, r)
	for i := range out {
		switch d.strategy {
		case MostFrequent:
			out[i] = d.modal
		case Stratified:
			out[i] = d.draw(rng.Float64())
		case Uniform:
			out[i] = rng.IntN(d.classes)
		}
	}
	return out, nil
}

// draw maps u in [0, 1) onto the cumulative prior.
func (d *Dummy) draw(u float64) int {
	for c, p := range d.prior {
		if u < p {
			return c
		}
	}
	return d.last
}

// New builds a named baseline classifier.
func New(name, strategy string, classes int, seed uint64) (Named, error) {
	dm, err := NewDummy(strategy, classes, seed)
	if err != nil {
		return Named{}, err
	}
	return Named{Name: name, Classifier: dm}, nil
}
