package evaluate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"cmreport/internal/classify"
	"cmreport/internal/confusion"
	"cmreport/internal/dataset"
	"cmreport/internal/format"
)

// fixed predicts a canned label vector and counts calls.
type fixed struct {
	pred   confusion.Labels
	fitErr error
	fits   *atomic.Int32
}

func (f fixed) Fit(_ *mat.Dense, _ confusion.Labels) error {
	if f.fits != nil {
		f.fits.Add(1)
	}
	return f.fitErr
}

func (f fixed) Predict(X *mat.Dense) (confusion.Labels, error) { return f.pred, nil }

func tinySplit() *dataset.Split {
	return &dataset.Split{
		Train: &dataset.Dataset{X: mat.NewDense(2, 1, nil), Y: confusion.Labels{0, 1}, Classes: 3},
		Test:  &dataset.Dataset{X: mat.NewDense(6, 1, nil), Y: confusion.Labels{0, 0, 1, 1, 2, 2}, Classes: 3},
	}
}

func TestRun_KeepsOrderAndBuildsMatrices(t *testing.T) {
	var fits atomic.Int32
	classifiers := []classify.Named{
		{Name: "first", Classifier: fixed{pred: confusion.Labels{0, 1, 1, 1, 2, 0}, fits: &fits}},
		{Name: "second", Classifier: fixed{pred: confusion.Labels{0, 0, 1, 1, 2, 2}, fits: &fits}},
		{Name: "third", Classifier: fixed{pred: confusion.Labels{2, 2, 2, 2, 2, 2}, fits: &fits}},
	}
	rs, err := Run(context.Background(), tinySplit(), classifiers, Options{Parallel: 3})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fits.Load() != 3 {
		t.Errorf("fits = %d, want 3", fits.Load())
	}

	var names []string
	for _, r := range rs {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, names); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{1, 1, 0}, {0, 2, 0}, {1, 0, 1}}, rs[0].Matrix.Rows()); diff != "" {
		t.Errorf("first matrix (-want +got):\n%s", diff)
	}
	if rs[1].Matrix.Accuracy() != 1 {
		t.Errorf("second accuracy = %v", rs[1].Matrix.Accuracy())
	}
	if rs[2].Normalized.At(0, 2) != 1 {
		t.Errorf("third normalized (0,2) = %v", rs[2].Normalized.At(0, 2))
	}

	panels := rs.Panels()
	if len(panels) != 3 || panels[1].Title != "second" || panels[1].Matrix != rs[1].Normalized {
		t.Errorf("Panels() = %+v", panels)
	}
}

func TestRun_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	classifiers := []classify.Named{
		{Name: "ok", Classifier: fixed{pred: confusion.Labels{0, 0, 1, 1, 2, 2}}},
		{Name: "broken", Classifier: fixed{fitErr: boom}},
	}
	_, err := Run(context.Background(), tinySplit(), classifiers, Options{Parallel: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("error should name the classifier: %v", err)
	}
}

func TestRun_BadPredictionsAreInvalidInput(t *testing.T) {
	classifiers := []classify.Named{
		{Name: "short", Classifier: fixed{pred: confusion.Labels{0, 1}}},
	}
	_, err := Run(context.Background(), tinySplit(), classifiers, Options{})
	if !errors.Is(err, confusion.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	classifiers[0].Classifier = fixed{pred: confusion.Labels{0, 0, 1, 1, 2, 7}}
	if _, err := Run(context.Background(), tinySplit(), classifiers, Options{}); !errors.Is(err, confusion.ErrInvalidInput) {
		t.Errorf("unseen class: err = %v, want ErrInvalidInput", err)
	}
}

func TestRun_Guards(t *testing.T) {
	if _, err := Run(context.Background(), tinySplit(), nil, Options{}); !errors.Is(err, ErrNoClassifiers) {
		t.Errorf("no classifiers: err = %v", err)
	}
	one := []classify.Named{{Name: "x", Classifier: fixed{}}}
	if _, err := Run(context.Background(), nil, one, Options{}); !errors.Is(err, dataset.ErrInvalidInput) {
		t.Errorf("nil split: err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, tinySplit(), one, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v", err)
	}
}

func TestRun_DummyBaselinesEndToEnd(t *testing.T) {
	d, err := dataset.Synthetic(dataset.DefaultSynthetic())
	if err != nil {
		t.Fatalf("Synthetic: %v", err)
	}
	split, err := dataset.TrainTestSplit(d, 0.33, 4141)
	if err != nil {
		t.Fatalf("TrainTestSplit: %v", err)
	}
	var classifiers []classify.Named
	for _, s := range classify.Strategies() {
		nc, err := classify.New(s, s, d.Classes, 41)
		if err != nil {
			t.Fatalf("New(%s): %v", s, err)
		}
		classifiers = append(classifiers, nc)
	}
	rs, err := Run(context.Background(), split, classifiers, Options{Parallel: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, r := range rs {
		if r.Matrix.Total() != 66 {
			t.Errorf("%s: total = %d, want 66", r.Name, r.Matrix.Total())
		}
	}

	out := FormatSummary(rs, format.ASCII)
	for _, want := range []string{"Classifier summary", "most_frequent", "stratified", "uniform", "66"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
