// Package evaluate fits classifiers on a train split, predicts the test
// split and turns the predictions into confusion matrices.
package evaluate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cmreport/internal/classify"
	"cmreport/internal/confusion"
	"cmreport/internal/dataset"
	"cmreport/internal/format"
	"cmreport/internal/logging"
	"cmreport/internal/report"
)

// ErrNoClassifiers is returned when Run has nothing to evaluate.
var ErrNoClassifiers = errors.New("evaluate: no classifiers")

// Options controls a Run.
type Options struct {
	Parallel int // worker count; < 1 means 1
	Classes  int // matrix dimension; 0 = test split's class count
}

// Result is one classifier's outcome on the test split.
type Result struct {
	Name       string
	Pred       confusion.Labels
	Matrix     *confusion.Matrix
	Normalized *confusion.Normalized
}

// Results keeps input order.
type Results []Result

// Panels turns results into report panels, one per classifier.
func (rs Results) Panels() []report.Panel {
	panels := make([]report.Panel, len(rs))
	for i, r := range rs {
		panels[i] = report.Panel{Title: r.Name, Matrix: r.Normalized}
	}
	return panels
}

// Run evaluates every classifier concurrently, at most opts.Parallel at a
// time. Each classifier is fitted on split.Train and scored on split.Test.
// The first failure cancels outstanding work and is returned.
func Run(ctx context.Context, split *dataset.Split, classifiers []classify.Named, opts Options) (Results, error) {
	if len(classifiers) == 0 {
		return nil, ErrNoClassifiers
	}
	if split == nil || split.Train == nil || split.Test == nil {
		return nil, fmt.Errorf("%w: split is incomplete", dataset.ErrInvalidInput)
	}
	classes := opts.Classes
	if classes == 0 {
		classes = split.Test.Classes
	}
	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}

	logger := logging.New("evaluate")
	logger.Info("evaluating classifiers",
		"classifiers", len(classifiers), "workers", parallel,
		"train", split.Train.Len(), "test", split.Test.Len())

	results := make(Results, len(classifiers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, nc := range classifiers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := evaluateOne(split, nc, classes)
			if err != nil {
				return fmt.Errorf("classifier %q: %w", nc.Name, err)
			}
			logger.Debug("classifier scored", "classifier", nc.Name, "accuracy", r.Matrix.Accuracy())
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateOne(split *dataset.Split, nc classify.Named, classes int) (Result, error) {
	if nc.Classifier == nil {
		return Result{}, fmt.Errorf("%w: classifier is nil", confusion.ErrInvalidInput)
	}
	if err := nc.Classifier.Fit(split.Train.X, split.Train.Y); err != nil {
		return Result{}, fmt.Errorf("fit: %w", err)
	}
	pred, err := nc.Classifier.Predict(split.Test.X)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	m, err := confusion.Build(split.Test.Y, pred, classes)
	if err != nil {
		return Result{}, fmt.Errorf("confusion matrix: %w", err)
	}
	return Result{
		Name:       nc.Name,
		Pred:       pred,
		Matrix:     m,
		Normalized: confusion.Normalize(m),
	}, nil
}

const summaryNameWidth = 40

// FormatSummary tabulates accuracy and macro recall per classifier.
func FormatSummary(rs Results, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("Classifier summary")
	tb.Header("Classifier", "Accuracy", "Macro recall", "Samples")
	tb.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
	)
	for _, r := range rs {
		tb.Row(format.Truncate(r.Name, summaryNameWidth), format.FmtPercent(r.Matrix.Accuracy()), format.FmtPercent(r.Matrix.MacroRecall()), r.Matrix.Total())
	}
	return tb.String()
}
