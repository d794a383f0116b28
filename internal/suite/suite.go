// Package suite reads label files for the report command: a class count and
// one (title, y_true, y_pred) entry per classifier.
package suite

import (
	"errors"
	"fmt"

	"cmreport/internal/confusion"
	"cmreport/internal/report"
)

// ErrInvalid is returned by Validate for structurally unusable suites.
var ErrInvalid = errors.New("suite: invalid")

// Entry is one classifier's labels on a shared test set.
type Entry struct {
	Title string           `json:"title" yaml:"title"`
	YTrue confusion.Labels `json:"y_true" yaml:"y_true"`
	YPred confusion.Labels `json:"y_pred" yaml:"y_pred"`
}

// Suite is the content of a labels file.
type Suite struct {
	Classes    int      `json:"classes" yaml:"classes"`
	ClassNames []string `json:"class_names,omitempty" yaml:"class_names,omitempty"`
	Reports    []Entry  `json:"reports" yaml:"reports"`
}

// Validate checks the suite-level shape. Per-entry label checks happen in
// confusion.Build.
func (s *Suite) Validate() error {
	if s.Classes < 1 {
		return fmt.Errorf("%w: classes must be >= 1, got %d", ErrInvalid, s.Classes)
	}
	if len(s.Reports) == 0 {
		return fmt.Errorf("%w: no reports", ErrInvalid)
	}
	if len(s.ClassNames) > 0 && len(s.ClassNames) != s.Classes {
		return fmt.Errorf("%w: %d class names for %d classes", ErrInvalid, len(s.ClassNames), s.Classes)
	}
	return nil
}

// Panels builds and normalizes every entry. Errors name the entry.
func (s *Suite) Panels() ([]report.Panel, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	titles := make([]string, len(s.Reports))
	mats := make([]*confusion.Normalized, len(s.Reports))
	for i, e := range s.Reports {
		title := e.Title
		if title == "" {
			title = fmt.Sprintf("report %d", i+1)
		}
		m, err := confusion.Build(e.YTrue, e.YPred, s.Classes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", title, err)
		}
		titles[i] = title
		mats[i] = confusion.Normalize(m)
	}
	return report.Panels(titles, mats)
}
