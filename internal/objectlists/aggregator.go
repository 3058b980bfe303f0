package objectlists

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// ErrMissingID is returned when a classifier produces a value for an object
// without an id.
var ErrMissingID = errors.New("object has no id")

// RecordSource yields the records of the given categories.
type RecordSource interface {
	Records(ctx context.Context, categories []string) iter.Seq2[*Record, error]
}

// TableSpec binds a classifier to the categories it reads and the table it fills.
type TableSpec struct {
	Name       string
	Type       string
	Kind       TableKind
	Categories []string
	Classifier Classifier
}

// failingClassifier is implemented by stateful classifiers that can reject a
// record outside their (Value, bool) result. Err stays set once it fails.
type failingClassifier interface {
	Err() error
}

// Aggregator runs table specs against a record source.
type Aggregator struct {
	Source RecordSource
	Logger *zap.Logger
}

// Run walks the source once and collects every present result into a table.
func (a *Aggregator) Run(ctx context.Context, spec TableSpec) (*Table, error) {
	if a.Source == nil {
		return nil, errors.New("missing record source")
	}
	if spec.Classifier == nil {
		return nil, fmt.Errorf("table %s: missing classifier", spec.Name)
	}

	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("table", spec.Name))

	table := NewTable(spec.Name, spec.Type, spec.Kind)
	for rec, err := range a.Source.Records(ctx, spec.Categories) {
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", spec.Name, err)
		}

		v, ok := spec.Classifier.Classify(rec)
		logger.Debug("classified object", zap.String("id", rec.ID), zap.Bool("present", ok))
		if fc, isFailing := spec.Classifier.(failingClassifier); isFailing {
			if err := fc.Err(); err != nil {
				return nil, fmt.Errorf("table %s: %w", spec.Name, err)
			}
		}
		if !ok {
			continue
		}
		if spec.Kind == KeySetTable && !v.truthy() {
			continue
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("table %s: %s: %w", spec.Name, rec.Path, ErrMissingID)
		}
		table.Put(rec.ID, v)
	}

	logger.Info("built table", zap.Stringer("kind", spec.Kind), zap.Int("entries", table.Len()))
	return table, nil
}

func (v Value) truthy() bool {
	return v.kind == KindFlag || v.text != ""
}
