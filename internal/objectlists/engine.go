package objectlists

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ErrObjectRootMissing is returned when the data/object directory does not exist.
var ErrObjectRootMissing = errors.New("object directory not found")

// maxSuggestionDistance bounds the edit distance of replacement suggestions.
const maxSuggestionDistance = 8

var (
	pathCategories     = []string{CategoryFootpathSurface}
	pathRailCategories = []string{CategoryFootpathSurface, CategoryFootpathRailings}
	replaceableTypes   = []string{CategoryFootpathSurface, CategoryFootpathRailings, CategoryRide, CategoryParkEntrance}
	rideCategories     = []string{CategoryRide}
)

// DefaultTables returns the tables written to the generated module, in output
// order. Every call builds new stateful classifiers.
func DefaultTables() []TableSpec {
	return []TableSpec{
		{
			Name:       "CompatibilityObjectIdentifiers",
			Type:       "string[]",
			Kind:       KeySetTable,
			Categories: replaceableTypes,
			Classifier: ClassifierFunc(CompatibilityFlag),
		},
		{
			Name:       "PregeneratedIdentifierToRideResearchCategory",
			Type:       "Record<string, RideResearchCategory>",
			Kind:       KeyValueTable,
			Categories: rideCategories,
			Classifier: ClassifierFunc(RideResearchCategory),
		},
		{
			Name:       "PathIdentifiersWithSlopedAndStairVariants",
			Type:       "Record<string, string>",
			Kind:       KeyValueTable,
			Categories: pathCategories,
			Classifier: NewNameVariantLinker("(Sloped)", "(Stairs)"),
		},
		{
			Name:       "PathIdentifiersWithRoundedAndSquareVariants",
			Type:       "Record<string, string>",
			Kind:       KeyValueTable,
			Categories: pathCategories,
			Classifier: NewNameVariantLinker("(Square)", "(Rounded)"),
		},
		{
			Name:       "PathIdentifierToSlopeVariant",
			Type:       `Record<string, "sloped" | "stairs">`,
			Kind:       KeyValueTable,
			Categories: pathCategories,
			Classifier: VariantTag(VariantMarker{"(Sloped)", "sloped"}, VariantMarker{"(Stairs)", "stairs"}),
		},
		{
			Name:       "PathIdentifierToCornerVariant",
			Type:       `Record<string, "rounded" | "square">`,
			Kind:       KeyValueTable,
			Categories: pathCategories,
			Classifier: VariantTag(VariantMarker{"(Rounded)", "rounded"}, VariantMarker{"(Square)", "square"}),
		},
		{
			Name:       "InvisibleFootpathIdentifiers",
			Type:       "string[]",
			Kind:       KeySetTable,
			Categories: pathRailCategories,
			Classifier: ClassifierFunc(InvisibleFootpath),
		},
		{
			Name:       "EditorOnlyPathIdentifiers",
			Type:       "string[]",
			Kind:       KeySetTable,
			Categories: pathCategories,
			Classifier: ClassifierFunc(EditorOnly),
		},
		{
			Name:       "CompatibilityObjectToReplacement",
			Type:       "Record<string, string>",
			Kind:       KeyValueTable,
			Categories: replaceableTypes,
			Classifier: NewReplacementLinker(),
		},
	}
}

// BuildTables builds one table per TableSpec, in order.
func BuildTables(ctx context.Context, src RecordSource, specs []TableSpec, logger *zap.Logger) ([]*Table, error) {
	agg := &Aggregator{Source: src, Logger: logger}
	tables := make([]*Table, 0, len(specs))
	for _, spec := range specs {
		t, err := agg.Run(ctx, spec)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Build produces the module without writing it.
func Build(ctx context.Context, opts Options) (*Module, error) {
	if !isDir(opts.ObjectRoot) {
		return nil, fmt.Errorf("%w: %s", ErrObjectRootMissing, opts.ObjectRoot)
	}
	logger := opts.logger()
	specs := opts.Tables
	if specs == nil {
		specs = DefaultTables()
	}

	hash, err := ComputeHash(ctx, opts.ObjectRoot, specs)
	if err != nil {
		return nil, fmt.Errorf("compute hash: %w", err)
	}

	tables, err := BuildTables(ctx, NewSource(opts.ObjectRoot, logger), specs, logger)
	if err != nil {
		return nil, err
	}

	content, err := Render(Header(hash), tables)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := verifyModule(content, tables); err != nil {
		return nil, err
	}

	mod := &Module{
		ObjectRoot:  opts.ObjectRoot,
		ContentHash: hash,
		Tables:      tables,
		Content:     content,
	}
	for _, spec := range specs {
		if rl, ok := spec.Classifier.(*ReplacementLinker); ok {
			mod.Unmatched = append(mod.Unmatched, rl.Unmatched()...)
			mod.Suggestions = append(mod.Suggestions, rl.Suggestions(maxSuggestionDistance)...)
		}
	}
	return mod, nil
}

// Generate builds the module and overwrites the output file. Nothing is
// written unless every table was built and the result parses.
func Generate(ctx context.Context, opts Options) (*Module, error) {
	mod, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(opts.outputPath(), []byte(mod.Content), 0644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	return mod, nil
}

// IsStale reports whether the output is missing or was generated from
// different object files.
func IsStale(ctx context.Context, opts Options) (bool, error) {
	if !isDir(opts.ObjectRoot) {
		return false, fmt.Errorf("%w: %s", ErrObjectRootMissing, opts.ObjectRoot)
	}
	existingHash, err := ReadExistingHash(opts.outputPath())
	if err != nil {
		return false, fmt.Errorf("read existing hash: %w", err)
	}
	if existingHash == "" {
		return true, nil
	}

	specs := opts.Tables
	if specs == nil {
		specs = DefaultTables()
	}
	currentHash, err := ComputeHash(ctx, opts.ObjectRoot, specs)
	if err != nil {
		return false, fmt.Errorf("compute hash: %w", err)
	}
	return currentHash != existingHash, nil
}
