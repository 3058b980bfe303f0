package objectlists

import "go.uber.org/zap"

// Object categories as named by the data/object directory layout.
const (
	CategoryRide             = "ride"
	CategoryFootpathSurface  = "footpath_surface"
	CategoryFootpathRailings = "footpath_railings"
	CategoryParkEntrance     = "park_entrance"
)

const (
	plainDocumentExt = ".json"
	containerExt     = ".parkobj"

	// containerEntryName is the document read out of a .parkobj archive.
	containerEntryName = "object.json"
)

// Module is the result of one generation run.
type Module struct {
	ObjectRoot  string
	ContentHash string
	Tables      []*Table
	Content     string

	// Unmatched lists compatibility objects no replacement was found for.
	Unmatched   []string
	Suggestions []Suggestion
}

// Options configures module generation.
type Options struct {
	ObjectRoot string // <install>/data/object
	OutputPath string // Default: "standardobjectlist.ts"
	Logger     *zap.Logger

	// Tables overrides DefaultTables. Stateful classifiers keep their memory
	// between runs, so pass fresh specs for every call.
	Tables []TableSpec
}

// DefaultOutputPath is used when Options.OutputPath is empty.
const DefaultOutputPath = "standardobjectlist.ts"

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) outputPath() string {
	if o.OutputPath == "" {
		return DefaultOutputPath
	}
	return o.OutputPath
}
