package objectlists

import (
	"encoding/json"
	"strings"
)

// ValueKind distinguishes the two shapes a classifier result can take.
type ValueKind int

const (
	KindFlag ValueKind = iota
	KindText
)

// Value is a present classifier result: either a flag or a string.
type Value struct {
	kind ValueKind
	text string
}

// Flag is the value of presence-only classifiers.
func Flag() Value { return Value{kind: KindFlag} }

// Text wraps a string result.
func Text(s string) Value { return Value{kind: KindText, text: s} }

func (v Value) Kind() ValueKind { return v.kind }

// String returns the text of a KindText value and "true" for flags.
func (v Value) String() string {
	if v.kind == KindFlag {
		return "true"
	}
	return v.text
}

// Literal renders v as a TypeScript literal.
func (v Value) Literal() (string, error) {
	if v.kind == KindFlag {
		return "true", nil
	}
	return quoteJSON(v.text)
}

// Classifier derives at most one value from a record. A false second result
// means the classifier has no opinion on the record.
type Classifier interface {
	Classify(rec *Record) (Value, bool)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(rec *Record) (Value, bool)

func (f ClassifierFunc) Classify(rec *Record) (Value, bool) { return f(rec) }

// CompatibilityFlag marks objects flagged isCompatibilityObject.
func CompatibilityFlag(rec *Record) (Value, bool) {
	if rec.IsCompatibilityObject {
		return Flag(), true
	}
	return Value{}, false
}

// RideResearchCategory returns the research category of a ride. Stalls are
// researched as shops.
func RideResearchCategory(rec *Record) (Value, bool) {
	if rec.Properties == nil || len(rec.Properties.Category) == 0 {
		return Value{}, false
	}
	category := rec.Properties.Category[0]
	if category == "stall" {
		category = "shop"
	}
	return Text(category), true
}

// InvisibleFootpath marks footpaths and railings whose name says Invisible.
func InvisibleFootpath(rec *Record) (Value, bool) {
	name, ok := rec.DisplayName()
	if !ok || !strings.Contains(name, "Invisible") {
		return Value{}, false
	}
	return Flag(), true
}

// EditorOnly marks objects that can only be placed in the scenario editor.
func EditorOnly(rec *Record) (Value, bool) {
	if rec.Properties != nil && rec.Properties.EditorOnly {
		return Flag(), true
	}
	return Value{}, false
}

// VariantMarker pairs a bracketed name marker with the tag emitted for it.
type VariantMarker struct {
	Marker string
	Tag    string
}

// VariantTag returns a classifier that tags a record by whichever marker its
// name contains. The first marker wins if both are present.
func VariantTag(a, b VariantMarker) ClassifierFunc {
	return func(rec *Record) (Value, bool) {
		name, ok := rec.DisplayName()
		if !ok {
			return Value{}, false
		}
		for _, m := range [...]VariantMarker{a, b} {
			if strings.Contains(name, m.Marker) {
				return Text(m.Tag), true
			}
		}
		return Value{}, false
	}
}

func quoteJSON(s string) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
