package objectlists

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// NameVariantLinker links objects whose names differ only by one of two
// markers, e.g. "Tarmac (Sloped)" and "Tarmac (Stairs)". The variant seen
// second maps to the id of the variant seen first; the first never gets an
// entry. Which variant comes first depends on directory order.
type NameVariantLinker struct {
	markers [2]string
	seen    [2]map[string]string // bare name -> id, per marker
	err     error
}

// NewNameVariantLinker returns a linker for the marker pair.
func NewNameVariantLinker(markerA, markerB string) *NameVariantLinker {
	return &NameVariantLinker{
		markers: [2]string{markerA, markerB},
		seen:    [2]map[string]string{make(map[string]string), make(map[string]string)},
	}
}

func (l *NameVariantLinker) Classify(rec *Record) (Value, bool) {
	name, ok := rec.DisplayName()
	if !ok {
		return Value{}, false
	}
	for i, marker := range l.markers {
		if !strings.Contains(name, marker) {
			continue
		}
		bare := strings.ReplaceAll(name, marker, "")
		if id, ok := l.seen[1-i][bare]; ok {
			return Text(id), true
		}
		if rec.ID == "" {
			if l.err == nil {
				l.err = fmt.Errorf("%s: %w", rec.Path, ErrMissingID)
			}
			return Value{}, false
		}
		l.seen[i][bare] = rec.ID
		return Value{}, false
	}
	return Value{}, false
}

// Err reports the first record that could not be remembered.
func (l *NameVariantLinker) Err() error { return l.err }

type replacementKey struct {
	compat     bool
	objectType string
	name       string
}

type linkCandidate struct {
	id    string
	name  string
	types []string
}

// ReplacementLinker maps compatibility objects to the modern object with the
// same type and name, or the other way round, whichever is seen second.
// Rides are keyed by each of their ride types, everything else by object type.
type ReplacementLinker struct {
	recorded map[replacementKey]string
	linked   map[string]struct{}
	compat   []linkCandidate
	modern   map[string][]linkCandidate // by type
	err      error
}

// NewReplacementLinker returns an empty linker.
func NewReplacementLinker() *ReplacementLinker {
	return &ReplacementLinker{
		recorded: make(map[replacementKey]string),
		linked:   make(map[string]struct{}),
		modern:   make(map[string][]linkCandidate),
	}
}

func (l *ReplacementLinker) Classify(rec *Record) (Value, bool) {
	name, ok := rec.DisplayName()
	if !ok {
		return Value{}, false
	}
	types := replacementTypes(rec)
	if len(types) == 0 {
		return Value{}, false
	}
	if rec.ID == "" {
		if l.err == nil {
			l.err = fmt.Errorf("%s: %w", rec.Path, ErrMissingID)
		}
		return Value{}, false
	}

	for _, t := range types {
		l.recorded[replacementKey{compat: rec.IsCompatibilityObject, objectType: t, name: name}] = rec.ID
	}
	cand := linkCandidate{id: rec.ID, name: name, types: types}
	if rec.IsCompatibilityObject {
		l.compat = append(l.compat, cand)
	} else {
		for _, t := range types {
			l.modern[t] = append(l.modern[t], cand)
		}
	}

	for _, t := range types {
		other, ok := l.recorded[replacementKey{compat: !rec.IsCompatibilityObject, objectType: t, name: name}]
		if !ok {
			continue
		}
		l.linked[rec.ID] = struct{}{}
		l.linked[other] = struct{}{}
		return Text(other), true
	}
	return Value{}, false
}

// Err reports the first record that could not be remembered.
func (l *ReplacementLinker) Err() error { return l.err }

func replacementTypes(rec *Record) []string {
	if rec.ObjectType != CategoryRide {
		if rec.ObjectType == "" {
			return nil
		}
		return []string{rec.ObjectType}
	}
	if rec.Properties == nil {
		return nil
	}
	return rec.Properties.Type
}

// Unmatched returns the compatibility objects that were never linked, in the
// order they were seen.
func (l *ReplacementLinker) Unmatched() []string {
	var ids []string
	for _, c := range l.compat {
		if _, ok := l.linked[c.id]; !ok {
			ids = append(ids, c.id)
		}
	}
	return ids
}

// Suggestion is a likely replacement for an unmatched compatibility object.
type Suggestion struct {
	CompatibilityID string
	ReplacementID   string
	Name            string
	ReplacementName string
	Distance        int
}

// Suggestions proposes, for every unmatched compatibility object, the modern
// object of the same type whose name is closest by edit distance. Candidates
// further than maxDistance are dropped.
func (l *ReplacementLinker) Suggestions(maxDistance int) []Suggestion {
	var out []Suggestion
	for _, c := range l.compat {
		if _, ok := l.linked[c.id]; ok {
			continue
		}
		best := Suggestion{Distance: -1}
		for _, t := range c.types {
			for _, m := range l.modern[t] {
				d := levenshtein.Distance(c.name, m.name, nil)
				if best.Distance >= 0 && d >= best.Distance {
					continue
				}
				best = Suggestion{
					CompatibilityID: c.id,
					ReplacementID:   m.id,
					Name:            c.name,
					ReplacementName: m.name,
					Distance:        d,
				}
			}
		}
		if best.Distance >= 0 && best.Distance <= maxDistance {
			out = append(out, best)
		}
	}
	return out
}
