package objectlists

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// displayLocale is the locale whose name string the classifiers match against.
const displayLocale = "en-GB"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidUTF8 is returned for documents that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")

// ErrNotObject is returned for documents whose top level is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

// Record is one parsed object definition. Only the fields the classifiers
// read are kept; anything with an unexpected shape is left unset.
type Record struct {
	ID                    string
	ObjectType            string
	IsCompatibilityObject bool
	Name                  string // strings.name."en-GB"
	HasName               bool
	Properties            *Properties

	// Path is the file the record came from, for diagnostics.
	Path string
}

// Properties holds the parts of the "properties" block the classifiers use.
type Properties struct {
	Category   []string
	Type       []string
	EditorOnly bool
}

// DisplayName returns the en-GB name of the object.
func (r *Record) DisplayName() (string, bool) {
	if r == nil || !r.HasName {
		return "", false
	}
	return r.Name, true
}

// ParseRecord decodes one object definition document.
func ParseRecord(data []byte) (*Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	rec := &Record{}
	rec.ID, _ = asString(obj["id"])
	rec.ObjectType, _ = asString(obj["objectType"])
	rec.IsCompatibilityObject, _ = asBool(obj["isCompatibilityObject"])
	rec.Name, rec.HasName = asString(lookup(obj, "strings", "name", displayLocale))

	if props, ok := obj["properties"].(map[string]any); ok {
		rec.Properties = &Properties{
			Category: asStringList(props["category"]),
			Type:     asStringList(props["type"]),
		}
		rec.Properties.EditorOnly, _ = asBool(props["editorOnly"])
	}
	return rec, nil
}

func parseRecordFile(data []byte, path, category string) (*Record, error) {
	rec, err := ParseRecord(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if rec.ObjectType == "" {
		rec.ObjectType = category
	}
	rec.Path = path
	return rec, nil
}

func lookup(obj map[string]any, path ...string) any {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asStringList accepts a string or an array of strings.
func asStringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}
