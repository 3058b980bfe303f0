package objectlists

import (
	"fmt"
	"strings"
)

const (
	generatedNotice = "// This file was generated automatically by objectlists, do not edit by hand."
	hashLinePrefix  = "objects-hash:"
)

// Header returns the fixed comment block written above the tables.
func Header(contentHash string) []string {
	return []string{
		generatedNotice,
		"// " + hashLinePrefix + " " + contentHash,
		"// Regenerate: objectlists",
	}
}

// Render generates the module text: the header, then one exported const per
// table in the given order.
func Render(header []string, tables []*Table) (string, error) {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, "\n"))
	sb.WriteString("\n\n\n")

	for _, t := range tables {
		if err := renderDeclaration(&sb, t); err != nil {
			return "", fmt.Errorf("render %s: %w", t.Name, err)
		}
	}
	return sb.String(), nil
}

func renderDeclaration(sb *strings.Builder, t *Table) error {
	open, closing := t.Kind.delimiters()

	rows := make([]string, 0, t.Len())
	for _, e := range t.entries {
		key, err := quoteJSON(e.ID)
		if err != nil {
			return err
		}
		if t.Kind == KeySetTable {
			rows = append(rows, key)
			continue
		}
		lit, err := e.Value.Literal()
		if err != nil {
			return err
		}
		rows = append(rows, key+":"+lit)
	}

	fmt.Fprintf(sb, "export const %s: %s = \n", t.Name, t.Type)
	sb.WriteString(open)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(rows, ",\n"))
	sb.WriteString("\n")
	sb.WriteString(closing)
	sb.WriteString(" as const;\n\n")
	return nil
}
