package objectlists

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLayout(t *testing.T) {
	ids := NewTable("CompatibilityObjectIdentifiers", "string[]", KeySetTable)
	ids.Put("rct2.ride.a", Flag())
	ids.Put("rct2.ride.b", Flag())

	cats := NewTable("Categories", "Record<string, string>", KeyValueTable)
	cats.Put("r1", Text("shop"))

	got, err := Render([]string{"// a", "// b"}, []*Table{ids, cats})
	require.NoError(t, err)

	want := "// a\n// b\n\n\n" +
		"export const CompatibilityObjectIdentifiers: string[] = \n" +
		"[\n" +
		"\"rct2.ride.a\",\n" +
		"\"rct2.ride.b\"\n" +
		"] as const;\n\n" +
		"export const Categories: Record<string, string> = \n" +
		"{\n" +
		"\"r1\":\"shop\"\n" +
		"} as const;\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected module (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyTableStillDeclared(t *testing.T) {
	got, err := Render(nil, []*Table{NewTable("Empty", "string[]", KeySetTable)})
	require.NoError(t, err)
	want := "\n\n\nexport const Empty: string[] = \n[\n\n] as const;\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected module (-want +got):\n%s", diff)
	}
	assert.NoError(t, CheckSyntax([]byte(got)), "empty table should still parse")
}

func TestRenderEscapesKeysAndValues(t *testing.T) {
	table := NewTable("T", "Record<string, string>", KeyValueTable)
	table.Put(`we"ird\id`, Text("a<b>&c"))

	got, err := Render(nil, []*Table{table})
	require.NoError(t, err)
	assert.Contains(t, got, `"we\"ird\\id":"a<b>&c"`)
	assert.NoError(t, CheckSyntax([]byte(got)), "escaped output should parse")
}

func TestHeaderCarriesHash(t *testing.T) {
	header := Header("abc123")
	require.Len(t, header, 3)
	assert.Equal(t, "abc123", parseHashLine(header[1]))
	for _, line := range header {
		assert.True(t, strings.HasPrefix(line, "//"), "header line %q is not a comment", line)
	}
}
