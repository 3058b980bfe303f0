package objectlists

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFixtureObjects(t *testing.T, root string) {
	t.Helper()
	writeObject(t, root, "rct2", CategoryRide, "r1.json",
		`{"id":"r1","objectType":"ride","isCompatibilityObject":true,
		  "strings":{"name":{"en-GB":"Cafe"}},
		  "properties":{"category":["stall","x"],"type":"food_stall"}}`)
	writeParkobj(t, root, "official", CategoryRide, "r2.parkobj", map[string]string{
		"object.json": `{"id":"r2","objectType":"ride",
		  "strings":{"name":{"en-GB":"Cafe"}},
		  "properties":{"category":"gentle","type":["food_stall"]}}`,
	})
	writeObject(t, root, "rct2", CategoryFootpathSurface, "sloped.json",
		`{"id":"p.sloped","objectType":"footpath_surface","strings":{"name":{"en-GB":"Tarmac (Sloped)"}}}`)
	writeObject(t, root, "rct2", CategoryFootpathSurface, "stairs.json",
		`{"id":"p.stairs","objectType":"footpath_surface","strings":{"name":{"en-GB":"Tarmac (Stairs)"}},
		  "properties":{"editorOnly":true}}`)
	writeObject(t, root, "rct2", CategoryFootpathRailings, "invisible.json",
		`{"id":"rail.invisible","objectType":"footpath_railings","strings":{"name":{"en-GB":"Invisible Railings"}}}`)
	writeObject(t, root, "rct2", CategoryParkEntrance, "gate.json",
		`{"id":"e.old","objectType":"park_entrance","isCompatibilityObject":true,"strings":{"name":{"en-GB":"Old Gate"}}}`)
}

func tableByName(t *testing.T, mod *Module, name string) *Table {
	t.Helper()
	for _, table := range mod.Tables {
		if table.Name == name {
			return table
		}
	}
	require.FailNowf(t, "missing table", "table %s not found", name)
	return nil
}

func TestGenerateWritesEveryTable(t *testing.T) {
	root := t.TempDir()
	writeFixtureObjects(t, root)
	out := filepath.Join(t.TempDir(), "standardobjectlist.ts")

	mod, err := Generate(context.Background(), Options{ObjectRoot: root, OutputPath: out, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, mod.Content, content)
	assert.True(t, strings.HasPrefix(content, generatedNotice+"\n"))
	assert.Contains(t, content, `"r1":"shop"`)

	declared, err := DeclaredConstants(data)
	require.NoError(t, err)
	var want []string
	for _, spec := range DefaultTables() {
		want = append(want, spec.Name)
	}
	diffStrings(t, "declared tables", want, declared)

	compat := tableByName(t, mod, "CompatibilityObjectIdentifiers").IDs()
	sort.Strings(compat)
	diffStrings(t, "compatibility ids", []string{"e.old", "r1"}, compat)

	cat, ok := tableByName(t, mod, "PregeneratedIdentifierToRideResearchCategory").Get("r2")
	assert.True(t, ok)
	assert.Equal(t, "gentle", cat.String())

	slopes := tableByName(t, mod, "PathIdentifiersWithSlopedAndStairVariants").Entries()
	require.Len(t, slopes, 1)
	pair := []string{slopes[0].ID, slopes[0].Value.String()}
	sort.Strings(pair)
	diffStrings(t, "slope pair", []string{"p.sloped", "p.stairs"}, pair)

	tag, ok := tableByName(t, mod, "PathIdentifierToSlopeVariant").Get("p.stairs")
	assert.True(t, ok)
	assert.Equal(t, "stairs", tag.String())

	diffStrings(t, "editor only ids", []string{"p.stairs"}, tableByName(t, mod, "EditorOnlyPathIdentifiers").IDs())
	diffStrings(t, "invisible ids", []string{"rail.invisible"}, tableByName(t, mod, "InvisibleFootpathIdentifiers").IDs())
	assert.Equal(t, 0, tableByName(t, mod, "PathIdentifierToCornerVariant").Len())

	// r1 and r2 live in different source groups, so either may be seen first.
	links := tableByName(t, mod, "CompatibilityObjectToReplacement").Entries()
	require.Len(t, links, 1)
	pair = []string{links[0].ID, links[0].Value.String()}
	sort.Strings(pair)
	diffStrings(t, "replacement pair", []string{"r1", "r2"}, pair)
	diffStrings(t, "unmatched ids", []string{"e.old"}, mod.Unmatched)
}

func TestGenerateIsReproducible(t *testing.T) {
	root := t.TempDir()
	writeFixtureObjects(t, root)
	out := filepath.Join(t.TempDir(), "out.ts")

	_, err := Generate(context.Background(), Options{ObjectRoot: root, OutputPath: out})
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = Generate(context.Background(), Options{ObjectRoot: root, OutputPath: out})
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerateLeavesOutputOnFailure(t *testing.T) {
	root := t.TempDir()
	writeFixtureObjects(t, root)
	writeObject(t, root, "rct2", CategoryRide, "broken.json", `{"id":"broken",`)

	out := filepath.Join(t.TempDir(), "out.ts")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	_, err := Generate(context.Background(), Options{ObjectRoot: root, OutputPath: out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestGenerateMissingObjectRoot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ts")
	_, err := Generate(context.Background(), Options{ObjectRoot: filepath.Join(t.TempDir(), "nope"), OutputPath: out})
	require.ErrorIs(t, err, ErrObjectRootMissing)

	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestGenerateWithNoObjectsDeclaresEmptyTables(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.ts")

	mod, err := Generate(context.Background(), Options{ObjectRoot: root, OutputPath: out})
	require.NoError(t, err)
	for _, table := range mod.Tables {
		assert.Equal(t, 0, table.Len(), table.Name)
	}
	assert.Empty(t, mod.Unmatched)
}

func TestIsStale(t *testing.T) {
	root := t.TempDir()
	writeFixtureObjects(t, root)
	out := filepath.Join(t.TempDir(), "out.ts")
	opts := Options{ObjectRoot: root, OutputPath: out}
	ctx := context.Background()

	stale, err := IsStale(ctx, opts)
	require.NoError(t, err)
	assert.True(t, stale, "missing output should be stale")

	_, err = Generate(ctx, opts)
	require.NoError(t, err)

	stale, err = IsStale(ctx, opts)
	require.NoError(t, err)
	assert.False(t, stale, "fresh output should not be stale")

	writeObject(t, root, "rct2", CategoryRide, "r3.json", `{"id":"r3","objectType":"ride"}`)
	stale, err = IsStale(ctx, opts)
	require.NoError(t, err)
	assert.True(t, stale, "new object should make output stale")
}

func TestIsStaleWithoutHashHeader(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.ts")
	require.NoError(t, os.WriteFile(out, []byte("export const A = 1;\n"), 0644))

	stale, err := IsStale(context.Background(), Options{ObjectRoot: root, OutputPath: out})
	require.NoError(t, err)
	assert.True(t, stale)
}
