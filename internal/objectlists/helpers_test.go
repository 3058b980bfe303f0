package objectlists

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func writeObject(t *testing.T, root, group, category, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, group, category)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeParkobj writes a zip archive holding the given entries.
func writeParkobj(t *testing.T, root, group, category, name string, entries map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, group, category)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[n]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// sliceSource replays fixed records regardless of category.
type sliceSource []*Record

func (s sliceSource) Records(_ context.Context, _ []string) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for _, rec := range s {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func named(id, name string) *Record {
	return &Record{ID: id, Name: name, HasName: true}
}

func collectIDs(t *testing.T, seq iter.Seq2[*Record, error]) []string {
	t.Helper()
	var ids []string
	for rec, err := range seq {
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	sort.Strings(ids)
	return ids
}

// diffStrings reports a cmp.Diff between two string lists.
func diffStrings(t *testing.T, what string, want, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}
