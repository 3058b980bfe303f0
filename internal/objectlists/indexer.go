package objectlists

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ObjectFile describes a discovered object definition file.
type ObjectFile struct {
	AbsPath string
	RelPath string
	Size    int64
}

// ObjectIndex is a deterministic snapshot of the object files under a root.
type ObjectIndex struct {
	Root  string
	Files []ObjectFile
}

// BuildObjectIndex lists every object file of the given categories, sorted by
// relative path. Unlike Source it never opens the files.
func BuildObjectIndex(ctx context.Context, root string, categories []string) (*ObjectIndex, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	groups, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("read object root: %w", err)
	}

	idx := &ObjectIndex{Root: absRoot}
	for _, group := range groups {
		for _, category := range categories {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			dir := filepath.Join(absRoot, group.Name(), category)
			if !isDir(dir) {
				continue
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", dir, err)
			}
			for _, entry := range entries {
				name := entry.Name()
				if !isObjectFileName(name) {
					continue
				}
				path := filepath.Join(dir, name)
				info, err := os.Stat(path)
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
				relPath, err := filepath.Rel(absRoot, path)
				if err != nil {
					relPath = path
				}
				idx.Files = append(idx.Files, ObjectFile{
					AbsPath: path,
					RelPath: filepath.ToSlash(relPath),
					Size:    info.Size(),
				})
			}
		}
	}

	sort.Slice(idx.Files, func(i, j int) bool {
		return idx.Files[i].RelPath < idx.Files[j].RelPath
	})
	return idx, nil
}

func isObjectFileName(name string) bool {
	return strings.HasSuffix(name, plainDocumentExt) || strings.HasSuffix(name, containerExt)
}

// specCategories returns the union of the categories the specs read, in first
// use order.
func specCategories(specs []TableSpec) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, spec := range specs {
		for _, c := range spec.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
