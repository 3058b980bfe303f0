package objectlists

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// Source walks <Root>/<sourceGroup>/<category>/<file> and yields parsed records.
type Source struct {
	Root   string
	Logger *zap.Logger
}

// NewSource returns a Source rooted at the data/object directory.
func NewSource(root string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{Root: root, Logger: logger}
}

// Records yields every object of the given categories found under any source
// group. Directory entries are visited in the order the filesystem returns
// them. Iteration stops at the first error, which is yielded with a nil record.
func (s *Source) Records(ctx context.Context, categories []string) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		groups, err := readDirUnordered(s.Root)
		if err != nil {
			yield(nil, fmt.Errorf("read object root: %w", err))
			return
		}

		found := 0
		for _, group := range groups {
			for _, category := range categories {
				dir := filepath.Join(s.Root, group.Name(), category)
				if !isDir(dir) {
					continue
				}
				entries, err := readDirUnordered(dir)
				if err != nil {
					yield(nil, fmt.Errorf("read %s: %w", dir, err))
					return
				}

				for _, entry := range entries {
					if err := ctx.Err(); err != nil {
						yield(nil, err)
						return
					}
					rec, ok, err := loadRecord(filepath.Join(dir, entry.Name()), category)
					if err != nil {
						yield(nil, err)
						return
					}
					if !ok {
						continue
					}
					found++
					if !yield(rec, nil) {
						return
					}
				}
			}
		}

		s.logger().Info("found objects",
			zap.Int("total", found),
			zap.Strings("categories", categories))
	}
}

func (s *Source) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// loadRecord reads a single directory entry. ok is false for entries that do
// not hold an object definition.
func loadRecord(path, category string) (*Record, bool, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasSuffix(path, plainDocumentExt):
		if !isRegularFile(path) {
			return nil, false, nil
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", path, err)
		}
	case strings.HasSuffix(path, containerExt):
		if !isRegularFile(path) {
			return nil, false, nil
		}
		var ok bool
		data, ok, err = readContainerEntry(path, containerEntryName)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
	default:
		return nil, false, nil
	}

	rec, err := parseRecordFile(data, path, category)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// readContainerEntry returns the contents of the named entry of a zip archive.
// ok is false when the archive has no such entry.
func readContainerEntry(path, name string) ([]byte, bool, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, fmt.Errorf("open %s in %s: %w", name, path, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, false, fmt.Errorf("read %s in %s: %w", name, path, err)
		}
		return data, true, nil
	}
	return nil, false, nil
}

// readDirUnordered lists dir without sorting, unlike os.ReadDir.
func readDirUnordered(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
