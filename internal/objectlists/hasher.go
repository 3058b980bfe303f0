package objectlists

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// objectsHashVersion changes whenever the module layout changes so that old
// outputs are reported stale.
const objectsHashVersion = "objectlists/1"

// ComputeHash hashes the table definitions and the contents of every object
// file they read.
func ComputeHash(ctx context.Context, root string, specs []TableSpec) (string, error) {
	idx, err := BuildObjectIndex(ctx, root, specCategories(specs))
	if err != nil {
		return "", fmt.Errorf("build object index: %w", err)
	}

	h := sha256.New()
	sep := []byte{0}
	_, _ = io.WriteString(h, objectsHashVersion)
	_, _ = h.Write(sep)
	for _, spec := range specs {
		_, _ = io.WriteString(h, spec.Name)
		_, _ = h.Write(sep)
		_, _ = io.WriteString(h, spec.Type)
		_, _ = h.Write(sep)
		_, _ = io.WriteString(h, strings.Join(spec.Categories, ","))
		_, _ = h.Write(sep)
	}

	for _, f := range idx.Files {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		contentHash, err := hashFileContents(f.AbsPath)
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", f.RelPath, err)
		}
		_, _ = io.WriteString(h, f.RelPath)
		_, _ = h.Write(sep)
		_, _ = io.WriteString(h, contentHash)
		_, _ = h.Write(sep)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFileContents(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ReadExistingHash extracts the objects-hash from the header of a generated
// module. A missing file or header yields "".
func ReadExistingHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	linesChecked := 0
	for scanner.Scan() {
		linesChecked++
		if hash := parseHashLine(scanner.Text()); hash != "" {
			return hash, nil
		}
		if linesChecked >= 10 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", nil
}

func parseHashLine(line string) string {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "//") {
		return ""
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	if !strings.HasPrefix(s, hashLinePrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(s, hashLinePrefix))
}
