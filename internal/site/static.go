package site

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// CopyStatic copies every regular file of siteDir matching one of include
// and none of exclude into outputDir, keeping relative paths. Paths in skip
// are left out by exact relative path only. It returns the copied paths,
// slash-separated and sorted.
func CopyStatic(siteDir, outputDir string, include, exclude, skip []string) ([]string, error) {
	fsys := os.DirFS(siteDir)
	seen := make(map[string]bool)
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[path.Clean(filepath.ToSlash(s))] = true
	}

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, rel := range matches {
			if seen[rel] || skipped[rel] || isExcluded(rel, exclude) {
				continue
			}
			info, err := fs.Stat(fsys, rel)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[rel] = true
		}
	}

	copied := make([]string, 0, len(seen))
	for rel := range seen {
		copied = append(copied, rel)
	}
	sort.Strings(copied)

	for _, rel := range copied {
		src := filepath.Join(siteDir, filepath.FromSlash(rel))
		dst := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
	}
	return copied, nil
}

// isExcluded reports whether rel, or just its file name, matches any
// exclude pattern.
func isExcluded(rel string, exclude []string) bool {
	base := path.Base(rel)
	for _, pattern := range exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
