package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// file types eligible for indexing, everything else is skipped
var supportedExtensions = map[string]bool{
	".md":   true,
	".txt":  true,
	".rst":  true,
	".adoc": true,
	".py":   true,
	".js":   true,
	".ts":   true,
	".tsx":  true,
	".jsx":  true,
	".go":   true,
	".rs":   true,
	".java": true,
	".kt":   true,
	".rb":   true,
	".php":  true,
	".swift": true,
	".c":    true,
	".cpp":  true,
	".h":    true,
	".cs":   true,
	".scala": true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".cfg":  true,
	".csv":  true,
}

var ignoreDirs = map[string]bool{
	"__pycache__":   true,
	"node_modules":  true,
	".git":          true,
	".venv":         true,
	"venv":          true,
	"dist":          true,
	"build":         true,
	".next":         true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".terraform":    true,
	"vendor":        true,
}

const defaultMaxFileSize = 2 << 20 // 2 MiB

type Walker struct {
	excludes    []string
	maxFileSize int64
}

// excludes are doublestar glob patterns matched against paths relative to the walk root
func NewWalker(excludes []string) *Walker {
	return &Walker{
		excludes:    excludes,
		maxFileSize: defaultMaxFileSize,
	}
}

type FileInfo struct {
	Path    string // absolute
	RelPath string // relative to the walk root, forward slashes
	Size    int64
}

// returns all eligible files under root in lexical order
func (w *Walker) Walk(root string) ([]FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", root)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			name := entry.Name()
			if ignoreDirs[name] || strings.HasSuffix(name, ".egg-info") {
				return filepath.SkipDir
			}

			if w.matchesExclude(relPath + "/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if w.matchesExclude(relPath) {
			return nil
		}

		fi, err := entry.Info()
		if err != nil {
			return err
		}

		if fi.Size() > w.maxFileSize {
			return nil
		}

		files = append(files, FileInfo{
			Path:    path,
			RelPath: relPath,
			Size:    fi.Size(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (w *Walker) matchesExclude(relPath string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}

	return false
}
