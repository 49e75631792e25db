// Package fileutil provides directory enumeration for the scanner.
//
// Enumeration is error-tolerant: unreadable entries are collected as non-fatal
// errors and the walk continues. Only a missing or invalid root is fatal.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Options configures directory enumeration.
type Options struct {
	// Recursive enables traversal into subdirectories.
	Recursive bool
	// ExcludeDirs is a list of directory names to skip entirely
	// (e.g., ".git", "node_modules").
	ExcludeDirs []string
}

// Result contains the outcome of an enumeration.
type Result struct {
	// Files contains the paths of all regular files found, sorted.
	Files []string
	// Errors contains any non-fatal errors encountered while walking.
	Errors []error
}

// Enumerate lists all regular files under dir. If opts.Recursive is false,
// only the immediate directory contents are listed. Hidden files and
// directories are included; only names in opts.ExcludeDirs are skipped.
//
// Returns an error satisfying errors.Is(err, fs.ErrNotExist) when dir does
// not exist.
func Enumerate(dir string, opts Options) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &Result{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files are scan candidates; sockets, devices and
		// symlinks to anything are skipped.
		if !d.Type().IsRegular() {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// TruncateTail shortens a path for single-line progress display, keeping the
// last max characters so the filename stays visible.
func TruncateTail(path string, max int) string {
	if len(path) <= max {
		return path
	}
	runes := []rune(path)
	if len(runes) <= max {
		return path
	}
	return string(runes[len(runes)-max:])
}

