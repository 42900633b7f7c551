// Package scanner discovers audio files to sort. It filters by
// extension, skips hidden files and directories, and never descends
// into the _Unsorted quarantine folder, so repeated runs do not pick up
// files that earlier runs could not identify.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tagmv/pkg/planner"
)

// audioExtensions are the file extensions treated as audio, lowercase
// with leading dot.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
	".wma":  {},
	".aac":  {},
	".wav":  {},
}

// Options configures the scanner behavior.
type Options struct {
	// Recursive scans subdirectories instead of only the top level.
	Recursive bool
}

// Scanner collects audio file paths from a directory.
type Scanner struct {
	recursive bool
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{recursive: opts.Recursive}
}

// IsAudioFile reports whether path has a recognized audio extension,
// case-insensitively.
func IsAudioFile(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan returns the audio files under rootDir, sorted lexicographically
// so downstream batch processing is deterministic.
func (s *Scanner) Scan(rootDir string) ([]string, error) {
	var files []string
	var err error

	if s.recursive {
		files, err = scanRecursive(rootDir)
	} else {
		files, err = scanFlat(rootDir)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func scanFlat(rootDir string) ([]string, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) || !IsAudioFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(rootDir, entry.Name()))
	}

	return files, nil
}

func scanRecursive(rootDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == rootDir {
				return nil
			}
			if isHidden(name) || name == planner.UnsortedFolder {
				return filepath.SkipDir
			}
			return nil
		}

		if !isHidden(name) && IsAudioFile(name) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
