// Package planner computes destination paths for audio files from their
// embedded metadata. Planning is pure: it never touches the filesystem
// beyond the existence checks done during conflict resolution, and it
// never fails. Legality and collision concerns are deferred to
// ResolveConflicts and to the mover.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"tagmv/pkg/sanitizer"
	"tagmv/pkg/tags"
)

// UnsortedFolder is the sentinel folder for files whose metadata could
// not be read. Files placed here keep their original names.
const UnsortedFolder = "_Unsorted"

// PlannedMove is one intended relocation. Source is immutable once
// created; Dest, FolderName and FileName are updated together by
// ResolveConflicts and always satisfy
// Dest == baseDir/FolderName/FileName.
type PlannedMove struct {
	Source     string
	Dest       string
	FolderName string
	FileName   string
}

// InPlace reports whether the move is a no-op because the file already
// sits at its destination.
func (m *PlannedMove) InPlace() bool {
	return m.Source == m.Dest
}

// ComputeDestination maps a source file with known metadata to its
// destination under baseDir. The folder is "Artist - Album" (both
// sanitized), the file name is "NN - Title.ext" when a track number is
// present and "Title.ext" otherwise. A missing title falls back to the
// source file's stem, unsanitized.
func ComputeDestination(baseDir, source string, meta *tags.TrackMetadata) PlannedMove {
	folderName := sanitizer.Sanitize(meta.Artist) + " - " + sanitizer.Sanitize(meta.Album)

	base := filepath.Base(source)
	fullExt := filepath.Ext(base)
	if fullExt == base {
		// Dotfiles like ".foo" are all stem, no extension.
		fullExt = ""
	}
	ext := strings.TrimPrefix(fullExt, ".")

	var title string
	if meta.Title != "" {
		title = sanitizer.Sanitize(meta.Title)
	} else {
		title = strings.TrimSuffix(base, fullExt)
		if title == "" {
			title = "Unknown"
		}
	}

	var fileName string
	if meta.Track > 0 {
		fileName = fmt.Sprintf("%02d - %s.%s", meta.Track, title, ext)
	} else {
		fileName = fmt.Sprintf("%s.%s", title, ext)
	}

	return PlannedMove{
		Source:     source,
		Dest:       filepath.Join(baseDir, folderName, fileName),
		FolderName: folderName,
		FileName:   fileName,
	}
}

// ComputeUnsortedDestination maps a source file without usable metadata
// to the _Unsorted folder under baseDir. The original file name is kept
// verbatim: it already exists on disk under that name, so it is known
// to be filesystem-legal.
func ComputeUnsortedDestination(baseDir, source string) PlannedMove {
	fileName := filepath.Base(source)

	return PlannedMove{
		Source:     source,
		Dest:       filepath.Join(baseDir, UnsortedFolder, fileName),
		FolderName: UnsortedFolder,
		FileName:   fileName,
	}
}
