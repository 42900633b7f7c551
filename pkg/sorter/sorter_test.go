package sorter_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagmv/internal/testutil"
	"tagmv/pkg/sorter"
	"tagmv/pkg/tags"
)

// tagTable returns a TagReader backed by a filename-keyed map; files
// absent from the map read as untagged.
func tagTable(metas map[string]*tags.TrackMetadata) sorter.TagReader {
	return func(path string) *tags.TrackMetadata {
		return metas[filepath.Base(path)]
	}
}

func newSorter(t *testing.T, baseDir string, opts sorter.Options) *sorter.Sorter {
	t.Helper()

	s, err := sorter.New(baseDir, opts)
	require.NoError(t, err)

	return s
}

func TestSorter_MovesTaggedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "track.mp3"), "audio")

	s := newSorter(t, tmpDir, sorter.Options{
		ReadTags: tagTable(map[string]*tags.TrackMetadata{
			"track.mp3": {Artist: "Artist", Album: "Album", Title: "Song", Track: 1},
		}),
	})

	moves := s.Plan([]string{filepath.Join(tmpDir, "track.mp3")})
	result := s.Execute(moves)

	assert.Equal(t, 1, result.MovedCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.FileExists(t, filepath.Join(tmpDir, "Artist - Album", "01 - Song.mp3"))
	assert.NoFileExists(t, filepath.Join(tmpDir, "track.mp3"))
}

func TestSorter_UntaggedGoesToUnsorted(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "mystery.mp3"), "audio")

	s := newSorter(t, tmpDir, sorter.Options{ReadTags: tagTable(nil)})

	moves := s.Plan([]string{filepath.Join(tmpDir, "mystery.mp3")})
	result := s.Execute(moves)

	assert.Equal(t, 0, result.MovedCount)
	assert.Equal(t, 1, result.UnsortedCount)
	assert.FileExists(t, filepath.Join(tmpDir, "_Unsorted", "mystery.mp3"))
}

func TestSorter_InPlaceFileSkipped(t *testing.T) {
	tmpDir := t.TempDir()
	inPlace := filepath.Join(tmpDir, "Artist - Album", "01 - Song.mp3")
	testutil.CreateFile(t, inPlace, "audio")

	s := newSorter(t, tmpDir, sorter.Options{
		ReadTags: tagTable(map[string]*tags.TrackMetadata{
			"01 - Song.mp3": {Artist: "Artist", Album: "Album", Title: "Song", Track: 1},
		}),
	})

	moves := s.Plan([]string{inPlace})
	result := s.Execute(moves)

	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 0, result.MovedCount)
	assert.FileExists(t, inPlace)
}

func TestSorter_ConflictingTitlesGetSuffixes(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "a.mp3"), "first")
	testutil.CreateFile(t, filepath.Join(tmpDir, "b.mp3"), "second")

	meta := tags.TrackMetadata{Artist: "X", Album: "Y", Title: "Same", Track: 1}
	s := newSorter(t, tmpDir, sorter.Options{
		ReadTags: tagTable(map[string]*tags.TrackMetadata{
			"a.mp3": &meta,
			"b.mp3": &meta,
		}),
	})

	moves := s.Plan([]string{
		filepath.Join(tmpDir, "a.mp3"),
		filepath.Join(tmpDir, "b.mp3"),
	})
	result := s.Execute(moves)

	assert.Equal(t, 2, result.MovedCount)
	assert.FileExists(t, filepath.Join(tmpDir, "X - Y", "01 - Same.mp3"))
	assert.FileExists(t, filepath.Join(tmpDir, "X - Y", "01 - Same (1).mp3"))
}

func TestSorter_DryRunLeavesFilesAlone(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "track.mp3")
	testutil.CreateFile(t, source, "audio")

	s := newSorter(t, tmpDir, sorter.Options{
		DryRun: true,
		ReadTags: tagTable(map[string]*tags.TrackMetadata{
			"track.mp3": {Artist: "Artist", Album: "Album", Title: "Song", Track: 1},
		}),
	})

	moves := s.Plan([]string{source})
	result := s.Execute(moves)

	assert.Equal(t, 1, result.MovedCount)
	assert.FileExists(t, source)
	assert.NoDirExists(t, filepath.Join(tmpDir, "Artist - Album"))
}

func TestSorter_ContinuesPastFailures(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "ok.mp3"), "audio")

	s := newSorter(t, tmpDir, sorter.Options{
		ReadTags: tagTable(map[string]*tags.TrackMetadata{
			"gone.mp3": {Artist: "A", Album: "B", Title: "First", Track: 1},
			"ok.mp3":   {Artist: "A", Album: "B", Title: "Second", Track: 2},
		}),
	})

	// gone.mp3 was planned but deleted before execution.
	moves := s.Plan([]string{
		filepath.Join(tmpDir, "gone.mp3"),
		filepath.Join(tmpDir, "ok.mp3"),
	})
	result := s.Execute(moves)

	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.MovedCount)
	assert.FileExists(t, filepath.Join(tmpDir, "A - B", "02 - Second.mp3"))
}

func TestSorter_ReportsProgressStages(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "track.mp3"), "audio")

	var stages []string
	s := newSorter(t, tmpDir, sorter.Options{
		ReadTags: tagTable(nil),
		OnProgress: func(stage string, processed, total int) {
			stages = append(stages, stage)
			assert.LessOrEqual(t, processed, total)
		},
	})

	moves := s.Plan([]string{filepath.Join(tmpDir, "track.mp3")})
	s.Execute(moves)

	assert.Equal(t, []string{"plan", "move"}, stages)
}

func TestSorter_New_RejectsMissingRoot(t *testing.T) {
	_, err := sorter.New(filepath.Join(t.TempDir(), "missing"), sorter.Options{})
	assert.Error(t, err)
}
