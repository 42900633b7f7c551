// Package tags extracts track metadata from audio containers.
// It is a thin normalization layer over github.com/dhowden/tag:
// files without a usable artist and album yield no metadata at all,
// so callers can route them to the unsorted bucket.
package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// TrackMetadata holds the tag fields relevant for sorting.
type TrackMetadata struct {
	Artist string
	Album  string
	Title  string // empty when the container has no usable title
	Track  int    // 0 when the container has no track number
}

// ReadTags reads metadata from the audio file at path. It returns nil
// when the file cannot be opened, carries no recognizable tags, or is
// missing either artist or album. An empty title is dropped and a
// missing track number is reported as 0.
func ReadTags(path string) *TrackMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}

	return fromMetadata(m)
}

func fromMetadata(m tag.Metadata) *TrackMetadata {
	artist := m.Artist()
	album := m.Album()

	if artist == "" || album == "" {
		return nil
	}

	track, _ := m.Track()
	if track < 0 {
		track = 0
	}

	return &TrackMetadata{
		Artist: artist,
		Album:  album,
		Title:  m.Title(),
		Track:  track,
	}
}
