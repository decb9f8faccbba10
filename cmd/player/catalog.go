package player

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/samber/lo"
)

// Track describes one playable file discovered during a scan.
// Immutable after creation.
type Track struct {
	Path        string          `json:"path"`
	SampleRate  beep.SampleRate `json:"sampleRate"`
	NumChannels int             `json:"numChannels"`
	NumFrames   int             `json:"numFrames"`
}

// Name returns the file name without its extension, for display.
func (t Track) Name() string {
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Duration returns the track length according to its own sample rate.
func (t Track) Duration() time.Duration {
	return t.SampleRate.D(t.NumFrames)
}

// Format returns the track's stream format.
func (t Track) Format() beep.Format {
	return beep.Format{
		SampleRate:  t.SampleRate,
		NumChannels: t.NumChannels,
		Precision:   2,
	}
}

// Playlist is an ordered, fixed sequence of tracks.
type Playlist []Track

// Scan walks dir recursively and returns every decodable WAV file,
// ordered lexicographically by path. Files that fail to decode are
// skipped with a warning. An empty result is an error: there is
// nothing to play.
func Scan(dir string) (Playlist, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var playlist Playlist
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}
		track, err := probe(path)
		if err != nil {
			slog.Warn("skipping undecodable file", "path", path, "error", err)
			return nil
		}
		playlist = append(playlist, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	slices.SortFunc(playlist, func(a, b Track) int {
		return strings.Compare(a.Path, b.Path)
	})

	if len(playlist) == 0 {
		return nil, fmt.Errorf("no playable WAV files found in %s", dir)
	}
	return playlist, nil
}

// probe opens path just far enough to read its WAV header.
func probe(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return Track{}, err
	}
	defer streamer.Close()

	return Track{
		Path:        path,
		SampleRate:  format.SampleRate,
		NumChannels: format.NumChannels,
		NumFrames:   streamer.Len(),
	}, nil
}

// FilterFormat drops tracks whose sample rate or channel count differ
// from the reference format, warning per dropped track. The output
// stream format is fixed for the whole session, so mismatching tracks
// can never reach the render path.
func FilterFormat(playlist Playlist, format beep.Format) Playlist {
	return lo.Filter(playlist, func(t Track, _ int) bool {
		if t.SampleRate == format.SampleRate && t.NumChannels == format.NumChannels {
			return true
		}
		slog.Warn("skipping track with mismatching format",
			"path", t.Path,
			"sampleRate", t.SampleRate,
			"channels", t.NumChannels,
			"wantSampleRate", format.SampleRate,
			"wantChannels", format.NumChannels)
		return false
	})
}
