package player

import (
	"fmt"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Source is a pull cursor over interleaved stereo frames. Pulling
// must never touch the disk; whatever decoding a source needs happens
// before it is handed to the render path.
type Source interface {
	// Pull copies up to len(dst) frames and advances the cursor.
	// Returns the number of frames copied; 0 means exhausted.
	Pull(dst [][2]float64) int
	Rewind()
	Len() int
	Pos() int
}

// OpenFunc opens the source for a track. Implementations do all file
// I/O up front so the returned source is safe to publish to the
// audio callback.
type OpenFunc func(Track) (Source, error)

// Clip is a fully decoded track held in memory.
type Clip struct {
	frames [][2]float64
	pos    int
}

func (c *Clip) Pull(dst [][2]float64) int {
	n := copy(dst, c.frames[c.pos:])
	c.pos += n
	return n
}

func (c *Clip) Rewind() { c.pos = 0 }
func (c *Clip) Len() int { return len(c.frames) }
func (c *Clip) Pos() int { return c.pos }

// NewClip wraps pre-decoded frames in a cursor.
func NewClip(frames [][2]float64) *Clip {
	return &Clip{frames: frames}
}

// Opener returns an OpenFunc that decodes WAV files and rejects any
// track whose on-disk format no longer matches the session's stream
// format. The format was already checked at scan time; this re-check
// catches files rewritten since.
func Opener(format beep.Format) OpenFunc {
	return func(t Track) (Source, error) {
		f, err := os.Open(t.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		streamer, got, err := wav.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", t.Path, err)
		}
		defer streamer.Close()

		if got.SampleRate != format.SampleRate || got.NumChannels != format.NumChannels {
			return nil, fmt.Errorf("%s: format %d Hz/%d ch does not match stream %d Hz/%d ch",
				t.Path, got.SampleRate, got.NumChannels, format.SampleRate, format.NumChannels)
		}

		frames := make([][2]float64, streamer.Len())
		total := 0
		for total < len(frames) {
			n, ok := streamer.Stream(frames[total:])
			total += n
			if !ok {
				break
			}
		}
		if err := streamer.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", t.Path, err)
		}
		return NewClip(frames[:total]), nil
	}
}
