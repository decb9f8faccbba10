package player

import (
	"errors"
	"log/slog"
	"sync"
)

// Command is a transport action applied to the engine.
type Command int

const (
	TogglePlayPause Command = iota
	PrevTrack
	NextTrack
)

// Engine owns the transport state and feeds frames to the audio
// output. Two goroutines touch it: the speaker's mixer goroutine
// calls Stream, the control goroutine calls Apply and Preload. One
// mutex with short critical sections guards the state on both sides;
// all file I/O happens on the control side, before a source is
// published.
type Engine struct {
	mu       sync.Mutex
	playlist Playlist
	open     OpenFunc

	index   int
	playing bool
	src     Source

	// Source for playlist[queuedIndex], opened ahead of time so the
	// render callback can advance without touching the disk.
	queued      Source
	queuedIndex int
}

// Status is a snapshot of the transport state.
type Status struct {
	Index   int
	Track   Track
	Playing bool
	Pos     int // frames into the current track
}

// New builds an engine over playlist, opens the first track and
// starts in the playing state. A first track that cannot be opened is
// a startup failure, not a skip.
func New(playlist Playlist, open OpenFunc) (*Engine, error) {
	if len(playlist) == 0 {
		return nil, errors.New("empty playlist")
	}
	src, err := open(playlist[0])
	if err != nil {
		return nil, err
	}
	e := &Engine{
		playlist:    playlist,
		open:        open,
		playing:     true,
		src:         src,
		queuedIndex: -1,
	}
	e.Preload()
	return e, nil
}

// Apply executes one transport command. Control goroutine only.
func (e *Engine) Apply(cmd Command) {
	switch cmd {
	case TogglePlayPause:
		e.mu.Lock()
		e.playing = !e.playing
		e.mu.Unlock()
	case NextTrack:
		e.jump(1)
	case PrevTrack:
		e.jump(-1)
	}
}

// jump moves the current index by delta, clamped to the playlist
// bounds; at a boundary the command is a no-op. The new source is
// opened before the lock is taken, then index and source are
// published as a unit.
func (e *Engine) jump(delta int) {
	e.mu.Lock()
	target := e.index + delta
	if target < 0 {
		target = 0
	}
	if target >= len(e.playlist) {
		target = len(e.playlist) - 1
	}
	if target == e.index {
		e.mu.Unlock()
		return
	}
	track := e.playlist[target]
	e.mu.Unlock()

	src := e.openOrSkip(track)

	e.mu.Lock()
	e.index = target
	e.src = src
	e.queued = nil
	e.queuedIndex = -1
	e.mu.Unlock()
}

// Preload opens the upcoming track's source if it is not queued yet,
// so that the render callback can switch to it without a gap. Called
// from the control loop after every command and on every poll tick.
func (e *Engine) Preload() {
	e.mu.Lock()
	next := e.index + 1
	if next >= len(e.playlist) || e.queuedIndex == next {
		e.mu.Unlock()
		return
	}
	track := e.playlist[next]
	e.mu.Unlock()

	src := e.openOrSkip(track)

	e.mu.Lock()
	// The index may have moved while we were decoding; only publish
	// if the result is still the upcoming track.
	if e.index+1 == next {
		e.queued = src
		e.queuedIndex = next
	}
	e.mu.Unlock()
}

// openOrSkip opens a track's source, degrading an unopenable track to
// an empty source so playback skips over it.
func (e *Engine) openOrSkip(track Track) Source {
	src, err := e.open(track)
	if err != nil {
		slog.Warn("skipping unplayable track", "path", track.Path, "error", err)
		return NewClip(nil)
	}
	return src
}

// Stream supplies the next len(samples) frames to the output device.
// It always writes the full buffer and returns (len(samples), true):
// silence when paused, silence-padding when a source runs out before
// a replacement is ready. Never allocates, never performs I/O.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	n := 0
	for e.playing && n < len(samples) {
		n += e.src.Pull(samples[n:])
		if n == len(samples) {
			break
		}
		if !e.advanceLocked() {
			break
		}
	}
	e.mu.Unlock()

	for ; n < len(samples); n++ {
		samples[n] = [2]float64{}
	}
	return len(samples), true
}

// Err implements beep.Streamer. Per-track failures are handled by
// skipping, so the stream itself never errors.
func (e *Engine) Err() error { return nil }

// advanceLocked moves to the queued next source after the current one
// is exhausted. At the end of the playlist, playback stops and the
// cursor rewinds so the last track can be replayed. Returns false
// when no further frames can be produced this cycle.
func (e *Engine) advanceLocked() bool {
	if e.index >= len(e.playlist)-1 {
		e.playing = false
		e.src.Rewind()
		return false
	}
	if e.queuedIndex != e.index+1 {
		// Preload has not caught up; pad with silence and retry on
		// the next render cycle.
		return false
	}
	e.index = e.queuedIndex
	e.src = e.queued
	e.queued = nil
	e.queuedIndex = -1
	return true
}

// Status returns a snapshot of the transport state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Index:   e.index,
		Track:   e.playlist[e.index],
		Playing: e.playing,
		Pos:     e.src.Pos(),
	}
}

// Close releases the engine's sources. Call only after the output
// stream has been torn down.
func (e *Engine) Close() {
	e.mu.Lock()
	e.src = NewClip(nil)
	e.queued = nil
	e.queuedIndex = -1
	e.playing = false
	e.mu.Unlock()
}
