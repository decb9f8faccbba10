package player

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
)

func TestClip_PullAndRewind(t *testing.T) {
	frames := [][2]float64{{1, 1}, {2, 2}, {3, 3}}
	c := NewClip(frames)

	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	buf := make([][2]float64, 2)
	if n := c.Pull(buf); n != 2 {
		t.Errorf("first Pull = %d, want 2", n)
	}
	if buf[0][0] != 1 || buf[1][0] != 2 {
		t.Errorf("pulled %v, %v; want 1, 2", buf[0][0], buf[1][0])
	}
	if c.Pos() != 2 {
		t.Errorf("Pos = %d, want 2", c.Pos())
	}

	if n := c.Pull(buf); n != 1 {
		t.Errorf("second Pull = %d, want 1", n)
	}
	if n := c.Pull(buf); n != 0 {
		t.Errorf("exhausted Pull = %d, want 0", n)
	}

	c.Rewind()
	if c.Pos() != 0 {
		t.Errorf("Pos after Rewind = %d, want 0", c.Pos())
	}
	if n := c.Pull(buf); n != 2 {
		t.Errorf("Pull after Rewind = %d, want 2", n)
	}
}

func TestClip_Empty(t *testing.T) {
	c := NewClip(nil)
	buf := make([][2]float64, 4)
	if n := c.Pull(buf); n != 0 {
		t.Errorf("Pull on empty clip = %d, want 0", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestOpener_DecodesWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeWAV(t, path, 44100, 1000)

	track, err := probe(path)
	if err != nil {
		t.Fatalf("probe returned error: %v", err)
	}

	open := Opener(track.Format())
	src, err := open(track)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if src.Len() != 1000 {
		t.Errorf("decoded %d frames, want 1000", src.Len())
	}

	// The fixture is a constant 0.25/-0.25 signal; 16-bit
	// quantization allows a small error.
	buf := make([][2]float64, 10)
	src.Pull(buf)
	for i, frame := range buf {
		if math.Abs(frame[0]-0.25) > 1e-3 || math.Abs(frame[1]+0.25) > 1e-3 {
			t.Fatalf("frame %d = %v, want ~{0.25, -0.25}", i, frame)
		}
	}
}

func TestOpener_RejectsFormatMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeWAV(t, path, 22050, 100)

	track, err := probe(path)
	if err != nil {
		t.Fatalf("probe returned error: %v", err)
	}

	open := Opener(beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	if _, err := open(track); err == nil {
		t.Fatal("expected error for a sample rate mismatch")
	}
}

func TestOpener_MissingFile(t *testing.T) {
	open := Opener(beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	_, err := open(Track{Path: filepath.Join(t.TempDir(), "gone.wav")})
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}
