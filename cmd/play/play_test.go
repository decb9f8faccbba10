package play

import (
	"strings"
	"testing"

	"github.com/wavebox/wavebox/cmd/player"
)

func TestStatusLine_Playing(t *testing.T) {
	st := player.Status{
		Index:   2,
		Track:   player.Track{Path: "/music/song.wav", SampleRate: 44100, NumChannels: 2, NumFrames: 44100 * 90},
		Playing: true,
		Pos:     44100 * 5,
	}

	line := statusLine(st, 12)
	for _, want := range []string{"|>", "(3/12)", "song", "0:05", "1:30"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line missing %q: %s", want, line)
		}
	}
}

func TestStatusLine_Paused(t *testing.T) {
	st := player.Status{
		Index:   0,
		Track:   player.Track{Path: "a.wav", SampleRate: 44100, NumFrames: 44100},
		Playing: false,
	}

	line := statusLine(st, 1)
	if !strings.Contains(line, "||") {
		t.Errorf("paused status line missing pause marker: %s", line)
	}
	if !strings.Contains(line, "(1/1)") {
		t.Errorf("status line missing track position: %s", line)
	}
}
