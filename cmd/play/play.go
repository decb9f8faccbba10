package play

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/spf13/cobra"
	"github.com/wavebox/wavebox/cmd/common"
	"github.com/wavebox/wavebox/cmd/player"
	"golang.org/x/term"
)

type Params struct {
	Dir      string `pos:"true" help:"Directory containing WAV files to play"`
	BufferMs int    `short:"b" optional:"true" help:"Audio output buffer size in milliseconds (20-1000)" default:"100"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "play",
		Short: "Play all WAV files in a directory",
		Long: `Play all WAV files found in a directory (recursively), in
lexicographic order.

Controls:
  p            - Toggle play/pause
  j            - Previous track
  k            - Next track
  q or ESC     - Quit

The output stream format is taken from the first track; tracks with a
different sample rate or channel count are skipped with a warning.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runPlay(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runPlay(params *Params) error {
	playlist, err := player.Scan(params.Dir)
	if err != nil {
		return err
	}

	// The first track fixes the stream format for the whole session.
	format := playlist[0].Format()
	playlist = player.FilterFormat(playlist, format)
	slog.Info("catalog ready",
		"tracks", len(playlist),
		"sampleRate", format.SampleRate,
		"channels", format.NumChannels)

	engine, err := player.New(playlist, player.Opener(format))
	if err != nil {
		return fmt.Errorf("opening first track: %w", err)
	}
	defer engine.Close()

	bufferMs := min(max(params.BufferMs, 20), 1000)
	bufferLen := format.SampleRate.N(time.Duration(bufferMs) * time.Millisecond)
	if err := speaker.Init(format.SampleRate, bufferLen); err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	// Defers run in reverse: the output stream is torn down before
	// the engine releases its sources.
	defer speaker.Close()

	speaker.Play(engine)

	// Raw mode for unbuffered single-key input
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)
	defer fmt.Print("\r\033[2K")

	inputChan := make(chan byte, 16)
	go readInput(inputChan)

	dispatcher := player.NewDispatcher(engine)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	last := statusLine(engine.Status(), len(playlist))
	fmt.Print("\r\033[2K" + last)

	for {
		select {
		case key := <-inputChan:
			if !dispatcher.HandleKey(key) {
				return nil
			}
			engine.Preload()
		case <-ticker.C:
			engine.Preload()
		}

		if line := statusLine(engine.Status(), len(playlist)); line != last {
			fmt.Print("\r\033[2K" + line)
			last = line
		}
	}
}

func readInput(ch chan<- byte) {
	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		ch <- b
	}
}

func statusLine(st player.Status, total int) string {
	marker := "|>"
	if !st.Playing {
		marker = "||"
	}
	elapsed := st.Track.SampleRate.D(st.Pos)
	return fmt.Sprintf("%s (%d/%d) %s  %s / %s   [p]ause [j]prev [k]next [q]uit",
		marker,
		st.Index+1,
		total,
		st.Track.Name(),
		common.FormatTrackTime(elapsed),
		common.FormatTrackTime(st.Track.Duration()))
}
