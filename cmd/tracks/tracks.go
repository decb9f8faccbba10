package tracks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/wavebox/wavebox/cmd/common"
	"github.com/wavebox/wavebox/cmd/player"
)

type Params struct {
	Dir  string `pos:"true" help:"Directory to scan for WAV files"`
	JSON bool   `long:"json" help:"Output as JSON"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "tracks",
		Aliases:     []string{"ls"},
		Short:       "List the WAV files the play command would queue",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := runTracks(params, os.Stdout, os.Stderr)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
		},
	}.ToCobra()
}

func runTracks(params *Params, stdout, stderr io.Writer) int {
	playlist, err := player.Scan(params.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "tracks: %v\n", err)
		return 1
	}

	if params.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(playlist); err != nil {
			fmt.Fprintf(stderr, "tracks: %v\n", err)
			return 1
		}
		return 0
	}

	renderTable(playlist, params.Dir, stdout)
	return 0
}

func renderTable(playlist player.Playlist, dir string, stdout io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(common.TerminalWidth())

	t.AppendHeader(table.Row{"#", "File", "Rate", "Ch", "Duration"})

	for i, track := range playlist {
		name := track.Path
		if rel, err := filepath.Rel(dir, track.Path); err == nil {
			name = rel
		}
		t.AppendRow(table.Row{
			i + 1,
			name,
			fmt.Sprintf("%d Hz", track.SampleRate),
			track.NumChannels,
			common.FormatTrackTime(track.Duration()),
		})
	}

	total := lo.SumBy(playlist, func(tr player.Track) time.Duration {
		return tr.Duration()
	})
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tracks", len(playlist)), "", "", common.FormatTrackTime(total)})

	t.Render()
}
