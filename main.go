package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
	"github.com/wavebox/wavebox/cmd/play"
	"github.com/wavebox/wavebox/cmd/tracks"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "wavebox",
		Short:   "Play directories of WAV files from the terminal",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			tracks.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
