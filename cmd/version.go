package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	name = strings.TrimSpace(name)

	short := "Print version"
	prefix := "version"

	if name != "" {
		short = "Print " + name + " version"
		prefix = name + " version"
	}

	return &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			hash, ts := versionHashAndTimestamp()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s from %s\n", prefix, hash, ts)
		},
	}
}

// versionHashAndTimestamp returns the last git hash and commit timestamp.
// A binary built from uncommitted code, or by `go run` or `go test`, reports @latest and the current time.
func versionHashAndTimestamp() (string, string) {
	var (
		hash, ts string
		modified bool
	)

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				hash = s.Value
			case "vcs.time":
				ts = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if modified || hash == "" {
		return "@latest", time.Now().UTC().Format(time.RFC3339)
	}

	return hash, ts
}
