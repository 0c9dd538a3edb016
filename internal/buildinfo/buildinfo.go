// Package buildinfo reports the version stamped into the binary.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/marmota/failboard/internal/buildinfo.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

type Info struct {
	Version string
	Date    string
	Commit  string
}

// Read returns the stamped values. Missing ones fall back to the module
// build info, then to "N/A".
func Read() Info {
	info := Info{Version: buildVersion, Date: buildDate, Commit: buildCommit}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			}
		}
	}

	info.Version = orNA(info.Version)
	info.Date = orNA(info.Date)
	info.Commit = orNA(info.Commit)
	return info
}

func PrintBuildData(w io.Writer) {
	info := Read()
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
