// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version reports which avrokit build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	devVersion    = "dev"
	unknownCommit = "none"
	unknownDate   = "unknown"
	shortSHA      = 7
)

// Set with -ldflags "-X github.com/dacolabs/avrokit/internal/version.Version=...".
var (
	Version = devVersion
	Commit  = unknownCommit
	Date    = unknownDate
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		apply(info)
	}
}

// apply fills whatever ldflags left unset from the module build info, which
// is present for "go install module@version" and VCS builds.
func apply(info *debug.BuildInfo) {
	if Version == devVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == unknownCommit && len(s.Value) >= shortSHA {
				Commit = s.Value[:shortSHA]
			}
		case "vcs.time":
			if Date == unknownDate {
				Date = s.Value
			}
		}
	}
}

// Info is the one-line description printed by "avrokit version".
func Info() string {
	return fmt.Sprintf("avrokit version %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, runtime.Version())
}

// Short returns the bare version.
func Short() string {
	return Version
}
