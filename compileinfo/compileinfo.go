// Package compileinfo reports which build of an analysis command produced a
// set of figures, so that results can be traced back to a commit.
package compileinfo

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

type CompileInfo struct {
	Command    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return "No build information is embedded in this binary."
	}

	mod := ""
	if c.Modified {
		mod = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s %s built with %s from commit %v at %v%s", c.Command, c.Version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Fields is the build information as structured log fields.
func (c CompileInfo) Fields() log.Fields {
	return log.Fields{
		"command":  c.Command,
		"version":  c.Version,
		"go":       c.GoVersion,
		"commit":   c.Commit,
		"modified": c.Modified,
	}
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Command = z.Path
	out.Module = z.Main.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Log writes the build information to the standard logger, which prints to
// stderr.
func Log() {
	z := Get()
	log.WithFields(z.Fields()).Infoln(z)
}
