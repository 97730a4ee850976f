package study

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"
)

// Load returns Default() when path is empty and the parsed file otherwise.
func Load(path string) (Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}

	return ParseJSONConfigFromPath(path)
}

// ParseJSONConfigFromPath reads a configuration file on top of Default():
// fields missing from the file keep their default values. The file may use
// comments and trailing commas.
func ParseJSONConfigFromPath(path string) (Config, error) {
	out := Default()
	out.ConfigPath = path

	// json.Unmarshal merges into existing maps, so maps start empty and only
	// fall back to their defaults when the file leaves them out.
	defaults := out
	out.Labels = nil
	out.AnomalousIndices = nil

	raw, err := os.ReadFile(expandHomeDir(path))
	if err != nil {
		return out, pfx.Err(err)
	}

	standard, err := hujson.Standardize(raw)
	if err != nil {
		return out, pfx.Err(err)
	}

	// Slices are replaced wholesale, so a file that lists groups fully
	// redefines them.
	if err := json.Unmarshal(standard, &out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	if out.Labels == nil {
		out.Labels = defaults.Labels
	}
	if out.AnomalousIndices == nil {
		out.AnomalousIndices = defaults.AnomalousIndices
	}

	// Internally, go uses lower case for all colors, so we will too (while
	// permitting the user to use mixed case)
	for k, v := range out.Labels {
		v.Color = strings.ToLower(v.Color)
		out.Labels[k] = v
	}

	// Interpret ~ if present
	out.ConfigPath = expandHomeDir(out.ConfigPath)
	out.DatasetPath = expandHomeDir(out.DatasetPath)
	out.PatternPath = expandHomeDir(out.PatternPath)
	out.OutputPath = expandHomeDir(out.OutputPath)

	return out, out.Validate()
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {

	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		// In case of "~", which won't be caught by the "else if"
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(dir, path[2:])
	}

	return path
}
