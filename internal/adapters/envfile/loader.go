// Package envfile loads the developer-local settings file.
package envfile

import (
	"bytes"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvironmentLoader = (*Loader)(nil)

// Loader implements ports.EnvironmentLoader using godotenv.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses KEY=value lines at path. Comments and blank lines are ignored.
func (l *Loader) Load(path string) (domain.Environment, error) {
	var env domain.Environment

	//nolint:gosec // Path is derived from the project layout
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return env, zerr.With(zerr.Wrap(domain.ErrEnvironment, err.Error()), "path", path)
	}

	values, err := godotenv.Parse(bytes.NewReader(literalValues(data)))
	if err != nil {
		return env, zerr.With(zerr.Wrap(domain.ErrEnvironment, err.Error()), "path", path)
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !env.Set(key, values[key]) {
			return domain.Environment{}, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrEnvironment, "unknown key in settings file: "+key), "path", path),
				"key", key)
		}
	}
	return env, nil
}

// literalValues drops lines with an empty key and single-quotes unquoted
// values, so a value is the rest of its line: a '#' or '$' in a path is kept.
func literalValues(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out = append(out, line)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			out = append(out, line)
			continue
		}
		if strings.TrimSpace(key) == "" {
			continue
		}

		value = strings.TrimSpace(value)
		if value != "" && !strings.HasPrefix(value, `"`) && !strings.HasPrefix(value, "'") &&
			!strings.Contains(value, "'") {
			value = "'" + value + "'"
		}
		out = append(out, key+"="+value)
	}
	return []byte(strings.Join(out, "\n"))
}
