// Package state persists the configuration of the last successful build.
package state

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigStore = (*Store)(nil)

// Store implements ports.ConfigStore as a flat key=integer file.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the file at path. Parsing stops at the first line that is not a known
// key with an integer value; keys read before that are kept.
func (s *Store) Load(path string) (*domain.PersistedConfig, error) {
	//nolint:gosec // Path is derived from the project layout
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", path)
	}

	cfg := &domain.PersistedConfig{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || !apply(cfg, key, value) {
			break
		}
	}

	if cfg.Len() == 0 {
		return nil, nil
	}
	return cfg, nil
}

// apply sets one field and reports whether the line was understood.
func apply(cfg *domain.PersistedConfig, key, value string) bool {
	if key == domain.KeyInputs {
		digest, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return false
		}
		cfg.InputsDigest = digest
		cfg.Mark(key)
		return true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}

	switch key {
	case domain.KeyCompiler:
		if n != int(domain.CompilerClang) && n != int(domain.CompilerGCC) {
			return false
		}
		cfg.Compiler = domain.Compiler(n)
	case domain.KeyOptimize:
		cfg.Optimize = n != 0
	case domain.KeyPlatform:
		if n < int(domain.PlatformNative) || n > int(domain.PlatformIOS) {
			return false
		}
		cfg.Platform = domain.Platform(n)
	case domain.KeyDevice:
		cfg.Device = n != 0
	default:
		return false
	}

	cfg.Mark(key)
	return true
}

// Save overwrites the file at path, creating its directory if needed.
func (s *Store) Save(path string, cfg domain.Config, inputsDigest uint64) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%d\n", domain.KeyCompiler, int(cfg.Compiler))
	fmt.Fprintf(&buf, "%s=%d\n", domain.KeyOptimize, boolInt(cfg.Optimize))
	fmt.Fprintf(&buf, "%s=%d\n", domain.KeyPlatform, int(cfg.Platform))
	fmt.Fprintf(&buf, "%s=%d\n", domain.KeyDevice, boolInt(cfg.Device))
	fmt.Fprintf(&buf, "%s=%d\n", domain.KeyInputs, inputsDigest)

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", path)
	}

	//nolint:gosec // Path is derived from the project layout
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", path)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
