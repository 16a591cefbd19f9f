package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*Staleness)(nil)

const defaultMTimeCacheSize = 4096

// Staleness compares modification times of a target against its inputs.
// Input mtimes are memoized for the lifetime of the checker; the target is always stat'ed.
type Staleness struct {
	mtimes *lru.Cache[string, time.Time]
}

// NewStaleness creates a new Staleness checker.
func NewStaleness() *Staleness {
	cache, err := lru.New[string, time.Time](defaultMTimeCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Staleness{mtimes: cache}
}

// NeedsRebuild reports whether target is missing or any input is strictly newer than it.
func (s *Staleness) NeedsRebuild(target string, inputs domain.FileSet) (bool, error) {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", target)
	}
	targetTime := info.ModTime()

	for _, input := range inputs {
		mtime, err := s.modTime(input)
		if err != nil {
			return false, err
		}
		if mtime.After(targetTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Staleness) modTime(path string) (time.Time, error) {
	if t, ok := s.mtimes.Get(path); ok {
		return t, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", path)
	}

	t := info.ModTime()
	s.mtimes.Add(path, t)
	return t, nil
}
