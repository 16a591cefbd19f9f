// Package pipeline builds and runs the per-platform build stages.
package pipeline

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stage is one gated unit of a platform build.
type Stage interface {
	Name() string
	// IsStale reports whether Run has to be called.
	IsStale(ctx context.Context) (bool, error)
	Run(ctx context.Context) error
}

// StaleFunc decides whether a stage runs.
type StaleFunc func(ctx context.Context) (bool, error)

// Step is a Stage backed by functions.
type Step struct {
	StageName string
	// Stale defaults to Always when nil.
	Stale StaleFunc
	Do    func(ctx context.Context) error
	// Internal hides the step from the end-of-run stage summary.
	Internal bool
}

var _ Stage = (*Step)(nil)

// Name returns the stage name.
func (s *Step) Name() string { return s.StageName }

// IsStale evaluates the gate.
func (s *Step) IsStale(ctx context.Context) (bool, error) {
	if s.Stale == nil {
		return true, nil
	}
	return s.Stale(ctx)
}

// Run performs the step.
func (s *Step) Run(ctx context.Context) error {
	if s.Do == nil {
		return nil
	}
	return s.Do(ctx)
}

// Always is a gate that is always open.
func Always(context.Context) (bool, error) { return true, nil }

// When gates a stage on a precomputed decision.
func When(stale bool) StaleFunc {
	return func(context.Context) (bool, error) { return stale, nil }
}

// Missing gates a stage on the absence of path.
func Missing(path string) StaleFunc {
	return func(context.Context) (bool, error) {
		_, err := os.Stat(path)
		if err == nil {
			return false, nil
		}
		if errors.Is(err, iofs.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", path)
	}
}

// Either opens the gate when force is set, otherwise defers to gate.
func Either(force bool, gate StaleFunc) StaleFunc {
	return func(ctx context.Context) (bool, error) {
		if force {
			return true, nil
		}
		return gate(ctx)
	}
}

// Wipe returns an internal stage that removes root and recreates it with dirs below it.
func Wipe(name, root string, dirs ...string) *Step {
	return &Step{
		StageName: name,
		Stale:     Always,
		Internal:  true,
		Do: func(context.Context) error {
			if err := os.RemoveAll(root); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", root)
			}
			for _, dir := range append([]string{root}, dirs...) {
				if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
					return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
				}
			}
			return nil
		},
	}
}

// CopyFile copies src to dst, creating the parent directory of dst.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrCopyFailed, err), "src", src), "dst", dst)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrCopyFailed, err), "src", src), "dst", dst)
	}

	out, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrCopyFailed, err), "src", src), "dst", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.With(errors.Join(domain.ErrCopyFailed, err), "src", src), "dst", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrCopyFailed, err), "src", src), "dst", dst)
	}
	return nil
}
