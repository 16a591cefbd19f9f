package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileCollector = (*Collector)(nil)

// Collector implements ports.FileCollector on top of Walker.
type Collector struct {
	walker *Walker
}

// NewCollector creates a new Collector.
func NewCollector(walker *Walker) *Collector {
	return &Collector{walker: walker}
}

// Collect returns the regular files below root accepted by match, in walk order.
func (c *Collector) Collect(root string, match func(path string) bool) (domain.FileSet, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.FileSet{}, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", root)
	}

	files := domain.FileSet{}
	for path, err := range c.walker.WalkFiles(root) {
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrWalkFailed, err), "root", root)
		}
		if match == nil || match(path) {
			files = append(files, path)
		}
	}
	return files, nil
}
