package fs

import (
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter digests input set membership with XXHash.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Digest hashes the sorted paths of files. File contents are not read.
func (f *Fingerprinter) Digest(files domain.FileSet) uint64 {
	hasher := xxhash.New()
	for _, path := range files.Sorted() {
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0})
	}
	return hasher.Sum64()
}
