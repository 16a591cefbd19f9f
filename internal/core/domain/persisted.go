package domain

// Keys of the persisted configuration file, in write order.
const (
	KeyCompiler = "compiler"
	KeyOptimize = "optimize"
	KeyPlatform = "platform"
	KeyDevice   = "device"
	KeyInputs   = "inputs"
)

// PersistedKeys lists the keys in the order they are written.
var PersistedKeys = []string{KeyCompiler, KeyOptimize, KeyPlatform, KeyDevice, KeyInputs}

// PersistedConfig is the on-disk projection of the last successful build.
// Only the keys recorded in Keys were present in the file.
type PersistedConfig struct {
	Compiler     Compiler
	Optimize     bool
	Platform     Platform
	Device       bool
	InputsDigest uint64

	keys map[string]struct{}
}

// Has reports whether key was read from the file.
func (p *PersistedConfig) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.keys[key]
	return ok
}

// Mark records that key was read.
func (p *PersistedConfig) Mark(key string) {
	if p.keys == nil {
		p.keys = make(map[string]struct{}, len(PersistedKeys))
	}
	p.keys[key] = struct{}{}
}

// Len returns the number of keys read.
func (p *PersistedConfig) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}
