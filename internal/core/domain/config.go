package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Compiler selects the C toolchain used for desktop builds.
type Compiler int

const (
	// CompilerClang is the default toolchain.
	CompilerClang Compiler = 0
	// CompilerGCC is only valid for native builds.
	CompilerGCC Compiler = 1
)

// String returns the executable name of the compiler.
func (c Compiler) String() string {
	if c == CompilerGCC {
		return "gcc"
	}
	return "clang"
}

// Platform selects the pipeline variant.
type Platform int

const (
	// PlatformNative builds a desktop executable for the host.
	PlatformNative Platform = 0
	// PlatformAndroid builds a signed APK.
	PlatformAndroid Platform = 1
	// PlatformIOS builds an app bundle for the simulator or a device.
	PlatformIOS Platform = 2
)

// String returns the human-readable platform name.
func (p Platform) String() string {
	switch p {
	case PlatformNative:
		return "Native"
	case PlatformAndroid:
		return "Android"
	case PlatformIOS:
		return "iOS"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// IsMobile reports whether the platform always does a clean build.
func (p Platform) IsMobile() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Config is the set of options for a single build invocation.
type Config struct {
	Compiler       Compiler
	// CompilerChosen records that the compiler was picked explicitly.
	CompilerChosen bool
	Platform       Platform
	Optimize       bool
	ForceRebuild   bool
	ShouldRun      bool
	Device         bool
}

// Validate rejects flag combinations that make no sense for the selected platform.
// hostOS is a runtime.GOOS value.
func (c Config) Validate(hostOS string) error {
	if c.Platform == PlatformIOS && hostOS != "darwin" {
		return zerr.Wrap(ErrInvalidConfig, "macOS is required to build an app for iOS")
	}

	if c.Platform.IsMobile() {
		if c.ForceRebuild {
			return zerr.Wrap(ErrInvalidConfig,
				"force rebuild makes no sense on iOS or Android, mobile platforms always do a clean build")
		}
		if c.CompilerChosen || c.Compiler != CompilerClang {
			return zerr.Wrap(ErrInvalidConfig,
				"compiler flag is not supported on iOS or Android, the toolchain is fixed there")
		}
		return nil
	}

	if c.Device {
		return zerr.Wrap(ErrInvalidConfig,
			"device flag is only supported with iOS or Android builds, remove it for a native build")
	}
	return nil
}

// SameRebuildFields reports whether the fields that invalidate a previous
// artifact are equal in both configurations.
func (c Config) SameRebuildFields(p *PersistedConfig) bool {
	if p == nil || !p.Has(KeyOptimize) || !p.Has(KeyCompiler) {
		return false
	}
	return c.Optimize == p.Optimize && c.Compiler == p.Compiler
}

// String renders the configuration for log output.
func (c Config) String() string {
	return fmt.Sprintf("Compiler: %s. Optimize=%d. Platform=%s. Device=%d.",
		c.Compiler, boolInt(c.Optimize), c.Platform, boolInt(c.Device))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
