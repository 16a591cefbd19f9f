package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestDefaultFlags(t *testing.T) {
	project := domain.DefaultProject("/work")

	tests := []struct {
		name   string
		cfg    domain.Config
		hostOS string
		want   []string
	}{
		{
			name:   "native clang debug on linux",
			cfg:    domain.Config{},
			hostOS: "linux",
			want:   []string{"-march=native", "-O0", "-g", "-fno-limit-debug-info", "-fconstant-cfstrings"},
		},
		{
			name:   "native gcc debug",
			cfg:    domain.Config{Compiler: domain.CompilerGCC},
			hostOS: "linux",
			want:   []string{"-march=native", "-O0", "-g"},
		},
		{
			name:   "native clang optimized on darwin",
			cfg:    domain.Config{Optimize: true},
			hostOS: "darwin",
			want:   []string{"-march=native", "-O3", "-fconstant-cfstrings", "-mmacosx-version-min=11.0"},
		},
		{
			name:   "ios optimized",
			cfg:    domain.Config{Platform: domain.PlatformIOS, Optimize: true},
			hostOS: "darwin",
			want:   []string{"-O3", "-fconstant-cfstrings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultFlags(tt.cfg, project, tt.hostOS))
		})
	}
}

func TestCompilerCommand(t *testing.T) {
	assert.Equal(t, "clang", compilerCommand(domain.Config{}, "linux"))
	assert.Equal(t, "gcc", compilerCommand(domain.Config{Compiler: domain.CompilerGCC}, "darwin"))
	assert.Equal(t, "cl", compilerCommand(domain.Config{}, "windows"))
}

func TestFrameworkFlags(t *testing.T) {
	assert.Equal(t, []string{"-lm", "-lpthread", "-lz", "-lpng", "-lbz2"}, frameworkFlags(domain.PlatformNative, "linux"))

	mac := frameworkFlags(domain.PlatformNative, "darwin")
	assert.Equal(t, []string{"-framework", "AppKit"}, mac[:2])
	assert.NotContains(t, mac, "UIKit")
	assert.Equal(t, []string{"-L/opt/homebrew/lib", "-lbz2", "-lz"}, mac[len(mac)-3:])

	ios := frameworkFlags(domain.PlatformIOS, "darwin")
	assert.Equal(t, []string{"-framework", "CoreBluetooth"}, ios[:2])
	assert.Contains(t, ios, "UIKit")
	assert.NotContains(t, ios, "AppKit")
}

func TestArchiveFlags(t *testing.T) {
	assert.Equal(t, []string{"-Wl,--whole-archive,/b/lib.a", "-Wl,--no-whole-archive"}, archiveFlags("/b/lib.a", "linux"))
	assert.Equal(t, []string{"-Wl,-force_load,/b/lib.a"}, archiveFlags("/b/lib.a", "darwin"))
}

func TestNDKNames(t *testing.T) {
	host, err := ndkHostTag("darwin")
	require.NoError(t, err)
	assert.Equal(t, "darwin-x86_64", host)

	_, err = ndkHostTag("plan9")
	require.Error(t, err)

	triple, err := ndkTriple("arm64-v8a")
	require.NoError(t, err)
	assert.Equal(t, "aarch64-linux-android", triple)

	_, err = ndkTriple("mips")
	require.Error(t, err)
}

func TestJobsFlag(t *testing.T) {
	project := domain.DefaultProject("/work")
	project.Dependency.Jobs = 3
	assert.Equal(t, "-j3", jobsFlag(project))
}
