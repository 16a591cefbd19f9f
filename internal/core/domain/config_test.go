package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.Config
		hostOS  string
		wantErr bool
	}{
		{
			name:   "native default",
			cfg:    domain.Config{},
			hostOS: "linux",
		},
		{
			name:   "native forced gcc optimized",
			cfg:    domain.Config{Compiler: domain.CompilerGCC, Optimize: true, ForceRebuild: true},
			hostOS: "linux",
		},
		{
			name:    "device on native",
			cfg:     domain.Config{Device: true},
			hostOS:  "linux",
			wantErr: true,
		},
		{
			name:   "android device",
			cfg:    domain.Config{Platform: domain.PlatformAndroid, Device: true},
			hostOS: "linux",
		},
		{
			name:    "android forced",
			cfg:     domain.Config{Platform: domain.PlatformAndroid, ForceRebuild: true},
			hostOS:  "linux",
			wantErr: true,
		},
		{
			name:    "android gcc",
			cfg:     domain.Config{Platform: domain.PlatformAndroid, Compiler: domain.CompilerGCC},
			hostOS:  "linux",
			wantErr: true,
		},
		{
			name:    "android explicit clang",
			cfg:     domain.Config{Platform: domain.PlatformAndroid, CompilerChosen: true},
			hostOS:  "linux",
			wantErr: true,
		},
		{
			name:   "native explicit gcc",
			cfg:    domain.Config{Compiler: domain.CompilerGCC, CompilerChosen: true},
			hostOS: "linux",
		},
		{
			name:    "ios on linux",
			cfg:     domain.Config{Platform: domain.PlatformIOS},
			hostOS:  "linux",
			wantErr: true,
		},
		{
			name:   "ios device on darwin",
			cfg:    domain.Config{Platform: domain.PlatformIOS, Device: true},
			hostOS: "darwin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.hostOS)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
		})
	}
}

func TestConfig_SameRebuildFields(t *testing.T) {
	cfg := domain.Config{Compiler: domain.CompilerGCC, Optimize: true, Platform: domain.PlatformAndroid}

	assert.False(t, cfg.SameRebuildFields(nil))

	partial := &domain.PersistedConfig{Compiler: domain.CompilerGCC}
	partial.Mark(domain.KeyCompiler)
	assert.False(t, cfg.SameRebuildFields(partial), "missing optimize key counts as changed")

	same := &domain.PersistedConfig{Compiler: domain.CompilerGCC, Optimize: true}
	same.Mark(domain.KeyCompiler)
	same.Mark(domain.KeyOptimize)
	assert.True(t, cfg.SameRebuildFields(same), "platform does not affect staleness")

	flipped := &domain.PersistedConfig{Compiler: domain.CompilerGCC}
	flipped.Mark(domain.KeyCompiler)
	flipped.Mark(domain.KeyOptimize)
	assert.False(t, cfg.SameRebuildFields(flipped))
}

func TestConfig_String(t *testing.T) {
	cfg := domain.Config{Compiler: domain.CompilerGCC, Optimize: true, Platform: domain.PlatformIOS, Device: true}
	assert.Equal(t, "Compiler: gcc. Optimize=1. Platform=iOS. Device=1.", cfg.String())
}

func TestFileSet_Sorted(t *testing.T) {
	set := domain.FileSet{"src/b.c", "src/a.h", "kiln.yaml"}
	sorted := set.Sorted()

	assert.Equal(t, domain.FileSet{"kiln.yaml", "src/a.h", "src/b.c"}, sorted)
	assert.Equal(t, "src/b.c", set[0], "Sorted must not modify the receiver")
}

func TestHasExtension(t *testing.T) {
	match := domain.HasExtension(".c", ".h")

	assert.True(t, match("src/main.c"))
	assert.True(t, match("include/app.h"))
	assert.False(t, match("src/main.cpp"))
	assert.False(t, match(".c"))
}

func TestExternalToolError(t *testing.T) {
	cause := errors.New("exit status 2")
	err := &domain.ExternalToolError{Tool: "cmake", ExitCode: 2, Cause: cause}

	assert.Equal(t, "cmake exited with code 2", err.Error())
	assert.True(t, errors.Is(err, domain.ErrExternalTool))
	assert.True(t, errors.Is(err, cause))

	var target *domain.ExternalToolError
	wrapped := errors.Join(domain.ErrStageFailed, err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 2, target.ExitCode)
}

func TestProject_Paths(t *testing.T) {
	p := domain.DefaultProject("/work")

	assert.Equal(t, "/work/build/.config", p.StatePath())
	assert.Equal(t, "/work/main.app", p.NativeExecutable())
	assert.Equal(t, "/work/build/libsdl3_iphoneos.a", p.IOSDependencyArchive(true))
	assert.Equal(t, "/work/build/libsdl3_iphonesimulator.a", p.IOSDependencyArchive(false))
	assert.Equal(t, "/work/build/android/apk/lib/arm64-v8a", p.AndroidLibDir())
	assert.Equal(t, "/work/build/ios/Player.app/Player", p.IOSBinary())
	assert.Equal(t, "-I/work/lib/SDL-3.2.16/include", p.DependencyInclude())
}
