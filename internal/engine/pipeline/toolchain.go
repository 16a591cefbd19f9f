package pipeline

import (
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	hostDarwin  = "darwin"
	hostLinux   = "linux"
	hostWindows = "windows"
)

var commonAppleFrameworks = []string{
	"AudioToolbox", "AVFoundation", "CoreAudio", "CoreFoundation", "CoreGraphics",
	"CoreHaptics", "CoreMedia", "CoreServices", "CoreVideo", "GameController",
	"IOKit", "Metal", "QuartzCore", "Security", "SystemConfiguration",
	"UniformTypeIdentifiers",
}

var iosFrameworks = []string{"CoreBluetooth", "CoreMotion", "UIKit", "OpenGLES", "Foundation"}

var macOSFrameworks = []string{"AppKit", "AudioUnit", "Carbon", "Cocoa", "ForceFeedback", "GLUT", "OpenGL"}

// compilerCommand returns the desktop compiler for cfg.
func compilerCommand(cfg domain.Config, hostOS string) string {
	if hostOS == hostWindows {
		return "cl"
	}
	return cfg.Compiler.String()
}

// defaultFlags are the optimization and target flags shared by every compile.
func defaultFlags(cfg domain.Config, project *domain.Project, hostOS string) []string {
	var flags []string
	if cfg.Platform == domain.PlatformNative {
		flags = append(flags, "-march=native")
	}

	if cfg.Optimize {
		flags = append(flags, "-O3")
	} else {
		flags = append(flags, "-O0", "-g")
		if cfg.Compiler == domain.CompilerClang {
			flags = append(flags, "-fno-limit-debug-info")
		}
	}

	if cfg.Compiler == domain.CompilerClang {
		flags = append(flags, "-fconstant-cfstrings")
	}
	if hostOS == hostDarwin && cfg.Platform == domain.PlatformNative {
		flags = append(flags, "-mmacosx-version-min="+project.MacOS.DeploymentTarget)
	}
	return flags
}

func includeFlags(project *domain.Project) []string {
	return []string{"-isystem", project.Path(project.IncludeDir), project.DependencyInclude()}
}

// frameworkFlags links the system libraries the dependency needs.
func frameworkFlags(platform domain.Platform, hostOS string) []string {
	if hostOS != hostDarwin {
		return []string{"-lm", "-lpthread", "-lz", "-lpng", "-lbz2"}
	}

	var names []string
	if platform == domain.PlatformIOS {
		names = append(names, iosFrameworks...)
	} else {
		names = append(names, macOSFrameworks...)
	}
	names = append(names, commonAppleFrameworks...)

	flags := make([]string, 0, 2*len(names)+3)
	for _, name := range names {
		flags = append(flags, "-framework", name)
	}
	return append(flags, "-L/opt/homebrew/lib", "-lbz2", "-lz")
}

// archiveFlags links the whole static dependency archive into the executable.
func archiveFlags(archive, hostOS string) []string {
	if hostOS == hostLinux {
		return []string{"-Wl,--whole-archive," + archive, "-Wl,--no-whole-archive"}
	}
	return []string{"-Wl,-force_load," + archive}
}

// ndkHostTag names the prebuilt NDK toolchain directory for hostOS.
func ndkHostTag(hostOS string) (string, error) {
	switch hostOS {
	case hostLinux:
		return "linux-x86_64", nil
	case hostDarwin:
		return "darwin-x86_64", nil
	case hostWindows:
		return "windows-x86_64", nil
	default:
		return "", zerr.With(zerr.New("unsupported host for Android builds"), "host", hostOS)
	}
}

// ndkTriple maps an Android ABI to the clang target prefix.
func ndkTriple(abi string) (string, error) {
	switch abi {
	case "arm64-v8a":
		return "aarch64-linux-android", nil
	case "armeabi-v7a":
		return "armv7a-linux-androideabi", nil
	case "x86_64":
		return "x86_64-linux-android", nil
	case "x86":
		return "i686-linux-android", nil
	default:
		return "", zerr.With(zerr.New("unsupported Android ABI"), "abi", abi)
	}
}
