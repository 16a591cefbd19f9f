package domain

import (
	"fmt"
	"path/filepath"
)

// Project describes the layout of the application being built.
// All relative paths are resolved against Root.
type Project struct {
	Root         string
	ManifestPath string

	BuildDir    string
	SourceDir   string
	MainSource  string
	IncludeDir  string
	Executable  string
	SettingsEnv string
	// Bootstrap rebuilds the orchestrator after a clean. Empty disables it.
	Bootstrap []string

	Dependency Dependency
	MacOS      MacOS
	Android    Android
	IOS        IOS
}

// Dependency is the vendored native library built with cmake.
type Dependency struct {
	Name string
	Path string
	// Jobs is the parallelism passed to the dependency build. Zero means one per CPU.
	Jobs int
}

// MacOS holds desktop settings for darwin hosts.
type MacOS struct {
	DeploymentTarget string
}

// Android holds the Android packaging settings.
type Android struct {
	API          int
	ABI          string
	BuildTools   string
	Manifest     string
	Activity     string
	JavaSources  string
	Package      string
	KeystorePass string
	VersionCode  int
	VersionName  string
}

// IOS holds the iOS bundle settings.
type IOS struct {
	Bundle            string
	Binary            string
	BundleID          string
	Arch              string
	InfoPlist         string
	LaunchScreen      string
	Profile           string
	DeveloperNameFile string
}

// DefaultProject returns the project layout used when no manifest is present.
func DefaultProject(root string) *Project {
	return &Project{
		Root:        root,
		BuildDir:    "build",
		SourceDir:   "src",
		MainSource:  "src/main.c",
		IncludeDir:  "include",
		Executable:  "main.app",
		SettingsEnv: "env/local.env",
		Dependency: Dependency{
			Name: "SDL3",
			Path: "lib/SDL-3.2.16",
		},
		MacOS: MacOS{DeploymentTarget: "11.0"},
		Android: Android{
			API:          34,
			ABI:          "arm64-v8a",
			BuildTools:   "34.0.0",
			Manifest:     "android/AndroidManifest.xml",
			Activity:     "android/MainActivity.java",
			JavaSources:  "android-project/app/src/main/java/org/libsdl/app",
			Package:      "com.ysoftware",
			KeystorePass: "android",
			VersionCode:  1,
			VersionName:  "1.0",
		},
		IOS: IOS{
			Bundle:            "Player.app",
			Binary:            "Player",
			BundleID:          "com.ysoftware.player",
			Arch:              "arm64",
			InfoPlist:         "ios/Info.plist",
			LaunchScreen:      "ios/LaunchScreen.xib",
			Profile:           "env/profile.mobileprovision",
			DeveloperNameFile: "env/developer_name.txt",
		},
	}
}

// Path resolves a project-relative path.
func (p *Project) Path(rel ...string) string {
	parts := append([]string{p.Root}, rel...)
	return filepath.Join(parts...)
}

// BuildPath resolves a path inside the build directory.
func (p *Project) BuildPath(rel ...string) string {
	parts := append([]string{p.Root, p.BuildDir}, rel...)
	return filepath.Join(parts...)
}

// StatePath is the persisted configuration file.
func (p *Project) StatePath() string { return p.BuildPath(".config") }

// NativeExecutable is the desktop build artifact.
func (p *Project) NativeExecutable() string { return p.Path(p.Executable) }

// DependencyDir is the source tree of the vendored library.
func (p *Project) DependencyDir() string { return p.Path(p.Dependency.Path) }

// DependencyBuildDir is the dependency's own cmake build directory.
func (p *Project) DependencyBuildDir() string { return p.Path(p.Dependency.Path, "build") }

// DependencyInclude is the include flag for the vendored library headers.
func (p *Project) DependencyInclude() string {
	return "-I" + p.Path(p.Dependency.Path, "include")
}

// NativeDependencyArchive is the static library linked into desktop builds.
func (p *Project) NativeDependencyArchive() string {
	return p.BuildPath("libsdl3_native.a")
}

// AndroidDependencyLibrary is the shared library packaged into the APK.
func (p *Project) AndroidDependencyLibrary() string {
	return p.BuildPath("libsdl3_android.so")
}

// IOSSDKName returns the Apple SDK for the simulator or device variant.
func IOSSDKName(device bool) string {
	if device {
		return "iphoneos"
	}
	return "iphonesimulator"
}

// IOSDependencyArchive is the per-variant static library for iOS builds.
func (p *Project) IOSDependencyArchive(device bool) string {
	return p.BuildPath(fmt.Sprintf("libsdl3_%s.a", IOSSDKName(device)))
}

// AndroidKeystore survives the Android output wipe.
func (p *Project) AndroidKeystore() string { return p.BuildPath("keystore_android.keystore") }

// AndroidBuildDir is wiped on every Android build.
func (p *Project) AndroidBuildDir() string { return p.BuildPath("android") }

// AndroidAPKDir is the staging tree zipped into the package.
func (p *Project) AndroidAPKDir() string { return p.BuildPath("android", "apk") }

// AndroidLibDir holds the native libraries for the target ABI.
func (p *Project) AndroidLibDir() string {
	return p.BuildPath("android", "apk", "lib", p.Android.ABI)
}

// AndroidPackage is the signed APK.
func (p *Project) AndroidPackage() string { return p.BuildPath("android", "app.apk") }

// IOSBuildDir is wiped on every iOS build.
func (p *Project) IOSBuildDir() string { return p.BuildPath("ios") }

// IOSBundle is the app bundle directory.
func (p *Project) IOSBundle() string { return p.BuildPath("ios", p.IOS.Bundle) }

// IOSBinary is the executable inside the bundle.
func (p *Project) IOSBinary() string { return p.BuildPath("ios", p.IOS.Bundle, p.IOS.Binary) }

// LaunchScreenNib is the compiled layout cached outside the wiped directory.
func (p *Project) LaunchScreenNib() string { return p.BuildPath("LaunchScreen.nib") }
