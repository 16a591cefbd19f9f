// Package config loads the kiln.yaml project manifest.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ProjectLoader = (*FileProjectLoader)(nil)

// FileProjectLoader implements ports.ProjectLoader using a YAML file.
type FileProjectLoader struct {
	Filename string
}

// NewLoader creates a loader for kiln.yaml.
func NewLoader() *FileProjectLoader {
	return &FileProjectLoader{Filename: domain.ManifestFileName}
}

// Load discovers the manifest by walking up from cwd. Without a manifest the
// project is rooted at cwd with the default layout.
func (l *FileProjectLoader) Load(cwd string) (*domain.Project, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFailedToGetRoot, err.Error()), "cwd", cwd)
	}

	path, found := findManifest(absCwd, l.Filename)
	if !found {
		return withSelfBootstrap(domain.DefaultProject(absCwd)), nil
	}
	return Load(path)
}

// withSelfBootstrap rebuilds kiln after a clean when the project vendors its
// source and the manifest sets no bootstrap command.
func withSelfBootstrap(p *domain.Project) *domain.Project {
	if len(p.Bootstrap) > 0 {
		return p
	}
	if info, err := os.Stat(p.Path(domain.OrchestratorSource)); err == nil && info.IsDir() {
		p.Bootstrap = domain.SelfBootstrap()
	}
	return p
}

// findManifest returns the nearest manifest at or above dir.
func findManifest(dir, filename string) (string, bool) {
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the manifest at path and overlays it on the default layout rooted
// at the manifest's directory.
func Load(path string) (*domain.Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFailedToGetRoot, err.Error()), "path", path)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // path is discovered from cwd
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return withSelfBootstrap(domain.DefaultProject(filepath.Dir(absPath))), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectReadFailed, err.Error()), "path", absPath)
	}

	var manifest Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectParseFailed, err.Error()), "path", absPath)
	}

	project := domain.DefaultProject(filepath.Dir(absPath))
	project.ManifestPath = absPath
	manifest.apply(project)
	return withSelfBootstrap(project), nil
}

func (m *Manifest) apply(p *domain.Project) {
	setString(&p.BuildDir, m.BuildDir)
	setString(&p.SourceDir, m.SourceDir)
	setString(&p.MainSource, m.MainSource)
	setString(&p.IncludeDir, m.IncludeDir)
	setString(&p.Executable, m.Executable)
	setString(&p.SettingsEnv, m.SettingsEnv)
	if len(m.Bootstrap) > 0 {
		p.Bootstrap = append([]string(nil), m.Bootstrap...)
	}

	setString(&p.Dependency.Name, m.Dependency.Name)
	setString(&p.Dependency.Path, m.Dependency.Path)
	setInt(&p.Dependency.Jobs, m.Dependency.Jobs)

	setString(&p.MacOS.DeploymentTarget, m.MacOS.DeploymentTarget)

	a := m.Android
	setInt(&p.Android.API, a.API)
	setString(&p.Android.ABI, a.ABI)
	setString(&p.Android.BuildTools, a.BuildTools)
	setString(&p.Android.Manifest, a.Manifest)
	setString(&p.Android.Activity, a.Activity)
	setString(&p.Android.JavaSources, a.JavaSources)
	setString(&p.Android.Package, a.Package)
	setString(&p.Android.KeystorePass, a.KeystorePass)
	setInt(&p.Android.VersionCode, a.VersionCode)
	setString(&p.Android.VersionName, a.VersionName)

	i := m.IOS
	setString(&p.IOS.Bundle, i.Bundle)
	setString(&p.IOS.Binary, i.Binary)
	setString(&p.IOS.BundleID, i.BundleID)
	setString(&p.IOS.Arch, i.Arch)
	setString(&p.IOS.InfoPlist, i.InfoPlist)
	setString(&p.IOS.LaunchScreen, i.LaunchScreen)
	setString(&p.IOS.Profile, i.Profile)
	setString(&p.IOS.DeveloperNameFile, i.DeveloperNameFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
