package pipeline

import (
	"context"
	"path/filepath"
	"strconv"

	"go.trai.ch/kiln/internal/core/domain"
)

// dependencyStage builds the vendored cmake library and copies one artifact
// out of its build tree. It only runs when the artifact is missing or force is set.
type dependencyStage struct {
	b         *Builder
	project   *domain.Project
	force     bool
	configure []string
	parallel  bool
	output    string
	artifact  string
	// check fails the stage before any command runs.
	check func() error
}

func (s *dependencyStage) Name() string { return "dependency:" + s.project.Dependency.Name }

func (s *dependencyStage) IsStale(ctx context.Context) (bool, error) {
	return Either(s.force, Missing(s.artifact))(ctx)
}

func (s *dependencyStage) Run(ctx context.Context) error {
	if s.check != nil {
		if err := s.check(); err != nil {
			return err
		}
	}

	dir := s.project.DependencyDir()
	if err := s.b.exec(ctx, domain.NewCommand("git", "clean", "-fdx", "build").In(dir)); err != nil {
		return err
	}

	configure := append([]string{"-B", "build"}, s.configure...)
	if err := s.b.exec(ctx, domain.NewCommand("cmake", configure...).In(dir)); err != nil {
		return err
	}

	build := []string{"--build", "build"}
	if s.parallel {
		build = append(build, jobsFlag(s.project))
	}
	if err := s.b.exec(ctx, domain.NewCommand("cmake", build...).In(dir)); err != nil {
		return err
	}

	return CopyFile(filepath.Join(s.project.DependencyBuildDir(), s.output), s.artifact, domain.FilePerm)
}

// NativeDependency builds the static desktop archive.
func (b *Builder) NativeDependency(project *domain.Project, force bool) Stage {
	configure := []string{"-DBUILD_SHARED_LIBS=OFF", "-DCMAKE_POSITION_INDEPENDENT_CODE=ON"}
	if b.hostOS == hostDarwin {
		configure = append(configure, "-DCMAKE_OSX_DEPLOYMENT_TARGET="+project.MacOS.DeploymentTarget)
	}

	output := "libSDL3.a"
	if b.hostOS == hostWindows {
		output = filepath.Join("Debug", "SDL3-static.lib")
	}

	return &dependencyStage{
		b:         b,
		project:   project,
		force:     force,
		configure: configure,
		parallel:  true,
		output:    output,
		artifact:  project.NativeDependencyArchive(),
	}
}

func (b *Builder) androidDependency(project *domain.Project, env domain.Environment) Stage {
	return &dependencyStage{
		b:       b,
		project: project,
		configure: []string{
			"-DCMAKE_TOOLCHAIN_FILE=" + filepath.Join(env.AndroidNDKLocation, "build", "cmake", "android.toolchain.cmake"),
			"-DANDROID_PLATFORM=" + strconv.Itoa(project.Android.API),
			"-DANDROID_ABI=" + project.Android.ABI,
			"-DSDL_SHARED=ON",
			"-DSDL_STATIC=OFF",
			"-DCMAKE_POSITION_INDEPENDENT_CODE=ON",
		},
		parallel: true,
		output:   "libSDL3.so",
		artifact: project.AndroidDependencyLibrary(),
		check: func() error {
			if err := requireSetting(env.AndroidNDKLocation, domain.EnvAndroidNDKLocation); err != nil {
				return err
			}
			return requireSetting(env.AndroidSDKLocation, domain.EnvAndroidSDKLocation)
		},
	}
}

func (b *Builder) iosDependency(project *domain.Project, device bool) Stage {
	return &dependencyStage{
		b:       b,
		project: project,
		configure: []string{
			"-DCMAKE_SYSTEM_NAME=iOS",
			"-DCMAKE_OSX_ARCHITECTURES=x86_64;arm64",
			"-DCMAKE_OSX_SYSROOT=" + domain.IOSSDKName(device),
			"-DSDL_SHARED=OFF",
			"-DSDL_STATIC=ON",
		},
		output:   "libSDL3.a",
		artifact: project.IOSDependencyArchive(device),
	}
}
