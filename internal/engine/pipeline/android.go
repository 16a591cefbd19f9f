package pipeline

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// androidBuild holds the paths of one Android packaging run.
type androidBuild struct {
	*Builder
	project *domain.Project
	env     domain.Environment
	cfg     domain.Config
}

func (b *Builder) androidStages(t Target) []Stage {
	a := &androidBuild{Builder: b, project: t.Project, env: t.Env, cfg: t.Config}
	p := t.Project

	return []Stage{
		Wipe(StageWipe, p.AndroidBuildDir(),
			a.path("java"),
			p.AndroidAPKDir(),
			filepath.Join(p.AndroidAPKDir(), "lib"),
			p.AndroidLibDir(),
			filepath.Join(p.AndroidAPKDir(), "assets"),
		),
		&Step{StageName: StageKeystore, Stale: Missing(p.AndroidKeystore()), Do: a.keystore},
		b.androidDependency(p, t.Env),
		&Step{StageName: StageCompile, Stale: When(t.Plan.NeedsBuild()), Do: a.compile},
		&Step{StageName: StageJavac, Do: a.javac},
		&Step{StageName: StageJar, Do: a.jar},
		&Step{StageName: StageDex, Do: a.dex},
		&Step{StageName: StageLink, Do: a.link},
		&Step{StageName: StageInject, Do: a.inject},
		&Step{StageName: StageAlign, Do: a.align},
		&Step{StageName: StageSign, Do: a.sign},
	}
}

func (a *androidBuild) path(rel ...string) string {
	return filepath.Join(append([]string{a.project.AndroidBuildDir()}, rel...)...)
}

func (a *androidBuild) buildTool(name string) string {
	return filepath.Join(a.env.AndroidSDKLocation, "build-tools", a.project.Android.BuildTools, name)
}

func (a *androidBuild) androidJar() string {
	return filepath.Join(a.env.AndroidSDKLocation, "platforms",
		"android-"+strconv.Itoa(a.project.Android.API), "android.jar")
}

// javaEnv puts the configured JDK first on PATH.
func (a *androidBuild) javaEnv() []string {
	home := a.env.AndroidJavaHome
	if home == "" {
		return nil
	}
	return []string{"JAVA_HOME=" + home, "PATH=" + filepath.Join(home, "bin")}
}

func (a *androidBuild) cmd(name string, args ...string) domain.Command {
	return domain.NewCommand(name, args...).In(a.project.Root)
}

func (a *androidBuild) keystore(ctx context.Context) error {
	pass := a.project.Android.KeystorePass
	return a.exec(ctx, a.cmd("keytool",
		"-genkeypair",
		"-alias", "debug",
		"-keyalg", "RSA",
		"-keysize", "2048",
		"-validity", "10000",
		"-keystore", a.project.AndroidKeystore(),
		"-storepass", pass,
		"-keypass", pass,
		"-dname", "CN=Debug,O=SDLApp,C=US",
	).WithEnv(a.javaEnv()...))
}

func (a *androidBuild) compile(ctx context.Context) error {
	if err := requireSetting(a.env.AndroidNDKLocation, domain.EnvAndroidNDKLocation); err != nil {
		return err
	}
	if err := requireSetting(a.env.AndroidSDKLocation, domain.EnvAndroidSDKLocation); err != nil {
		return err
	}

	host, err := ndkHostTag(a.hostOS)
	if err != nil {
		return err
	}
	triple, err := ndkTriple(a.project.Android.ABI)
	if err != nil {
		return err
	}
	api := strconv.Itoa(a.project.Android.API)
	compiler := filepath.Join(a.env.AndroidNDKLocation, "toolchains", "llvm", "prebuilt", host, "bin",
		triple+api+"-clang")

	args := defaultFlags(a.cfg, a.project, a.hostOS)
	args = append(args, "-shared", "-fPIC", "-DANDROID_PLATFORM="+api)
	args = append(args, a.project.Path(a.project.MainSource))
	args = append(args, includeFlags(a.project)...)
	args = append(args,
		"-L"+a.project.BuildPath(), "-lsdl3_android",
		"-llog",
		"-DRENDERER_SDL3",
		"-DOS_ANDROID",
		"-g", "-fno-omit-frame-pointer",
		"-o", filepath.Join(a.project.AndroidLibDir(), "libmain.so"),
	)
	return a.exec(ctx, a.cmd(compiler, args...))
}

func (a *androidBuild) javac(ctx context.Context) error {
	if a.env.AndroidJavaHome == "" {
		a.logger.Info("JDK required. When installed, usually located:")
		if a.hostOS == hostDarwin {
			a.logger.Info("/Library/Java/JavaVirtualMachines/jdk-{ver}.jdk/Contents/Home")
		} else {
			a.logger.Info("/usr/lib/jvm/java-{ver}")
		}
		return requireSetting("", domain.EnvAndroidJavaHome)
	}

	jar := a.androidJar()
	if _, err := os.Stat(jar); err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", jar)
		}
		a.logAvailablePlatforms()
		return zerr.With(zerr.Wrap(domain.ErrMissingSDK,
			"could not find android.jar, the Android platform is probably not installed"), "path", jar)
	}

	sources, err := a.collector.Collect(
		a.project.Path(a.project.Dependency.Path, a.project.Android.JavaSources),
		domain.HasExtension(".java"),
	)
	if err != nil {
		return err
	}

	args := []string{"-classpath", jar, "-d", a.path("java"), a.project.Path(a.project.Android.Activity)}
	args = append(args, sources...)
	return a.exec(ctx, a.cmd("javac", args...).WithEnv(a.javaEnv()...))
}

func (a *androidBuild) logAvailablePlatforms() {
	dir := filepath.Join(a.env.AndroidSDKLocation, "platforms")
	entries, err := os.ReadDir(dir)
	if err != nil {
		a.logger.Warn("No Android platforms installed in " + dir)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	a.logger.Info("Available platforms: " + strings.Join(names, ", "))
}

func (a *androidBuild) jar(ctx context.Context) error {
	return a.exec(ctx, a.cmd("jar", "cf", a.path("app.jar"), "-C", a.path("java"), ".").
		WithEnv(a.javaEnv()...))
}

func (a *androidBuild) dex(ctx context.Context) error {
	return a.exec(ctx, a.cmd(a.buildTool("d8"), "--output", a.project.AndroidAPKDir(), a.path("app.jar")).
		WithEnv(a.javaEnv()...))
}

func (a *androidBuild) link(ctx context.Context) error {
	return a.exec(ctx, a.cmd(a.buildTool("aapt2"), "link",
		"-o", a.path("app-unsigned.apk"),
		"--manifest", a.project.Path(a.project.Android.Manifest),
		"-I", a.androidJar(),
		"--version-code", strconv.Itoa(a.project.Android.VersionCode),
		"--version-name", a.project.Android.VersionName,
	))
}

func (a *androidBuild) inject(ctx context.Context) error {
	lib := filepath.Join(a.project.AndroidLibDir(), filepath.Base(a.project.AndroidDependencyLibrary()))
	if err := CopyFile(a.project.AndroidDependencyLibrary(), lib, domain.FilePerm); err != nil {
		return err
	}

	unsigned := a.path("app-unsigned.apk")
	if err := a.exec(ctx, a.cmd("zip", "-g", "-j", unsigned,
		filepath.Join(a.project.AndroidAPKDir(), "classes.dex"))); err != nil {
		return err
	}
	return a.exec(ctx, domain.NewCommand("zip", "-g", "-r", unsigned, "lib/").In(a.project.AndroidAPKDir()))
}

func (a *androidBuild) align(ctx context.Context) error {
	return a.exec(ctx, a.cmd(a.buildTool("zipalign"), "-v", "4",
		a.path("app-unsigned.apk"), a.path("app-aligned.apk")))
}

func (a *androidBuild) sign(ctx context.Context) error {
	pass := "pass:" + a.project.Android.KeystorePass
	return a.exec(ctx, a.cmd(a.buildTool("apksigner"), "sign",
		"--ks", a.project.AndroidKeystore(),
		"--ks-pass", pass,
		"--key-pass", pass,
		"--out", a.project.AndroidPackage(),
		a.path("app-aligned.apk"),
	).WithEnv(a.javaEnv()...))
}
