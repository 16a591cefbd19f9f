package pipeline

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// iosBuild carries state between the stages of one iOS build.
type iosBuild struct {
	*Builder
	project *domain.Project
	env     domain.Environment
	cfg     domain.Config

	identity string
}

func (b *Builder) iosStages(t Target) []Stage {
	i := &iosBuild{Builder: b, project: t.Project, env: t.Env, cfg: t.Config}
	p := t.Project

	stages := []Stage{
		Wipe(StageWipe, p.IOSBuildDir(), filepath.Join(p.IOSBuildDir(), "bin"), p.IOSBundle()),
		b.iosDependency(p, t.Config.Device),
		&Step{StageName: StageCompile, Stale: When(t.Plan.NeedsBuild()), Do: i.compile},
		&Step{StageName: StageLaunchScreen, Stale: i.launchScreenStale, Do: i.launchScreen},
		&Step{StageName: StageBundle, Do: i.bundle},
	}
	if t.Config.Device {
		stages = append(stages,
			&Step{StageName: StageProvision, Do: i.provision},
			&Step{StageName: StageCodesign, Do: i.codesign},
		)
	}
	return stages
}

func (i *iosBuild) cmd(name string, args ...string) domain.Command {
	return domain.NewCommand(name, args...).In(i.project.Root)
}

func (i *iosBuild) sdk() string { return domain.IOSSDKName(i.cfg.Device) }

func (i *iosBuild) compile(ctx context.Context) error {
	sysroot, err := i.output(ctx, i.cmd("xcrun", "--sdk", i.sdk(), "--show-sdk-path"))
	if err != nil {
		return err
	}

	p := i.project
	args := defaultFlags(i.cfg, p, i.hostOS)
	args = append(args, "-arch", p.IOS.Arch, "-isysroot", sysroot)
	args = append(args, includeFlags(p)...)
	args = append(args, "-DOS_IOS", p.Path(p.MainSource), p.IOSDependencyArchive(i.cfg.Device))
	args = append(args, frameworkFlags(domain.PlatformIOS, i.hostOS)...)
	args = append(args, "-ObjC", "-o", p.IOSBinary())
	return i.exec(ctx, i.cmd("clang", args...))
}

func (i *iosBuild) launchScreenStale(context.Context) (bool, error) {
	return i.staleness.NeedsRebuild(i.project.LaunchScreenNib(), domain.FileSet{i.project.Path(i.project.IOS.LaunchScreen)})
}

func (i *iosBuild) launchScreen(ctx context.Context) error {
	return i.exec(ctx, i.cmd("ibtool", i.project.Path(i.project.IOS.LaunchScreen), "--compile", i.project.LaunchScreenNib()))
}

func (i *iosBuild) bundle(context.Context) error {
	p := i.project
	if err := CopyFile(p.LaunchScreenNib(), filepath.Join(p.IOSBundle(), "LaunchScreen.nib"), domain.FilePerm); err != nil {
		return err
	}
	return CopyFile(p.Path(p.IOS.InfoPlist), filepath.Join(p.IOSBundle(), "Info.plist"), domain.FilePerm)
}

func (i *iosBuild) provision(ctx context.Context) error {
	p := i.project
	profile := p.Path(p.IOS.Profile)
	if _, err := os.Stat(profile); err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", profile)
		}
		return zerr.With(zerr.Wrap(domain.ErrMissingCredential,
			"a provisioning profile is required, download it from your Apple developer account"), "path", profile)
	}

	identity, err := i.resolveIdentity(ctx)
	if err != nil {
		return err
	}
	i.identity = identity
	i.logger.Info("Developer name: '" + identity + "'")

	embedded := filepath.Join(p.IOSBundle(), "embedded.mobileprovision")
	if err := CopyFile(profile, embedded, domain.FilePerm); err != nil {
		return err
	}

	decoded, err := i.runner.Run(ctx, i.cmd("security", "cms", "-D", "-i", embedded))
	if err != nil {
		return err
	}
	profilePlist := filepath.Join(p.IOSBuildDir(), "profile.plist")
	if err := writeFile(profilePlist, decoded.Stdout); err != nil {
		return err
	}

	entitlements, err := i.runner.Run(ctx, i.cmd("/usr/libexec/PlistBuddy", "-x", "-c", "Print :Entitlements", profilePlist))
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(p.IOSBuildDir(), "entitlements.plist"), entitlements.Stdout)
}

// resolveIdentity prefers the settings file, then the developer-name file.
// Without either it lists the installed identities and fails.
func (i *iosBuild) resolveIdentity(ctx context.Context) (string, error) {
	if name := strings.TrimSpace(i.env.AppleDeveloperName); name != "" {
		return name, nil
	}

	path := i.project.Path(i.project.IOS.DeveloperNameFile)
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, "failed to read developer name"), "path", path)
	}
	if name := strings.TrimSpace(string(data)); name != "" {
		return name, nil
	}

	if err := i.exec(ctx, i.cmd("security", "find-identity", "-v", "-p", "codesigning")); err != nil {
		i.logger.Warn("could not list signing identities")
	}
	i.logger.Info("Example: Apple Development: Your Name (TEAMID)")
	return "", zerr.With(zerr.Wrap(domain.ErrMissingCredential,
		"put one of the identities above into "+domain.EnvAppleDeveloperName+" or the developer name file"), "path", path)
}

func (i *iosBuild) codesign(ctx context.Context) error {
	p := i.project
	return i.exec(ctx, i.cmd("codesign",
		"--force",
		"--sign", i.identity,
		"--preserve-metadata=identifier,entitlements",
		"--entitlements", filepath.Join(p.IOSBuildDir(), "entitlements.plist"),
		p.IOSBinary(),
	))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(filepath.Clean(path), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}
