package pipeline

import (
	"context"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Launch starts the freshly built artifact of t.
func (b *Builder) Launch(ctx context.Context, t Target) error {
	cmds, err := b.launchCommands(t)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := b.exec(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// launchCommands returns the commands that install and start the artifact.
func (b *Builder) launchCommands(t Target) ([]domain.Command, error) {
	p := t.Project
	in := func(name string, args ...string) domain.Command {
		return domain.NewCommand(name, args...).In(p.Root)
	}

	switch t.Config.Platform {
	case domain.PlatformAndroid:
		var env []string
		if t.Env.AndroidSDKLocation != "" {
			env = []string{"PATH=" + filepath.Join(t.Env.AndroidSDKLocation, "platform-tools")}
		}
		return []domain.Command{
			in("adb", "install", "-r", p.AndroidPackage()).WithEnv(env...),
			in("adb", "shell", "am", "start", "-n", p.Android.Package+"/.MainActivity").WithEnv(env...),
		}, nil
	case domain.PlatformIOS:
		if !t.Config.Device {
			return []domain.Command{
				in("xcrun", "simctl", "install", "booted", p.IOSBundle()),
				in("xcrun", "simctl", "launch", "booted", p.IOS.BundleID),
			}, nil
		}
		if t.Env.IOSDeviceID == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingCredential,
				domain.EnvIOSDeviceID+" is required to launch on a device"), "key", domain.EnvIOSDeviceID)
		}
		return []domain.Command{
			in("xcrun", "devicectl", "device", "install", "app", "--device", t.Env.IOSDeviceID, p.IOSBundle()),
			in("xcrun", "devicectl", "device", "process", "launch", "--device", t.Env.IOSDeviceID, p.IOS.BundleID),
		}, nil
	default:
		return []domain.Command{in(p.NativeExecutable())}, nil
	}
}
