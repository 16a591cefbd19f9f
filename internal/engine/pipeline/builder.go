package pipeline

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stage names.
const (
	StageWipe         = "wipe"
	StageKeystore     = "keystore"
	StageCompile      = "compile"
	StageJavac        = "javac"
	StageJar          = "jar"
	StageDex          = "d8"
	StageLink         = "aapt2"
	StageInject       = "inject"
	StageAlign        = "zipalign"
	StageSign         = "apksigner"
	StageLaunchScreen = "launch-screen"
	StageBundle       = "bundle"
	StageProvision    = "provision"
	StageCodesign     = "codesign"
)

// Target bundles everything a platform build depends on.
type Target struct {
	Project *domain.Project
	Env     domain.Environment
	Config  domain.Config
	Plan    domain.Plan
}

// Builder turns a Target into the ordered stage list of its platform.
type Builder struct {
	runner    ports.CommandRunner
	collector ports.FileCollector
	staleness ports.StalenessChecker
	logger    ports.Logger
	hostOS    string
}

// NewBuilder creates a Builder for hostOS (a runtime.GOOS value).
func NewBuilder(
	runner ports.CommandRunner,
	collector ports.FileCollector,
	staleness ports.StalenessChecker,
	logger ports.Logger,
	hostOS string,
) *Builder {
	return &Builder{
		runner:    runner,
		collector: collector,
		staleness: staleness,
		logger:    logger,
		hostOS:    hostOS,
	}
}

// Stages returns the pipeline for t.Config.Platform.
func (b *Builder) Stages(t Target) ([]Stage, error) {
	switch t.Config.Platform {
	case domain.PlatformNative:
		return b.nativeStages(t), nil
	case domain.PlatformAndroid:
		return b.androidStages(t), nil
	case domain.PlatformIOS:
		return b.iosStages(t), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown platform"), "platform", t.Config.Platform.String())
	}
}

func (b *Builder) exec(ctx context.Context, cmd domain.Command) error {
	_, err := b.runner.Run(ctx, cmd)
	return err
}

// output runs cmd and returns its stdout without the trailing newline.
func (b *Builder) output(ctx context.Context, cmd domain.Command) (string, error) {
	out, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out.Stdout), "\r\n"), nil
}

func jobsFlag(project *domain.Project) string {
	jobs := project.Dependency.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return "-j" + strconv.Itoa(jobs)
}

func requireSetting(value, key string) error {
	if value == "" {
		return zerr.With(zerr.Wrap(domain.ErrMissingSDK, key+" is not set in the settings file"), "key", key)
	}
	return nil
}
