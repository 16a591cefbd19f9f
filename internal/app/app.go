// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/kiln/internal/engine/planner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	projects  ports.ProjectLoader
	envs      ports.EnvironmentLoader
	planner   *planner.Planner
	builder   *pipeline.Builder
	runner    ports.CommandRunner
	telemetry ports.Telemetry
	logger    ports.Logger
	hostOS    string
	workDir   string
}

// New creates a new App instance for hostOS (a runtime.GOOS value).
func New(
	projects ports.ProjectLoader,
	envs ports.EnvironmentLoader,
	plan *planner.Planner,
	builder *pipeline.Builder,
	runner ports.CommandRunner,
	telemetry ports.Telemetry,
	logger ports.Logger,
	hostOS string,
) *App {
	return &App{
		projects:  projects,
		envs:      envs,
		planner:   plan,
		builder:   builder,
		runner:    runner,
		telemetry: telemetry,
		logger:    logger,
		hostOS:    hostOS,
		workDir:   ".",
	}
}

// WithWorkDir sets the directory the project is discovered from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// Build runs one build for cfg and launches the result when requested.
func (a *App) Build(ctx context.Context, cfg domain.Config) error {
	if err := cfg.Validate(a.hostOS); err != nil {
		return err
	}

	project, err := a.projects.Load(a.workDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}
	env, err := a.envs.Load(project.Path(project.SettingsEnv))
	if err != nil {
		return err
	}

	start := time.Now()

	plan, err := a.planner.Plan(ctx, project, cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to plan build")
	}
	a.logPlan(cfg, plan)

	target := pipeline.Target{Project: project, Env: env, Config: cfg, Plan: plan}
	stages, err := a.builder.Stages(target)
	if err != nil {
		return err
	}
	report, err := pipeline.Run(ctx, a.telemetry, stages)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrBuildFailed, err), "platform", cfg.Platform.String())
	}
	a.logReport(report)

	if err := a.planner.Commit(project, cfg, plan); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Took %0.4fs.", time.Since(start).Seconds()))

	if cfg.ShouldRun {
		return a.builder.Launch(ctx, target)
	}
	return nil
}

func (a *App) logPlan(cfg domain.Config, plan domain.Plan) {
	a.logger.Info(cfg.String())
	if !plan.NeedsBuild() {
		a.logger.Info("Executable is up to date.")
		return
	}
	for _, reason := range plan.Reasons {
		a.logger.Info(capitalize(string(reason)) + ".")
	}
}

func (a *App) logReport(report pipeline.Report) {
	if len(report.Executed) > 0 {
		a.logger.Info("Ran: " + strings.Join(report.Executed, ", ") + ".")
	}
	if len(report.Skipped) > 0 {
		a.logger.Info("Up to date: " + strings.Join(report.Skipped, ", ") + ".")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildAll builds every configuration the host supports and stops at the first failure.
func (a *App) BuildAll(ctx context.Context) error {
	configs := []domain.Config{
		{Platform: domain.PlatformNative, ForceRebuild: true},
		{Platform: domain.PlatformAndroid},
	}
	if a.hostOS == "darwin" {
		configs = append(configs,
			domain.Config{Platform: domain.PlatformIOS},
			domain.Config{Platform: domain.PlatformIOS, Device: true},
		)
	}

	for _, cfg := range configs {
		if err := a.Build(ctx, cfg); err != nil {
			return zerr.With(err, "config", cfg.String())
		}
	}
	return nil
}

// BuildDependency rebuilds the native dependency archive unconditionally.
func (a *App) BuildDependency(ctx context.Context) error {
	project, err := a.projects.Load(a.workDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	stages := []pipeline.Stage{a.builder.NativeDependency(project, true)}
	report, err := pipeline.Run(ctx, a.telemetry, stages)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrBuildFailed, err), "dependency", project.Dependency.Name)
	}
	a.logReport(report)
	return nil
}

// Clean removes every untracked file in the project and rebuilds the
// orchestrator when a bootstrap command is configured.
func (a *App) Clean(ctx context.Context) error {
	project, err := a.projects.Load(a.workDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	a.logger.Info("Cleaning everything...")
	if _, err := a.runner.Run(ctx, domain.NewCommand("git", "clean", "-fdx").In(project.Root)); err != nil {
		return err
	}

	if len(project.Bootstrap) == 0 {
		return nil
	}
	bootstrap := domain.NewCommand(project.Bootstrap[0], project.Bootstrap[1:]...).In(project.Root)
	_, err = a.runner.Run(ctx, bootstrap)
	return err
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}
