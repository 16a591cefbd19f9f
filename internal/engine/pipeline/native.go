package pipeline

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

func (b *Builder) nativeStages(t Target) []Stage {
	return []Stage{
		b.NativeDependency(t.Project, false),
		&Step{
			StageName: StageCompile,
			Stale:     When(t.Plan.NeedsBuild()),
			Do: func(ctx context.Context) error {
				return b.exec(ctx, b.nativeCompile(t.Project, t.Config))
			},
		},
	}
}

func (b *Builder) nativeCompile(project *domain.Project, cfg domain.Config) domain.Command {
	args := defaultFlags(cfg, project, b.hostOS)
	args = append(args, project.Path(project.MainSource))
	args = append(args, includeFlags(project)...)
	args = append(args, archiveFlags(project.NativeDependencyArchive(), b.hostOS)...)
	args = append(args, "-DRENDERER_SDL3")
	args = append(args, frameworkFlags(cfg.Platform, b.hostOS)...)
	args = append(args, "-o", project.NativeExecutable())
	return domain.NewCommand(compilerCommand(cfg, b.hostOS), args...).In(project.Root)
}
