// Package planner decides whether a build has to run.
package planner

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// SourceExtensions are the files that trigger a recompile when touched.
var SourceExtensions = []string{".c", ".h"}

// Planner compares the requested configuration and the source tree against
// the last successful build.
type Planner struct {
	collector     ports.FileCollector
	fingerprinter ports.Fingerprinter
	staleness     ports.StalenessChecker
	store         ports.ConfigStore
}

// New creates a new Planner.
func New(
	collector ports.FileCollector,
	fingerprinter ports.Fingerprinter,
	staleness ports.StalenessChecker,
	store ports.ConfigStore,
) *Planner {
	return &Planner{
		collector:     collector,
		fingerprinter: fingerprinter,
		staleness:     staleness,
		store:         store,
	}
}

// Inputs returns the manifest (when present) and every source file, sorted.
func (p *Planner) Inputs(project *domain.Project) (domain.FileSet, error) {
	sources, err := p.collector.Collect(project.Path(project.SourceDir), domain.HasExtension(SourceExtensions...))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to collect sources")
	}

	inputs := make(domain.FileSet, 0, len(sources)+1)
	if project.ManifestPath != "" {
		inputs = append(inputs, project.ManifestPath)
	}
	inputs = append(inputs, sources...)
	return inputs.Sorted(), nil
}

// Plan computes the build decision for cfg.
func (p *Planner) Plan(ctx context.Context, project *domain.Project, cfg domain.Config) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}

	inputs, err := p.Inputs(project)
	if err != nil {
		return domain.Plan{}, err
	}
	plan := domain.Plan{
		Inputs:       inputs,
		InputsDigest: p.fingerprinter.Digest(inputs),
	}

	if cfg.Platform.IsMobile() {
		plan.Decision = domain.DecisionCleanRebuild
		plan.Reasons = []domain.Reason{domain.ReasonMobileClean}
		return plan, nil
	}

	if cfg.ForceRebuild {
		plan.Decision = domain.DecisionRebuild
		plan.Reasons = []domain.Reason{domain.ReasonForced}
		return plan, nil
	}

	previous, err := p.store.Load(project.StatePath())
	if err != nil {
		return domain.Plan{}, err
	}
	switch {
	case previous == nil || !previous.Has(domain.KeyOptimize) || !previous.Has(domain.KeyCompiler):
		plan.Reasons = append(plan.Reasons, domain.ReasonConfigMissing)
	case !cfg.SameRebuildFields(previous):
		plan.Reasons = append(plan.Reasons, domain.ReasonConfigChanged)
	}

	stale, err := p.staleness.NeedsRebuild(project.NativeExecutable(), inputs)
	if err != nil {
		return domain.Plan{}, zerr.With(err, "target", project.NativeExecutable())
	}
	if stale {
		plan.Reasons = append(plan.Reasons, domain.ReasonFilesChanged)
	}

	if previous.Has(domain.KeyInputs) && previous.InputsDigest != plan.InputsDigest {
		plan.Reasons = append(plan.Reasons, domain.ReasonInputSetChanged)
	}

	if len(plan.Reasons) > 0 {
		plan.Decision = domain.DecisionRebuild
	}
	return plan, nil
}

// Commit records cfg as the last successful build.
func (p *Planner) Commit(project *domain.Project, cfg domain.Config, plan domain.Plan) error {
	return p.store.Save(project.StatePath(), cfg, plan.InputsDigest)
}
