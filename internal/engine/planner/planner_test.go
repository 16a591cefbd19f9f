package planner_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/state"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

type planMocks struct {
	collector     *mocks.MockFileCollector
	fingerprinter *mocks.MockFingerprinter
	staleness     *mocks.MockStalenessChecker
	store         *mocks.MockConfigStore
}

func newPlanner(t *testing.T) (*planner.Planner, planMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := planMocks{
		collector:     mocks.NewMockFileCollector(ctrl),
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		staleness:     mocks.NewMockStalenessChecker(ctrl),
		store:         mocks.NewMockConfigStore(ctrl),
	}
	return planner.New(m.collector, m.fingerprinter, m.staleness, m.store), m
}

func persisted(compiler domain.Compiler, optimize bool, digest uint64) *domain.PersistedConfig {
	p := &domain.PersistedConfig{Compiler: compiler, Optimize: optimize, InputsDigest: digest}
	for _, key := range domain.PersistedKeys {
		p.Mark(key)
	}
	return p
}

func TestPlanner_Inputs(t *testing.T) {
	p, m := newPlanner(t)
	project := domain.DefaultProject("/work")
	project.ManifestPath = "/work/kiln.yaml"

	m.collector.EXPECT().Collect("/work/src", gomock.Any()).
		DoAndReturn(func(_ string, match func(string) bool) (domain.FileSet, error) {
			assert.True(t, match("/work/src/main.c"))
			assert.True(t, match("/work/src/render.h"))
			assert.False(t, match("/work/src/notes.md"))
			return domain.FileSet{"/work/src/render.h", "/work/src/main.c"}, nil
		})

	inputs, err := p.Inputs(project)
	require.NoError(t, err)
	assert.Equal(t, domain.FileSet{"/work/kiln.yaml", "/work/src/main.c", "/work/src/render.h"}, inputs)
}

func TestPlanner_Plan(t *testing.T) {
	sources := domain.FileSet{"/work/src/main.c"}
	const digest = uint64(42)

	tests := []struct {
		name     string
		cfg      domain.Config
		previous *domain.PersistedConfig
		stale    bool
		decision domain.Decision
		reasons  []domain.Reason
	}{
		{
			name:     "up to date",
			cfg:      domain.Config{},
			previous: persisted(domain.CompilerClang, false, digest),
			decision: domain.DecisionSkip,
		},
		{
			name:     "no previous build",
			cfg:      domain.Config{},
			previous: nil,
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonConfigMissing},
		},
		{
			name:     "optimize toggled",
			cfg:      domain.Config{Optimize: true},
			previous: persisted(domain.CompilerClang, false, digest),
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonConfigChanged},
		},
		{
			name:     "compiler switched",
			cfg:      domain.Config{Compiler: domain.CompilerGCC},
			previous: persisted(domain.CompilerClang, false, digest),
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonConfigChanged},
		},
		{
			name:     "sources touched",
			cfg:      domain.Config{},
			previous: persisted(domain.CompilerClang, false, digest),
			stale:    true,
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonFilesChanged},
		},
		{
			name:     "file added or removed",
			cfg:      domain.Config{},
			previous: persisted(domain.CompilerClang, false, digest+1),
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonInputSetChanged},
		},
		{
			name:     "config changed and sources touched",
			cfg:      domain.Config{Optimize: true},
			previous: persisted(domain.CompilerClang, false, digest),
			stale:    true,
			decision: domain.DecisionRebuild,
			reasons:  []domain.Reason{domain.ReasonConfigChanged, domain.ReasonFilesChanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newPlanner(t)
			project := domain.DefaultProject("/work")

			m.collector.EXPECT().Collect("/work/src", gomock.Any()).Return(sources, nil)
			m.fingerprinter.EXPECT().Digest(sources).Return(digest)
			m.store.EXPECT().Load("/work/build/.config").Return(tt.previous, nil)
			m.staleness.EXPECT().NeedsRebuild("/work/main.app", sources).Return(tt.stale, nil)

			plan, err := p.Plan(context.Background(), project, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.decision, plan.Decision)
			assert.Equal(t, tt.reasons, plan.Reasons)
			assert.Equal(t, digest, plan.InputsDigest)
			assert.Equal(t, sources, plan.Inputs)
		})
	}
}

func TestPlanner_Plan_PartialPreviousConfig(t *testing.T) {
	p, m := newPlanner(t)
	project := domain.DefaultProject("/work")

	previous := &domain.PersistedConfig{Compiler: domain.CompilerClang}
	previous.Mark(domain.KeyCompiler)

	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(domain.FileSet{}, nil)
	m.fingerprinter.EXPECT().Digest(gomock.Any()).Return(uint64(1))
	m.store.EXPECT().Load(gomock.Any()).Return(previous, nil)
	m.staleness.EXPECT().NeedsRebuild(gomock.Any(), gomock.Any()).Return(false, nil)

	plan, err := p.Plan(context.Background(), project, domain.Config{})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRebuild, plan.Decision)
	assert.True(t, plan.HasReason(domain.ReasonConfigMissing))
	assert.False(t, plan.HasReason(domain.ReasonInputSetChanged))
}

func TestPlanner_Plan_Forced(t *testing.T) {
	p, m := newPlanner(t)
	project := domain.DefaultProject("/work")

	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(domain.FileSet{}, nil)
	m.fingerprinter.EXPECT().Digest(gomock.Any()).Return(uint64(7))

	plan, err := p.Plan(context.Background(), project, domain.Config{ForceRebuild: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRebuild, plan.Decision)
	assert.Equal(t, []domain.Reason{domain.ReasonForced}, plan.Reasons)
}

func TestPlanner_Plan_Mobile(t *testing.T) {
	for _, platform := range []domain.Platform{domain.PlatformAndroid, domain.PlatformIOS} {
		t.Run(platform.String(), func(t *testing.T) {
			p, m := newPlanner(t)
			project := domain.DefaultProject("/work")

			m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(domain.FileSet{}, nil)
			m.fingerprinter.EXPECT().Digest(gomock.Any()).Return(uint64(7))

			plan, err := p.Plan(context.Background(), project, domain.Config{Platform: platform})
			require.NoError(t, err)
			assert.Equal(t, domain.DecisionCleanRebuild, plan.Decision)
			assert.Equal(t, []domain.Reason{domain.ReasonMobileClean}, plan.Reasons)
		})
	}
}

func TestPlanner_Plan_Errors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("collector", func(t *testing.T) {
		p, m := newPlanner(t)
		m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := p.Plan(context.Background(), domain.DefaultProject("/work"), domain.Config{})
		require.ErrorIs(t, err, boom)
	})

	t.Run("store", func(t *testing.T) {
		p, m := newPlanner(t)
		m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(domain.FileSet{}, nil)
		m.fingerprinter.EXPECT().Digest(gomock.Any()).Return(uint64(0))
		m.store.EXPECT().Load(gomock.Any()).Return(nil, boom)

		_, err := p.Plan(context.Background(), domain.DefaultProject("/work"), domain.Config{})
		require.ErrorIs(t, err, boom)
	})

	t.Run("staleness", func(t *testing.T) {
		p, m := newPlanner(t)
		m.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(domain.FileSet{}, nil)
		m.fingerprinter.EXPECT().Digest(gomock.Any()).Return(uint64(0))
		m.store.EXPECT().Load(gomock.Any()).Return(nil, nil)
		m.staleness.EXPECT().NeedsRebuild(gomock.Any(), gomock.Any()).Return(false, boom)

		_, err := p.Plan(context.Background(), domain.DefaultProject("/work"), domain.Config{})
		require.ErrorIs(t, err, boom)
	})

	t.Run("canceled", func(t *testing.T) {
		p, _ := newPlanner(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Plan(ctx, domain.DefaultProject("/work"), domain.Config{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPlanner_Commit(t *testing.T) {
	p, m := newPlanner(t)
	project := domain.DefaultProject("/work")
	cfg := domain.Config{Optimize: true}

	m.store.EXPECT().Save("/work/build/.config", cfg, uint64(99)).Return(nil)

	require.NoError(t, p.Commit(project, cfg, domain.Plan{InputsDigest: 99}))
}

// TestPlanner_NativeScenario drives the planner against a real project tree.
func TestPlanner_NativeScenario(t *testing.T) {
	root := t.TempDir()
	project := domain.DefaultProject(root)
	require.NoError(t, os.MkdirAll(project.Path("src"), 0o750))
	require.NoError(t, os.WriteFile(project.Path("src", "main.c"), []byte("int main(void) { return 0; }\n"), 0o600))

	newReal := func() *planner.Planner {
		return planner.New(fs.NewCollector(fs.NewWalker()), fs.NewFingerprinter(), fs.NewStaleness(), state.NewStore())
	}
	build := func() {
		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(project.Path("src", "main.c"), past, past))
		require.NoError(t, os.WriteFile(project.NativeExecutable(), []byte("binary"), 0o600))
	}
	ctx := context.Background()
	cfg := domain.Config{Platform: domain.PlatformNative}

	// Fresh build folder.
	p := newReal()
	plan, err := p.Plan(ctx, project, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRebuild, plan.Decision)
	assert.True(t, plan.HasReason(domain.ReasonConfigMissing))
	build()
	require.NoError(t, p.Commit(project, cfg, plan))

	stored, err := state.NewStore().Load(project.StatePath())
	require.NoError(t, err)
	assert.False(t, stored.Optimize)

	// Unchanged second run.
	plan, err = newReal().Plan(ctx, project, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionSkip, plan.Decision)
	assert.Empty(t, plan.Reasons)

	// Optimize toggled.
	plan, err = newReal().Plan(ctx, project, domain.Config{Optimize: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRebuild, plan.Decision)
	assert.Equal(t, []domain.Reason{domain.ReasonConfigChanged}, plan.Reasons)

	// A new source file changes the input set even when it is older than the executable.
	header := project.Path("src", "util.h")
	require.NoError(t, os.WriteFile(header, []byte("#pragma once\n"), 0o600))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(header, past, past))

	plan, err = newReal().Plan(ctx, project, cfg)
	require.NoError(t, err)
	assert.Equal(t, []domain.Reason{domain.ReasonInputSetChanged}, plan.Reasons)
}
