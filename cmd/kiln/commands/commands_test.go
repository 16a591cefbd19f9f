package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.Config
	}{
		{name: "defaults", args: nil, want: domain.Config{}},
		{
			name: "native flags",
			args: []string{"-f", "-o", "-r", "-gcc"},
			want: domain.Config{
				ForceRebuild: true, Optimize: true, ShouldRun: true,
				Compiler: domain.CompilerGCC, CompilerChosen: true,
			},
		},
		{
			name: "later compiler wins",
			args: []string{"-gcc", "-clang"},
			want: domain.Config{Compiler: domain.CompilerClang, CompilerChosen: true},
		},
		{
			name: "android device",
			args: []string{"-android", "-device"},
			want: domain.Config{Platform: domain.PlatformAndroid, Device: true},
		},
		{
			name: "ios",
			args: []string{"-ios", "-r"},
			want: domain.Config{Platform: domain.PlatformIOS, ShouldRun: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseConfig(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConfig_UnknownArgument(t *testing.T) {
	for _, arg := range []string{"--force", "-x", "build", "-F"} {
		_, err := commands.ParseConfig([]string{"-o", arg})
		require.Error(t, err, arg)
		assert.True(t, errors.Is(err, domain.ErrUnknownArgument), arg)
		assert.Contains(t, err.Error(), arg)
	}
}

type cliMocks struct {
	projects *mocks.MockProjectLoader
	runner   *mocks.MockCommandRunner
	logger   *mocks.MockLogger
}

func newCLI(t *testing.T) (*commands.CLI, cliMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := cliMocks{
		projects: mocks.NewMockProjectLoader(ctrl),
		runner:   mocks.NewMockCommandRunner(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	a := app.New(m.projects, mocks.NewMockEnvironmentLoader(ctrl), nil, nil, m.runner,
		telemetry.NewNoOp(), m.logger, "linux")
	return commands.New(a), m
}

func TestRoot_InvalidCombination(t *testing.T) {
	cli, _ := newCLI(t)

	cli.SetArgs([]string{"-android", "-gcc"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestRoot_ToolchainFlagOnMobile(t *testing.T) {
	cli, _ := newCLI(t)

	cli.SetArgs([]string{"-android", "-clang"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestRoot_UnknownArgument(t *testing.T) {
	cli, _ := newCLI(t)

	cli.SetArgs([]string{"-android", "-fast"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownArgument))
}

func TestClean(t *testing.T) {
	cli, m := newCLI(t)
	project := domain.DefaultProject(t.TempDir())

	gomock.InOrder(
		m.projects.EXPECT().Load(".").Return(project, nil),
		m.logger.EXPECT().Info("Cleaning everything..."),
		m.runner.EXPECT().Run(gomock.Any(), domain.NewCommand("git", "clean", "-fdx").In(project.Root)).
			Return(&domain.Output{}, nil),
	)

	cli.SetArgs([]string{"clean"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestClean_RejectsArguments(t *testing.T) {
	cli, _ := newCLI(t)

	cli.SetArgs([]string{"clean", "all"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	cli := commands.New(nil)

	var out bytes.Buffer
	cli.SetArgs([]string{"version"})
	cli.SetOutput(&out)
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "kiln version "+build.Version+"\n", out.String())
}

func TestRoot_Help(t *testing.T) {
	cli := commands.New(nil)

	var out bytes.Buffer
	cli.SetArgs([]string{"-o", "--help"})
	cli.SetOutput(&out)
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "-android")
	assert.Contains(t, out.String(), "test_builds")
}
