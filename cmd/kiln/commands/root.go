// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

const buildUsage = `Builds the application for the selected platform. Without flags a native
clang debug build is produced.

Flags:
  -f        Force a rebuild even when the executable is up to date (native only)
  -o        Build with optimizations
  -r        Run the application after a successful build
  -clang    Compile with clang (default, native only)
  -gcc      Compile with gcc (native only)
  -android  Build a signed APK
  -ios      Build an iOS app bundle (macOS only)
  -device   Target a physical device instead of the simulator
  -h        Show help for command`

// CLI represents the command line interface for kiln.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "kiln [flags]",
		Short:         "Incremental build orchestrator for desktop, Android and iOS",
		Long:          buildUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Build flags use a single dash and full words, which pflag cannot express.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			cfg, err := ParseConfig(args)
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), cfg)
		},
	}
	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newSDLCmd())
	rootCmd.AddCommand(c.newTestBuildsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// ParseConfig maps build flags to a Config. Later flags override earlier
// ones; combinations are checked by Config.Validate.
func ParseConfig(args []string) (domain.Config, error) {
	var cfg domain.Config
	for _, arg := range args {
		switch arg {
		case "-f":
			cfg.ForceRebuild = true
		case "-o":
			cfg.Optimize = true
		case "-r":
			cfg.ShouldRun = true
		case "-clang":
			cfg.Compiler, cfg.CompilerChosen = domain.CompilerClang, true
		case "-gcc":
			cfg.Compiler, cfg.CompilerChosen = domain.CompilerGCC, true
		case "-android":
			cfg.Platform = domain.PlatformAndroid
		case "-ios":
			cfg.Platform = domain.PlatformIOS
		case "-device":
			cfg.Device = true
		default:
			return domain.Config{}, zerr.With(
				zerr.Wrap(domain.ErrUnknownArgument, "unexpected argument: "+arg), "argument", arg)
		}
	}
	return cfg, nil
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}
