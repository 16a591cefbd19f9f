// Package shell provides the command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command and waits for it to exit.
// The environment is os.Environ() overlaid with cmd.Env; a PATH entry in cmd.Env
// is prepended to the inherited PATH.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (*domain.Output, error) {
	if cmd.Name == "" {
		return &domain.Output{}, nil
	}

	r.logger.Info("$ " + cmd.String())

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // toolchain commands are built internally
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	stdoutPipe, err := c.StdoutPipe()
	if err != nil {
		return nil, r.toolError(cmd, -1, nil, err)
	}
	stderrPipe, err := c.StderrPipe()
	if err != nil {
		return nil, r.toolError(cmd, -1, nil, err)
	}

	if err := c.Start(); err != nil {
		return nil, r.toolError(cmd, -1, nil, err)
	}

	var stdout, stderr bytes.Buffer
	outSinks := []io.Writer{&stdout}
	errSinks := []io.Writer{&stderr}
	if v, ok := ports.VertexFromContext(ctx); ok {
		outSinks = append(outSinks, v.Stdout())
		errSinks = append(errSinks, v.Stderr())
	}

	var g errgroup.Group
	g.Go(func() error {
		return drain(stdoutPipe, &lineWriter{emit: r.logger.Info}, outSinks...)
	})
	g.Go(func() error {
		return drain(stderrPipe, &lineWriter{emit: r.logger.Warn}, errSinks...)
	})
	drainErr := g.Wait()

	if err := c.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, r.toolError(cmd, exitCode, stderr.Bytes(), err)
	}
	if drainErr != nil {
		return nil, r.toolError(cmd, -1, stderr.Bytes(), drainErr)
	}

	return &domain.Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

func (r *Runner) toolError(cmd domain.Command, exitCode int, stderr []byte, cause error) error {
	toolErr := &domain.ExternalToolError{
		Tool:     cmd.Name,
		Args:     cmd.Args,
		Dir:      cmd.Dir,
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(string(stderr)),
		Cause:    cause,
	}
	return zerr.With(toolErr, "command", cmd.String())
}

// drain copies the pipe into the sinks while the logger receives whole lines.
func drain(src io.Reader, lines *lineWriter, sinks ...io.Writer) error {
	w := io.MultiWriter(append(sinks, lines)...)
	_, err := io.Copy(w, src)
	lines.Flush()
	return err
}

// lineWriter buffers partial writes and emits complete lines.
type lineWriter struct {
	emit func(string)
	buf  []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(strings.TrimSuffix(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *lineWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// resolveEnvironment overlays cmdEnv on sysEnv. PATH from cmdEnv is prepended.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range cmdEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
