package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// transcript records every command the builder issues.
type transcript struct {
	root   string
	calls  []domain.Command
	stdout map[string]string
	fail   map[string]error
	// produce creates the files a real tool would write.
	produce func(cmd domain.Command)
}

func (tr *transcript) run(_ context.Context, cmd domain.Command) (*domain.Output, error) {
	tr.calls = append(tr.calls, cmd)
	if err, ok := tr.fail[cmd.Name]; ok {
		return nil, err
	}
	if tr.produce != nil {
		tr.produce(cmd)
	}
	return &domain.Output{Stdout: []byte(tr.stdout[cmd.Name])}, nil
}

func (tr *transcript) bytes() []byte {
	var sb strings.Builder
	for _, cmd := range tr.calls {
		sb.WriteString("(" + cmd.Dir + ") " + cmd.String() + "\n")
		if len(cmd.Env) > 0 {
			sb.WriteString("    env: " + strings.Join(cmd.Env, " ") + "\n")
		}
	}
	return []byte(strings.ReplaceAll(sb.String(), tr.root, "$ROOT"))
}

func replaceRoot(f *fixture, s string) string {
	return strings.ReplaceAll(s, f.project.Root, "$ROOT")
}

func (tr *transcript) names() []string {
	names := make([]string, 0, len(tr.calls))
	for _, cmd := range tr.calls {
		names = append(names, filepath.Base(cmd.Name))
	}
	return names
}

// fixture is a project tree on disk with a builder whose commands are recorded.
type fixture struct {
	project *domain.Project
	env     domain.Environment
	tr      *transcript
	builder *pipeline.Builder
}

func newFixture(t *testing.T, hostOS string) *fixture {
	t.Helper()
	root := t.TempDir()
	project := domain.DefaultProject(root)
	project.Dependency.Jobs = 8

	ctrl := gomock.NewController(t)
	tr := &transcript{root: root, stdout: map[string]string{}, fail: map[string]error{}}
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(tr.run).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	f := &fixture{
		project: project,
		tr:      tr,
		builder: pipeline.NewBuilder(runner, fs.NewCollector(fs.NewWalker()), fs.NewStaleness(), log, hostOS),
	}
	f.write(t, "src/main.c", "int main(void) { return 0; }\n")
	f.write(t, "lib/SDL-3.2.16/build/libSDL3.a", "archive")
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := f.project.Path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) withAndroid(t *testing.T) *fixture {
	t.Helper()
	root := f.project.Root
	f.env.AndroidNDKLocation = filepath.Join(root, "ndk")
	f.env.AndroidSDKLocation = filepath.Join(root, "sdk")
	f.env.AndroidJavaHome = filepath.Join(root, "jdk")
	f.write(t, "sdk/platforms/android-34/android.jar", "jar")
	f.write(t, "lib/SDL-3.2.16/build/libSDL3.so", "shared")
	f.write(t, "lib/SDL-3.2.16/android-project/app/src/main/java/org/libsdl/app/SDLActivity.java", "class SDLActivity {}")
	f.write(t, "lib/SDL-3.2.16/android-project/app/src/main/java/org/libsdl/app/SDLAudioManager.java", "class SDLAudioManager {}")
	return f
}

func (f *fixture) withIOS(t *testing.T, device bool) *fixture {
	t.Helper()
	f.write(t, "ios/Info.plist", "<plist/>")
	f.write(t, "ios/LaunchScreen.xib", "<xib/>")
	f.tr.stdout["xcrun"] = "/sdk/" + domain.IOSSDKName(device) + "\n"
	f.tr.stdout["security"] = "<plist>profile</plist>"
	f.tr.stdout["/usr/libexec/PlistBuddy"] = "<dict>entitlements</dict>"
	f.tr.produce = func(cmd domain.Command) {
		if cmd.Name == "ibtool" {
			_ = os.WriteFile(cmd.Args[2], []byte("nib"), 0o600)
		}
	}
	return f
}

func (f *fixture) target(cfg domain.Config, decision domain.Decision) pipeline.Target {
	return pipeline.Target{
		Project: f.project,
		Env:     f.env,
		Config:  cfg,
		Plan:    domain.Plan{Decision: decision},
	}
}
