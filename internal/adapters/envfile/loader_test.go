package envfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/envfile"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeEnv(t, `# Android toolchain
ANDROID_NDK_LOCATION=/opt/android/ndk/27.0
ANDROID_SDK_LOCATION=/opt/android/sdk

ANDROID_JAVA_HOME=/usr/lib/jvm/java-17
# signing
APPLE_DEVELOPER_NAME="Apple Development: Jane Doe (ABCDE12345)"
IOS_DEVICE_ID=00008110-000A1B2C3D4E5F
`)

	env, err := envfile.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.Environment{
		AppleDeveloperName: "Apple Development: Jane Doe (ABCDE12345)",
		IOSDeviceID:        "00008110-000A1B2C3D4E5F",
		AndroidNDKLocation: "/opt/android/ndk/27.0",
		AndroidSDKLocation: "/opt/android/sdk",
		AndroidJavaHome:    "/usr/lib/jvm/java-17",
	}, env)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	env, err := envfile.NewLoader().Load(filepath.Join(t.TempDir(), "local.env"))
	require.NoError(t, err)
	assert.Equal(t, domain.Environment{}, env)
}

func TestLoader_Load_Partial(t *testing.T) {
	path := writeEnv(t, "ANDROID_SDK_LOCATION=/opt/android/sdk\n")

	env, err := envfile.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/android/sdk", env.AndroidSDKLocation)
	assert.Empty(t, env.AndroidNDKLocation)
}

func TestLoader_Load_UnknownKey(t *testing.T) {
	path := writeEnv(t, "ANDROID_SDK_LOCATION=/opt/android/sdk\nANDROID_HOME=/opt/android\n")

	_, err := envfile.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEnvironment))
	assert.Contains(t, err.Error(), "ANDROID_HOME")
}

func TestLoader_Load_EmptyKeyIsSkipped(t *testing.T) {
	path := writeEnv(t, "=foo\nANDROID_SDK_LOCATION=/opt/android/sdk\n")

	env, err := envfile.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Environment{AndroidSDKLocation: "/opt/android/sdk"}, env)
}

func TestLoader_Load_ValueIsRestOfLine(t *testing.T) {
	path := writeEnv(t, "ANDROID_SDK_LOCATION=/opt/sdk #main\r\nANDROID_NDK_LOCATION=$HOME/ndk\n")

	env, err := envfile.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/sdk #main", env.AndroidSDKLocation)
	assert.Equal(t, "$HOME/ndk", env.AndroidNDKLocation)
}

func TestLoader_Load_LineWithoutValue(t *testing.T) {
	path := writeEnv(t, "IOS_DEVICE_ID=\n")

	env, err := envfile.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Empty(t, env.IOSDeviceID)
}
