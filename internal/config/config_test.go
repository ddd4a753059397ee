package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultDataDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.Equal(t, filepath.Join(dir, "proglo"), DefaultDataDir())
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	c, rest, err := Parse([]string{"whoami"}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, []string{"whoami"}, rest)
	require.Equal(t, "/tmp/xdg/proglo", c.DataDir)
	require.Equal(t, BackendFile, c.Backend)
	require.Equal(t, 720*time.Hour, c.SessionTTL)
	require.Equal(t, 5, c.LoginMaxFailures)
	require.Equal(t, 15*time.Minute, c.LoginWindow)
	require.Equal(t, "warn", c.LogLevel)
}

func TestParse_EnvThenFlags(t *testing.T) {
	t.Setenv("PROGLO_BACKEND", "memory")
	t.Setenv("PROGLO_LOGIN_BLOCK", "1h")
	t.Setenv("PROGLO_LOGIN_MAX_FAILURES", "3")

	c, _, err := Parse([]string{"-login-max-failures", "7", "summary"}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, BackendMemory, c.Backend)
	require.Equal(t, time.Hour, c.LoginBlock)
	require.Equal(t, 7, c.LoginMaxFailures, "flag wins over env")
}

func TestParse_Errors(t *testing.T) {
	_, _, err := Parse([]string{"-backend", "s3"}, io.Discard)
	require.Error(t, err)

	_, _, err = Parse([]string{"-backend", "postgres"}, io.Discard)
	require.Error(t, err)

	t.Setenv("PROGLO_SESSION_TTL", "forever")
	_, _, err = Parse(nil, io.Discard)
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("PROGLO_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PROGLO_LOG_LEVEL", "")
	os.Unsetenv("PROGLO_LOG_LEVEL")
	require.NoError(t, LoadEnvFile(p))

	c, _, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	require.Equal(t, "debug", c.LogLevel)
}
