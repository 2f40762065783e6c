package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// isolate points the .env lookup at an empty directory and clears the
// variables the loader reads.
func isolate(t *testing.T) {
	t.Helper()
	prev := dotEnvFile
	dotEnvFile = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { dotEnvFile = prev })

	for _, k := range []string{"API_URL", "DB_PATH", "LOG_LEVEL", "LOCALE", "REQUEST_TIMEOUT",
		"IMAGE_BUCKET", "IMAGE_REGION", "IMAGE_ENDPOINT", "IMAGE_BASE_URL",
		"IMAGE_ACCESS_KEY", "IMAGE_SECRET_KEY"} {
		t.Setenv(envPrefix+k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.APIURL)
	assert.Equal(t, "evently.db", c.DBPath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "en", c.Locale)
	assert.False(t, c.ImagesEnabled())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_JSONFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "cfg.json", `{
		"api_url": "https://api.example.com",
		"request_timeout": "3s",
		"locale": "de",
		"image_bucket": "pics"
	}`)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "evently.db", cfg.DBPath)
	assert.True(t, cfg.ImagesEnabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "cfg.yaml", "db_path: /tmp/e.db\nrequest_timeout: 1500ms\nlog_level: debug\n")

	cfg, err := Load([]string{"-config=" + path})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/e.db", cfg.DBPath)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
}

func TestLoad_FileErrors(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	_, err = Load([]string{"-c", writeFile(t, "cfg.toml", "a = 1")})
	require.Error(t, err)

	_, err = Load([]string{"-c", writeFile(t, "cfg.json", "{")})
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "cfg.json", `{"api_url":"http://file:1","db_path":"file.db"}`)
	t.Setenv("EVENTLY_API_URL", "http://env:2")
	t.Setenv("EVENTLY_REQUEST_TIMEOUT", "4s")

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.APIURL)
	assert.Equal(t, "file.db", cfg.DBPath)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
}

func TestLoad_BadEnvTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("EVENTLY_REQUEST_TIMEOUT", "soon")

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.Unsetenv("EVENTLY_IMAGE_BASE_URL"))
	t.Cleanup(func() { _ = os.Unsetenv("EVENTLY_IMAGE_BASE_URL") })

	require.NoError(t, os.WriteFile(dotEnvFile, []byte("EVENTLY_IMAGE_BASE_URL=https://cdn.example.com\n"), 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", cfg.ImageBaseURL)
}

func TestLoad_FlagsWin(t *testing.T) {
	isolate(t)
	path := writeFile(t, "cfg.json", `{"api_url":"http://file:1","request_timeout":"2s"}`)
	t.Setenv("EVENTLY_DB_PATH", "env.db")

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:3", "-d", "flag.db", "-t", "7", "-l", "warn", "-unrelated", "x"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.APIURL)
	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_BadFlag(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"-t", "seven"})
	require.Error(t, err)
}
