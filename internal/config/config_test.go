package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, key := range []string{
		"QUIZDRILL_QUIZ", "QUIZDRILL_TITLE", "QUIZDRILL_SHUFFLE", "QUIZDRILL_LIMIT",
		"QUIZDRILL_DB", "QUIZDRILL_LOG_FILE", "QUIZDRILL_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("quiz", "", "")
	fs.String("title", "", "")
	fs.Bool("shuffle", false, "")
	fs.Int("limit", 0, "")
	fs.String("db", "", "")
	fs.String("log-file", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", testFlags(t))
	require.NoError(t, err)

	assert.Empty(t, cfg.Quiz)
	assert.False(t, cfg.Shuffle)
	assert.Equal(t, 0, cfg.Limit)
	assert.Equal(t, filepath.Join(dir, "data", "quizdrill", "quizdrill.db"), cfg.DB)
	assert.Equal(t, filepath.Join(dir, "state", "quizdrill", "quizdrill.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Empty(t, cfg.Source)
}

func TestLoad_XDGConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "quizdrill", "config.yaml")
	writeConfig(t, path, "quiz: /srv/quiz.yaml\nshuffle: true\nlog:\n  level: debug\n  max_backups: 7\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/quiz.yaml", cfg.Quiz)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset keys keep defaults")
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "limit: 2\ntitle: Datei\ndb: /file.db\nlog:\n  level: warn\n")

	t.Setenv("QUIZDRILL_LIMIT", "5")
	t.Setenv("QUIZDRILL_TITLE", "Umgebung")
	t.Setenv("QUIZDRILL_LOG_LEVEL", "error")

	cfg, err := Load(path, testFlags(t, "--limit=3"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Limit, "flag beats env and file")
	assert.Equal(t, "Umgebung", cfg.Title, "env beats file")
	assert.Equal(t, "error", cfg.Log.Level, "nested env key")
	assert.Equal(t, "/file.db", cfg.DB, "file beats default")
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZDRILL_LOG_FILE", "/var/log/q.log")

	cfg, err := Load("", testFlags(t, "--db=/flag.db"))
	require.NoError(t, err)

	assert.Equal(t, "/flag.db", cfg.DB)
	assert.Equal(t, "/var/log/q.log", cfg.Log.File)
}

func TestLoad_NegativeLimit(t *testing.T) {
	isolate(t)

	_, err := Load("", testFlags(t, "--limit=-1"))
	require.Error(t, err)
}
