package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "package: custom\nsuffix: out\nruntime_import: example.com/errs\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Package: "custom", Suffix: "out", RuntimeImport: "example.com/errs"}, cfg)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, t.TempDir(), "packag: typo\n"))
	assert.Error(t, err)
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSuffix, cfg.Suffix)
	assert.Equal(t, defaultRuntimeImport, cfg.RuntimeImport)
	assert.Empty(t, cfg.Package)
}

func TestResolveConfigPicksUpDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package: fromfile\n")
	cfg, err := resolveConfig(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Package)
	assert.Equal(t, DefaultSuffix, cfg.Suffix)
}

func TestResolveConfigDoesNotMutateCaller(t *testing.T) {
	given := &Config{Package: "p"}
	cfg, err := resolveConfig(t.TempDir(), given)
	require.NoError(t, err)
	assert.Equal(t, DefaultSuffix, cfg.Suffix)
	assert.Empty(t, given.Suffix)
}
