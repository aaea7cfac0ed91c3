package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolica-digital/faqctl/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvProjectID, EnvDataset, EnvToken, EnvAPIVersion} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.ProjectID)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
}

func TestLoad_ReadsFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	content := `
project_id = "abc123"
dataset = "production"
token = "sk-test"
api_version = "2023-05-03"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.ProjectID)
	assert.Equal(t, "production", cfg.Dataset)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, "2023-05-03", cfg.APIVersion)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	content := `
project_id = "from-file"
dataset = "production"
token = "sk-file"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	t.Setenv(EnvProjectID, "from-env")
	t.Setenv(EnvToken, "sk-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ProjectID)
	assert.Equal(t, "production", cfg.Dataset)
	assert.Equal(t, "sk-env", cfg.Token)
}

func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{ProjectID: "abc", Dataset: "production", Token: "sk-test"}
	assert.NoError(t, cfg.Validate())

	err := Config{Dataset: "production"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.Contains(t, err.Error(), "project_id")
	assert.Contains(t, err.Error(), "token")
	assert.NotContains(t, err.Error(), "dataset")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	cfg := Config{ProjectID: "abc", Dataset: "staging", Token: "sk-test", APIVersion: "2024-01-01"}
	require.NoError(t, Save(dir, cfg))

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
