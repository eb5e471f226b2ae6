package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileFederated, cfg.Profile)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
}

func TestLoad_ParsesFullConfig(t *testing.T) {
	path := writeConfig(t, `
profile = "unified"
data_dir = "/var/lib/beacon"

[vector]
base_url = "http://vector.internal:8030"
timeout_seconds = 10
threshold = 0.4

[graph]
base_url = "http://graph.internal:8040"

[neo4j]
uri = "neo4j://db.internal:7687"
username = "beacon"
password = "secret"
vector_index = "embeddings"

[llm]
provider = "openai"
model = "gpt-4o-mini"
api_key = "sk-test"

[search]
timeout_seconds = 20
max_results = 30

[search.filters]
workspace = "platform"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileUnified, cfg.Profile)
	assert.Equal(t, "/var/lib/beacon", cfg.DataDir)
	assert.Equal(t, "http://vector.internal:8030", cfg.Vector.BaseURL)
	assert.Equal(t, 0.4, cfg.Vector.Threshold)
	assert.Equal(t, 10*time.Second, cfg.VectorTimeout())
	assert.Equal(t, "neo4j://db.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 20*time.Second, cfg.SearchTimeout())
	assert.Equal(t, 30, cfg.Search.MaxResults)
	assert.Equal(t, map[string]string{"workspace": "platform"}, cfg.Search.Filters)
}

func TestLoad_RejectsUnknownProfile(t *testing.T) {
	path := writeConfig(t, `profile = "turbo"`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "bard"
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bard")
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `profile = [unclosed`)

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.TimeoutSeconds = -5

	assert.Error(t, cfg.Validate())
}
