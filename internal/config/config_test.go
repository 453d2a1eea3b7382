package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eccentric-easel/easel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
name_prompt: "Give this artwork a short name."
description_prompt: "Describe this artwork for a shop listing."
LOCATION_IDS:
  - LOC_WAREHOUSE
  - LOC_SHOP
target_location_id: LOC_SHOP
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Give this artwork a short name.", cfg.Prompts.Name)
	assert.Equal(t, "Describe this artwork for a shop listing.", cfg.Prompts.Description)
	assert.Equal(t, []string{"LOC_WAREHOUSE", "LOC_SHOP"}, cfg.LocationIDs)
	assert.Equal(t, DefaultNameMaxTokens, cfg.NameMaxTokens)
	assert.Equal(t, DefaultDescriptionMaxTokens, cfg.DescriptionMaxTokens)
	assert.Equal(t, DefaultMaxImageDimension, cfg.MaxImageDimension)
	assert.False(t, cfg.ResizeUpload)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		content string
		missing bool
	}{
		"missing file":        {missing: true},
		"invalid yaml":        {content: "name_prompt: [unterminated"},
		"missing name prompt": {content: "description_prompt: d\n"},
		"missing desc prompt": {content: "name_prompt: n\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "configs.yml")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, models.IsKind(err, models.ConfigError), "expected ConfigError, got %v", err)
		})
	}
}

func TestResolveLocation(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	loc, err := cfg.ResolveLocation("")
	require.NoError(t, err)
	assert.Equal(t, "LOC_SHOP", loc)

	loc, err = cfg.ResolveLocation("LOC_WAREHOUSE")
	require.NoError(t, err)
	assert.Equal(t, "LOC_WAREHOUSE", loc)

	_, err = cfg.ResolveLocation("LOC_ELSEWHERE")
	assert.True(t, models.IsKind(err, models.ConfigError))
}

func TestResolveLocationUnset(t *testing.T) {
	cfg, err := Parse([]byte("name_prompt: n\ndescription_prompt: d\nLOCATION_IDS: [A, B]\n"))
	require.NoError(t, err)

	// the second entry is never picked implicitly
	_, err = cfg.ResolveLocation("")
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ConfigError))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CATALOGING_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SQUARE_APPLICATION_TOKEN", "")

	e, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "gemini", e.Provider)
	assert.Equal(t, "gemini-1.5-flash", e.Model())

	err = e.RequireModelCredentials()
	assert.True(t, models.IsKind(err, models.CredentialError))

	err = e.RequireCommerceCredentials()
	assert.True(t, models.IsKind(err, models.CredentialError))

	e.Provider = "ollama"
	assert.NoError(t, e.RequireModelCredentials())

	e.Provider = "bogus"
	assert.True(t, models.IsKind(e.RequireModelCredentials(), models.ConfigError))
}
