package deploy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Vercel(t *testing.T) {
	var cfg struct {
		Version int `json:"version"`
		Builds  []struct {
			Src string `json:"src"`
			Use string `json:"use"`
		} `json:"builds"`
	}
	require.NoError(t, json.Unmarshal([]byte(Config("vercel")), &cfg))
	assert.Equal(t, 2, cfg.Version)
	require.Len(t, cfg.Builds, 1)
	assert.Equal(t, "@vercel/static", cfg.Builds[0].Use)
	assert.Equal(t, "vercel.json", ConfigFile("vercel"))
}

func TestConfig_Netlify(t *testing.T) {
	cfg := Config("netlify")
	assert.Contains(t, cfg, `publish = "."`)
	assert.Contains(t, cfg, `X-Frame-Options = "DENY"`)
}

func TestConfig_GitHubPagesIsValidYAML(t *testing.T) {
	var workflow map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(Config("github-pages")), &workflow))
	assert.Equal(t, "Deploy to GitHub Pages", workflow["name"])
	assert.Contains(t, workflow, "jobs")
}

func TestConfig_Unknown(t *testing.T) {
	assert.Equal(t, "", Config("heroku"))
	assert.Equal(t, "", ConfigFile("heroku"))
}

func TestPlatforms(t *testing.T) {
	for _, p := range Platforms() {
		assert.NotEmpty(t, Config(string(p)), p)
	}
}
