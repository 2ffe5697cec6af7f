// Package deploy renders hosting configuration for a generated static site.
package deploy

type Platform string

const (
	Vercel      Platform = "vercel"
	Netlify     Platform = "netlify"
	GitHubPages Platform = "github-pages"
)

const vercelConfig = `{
  "version": 2,
  "builds": [
    {
      "src": "**/*",
      "use": "@vercel/static"
    }
  ]
}`

const netlifyConfig = `[build]
  publish = "."

[[headers]]
  for = "/*"
  [headers.values]
    X-Frame-Options = "DENY"
    X-XSS-Protection = "1; mode=block"`

const githubPagesConfig = `name: Deploy to GitHub Pages

on:
  push:
    branches: [ main ]

jobs:
  deploy:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Deploy to GitHub Pages
        uses: peaceiris/actions-gh-pages@v3
        with:
          github_token: ${{ secrets.GITHUB_TOKEN }}
          publish_dir: ./`

var configs = map[Platform]struct {
	file    string
	content string
}{
	Vercel:      {"vercel.json", vercelConfig},
	Netlify:     {"netlify.toml", netlifyConfig},
	GitHubPages: {".github/workflows/deploy.yml", githubPagesConfig},
}

// Platforms lists the supported targets.
func Platforms() []Platform {
	return []Platform{Vercel, Netlify, GitHubPages}
}

// Config returns the configuration text for platform, or "" if unknown.
func Config(platform string) string {
	return configs[Platform(platform)].content
}

// ConfigFile is the conventional path of the config file for platform.
func ConfigFile(platform string) string {
	return configs[Platform(platform)].file
}
