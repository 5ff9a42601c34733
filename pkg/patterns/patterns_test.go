package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/who0xac/secretsweep/pkg/config"
)

func TestCompileLoose(t *testing.T) {
	set := Compile("loose", config.Default())

	assert.Equal(t, "loose", set.Mode)
	assert.Equal(t, len(loosePatterns)+len(additionalPatterns), set.Primary.Len())
	assert.Equal(t, len(overridePatterns), set.Override.Len())
	assert.Equal(t, len(configPatterns), set.ConfigSpecific.Len())
	assert.Equal(t, len(exclusionPatterns), set.Exclusion.Len())
}

func TestCompileStrict(t *testing.T) {
	set := Compile("strict", config.Default())

	assert.Equal(t, len(strictPatterns), set.Primary.Len())
	// Override and exclusion groups do not depend on the mode.
	assert.Equal(t, len(overridePatterns), set.Override.Len())
	assert.Equal(t, len(exclusionPatterns), set.Exclusion.Len())
}

func TestBadPatternDropped(t *testing.T) {
	g := newGroup("test", []string{`(`, `token`})

	require.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(`token`))
	assert.False(t, g.Contains(`(`))
}

func TestGroupMatchCaseInsensitive(t *testing.T) {
	g := newGroup("test", []string{`akia[0-9a-z]{16}`})

	assert.True(t, g.AnyMatch("key = AKIA1234567890ABCDEF"))
}

func TestExcluded(t *testing.T) {
	set := Compile("loose", config.Default())

	tests := []struct {
		line string
		want bool
	}{
		{`# password = "S3cr3tValue123"`, true},
		{`// secret = "S3cr3tValue123"`, true},
		{`password = example_value`, true},
		{`TODO: rotate the password`, true},
		{`api_url = https://github.com/acme/creds`, true},
		{`refresh_token=refresh_token`, true},
		{`bind_host = 0.0.0.0`, true},
		{`token = data.json`, true},
		{`password = "S3cr3tValue123"`, false},
		{`AKIA1234567890ABCDEF`, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, set.Excluded(tt.line), "line: %s", tt.line)
	}
}

func TestIsConfigFile(t *testing.T) {
	set := Compile("loose", config.Default())

	tests := []struct {
		path string
		want bool
	}{
		{"config.yaml", true},
		{"deploy/settings.ini", true},
		{".env", true},
		{".env.production", true},
		{"config.js", true}, // config.* glob
		{"terraform.tfvars", true},
		{"src/app.js", false},
		{"src/main.py", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, set.IsConfigFile(tt.path), "path: %s", tt.path)
	}
}

func TestShouldScanFile(t *testing.T) {
	set := Compile("loose", config.Default())

	tests := []struct {
		path string
		want bool
	}{
		{"/proj/src/app.py", true},
		{"/proj/secrets.env", true},
		{"/proj/Dockerfile", true},
		{"/proj/node_modules/pkg/creds.env", false},
		{"/proj/.git/config", false},
		{"/proj/venv/lib/settings.py", false},
		{"/proj/docs/openapi.yaml", false},
		{"/proj/sample_data/creds.env", false},
		{"/proj/logo.png", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, set.ShouldScanFile(tt.path), "path: %s", tt.path)
	}
}
