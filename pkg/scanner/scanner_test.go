package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/who0xac/secretsweep/pkg/config"
	"github.com/who0xac/secretsweep/pkg/engine"
	"github.com/who0xac/secretsweep/pkg/findings"
)

func testOptions(t *testing.T, files map[string]string) config.Options {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	opts := config.Default()
	opts.Directory = dir
	opts.AllowFile = filepath.Join(dir, ".gitleaks-acceptable.txt")
	opts.Verbose = true
	opts.Threads = 2
	return opts
}

func TestRunFindsHardcodedSecrets(t *testing.T) {
	opts := testOptions(t, map[string]string{
		"secrets.env": "PASSWORD=hunter2!\n",
		"notes.txt":   "nothing sensitive here\n",
	})

	res, err := New(opts).Run()
	require.NoError(t, err)

	// Several patterns fire on the same line; reconciliation keeps one
	// survivor.
	require.Len(t, res.Findings, 1)
	assert.Equal(t, findings.SeverityHigh, res.Findings[0].Severity)
	assert.Equal(t, 1, res.Findings[0].LineNumber)
	assert.True(t, res.HasHigh)
}

func TestRunAppliesAllowlist(t *testing.T) {
	opts := testOptions(t, map[string]string{
		"secrets.env": "PASSWORD=hunter2!\n",
	})
	allowPath := filepath.Join(opts.Directory, ".gitleaks-acceptable.txt")
	entry := filepath.Join(opts.Directory, "secrets.env") + ":1:*\n"
	require.NoError(t, os.WriteFile(allowPath, []byte(entry), 0644))

	res, err := New(opts).Run()
	require.NoError(t, err)

	assert.Empty(t, res.Findings)
	assert.False(t, res.HasHigh)
}

func TestRunHighOnly(t *testing.T) {
	opts := testOptions(t, map[string]string{
		"app.py": "auth = 'Bearer abcdef123456'\n",
	})
	opts.HighOnly = true

	res, err := New(opts).Run()
	require.NoError(t, err)

	for i := range res.Findings {
		assert.Equal(t, findings.SeverityHigh, res.Findings[i].Severity)
	}
}

type fakeDetector struct {
	detections []engine.Detection
}

func (d fakeDetector) Name() string { return "fake" }

func (d fakeDetector) Detect(_ context.Context, _ []engine.Target) ([]engine.Detection, error) {
	return d.detections, nil
}

func TestRunMergesDetectorStream(t *testing.T) {
	opts := testOptions(t, map[string]string{
		"notes.txt": "nothing sensitive here\n",
	})

	det := fakeDetector{detections: []engine.Detection{{
		FilePath:    "vault/config.yaml",
		LineNumber:  3,
		LineContent: `password = "S3cr3tValue123"`,
		Label:       "detect-secrets:KeywordDetector",
	}}}

	res, err := New(opts, det).Run()
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, "vault/config.yaml", res.Findings[0].FilePath)
	assert.Equal(t, "detect-secrets:KeywordDetector", res.Findings[0].MatchedPattern)
	assert.Equal(t, findings.SeverityHigh, res.Findings[0].Severity)
}
