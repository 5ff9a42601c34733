package walker

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/who0xac/secretsweep/pkg/config"
	"github.com/who0xac/secretsweep/pkg/gitutil"
	"github.com/who0xac/secretsweep/pkg/patterns"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestFileSourceLines(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"creds.env": "PASSWORD=hunter2\nAPI_KEY=abc\n"})

	src := FileSource{FilePath: filepath.Join(dir, "creds.env")}
	assert.Equal(t, filepath.Join(dir, "creds.env"), src.Path())

	lines, err := src.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"PASSWORD=hunter2", "API_KEY=abc"}, lines)
}

func TestFileSourceMissing(t *testing.T) {
	src := FileSource{FilePath: filepath.Join(t.TempDir(), "nope.env")}
	_, err := src.Lines()
	assert.Error(t, err)
}

func TestBlobSource(t *testing.T) {
	git := gitutil.NewClientWithRunner(".", func(dir string, args ...string) (string, error) {
		if args[0] == "show" {
			return "PASSWORD=hunter2\n", nil
		}
		return "", errors.New("unexpected call")
	})

	src := BlobSource{RepoPath: "old.env", Ref: "abc123:old.env", Git: git}
	assert.Equal(t, "[git blob] old.env", src.Path())

	lines, err := src.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"PASSWORD=hunter2", ""}, lines)
}

func TestCollectRegular(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"secrets.env":                "PASSWORD=hunter2\n",
		"src/app.py":                 "token = 'x'\n",
		"node_modules/pkg/creds.env": "PASSWORD=x\n",
		"logo.png":                   "binary\n",
	})

	opts := config.Default()
	opts.Directory = dir
	set := patterns.Compile("loose", opts)

	w := New(opts, set, gitutil.NewClient(dir), false)
	regular, historical := w.Collect()

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "secrets.env"),
		filepath.Join(dir, "src/app.py"),
	}, regular)
	assert.Empty(t, historical)
}

func TestCollectSkipsGitignored(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"secrets.env": "PASSWORD=hunter2\n",
		"app.py":      "token = 'x'\n",
	})

	git := gitutil.NewClientWithRunner(dir, func(_ string, args ...string) (string, error) {
		if args[0] == "check-ignore" && strings.Contains(args[2], "secrets.env") {
			return "", nil
		}
		return "", errors.New("exit 1")
	})

	opts := config.Default()
	opts.Directory = dir
	set := patterns.Compile("loose", opts)

	regular, _ := New(opts, set, git, true).Collect()
	assert.Equal(t, []string{filepath.Join(dir, "app.py")}, regular)
}

func TestCollectScanGitignoredKeepsAll(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"secrets.env": "PASSWORD=hunter2\n"})

	git := gitutil.NewClientWithRunner(dir, func(_ string, args ...string) (string, error) {
		return "", nil // everything ignored
	})

	opts := config.Default()
	opts.Directory = dir
	opts.ScanGitignored = true
	set := patterns.Compile("loose", opts)

	regular, _ := New(opts, set, git, true).Collect()
	assert.Equal(t, []string{filepath.Join(dir, "secrets.env")}, regular)
}

func TestCollectHistorical(t *testing.T) {
	dir := t.TempDir()
	// old.env still exists on disk; missing.env was deleted after being
	// committed; kept.py is in history but never gitignored.
	writeTree(t, dir, map[string]string{"old.env": "PASSWORD=hunter2\n"})

	git := gitutil.NewClientWithRunner(dir, func(_ string, args ...string) (string, error) {
		switch args[0] {
		case "log":
			return "old.env\nkept.py\nmissing.env\n", nil
		case "check-ignore":
			if strings.Contains(args[2], "kept.py") {
				return "", errors.New("exit 1")
			}
			return "", nil
		case "ls-files":
			if strings.Contains(args[2], "old.env") {
				return "old.env\n", nil
			}
			return "", errors.New("exit 1")
		}
		return "", errors.New("unexpected call")
	})

	opts := config.Default()
	opts.Directory = dir
	opts.CheckGitHistory = true
	set := patterns.Compile("loose", opts)

	_, historical := New(opts, set, git, true).Collect()

	require.Len(t, historical, 2)
	assert.Equal(t, filepath.Join(dir, "old.env"), historical[0].Path)
	assert.True(t, historical[0].StillTracked)
	assert.True(t, historical[0].Exists)

	assert.Equal(t, filepath.Join(dir, "missing.env"), historical[1].Path)
	assert.False(t, historical[1].StillTracked)
	assert.False(t, historical[1].Exists)
}
