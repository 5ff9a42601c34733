// Package walker collects the files a scan run should look at: regular
// working-tree files selected by the extension and exclusion globs, plus
// files reachable through git history that are now gitignored.
package walker

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/who0xac/secretsweep/pkg/config"
	"github.com/who0xac/secretsweep/pkg/gitutil"
	"github.com/who0xac/secretsweep/pkg/patterns"
)

// FileSource reads lines from a file on disk.
type FileSource struct {
	FilePath string
}

func (s FileSource) Path() string { return s.FilePath }

func (s FileSource) Lines() ([]string, error) {
	f, err := os.Open(s.FilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// BlobSource reads lines from a git object. Its logical path carries the
// synthetic "[git blob]" marker so findings from history are
// distinguishable from working-tree findings.
type BlobSource struct {
	RepoPath string
	Ref      string
	Git      *gitutil.Client
}

func (s BlobSource) Path() string { return "[git blob] " + s.RepoPath }

func (s BlobSource) Lines() ([]string, error) {
	return s.Git.ReadBlob(s.Ref)
}

// HistoricalFile is a path that appears in git history and is now
// gitignored.
type HistoricalFile struct {
	Path         string
	StillTracked bool
	Exists       bool
}

// Walker selects files for one scan run.
type Walker struct {
	opts   config.Options
	set    *patterns.Set
	git    *gitutil.Client
	isRepo bool
}

func New(opts config.Options, set *patterns.Set, git *gitutil.Client, isRepo bool) *Walker {
	return &Walker{opts: opts, set: set, git: git, isRepo: isRepo}
}

// Collect walks the scan directory and returns the regular files to scan
// plus, when history checking is enabled, the historical gitignored files.
func (w *Walker) Collect() (regular []string, historical []HistoricalFile) {
	err := filepath.WalkDir(w.opts.Directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			color.Yellow("⚠ could not walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !w.set.ShouldScanFile(path) {
			return nil
		}
		if w.isRepo && !w.opts.ScanGitignored && w.git.IsIgnored(path) {
			return nil
		}
		regular = append(regular, path)
		return nil
	})
	if err != nil {
		color.Yellow("⚠ could not walk %s: %v", w.opts.Directory, err)
	}

	if w.isRepo && w.opts.CheckGitHistory {
		historical = w.collectHistorical()
	}
	return regular, historical
}

// collectHistorical finds files ever committed that are now gitignored.
// Paths come back from git sorted by first appearance in the log; that
// order is kept so the history stream is deterministic per repository
// state.
func (w *Walker) collectHistorical() []HistoricalFile {
	var out []HistoricalFile
	for _, rel := range w.git.ListHistoricalPaths() {
		path := filepath.Join(w.opts.Directory, rel)
		if !w.set.ShouldScanFile(path) {
			continue
		}
		if !w.git.IsIgnored(path) {
			continue
		}

		_, statErr := os.Stat(path)
		out = append(out, HistoricalFile{
			Path:         path,
			StillTracked: w.git.IsTracked(path),
			Exists:       statErr == nil,
		})
	}
	return out
}
