// Package scanner orchestrates a full scan run: pattern compilation,
// allowlist loading, file collection, engine fan-out, history
// reconciliation, and reporting side effects.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gen2brain/beeep"
	"github.com/schollz/progressbar/v3"

	"github.com/who0xac/secretsweep/pkg/allowlist"
	"github.com/who0xac/secretsweep/pkg/classify"
	"github.com/who0xac/secretsweep/pkg/config"
	"github.com/who0xac/secretsweep/pkg/engine"
	"github.com/who0xac/secretsweep/pkg/gitutil"
	"github.com/who0xac/secretsweep/pkg/patterns"
	"github.com/who0xac/secretsweep/pkg/reconcile"
	"github.com/who0xac/secretsweep/pkg/report"
	"github.com/who0xac/secretsweep/pkg/walker"
)

// Scanner handles the full scanning workflow.
type Scanner struct {
	opts      config.Options
	detectors []engine.Detector
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// New creates a scanner for the given options. Detectors are optional
// external finding sources merged in stream order after the pattern scan.
func New(opts config.Options, detectors ...engine.Detector) *Scanner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scanner{
		opts:      opts,
		detectors: detectors,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Stop cancels an in-flight run.
func (s *Scanner) Stop() {
	s.cancel()
}

// Run executes the scan and returns the reconciled result.
func (s *Scanner) Run() (reconcile.Result, error) {
	opts := s.opts
	fmt.Printf("🔍 Starting secret scan in: %s (%s mode)\n", opts.Directory, strings.ToUpper(opts.Mode))

	set := patterns.Compile(opts.Mode, opts)
	classifier := classify.New(set)

	entries, err := allowlist.Load(opts.AllowFile)
	if err != nil {
		color.Yellow("⚠ could not read allowlist file: %v", err)
	}
	matcher := allowlist.NewMatcher(entries)
	if matcher.Len() > 0 {
		fmt.Printf("✓ Loaded %d acceptable findings from %s\n", matcher.Len(), opts.AllowFile)
	} else {
		fmt.Printf("ℹ No acceptable findings loaded; all findings will be reported.\n")
	}

	eng := engine.New(set, classifier, matcher, opts.HighOnly)

	git := gitutil.NewClient(opts.Directory)
	isRepo := git.IsRepository()
	if opts.CheckGitHistory && !isRepo {
		color.Yellow("⚠ --check-git-history specified but not in a git repository; disabled")
		opts.CheckGitHistory = false
	}

	w := walker.New(opts, set, git, isRepo)
	regular, historical := w.Collect()

	current := make([]engine.Target, 0, len(regular))
	for _, path := range regular {
		ignored := false
		if isRepo && opts.ScanGitignored {
			ignored = git.IsIgnored(path)
		}
		current = append(current, engine.Target{
			Source:     walker.FileSource{FilePath: path},
			GitIgnored: ignored,
		})
	}

	history := make([]engine.Target, 0, len(historical))
	for _, hf := range historical {
		var src engine.ContentSource
		if hf.Exists {
			src = walker.FileSource{FilePath: hf.Path}
		} else {
			ref := git.LastBlobRef(hf.Path)
			if ref == "" {
				continue
			}
			src = walker.BlobSource{RepoPath: hf.Path, Ref: ref, Git: git}
		}
		history = append(history, engine.Target{
			Source:       src,
			GitIgnored:   true,
			InHistory:    true,
			StillTracked: hf.StillTracked,
		})
	}

	fmt.Printf("🔎 Will scan %d regular files", len(current))
	if len(history) > 0 {
		tracked := 0
		for _, t := range history {
			if t.StillTracked {
				tracked++
			}
		}
		fmt.Printf(" and %d historical gitignored files (%d still tracked)", len(history), tracked)
	}
	fmt.Println()

	var progress func()
	if !opts.Verbose {
		bar := progressbar.Default(int64(len(current)+len(history)), "scanning")
		progress = func() { _ = bar.Add(1) }
	}

	patternFindings := eng.ScanAll(s.ctx, current, opts.Threads, progress)

	detectorFindings := eng.Adapt(s.runDetectors(current, history), func(path string) (bool, bool, bool) {
		for _, t := range history {
			if t.Source.Path() == path {
				return true, true, t.StillTracked
			}
		}
		if isRepo {
			ignored := git.IsIgnored(path)
			return ignored, false, false
		}
		return false, false, false
	})

	historyFindings := eng.ScanAll(s.ctx, history, opts.Threads, progress)

	// Reconciliation runs serially; its tie-breaking depends on stream
	// order, not arrival order.
	res := reconcile.Merge(patternFindings, detectorFindings, historyFindings)

	fmt.Printf("\n✓ Scan complete: %d findings in %d files (%s)\n",
		len(res.Findings), len(current)+len(history), time.Since(s.startTime).Round(time.Millisecond))

	if opts.Notify {
		if err := beeep.Notify("secretsweep", report.Summary(res), ""); err != nil {
			color.Yellow("⚠ could not send notification: %v", err)
		}
	}
	return res, nil
}

func (s *Scanner) runDetectors(current, history []engine.Target) []engine.Detection {
	var out []engine.Detection
	targets := append(append([]engine.Target{}, current...), history...)
	for _, d := range s.detectors {
		dets, err := d.Detect(s.ctx, targets)
		if err != nil {
			color.Yellow("⚠ external detector %s failed: %v", d.Name(), err)
			continue
		}
		out = append(out, dets...)
	}
	return out
}
