// Package engine drives per-file, per-line matching against the pattern
// set, applies exclusion filtering, and gates candidate findings through
// the classifier, the allowlist, and the high-only severity filter.
package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/who0xac/secretsweep/pkg/allowlist"
	"github.com/who0xac/secretsweep/pkg/classify"
	"github.com/who0xac/secretsweep/pkg/findings"
	"github.com/who0xac/secretsweep/pkg/patterns"
)

// ContentSource yields the lines of one logical scan unit. A source that
// fails to read is skipped, never fatal.
type ContentSource interface {
	Path() string
	Lines() ([]string, error)
}

// MemorySource is a ContentSource over in-memory content.
type MemorySource struct {
	SourcePath string
	Content    []string
}

func (s MemorySource) Path() string             { return s.SourcePath }
func (s MemorySource) Lines() ([]string, error) { return s.Content, nil }

// Target couples a content source with its git provenance flags.
type Target struct {
	Source       ContentSource
	GitIgnored   bool
	InHistory    bool
	StillTracked bool
}

// Engine scans targets against a compiled pattern set. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	set        *patterns.Set
	classifier *classify.Classifier
	allow      *allowlist.Matcher
	highOnly   bool
}

func New(set *patterns.Set, classifier *classify.Classifier, allow *allowlist.Matcher, highOnly bool) *Engine {
	return &Engine{
		set:        set,
		classifier: classifier,
		allow:      allow,
		highOnly:   highOnly,
	}
}

// Scan matches every pattern group against the target's lines. A line that
// fires any exclusion matcher yields nothing, overrides included. A line
// with several independent matches yields one finding per distinct matched
// pattern; collapsing same-line findings is the reconciler's job, because
// allowlisting is pattern-specific.
func (e *Engine) Scan(t Target) []findings.Finding {
	lines, err := t.Source.Lines()
	if err != nil {
		color.Yellow("⚠ could not scan %s: %v", t.Source.Path(), err)
		return nil
	}

	path := t.Source.Path()
	groups := []*patterns.Group{e.set.Override, e.set.Primary}
	if e.set.IsConfigFile(path) {
		groups = append(groups, e.set.ConfigSpecific)
	}

	var out []findings.Finding
	for i, line := range lines {
		if e.set.Excluded(line) {
			continue
		}

		seen := make(map[string]bool)
		for _, group := range groups {
			for _, m := range group.Matchers() {
				if seen[m.Raw] || !m.Match(line) {
					continue
				}
				seen[m.Raw] = true

				severity, risk := e.classifier.Classify(path, line, m.Raw)
				f := findings.Finding{
					FilePath:       path,
					LineNumber:     i + 1,
					LineContent:    strings.TrimSpace(line),
					MatchedPattern: m.Raw,
					Severity:       severity,
					RiskType:       risk,
					IsGitIgnored:   t.GitIgnored,
					InGitHistory:   t.InHistory,
					IsStillTracked: t.StillTracked,
				}

				// Escalate before the gates: a historical finding whose file
				// is still tracked must survive the high-only filter even
				// when it classified LOW.
				if f.InGitHistory && f.IsStillTracked {
					f.EscalateToHigh()
				}

				if e.allow.IsAllowed(&f) {
					continue
				}
				if e.highOnly && f.Severity != findings.SeverityHigh {
					continue
				}
				out = append(out, f)
			}
		}
	}
	return out
}

// ScanAll scans the targets with at most workers in flight. Results are
// collected per target index, so the returned stream order matches the
// target order regardless of scheduling.
func (e *Engine) ScanAll(ctx context.Context, targets []Target, workers int, progress func()) []findings.Finding {
	if workers < 1 {
		workers = 1
	}

	results := make([][]findings.Finding, len(targets))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, t := range targets {
		select {
		case <-ctx.Done():
			wg.Wait()
			return flatten(results)
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = e.Scan(t)
			if progress != nil {
				progress()
			}
		}(i, t)
	}

	wg.Wait()
	return flatten(results)
}

func flatten(results [][]findings.Finding) []findings.Finding {
	var out []findings.Finding
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
