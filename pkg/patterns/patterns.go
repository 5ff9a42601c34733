// Package patterns holds the pattern groups the scan engine matches against:
// primary (mode-dependent), override (always HIGH), config-specific, and
// exclusion. Compilation never fails the scan; a pattern that does not
// compile is retried with relaxed quantifiers and dropped if that also
// fails.
package patterns

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/gobwas/glob"

	"github.com/who0xac/secretsweep/pkg/config"
)

// configExtensions classify a file as a configuration file by extension.
var configExtensions = map[string]bool{
	".ini":        true,
	".conf":       true,
	".env":        true,
	".cfg":        true,
	".yaml":       true,
	".yml":        true,
	".properties": true,
	".tfvars":     true,
}

// Matcher pairs a raw pattern string with its compiled expression.
type Matcher struct {
	Raw string
	re  *regexp.Regexp
}

// Match reports whether the matcher fires on the line.
func (m Matcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// Group is a named ordered sequence of compiled matchers.
type Group struct {
	Name     string
	matchers []Matcher
	raw      map[string]bool
}

func newGroup(name string, raws []string) *Group {
	g := &Group{Name: name, raw: make(map[string]bool, len(raws))}
	for _, raw := range raws {
		re, err := regexp.Compile(`(?i)` + raw)
		if err != nil {
			color.Yellow("⚠ could not compile %s pattern %q: %v", name, raw, err)
			// Relax the quantifiers and retry before giving up on the pattern.
			simplified := strings.ReplaceAll(raw, `\s+`, `\s*`)
			simplified = strings.ReplaceAll(simplified, `{10,}`, `{10,100}`)
			re, err = regexp.Compile(`(?i)` + simplified)
			if err != nil {
				color.Yellow("⚠ skipping pattern %q", raw)
				continue
			}
		}
		g.matchers = append(g.matchers, Matcher{Raw: raw, re: re})
		g.raw[raw] = true
	}
	return g
}

// Matchers returns the compiled matchers in declaration order.
func (g *Group) Matchers() []Matcher {
	return g.matchers
}

// Contains reports whether the raw pattern string belongs to this group.
func (g *Group) Contains(raw string) bool {
	return g.raw[raw]
}

// AnyMatch reports whether any matcher in the group fires on the line.
func (g *Group) AnyMatch(line string) bool {
	for _, m := range g.matchers {
		if m.Match(line) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled matchers in the group.
func (g *Group) Len() int {
	return len(g.matchers)
}

// Set holds the compiled pattern groups for one scanning mode together with
// the file-selection globs. A Set is read-only after Compile.
type Set struct {
	Mode           string
	Primary        *Group
	Override       *Group
	ConfigSpecific *Group
	Exclusion      *Group

	scanGlobs    []glob.Glob
	excludeGlobs []glob.Glob
	configGlobs  []glob.Glob
}

// Compile builds the pattern set for the given mode. Loose mode combines the
// base secret patterns with the additional heuristics; strict mode uses the
// short broad keyword list. Compile never fails: bad patterns and bad globs
// are dropped with a diagnostic.
func Compile(mode string, opts config.Options) *Set {
	var primary []string
	if mode == "strict" {
		primary = strictPatterns
	} else {
		primary = append(append([]string{}, loosePatterns...), additionalPatterns...)
	}

	return &Set{
		Mode:           mode,
		Primary:        newGroup("primary", primary),
		Override:       newGroup("override", overridePatterns),
		ConfigSpecific: newGroup("config", configPatterns),
		Exclusion:      newGroup("exclusion", exclusionPatterns),
		scanGlobs:      compileGlobs(opts.Extensions),
		excludeGlobs:   compileGlobs(opts.ExcludeDirs),
		configGlobs:    compileGlobs(opts.ConfigFileGlobs),
	}
}

func compileGlobs(raws []string) []glob.Glob {
	var out []glob.Glob
	for _, raw := range raws {
		g, err := glob.Compile(raw)
		if err != nil {
			color.Yellow("⚠ could not compile glob %q: %v", raw, err)
			continue
		}
		out = append(out, g)
	}
	return out
}

// Excluded reports whether the line matches any exclusion pattern and must
// be vetoed from consideration entirely.
func (s *Set) Excluded(line string) bool {
	return s.Exclusion.AnyMatch(line)
}

// IsConfigFile reports whether the path names a configuration file, by
// extension or by the configured config-filename globs.
func (s *Set) IsConfigFile(path string) bool {
	if configExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	base := filepath.Base(path)
	for _, g := range s.configGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// ShouldScanFile reports whether the path's basename matches at least one
// scan-extension glob and the path matches no exclusion-directory glob.
func (s *Set) ShouldScanFile(path string) bool {
	for _, g := range s.excludeGlobs {
		if g.Match(path) {
			return false
		}
	}
	base := filepath.Base(path)
	for _, g := range s.scanGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
