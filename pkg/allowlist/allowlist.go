// Package allowlist decides whether a candidate finding has already been
// reviewed and accepted. Entries are fingerprints or fingerprint globs; the
// store is append-only from the scanner's point of view.
package allowlist

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/who0xac/secretsweep/pkg/findings"
)

// Entry is one stored fingerprint or fingerprint glob with optional review
// metadata.
type Entry struct {
	Fingerprint string `yaml:"fingerprint"`
	Reason      string `yaml:"reason,omitempty"`
	Author      string `yaml:"author,omitempty"`
	AddedAt     string `yaml:"added_at,omitempty"`
}

// Load reads allowlist entries from path. Files ending in .yaml or .yml are
// parsed as a YAML entry list; anything else is plain text, one fingerprint
// per line, with '#' comments and blank lines skipped. A missing file is not
// an error and yields no entries.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open allowlist file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read allowlist file: %w", err)
		}
		var entries []Entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse allowlist file: %w", err)
		}
		return entries, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Fingerprint: line})
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read allowlist file: %w", err)
	}
	return entries, nil
}

type wildcardEntry struct {
	raw string
	re  *regexp.Regexp
}

// Matcher answers whether a finding is already accepted. It is read-only
// after construction.
type Matcher struct {
	exact     []string
	wildcards []wildcardEntry
}

// NewMatcher pre-compiles the wildcard entries. An entry containing '*' is
// converted to a prefix regex: the non-wildcard remainder is literal-escaped
// so malformed glob entries can never break matching.
func NewMatcher(entries []Entry) *Matcher {
	m := &Matcher{}
	for _, e := range entries {
		if e.Fingerprint == "" {
			continue
		}
		if strings.Contains(e.Fingerprint, "*") {
			parts := strings.Split(e.Fingerprint, "*")
			for i, p := range parts {
				parts[i] = regexp.QuoteMeta(p)
			}
			re, err := regexp.Compile("^" + strings.Join(parts, ".*"))
			if err != nil {
				continue
			}
			m.wildcards = append(m.wildcards, wildcardEntry{raw: e.Fingerprint, re: re})
			continue
		}
		m.exact = append(m.exact, e.Fingerprint)
	}
	return m
}

// IsAllowed reports whether the finding matches a stored entry. Checks run
// in order: exact full fingerprint, exact bare fingerprint (whole-line
// allow), then wildcard entries against both fingerprints. The first match
// short-circuits.
func (m *Matcher) IsAllowed(f *findings.Finding) bool {
	full := f.FullFingerprint()
	bare := f.Fingerprint()

	for _, e := range m.exact {
		if e == full {
			return true
		}
	}
	for _, e := range m.exact {
		if e == bare {
			return true
		}
	}
	for _, w := range m.wildcards {
		if w.re.MatchString(bare) || w.re.MatchString(full) {
			return true
		}
	}
	return false
}

// Len returns the number of usable entries.
func (m *Matcher) Len() int {
	return len(m.exact) + len(m.wildcards)
}
