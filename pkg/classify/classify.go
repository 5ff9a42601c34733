// Package classify decides the severity and risk category of a matched line.
// The rule ladder is an ordered confidence ranking: the rules are not
// mutually exclusive and the first satisfied rule determines severity, so
// the order must not be rearranged.
package classify

import (
	"regexp"
	"strings"

	"github.com/who0xac/secretsweep/pkg/findings"
	"github.com/who0xac/secretsweep/pkg/patterns"
)

var (
	logLexicon      = []string{"console.", "print", "echo", "log."}
	responseLexicon = []string{"return", "res.", "response"}
	secretLexicon   = []string{"pass", "secret", "token", "api", "cred"}
	databaseTerms   = []string{"postgres", "sql", "mysql", "mongo"}
	passwordTerms   = []string{"password", "pass", "pwd"}

	sensitiveTerms = []string{
		"client_id", "client_secret", "api_key", "password", "token",
		"access_key", "database_url", "secret", "key", "auth", "credential",
	}

	quotedValueRe    = regexp.MustCompile(`(=|:)\s*["'][0-9a-zA-Z._=/-]{16,}["']`)
	passwordAssignRe = regexp.MustCompile(`(password|pass|pwd)\s*=`)
)

const specialChars = "!@#$%^&*"

// Classifier is a pure function over (path, line, pattern); it carries the
// pattern set only to answer override-group membership and config-file
// classification.
type Classifier struct {
	set *patterns.Set
}

func New(set *patterns.Set) *Classifier {
	return &Classifier{set: set}
}

// Classify determines severity and risk type for a single match.
func (c *Classifier) Classify(filePath, lineContent, matchedPattern string) (findings.Severity, findings.RiskType) {
	lower := strings.ToLower(lineContent)

	// Risk type is orthogonal to severity and decided up front.
	risk := findings.RiskHardcodedSecret
	switch {
	case containsAny(lower, logLexicon):
		risk = findings.RiskDataExposureLogs
	case containsAny(lower, responseLexicon):
		risk = findings.RiskDataExposureResponse
	case strings.Contains(lineContent, "[") && strings.Contains(lineContent, "]"):
		risk = findings.RiskSensitiveConfig
	}

	// Override patterns are the highest-confidence signal, but only for the
	// finding whose own matched pattern is in the override group.
	if c.set.Override.Contains(matchedPattern) && c.set.Override.AnyMatch(lineContent) {
		return findings.SeverityHigh, risk
	}

	// Value assignments of sensitive terms in config files.
	if c.set.IsConfigFile(filePath) && strings.Contains(lineContent, "=") && containsAny(lower, sensitiveTerms) {
		return findings.SeverityHigh, risk
	}

	// Secrets flowing through logging calls.
	if containsAny(lower, logLexicon) && containsAny(lower, secretLexicon) {
		return findings.SeverityHigh, risk
	}

	// Generic key/value with a long quoted value.
	if quotedValueRe.MatchString(lineContent) {
		return findings.SeverityMedium, risk
	}

	// Database credentials in any file.
	if containsAny(lower, databaseTerms) && containsAny(lower, passwordTerms) {
		return findings.SeverityHigh, risk
	}

	// Password assignment with special characters.
	if passwordAssignRe.MatchString(lower) && strings.ContainsAny(lineContent, specialChars) {
		return findings.SeverityHigh, risk
	}

	// client_id/client_secret anywhere forces HIGH.
	if strings.Contains(lower, "client_id") || strings.Contains(lower, "client_secret") {
		return findings.SeverityHigh, risk
	}

	return findings.SeverityLow, risk
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
