package findings

import "fmt"

// Severity levels for a finding, totally ordered HIGH > MEDIUM > LOW.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank returns the ordering weight of a severity (higher is more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// RiskType categorizes what kind of exposure a finding represents.
type RiskType string

const (
	RiskHardcodedSecret      RiskType = "HARDCODED_SECRET"
	RiskDataExposureLogs     RiskType = "DATA_EXPOSURE_LOGS"
	RiskDataExposureResponse RiskType = "DATA_EXPOSURE_RESPONSE"
	RiskSensitiveConfig      RiskType = "SENSITIVE_CONFIG"
)

// Finding represents one detected issue at a specific source location.
// FilePath is the scanned unit: a working-tree path, or a synthetic
// "[git blob] <path>" marker for historical-object scans.
type Finding struct {
	FilePath       string   `json:"file_path"`
	LineNumber     int      `json:"line_number"`
	LineContent    string   `json:"line_content"`
	MatchedPattern string   `json:"matched_pattern"`
	Severity       Severity `json:"severity"`
	RiskType       RiskType `json:"risk_type"`
	IsGitIgnored   bool     `json:"is_gitignored"`
	InGitHistory   bool     `json:"in_git_history"`
	IsStillTracked bool     `json:"is_still_tracked"`
	Note           string   `json:"note,omitempty"`
}

// EscalationNote is appended to findings forced to HIGH because they are
// reachable through git history while the file is still tracked.
const EscalationNote = "severity escalated to HIGH because gitignored but still tracked"

// EscalateToHigh forces severity to HIGH and records the escalation note.
// Already-HIGH findings are left alone, so escalation is idempotent.
func (f *Finding) EscalateToHigh() {
	if f.Severity == SeverityHigh {
		return
	}
	f.Severity = SeverityHigh
	if f.Note == "" {
		f.Note = EscalationNote
	} else {
		f.Note = f.Note + "; " + EscalationNote
	}
}

// Fingerprint is the file:line identity key used for deduplication.
// It is deliberately pattern-insensitive.
func (f *Finding) Fingerprint() string {
	return fmt.Sprintf("%s:%d", f.FilePath, f.LineNumber)
}

// FullFingerprint is the file:line:pattern identity key used for
// allowlisting, so a line can be partially allowlisted.
func (f *Finding) FullFingerprint() string {
	return fmt.Sprintf("%s:%d:%s", f.FilePath, f.LineNumber, f.MatchedPattern)
}

func (f *Finding) String() string {
	return fmt.Sprintf("%s - %s in %s:%d", f.Severity, f.RiskType, f.FilePath, f.LineNumber)
}
