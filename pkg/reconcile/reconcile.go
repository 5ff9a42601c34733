// Package reconcile merges the pattern-scan, external-detector, and
// git-history finding streams into one final set: escalate provenance-based
// severity first, then deduplicate by bare fingerprint.
package reconcile

import "github.com/who0xac/secretsweep/pkg/findings"

// EscalationNote is appended to findings forced to HIGH by provenance.
const EscalationNote = findings.EscalationNote

// Result is the final reconciled finding set plus the CI gating signal.
type Result struct {
	Findings []findings.Finding
	HasHigh  bool
}

// Merge concatenates the three streams in fixed order (pattern-scan,
// external-detector, git-history), escalates, then keeps one survivor per
// bare fingerprint: the highest severity wins, ties go to the earliest
// stream. Merge is idempotent and escalation is monotonic.
func Merge(patternScan, detector, history []findings.Finding) Result {
	merged := make([]findings.Finding, 0, len(patternScan)+len(detector)+len(history))
	merged = append(merged, patternScan...)
	merged = append(merged, detector...)
	merged = append(merged, history...)

	// Escalation runs before grouping so an escalated low-confidence match
	// competes as HIGH in the collision rules below.
	for i := range merged {
		escalate(&merged[i])
	}

	index := make(map[string]int, len(merged))
	out := make([]findings.Finding, 0, len(merged))
	for _, f := range merged {
		fp := f.Fingerprint()
		if j, ok := index[fp]; ok {
			if f.Severity.Rank() > out[j].Severity.Rank() {
				out[j] = f
			}
			continue
		}
		index[fp] = len(out)
		out = append(out, f)
	}

	hasHigh := false
	for i := range out {
		if out[i].Severity == findings.SeverityHigh {
			hasHigh = true
			break
		}
	}
	return Result{Findings: out, HasHigh: hasHigh}
}

// escalate is a safety net for findings that arrive from outside the
// engine; engine-produced findings are already escalated before gating.
func escalate(f *findings.Finding) {
	if f.InGitHistory && f.IsStillTracked {
		f.EscalateToHigh()
	}
}
