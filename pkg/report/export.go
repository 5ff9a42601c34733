package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/who0xac/secretsweep/pkg/findings"
	"github.com/who0xac/secretsweep/pkg/reconcile"
)

// Metadata describes one scan run in exported reports.
type Metadata struct {
	Directory     string    `json:"directory"`
	Mode          string    `json:"mode"`
	GeneratedAt   time.Time `json:"generated_at"`
	TotalFindings int       `json:"total_findings"`
	HighCount     int       `json:"high_count"`
	MediumCount   int       `json:"medium_count"`
	LowCount      int       `json:"low_count"`
}

type jsonReport struct {
	Metadata Metadata           `json:"metadata"`
	HasHigh  bool               `json:"has_high"`
	Findings []findings.Finding `json:"findings"`
}

func buildMetadata(res reconcile.Result, directory, mode string) Metadata {
	md := Metadata{
		Directory:     directory,
		Mode:          mode,
		GeneratedAt:   time.Now(),
		TotalFindings: len(res.Findings),
	}
	for i := range res.Findings {
		switch res.Findings[i].Severity {
		case findings.SeverityHigh:
			md.HighCount++
		case findings.SeverityMedium:
			md.MediumCount++
		case findings.SeverityLow:
			md.LowCount++
		}
	}
	return md
}

// WriteJSON exports the reconciled result as a flat JSON record set.
func WriteJSON(res reconcile.Result, directory, mode, path string) error {
	out := jsonReport{
		Metadata: buildMetadata(res, directory, mode),
		HasHigh:  res.HasHigh,
		Findings: res.Findings,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// WriteTXT exports a plain-text report grouped by severity, HIGH first.
func WriteTXT(res reconcile.Result, directory, mode, path string) error {
	md := buildMetadata(res, directory, mode)

	var b strings.Builder
	b.WriteString("=== SECRETS SCAN REPORT ===\n\n")
	fmt.Fprintf(&b, "Directory: %s\n", md.Directory)
	fmt.Fprintf(&b, "Mode: %s\n", md.Mode)
	fmt.Fprintf(&b, "Generated: %s\n", md.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Findings: %d (%d HIGH, %d MEDIUM, %d LOW)\n\n",
		md.TotalFindings, md.HighCount, md.MediumCount, md.LowCount)

	for _, sev := range []findings.Severity{findings.SeverityHigh, findings.SeverityMedium, findings.SeverityLow} {
		wrote := false
		for i := range res.Findings {
			f := &res.Findings[i]
			if f.Severity != sev {
				continue
			}
			if !wrote {
				fmt.Fprintf(&b, "[%s]\n", sev)
				wrote = true
			}
			fmt.Fprintf(&b, "  %s: %s:%d\n", f.RiskType, f.FilePath, f.LineNumber)
			fmt.Fprintf(&b, "    Match: %s\n", f.LineContent)
			fmt.Fprintf(&b, "    Pattern: %s\n", f.MatchedPattern)
			if f.Note != "" {
				fmt.Fprintf(&b, "    Note: %s\n", f.Note)
			}
			b.WriteString("\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write TXT report: %w", err)
	}
	return nil
}
