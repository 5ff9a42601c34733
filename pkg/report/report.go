// Package report renders reconciled findings: a severity-grouped terminal
// report with code context, a fingerprints file for allowlist curation, and
// JSON/TXT exports.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/who0xac/secretsweep/pkg/findings"
	"github.com/who0xac/secretsweep/pkg/reconcile"
)

// FingerprintsFile is where fingerprints of all findings are written after
// each run, for copying into the allowlist.
const FingerprintsFile = "secrets_scan_fingerprints.txt"

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	orange = color.New(color.FgYellow, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

func severityLabel(s findings.Severity) string {
	switch s {
	case findings.SeverityHigh:
		return red("HIGH SEVERITY")
	case findings.SeverityMedium:
		return orange("MEDIUM SEVERITY")
	default:
		return yellow("LOW SEVERITY")
	}
}

// Print writes the full terminal report and remediation guidance.
func Print(res reconcile.Result, allowFile string) {
	if len(res.Findings) == 0 {
		fmt.Println(green("\n✅ No secrets detected in the scanned files."))
		return
	}

	bySeverity := map[findings.Severity]int{}
	byRisk := map[findings.RiskType]int{}
	files := map[string]bool{}
	var stillTracked []findings.Finding
	for i := range res.Findings {
		f := &res.Findings[i]
		bySeverity[f.Severity]++
		byRisk[f.RiskType]++
		files[f.FilePath] = true
		if f.InGitHistory && f.IsStillTracked {
			stillTracked = append(stillTracked, *f)
		}
	}

	fmt.Println("\n=== SCAN SUMMARY ===")
	fmt.Printf("🚨 Found %d potential secrets in %d files.\n", len(res.Findings), len(files))
	fmt.Printf("  %s: %d findings\n", red("HIGH"), bySeverity[findings.SeverityHigh])
	fmt.Printf("  %s: %d findings\n", orange("MEDIUM"), bySeverity[findings.SeverityMedium])
	fmt.Printf("  %s: %d findings\n", yellow("LOW"), bySeverity[findings.SeverityLow])

	fmt.Println("\n=== FINDINGS BY RISK TYPE ===")
	fmt.Printf("  - %d hardcoded secrets\n", byRisk[findings.RiskHardcodedSecret])
	fmt.Printf("  - %d data exposures in logs\n", byRisk[findings.RiskDataExposureLogs])
	fmt.Printf("  - %d data exposures in responses\n", byRisk[findings.RiskDataExposureResponse])
	fmt.Printf("  - %d sensitive configuration items\n", byRisk[findings.RiskSensitiveConfig])

	if len(stillTracked) > 0 {
		printStillTracked(stillTracked)
	}

	fmt.Println("\n=== DETAILED MATCHES ===")
	for i := range res.Findings {
		printFinding(&res.Findings[i])
	}

	printGuidance(res, allowFile)
}

func printStillTracked(tracked []findings.Finding) {
	fmt.Println("\n=== CRITICAL: HISTORICAL FILES STILL TRACKED ===")
	fmt.Println("These files are gitignored but still tracked by git; their contents")
	fmt.Println("remain reachable through history and need immediate attention.")

	seen := map[string]bool{}
	for i := range tracked {
		path := strings.TrimPrefix(tracked[i].FilePath, "[git blob] ")
		if seen[path] {
			continue
		}
		seen[path] = true
		fmt.Printf("  %s %s\n", red("⚠"), path)
		fmt.Printf("    git rm --cached %q\n", path)
	}
}

func printFinding(f *findings.Finding) {
	status := ""
	if f.IsGitIgnored {
		status = " [GITIGNORED"
		if f.InGitHistory {
			status += " - IN GIT HISTORY"
		}
		status += "]"
	}

	fmt.Printf("\n⚠  %s - %s in %s line %d%s\n", severityLabel(f.Severity), f.RiskType, f.FilePath, f.LineNumber, status)
	fmt.Printf("   FINGERPRINT: %s\n", f.Fingerprint())
	fmt.Printf("   PATTERN: %s\n", f.MatchedPattern)
	if f.Note != "" {
		fmt.Printf("   NOTE: %s\n", f.Note)
	}

	printContext(f)
}

// printContext shows the surrounding lines. Git-blob findings carry no
// on-disk file to re-read, so they show only the matched line.
func printContext(f *findings.Finding) {
	if strings.HasPrefix(f.FilePath, "[git blob] ") {
		fmt.Printf("   %3d | %s\n", f.LineNumber, f.LineContent)
		return
	}

	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		fmt.Printf("   %3d | %s\n", f.LineNumber, f.LineContent)
		return
	}

	lines := strings.Split(string(data), "\n")
	start := f.LineNumber - 3
	if start < 0 {
		start = 0
	}
	end := f.LineNumber + 2
	if end > len(lines) {
		end = len(lines)
	}

	fmt.Println("   " + strings.Repeat("-", 50))
	for i := start; i < end; i++ {
		marker := ""
		if i+1 == f.LineNumber {
			marker = "  <-- ⚠ FINDING HERE"
		}
		fmt.Printf("   %3d | %s%s\n", i+1, strings.TrimRight(lines[i], "\r\n"), marker)
	}
	fmt.Println("   " + strings.Repeat("-", 50))
}

func printGuidance(res reconcile.Result, allowFile string) {
	fmt.Println("\n=== REMEDIATION GUIDANCE ===")
	fmt.Println("  - Remove hardcoded secrets and load them from the environment or a vault")
	fmt.Println("  - Never log or return sensitive values; redact before writing")
	fmt.Println("  - Rotate any credential that was ever committed; history keeps it alive")
	fmt.Println("  - Move sensitive config values out of committed files")

	fmt.Printf("\n🔁 A file %q has been written with fingerprints of all findings.\n", FingerprintsFile)
	fmt.Printf("   Copy acceptable ones into %s to suppress them in CI.\n", allowFile)

	if res.HasHigh {
		fmt.Println(red("\n⚠ HIGH SEVERITY FINDINGS REQUIRE IMMEDIATE ATTENTION"))
	}
}

// WriteFingerprints writes one full fingerprint per deduplicated finding,
// in a format ready to paste into the allowlist file.
func WriteFingerprints(fs []findings.Finding, path, allowFile string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated fingerprints from scan on %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "# Add lines from this file to %s to allowlist them\n", allowFile)
	b.WriteString("# Format: file:line:pattern\n\n")

	seen := map[string]bool{}
	for i := range fs {
		fp := fs[i].Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		b.WriteString(fs[i].FullFingerprint())
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// Summary line used by the CLI and the desktop notification.
func Summary(res reconcile.Result) string {
	high := 0
	for i := range res.Findings {
		if res.Findings[i].Severity == findings.SeverityHigh {
			high++
		}
	}
	if len(res.Findings) == 0 {
		return "scan complete: no findings"
	}
	return fmt.Sprintf("scan complete: %d findings (%d HIGH)", len(res.Findings), high)
}
