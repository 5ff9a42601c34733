package engine

import (
	"context"
	"strings"

	"github.com/who0xac/secretsweep/pkg/findings"
)

// Detection is one raw hit from an external detector.
type Detection struct {
	FilePath    string
	LineNumber  int
	LineContent string
	Label       string
}

// Detector is any external component able to produce candidate detections
// over the scan targets. Its internals (plugins, thresholds) are opaque to
// the engine; detections flow through the same classifier and gates as
// pattern matches.
type Detector interface {
	Name() string
	Detect(ctx context.Context, targets []Target) ([]Detection, error)
}

// Provenance looks up the git flags for a detection's file path.
type Provenance func(path string) (gitIgnored, inHistory, stillTracked bool)

// Adapt converts raw detections into findings, classifying each with the
// detector label as the matched pattern and applying the allowlist and
// high-only gates.
func (e *Engine) Adapt(detections []Detection, prov Provenance) []findings.Finding {
	var out []findings.Finding
	for _, d := range detections {
		content := strings.TrimSpace(d.LineContent)
		severity, risk := e.classifier.Classify(d.FilePath, content, d.Label)

		var ignored, inHistory, tracked bool
		if prov != nil {
			ignored, inHistory, tracked = prov(d.FilePath)
		}

		f := findings.Finding{
			FilePath:       d.FilePath,
			LineNumber:     d.LineNumber,
			LineContent:    content,
			MatchedPattern: d.Label,
			Severity:       severity,
			RiskType:       risk,
			IsGitIgnored:   ignored,
			InGitHistory:   inHistory,
			IsStillTracked: tracked,
		}

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
	return out
}
