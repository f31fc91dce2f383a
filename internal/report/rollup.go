package report

import (
	"github.com/raysh454/kensa/internal/model"
)

// CountBySeverity tallies distinct root causes per severity. Findings are
// already root-cause unique when they reach the rollup.
func CountBySeverity(findings []model.Finding) model.Counts {
	var c model.Counts
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityP0:
			c.P0++
		case model.SeverityP1:
			c.P1++
		case model.SeverityP2:
			c.P2++
		case model.SeverityP3:
			c.P3++
		}
	}
	return c
}

// RiskLevel rolls counts up to the coarse screen outcome. Any kill switch or
// three strong suppressors is RED; one or two strong suppressors, or heavy
// moderate drag, is AMBER; everything else is GREEN.
func RiskLevel(c model.Counts) model.RiskLevel {
	if c.P0 >= 1 || c.P1 >= 3 {
		return model.RiskRed
	}
	if (c.P1 >= 1 && c.P1 <= 2) || c.P2 >= 5 {
		return model.RiskAmber
	}
	return model.RiskGreen
}

// ComputeTrajectory maps (baseline, current) to a direction. Nil when no
// baseline was supplied; transitions outside the table default to STABLE.
func ComputeTrajectory(baseline *model.Baseline, current model.RiskLevel) *model.Trajectory {
	if baseline == nil {
		return nil
	}

	from, to := baseline.RiskLevel, current
	t := model.TrajectoryStable
	switch {
	case from == to:
		t = model.TrajectoryStable
	case from == model.RiskRed && to == model.RiskAmber,
		from == model.RiskAmber && to == model.RiskGreen:
		t = model.TrajectoryDown
	case from == model.RiskGreen && to == model.RiskAmber,
		from == model.RiskAmber && to == model.RiskRed,
		from == model.RiskGreen && to == model.RiskRed:
		t = model.TrajectoryUp
	}
	return &t
}

// Interpretation is the one-line reading of the risk level, capped at the
// report's 150-character budget.
func Interpretation(level model.RiskLevel) string {
	var s string
	switch level {
	case model.RiskRed:
		s = "Critical suppressors detected. The site is at immediate risk of being de-indexed."
	case model.RiskAmber:
		s = "Suppression drag detected. Rankings are likely being held back until the flagged issues are fixed."
	default:
		s = "No clear suppressors detected in public signals."
	}
	return model.Truncate(s, 150)
}

// PickProof selects the single surfaced finding: lowest severity rank wins,
// first in findings order on ties. With no findings at all a canned clean
// proof pointing at the domain origin is emitted. The proof severity is
// clamped so P3 reports as P2.
func PickProof(findings []model.Finding, domain string) model.Proof {
	if len(findings) == 0 {
		return model.Proof{
			Severity: model.SeverityP2,
			Category: "Clean Screen",
			Finding:  "No clear suppressors detected",
			Evidence: model.Evidence{
				URL:     domain,
				Snippet: "no suppressing directives found in the fetched public signals",
			},
			WhyItSuppresses: "Nothing in the fetched public signals orders search engines to drop or demote these pages.",
			HowToVerify:     "Re-run the screen after significant site changes to confirm the signals stay clean.",
		}
	}

	best := findings[0]
	for _, f := range findings[1:] {
		if f.Severity.Rank() < best.Severity.Rank() {
			best = f
		}
	}

	severity := best.Severity
	if severity == model.SeverityP3 {
		severity = model.SeverityP2
	}

	return model.Proof{
		Severity: severity,
		Category: best.Category,
		Finding:  best.FindingText,
		Evidence: model.Evidence{
			URL:     best.EvidenceURL,
			Snippet: best.EvidenceSnippet,
		},
		WhyItSuppresses: best.WhyItSuppresses,
		HowToVerify:     best.HowToVerify,
	}
}
