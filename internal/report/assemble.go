package report

import (
	"github.com/raysh454/kensa/internal/model"
)

// Assemble builds the fixed-shape success document from the scan snapshot,
// the analyzer findings and the detected security flags.
func Assemble(in *model.ScanInput, findings []model.Finding, flags []string) *model.Report {
	counts := CountBySeverity(findings)
	level := RiskLevel(counts)

	used, missing := accountInputs(in)

	if flags == nil {
		flags = []string{}
	}

	return &model.Report{
		SchemaVersion: model.SchemaVersion,
		ScanMetadata: model.ScanMetadata{
			Domain:        in.Domain,
			ScanDate:      in.ScanDate,
			InputsUsed:    used,
			InputsMissing: missing,
			PagesAnalyzed: 1 + len(in.Artifacts.ExtraPages),
		},
		Result: model.Result{
			RiskLevel:      level,
			Trajectory:     ComputeTrajectory(in.Baseline, level),
			Counts:         counts,
			Interpretation: Interpretation(level),
		},
		Proof:               PickProof(findings, in.Domain),
		ModuleReadinessHint: model.ModuleReadinessHint,
		ConfidenceNote:      model.ConfidenceNote,
		SecurityFlags:       flags,
		CTA: model.CTA{
			Primary: model.CTAEntry{
				Label:       model.CTAPrimaryLabel,
				Description: model.CTAPrimaryDescription,
			},
			Secondary: model.CTAEntry{
				Label:       model.CTASecondaryLabel,
				Description: model.CTASecondaryDescription,
			},
		},
	}
}

// accountInputs splits the four artifact slots into used and missing by
// structural presence. The two lists are disjoint and cover every slot.
func accountInputs(in *model.ScanInput) (used, missing []string) {
	used = []string{}
	missing = []string{}

	mark := func(name string, present bool) {
		if present {
			used = append(used, name)
		} else {
			missing = append(missing, name)
		}
	}

	mark(model.InputHomepage, in.Artifacts.Homepage.HasHTML())
	mark(model.InputRobotsTxt, in.Artifacts.RobotsTxt.HasText())
	mark(model.InputSitemapXML, in.Artifacts.SitemapXML.HasText())
	mark(model.InputExtraPages, len(in.Artifacts.ExtraPages) > 0)

	return used, missing
}
