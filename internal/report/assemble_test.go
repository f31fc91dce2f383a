package report_test

import (
	"testing"

	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/report"
)

func fullScanInput() *model.ScanInput {
	return &model.ScanInput{
		Domain:   "https://example.com/",
		ScanDate: "2026-08-06",
		Artifacts: model.Artifacts{
			Homepage: &model.HTMLArtifact{
				FinalURL: "https://example.com/",
				Status:   200,
				HTML:     "<html><title>Home</title></html>",
			},
			RobotsTxt: &model.TextArtifact{
				FinalURL: "https://example.com/robots.txt",
				Status:   200,
				Text:     "User-agent: *\nAllow: /",
			},
			SitemapXML: &model.TextArtifact{
				FinalURL: "https://example.com/sitemap.xml",
				Status:   404,
			},
			ExtraPages: []*model.HTMLArtifact{
				{FinalURL: "https://example.com/about", Status: 200, HTML: "<html><title>About</title></html>"},
			},
		},
	}
}

func TestAssemble_InputAccounting(t *testing.T) {
	t.Parallel()

	rep := report.Assemble(fullScanInput(), nil, nil)

	wantUsed := map[string]bool{"homepage": true, "robots_txt": true, "extra_pages": true}
	wantMissing := map[string]bool{"sitemap_xml": true}

	if len(rep.ScanMetadata.InputsUsed) != len(wantUsed) {
		t.Errorf("inputs_used = %v", rep.ScanMetadata.InputsUsed)
	}
	for _, in := range rep.ScanMetadata.InputsUsed {
		if !wantUsed[in] {
			t.Errorf("unexpected input used %q", in)
		}
		if wantMissing[in] {
			t.Errorf("input %q both used and missing", in)
		}
	}
	for _, in := range rep.ScanMetadata.InputsMissing {
		if !wantMissing[in] {
			t.Errorf("unexpected input missing %q", in)
		}
	}
	total := len(rep.ScanMetadata.InputsUsed) + len(rep.ScanMetadata.InputsMissing)
	if total != 4 {
		t.Errorf("inputs_used and inputs_missing must cover all four slots, got %d", total)
	}
}

func TestAssemble_PagesAnalyzed(t *testing.T) {
	t.Parallel()

	rep := report.Assemble(fullScanInput(), nil, nil)
	if rep.ScanMetadata.PagesAnalyzed != 2 {
		t.Errorf("pages_analyzed = %d, want 2", rep.ScanMetadata.PagesAnalyzed)
	}
}

func TestAssemble_FixedShape(t *testing.T) {
	t.Parallel()

	rep := report.Assemble(fullScanInput(), nil, nil)

	if rep.SchemaVersion != "1.0" {
		t.Errorf("schema_version = %q", rep.SchemaVersion)
	}
	if rep.ModuleReadinessHint == "" || rep.ConfidenceNote == "" {
		t.Error("fixed hint and note must always be present")
	}
	if rep.CTA.Primary.Label != "Book Growth Blocker Audit" {
		t.Errorf("primary CTA label = %q", rep.CTA.Primary.Label)
	}
	if rep.CTA.Secondary.Label != "Learn About Core" {
		t.Errorf("secondary CTA label = %q", rep.CTA.Secondary.Label)
	}
	if rep.SecurityFlags == nil {
		t.Error("security_flags must serialize as a list, not null")
	}
	if len(rep.Result.Interpretation) > 150 {
		t.Errorf("interpretation exceeds 150 chars: %d", len(rep.Result.Interpretation))
	}
}

func TestAssemble_TrajectoryFromBaseline(t *testing.T) {
	t.Parallel()

	in := fullScanInput()
	in.Baseline = &model.Baseline{RiskLevel: model.RiskRed, ScanDate: "2026-07-01"}

	// No findings: current level is GREEN; RED→GREEN is outside the table
	// and defaults to STABLE.
	rep := report.Assemble(in, nil, nil)
	if rep.Result.Trajectory == nil || *rep.Result.Trajectory != model.TrajectoryStable {
		t.Errorf("trajectory = %v, want STABLE", rep.Result.Trajectory)
	}
}
