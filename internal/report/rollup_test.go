package report_test

import (
	"testing"

	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/report"
)

func finding(key string, sev model.Severity) model.Finding {
	return model.Finding{
		RootCauseKey:    key,
		Severity:        sev,
		Category:        "Test",
		FindingText:     "finding " + key,
		EvidenceURL:     "https://example.com/",
		EvidenceSnippet: "snippet",
	}
}

// ─── Risk level ────────────────────────────────────────────────────────

func TestRiskLevel_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		counts model.Counts
		want   model.RiskLevel
	}{
		{"clean", model.Counts{}, model.RiskGreen},
		{"single p0", model.Counts{P0: 1}, model.RiskRed},
		{"three p1", model.Counts{P1: 3}, model.RiskRed},
		{"one p1", model.Counts{P1: 1}, model.RiskAmber},
		{"two p1", model.Counts{P1: 2}, model.RiskAmber},
		{"heavy p2", model.Counts{P2: 5}, model.RiskAmber},
		{"light p2", model.Counts{P2: 4}, model.RiskGreen},
		{"p3 only", model.Counts{P3: 9}, model.RiskGreen},
		{"p0 beats p1 band", model.Counts{P0: 2, P1: 1}, model.RiskRed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := report.RiskLevel(tc.counts); got != tc.want {
				t.Errorf("RiskLevel(%+v) = %s, want %s", tc.counts, got, tc.want)
			}
		})
	}
}

func TestCountBySeverity(t *testing.T) {
	t.Parallel()

	findings := []model.Finding{
		finding("A", model.SeverityP0),
		finding("B", model.SeverityP2),
		finding("C", model.SeverityP2),
		finding("D", model.SeverityP3),
	}
	got := report.CountBySeverity(findings)
	want := model.Counts{P0: 1, P2: 2, P3: 1}
	if got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

// ─── Trajectory ────────────────────────────────────────────────────────

func TestComputeTrajectory_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from model.RiskLevel
		to   model.RiskLevel
		want model.Trajectory
	}{
		{model.RiskRed, model.RiskRed, model.TrajectoryStable},
		{model.RiskRed, model.RiskAmber, model.TrajectoryDown},
		{model.RiskAmber, model.RiskGreen, model.TrajectoryDown},
		{model.RiskGreen, model.RiskAmber, model.TrajectoryUp},
		{model.RiskAmber, model.RiskRed, model.TrajectoryUp},
		{model.RiskGreen, model.RiskRed, model.TrajectoryUp},
		// Transitions outside the table default to STABLE.
		{model.RiskRed, model.RiskGreen, model.TrajectoryStable},
	}

	for _, tc := range cases {
		baseline := &model.Baseline{RiskLevel: tc.from}
		got := report.ComputeTrajectory(baseline, tc.to)
		if got == nil || *got != tc.want {
			t.Errorf("trajectory %s→%s = %v, want %s", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestComputeTrajectory_NoBaseline(t *testing.T) {
	t.Parallel()

	if got := report.ComputeTrajectory(nil, model.RiskGreen); got != nil {
		t.Errorf("expected nil trajectory without baseline, got %v", *got)
	}
}

// ─── Proof selection ───────────────────────────────────────────────────

func TestPickProof_SeverityOrder(t *testing.T) {
	t.Parallel()

	findings := []model.Finding{
		finding("MODERATE", model.SeverityP2),
		finding("KILL", model.SeverityP0),
		finding("STRONG", model.SeverityP1),
	}
	proof := report.PickProof(findings, "https://example.com/")
	if proof.Finding != "finding KILL" {
		t.Errorf("expected P0 finding as proof, got %q", proof.Finding)
	}
	if proof.Severity != model.SeverityP0 {
		t.Errorf("proof severity = %s, want P0", proof.Severity)
	}
}

func TestPickProof_FirstWinsOnTie(t *testing.T) {
	t.Parallel()

	findings := []model.Finding{
		finding("FIRST", model.SeverityP2),
		finding("SECOND", model.SeverityP2),
	}
	proof := report.PickProof(findings, "https://example.com/")
	if proof.Finding != "finding FIRST" {
		t.Errorf("expected first finding on severity tie, got %q", proof.Finding)
	}
}

func TestPickProof_ClampsP3(t *testing.T) {
	t.Parallel()

	findings := []model.Finding{finding("HYGIENE", model.SeverityP3)}
	proof := report.PickProof(findings, "https://example.com/")
	if proof.Severity != model.SeverityP2 {
		t.Errorf("P3 proof must be reported as P2, got %s", proof.Severity)
	}
}

func TestPickProof_CannedWhenClean(t *testing.T) {
	t.Parallel()

	proof := report.PickProof(nil, "https://example.com/")
	if proof.Severity != model.SeverityP2 {
		t.Errorf("canned proof severity = %s, want P2", proof.Severity)
	}
	if proof.Evidence.URL != "https://example.com/" {
		t.Errorf("canned proof must point at the domain origin, got %q", proof.Evidence.URL)
	}
}
