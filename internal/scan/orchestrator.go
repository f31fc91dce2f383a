package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/kensa/internal/analyzer"
	"github.com/raysh454/kensa/internal/extractor"
	"github.com/raysh454/kensa/internal/fetcher"
	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/report"
	"github.com/raysh454/kensa/internal/secflags"
	"github.com/raysh454/kensa/internal/selector"
	"github.com/raysh454/kensa/internal/utils"
)

// Config tunes the orchestrator.
type Config struct {
	// OverallTimeout bounds one whole scan. Individual fetches carry their
	// own 12 second deadline inside the webclient.
	OverallTimeout time.Duration
}

// DefaultConfig returns the orchestrator defaults.
func DefaultConfig() Config {
	return Config{OverallTimeout: 30 * time.Second}
}

// Orchestrator runs the scan pipeline: normalize, guard, fetch homepage,
// fetch robots and sitemap, extract, select, fetch extras, analyze, flag,
// assemble. Strictly sequential per request; no state survives a scan.
type Orchestrator struct {
	cfg      Config
	fetcher  *fetcher.Fetcher
	analyzer *analyzer.Analyzer
	logger   interfaces.Logger
}

// NewOrchestrator ties together fetcher, analyzer and logger.
func NewOrchestrator(cfg Config, f *fetcher.Fetcher, an *analyzer.Analyzer, logger interfaces.Logger) *Orchestrator {
	if cfg.OverallTimeout <= 0 {
		cfg.OverallTimeout = DefaultConfig().OverallTimeout
	}
	return &Orchestrator{
		cfg:      cfg,
		fetcher:  f,
		analyzer: an,
		logger:   logger.With(interfaces.Field{Key: "component", Value: "orchestrator"}),
	}
}

// Scan screens one domain and returns the outcome document. All failures
// surface as typed error documents; per-artifact fetch failures degrade the
// report instead of aborting it.
func (o *Orchestrator) Scan(ctx context.Context, rawURL string, baseline *model.Baseline) model.Outcome {
	scanID := uuid.NewString()
	logField := interfaces.Field{Key: "scan_id", Value: scanID}

	origin, err := utils.NormalizeOrigin(rawURL)
	if err != nil {
		o.logger.Warn("rejecting unparseable url", logField,
			interfaces.Field{Key: "url", Value: rawURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return errOutcome(model.ErrorInvalidURL, fmt.Sprintf("could not parse %q as a website URL: %v", rawURL, err))
	}

	if err := utils.GuardOrigin(origin); err != nil {
		o.logger.Warn("rejecting guarded origin", logField,
			interfaces.Field{Key: "origin", Value: origin.Origin()},
			interfaces.Field{Key: "error", Value: err.Error()})
		return errOutcome(model.ErrorInvalidURL, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.OverallTimeout)
	defer cancel()

	in := &model.ScanInput{
		Domain:   origin.Origin(),
		ScanDate: time.Now().UTC().Format("2006-01-02"),
		Baseline: baseline,
	}

	o.logger.Info("scan started", logField,
		interfaces.Field{Key: "domain", Value: in.Domain})

	// Phase 1: homepage. Without homepage HTML there is nothing to screen.
	homepage, constraints := o.fetcher.FetchHTML(ctx, origin.Origin())
	addConstraints(in, constraints)
	in.Artifacts.Homepage = homepage

	if !homepage.HasHTML() {
		msg := homepageFailureMessage(homepage, constraints)
		o.logger.Warn("homepage unavailable", logField,
			interfaces.Field{Key: "domain", Value: in.Domain},
			interfaces.Field{Key: "status", Value: homepage.Status})
		return errOutcome(model.ErrorInsufficientData, msg)
	}

	// Phase 2: robots and sitemap. Failures degrade, never abort.
	robots, constraints := o.fetcher.FetchText(ctx, origin.Origin()+"robots.txt")
	addConstraints(in, constraints)
	in.Artifacts.RobotsTxt = robots
	if !robots.HasText() {
		in.AddConstraint(model.ConstraintNoRobots)
	}

	sitemap, constraints := o.fetcher.FetchText(ctx, origin.Origin()+"sitemap.xml")
	addConstraints(in, constraints)
	in.Artifacts.SitemapXML = sitemap
	if !sitemap.HasText() {
		in.AddConstraint(model.ConstraintNoSitemap)
	}

	// Phase 3: extract and select extra pages.
	var navLinks, sitemapLocs []string
	navLinks = extractor.LinksFromHTML(homepage.HTML, homepage.FinalURL, origin, o.logger)
	if sitemap.HasText() {
		sitemapLocs = extractor.LocationsFromSitemap(sitemap.Text, sitemap.FinalURL, origin, o.logger)
	}
	extraURLs := selector.ExtraPages(navLinks, sitemapLocs)

	// Phase 4: extras, in deterministic list order.
	for _, pageURL := range extraURLs {
		art, constraints := o.fetcher.FetchHTML(ctx, pageURL)
		addConstraints(in, constraints)
		if !model.ContentAvailable(art.Status) {
			continue
		}
		in.Artifacts.ExtraPages = append(in.Artifacts.ExtraPages, art)
	}

	findings := o.analyzer.Analyze(in)
	flags := secflags.Detect(in)
	rep := report.Assemble(in, findings, flags)

	o.logger.Info("scan finished", logField,
		interfaces.Field{Key: "domain", Value: in.Domain},
		interfaces.Field{Key: "risk_level", Value: rep.Result.RiskLevel},
		interfaces.Field{Key: "pages_analyzed", Value: rep.ScanMetadata.PagesAnalyzed},
		interfaces.Field{Key: "security_flags", Value: len(rep.SecurityFlags)})

	return model.Outcome{Report: rep}
}

func addConstraints(in *model.ScanInput, tokens []string) {
	for _, t := range tokens {
		in.AddConstraint(t)
	}
}

func homepageFailureMessage(art *model.HTMLArtifact, constraints []string) string {
	for _, c := range constraints {
		switch c {
		case model.ConstraintFetchFailed:
			return "homepage could not be fetched (network failure or timeout)"
		case model.ConstraintNonHTMLPage:
			return "homepage did not return HTML content"
		}
	}
	return fmt.Sprintf("homepage returned HTTP status %d", art.Status)
}

func errOutcome(kind, message string) model.Outcome {
	return model.Outcome{Err: model.NewErrorDocument(kind, message)}
}
