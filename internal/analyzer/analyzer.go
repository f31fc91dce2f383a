package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/utils"
)

var reDisallowAll = regexp.MustCompile(`(?mi)^\s*disallow:\s*/\s*$`)

// Analyzer runs the suppression rule table over a ScanInput and produces
// root-cause keyed findings. It is pure: no network, no shared state, stable
// output order for identical inputs.
type Analyzer struct {
	logger interfaces.Logger
}

// New creates an Analyzer.
func New(logger interfaces.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With(interfaces.Field{Key: "component", Value: "analyzer"}),
	}
}

// page pairs an HTML artifact with its parsed document so each page is
// parsed at most once per scan.
type page struct {
	art *model.HTMLArtifact
	doc *goquery.Document
}

// Analyze evaluates every rule in table order. Each root cause is recorded at
// most once; pages are walked homepage-first so the earliest matching page
// provides the evidence.
func (a *Analyzer) Analyze(in *model.ScanInput) []model.Finding {
	pages := a.collectPages(in)

	var findings []model.Finding
	present := map[string]struct{}{}

	add := func(f model.Finding) {
		if _, dup := present[f.RootCauseKey]; dup {
			return
		}
		present[f.RootCauseKey] = struct{}{}
		findings = append(findings, f)
	}

	for _, r := range ruleTable {
		switch r.Key {
		case KeyRobotsDisallowAll:
			if f, ok := a.checkRobotsDisallowAll(r, in.Artifacts.RobotsTxt); ok {
				add(f)
			}
		case KeyXRobotsNoindex:
			if f, ok := a.checkXRobotsNoindex(r, in); ok {
				add(f)
			}
		case KeyMetaRobotsNoindex:
			if f, ok := a.checkMetaRobotsNoindex(r, pages); ok {
				add(f)
			}
		case KeyCanonicalOffdomain:
			if f, ok := a.checkCanonicalOffdomain(r, pages); ok {
				add(f)
			}
		case KeyMissingTitle:
			if f, ok := a.checkMissingTitle(r, pages); ok {
				add(f)
			}
		case KeyDupTitles:
			if f, ok := a.checkDupTitles(r, pages); ok {
				add(f)
			}
		}
	}

	a.logger.Info("analysis complete",
		interfaces.Field{Key: "pages", Value: len(pages)},
		interfaces.Field{Key: "findings", Value: len(findings)})

	return findings
}

// collectPages parses homepage plus extra pages that carry HTML, preserving
// scan order.
func (a *Analyzer) collectPages(in *model.ScanInput) []page {
	arts := make([]*model.HTMLArtifact, 0, 1+len(in.Artifacts.ExtraPages))
	if in.Artifacts.Homepage != nil {
		arts = append(arts, in.Artifacts.Homepage)
	}
	arts = append(arts, in.Artifacts.ExtraPages...)

	var pages []page
	for _, art := range arts {
		if !art.HasHTML() {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(art.HTML))
		if err != nil {
			a.logger.Warn("couldn't parse page for analysis",
				interfaces.Field{Key: "url", Value: art.FinalURL},
				interfaces.Field{Key: "error", Value: err.Error()})
			continue
		}
		pages = append(pages, page{art: art, doc: doc})
	}
	return pages
}

func (a *Analyzer) checkRobotsDisallowAll(r rule, robots *model.TextArtifact) (model.Finding, bool) {
	if !robots.HasText() {
		return model.Finding{}, false
	}
	lowered := strings.ToLower(robots.Text)
	if !strings.Contains(lowered, "user-agent: *") {
		return model.Finding{}, false
	}
	match := reDisallowAll.FindString(robots.Text)
	if match == "" {
		return model.Finding{}, false
	}

	snippet := "User-agent: *\n" + strings.TrimSpace(match)
	return buildFinding(r, robots.FinalURL, snippet), true
}

func (a *Analyzer) checkXRobotsNoindex(r rule, in *model.ScanInput) (model.Finding, bool) {
	arts := make([]*model.HTMLArtifact, 0, 1+len(in.Artifacts.ExtraPages))
	if in.Artifacts.Homepage != nil {
		arts = append(arts, in.Artifacts.Homepage)
	}
	arts = append(arts, in.Artifacts.ExtraPages...)

	for _, art := range arts {
		tag := strings.ToLower(art.Headers["x-robots-tag"])
		if strings.Contains(tag, "noindex") {
			snippet := "x-robots-tag: " + art.Headers["x-robots-tag"]
			return buildFinding(r, art.FinalURL, snippet), true
		}
	}
	return model.Finding{}, false
}

func (a *Analyzer) checkMetaRobotsNoindex(r rule, pages []page) (model.Finding, bool) {
	for _, p := range pages {
		var snippet string
		p.doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			name, _ := sel.Attr("name")
			if !strings.EqualFold(strings.TrimSpace(name), "robots") {
				return true
			}
			content, _ := sel.Attr("content")
			if !strings.Contains(strings.ToLower(content), "noindex") {
				return true
			}
			if html, err := goquery.OuterHtml(sel); err == nil {
				snippet = html
			} else {
				snippet = fmt.Sprintf(`<meta name=%q content=%q>`, name, content)
			}
			return false
		})
		if snippet != "" {
			return buildFinding(r, p.art.FinalURL, snippet), true
		}
	}
	return model.Finding{}, false
}

func (a *Analyzer) checkCanonicalOffdomain(r rule, pages []page) (model.Finding, bool) {
	for _, p := range pages {
		base, err := utils.NewURLTools(p.art.FinalURL)
		if err != nil {
			continue
		}

		var snippet string
		p.doc.Find("link[rel][href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			rel, _ := sel.Attr("rel")
			if !strings.EqualFold(strings.TrimSpace(rel), "canonical") {
				return true
			}
			href, _ := sel.Attr("href")
			resolved, err := base.Resolve(strings.TrimSpace(href))
			if err != nil {
				return true
			}
			if resolved.Hostname() == "" || resolved.Hostname() == base.URL.Hostname() {
				return true
			}
			if html, err := goquery.OuterHtml(sel); err == nil {
				snippet = html
			} else {
				snippet = fmt.Sprintf(`<link rel="canonical" href=%q>`, href)
			}
			return false
		})
		if snippet != "" {
			return buildFinding(r, p.art.FinalURL, snippet), true
		}
	}
	return model.Finding{}, false
}

func (a *Analyzer) checkMissingTitle(r rule, pages []page) (model.Finding, bool) {
	for _, p := range pages {
		if p.doc.Find("title").Length() == 0 {
			return buildFinding(r, p.art.FinalURL, "no <title> element found in document"), true
		}
	}
	return model.Finding{}, false
}

func (a *Analyzer) checkDupTitles(r rule, pages []page) (model.Finding, bool) {
	// Walk pages in scan order; the first title seen on a second distinct
	// page produces the finding. Further duplicates fold into the same root
	// cause and add nothing.
	byTitle := map[string][]string{}
	for _, p := range pages {
		title := strings.TrimSpace(p.doc.Find("title").First().Text())
		if title == "" {
			continue
		}
		urls := byTitle[title]
		if containsString(urls, p.art.FinalURL) {
			continue
		}
		urls = append(urls, p.art.FinalURL)
		byTitle[title] = urls

		if len(urls) == 2 {
			snippet := "<title>" + title + "</title> shared by " + urls[0] + " and " + urls[1]
			return buildFinding(r, urls[1], snippet), true
		}
	}
	return model.Finding{}, false
}

// buildFinding applies the field caps and fills the finding from the rule row.
func buildFinding(r rule, evidenceURL, snippet string) model.Finding {
	return model.Finding{
		RootCauseKey:    r.Key,
		Severity:        r.Severity,
		Category:        r.Category,
		FindingText:     model.Truncate(r.FindingText, model.MaxFindingTextChars),
		EvidenceURL:     evidenceURL,
		EvidenceSnippet: model.Truncate(snippet, model.MaxSnippetChars),
		WhyItSuppresses: model.Truncate(r.Why, model.MaxWhyChars),
		HowToVerify:     model.Truncate(r.How, model.MaxVerifyChars),
	}
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
