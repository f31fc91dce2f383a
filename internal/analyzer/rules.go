package analyzer

import "github.com/raysh454/kensa/internal/model"

// Root cause keys. Counting is by root cause: a key appears at most once in
// the findings of one scan no matter how many pages trip it.
const (
	KeyRobotsDisallowAll  = "ROBOTS_DISALLOW_ALL"
	KeyXRobotsNoindex     = "X_ROBOTS_NOINDEX"
	KeyMetaRobotsNoindex  = "META_ROBOTS_NOINDEX"
	KeyCanonicalOffdomain = "CANONICAL_OFFDOMAIN"
	KeyMissingTitle       = "MISSING_TITLE"
	KeyDupTitles          = "DUP_TITLES"
)

// Finding categories.
const (
	CategoryKillSwitch   = "Indexation Kill Switch"
	CategoryModerateDrag = "Moderate Drag"
)

// rule is one row of the suppression rule table. The matching logic lives in
// the analyzer; the table fixes key, severity, category and the human texts.
type rule struct {
	Key         string
	Severity    model.Severity
	Category    string
	FindingText string
	Why         string
	How         string
}

// ruleTable is the authoritative rule order. Findings are emitted in this
// order, pages walked homepage-first within each rule.
var ruleTable = []rule{
	{
		Key:         KeyRobotsDisallowAll,
		Severity:    model.SeverityP0,
		Category:    CategoryKillSwitch,
		FindingText: "robots.txt blocks all crawlers from the entire site",
		Why:         "A global Disallow: / tells every search engine to stop crawling, which starves the index until pages drop out.",
		How:         "Open /robots.txt and look for 'User-agent: *' followed by 'Disallow: /'.",
	},
	{
		Key:         KeyXRobotsNoindex,
		Severity:    model.SeverityP0,
		Category:    CategoryKillSwitch,
		FindingText: "X-Robots-Tag header orders search engines not to index this page",
		Why:         "A noindex directive sent over HTTP removes the page from search results even when the HTML looks fine.",
		How:         "Run 'curl -sI <page-url>' and inspect the X-Robots-Tag header for noindex.",
	},
	{
		Key:         KeyMetaRobotsNoindex,
		Severity:    model.SeverityP0,
		Category:    CategoryKillSwitch,
		FindingText: "Page carries a meta robots noindex tag",
		Why:         "A meta robots noindex drops the page from search results on the next crawl.",
		How:         "View the page source and search for a <meta name=\"robots\"> tag containing noindex.",
	},
	{
		Key:         KeyCanonicalOffdomain,
		Severity:    model.SeverityP0,
		Category:    CategoryKillSwitch,
		FindingText: "Canonical URL points at a different domain",
		Why:         "An off-domain canonical hands the page's ranking signals to another site; search engines index the target instead.",
		How:         "View source, find <link rel=\"canonical\"> and compare its host with the page host.",
	},
	{
		Key:         KeyMissingTitle,
		Severity:    model.SeverityP2,
		Category:    CategoryModerateDrag,
		FindingText: "Page has no <title> tag",
		Why:         "Without a title search engines synthesize one, weakening relevance and click-through.",
		How:         "View the page source and confirm the <head> contains no <title> element.",
	},
	{
		Key:         KeyDupTitles,
		Severity:    model.SeverityP2,
		Category:    CategoryModerateDrag,
		FindingText: "Multiple pages share an identical <title>",
		Why:         "Identical titles make pages compete with each other and blur which one should rank.",
		How:         "Compare the <title> of the affected pages; each indexable page needs a unique title.",
	},
}
