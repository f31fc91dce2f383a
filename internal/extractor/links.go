package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/utils"
)

// Schemes an anchor may carry that can never be crawled.
var rejectedPrefixes = []string{"mailto:", "tel:", "javascript:"}

// Asset extensions excluded from page candidates.
var excludedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".zip"}

// LinksFromHTML extracts same-origin anchor targets from a page in document
// order. Targets are resolved against the page's final URL, filtered to the
// homepage origin, stripped of fragments and asset extensions, and
// de-duplicated by absolute URL string preserving first-seen order.
func LinksFromHTML(pageHTML, finalURL string, origin *utils.URLTools, logger interfaces.Logger) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		logger.Warn("couldn't parse page html",
			interfaces.Field{Key: "url", Value: finalURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}

	base, err := utils.NewURLTools(finalURL)
	if err != nil {
		logger.Warn("couldn't parse page final url",
			interfaces.Field{Key: "url", Value: finalURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}

	var links []string
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || hasRejectedPrefix(href) {
			return
		}

		resolved, err := base.Resolve(href)
		if err != nil {
			return
		}

		target := &utils.URLTools{URL: resolved}
		if !origin.SameOrigin(target) {
			return
		}
		if hasExcludedExtension(resolved.Path) {
			return
		}

		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}

func hasRejectedPrefix(href string) bool {
	lowered := strings.ToLower(href)
	for _, p := range rejectedPrefixes {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	return false
}

func hasExcludedExtension(path string) bool {
	lowered := strings.ToLower(path)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}
