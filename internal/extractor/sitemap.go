package extractor

import (
	"strings"

	sitemap "github.com/oxffaa/gopher-parse-sitemap"

	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/utils"
)

// LocationsFromSitemap extracts every <loc> value from a sitemap document in
// document order. Both urlset and sitemapindex files are handled; index
// entries join the candidate list like ordinary URLs and are never fetched
// recursively. Locations are resolved against the sitemap URL, filtered to
// the homepage origin and de-duplicated preserving order.
func LocationsFromSitemap(xmlText, sitemapURL string, origin *utils.URLTools, logger interfaces.Logger) []string {
	var raw []string

	// A urlset document yields entries here; an index document yields none.
	err := sitemap.Parse(strings.NewReader(xmlText), func(e sitemap.Entry) error {
		raw = append(raw, e.GetLocation())
		return nil
	})
	if err != nil {
		logger.Debug("sitemap urlset parse",
			interfaces.Field{Key: "url", Value: sitemapURL},
			interfaces.Field{Key: "error", Value: err.Error()})
	}

	// And vice versa for sitemapindex documents.
	err = sitemap.ParseIndex(strings.NewReader(xmlText), func(e sitemap.IndexEntry) error {
		raw = append(raw, e.GetLocation())
		return nil
	})
	if err != nil {
		logger.Debug("sitemap index parse",
			interfaces.Field{Key: "url", Value: sitemapURL},
			interfaces.Field{Key: "error", Value: err.Error()})
	}

	base, err := utils.NewURLTools(sitemapURL)
	if err != nil {
		logger.Warn("couldn't parse sitemap url",
			interfaces.Field{Key: "url", Value: sitemapURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}

	var locations []string
	seen := map[string]struct{}{}

	for _, loc := range raw {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}

		resolved, err := base.Resolve(loc)
		if err != nil {
			continue
		}

		target := &utils.URLTools{URL: resolved}
		if !origin.SameOrigin(target) {
			continue
		}

		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		locations = append(locations, abs)
	}

	return locations
}
