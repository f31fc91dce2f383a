package selector

import (
	"net/url"
	"sort"
	"strings"
)

// Page budgets for one scan.
const (
	MaxNavPicks     = 3
	MaxSitemapPicks = 2
)

// navKeywords rank homepage links by how likely they are to carry commercial
// intent. A link scores the lowest index at which any keyword occurs in its
// lowered pathname; links matching nothing score 999.
var navKeywords = []string{"contact", "about", "services", "service", "pricing", "book", "audit", "diagnostic"}

const noMatchScore = 999

type candidate struct {
	raw   string
	path  string
	score int
}

// PickNavPages deterministically picks up to MaxNavPicks priority pages from
// homepage links: keyword score ascending, then pathname length, then
// pathname lexicographically. The root path is excluded.
func PickNavPages(links []string) []string {
	var cands []candidate
	seen := map[string]struct{}{}

	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		path := u.Path
		if isRoot(path) {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		cands = append(cands, candidate{raw: link, path: path, score: keywordScore(path)})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score < cands[j].score
		}
		if len(cands[i].path) != len(cands[j].path) {
			return len(cands[i].path) < len(cands[j].path)
		}
		return cands[i].path < cands[j].path
	})

	picks := make([]string, 0, MaxNavPicks)
	for _, c := range cands {
		if len(picks) == MaxNavPicks {
			break
		}
		picks = append(picks, c.raw)
	}
	return picks
}

// PickSitemapPages takes the first MaxSitemapPicks sitemap locations in
// document order, excluding the root path.
func PickSitemapPages(locations []string) []string {
	picks := make([]string, 0, MaxSitemapPicks)
	seen := map[string]struct{}{}

	for _, loc := range locations {
		if len(picks) == MaxSitemapPicks {
			break
		}
		u, err := url.Parse(loc)
		if err != nil {
			continue
		}
		if isRoot(u.Path) {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		picks = append(picks, loc)
	}
	return picks
}

// ExtraPages builds the final extra-page list: nav picks then sitemap picks,
// de-duplicated preserving order.
func ExtraPages(navLinks, sitemapLocations []string) []string {
	nav := PickNavPages(navLinks)
	sm := PickSitemapPages(sitemapLocations)

	var out []string
	seen := map[string]struct{}{}
	for _, u := range append(nav, sm...) {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func keywordScore(path string) int {
	lowered := strings.ToLower(path)
	score := noMatchScore
	for _, kw := range navKeywords {
		if idx := strings.Index(lowered, kw); idx >= 0 && idx < score {
			score = idx
		}
	}
	return score
}

func isRoot(path string) bool {
	return path == "" || path == "/"
}
