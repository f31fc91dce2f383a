package selector_test

import (
	"reflect"
	"testing"

	"github.com/raysh454/kensa/internal/selector"
)

func TestPickNavPages_KeywordRanking(t *testing.T) {
	t.Parallel()

	links := []string{
		"https://example.com/blog/some-long-article",
		"https://example.com/contact",
		"https://example.com/about",
		"https://example.com/pricing",
	}

	got := selector.PickNavPages(links)
	want := []string{
		"https://example.com/about",
		"https://example.com/contact",
		"https://example.com/pricing",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("nav picks = %v, want %v", got, want)
	}
}

func TestPickNavPages_TieBreaks(t *testing.T) {
	t.Parallel()

	// Same keyword score; shorter path wins, then lexicographic order.
	links := []string{
		"https://example.com/contact-sales",
		"https://example.com/contact",
		"https://example.com/zzz",
		"https://example.com/aaa",
	}

	got := selector.PickNavPages(links)
	want := []string{
		"https://example.com/contact",
		"https://example.com/contact-sales",
		"https://example.com/aaa",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("nav picks = %v, want %v", got, want)
	}
}

func TestPickNavPages_ExcludesRoot(t *testing.T) {
	t.Parallel()

	got := selector.PickNavPages([]string{"https://example.com/", "https://example.com"})
	if len(got) != 0 {
		t.Errorf("root paths must be excluded, got %v", got)
	}
}

func TestPickSitemapPages_DocumentOrder(t *testing.T) {
	t.Parallel()

	locs := []string{
		"https://example.com/",
		"https://example.com/first",
		"https://example.com/second",
		"https://example.com/third",
	}

	got := selector.PickSitemapPages(locs)
	want := []string{"https://example.com/first", "https://example.com/second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sitemap picks = %v, want %v", got, want)
	}
}

func TestExtraPages_DeduplicatesAcrossSources(t *testing.T) {
	t.Parallel()

	nav := []string{"https://example.com/contact", "https://example.com/about"}
	sm := []string{"https://example.com/contact", "https://example.com/pricing"}

	got := selector.ExtraPages(nav, sm)
	want := []string{
		"https://example.com/about",
		"https://example.com/contact",
		"https://example.com/pricing",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extra pages = %v, want %v", got, want)
	}
}

func TestExtraPages_CapsBudgets(t *testing.T) {
	t.Parallel()

	nav := []string{
		"https://example.com/contact",
		"https://example.com/about",
		"https://example.com/pricing",
		"https://example.com/services",
	}
	sm := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	got := selector.ExtraPages(nav, sm)
	if len(got) > selector.MaxNavPicks+selector.MaxSitemapPicks {
		t.Errorf("extra pages exceed budget: %v", got)
	}
}
