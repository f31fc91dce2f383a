package extractor_test

import (
	"reflect"
	"testing"

	"github.com/raysh454/kensa/internal/extractor"
	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/utils"
)

func origin(t *testing.T, raw string) *utils.URLTools {
	t.Helper()
	u, err := utils.NormalizeOrigin(raw)
	if err != nil {
		t.Fatalf("NormalizeOrigin(%q): %v", raw, err)
	}
	return u
}

func TestLinksFromHTML_DocumentOrderAndResolution(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="contact">Contact</a>
		<a href="https://example.com/pricing">Pricing</a>
	</body></html>`

	got := extractor.LinksFromHTML(html, "https://example.com/", origin(t, "https://example.com"), interfaces.NewTestLogger(false))
	want := []string{
		"https://example.com/about",
		"https://example.com/contact",
		"https://example.com/pricing",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestLinksFromHTML_RejectsNonCrawlableSchemes(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="mailto:sales@example.com">Mail</a>
		<a href="tel:+123456">Call</a>
		<a href="javascript:void(0)">JS</a>
		<a href="JAVASCRIPT:alert(1)">JS2</a>
	</body></html>`

	got := extractor.LinksFromHTML(html, "https://example.com/", origin(t, "https://example.com"), interfaces.NewTestLogger(false))
	if len(got) != 0 {
		t.Errorf("links = %v, want none", got)
	}
}

func TestLinksFromHTML_DropsOffOriginAndAssets(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="https://other.example/page">Other</a>
		<a href="/brochure.PDF">Brochure</a>
		<a href="/hero.png">Image</a>
		<a href="/archive.zip">Zip</a>
		<a href="/fine">Fine</a>
	</body></html>`

	got := extractor.LinksFromHTML(html, "https://example.com/", origin(t, "https://example.com"), interfaces.NewTestLogger(false))
	want := []string{"https://example.com/fine"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestLinksFromHTML_ClearsFragmentsAndDeduplicates(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about#team">About team</a>
		<a href="/about#history">About history</a>
		<a href="/about">About</a>
	</body></html>`

	got := extractor.LinksFromHTML(html, "https://example.com/", origin(t, "https://example.com"), interfaces.NewTestLogger(false))
	want := []string{"https://example.com/about"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestLinksFromHTML_ResolvesAgainstFinalURL(t *testing.T) {
	t.Parallel()

	// The page landed on /landing/ after a redirect; relative links resolve
	// against the final URL, not the requested one.
	html := `<a href="deeper">Deeper</a>`

	got := extractor.LinksFromHTML(html, "https://example.com/landing/", origin(t, "https://example.com"), interfaces.NewTestLogger(false))
	want := []string{"https://example.com/landing/deeper"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}
