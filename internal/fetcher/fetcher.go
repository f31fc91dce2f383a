package fetcher

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/model"
)

// acceptHeader covers every artifact type the screen fetches.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8"

// Module: fetcher
// Fetches artifacts and shapes them into the scan's artifact model: header
// keys lower-cased, HTML sanitized, bodies truncated, failures degraded to
// empty artifacts plus constraint tokens.
type Fetcher struct {
	cfg     Config
	wc      interfaces.WebClient
	limiter *rate.Limiter
	logger  interfaces.Logger
}

// New creates a Fetcher around the given webclient.
func New(cfg Config, wc interfaces.WebClient, logger interfaces.Logger) *Fetcher {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Fetcher{
		cfg:     cfg,
		wc:      wc,
		limiter: limiter,
		logger:  logger.With(interfaces.Field{Key: "component", Value: "fetcher"}),
	}
}

// FetchHTML fetches url as an HTML page. On network or timeout failure the
// artifact comes back with status 0 and the fetch_failed constraint; on a
// non-HTML content type the HTML slot stays empty and the
// non_html_homepage_or_page constraint is added.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (*model.HTMLArtifact, []string) {
	resp, constraints := f.get(ctx, url)
	if resp == nil {
		return &model.HTMLArtifact{
			RequestedURL: url,
			FinalURL:     url,
			Headers:      map[string]string{},
		}, constraints
	}

	art := &model.HTMLArtifact{
		RequestedURL: url,
		FinalURL:     resp.FinalURL,
		Status:       resp.StatusCode,
		Headers:      lowerHeaders(resp.Headers),
	}

	if !model.ContentAvailable(resp.StatusCode) {
		return art, constraints
	}

	if !isHTMLContentType(art.Headers["content-type"]) {
		f.logger.Debug("non-html response",
			interfaces.Field{Key: "url", Value: url},
			interfaces.Field{Key: "content_type", Value: art.Headers["content-type"]})
		return art, append(constraints, model.ConstraintNonHTMLPage)
	}

	body := SanitizeHTML(string(resp.Body))
	body, truncated := model.TruncateBody(body)
	if truncated {
		constraints = append(constraints, model.ConstraintTruncated)
	}
	art.HTML = body

	return art, constraints
}

// FetchText fetches url as a text artifact (robots.txt, sitemap.xml). Any
// successful body is accepted regardless of content type.
func (f *Fetcher) FetchText(ctx context.Context, url string) (*model.TextArtifact, []string) {
	resp, constraints := f.get(ctx, url)
	if resp == nil {
		return &model.TextArtifact{
			RequestedURL: url,
			FinalURL:     url,
			Headers:      map[string]string{},
		}, constraints
	}

	art := &model.TextArtifact{
		RequestedURL: url,
		FinalURL:     resp.FinalURL,
		Status:       resp.StatusCode,
		Headers:      lowerHeaders(resp.Headers),
	}

	if !model.ContentAvailable(resp.StatusCode) {
		return art, constraints
	}

	body, truncated := model.TruncateBody(string(resp.Body))
	if truncated {
		constraints = append(constraints, model.ConstraintTruncated)
	}
	art.Text = body

	return art, constraints
}

func (f *Fetcher) get(ctx context.Context, url string) (*model.Response, []string) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, []string{model.ConstraintFetchFailed}
		}
	}

	headers := http.Header{}
	headers.Set("User-Agent", f.cfg.UserAgent)
	headers.Set("Accept", acceptHeader)

	resp, err := f.wc.Do(ctx, &model.Request{
		Method:  "GET",
		URL:     url,
		Headers: headers,
	})
	if err != nil {
		f.logger.Warn("fetch failed",
			interfaces.Field{Key: "url", Value: url},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil, []string{model.ConstraintFetchFailed}
	}

	return resp, nil
}

// lowerHeaders flattens an http.Header into a lower-cased key map. Repeated
// headers (x-robots-tag can legally appear more than once) are joined so a
// noindex in any value stays visible to the analyzer.
func lowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return out
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
