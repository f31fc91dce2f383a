package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// URLTools wraps a parsed URL with the normalization helpers the scan
// pipeline needs. All pipeline URLs pass through here so comparisons are
// done on one canonical form.
type URLTools struct {
	URL *url.URL
}

// NewURLTools parses raw and applies the baseline normalization (lowercase
// scheme/host, punycode host, default port stripping, fragment removal).
func NewURLTools(raw string) (*URLTools, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}

	urlTools := &URLTools{URL: u}
	urlTools.normalize()

	return urlTools, nil
}

func (u *URLTools) normalize() {
	u.URL.Fragment = ""
	u.URL.Scheme = strings.ToLower(u.URL.Scheme)
	u.URL.Host = strings.ToLower(u.URL.Host)

	// IDN hosts compare as punycode
	host := u.URL.Hostname()
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}
	port := u.URL.Port()
	if (u.URL.Scheme == "http" && port == "80") || (u.URL.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		u.URL.Host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		// IPv6 literals keep their brackets so Hostname() round-trips.
		u.URL.Host = "[" + host + "]"
	} else {
		u.URL.Host = host
	}
}

// SameOrigin reports whether both URLs share scheme and host (incl. port).
func (u *URLTools) SameOrigin(target *URLTools) bool {
	return u.URL.Scheme == target.URL.Scheme && u.URL.Host == target.URL.Host
}

// SameOriginString parses targetURL and compares origins.
func (u *URLTools) SameOriginString(targetURL string) (bool, error) {
	parsed, err := NewURLTools(targetURL)
	if err != nil {
		return false, err
	}
	return u.SameOrigin(parsed), nil
}

// Resolve resolves ref against u and returns the absolute URL normalized like
// NewURLTools does (lowercase scheme/host, punycode host, default port
// stripped, fragment cleared).
func (u *URLTools) Resolve(ref string) (*url.URL, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse url %s: %w", ref, err)
	}
	resolved := &URLTools{URL: u.URL.ResolveReference(parsed)}
	resolved.normalize()
	return resolved.URL, nil
}

// NormalizeOrigin coerces a caller-supplied string to an origin URL:
// trimmed, default-schemed to https, path forced to "/", query and fragment
// cleared. Only http and https survive.
func NormalizeOrigin(raw string) (*URLTools, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := NewURLTools(raw)
	if err != nil {
		return nil, err
	}
	if u.URL.Scheme != "http" && u.URL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.URL.Scheme)
	}
	if u.URL.Hostname() == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}

	u.URL.Path = "/"
	u.URL.RawQuery = ""
	u.URL.Fragment = ""

	return u, nil
}

// Origin returns the origin URL string (scheme://host/).
func (u *URLTools) Origin() string {
	o := &url.URL{Scheme: u.URL.Scheme, Host: u.URL.Host, Path: "/"}
	return o.String()
}

// GuardOrigin rejects origins the screen must never fetch: URLs carrying
// embedded credentials, loopback hosts, and internal-looking hostnames.
// DNS-resolved private ranges are not checked; that is a known v1 limitation
// of the screen (the guard is a hostname denylist, not a resolver).
func GuardOrigin(u *URLTools) error {
	if u.URL.User != nil {
		return fmt.Errorf("url must not contain embedded credentials")
	}

	host := u.URL.Hostname()
	switch host {
	case "localhost", "127.0.0.1", "0.0.0.0", "::1":
		return fmt.Errorf("refusing to scan loopback host %q", host)
	}
	if strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("refusing to scan internal hostname %q", host)
	}

	return nil
}
