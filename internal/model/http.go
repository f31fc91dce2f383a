package model

import (
	"net/http"
	"time"
)

// Request describes one outbound HTTP request executed by a webclient backend.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Response is the raw result of executing a Request, before any artifact
// shaping (header lower-casing, sanitation, truncation) happens.
type Response struct {
	Request    *Request
	FinalURL   string
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}
