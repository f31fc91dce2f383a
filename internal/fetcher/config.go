package fetcher

// Config tunes the artifact fetcher.
type Config struct {
	// UserAgent identifies the screen on every outbound request.
	UserAgent string

	// RequestsPerSecond paces fetches made through one Fetcher. Zero disables
	// pacing. The limiter belongs to the Fetcher, not to a scan: scans that
	// share a Fetcher (as all of the API server's scans do) share its pace.
	RequestsPerSecond float64
}

// DefaultConfig returns the fetcher defaults the scan contract assumes.
func DefaultConfig() Config {
	return Config{
		UserAgent:         "kensa-suppression-screen/0.1 (+https://github.com/raysh454/kensa)",
		RequestsPerSecond: 4,
	}
}
