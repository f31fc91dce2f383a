package server

import "github.com/raysh454/kensa/internal/model"

// ScanRequest is the JSON body accepted by POST /scan. The url query
// parameter wins when both are present.
type ScanRequest struct {
	URL      string          `json:"url" example:"https://example.com"`
	Baseline *model.Baseline `json:"baseline,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
