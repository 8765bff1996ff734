// Package models contain needed models
package models

// StegoResponse represents the response after an embedding attempt
type StegoResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Algorithm string  `json:"algorithm,omitempty"`
	PSNR      float64 `json:"psnr,omitempty"`
}

// ExtractResponse represents the response after a failed extraction
type ExtractResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DetectedType string `json:"detected_type,omitempty"`
}

// CapacityResponse reports the achievable payload size per algorithm for an
// uploaded carrier
type CapacityResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message,omitempty"`
	SampleRate   int            `json:"sample_rate"`
	Duration     float64        `json:"duration"`
	TotalSamples int            `json:"total_samples"`
	Capacities   map[string]int `json:"capacities"`
}

// AudioMetadata represents metadata about a decoded carrier
type AudioMetadata struct {
	SampleRate   int
	Channels     int
	BitDepth     int
	Duration     float64
	TotalSamples int
}

// CarrierTags holds ID3 metadata read from an MP3 carrier
type CarrierTags struct {
	Title  string
	Artist string
	Album  string
}
