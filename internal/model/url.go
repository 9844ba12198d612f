package model

// DefaultValidityMinutes is the validity period a fresh form starts with.
const DefaultValidityMinutes = "30"

// ShortenRequest is a single shortening request built from the form fields.
// ValidityMinutes is passed through exactly as entered.
type ShortenRequest struct {
	OriginalURL     string `json:"url"`
	CustomCode      string `json:"custom_code,omitempty"`
	ValidityMinutes string `json:"validity_minutes,omitempty"`
}

// ShortenResult is what the shortening service produced for a request.
type ShortenResult struct {
	ShortURL string `json:"short_url"`
}
