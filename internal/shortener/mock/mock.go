package mock

import (
	"context"
	"strings"
	"time"

	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/rs/zerolog/log"
)

// RandomCode is substituted when the request carries no custom code.
const RandomCode = "RANDOM"

// Service imitates a remote shortener: it waits for delay and builds the
// short URL from the custom code. Nothing is stored.
type Service struct {
	baseURL string
	delay   time.Duration
}

// NewService creates a mock shortener answering under baseURL after delay.
func NewService(baseURL string, delay time.Duration) *Service {
	return &Service{
		baseURL: baseURL,
		delay:   delay,
	}
}

// Shorten waits for the configured delay and returns {baseURL}/{code}.
func (s *Service) Shorten(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error) {
	log.Info().
		Str("url", req.OriginalURL).
		Str("customCode", req.CustomCode).
		Str("validity", req.ValidityMinutes).
		Msg("Submitting to API")

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return model.ShortenResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	code := req.CustomCode
	if code == "" {
		code = RandomCode
	}

	return model.ShortenResult{ShortURL: strings.TrimSuffix(s.baseURL, "/") + "/" + code}, nil
}
