package shortener

import (
	"context"
	"errors"

	"github.com/MikhailRaia/shortener-form/internal/model"
)

var (
	ErrEmptyResult      = errors.New("shortening service returned an empty short url")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Service turns a ShortenRequest into a short URL.
type Service interface {
	Shorten(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error)
}

// CheckResult rejects results that cannot be displayed.
func CheckResult(result model.ShortenResult) (model.ShortenResult, error) {
	if result.ShortURL == "" {
		return model.ShortenResult{}, ErrEmptyResult
	}
	return result, nil
}
