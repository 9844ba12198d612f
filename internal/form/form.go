// Package form holds the URL submission form: its input fields, the
// client-side validation and the single in-flight call to the shortening
// service.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"github.com/rs/zerolog/log"
)

// User-facing messages.
const (
	InvalidURLMessage       = "Please enter a valid URL (e.g., https://google.com)"
	SubmissionFailedMessage = "Failed to shorten URL. Please try again."

	SubmitLabel     = "Shorten URL"
	SubmittingLabel = "Shortening..."
)

var (
	ErrInvalidURL           = errors.New("url must start with http")
	ErrSubmissionFailed     = errors.New("failed to shorten url")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrInputsDisabled       = errors.New("inputs are disabled while submitting")
)

// Reporter receives every successfully shortened URL.
type Reporter interface {
	OnResultReported(result model.ShortenResult)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(result model.ShortenResult)

func (f ReporterFunc) OnResultReported(result model.ShortenResult) {
	f(result)
}

// State is a point-in-time copy of the form used for rendering.
type State struct {
	OriginalURL     string
	CustomCode      string
	ValidityMinutes string
	Submitting      bool
	ErrorMessage    string
}

// ButtonLabel returns the submit control caption for this state.
func (s State) ButtonLabel() string {
	if s.Submitting {
		return SubmittingLabel
	}
	return SubmitLabel
}

// Form is a single submission form. At most one submission is in flight at
// a time; while it is, inputs and the submit trigger are disabled.
type Form struct {
	service  shortener.Service
	reporter Reporter

	mu              sync.Mutex
	originalURL     string
	customCode      string
	validityMinutes string
	submitting      bool
	errorMessage    string
}

// New creates an empty form that reports results to reporter.
func New(service shortener.Service, reporter Reporter) *Form {
	return &Form{
		service:         service,
		reporter:        reporter,
		validityMinutes: model.DefaultValidityMinutes,
	}
}

func (f *Form) SetOriginalURL(value string) error {
	return f.set(&f.originalURL, value)
}

func (f *Form) SetCustomCode(value string) error {
	return f.set(&f.customCode, value)
}

func (f *Form) SetValidityMinutes(value string) error {
	return f.set(&f.validityMinutes, value)
}

func (f *Form) set(field *string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrInputsDisabled
	}
	*field = value
	return nil
}

// Fill sets all three inputs at once.
func (f *Form) Fill(req model.ShortenRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrInputsDisabled
	}
	f.originalURL = req.OriginalURL
	f.customCode = req.CustomCode
	f.validityMinutes = req.ValidityMinutes
	return nil
}

// State returns a snapshot of the form.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		OriginalURL:     f.originalURL,
		CustomCode:      f.customCode,
		ValidityMinutes: f.validityMinutes,
		Submitting:      f.submitting,
		ErrorMessage:    f.errorMessage,
	}
}

// Submit validates the current input and, if it passes, calls the
// shortening service and waits for it. Only the "http" prefix of the
// original URL is checked; custom code and validity go through as typed.
//
// On success the result is reported exactly once, returned, and the URL and
// custom code inputs are cleared. On failure the inputs are kept and a generic
// message is shown; the cause is only logged.
func (f *Form) Submit(ctx context.Context) (model.ShortenResult, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return model.ShortenResult{}, ErrSubmissionInProgress
	}

	f.errorMessage = ""
	if !strings.HasPrefix(f.originalURL, "http") {
		f.errorMessage = InvalidURLMessage
		f.mu.Unlock()
		return model.ShortenResult{}, ErrInvalidURL
	}

	f.submitting = true
	req := model.ShortenRequest{
		OriginalURL:     f.originalURL,
		CustomCode:      f.customCode,
		ValidityMinutes: f.validityMinutes,
	}
	f.mu.Unlock()

	result, err := f.service.Shorten(ctx, req)
	if err == nil {
		result, err = shortener.CheckResult(result)
	}

	if err != nil {
		log.Error().
			Err(err).
			Str("url", req.OriginalURL).
			Str("customCode", req.CustomCode).
			Msg("Failed to shorten URL")

		f.mu.Lock()
		f.errorMessage = SubmissionFailedMessage
		f.submitting = false
		f.mu.Unlock()
		return model.ShortenResult{}, ErrSubmissionFailed
	}

	// submitting is still set, so nothing can touch the inputs meanwhile.
	f.reporter.OnResultReported(result)

	f.mu.Lock()
	f.originalURL = ""
	f.customCode = ""
	f.submitting = false
	f.mu.Unlock()

	return result, nil
}
