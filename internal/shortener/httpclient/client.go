package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"github.com/rs/zerolog/log"
)

// ShortenRequest is the JSON body sent to the remote /api/shorten endpoint.
type ShortenRequest struct {
	URL        string `json:"url"`
	CustomCode string `json:"custom_code,omitempty"`
	Validity   string `json:"validity,omitempty"`
}

// ShortenResponse is the JSON body returned by the remote endpoint.
type ShortenResponse struct {
	Result string `json:"result"`
}

// Client talks to a shortener exposing the JSON API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the shortener at baseURL.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	endpoint, err := url.JoinPath(baseURL, "api", "shorten")
	if err != nil {
		return nil, fmt.Errorf("invalid shortener address %q: %w", baseURL, err)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}, nil
}

// Shorten posts the request and decodes the short URL from the reply.
// 201 Created and 409 Conflict both carry a usable result.
func (c *Client) Shorten(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error) {
	body, err := json.Marshal(ShortenRequest{
		URL:        req.OriginalURL,
		CustomCode: req.CustomCode,
		Validity:   req.ValidityMinutes,
	})
	if err != nil {
		return model.ShortenResult{}, fmt.Errorf("error encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.ShortenResult{}, fmt.Errorf("error building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.ShortenResult{}, fmt.Errorf("error calling shortener: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("endpoint", c.endpoint).
		Int("status", resp.StatusCode).
		Msg("Shortener responded")

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusConflict:
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.ShortenResult{}, fmt.Errorf("%w: %d", shortener.ErrUnexpectedStatus, resp.StatusCode)
	}

	var decoded ShortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return model.ShortenResult{}, fmt.Errorf("error decoding response: %w", err)
	}

	return shortener.CheckResult(model.ShortenResult{ShortURL: decoded.Result})
}
