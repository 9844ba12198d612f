package handler

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikhailRaia/shortener-form/internal/form"
	"github.com/MikhailRaia/shortener-form/internal/middleware"
	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/page"
	"github.com/MikhailRaia/shortener-form/internal/session"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"github.com/MikhailRaia/shortener-form/internal/shortener/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	requests []model.ShortenRequest
}

func (r *recordingService) Shorten(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error) {
	r.requests = append(r.requests, req)
	return model.ShortenResult{ShortURL: "https://short.est/abc1"}, nil
}

func postJSON(t *testing.T, client *http.Client, target, contentType, body string) (int, string) {
	t.Helper()

	resp, err := client.Post(target, contentType, bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestHandler_HandleShortenJSON(t *testing.T) {
	tests := []struct {
		name        string
		service     shortener.Service
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "Created",
			service:     mock.NewService("https://short.est", 0),
			contentType: "application/json",
			body:        `{"url":"https://example.com/long/path","custom_code":"abc1","validity_minutes":30}`,
			wantStatus:  http.StatusCreated,
			wantBody:    `{"short_url":"https://short.est/abc1"}`,
		},
		{
			name:        "Random code",
			service:     mock.NewService("https://short.est", 0),
			contentType: "application/json; charset=utf-8",
			body:        `{"url":"http://example.com"}`,
			wantStatus:  http.StatusCreated,
			wantBody:    `{"short_url":"https://short.est/RANDOM"}`,
		},
		{
			name:        "Invalid URL",
			service:     mock.NewService("https://short.est", 0),
			contentType: "application/json",
			body:        `{"url":"example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"` + form.InvalidURLMessage + `"}`,
		},
		{
			name:        "Backend failure",
			service:     failingService{},
			contentType: "application/json",
			body:        `{"url":"https://example.com"}`,
			wantStatus:  http.StatusBadGateway,
			wantBody:    `{"error":"` + form.SubmissionFailedMessage + `"}`,
		},
		{
			name:        "Wrong content type",
			service:     mock.NewService("https://short.est", 0),
			contentType: "text/plain",
			body:        `{"url":"https://example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"content type must be application/json"}`,
		},
		{
			name:        "Malformed body",
			service:     mock.NewService("https://short.est", 0),
			contentType: "application/json",
			body:        `{"url":`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid request body"}`,
		},
		{
			name:        "Validity of the wrong type",
			service:     mock.NewService("https://short.est", 0),
			contentType: "application/json",
			body:        `{"url":"https://example.com","validity_minutes":true}`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.service)

			status, body := postJSON(t, newBrowser(t), server.URL+"/api/shorten", tt.contentType, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestHandler_HandleShortenJSON_Validity(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantValidity string
	}{
		{name: "Number", body: `{"url":"https://example.com","validity_minutes":15}`, wantValidity: "15"},
		{name: "String", body: `{"url":"https://example.com","validity_minutes":"45"}`, wantValidity: "45"},
		{name: "Empty string", body: `{"url":"https://example.com","validity_minutes":""}`, wantValidity: ""},
		{name: "Missing", body: `{"url":"https://example.com"}`, wantValidity: model.DefaultValidityMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &recordingService{}
			server := newTestServer(t, service)

			status, _ := postJSON(t, newBrowser(t), server.URL+"/api/shorten", "application/json", tt.body)
			require.Equal(t, http.StatusCreated, status)

			require.Len(t, service.requests, 1)
			assert.Equal(t, tt.wantValidity, service.requests[0].ValidityMinutes)
		})
	}
}

func TestHandler_HandleResultsJSON(t *testing.T) {
	server := newTestServer(t, mock.NewService("https://short.est", 0))
	client := newBrowser(t)

	status, body := get(t, client, server.URL+"/api/results")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	for _, code := range []string{"first", "second"} {
		status, _ := postJSON(t, client, server.URL+"/api/shorten", "application/json",
			`{"url":"https://example.com","custom_code":"`+code+`"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body = get(t, client, server.URL+"/api/results")
	require.Equal(t, http.StatusOK, status)

	var results []model.ShortenResult
	require.NoError(t, json.Unmarshal([]byte(body), &results))
	assert.Equal(t, []model.ShortenResult{
		{ShortURL: "https://short.est/second"},
		{ShortURL: "https://short.est/first"},
	}, results)
}

func TestHandler_GzipRoundTrip(t *testing.T) {
	store := session.NewStore(func() *page.Page {
		return page.New(mock.NewService("https://short.est", 0))
	})
	h := NewHandler(store, middleware.NewSessionMiddleware(session.NewTokens("test-secret")))
	routes := h.RegisterRoutes()

	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	_, err := gz.Write([]byte(`{"url":"https://example.com","custom_code":"zip1"}`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", &compressed)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	reader, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"short_url":"https://short.est/zip1"}`, string(body))
}

func TestMinutes_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Minutes
		wantErr bool
	}{
		{name: "Integer", input: `30`, want: "30"},
		{name: "Decimal", input: `1.5`, want: "1.5"},
		{name: "String", input: `"90"`, want: "90"},
		{name: "Free text", input: `"soon"`, want: "soon"},
		{name: "Boolean", input: `false`, wantErr: true},
		{name: "Object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Minutes
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}
