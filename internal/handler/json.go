package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MikhailRaia/shortener-form/internal/form"
	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/rs/zerolog/log"
)

// Minutes accepts the validity period either as a JSON string or a number.
type Minutes string

func (m *Minutes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Minutes(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("validity_minutes must be a string or a number")
	}
	*m = Minutes(n.String())
	return nil
}

type ShortenRequest struct {
	URL             string   `json:"url"`
	CustomCode      string   `json:"custom_code"`
	ValidityMinutes *Minutes `json:"validity_minutes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleShortenJSON submits the session form with a JSON body and answers
// with the created short URL.
func (h *Handler) HandleShortenJSON(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "content type must be application/json"})
		return
	}

	p, ok := h.sessionPage(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var request ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req := model.ShortenRequest{
		OriginalURL:     request.URL,
		CustomCode:      request.CustomCode,
		ValidityMinutes: p.Form().State().ValidityMinutes,
	}
	if request.ValidityMinutes != nil {
		req.ValidityMinutes = string(*request.ValidityMinutes)
	}

	result, err := p.Submit(context.WithoutCancel(r.Context()), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, result)
	case errors.Is(err, form.ErrInvalidURL):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: form.InvalidURLMessage})
	case errors.Is(err, form.ErrSubmissionFailed):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: form.SubmissionFailedMessage})
	case errors.Is(err, form.ErrSubmissionInProgress):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("Unexpected submission error")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// HandleResultsJSON lists the session's short URLs, most recent first.
func (h *Handler) HandleResultsJSON(w http.ResponseWriter, r *http.Request) {
	p, ok := h.sessionPage(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	history := p.Results().History()
	if history == nil {
		history = []model.ShortenResult{}
	}
	writeJSON(w, http.StatusOK, history)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	response, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}
