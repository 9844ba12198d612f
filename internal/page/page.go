// Package page composes the home page of a session: the results list owns
// the history and the submission form reports into it.
package page

import (
	"context"
	"html/template"
	"io"

	"github.com/MikhailRaia/shortener-form/internal/form"
	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/results"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
)

var (
	headTemplate = template.Must(template.New("head").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>URL Shortener</title>
</head>
<body>
<main>
  <h1>URL Shortener</h1>
  <form method="post" action="/" novalidate>
    <h2>Create a Short URL</h2>
    <fieldset{{if .Submitting}} disabled{{end}}>
      <label>Enter Original URL
        <input type="text" name="original_url" value="{{.OriginalURL}}" required>
      </label>
      <label>Optional Custom Shortcode (4-16 characters)
        <input type="text" name="custom_code" value="{{.CustomCode}}">
      </label>
      <label>Optional Validity Period (in minutes)
        <input type="number" name="validity_minutes" value="{{.ValidityMinutes}}">
      </label>
{{- if .ErrorMessage}}
      <p class="error" role="alert">{{.ErrorMessage}}</p>
{{- end}}
      <button type="submit">{{.ButtonLabel}}</button>
    </fieldset>
  </form>
`))

	footTemplate = template.Must(template.New("foot").Parse(`</main>
</body>
</html>
`))
)

// Page is the state of one session: a form and the results it produced.
type Page struct {
	form    *form.Form
	results *results.View
}

// New creates a page with an empty history and a fresh form.
func New(service shortener.Service) *Page {
	view := results.NewView()

	return &Page{
		form:    form.New(service, view),
		results: view,
	}
}

// Submit fills the form with req and submits it.
func (p *Page) Submit(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error) {
	if err := p.form.Fill(req); err != nil {
		return model.ShortenResult{}, form.ErrSubmissionInProgress
	}
	return p.form.Submit(ctx)
}

func (p *Page) Form() *form.Form {
	return p.form
}

func (p *Page) Results() *results.View {
	return p.results
}

// Render writes the whole HTML document.
func (p *Page) Render(w io.Writer) error {
	if err := headTemplate.Execute(w, p.form.State()); err != nil {
		return err
	}
	if err := p.results.Render(w); err != nil {
		return err
	}
	return footTemplate.Execute(w, nil)
}
