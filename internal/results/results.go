package results

import (
	"html/template"
	"io"
	"sync"

	"github.com/MikhailRaia/shortener-form/internal/model"
)

// CopyHint is shown under every entry. Copying is not implemented.
const CopyHint = "Click to copy (feature to be added)"

var sectionTemplate = template.Must(template.New("results").Parse(`<section class="results">
  <h2>Recently Created Links:</h2>
  <ul>
{{- range .Entries}}
    <li><a href="{{.ShortURL}}">{{.ShortURL}}</a><small>{{$.Hint}}</small></li>
{{- end}}
  </ul>
</section>
`))

// View accumulates the results of a session, newest first.
// Entries are only ever added and never modified.
type View struct {
	mu      sync.RWMutex
	history []model.ShortenResult
}

// NewView creates an empty view.
func NewView() *View {
	return &View{}
}

// OnResultReported puts result at the top of the history.
func (v *View) OnResultReported(result model.ShortenResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	history := make([]model.ShortenResult, 0, len(v.history)+1)
	history = append(history, result)
	v.history = append(history, v.history...)
}

// History returns a copy of the results, most recent first.
func (v *View) History() []model.ShortenResult {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]model.ShortenResult(nil), v.history...)
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.history)
}

// Render writes the results section, or nothing at all when there are no results.
func (v *View) Render(w io.Writer) error {
	entries := v.History()
	if len(entries) == 0 {
		return nil
	}

	return sectionTemplate.Execute(w, struct {
		Entries []model.ShortenResult
		Hint    string
	}{
		Entries: entries,
		Hint:    CopyHint,
	})
}
