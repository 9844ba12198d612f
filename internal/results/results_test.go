package results

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_OnResultReported(t *testing.T) {
	view := NewView()

	r1 := model.ShortenResult{ShortURL: "https://short.est/one"}
	r2 := model.ShortenResult{ShortURL: "https://short.est/two"}

	view.OnResultReported(r1)
	view.OnResultReported(r2)

	assert.Equal(t, []model.ShortenResult{r2, r1}, view.History())
	assert.Equal(t, 2, view.Len())
}

func TestView_KeepsDuplicates(t *testing.T) {
	view := NewView()
	r := model.ShortenResult{ShortURL: "https://short.est/same"}

	view.OnResultReported(r)
	view.OnResultReported(r)

	assert.Equal(t, 2, view.Len())
}

func TestView_HistoryIsACopy(t *testing.T) {
	view := NewView()
	view.OnResultReported(model.ShortenResult{ShortURL: "https://short.est/one"})

	history := view.History()
	history[0].ShortURL = "changed"

	assert.Equal(t, "https://short.est/one", view.History()[0].ShortURL)
}

func TestView_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewView().Render(&buf))
	assert.Equal(t, 0, buf.Len())
}

func TestView_Render(t *testing.T) {
	view := NewView()
	view.OnResultReported(model.ShortenResult{ShortURL: "https://short.est/one"})
	view.OnResultReported(model.ShortenResult{ShortURL: "https://short.est/two"})

	var buf bytes.Buffer
	require.NoError(t, view.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Recently Created Links:")
	assert.Equal(t, 2, strings.Count(out, CopyHint))
	assert.Less(t, strings.Index(out, "https://short.est/two"), strings.Index(out, "https://short.est/one"))
}

func TestView_RenderEscapes(t *testing.T) {
	view := NewView()
	view.OnResultReported(model.ShortenResult{ShortURL: "https://short.est/<script>"})

	var buf bytes.Buffer
	require.NoError(t, view.Render(&buf))

	assert.NotContains(t, buf.String(), "<script>")
}

func TestView_ConcurrentReports(t *testing.T) {
	view := NewView()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view.OnResultReported(model.ShortenResult{ShortURL: "https://short.est/x"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, view.Len())
}
