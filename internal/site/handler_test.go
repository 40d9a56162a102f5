package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callouts/internal/events"
)

func newTestHandler() (*Handler, *events.Recorder) {
	rec := &events.Recorder{}
	return NewHandler(rec, slog.New(slog.NewTextHandler(io.Discard, nil))), rec
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestContact(t *testing.T) {
	t.Run("all fields required", func(t *testing.T) {
		h, rec := newTestHandler()
		w := post(h.Contact, `{"contactName":"Lee","contactEmail":"lee@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, rec.Events)
	})

	t.Run("invalid email", func(t *testing.T) {
		h, _ := newTestHandler()
		w := post(h.Contact, `{"contactName":"Lee","contactEmail":"not-an-email","contactMessage":"hi"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("accepted and published", func(t *testing.T) {
		h, rec := newTestHandler()
		w := post(h.Contact, `{"contactName":"Lee","contactEmail":"lee@example.com","contactMessage":"love it"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])
		assert.Equal(t, []string{events.ContactReceived}, rec.Subjects())
	})
}

func TestSubscribe(t *testing.T) {
	h, rec := newTestHandler()

	w := post(h.Subscribe, `{"firstName":"Sam"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(h.Subscribe, `{"email":"sam@example.com","firstName":"Sam"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, rec.Events, 1)
	ev := rec.Events[0].Event.(events.NewsletterSubscribedEvent)
	assert.Equal(t, "sam@example.com", ev.Email)
	assert.Equal(t, "Sam", ev.FirstName)
}

func TestFormatText(t *testing.T) {
	h, _ := newTestHandler()

	w := post(h.FormatText, `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(h.FormatText, `{"text":"**brave** and *kind*"}`)
	require.Equal(t, http.StatusOK, w.Code)
	formatted := decode(t, w)["formatted"].(string)
	assert.Contains(t, formatted, "<strong>brave</strong>")
	assert.Contains(t, formatted, "<em>kind</em>")
}

func TestRegister(t *testing.T) {
	h, rec := newTestHandler()
	mux := http.NewServeMux()
	h.Register(mux)

	for _, path := range []string{"/api/subscribe", "/api/convertkit/subscribe"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"email":"sam@example.com"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
	assert.Equal(t, []string{events.NewsletterSubscribed, events.NewsletterSubscribed}, rec.Subjects())

	req := httptest.NewRequest(http.MethodPost, "/api/format-text", strings.NewReader(`{"text":"**hi**"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Contains(t, decode(t, w)["formatted"], "<strong>hi</strong>")

	req = httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{}`))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
