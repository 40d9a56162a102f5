package callouts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	mux    *http.ServeMux
	cookie *http.Cookie
}

func newAPIClient(t *testing.T, env *testEnv) *apiClient {
	mux := http.NewServeMux()
	NewHandler(env.svc, discardLogger()).Register(mux)
	return &apiClient{t: t, mux: mux}
}

// do sends a request, carrying the session cookie between calls.
func (c *apiClient) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.mux.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			c.cookie = ck
		}
	}
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listedCallout struct {
	ID        string `json:"id"`
	Likes     int    `json:"likes"`
	Views     int    `json:"views"`
	LikedByMe bool   `json:"likedByMe"`
}

func listedIDs(list []listedCallout) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestHandler_List(t *testing.T) {
	env := newTestEnv(t, viewFixture()...)
	c := newAPIClient(t, env)

	tests := []struct {
		target string
		want   []string
	}{
		{"/api/callouts", []string{"e", "d", "c", "b", "a"}},
		{"/api/callouts?view=popular", []string{"c", "d", "a", "e", "b"}},
		{"/api/callouts?view=recent&limit=2", []string{"e", "d"}},
		{"/api/callouts?view=recent&word=kind", []string{"e", "b"}},
		{"/api/callouts?word=nothing", []string{}},
		{"/api/callouts/recent", []string{"e", "d", "c", "a", "b"}},
		{"/api/callouts/popular?limit=1", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := c.do(http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, listedIDs(decodeJSON[[]listedCallout](t, w)))
		})
	}

	t.Run("unknown view", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/callouts?view=trending", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RecentDefaultsToFive(t *testing.T) {
	env := newTestEnv(t, append(viewFixture(), callout("z", 0, 0, baseTime, "Calm"))...)
	c := newAPIClient(t, env)

	w := c.do(http.MethodGet, "/api/callouts/recent", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON[[]listedCallout](t, w), 5)
}

func TestHandler_Submit(t *testing.T) {
	env := newTestEnv(t)
	c := newAPIClient(t, env)

	t.Run("created", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/callouts",
			`{"title":"X","person":"Sam","reason":"he helped","categories":["Kind","Helpful"],"submitter":"Lee"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeJSON[struct {
			Success bool    `json:"success"`
			Callout Callout `json:"callout"`
		}](t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "Sam", resp.Callout.Person)
		assert.Zero(t, resp.Callout.Views)
		assert.Zero(t, resp.Callout.Likes)

		list := decodeJSON[[]listedCallout](t, c.do(http.MethodGet, "/api/callouts", ""))
		require.NotEmpty(t, list)
		assert.Equal(t, resp.Callout.ID, list[0].ID)
	})

	t.Run("single category string", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/callouts",
			`{"title":"Y","person":"Ana","reason":"r","categories":"Brave","submitter":"Lee"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/callouts", `{"title":"X","person":"Sam","categories":["Kind"],"submitter":"Lee"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeJSON[map[string]string](t, w)["error"], "reason is required")
	})

	t.Run("invalid json", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/callouts", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("persistence failure", func(t *testing.T) {
		env.persister.fail = errDiskFull
		defer func() { env.persister.fail = nil }()

		w := c.do(http.MethodPost, "/api/callouts",
			`{"title":"Z","person":"Bo","reason":"r","categories":["Calm"],"submitter":"Lee"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "failed to save callout", decodeJSON[map[string]string](t, w)["error"])
	})
}

func TestHandler_GetAndView(t *testing.T) {
	env := newTestEnv(t, callout("a", 0, 15, baseTime, "Caring"))
	c := newAPIClient(t, env)

	w := c.do(http.MethodPost, "/api/callouts/a/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 16, decodeJSON[map[string]any](t, w)["views"])

	w = c.do(http.MethodGet, "/api/callouts/a", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 16, decodeJSON[Callout](t, w).Views)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/callouts/nope/view", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/callouts/nope", "").Code)
}

func TestHandler_ToggleLike(t *testing.T) {
	env := newTestEnv(t, callout("a", 3, 10, baseTime, "Caring"), callout("b", 3, 20, baseTime, "Brave"))
	alice := newAPIClient(t, env)
	bob := newAPIClient(t, env)

	w := alice.do(http.MethodPost, "/api/callouts/a/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeJSON[map[string]any](t, w)
	assert.EqualValues(t, 4, res["likes"])
	assert.Equal(t, true, res["liked"])
	require.NotNil(t, alice.cookie, "session cookie issued")

	aliceList := decodeJSON[[]listedCallout](t, alice.do(http.MethodGet, "/api/callouts?view=popular", ""))
	assert.Equal(t, []string{"a", "b"}, listedIDs(aliceList))
	assert.True(t, aliceList[0].LikedByMe)

	bobList := decodeJSON[[]listedCallout](t, bob.do(http.MethodGet, "/api/callouts?view=popular", ""))
	assert.False(t, bobList[0].LikedByMe)

	w = alice.do(http.MethodPost, "/api/callouts/a/like", "")
	assert.EqualValues(t, 3, decodeJSON[map[string]any](t, w)["likes"])

	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodPost, "/api/callouts/nope/like", "").Code)
}

func TestHandler_WordCloud(t *testing.T) {
	t.Run("placeholder", func(t *testing.T) {
		c := newAPIClient(t, newTestEnv(t))
		w := c.do(http.MethodGet, "/api/wordcloud", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get(placeholderHeader))
		assert.Len(t, decodeJSON[[]WordFrequency](t, w), len(PlaceholderWords))
	})

	t.Run("counts", func(t *testing.T) {
		env := newTestEnv(t,
			callout("1", 0, 0, baseTime, "Open-minded"),
			callout("2", 0, 0, baseTime, "Open-minded", "Kind"),
			callout("3", 0, 0, baseTime, "Open-minded"),
		)
		w := newAPIClient(t, env).do(http.MethodGet, "/api/wordcloud", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get(placeholderHeader))
		assert.Equal(t, []WordFrequency{{Word: "open-minded", Freq: 3}, {Word: "kind", Freq: 1}},
			decodeJSON[[]WordFrequency](t, w))
	})
}

func TestHandler_Traits(t *testing.T) {
	w := newAPIClient(t, newTestEnv(t)).do(http.MethodGet, "/api/traits", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeJSON[[]string](t, w), "Open-minded")
}

func TestHandler_Pages(t *testing.T) {
	env := newTestEnv(t, callout("a", 0, 1, baseTime, "Caring"), callout("b", 0, 0, baseTime, "Brave"))
	c := newAPIClient(t, env)

	t.Run("home", func(t *testing.T) {
		w := c.do(http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Title a")
		assert.Contains(t, body, `href="/?word=caring"`)
	})

	t.Run("filtered with no matches", func(t *testing.T) {
		w := c.do(http.MethodGet, "/?word=grumpy", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No Character-Callouts found with the word")
	})

	t.Run("empty collection", func(t *testing.T) {
		w := newAPIClient(t, newTestEnv(t)).do(http.MethodGet, "/", "")
		assert.Contains(t, w.Body.String(), "No Character-Callouts yet")
	})

	t.Run("detail counts a view", func(t *testing.T) {
		w := c.do(http.MethodGet, "/callouts/a", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2 views")
	})

	t.Run("like form redirects", func(t *testing.T) {
		w := c.do(http.MethodPost, "/callouts/b/like", "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		got, err := env.svc.GetByID(t.Context(), "b")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Likes)
	})

	t.Run("unknown detail", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/callouts/nope", "").Code)
	})
}

func TestHandler_LikeFormRedirect(t *testing.T) {
	env := newTestEnv(t, callout("a", 0, 0, baseTime, "Caring"))
	c := newAPIClient(t, env)

	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://example.com/?view=recent", "/?view=recent"},
		{"http://example.com/callouts/a", "/callouts/a"},
		{"/?word=kind", "/?word=kind"},
		{"https://attacker.example/phish", "/"},
		{"https://attacker.example//evil.example/phish", "/"},
		{"http://example.com//evil.example/phish", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.referer, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/callouts/a/like", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			w := httptest.NewRecorder()
			c.mux.ServeHTTP(w, req)

			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}
