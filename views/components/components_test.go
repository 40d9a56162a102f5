package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callouts/views/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func sample() models.CalloutView {
	return models.CalloutView{
		ID:         "42",
		Title:      "<script>alert(1)</script>",
		Person:     "Sam & Co",
		Categories: []string{"Open-minded", "Kind hearted"},
		Submitter:  "Lee",
		Date:       time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Views:      7,
		Likes:      3,
	}
}

func TestCalloutCard(t *testing.T) {
	html := render(t, CalloutCard(sample()))

	assert.Contains(t, html, `<a href="/callouts/42">&lt;script&gt;alert(1)&lt;/script&gt;</a>`)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Sam &amp; Co")
	assert.Contains(t, html, `<li><a href="/?word=Open-minded">Open-minded</a></li>`)
	assert.Contains(t, html, `datetime="2025-03-14T12:00:00.000Z"`)
	assert.Contains(t, html, "7 views")
	assert.Contains(t, html, `action="/callouts/42/like"`)
}

func TestLikeButton(t *testing.T) {
	c := sample()
	assert.Contains(t, render(t, LikeButton(c)), `class="like-btn" aria-pressed="false"`)

	c.Liked = true
	html := render(t, LikeButton(c))
	assert.Contains(t, html, `class="like-btn liked" aria-pressed="true"`)
	assert.Contains(t, html, `<span class="like-count">3</span>`)
}

func TestCalloutGrid(t *testing.T) {
	tests := []struct {
		name     string
		callouts []models.CalloutView
		state    models.ListState
		want     string
		not      string
	}{
		{"empty collection", nil, models.ListState{}, "No Character-Callouts yet", "filter-indicator"},
		{"no match", nil, models.ListState{Word: "grumpy"}, `No Character-Callouts found with the word "grumpy".`, "No Character-Callouts yet"},
		{"filtered", []models.CalloutView{sample()}, models.ListState{Word: "kind"}, `Showing callouts with: "kind"`, "No Character-Callouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, CalloutGrid(tt.callouts, tt.state))
			assert.Contains(t, html, tt.want)
			assert.NotContains(t, html, tt.not)
		})
	}
}

func TestViewToggle(t *testing.T) {
	html := render(t, ViewToggle(models.ListState{View: "recent"}))
	assert.Contains(t, html, `<a href="/?view=recent" class="active">Most Recent</a>`)
	assert.Contains(t, html, `<a href="/?view=popular">Most Popular</a>`)

	html = render(t, ViewToggle(models.ListState{View: "recent", Word: "kind"}))
	assert.NotContains(t, html, "active")
}

func TestWordCloud(t *testing.T) {
	html := render(t, WordCloud([]models.WordView{
		{Word: "kind", Freq: 4, Size: 2.0},
		{Word: "brave", Freq: 1, Size: 0.8},
	}))

	assert.Contains(t, html, `href="/?word=kind" data-weight="7"`)
	assert.Contains(t, html, `href="/?word=brave" data-weight="1"`)
	assert.Contains(t, html, "(used 4 times)")
}
