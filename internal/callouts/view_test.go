package callouts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewFixture() []*Callout {
	h := time.Hour
	// store order: most recently submitted first
	return []*Callout{
		callout("e", 1, 5, baseTime.Add(-1*h), "Kind", "Helpful"),
		callout("d", 3, 10, baseTime.Add(-2*h), "Open-minded"),
		callout("c", 3, 20, baseTime.Add(-3*h), "Brave"),
		callout("b", 0, 7, baseTime.Add(-5*h), "Kindhearted"),
		callout("a", 3, 10, baseTime.Add(-4*h), "Patient"),
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		view View
		word string
		want []string
	}{
		{"all keeps store order", ViewAll, "", []string{"e", "d", "c", "b", "a"}},
		{"recent sorts by date", ViewRecent, "", []string{"e", "d", "c", "a", "b"}},
		{"popular by likes then views, stable", ViewPopular, "", []string{"c", "d", "a", "e", "b"}},
		{"word overrides view", ViewPopular, "kind", []string{"e", "b"}},
		{"word matches substring anywhere", ViewAll, "MIND", []string{"d"}},
		{"unmatched word is empty", ViewRecent, "grumpy", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(viewFixture(), tt.view, tt.word)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSelect_DoesNotReorderInput(t *testing.T) {
	list := viewFixture()
	_ = Select(list, ViewPopular, "")
	_ = Select(list, ViewRecent, "")
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, ids(list))
}

func TestSelect_Empty(t *testing.T) {
	for _, v := range []View{ViewAll, ViewRecent, ViewPopular} {
		got := Select(nil, v, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Empty(t, Select(nil, ViewAll, "kind"))
}

func TestSortPopular_Ordering(t *testing.T) {
	got := SortPopular(viewFixture())
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		require.GreaterOrEqual(t, prev.Likes, cur.Likes)
		if prev.Likes == cur.Likes {
			require.GreaterOrEqual(t, prev.Views, cur.Views)
		}
	}
}

func TestSortRecent_Ordering(t *testing.T) {
	got := SortRecent(viewFixture())
	for i := 1; i < len(got); i++ {
		require.False(t, got[i].Date.After(got[i-1].Date))
	}
}

func TestParseView(t *testing.T) {
	for in, want := range map[string]View{"": ViewAll, "recent": ViewRecent, "Popular": ViewPopular, " all ": ViewAll} {
		got, err := ParseView(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseView("trending")
	assert.ErrorIs(t, err, ErrValidation)
}
