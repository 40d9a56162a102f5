package callouts

import (
	"fmt"
	"sort"
	"strings"
)

// View controls the default ordering when no filter word is set.
type View string

const (
	ViewRecent  View = "recent"
	ViewPopular View = "popular"
	ViewAll     View = "all"
)

// ParseView maps a query value to a View. Empty means ViewAll.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewRecent, ViewPopular, ViewAll:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unknown view %q", ErrValidation, s)
	}
}

// Select produces the display sequence. A non-empty word filters by
// category substring and ignores view. The input slice is never reordered.
func Select(callouts []*Callout, view View, word string) []*Callout {
	if word != "" {
		return FilterByWord(callouts, word)
	}
	switch view {
	case ViewRecent:
		return SortRecent(callouts)
	case ViewPopular:
		return SortPopular(callouts)
	default:
		return append([]*Callout{}, callouts...)
	}
}

// FilterByWord keeps callouts with a category containing word, ignoring case,
// in store order.
func FilterByWord(callouts []*Callout, word string) []*Callout {
	needle := strings.ToLower(word)
	out := []*Callout{}
	for _, c := range callouts {
		for _, category := range c.Categories {
			if strings.Contains(strings.ToLower(category), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// SortRecent orders by date, newest first.
func SortRecent(callouts []*Callout) []*Callout {
	out := append([]*Callout{}, callouts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortPopular orders by likes, then views, both descending.
func SortPopular(callouts []*Callout) []*Callout {
	out := append([]*Callout{}, callouts...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Likes != out[j].Likes {
			return out[i].Likes > out[j].Likes
		}
		return out[i].Views > out[j].Views
	})
	return out
}

func limit(callouts []*Callout, n int) []*Callout {
	if n > 0 && len(callouts) > n {
		return callouts[:n]
	}
	return callouts
}
