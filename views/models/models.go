package models

import (
	"strconv"
	"time"
)

// CalloutView represents a callout for template rendering
type CalloutView struct {
	ID         string
	Title      string
	Person     string
	Reason     string
	Categories []string
	Submitter  string
	Date       time.Time
	Views      int
	Likes      int
	Liked      bool
}

// WordView is one word cloud entry; Size is a relative font scale.
type WordView struct {
	Word string
	Freq int
	Size float64
}

// ListState describes what the callouts grid is showing.
type ListState struct {
	View  string
	Word  string
	Total int // size of the whole collection, independent of the filter
}

// Weight buckets Size into the steps the stylesheet knows, "1" (0.8em)
// through "7" (2em).
func (w WordView) Weight() string {
	step := int((w.Size-0.8)/0.2 + 0.5)
	return strconv.Itoa(min(6, max(0, step)) + 1)
}
