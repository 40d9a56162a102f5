package callouts

import (
	"encoding/json"
	"strings"
	"time"
)

// Callout is a submitted praise entry naming a person, a reason and traits.
type Callout struct {
	ID         string    `bson:"id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Person     string    `bson:"person" json:"person"`
	Reason     string    `bson:"reason" json:"reason"`
	Categories []string  `bson:"categories" json:"categories"`
	Submitter  string    `bson:"submitter" json:"submitter"`
	Date       time.Time `bson:"date" json:"date"`
	Views      int       `bson:"views" json:"views"`
	Likes      int       `bson:"likes" json:"likes"` // absent in older documents, decodes as 0
}

// clone returns a copy that shares no memory with c.
func (c *Callout) clone() Callout {
	out := *c
	out.Categories = append([]string(nil), c.Categories...)
	return out
}

// Categories accepts either a JSON array of strings or a single string.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Categories{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

// SubmitInput is the input for submitting a callout
type SubmitInput struct {
	Title      string     `json:"title"`
	Person     string     `json:"person"`
	Reason     string     `json:"reason"`
	Categories Categories `json:"categories"`
	Submitter  string     `json:"submitter"`
}

// normalize trims every field and drops blank categories.
func (in SubmitInput) normalize() SubmitInput {
	out := SubmitInput{
		Title:     strings.TrimSpace(in.Title),
		Person:    strings.TrimSpace(in.Person),
		Reason:    strings.TrimSpace(in.Reason),
		Submitter: strings.TrimSpace(in.Submitter),
	}
	for _, c := range in.Categories {
		if c = strings.TrimSpace(c); c != "" {
			out.Categories = append(out.Categories, c)
		}
	}
	return out
}

// ListQuery represents list parameters
type ListQuery struct {
	View  View
	Word  string // overrides View when set
	Limit int    // <= 0 means no limit
}

// LikeResult is the state of a callout after a like toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// WordCloud is the Aggregator output ready for display.
type WordCloud struct {
	Words       []WordFrequency `json:"words"`
	Placeholder bool            `json:"placeholder"`
}
