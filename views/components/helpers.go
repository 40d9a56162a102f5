package components

import (
	"net/url"

	"github.com/a-h/templ"
)

const (
	isoMillis   = "2006-01-02T15:04:05.000Z07:00"
	displayDate = "Jan 2, 2006"
)

type viewOption struct {
	Value, Label string
}

var viewOptions = []viewOption{
	{"popular", "Most Popular"},
	{"recent", "Most Recent"},
	{"all", "All"},
}

func wordURL(word string) templ.SafeURL {
	return templ.URL("/?word=" + url.QueryEscape(word))
}

func calloutURL(id string) templ.SafeURL {
	return templ.URL("/callouts/" + url.PathEscape(id))
}

func likeURL(id string) templ.SafeURL {
	return templ.URL("/callouts/" + url.PathEscape(id) + "/like")
}
