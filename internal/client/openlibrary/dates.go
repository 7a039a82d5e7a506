package openlibrary

import (
	"encoding/json"
	"strings"
	"time"
)

// Accepted publish-date granularities, tried in order. Upstream mixes
// year-only, year-month and full dates freely across records.
var publishDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2 January 2006",
}

// FlexDate holds a publish date at whatever granularity the source provided.
// A date that parses under none of the accepted layouts stays unset rather
// than failing the record.
type FlexDate struct {
	raw  string
	year int
	ok   bool
}

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Not a string; keep the record usable and the date unset.
		return nil
	}
	*d = ParsePublishDate(s)
	return nil
}

func (d FlexDate) Raw() string { return d.raw }

// Year returns the publish year, if one could be extracted.
func (d FlexDate) Year() (int, bool) {
	return d.year, d.ok
}

func ParsePublishDate(s string) FlexDate {
	out := FlexDate{raw: s}
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	for _, layout := range publishDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			out.year = t.Year()
			out.ok = true
			return out
		}
	}
	return out
}
