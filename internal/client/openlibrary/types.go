package openlibrary

import "encoding/json"

var recordFields = []string{
	"key",
	"title",
	"subtitle",
	"author_name",
	"subject",
	"publisher",
	"language",
	"number_of_pages_median",
	"first_publish_year",
	"first_publish_date",
	"audience",
}

type searchResponse struct {
	NumFound int      `json:"numFound"`
	Docs     []Record `json:"docs"`
}

// Record is one upstream work. Key is the source-stable identifier used as
// the dedup key downstream.
type Record struct {
	Key              string         `json:"key"`
	Title            string         `json:"title"`
	Subtitle         string         `json:"subtitle"`
	AuthorNames      []string       `json:"author_name"`
	Subjects         []string       `json:"subject"`
	Publishers       []string       `json:"publisher"`
	Languages        []string       `json:"language"`
	PagesMedian      int            `json:"number_of_pages_median"`
	FirstPublishYear int            `json:"first_publish_year"`
	FirstPublishDate FlexDate       `json:"first_publish_date"`
	Audience         FlexStringList `json:"audience"`
}

// FlexStringList accepts either a single string or a list, both of which
// appear in upstream payloads.
type FlexStringList []string

func (f *FlexStringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*f = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*f = many
	return nil
}
