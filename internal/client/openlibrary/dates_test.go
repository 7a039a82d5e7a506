package openlibrary

import (
	"encoding/json"
	"testing"
)

func TestParsePublishDate_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		year int
		ok   bool
	}{
		{"1998-07-16", 1998, true},
		{"1998-07", 1998, true},
		{"1998", 1998, true},
		{"July 16, 1998", 1998, true},
		{"Jul 16, 1998", 1998, true},
		{"July 1998", 1998, true},
		{"Jul 1998", 1998, true},
		{"16 July 1998", 1998, true},
		{"  2001  ", 2001, true},
		{"", 0, false},
		{"sometime in the 90s", 0, false},
	}
	for _, tc := range cases {
		d := ParsePublishDate(tc.in)
		year, ok := d.Year()
		if ok != tc.ok || year != tc.year {
			t.Fatalf("ParsePublishDate(%q) = (%d,%v), want (%d,%v)", tc.in, year, ok, tc.year, tc.ok)
		}
	}
}

func TestFlexDate_UnmarshalJSON_NonString(t *testing.T) {
	var d FlexDate
	if err := json.Unmarshal([]byte(`1998`), &d); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, ok := d.Year(); ok {
		t.Fatalf("non-string input should leave date unset")
	}
}

func TestFlexStringList_MixedShapes(t *testing.T) {
	var single FlexStringList
	if err := json.Unmarshal([]byte(`"Juvenile"`), &single); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(single) != 1 || single[0] != "Juvenile" {
		t.Fatalf("single=%v", single)
	}

	var many FlexStringList
	if err := json.Unmarshal([]byte(`["Adult","Teen"]`), &many); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(many) != 2 || many[1] != "Teen" {
		t.Fatalf("many=%v", many)
	}
}
