package content

import (
	"reflect"
	"testing"

	"github.com/fellrun/content-pipeline/internal/model"
)

func TestMergeTagNames(t *testing.T) {
	got := MergeTagNames(
		[]string{"trail", "alps"},
		[]string{"alps", "race"},
		nil,
		[]string{"trail"},
	)
	want := []string{"trail", "alps", "race"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTagNames = %v, want %v", got, want)
	}
}

func TestMergeTagNames_Empty(t *testing.T) {
	if got := MergeTagNames(); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestMergeTags_FirstRecordWins(t *testing.T) {
	got := MergeTags(
		[]model.Tag{{Slug: "alps", Name: "Alps"}},
		[]model.Tag{{Slug: "alps", Name: "The Alps"}, {Slug: "race", Name: "Race"}},
	)
	want := []model.Tag{{Slug: "alps", Name: "Alps"}, {Slug: "race", Name: "Race"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags = %v, want %v", got, want)
	}
}

func TestTagFromName(t *testing.T) {
	cases := []struct {
		name string
		want model.Tag
	}{
		{"Trail Running", model.Tag{Slug: "trail-running", Name: "Trail Running"}},
		{"  Alps ", model.Tag{Slug: "alps", Name: "  Alps "}},
		{"UTMB", model.Tag{Slug: "utmb", Name: "UTMB"}},
	}
	for _, c := range cases {
		if got := TagFromName(c.name); got != c.want {
			t.Errorf("TagFromName(%q) = %+v, want %+v", c.name, got, c.want)
		}
	}
}
