package resume

import (
	"encoding/json"
	"reflect"
	"testing"
)

func kinds(sections []Section) []Kind {
	out := make([]Kind, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Kind())
	}
	return out
}

func TestSections_OmitsEmpty(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`{"personal":{"name":"Ada Lovelace"},"skills":["math"],"experience":[]}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := kinds(c.Sections())
	if !reflect.DeepEqual(got, []Kind{KindSkills}) {
		t.Fatalf("sections = %v", got)
	}
}

func TestSections_CanonicalOrder(t *testing.T) {
	c := Content{
		CustomSections: []CustomSection{{Title: "B", Content: "2"}, {Title: "A", Content: "1"}},
		References:     []Reference{{Name: "R"}},
		Links:          Links{GitHub: "https://github.com/x"},
		Interests:      []string{"chess"},
		Memberships:    []Membership{{Role: "Member"}},
		Publications:   []Publication{{Title: "P"}},
		Volunteer:      []Volunteer{{Role: "V"}},
		Languages:      []Language{{Name: "French"}},
		Awards:         []Award{{Name: "A"}},
		Certifications: []Certification{{Name: "C"}},
		Projects:       []Project{{Name: "X"}},
		Education:      []Education{{School: "MIT"}},
		Experience:     []Experience{{Role: "Eng"}},
		Skills:         []string{"go"},
		Summary:        "hello",
	}
	want := []Kind{
		KindSummary, KindSkills, KindExperience, KindEducation, KindProjects,
		KindCertifications, KindAwards, KindLanguages, KindVolunteer, KindPublications,
		KindMemberships, KindInterests, KindLinks, KindReferences, KindCustom, KindCustom,
	}
	sections := c.Sections()
	if got := kinds(sections); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v", got)
	}
	last := sections[len(sections)-1].(CustomBlock)
	if last.Title != "A" {
		t.Fatalf("custom sections must keep stored order, got %q last", last.Title)
	}
}

func TestSections_BlankEntriesDropped(t *testing.T) {
	c := Content{
		Summary:    "   ",
		Skills:     []string{"", "  "},
		Experience: []Experience{{}, {Role: " "}},
		Links:      Links{Website: " "},
		CustomSections: []CustomSection{
			{Title: "", Content: ""},
		},
		Projects: []Project{{}, {Name: "Kept"}},
	}
	got := c.Sections()
	if len(got) != 1 {
		t.Fatalf("expected only projects, got %v", kinds(got))
	}
	p := got[0].(ProjectsSection)
	if len(p.Entries) != 1 || p.Entries[0].Name != "Kept" {
		t.Fatalf("unexpected entries: %+v", p.Entries)
	}
}

func TestEducation_InstitutionName(t *testing.T) {
	if got := (Education{School: "MIT"}).InstitutionName(); got != "MIT" {
		t.Fatalf("got %q", got)
	}
	if got := (Education{School: "MIT", Institution: "Harvard"}).InstitutionName(); got != "Harvard" {
		t.Fatalf("got %q", got)
	}
}
