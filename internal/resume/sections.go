package resume

import "strings"

// Kind 标识简历区块类型。
type Kind string

const (
	KindHeader         Kind = "header"
	KindSummary        Kind = "summary"
	KindSkills         Kind = "skills"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindProjects       Kind = "projects"
	KindCertifications Kind = "certifications"
	KindAwards         Kind = "awards"
	KindLanguages      Kind = "languages"
	KindVolunteer      Kind = "volunteer"
	KindPublications   Kind = "publications"
	KindMemberships    Kind = "memberships"
	KindInterests      Kind = "interests"
	KindLinks          Kind = "links"
	KindReferences     Kind = "references"
	KindCustom         Kind = "custom"
)

// Section 是简历区块的封闭和类型，只有本包内的类型实现它。
type Section interface {
	Kind() Kind
	section()
}

type SummarySection struct{ Text string }
type SkillsSection struct{ Items []string }
type ExperienceSection struct{ Entries []Experience }
type EducationSection struct{ Entries []Education }
type ProjectsSection struct{ Entries []Project }
type CertificationsSection struct{ Entries []Certification }
type AwardsSection struct{ Entries []Award }
type LanguagesSection struct{ Entries []Language }
type VolunteerSection struct{ Entries []Volunteer }
type PublicationsSection struct{ Entries []Publication }
type MembershipsSection struct{ Entries []Membership }
type InterestsSection struct{ Items []string }
type LinksSection struct{ Links Links }
type ReferencesSection struct{ Entries []Reference }
type CustomBlock struct{ CustomSection }

func (SummarySection) Kind() Kind        { return KindSummary }
func (SkillsSection) Kind() Kind         { return KindSkills }
func (ExperienceSection) Kind() Kind     { return KindExperience }
func (EducationSection) Kind() Kind      { return KindEducation }
func (ProjectsSection) Kind() Kind       { return KindProjects }
func (CertificationsSection) Kind() Kind { return KindCertifications }
func (AwardsSection) Kind() Kind         { return KindAwards }
func (LanguagesSection) Kind() Kind      { return KindLanguages }
func (VolunteerSection) Kind() Kind      { return KindVolunteer }
func (PublicationsSection) Kind() Kind   { return KindPublications }
func (MembershipsSection) Kind() Kind    { return KindMemberships }
func (InterestsSection) Kind() Kind      { return KindInterests }
func (LinksSection) Kind() Kind          { return KindLinks }
func (ReferencesSection) Kind() Kind     { return KindReferences }
func (CustomBlock) Kind() Kind           { return KindCustom }

func (SummarySection) section()        {}
func (SkillsSection) section()         {}
func (ExperienceSection) section()     {}
func (EducationSection) section()      {}
func (ProjectsSection) section()       {}
func (CertificationsSection) section() {}
func (AwardsSection) section()         {}
func (LanguagesSection) section()      {}
func (VolunteerSection) section()      {}
func (PublicationsSection) section()   {}
func (MembershipsSection) section()    {}
func (InterestsSection) section()      {}
func (LinksSection) section()          {}
func (ReferencesSection) section()     {}
func (CustomBlock) section()           {}

// Sections 按固定顺序返回非空区块（页眉除外），空字符串、空列表、全空条目均被省略。
// 自定义区块排在最后，保持存储顺序。
func (c Content) Sections() []Section {
	var out []Section
	if s := strings.TrimSpace(c.Summary); s != "" {
		out = append(out, SummarySection{Text: c.Summary})
	}
	if items := nonBlank(c.Skills); len(items) > 0 {
		out = append(out, SkillsSection{Items: items})
	}
	if e := nonEmpty(c.Experience); len(e) > 0 {
		out = append(out, ExperienceSection{Entries: e})
	}
	if e := nonEmpty(c.Education); len(e) > 0 {
		out = append(out, EducationSection{Entries: e})
	}
	if e := nonEmpty(c.Projects); len(e) > 0 {
		out = append(out, ProjectsSection{Entries: e})
	}
	if e := nonEmpty(c.Certifications); len(e) > 0 {
		out = append(out, CertificationsSection{Entries: e})
	}
	if e := nonEmpty(c.Awards); len(e) > 0 {
		out = append(out, AwardsSection{Entries: e})
	}
	if e := nonEmpty(c.Languages); len(e) > 0 {
		out = append(out, LanguagesSection{Entries: e})
	}
	if e := nonEmpty(c.Volunteer); len(e) > 0 {
		out = append(out, VolunteerSection{Entries: e})
	}
	if e := nonEmpty(c.Publications); len(e) > 0 {
		out = append(out, PublicationsSection{Entries: e})
	}
	if e := nonEmpty(c.Memberships); len(e) > 0 {
		out = append(out, MembershipsSection{Entries: e})
	}
	if items := nonBlank(c.Interests); len(items) > 0 {
		out = append(out, InterestsSection{Items: items})
	}
	if !c.Links.IsEmpty() {
		out = append(out, LinksSection{Links: c.Links})
	}
	if e := nonEmpty(c.References); len(e) > 0 {
		out = append(out, ReferencesSection{Entries: e})
	}
	for _, cs := range c.CustomSections {
		if !cs.IsEmpty() {
			out = append(out, CustomBlock{CustomSection: cs})
		}
	}
	return out
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonEmpty[T interface{ IsEmpty() bool }](entries []T) []T {
	var out []T
	for _, e := range entries {
		if !e.IsEmpty() {
			out = append(out, e)
		}
	}
	return out
}
