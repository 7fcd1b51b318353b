package render

import (
	"strings"

	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

var sectionTitles = map[resume.Kind]string{
	resume.KindSummary:        "Summary",
	resume.KindSkills:         "Skills",
	resume.KindExperience:     "Experience",
	resume.KindEducation:      "Education",
	resume.KindProjects:       "Projects",
	resume.KindCertifications: "Certifications",
	resume.KindAwards:         "Awards & Honors",
	resume.KindLanguages:      "Languages",
	resume.KindVolunteer:      "Volunteer Experience",
	resume.KindPublications:   "Publications",
	resume.KindMemberships:    "Professional Memberships",
	resume.KindInterests:      "Interests",
	resume.KindLinks:          "Professional Links",
	resume.KindReferences:     "References",
}

// Renderer 把简历内容与规范化样式组合为 Tree。纯函数，无 I/O。
type Renderer struct {
	Defaults style.Defaults
}

// NewRenderer 使用给定默认样式表构造 Renderer。
func NewRenderer(d style.Defaults) Renderer {
	return Renderer{Defaults: d}
}

// Render 使用内置默认样式表渲染。
func Render(c resume.Content, s style.Safe) Tree {
	return NewRenderer(style.DefaultDefaults()).Render(c, s)
}

// Render 始终输出页眉区块，其余区块按固定顺序输出且只输出非空区块。
func (r Renderer) Render(c resume.Content, s style.Safe) Tree {
	p := r.palette(s)
	blocks := []Block{headerBlock(c.Personal, p)}
	for _, sec := range c.Sections() {
		b := sectionBlock(sec)
		b.Style = p
		b.KeepTogether = true
		blocks = append(blocks, b)
	}
	return Tree{Style: p, Blocks: blocks}
}

func (r Renderer) palette(s style.Safe) *Palette {
	s = r.Defaults.Fill(s)
	p := &Palette{
		Mode:       s.Mode,
		Background: s.BackgroundColor,
		Text:       s.TextColor,
		Header:     s.HeaderColor,
		Accent:     s.AccentColor,
		Secondary:  s.SecondaryColor,
		Border:     s.BorderColor,
		FontFamily: s.FontFamily,
		FontSize:   s.FontSize,
		LineHeight: s.LineHeight,
		Spacing:    s.Spacing,
	}
	if len(s.Extra) > 0 {
		p.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			p.Extra[k] = v
		}
	}
	return p
}

func headerBlock(p resume.Personal, pal *Palette) Block {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = PlaceholderName
	}
	return Block{
		Kind:         resume.KindHeader,
		Title:        name,
		Contact:      present(p.Email, p.Phone, p.Location),
		KeepTogether: true,
		Style:        pal,
	}
}

func sectionBlock(sec resume.Section) Block {
	b := Block{Kind: sec.Kind(), Title: sectionTitles[sec.Kind()]}
	switch s := sec.(type) {
	case resume.SummarySection:
		b.Text = strings.TrimSpace(s.Text)
	case resume.SkillsSection:
		b.Tags = trimAll(s.Items)
	case resume.InterestsSection:
		b.Text = strings.Join(trimAll(s.Items), ", ")
	case resume.ExperienceSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Role),
				Meta:     period(e.StartDate, e.EndDate, e.Duration),
				Subtitle: strings.TrimSpace(e.Company),
				Details:  present(e.Description),
			})
		}
	case resume.EducationSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Degree),
				Meta:     strings.TrimSpace(e.Year),
				Subtitle: strings.TrimSpace(e.InstitutionName()),
				Details:  labelled("GPA: ", e.GPA),
			})
		}
	case resume.ProjectsSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:   strings.TrimSpace(e.Name),
				Meta:    strings.TrimSpace(e.Technologies),
				Details: present(e.Description),
				Link:    link("", e.Link),
			})
		}
	case resume.CertificationsSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Name),
				Meta:     strings.TrimSpace(e.Date),
				Subtitle: strings.TrimSpace(e.Issuer),
				Details:  labelled("Credential ID: ", e.CredentialID),
			})
		}
	case resume.AwardsSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Name),
				Meta:     strings.TrimSpace(e.Date),
				Subtitle: strings.TrimSpace(e.Issuer),
				Details:  present(e.Description),
			})
		}
	case resume.LanguagesSection:
		for _, e := range s.Entries {
			tag := strings.TrimSpace(e.Name)
			if prof := strings.TrimSpace(e.Proficiency); prof != "" {
				tag = strings.TrimSpace(tag + " (" + prof + ")")
			}
			b.Tags = append(b.Tags, tag)
		}
	case resume.VolunteerSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Role),
				Meta:     period(e.StartDate, e.EndDate, ""),
				Subtitle: strings.TrimSpace(e.Organization),
				Details:  present(e.Description),
			})
		}
	case resume.PublicationsSection:
		for _, e := range s.Entries {
			title := strings.TrimSpace(e.Title)
			if title != "" {
				title = `"` + title + `"`
			}
			b.Entries = append(b.Entries, Entry{
				Title:    title,
				Meta:     strings.TrimSpace(e.Date),
				Subtitle: strings.TrimSpace(e.Journal),
				Link:     link("", e.Link),
			})
		}
	case resume.MembershipsSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Role),
				Meta:     period(e.StartDate, e.EndDate, ""),
				Subtitle: strings.TrimSpace(e.Organization),
			})
		}
	case resume.LinksSection:
		for _, l := range []*Link{
			link("LinkedIn", s.Links.LinkedIn),
			link("GitHub", s.Links.GitHub),
			link("Portfolio", s.Links.Portfolio),
			link("Website", s.Links.Website),
		} {
			if l != nil {
				b.Links = append(b.Links, *l)
			}
		}
	case resume.ReferencesSection:
		for _, e := range s.Entries {
			b.Entries = append(b.Entries, Entry{
				Title:    strings.TrimSpace(e.Name),
				Subtitle: joinNonEmpty(" at ", e.Position, e.Company),
				Contact:  present(e.Email, e.Phone),
			})
		}
	case resume.CustomBlock:
		b.Title = strings.TrimSpace(s.Title)
		b.Text = strings.TrimSpace(s.Content)
	}
	return b
}

func link(label, raw string) *Link {
	u := strings.TrimSpace(raw)
	if u == "" {
		return nil
	}
	return &Link{Label: label, URL: u, Safe: resume.IsSafeURL(u)}
}

func period(start, end, duration string) string {
	if p := joinNonEmpty(" - ", start, end); p != "" {
		return p
	}
	return strings.TrimSpace(duration)
}

func labelled(prefix, value string) []string {
	if v := strings.TrimSpace(value); v != "" {
		return []string{prefix + v}
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(present(parts...), sep)
}

func present(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
