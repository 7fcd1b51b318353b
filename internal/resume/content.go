package resume

import "strings"

// Content 表示存储在简历 Content(JSONB) 中的结构化数据。
// 所有字段缺省即为空值，渲染侧只需判断“是否为空”。
type Content struct {
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Awards         []Award         `json:"awards"`
	Languages      []Language      `json:"languages"`
	Volunteer      []Volunteer     `json:"volunteer"`
	References     []Reference     `json:"references"`
	Interests      []string        `json:"interests"`
	Publications   []Publication   `json:"publications"`
	Memberships    []Membership    `json:"memberships"`
	Links          Links           `json:"links"`
	CustomSections []CustomSection `json:"customSections"`
}

type Personal struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	School      string `json:"school"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

// InstitutionName 兼容旧数据中的 school 字段。
func (e Education) InstitutionName() string {
	if strings.TrimSpace(e.Institution) != "" {
		return e.Institution
	}
	return e.School
}

type Project struct {
	Name         string `json:"name"`
	Technologies string `json:"technologies"`
	Description  string `json:"description"`
	Link         string `json:"link"`
}

type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId"`
}

type Award struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type Volunteer struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

type Reference struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Publication struct {
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Date    string `json:"date"`
	Link    string `json:"link"`
}

type Membership struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// Links 是具名的个人链接，全部可选。
type Links struct {
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Website   string `json:"website"`
}

type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (p Personal) IsEmpty() bool      { return blank(p.Name, p.Email, p.Phone, p.Location) }
func (e Experience) IsEmpty() bool    { return blank(e.Role, e.Company, e.StartDate, e.EndDate, e.Duration, e.Description) }
func (e Education) IsEmpty() bool     { return blank(e.Degree, e.Institution, e.School, e.Year, e.GPA) }
func (p Project) IsEmpty() bool       { return blank(p.Name, p.Technologies, p.Description, p.Link) }
func (c Certification) IsEmpty() bool { return blank(c.Name, c.Issuer, c.Date, c.CredentialID) }
func (a Award) IsEmpty() bool         { return blank(a.Name, a.Issuer, a.Date, a.Description) }
func (l Language) IsEmpty() bool      { return blank(l.Name, l.Proficiency) }
func (v Volunteer) IsEmpty() bool     { return blank(v.Role, v.Organization, v.StartDate, v.EndDate, v.Description) }
func (r Reference) IsEmpty() bool     { return blank(r.Name, r.Position, r.Company, r.Email, r.Phone) }
func (p Publication) IsEmpty() bool   { return blank(p.Title, p.Journal, p.Date, p.Link) }
func (m Membership) IsEmpty() bool    { return blank(m.Role, m.Organization, m.StartDate, m.EndDate) }
func (l Links) IsEmpty() bool         { return blank(l.LinkedIn, l.GitHub, l.Portfolio, l.Website) }
func (c CustomSection) IsEmpty() bool { return blank(c.Title, c.Content) }
