package api

import (
	"encoding/json"
	"time"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/resume"
)

// resumeBody 是创建/更新请求体：标题、模板与平铺的内容字段。
// 请求中的 isPublic、shareableLink 等分享字段不在结构中，解码时被丢弃。
type resumeBody struct {
	Title      *string `json:"title"`
	TemplateID *string `json:"templateId"`
	resume.Content
}

// decodeResumeBody 校验并解码请求体。base 为已存储的内容：
// 请求中出现的顶层键整体替换对应字段，缺省的键保持原值。
func decodeResumeBody(raw []byte, base resume.Content) (resumeBody, error) {
	if err := resume.ValidateBody(raw); err != nil {
		return resumeBody{}, err
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return resumeBody{}, resume.NewValidationError("(root)", "body must be a valid JSON object")
	}
	var body resumeBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return resumeBody{}, resume.NewValidationError("(root)", "body must be a valid JSON object")
	}
	body.Content = overlayContent(base, body.Content, present)
	body.Content.Sanitize()
	if body.Title != nil {
		t := resume.StripTags(*body.Title)
		body.Title = &t
	}
	if body.TemplateID != nil {
		id := resume.StripTags(*body.TemplateID)
		body.TemplateID = &id
	}
	return body, nil
}

// overlayContent 用 patch 中出现在 present 里的字段覆盖 base。
// 列表与对象按整体替换，不与旧值逐项合并。
func overlayContent(base, patch resume.Content, present map[string]json.RawMessage) resume.Content {
	out := base
	for key := range present {
		switch key {
		case "personal":
			out.Personal = patch.Personal
		case "summary":
			out.Summary = patch.Summary
		case "skills":
			out.Skills = patch.Skills
		case "experience":
			out.Experience = patch.Experience
		case "education":
			out.Education = patch.Education
		case "projects":
			out.Projects = patch.Projects
		case "certifications":
			out.Certifications = patch.Certifications
		case "awards":
			out.Awards = patch.Awards
		case "languages":
			out.Languages = patch.Languages
		case "volunteer":
			out.Volunteer = patch.Volunteer
		case "references":
			out.References = patch.References
		case "interests":
			out.Interests = patch.Interests
		case "publications":
			out.Publications = patch.Publications
		case "memberships":
			out.Memberships = patch.Memberships
		case "links":
			out.Links = patch.Links
		case "customSections":
			out.CustomSections = patch.CustomSections
		}
	}
	return out
}

type resumeResponse struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	Title      string `json:"title"`
	TemplateID string `json:"templateId"`
	resume.Content
	ShareableLink *string   `json:"shareableLink"`
	IsPublic      bool      `json:"isPublic"`
	ExportStatus  string    `json:"exportStatus,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newResumeResponse(r database.Resume) resumeResponse {
	return resumeResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		TemplateID:    r.TemplateID,
		Content:       r.Content.Data(),
		ShareableLink: r.ShareLinkToken,
		IsPublic:      r.IsPublic,
		ExportStatus:  r.ExportStatus,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// publicResumeResponse 是公开分享页看到的投影，不含属主与分享状态。
type publicResumeResponse struct {
	Title      string `json:"title"`
	TemplateID string `json:"templateId"`
	resume.Content
	UpdatedAt time.Time `json:"updatedAt"`
}

func newPublicResumeResponse(r database.Resume) publicResumeResponse {
	return publicResumeResponse{
		Title:      r.Title,
		TemplateID: r.TemplateID,
		Content:    r.Content.Data(),
		UpdatedAt:  r.UpdatedAt,
	}
}

const defaultResumeTitle = "Untitled Resume"

// defaultResumeContent 是用户尚无简历时编辑器的初始内容。
func defaultResumeContent() resume.Content {
	return resume.Content{
		Personal: resume.Personal{Name: "Your Name", Email: "you@example.com"},
		Summary:  "A short summary of your experience and goals.",
		Skills:   []string{"Communication", "Teamwork"},
	}
}
