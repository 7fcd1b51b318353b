package main

import (
	"gorm.io/datatypes"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

type seedTemplate struct {
	slug, name, description, category string
	styles                            style.Config
	sample                            resume.Personal
}

var seedCatalog = []seedTemplate{
	{
		slug:        "classic-professional",
		name:        "Classic Professional",
		description: "Clean and professional single-column resume perfect for traditional industries",
		category:    "Professional",
		styles:      style.Config{BackgroundColor: "#ffffff", FontFamily: "'Times New Roman', serif", Color: "#333333"},
		sample:      resume.Personal{Name: "John Doe", Email: "john.doe@email.com", Phone: "(555) 123-4567", Location: "New York, NY"},
	},
	{
		slug:        "modern-creative",
		name:        "Modern Creative",
		description: "Bold and modern design with creative layouts for tech and design roles",
		category:    "Creative",
		styles:      style.Config{BackgroundColor: "#f8f9fa", FontFamily: "'Helvetica Neue', sans-serif", Color: "#2d3748", AccentColor: "#4299e1"},
		sample:      resume.Personal{Name: "Jane Smith", Email: "jane.smith@email.com", Phone: "(555) 987-6543", Location: "San Francisco, CA"},
	},
	{
		slug:        "minimalist-clean",
		name:        "Minimalist Clean",
		description: "Simple and elegant design focusing on content with minimal distractions",
		category:    "Minimalist",
		styles:      style.Config{BackgroundColor: "#ffffff", FontFamily: "'Roboto', sans-serif", Color: "#1a202c", Spacing: "1.5rem"},
		sample:      resume.Personal{Name: "Alex Johnson", Email: "alex.johnson@email.com", Phone: "(555) 456-7890", Location: "Austin, TX"},
	},
	{
		slug:        "executive-premium",
		name:        "Executive Premium",
		description: "Sophisticated design for senior executives and management positions",
		category:    "Executive",
		styles:      style.Config{BackgroundColor: "#ffffff", FontFamily: "'Georgia', serif", Color: "#1a365d", HeaderColor: "#2d3748", AccentColor: "#744210"},
		sample:      resume.Personal{Name: "Michael Chen", Email: "michael.chen@email.com", Phone: "(555) 234-5678", Location: "Chicago, IL"},
	},
	{
		slug:        "tech-innovative",
		name:        "Tech Innovative",
		description: "Cutting-edge design for technology and startup professionals",
		category:    "Technology",
		styles:      style.Config{BackgroundColor: "#0f172a", FontFamily: "'Inter', sans-serif", Color: "#f1f5f9", AccentColor: "#06b6d4", SecondaryColor: "#64748b"},
		sample:      resume.Personal{Name: "Sarah Kim", Email: "sarah.kim@email.com", Phone: "(555) 345-6789", Location: "Seattle, WA"},
	},
	{
		slug:        "academic-scholar",
		name:        "Academic Scholar",
		description: "Traditional academic format perfect for educators and researchers",
		category:    "Academic",
		styles:      style.Config{BackgroundColor: "#ffffff", FontFamily: "'Times New Roman', serif", Color: "#2d3748", FontSize: "11pt", LineHeight: "1.4"},
		sample:      resume.Personal{Name: "Dr. Robert Wilson", Email: "r.wilson@university.edu", Phone: "(555) 567-8901", Location: "Boston, MA"},
	},
}

// builtinTemplates 按目录顺序生成模板，SortOrder 从 1 开始。
func builtinTemplates() []database.Template {
	out := make([]database.Template, 0, len(seedCatalog))
	for i, s := range seedCatalog {
		out = append(out, database.Template{
			Slug:        s.slug,
			Name:        s.name,
			Description: s.description,
			Category:    s.category,
			Thumbnail:   "/templates/" + s.slug + ".svg",
			IsActive:    true,
			SortOrder:   i + 1,
			Styles:      datatypes.NewJSONType(s.styles),
			PreviewData: datatypes.NewJSONType(resume.Content{Personal: s.sample}),
		})
	}
	return out
}
