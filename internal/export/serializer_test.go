package export

import (
	"strings"
	"testing"

	"github.com/abhismart8/resume-builder/internal/render"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

func serialize(t *testing.T, c resume.Content, cfg style.Config) string {
	t.Helper()
	safe := style.Normalize(cfg, style.Static)
	art, err := Serialize(render.Render(c, safe), safe)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if art.ContentType != ContentTypeHTML {
		t.Fatalf("content type = %q", art.ContentType)
	}
	return string(art.HTML)
}

func TestSerialize_EscapesUserText(t *testing.T) {
	payload := `X<Y>Z&W"Q'R`
	c := resume.Content{
		Personal:       resume.Personal{Name: payload, Email: payload},
		Summary:        payload,
		Skills:         []string{payload},
		Experience:     []resume.Experience{{Role: payload, Company: payload, Description: payload}},
		CustomSections: []resume.CustomSection{{Title: payload, Content: payload}},
		Links:          resume.Links{Website: "https://example.com/?q=" + payload},
	}
	out := serialize(t, c, style.Config{})
	if strings.Contains(out, payload) {
		t.Fatalf("raw user text leaked into artifact")
	}
	for _, frag := range []string{"X<Y", "Y>Z", "Z&W", `W"Q`, "Q'R"} {
		if strings.Contains(out, frag) {
			t.Fatalf("literal fragment %q found in artifact", frag)
		}
	}
	if !strings.Contains(out, "X&lt;Y&gt;Z&amp;W&#34;Q&#39;R") {
		t.Fatalf("escaped text missing:\n%s", out)
	}
}

func TestSerialize_EmptyDocument(t *testing.T) {
	out := serialize(t, resume.Content{}, style.Config{})
	if !strings.Contains(out, "<h1>Your Name</h1>") {
		t.Fatalf("placeholder header missing:\n%s", out)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, "</html>") {
		t.Fatalf("artifact is not a complete document")
	}

	art, err := Serialize(render.Tree{}, style.Normalize(style.Config{}, style.Live))
	if err != nil {
		t.Fatalf("serialize zero tree: %v", err)
	}
	if !strings.Contains(string(art.HTML), "<h1>Your Name</h1>") {
		t.Fatalf("zero tree should still render a header")
	}
}

func TestSerialize_SelfContainedPrintLayout(t *testing.T) {
	out := serialize(t, resume.Content{Summary: "hello", Skills: []string{"go"}}, style.Config{
		FontFamily: "'Roboto', sans-serif",
		Extra:      map[string]string{"boxShadow": "0 0 1px red", "backgroundImage": "url(http://x/y.png)"},
	})
	for _, banned := range []string{"<script", "<link", "@import", "url(", "box-shadow", "boxShadow", "Roboto"} {
		if strings.Contains(out, banned) {
			t.Errorf("artifact contains %q", banned)
		}
	}
	for _, want := range []string{"width: 210mm", "padding: 20mm", "break-inside: avoid", style.FallbackFontStack} {
		if !strings.Contains(out, want) {
			t.Errorf("artifact missing %q", want)
		}
	}
}

func TestSerialize_CanonicalOrder(t *testing.T) {
	out := serialize(t, resume.Content{
		Personal:   resume.Personal{Name: "Ada"},
		References: []resume.Reference{{Name: "Ref"}},
		Summary:    "Sum",
		Skills:     []string{"Skill"},
	}, style.Config{})
	idx := func(s string) int { return strings.Index(out, s) }
	order := []string{"<h1>Ada</h1>", "section-summary", "section-skills", "section-references"}
	for i := 1; i < len(order); i++ {
		if idx(order[i-1]) < 0 || idx(order[i-1]) > idx(order[i]) {
			t.Fatalf("%q should precede %q", order[i-1], order[i])
		}
	}
}

func TestSerialize_Links(t *testing.T) {
	out := serialize(t, resume.Content{
		Links:    resume.Links{GitHub: "https://github.com/ada", Website: "javascript:alert(1)"},
		Projects: []resume.Project{{Name: "P", Link: "data:text/html,hi"}},
	}, style.Config{})
	if !strings.Contains(out, `<a href="https://github.com/ada">`) {
		t.Errorf("safe link should be active:\n%s", out)
	}
	if strings.Contains(out, `href="javascript`) || strings.Contains(out, `href="data:`) {
		t.Errorf("unsafe scheme rendered as hyperlink")
	}
	if !strings.Contains(out, `<span class="link-text">javascript:alert(1)</span>`) {
		t.Errorf("unsafe link should be inert text:\n%s", out)
	}
}

func TestSerialize_RevalidatesTreeLinks(t *testing.T) {
	tree := render.Tree{Blocks: []render.Block{
		{Kind: resume.KindHeader, Title: "Ada"},
		{Kind: resume.KindLinks, Title: "Professional Links", Links: []render.Link{{Label: "Website", URL: "javascript:alert(1)", Safe: true}}},
	}}
	art, err := Serialize(tree, style.Normalize(style.Config{}, style.Static))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if strings.Contains(string(art.HTML), "<a ") {
		t.Fatalf("tampered Safe flag produced a hyperlink")
	}
}

func TestSerialize_Title(t *testing.T) {
	safe := style.Normalize(style.Config{}, style.Static)
	art, err := Serialize(render.Render(resume.Content{Personal: resume.Personal{Name: "Ada"}}, safe), safe)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if art.Title != "Resume - Ada" {
		t.Fatalf("title = %q", art.Title)
	}
}

func TestBuild_ForcesStaticStyle(t *testing.T) {
	c := resume.Content{Personal: resume.Personal{Name: "Ada"}}
	art, err := Build(c, style.Config{
		FontFamily: "'Roboto', sans-serif",
		Extra:      map[string]string{"backgroundImage": "url(http://x/y.png)"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html := string(art.HTML)
	if strings.Contains(html, "Roboto") || strings.Contains(html, "url(") {
		t.Fatalf("live-only style leaked into export:\n%s", html)
	}
	if art.Title != "Resume - Ada" {
		t.Fatalf("title = %q", art.Title)
	}
}
