package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/abhismart8/resume-builder/internal/render"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

// ContentTypeHTML 是静态导出产物的 MIME 类型。
const ContentTypeHTML = "text/html; charset=utf-8"

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	// 取值均来自 Static 模式规范化结果（十六进制颜色、白名单字体、受限长度）。
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(pageTemplate))

// Artifact 是可打印的自包含 HTML 文档。
type Artifact struct {
	Title       string
	ContentType string
	HTML        []byte
}

// Serializer 将 Tree 输出为静态 HTML。
type Serializer struct {
	Defaults style.Defaults
}

// NewSerializer 使用给定默认样式表构造 Serializer。
func NewSerializer(d style.Defaults) Serializer {
	return Serializer{Defaults: d}
}

// Serialize 使用内置默认样式表输出。
func Serialize(tree render.Tree, s style.Safe) (Artifact, error) {
	return NewSerializer(style.DefaultDefaults()).Serialize(tree, s)
}

type pageData struct {
	Title  string
	Style  style.Safe
	Blocks []render.Block
}

// Serialize 输出 A4 页面：用户文本全部转义，只有通过 IsSafeURL 的链接才会成为超链接。
// 即使 tree 为空也会输出带 "Your Name" 占位的页眉。
func (s Serializer) Serialize(tree render.Tree, safe style.Safe) (Artifact, error) {
	st := s.Defaults.Fill(NewStaticStyle(s.Defaults, safe))

	blocks := make([]render.Block, 0, len(tree.Blocks)+1)
	if len(tree.Blocks) == 0 || tree.Blocks[0].Kind != resume.KindHeader {
		blocks = append(blocks, render.Block{Kind: resume.KindHeader, Title: render.PlaceholderName})
	}
	for _, b := range tree.Blocks {
		blocks = append(blocks, revalidateLinks(b))
	}

	title := "Resume"
	if name := strings.TrimSpace(blocks[0].Title); name != "" && name != render.PlaceholderName {
		title = "Resume - " + name
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{Title: title, Style: st, Blocks: blocks}); err != nil {
		return Artifact{}, fmt.Errorf("execute export template: %w", err)
	}
	return Artifact{Title: title, ContentType: ContentTypeHTML, HTML: buf.Bytes()}, nil
}

// NewStaticStyle 保证导出总是使用 Static 模式的样式。
func NewStaticStyle(d style.Defaults, s style.Safe) style.Safe {
	return style.NewNormalizer(d).ForStatic(s)
}

// revalidateLinks 不信任上游的 Safe 标记，重新校验每个链接。
func revalidateLinks(b render.Block) render.Block {
	if len(b.Links) > 0 {
		links := make([]render.Link, len(b.Links))
		for i, l := range b.Links {
			l.Safe = resume.IsSafeURL(l.URL)
			links[i] = l
		}
		b.Links = links
	}
	if len(b.Entries) > 0 {
		entries := make([]render.Entry, len(b.Entries))
		for i, e := range b.Entries {
			if e.Link != nil {
				l := *e.Link
				l.Safe = resume.IsSafeURL(l.URL)
				e.Link = &l
			}
			entries[i] = e
		}
		b.Entries = entries
	}
	return b
}
