package render

import (
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

// PlaceholderName 在姓名为空时用作页眉文字。
const PlaceholderName = "Your Name"

// Palette 是一次渲染中所有区块共享的样式引用。
type Palette struct {
	Mode       style.Mode        `json:"mode"`
	Background string            `json:"background"`
	Text       string            `json:"text"`
	Header     string            `json:"header"`
	Accent     string            `json:"accent"`
	Secondary  string            `json:"secondary"`
	Border     string            `json:"border"`
	FontFamily string            `json:"fontFamily"`
	FontSize   string            `json:"fontSize"`
	LineHeight string            `json:"lineHeight"`
	Spacing    string            `json:"spacing"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Tree 是与输出格式无关的简历结构化表示。
type Tree struct {
	Style  *Palette `json:"style"`
	Blocks []Block  `json:"blocks"`
}

// Block 对应一个区块。Style 与 Tree.Style 指向同一份 Palette。
type Block struct {
	Kind         resume.Kind `json:"kind"`
	Title        string      `json:"title,omitempty"`
	Contact      []string    `json:"contact,omitempty"`
	Text         string      `json:"text,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	Entries      []Entry     `json:"entries,omitempty"`
	Links        []Link      `json:"links,omitempty"`
	KeepTogether bool        `json:"keepTogether"`
	Style        *Palette    `json:"-"`
}

// Entry 是重复区块中的一条记录。
type Entry struct {
	Title    string   `json:"title,omitempty"`
	Meta     string   `json:"meta,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Details  []string `json:"details,omitempty"`
	Contact  []string `json:"contact,omitempty"`
	Link     *Link    `json:"link,omitempty"`
}

// Link 是一个 URL 字段；Safe 为 false 时只能作为纯文本展示。
type Link struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
	Safe  bool   `json:"safe"`
}

// Name 返回页眉中的姓名。
func (t Tree) Name() string {
	for _, b := range t.Blocks {
		if b.Kind == resume.KindHeader {
			return b.Title
		}
	}
	return PlaceholderName
}
