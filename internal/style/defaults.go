package style

// FallbackFontStack 是静态导出时字体不在白名单内的替代字体栈。
const FallbackFontStack = "'Helvetica', 'Arial', sans-serif"

// Defaults 集中维护渲染与导出共用的默认样式，显式传入而非读取全局状态。
type Defaults struct {
	BackgroundColor string
	TextColor       string
	HeaderColor     string
	AccentColor     string
	SecondaryColor  string
	BorderColor     string
	FontFamily      string
	FontSize        string
	LineHeight      string
	Spacing         string
}

// DefaultDefaults 返回内置的默认样式表。
func DefaultDefaults() Defaults {
	return Defaults{
		BackgroundColor: "#ffffff",
		TextColor:       "#333",
		HeaderColor:     "#1f2937",
		AccentColor:     "#2563eb",
		SecondaryColor:  "#f0f0f0",
		BorderColor:     "#ddd",
		FontFamily:      "'Inter', sans-serif",
		FontSize:        "11pt",
		LineHeight:      "1.4",
		Spacing:         "1.5rem",
	}
}

// Fill 为缺省的尺寸字段套用默认值，颜色与字体已由 Normalize 处理。
func (d Defaults) Fill(s Safe) Safe {
	if s.FontSize == "" {
		s.FontSize = normalizeLength(d.FontSize)
	}
	if s.LineHeight == "" {
		s.LineHeight = normalizeLineHeight(d.LineHeight)
	}
	if s.Spacing == "" {
		s.Spacing = normalizeLength(d.Spacing)
	}
	return s
}
