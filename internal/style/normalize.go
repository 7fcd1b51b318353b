package style

import "strings"

// 静态导出不支持的属性族，命中即丢弃。
var staticBlockedFragments = []string{
	"shadow", "transform", "transition", "animation", "filter", "gradient",
}

// Normalizer 依据 Defaults 将任意 Config 转为 Safe，无副作用。
type Normalizer struct {
	Defaults Defaults
}

// NewNormalizer 使用给定默认样式表构造 Normalizer。
func NewNormalizer(d Defaults) Normalizer {
	return Normalizer{Defaults: d}
}

// Normalize 使用内置默认样式表规范化 cfg。
func Normalize(cfg Config, mode Mode) Safe {
	return NewNormalizer(DefaultDefaults()).Normalize(cfg, mode)
}

// Normalize 将 cfg 规范化。缺省颜色取默认值，无法识别的颜色为 #000000；
// 尺寸字段缺省时保持为空。Static 模式下字体套用白名单并剔除阴影、变换、动画、滤镜、渐变与复合背景。
func (n Normalizer) Normalize(cfg Config, mode Mode) Safe {
	d := n.Defaults
	out := Safe{
		Mode:            mode,
		BackgroundColor: colorOr(cfg.BackgroundColor, d.BackgroundColor),
		TextColor:       colorOr(cfg.Color, d.TextColor),
		AccentColor:     colorOr(cfg.AccentColor, d.AccentColor),
		SecondaryColor:  colorOr(cfg.SecondaryColor, d.SecondaryColor),
		BorderColor:     colorOr(cfg.BorderColor, d.BorderColor),
		FontSize:        normalizeLength(cfg.FontSize),
		LineHeight:      normalizeLineHeight(cfg.LineHeight),
		Spacing:         normalizeLength(cfg.Spacing),
	}

	// 标题色缺省时沿用正文色。
	header := cfg.HeaderColor
	if strings.TrimSpace(header) == "" {
		header = cfg.Color
	}
	out.HeaderColor = colorOr(header, d.HeaderColor)

	font := strings.TrimSpace(cfg.FontFamily)
	if font == "" {
		font = d.FontFamily
	}
	if mode == Static {
		font = PrintSafeFont(font)
	}
	out.FontFamily = font

	for k, v := range cfg.Extra {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if mode == Static && blockedInStatic(k, v) {
			continue
		}
		if out.Extra == nil {
			out.Extra = map[string]string{}
		}
		out.Extra[k] = v
	}
	return out
}

// ForStatic 将 Live 结果转为 Static 结果；对 Static 结果调用不产生变化。
func (n Normalizer) ForStatic(s Safe) Safe {
	if s.Mode == Static {
		return s
	}
	return n.Normalize(s.Config(), Static)
}

func colorOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return ResolveColor(fallback)
	}
	return ResolveColor(value)
}

func blockedInStatic(key, value string) bool {
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "background") {
		return true
	}
	for _, frag := range staticBlockedFragments {
		if strings.Contains(k, frag) {
			return true
		}
	}
	v := strings.ToLower(value)
	return strings.Contains(v, "gradient(") || strings.Contains(v, "url(")
}
