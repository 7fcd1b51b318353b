package style

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Mode 区分实时预览与静态导出两条渲染路径。
type Mode int

const (
	Live Mode = iota
	Static
)

func (m Mode) String() string {
	if m == Static {
		return "static"
	}
	return "live"
}

// ParseMode 将查询参数解析为 Mode，未知值按 Live 处理。
func ParseMode(s string) Mode {
	if s == "static" {
		return Static
	}
	return Live
}

// Config 是模板携带的原始样式配置，所有字段都可缺省。
// 未识别的属性保存在 Extra 中，由 Normalize 决定去留。
type Config struct {
	BackgroundColor string
	Color           string
	HeaderColor     string
	AccentColor     string
	SecondaryColor  string
	BorderColor     string
	FontFamily      string
	FontSize        string
	LineHeight      string
	Spacing         string
	Extra           map[string]string
}

var knownKeys = []string{
	"backgroundColor", "color", "headerColor", "accentColor", "secondaryColor",
	"borderColor", "fontFamily", "fontSize", "lineHeight", "spacing",
}

func (c *Config) field(key string) *string {
	switch key {
	case "backgroundColor":
		return &c.BackgroundColor
	case "color":
		return &c.Color
	case "headerColor":
		return &c.HeaderColor
	case "accentColor":
		return &c.AccentColor
	case "secondaryColor":
		return &c.SecondaryColor
	case "borderColor":
		return &c.BorderColor
	case "fontFamily":
		return &c.FontFamily
	case "fontSize":
		return &c.FontSize
	case "lineHeight":
		return &c.LineHeight
	case "spacing":
		return &c.Spacing
	}
	return nil
}

// UnmarshalJSON 接受字符串或数字形式的属性值，其他类型的值会被忽略。
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Config{}
	for key, msg := range raw {
		v, ok := scalarString(msg)
		if !ok {
			continue
		}
		c.set(key, v)
	}
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// Map 将配置展开为扁平的属性表，空值不输出。
func (c Config) Map() map[string]string {
	out := make(map[string]string, len(knownKeys)+len(c.Extra))
	for k, v := range c.Extra {
		if v != "" {
			out[k] = v
		}
	}
	for _, k := range knownKeys {
		if v := *c.field(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// Overlay 返回以 o 中非空属性覆盖 c 后的配置。
func (c Config) Overlay(o Config) Config {
	out := Config{}
	for k, v := range c.Map() {
		out.set(k, v)
	}
	for k, v := range o.Map() {
		out.set(k, v)
	}
	return out
}

func (c *Config) set(key, value string) {
	if p := c.field(key); p != nil {
		*p = value
		return
	}
	if c.Extra == nil {
		c.Extra = map[string]string{}
	}
	c.Extra[key] = value
}

func scalarString(msg json.RawMessage) (string, bool) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return "", false
	}
	switch msg[0] {
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", false
		}
		return s, true
	case 'n', '{', '[':
		return "", false
	case 't', 'f':
		return string(msg), true
	}
	f, err := strconv.ParseFloat(string(msg), 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Safe 是 Normalize 的输出：颜色一律为 6 位小写十六进制，
// 字体与尺寸已按模式处理。FontSize、LineHeight、Spacing 为空表示缺省，由调用方套用默认值。
type Safe struct {
	Mode            Mode              `json:"mode"`
	BackgroundColor string            `json:"backgroundColor"`
	TextColor       string            `json:"color"`
	HeaderColor     string            `json:"headerColor"`
	AccentColor     string            `json:"accentColor"`
	SecondaryColor  string            `json:"secondaryColor"`
	BorderColor     string            `json:"borderColor"`
	FontFamily      string            `json:"fontFamily"`
	FontSize        string            `json:"fontSize,omitempty"`
	LineHeight      string            `json:"lineHeight,omitempty"`
	Spacing         string            `json:"spacing,omitempty"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Config 把规范化结果还原成可再次输入 Normalize 的配置。
func (s Safe) Config() Config {
	c := Config{
		BackgroundColor: s.BackgroundColor,
		Color:           s.TextColor,
		HeaderColor:     s.HeaderColor,
		AccentColor:     s.AccentColor,
		SecondaryColor:  s.SecondaryColor,
		BorderColor:     s.BorderColor,
		FontFamily:      s.FontFamily,
		FontSize:        s.FontSize,
		LineHeight:      s.LineHeight,
		Spacing:         s.Spacing,
	}
	if len(s.Extra) > 0 {
		c.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// Keys 返回输出中出现的全部属性名（已排序）。
func (s Safe) Keys() []string {
	m := s.Config().Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	*m = ParseMode(string(b))
	return nil
}
