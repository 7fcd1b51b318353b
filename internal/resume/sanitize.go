package resume

import (
	"html"
	"net/url"
	"reflect"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags 去除文本中的 HTML 标签并恢复实体，转义留给输出阶段处理。
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// Sanitize 就地清理 Content 中的所有字符串字段。
func (c *Content) Sanitize() {
	sanitizeValue(reflect.ValueOf(c).Elem())
}

func sanitizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(StripTags(v.String()))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			sanitizeValue(v.Field(i))
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			sanitizeValue(v.Index(i))
		}
	}
}

var unsafeSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
}

// IsSafeURL 拒绝 javascript:、data:、vbscript: 协议。空串视为安全，无法解析视为不安全。
func IsSafeURL(raw string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" {
		return true
	}
	base, _ := url.Parse("http://localhost/")
	u, err := base.Parse(cleaned)
	if err != nil {
		return false
	}
	return !unsafeSchemes[strings.ToLower(u.Scheme)]
}
