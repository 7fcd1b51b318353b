package style

import (
	"regexp"
	"strconv"
	"strings"
)

var lengthPattern = regexp.MustCompile(`^(\d*\.?\d+)\s*(px|pt|em|rem|%)?$`)

// normalizeLength 统一长度写法：纯数字补 px，支持的单位保留并规范数值，无法解析返回空。
func normalizeLength(value string) string {
	m := lengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return ""
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	unit := m[2]
	if unit == "" {
		unit = "px"
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + unit
}

// normalizeLineHeight 行高允许无单位倍数，其余按长度处理。
func normalizeLineHeight(value string) string {
	m := lengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return ""
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + m[2]
}
