package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const black = "#000000"

var (
	hexPattern  = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)
	rgbPattern  = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(?:\d*\.)?\d+%?\s*)?\)$`)
	hslPattern  = regexp.MustCompile(`^hsla?\(\s*(\d+(?:\.\d+)?)(?:deg)?\s*,\s*(\d+(?:\.\d+)?)%\s*,\s*(\d+(?:\.\d+)?)%\s*(?:,\s*(?:\d*\.)?\d+%?\s*)?\)$`)
	namedColors = map[string]string{
		"white":  "#ffffff",
		"black":  "#000000",
		"gray":   "#808080",
		"grey":   "#808080",
		"red":    "#ff0000",
		"blue":   "#0000ff",
		"green":  "#008000",
		"yellow": "#ffff00",
		"purple": "#800080",
		"orange": "#ffa500",
		"pink":   "#ffc0cb",
		"brown":  "#a52a2a",
		"navy":   "#000080",
		"maroon": "#800000",
		"lime":   "#00ff00",
		"aqua":   "#00ffff",
		"teal":   "#008080",
		"olive":  "#808000",
		"silver": "#c0c0c0",
	}
)

// ResolveColor 把 hex、命名色、rgb()/rgba()、hsl()/hsla() 转为 #rrggbb。
// 无法识别的值返回 #000000。
func ResolveColor(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if m := hexPattern.FindStringSubmatch(v); m != nil {
		h := m[1]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		return "#" + h
	}
	if hex, ok := namedColors[v]; ok {
		return hex
	}
	if m := rgbPattern.FindStringSubmatch(v); m != nil {
		return hexRGB(channel(m[1]), channel(m[2]), channel(m[3]))
	}
	if m := hslPattern.FindStringSubmatch(v); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		r, g, b := hslToRGB(math.Mod(h, 360)/360, math.Min(s, 100)/100, math.Min(l, 100)/100)
		return hexRGB(r, g, b)
	}
	return black
}

// IsColor 判断 value 是否为可识别的颜色写法。
func IsColor(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if _, ok := namedColors[v]; ok {
		return true
	}
	return hexPattern.MatchString(v) || rgbPattern.MatchString(v) || hslPattern.MatchString(v)
}

func channel(s string) int {
	n, _ := strconv.Atoi(s)
	if n > 255 {
		return 255
	}
	return n
}

func hexRGB(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (int, int, int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToRGB(p, q, h+1.0/3)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3)
	return int(math.Round(r * 255)), int(math.Round(g * 255)), int(math.Round(b * 255))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}
