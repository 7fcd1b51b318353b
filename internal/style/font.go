package style

import "strings"

var printSafeFonts = map[string]string{
	"arial":           "Arial",
	"helvetica":       "Helvetica",
	"times":           "Times",
	"times new roman": "Times New Roman",
	"courier":         "Courier",
	"courier new":     "Courier New",
	"georgia":         "Georgia",
	"verdana":         "Verdana",
	"geneva":          "Geneva",
	"tahoma":          "Tahoma",
	"trebuchet ms":    "Trebuchet MS",
	"impact":          "Impact",
}

// PrintSafeFont 取字体栈中的首个字体，命中白名单时返回 '<name>', sans-serif，
// 否则返回 FallbackFontStack。
func PrintSafeFont(stack string) string {
	stack = strings.TrimSpace(stack)
	if stack == FallbackFontStack {
		return stack
	}
	first, _, _ := strings.Cut(stack, ",")
	first = strings.Trim(strings.TrimSpace(first), `'"`)
	if name, ok := printSafeFonts[strings.ToLower(strings.TrimSpace(first))]; ok {
		return "'" + name + "', sans-serif"
	}
	return FallbackFontStack
}
