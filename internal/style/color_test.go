package style

import (
	"regexp"
	"testing"
)

var sixDigitHex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestResolveColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#FFF", "#ffffff"},
		{"#abc", "#aabbcc"},
		{"#1F2937", "#1f2937"},
		{"  #333  ", "#333333"},
		{"white", "#ffffff"},
		{"Grey", "#808080"},
		{"green", "#008000"},
		{"silver", "#c0c0c0"},
		{"rgb(255,0,0)", "#ff0000"},
		{"rgb( 0 , 128 , 255 )", "#0080ff"},
		{"rgba(1, 2, 3, 0.5)", "#010203"},
		{"rgb(300, 0, 0)", "#ff0000"},
		{"hsl(0, 100%, 50%)", "#ff0000"},
		{"hsl(120, 100%, 25%)", "#008000"},
		{"hsl(240, 100%, 50%)", "#0000ff"},
		{"hsl(0, 0%, 50%)", "#808080"},
		{"hsl(360, 100%, 50%)", "#ff0000"},
		{"hsla(240, 100%, 50%, 0.3)", "#0000ff"},
		{"chartreuse", "#000000"},
		{"#12345", "#000000"},
		{"#ggg", "#000000"},
		{"rgb(1,2)", "#000000"},
		{"linear-gradient(red, blue)", "#000000"},
		{"", "#000000"},
	}
	for _, tc := range cases {
		got := ResolveColor(tc.in)
		if got != tc.want {
			t.Errorf("ResolveColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !sixDigitHex.MatchString(got) {
			t.Errorf("ResolveColor(%q) = %q is not #rrggbb", tc.in, got)
		}
	}
}

func TestResolveColor_AllNamedColors(t *testing.T) {
	if len(namedColors) != 19 {
		t.Fatalf("expected 19 named colors, got %d", len(namedColors))
	}
	for name, hex := range namedColors {
		if got := ResolveColor(name); got != hex {
			t.Errorf("ResolveColor(%q) = %q, want %q", name, got, hex)
		}
		if !IsColor(name) {
			t.Errorf("IsColor(%q) = false", name)
		}
	}
}

func TestPrintSafeFont(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"'Times New Roman', serif", "'Times New Roman', sans-serif"},
		{"Georgia", "'Georgia', sans-serif"},
		{`"trebuchet ms", Helvetica`, "'Trebuchet MS', sans-serif"},
		{"'Roboto', sans-serif", FallbackFontStack},
		{"'Helvetica Neue', Arial", FallbackFontStack},
		{"", FallbackFontStack},
		{FallbackFontStack, FallbackFontStack},
	}
	for _, tc := range cases {
		if got := PrintSafeFont(tc.in); got != tc.want {
			t.Errorf("PrintSafeFont(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLength(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12", "12px"},
		{"12px", "12px"},
		{"11pt", "11pt"},
		{"1.50rem", "1.5rem"},
		{" 2EM ", "2em"},
		{".5em", "0.5em"},
		{"large", ""},
		{"-3px", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeLength(tc.in); got != tc.want {
			t.Errorf("normalizeLength(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := normalizeLineHeight("1.40"); got != "1.4" {
		t.Errorf("normalizeLineHeight = %q", got)
	}
	if got := normalizeLineHeight("18px"); got != "18px" {
		t.Errorf("normalizeLineHeight = %q", got)
	}
}
