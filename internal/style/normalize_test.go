package style

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNormalize_RGBBackground(t *testing.T) {
	got := Normalize(Config{BackgroundColor: "rgb(255,0,0)"}, Live)
	if got.BackgroundColor != "#ff0000" {
		t.Fatalf("backgroundColor = %q", got.BackgroundColor)
	}
}

func TestNormalize_DefaultsAndUnknownColors(t *testing.T) {
	got := Normalize(Config{AccentColor: "not-a-color"}, Live)
	if got.AccentColor != "#000000" {
		t.Errorf("accent = %q, want #000000", got.AccentColor)
	}
	if got.BackgroundColor != "#ffffff" || got.TextColor != "#333333" || got.HeaderColor != "#1f2937" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.BorderColor != "#dddddd" || got.SecondaryColor != "#f0f0f0" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.FontSize != "" || got.LineHeight != "" || got.Spacing != "" {
		t.Errorf("absent numeric fields should stay absent: %+v", got)
	}
	if got.FontFamily != "'Inter', sans-serif" {
		t.Errorf("live default font = %q", got.FontFamily)
	}
}

func TestNormalize_HeaderFollowsTextColor(t *testing.T) {
	got := Normalize(Config{Color: "navy"}, Static)
	if got.HeaderColor != "#000080" {
		t.Fatalf("headerColor = %q, want text color", got.HeaderColor)
	}
}

func TestNormalize_FontByMode(t *testing.T) {
	cfg := Config{FontFamily: "'Roboto', sans-serif"}
	if got := Normalize(cfg, Live).FontFamily; got != "'Roboto', sans-serif" {
		t.Errorf("live font = %q", got)
	}
	if got := Normalize(cfg, Static).FontFamily; got != FallbackFontStack {
		t.Errorf("static font = %q", got)
	}
	if got := Normalize(Config{}, Static).FontFamily; got != FallbackFontStack {
		t.Errorf("static default font = %q", got)
	}
}

func TestNormalize_StaticStripsUnsupported(t *testing.T) {
	cfg := Config{
		Extra: map[string]string{
			"boxShadow":       "0 0 4px #000",
			"textShadow":      "1px 1px red",
			"transform":       "scale(1.1)",
			"transition":      "all 1s",
			"animation":       "spin 2s",
			"filter":          "blur(2px)",
			"backdropFilter":  "blur(4px)",
			"backgroundImage": "url(x.png)",
			"background":      "linear-gradient(red, blue)",
			"borderImage":     "linear-gradient(red, blue) 1",
			"letterSpacing":   "0.5px",
		},
	}
	static := Normalize(cfg, Static)
	for _, k := range static.Keys() {
		lk := strings.ToLower(k)
		for _, frag := range append(staticBlockedFragments, "background") {
			if strings.Contains(lk, frag) && k != "backgroundColor" {
				t.Errorf("static output contains %q", k)
			}
		}
	}
	if static.Extra["letterSpacing"] != "0.5px" {
		t.Errorf("plain extra property dropped: %v", static.Extra)
	}
	if _, ok := static.Extra["borderImage"]; ok {
		t.Errorf("gradient value survived static mode")
	}

	live := Normalize(cfg, Live)
	if live.Extra["boxShadow"] == "" {
		t.Errorf("live mode should pass extras through")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Config{
		{},
		{BackgroundColor: "#FFF", Color: "rgb(10,20,30)", FontFamily: "Georgia, serif", FontSize: "12", LineHeight: "1.50"},
		{AccentColor: "hsl(200, 50%, 40%)", FontFamily: "'Comic Sans MS'", Spacing: "2REM"},
		{Extra: map[string]string{"boxShadow": "x", "letterSpacing": "1px"}},
	}
	for _, mode := range []Mode{Live, Static} {
		for _, in := range inputs {
			first := Normalize(in, mode)
			again := Normalize(in, mode)
			if !reflect.DeepEqual(first, again) {
				t.Errorf("non-deterministic output for %+v", in)
			}
			twice := Normalize(first.Config(), mode)
			if !reflect.DeepEqual(first, twice) {
				t.Errorf("mode %s: normalize(normalize(x)) != normalize(x)\n first=%+v\n twice=%+v", mode, first, twice)
			}
		}
	}
}

func TestNormalizer_ForStatic(t *testing.T) {
	n := NewNormalizer(DefaultDefaults())
	live := n.Normalize(Config{FontFamily: "Verdana", Extra: map[string]string{"filter": "blur(1px)"}}, Live)
	static := n.ForStatic(live)
	if static.Mode != Static || static.FontFamily != "'Verdana', sans-serif" {
		t.Fatalf("unexpected static style: %+v", static)
	}
	if _, ok := static.Extra["filter"]; ok {
		t.Fatalf("filter survived ForStatic")
	}
	if !reflect.DeepEqual(n.ForStatic(static), static) {
		t.Fatalf("ForStatic not stable")
	}
}

func TestDefaults_Fill(t *testing.T) {
	got := DefaultDefaults().Fill(Normalize(Config{FontSize: "14"}, Static))
	if got.FontSize != "14px" || got.LineHeight != "1.4" || got.Spacing != "1.5rem" {
		t.Fatalf("Fill = %+v", got)
	}
}

func TestConfig_JSON(t *testing.T) {
	var cfg Config
	raw := `{"backgroundColor":"#0f172a","fontSize":12,"lineHeight":1.4,"boxShadow":"none","nested":{"a":1}}`
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.BackgroundColor != "#0f172a" || cfg.FontSize != "12" || cfg.LineHeight != "1.4" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Extra["boxShadow"] != "none" {
		t.Fatalf("extra not kept: %+v", cfg.Extra)
	}
	if _, ok := cfg.Extra["nested"]; ok {
		t.Fatalf("object values should be ignored")
	}
	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"fontSize":"12"`) {
		t.Fatalf("marshal output = %s", out)
	}
}

func TestConfigOverlay(t *testing.T) {
	base := Config{Color: "#111", FontFamily: "Georgia", Extra: map[string]string{"letterSpacing": "1px"}}
	got := base.Overlay(Config{Color: "#222", AccentColor: "red"})
	if got.Color != "#222" || got.FontFamily != "Georgia" || got.AccentColor != "red" {
		t.Fatalf("unexpected overlay: %+v", got)
	}
	if got.Extra["letterSpacing"] != "1px" {
		t.Fatalf("extra lost: %+v", got.Extra)
	}
	if base.Color != "#111" {
		t.Fatal("overlay mutated receiver")
	}
}
