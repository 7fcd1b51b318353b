package export

// pageTemplate 是静态导出页面。所有样式值来自 Static 模式的规范化结果，
// 不引用任何外部样式表或脚本。
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 0; }
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: {{css .Style.FontFamily}};
  background: {{css .Style.BackgroundColor}};
  color: {{css .Style.TextColor}};
  font-size: {{css .Style.FontSize}};
  line-height: {{css .Style.LineHeight}};
}
.resume-container {
  width: 210mm;
  min-height: 297mm;
  padding: 20mm;
  margin: 0 auto;
  background: {{css .Style.BackgroundColor}};
}
.header { margin-bottom: 4mm; break-inside: avoid; page-break-inside: avoid; }
.header h1 { font-size: 24pt; font-weight: bold; color: {{css .Style.HeaderColor}}; margin-bottom: 1mm; }
.contact-info { font-size: 10pt; color: {{css .Style.TextColor}}; }
.contact-info span + span::before { content: " | "; }
hr { border: none; border-top: 0.5mm solid {{css .Style.AccentColor}}; margin: 4mm 0; }
.section { margin-bottom: {{css .Style.Spacing}}; break-inside: avoid; page-break-inside: avoid; }
.section-title {
  font-size: 12pt;
  font-weight: bold;
  color: {{css .Style.AccentColor}};
  text-transform: uppercase;
  border-bottom: 0.25mm solid {{css .Style.BorderColor}};
  padding-bottom: 1mm;
  margin-bottom: 2mm;
}
.summary-text { color: {{css .Style.TextColor}}; }
.tag {
  display: inline-block;
  background: {{css .Style.SecondaryColor}};
  border: 0.25mm solid {{css .Style.BorderColor}};
  padding: 0.5mm 2mm;
  margin: 0 1.5mm 1.5mm 0;
  font-size: 10pt;
}
.item { margin-bottom: 2.5mm; break-inside: avoid; page-break-inside: avoid; }
.item-title { font-weight: bold; color: {{css .Style.HeaderColor}}; overflow: hidden; }
.item-date { float: right; font-weight: normal; font-style: italic; font-size: 10pt; }
.item-subtitle { font-size: 10pt; font-weight: 600; color: {{css .Style.AccentColor}}; }
.item-description { font-size: 10pt; margin-top: 0.5mm; }
.item-link, .link-item { font-size: 9pt; color: {{css .Style.AccentColor}}; word-break: break-all; }
a { color: {{css .Style.AccentColor}}; }
</style>
</head>
<body>
<div class="resume-container">
{{- range .Blocks}}
{{- if eq .Kind "header"}}
<div class="header">
<h1>{{.Title}}</h1>
{{- if .Contact}}
<div class="contact-info">{{range .Contact}}<span>{{.}}</span>{{end}}</div>
{{- end}}
</div>
<hr>
{{- else}}
<div class="section section-{{.Kind}}">
{{- if .Title}}
<h2 class="section-title">{{.Title}}</h2>
{{- end}}
{{- if .Text}}
<p class="summary-text">{{.Text}}</p>
{{- end}}
{{- if .Tags}}
<div class="tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
{{- end}}
{{- range .Entries}}
<div class="item">
<div class="item-title">{{.Title}}{{if .Meta}}<span class="item-date">{{.Meta}}</span>{{end}}</div>
{{- if .Subtitle}}
<div class="item-subtitle">{{.Subtitle}}</div>
{{- end}}
{{- range .Details}}
<div class="item-description">{{.}}</div>
{{- end}}
{{- if .Contact}}
<div class="contact-info">{{range .Contact}}<span>{{.}}</span>{{end}}</div>
{{- end}}
{{- with .Link}}
<div class="item-link">{{template "link" .}}</div>
{{- end}}
</div>
{{- end}}
{{- range .Links}}
<div class="link-item">{{.Label}}: {{template "link" .}}</div>
{{- end}}
</div>
{{- end}}
{{- end}}
</div>
</body>
</html>
{{define "link"}}{{if .Safe}}<a href="{{.URL}}">{{.URL}}</a>{{else}}<span class="link-text">{{.URL}}</span>{{end}}{{end}}`
