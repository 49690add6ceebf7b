package render

import "html/template"

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"align": alignClass,
	"even":  func(i int) bool { return i%2 == 0 },
}).Parse(`
{{- define "formatted" -}}
<div class="result-content">
{{- range . }}{{ template "segment" . }}{{ end -}}
</div>
{{- end -}}

{{- define "segment" -}}
{{- if .Table -}}
<div class="table-wrap">
{{- with .Table -}}
{{- if .Title }}<p class="table-title" dir="auto">{{ .Title }}</p>{{ end -}}
<table class="result-table"><tbody>
{{- range $i, $row := .Rows -}}
<tr class="{{ if even $i }}row-even{{ else }}row-odd{{ end }}">
{{- range $row.Cells -}}
{{- if .IsHeader -}}
<th class="cell cell-header" dir="auto"{{ if gt .ColSpan 1 }} colspan="{{ .ColSpan }}"{{ end }}{{ if gt .RowSpan 1 }} rowspan="{{ .RowSpan }}"{{ end }}>{{ .Content }}</th>
{{- else -}}
<td class="cell" dir="auto"{{ if gt .ColSpan 1 }} colspan="{{ .ColSpan }}"{{ end }}{{ if gt .RowSpan 1 }} rowspan="{{ .RowSpan }}"{{ end }}>{{ .Content }}</td>
{{- end -}}
{{- end -}}
</tr>
{{- end -}}
</tbody></table>
{{- end -}}
</div>
{{- else if .Items -}}
<ul class="block-list">
{{- range .Items -}}
<li class="block-list-item {{ align .Direction }}" dir="{{ .Direction }}">{{ .Content }}</li>
{{- end -}}
</ul>
{{- else if eq .Kind "heading" -}}
<h3 class="block-heading {{ align .Text.Direction }}" dir="{{ .Text.Direction }}">{{ .Text.Content }}</h3>
{{- else -}}
<p class="block-paragraph {{ align .Text.Direction }}" dir="{{ .Text.Direction }}">{{ .Text.Content }}</p>
{{- end -}}
{{- end -}}

{{- define "raw" -}}
<pre class="raw-text" dir="{{ .Direction }}">{{ .Text }}</pre>
{{- end -}}

{{- define "card" -}}
<article class="result-card" id="record-{{ .Record.ID }}" data-status="{{ .Record.Status }}">
<header class="result-header">
{{- if .PreviewURL }}<img class="result-preview" src="{{ .PreviewURL }}" alt="Preview">{{ end -}}
<h4 class="result-name">{{ .Record.FileName }}</h4>
<span class="result-status">{{ .StatusLabel }}</span>
</header>
<div class="result-body">
{{- if eq .Record.Status "processing" -}}
<div class="panel-processing"><p>Analyzing document structure &amp; tables...</p></div>
{{- else if eq .Record.Status "error" -}}
<div class="panel-error" role="alert"><p class="panel-error-title">OCR Processing Failed</p><p class="panel-error-message">{{ .Record.Error }}</p></div>
{{- else if eq .Record.Status "completed" -}}
{{- if .Raw }}{{ template "raw" .RawView }}{{ else }}{{ template "formatted" .Segments }}{{ end -}}
{{- else -}}
<div class="panel-pending"><p>Waiting to start...</p></div>
{{- end -}}
</div>
</article>
{{- end -}}

{{- define "export" -}}
<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{ .Title }}</title></head>
<body style="font-family: sans-serif; padding: 40px;">{{ template "formatted" .Segments }}</body></html>
{{- end -}}
`))
