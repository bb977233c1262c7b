package internal

import (
	"embed"
	"html/template"
	"io"
)

//go:embed chart.go.html
var templates embed.FS

var funcs = template.FuncMap{
	"px":   formatPixel,
	"num":  formatNumber,
	"half": func(v float64) float64 { return v / 2 },
	"mid":  func(a, b float64) float64 { return (a + b) / 2 },
	"neg":  func(v float64) float64 { return -v },
}

var pageTemplate = template.Must(template.New("chart").Funcs(funcs).ParseFS(templates, "chart.go.html"))

// WritePage renders the full interactive page: selector, chart and tooltip.
func WritePage(w io.Writer, scene Scene) error {
	return pageTemplate.ExecuteTemplate(w, "page", scene)
}

// WriteSVG renders only the chart. The page swaps it in after each gesture.
func WriteSVG(w io.Writer, scene Scene) error {
	return pageTemplate.ExecuteTemplate(w, "svg", scene)
}
