// Package views holds the server-rendered pages of the course review site.
package views

import (
	"embed"
	"html/template"
	"slices"
	"strconv"
)

//go:embed templates/*.tmpl
var files embed.FS

// Funcs are the helpers available to every page template.
var Funcs = template.FuncMap{
	"has":    slices.Contains[[]string, string],
	"rating": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"deref": func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	},
	"seq": func(from, to int) []int {
		out := make([]int, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out
	},
}

// Templates parses every embedded page.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs).ParseFS(files, "templates/*.tmpl"))
}
