package view

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// md renders article bodies. Raw HTML in the source is dropped.
var md = goldmark.New()

// Templates parses every page template with the site helpers installed.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"markdown": Markdown,
	}).ParseFS(templateFS, "templates/*.html")
}

// Static serves the stylesheet and chatbot script.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Markdown converts Markdown source to sanitized HTML. On a conversion error
// the source is returned escaped.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
