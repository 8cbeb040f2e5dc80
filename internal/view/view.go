// Package view holds the HTML templates rendered by the public and admin handlers.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded template. Names are the file base names.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// MustTemplates is Templates for use at router setup.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
