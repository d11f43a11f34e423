// Package view holds the HTML templates for the sales manager page.
package view

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

// PageTemplate is the name gin renders for the main page.
const PageTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"money": Money,
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}

// Money renders an amount with two decimals, rounding half away from zero.
func Money(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
