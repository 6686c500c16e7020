// Package view renders step entry forms as HTML fragments.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// StepForm is the data behind one rendered step form
type StepForm struct {
	Action      string
	TemplateID  string
	StepID      string
	StepName    string
	Description template.HTML
	Controls    []formschema.Control
	Errors      []string
}

// Renderer renders step forms and template descriptions
type Renderer struct {
	templates *template.Template
	markdown  goldmark.Markdown
	policy    *bluemonday.Policy
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				htmlrenderer.WithHardWraps(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}, nil
}

// Description renders a template description written in Markdown into safe HTML.
// Conversion failures fall back to the escaped source text.
func (r *Renderer) Description(markdown string) template.HTML {
	text := strings.TrimSpace(markdown)
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(r.policy.SanitizeBytes(out.Bytes()))
}

// RenderStepForm writes the form fragment for form to w
func (r *Renderer) RenderStepForm(w io.Writer, form StepForm) error {
	return r.templates.ExecuteTemplate(w, "step_form", form)
}

// MustNew is like New but panics when the embedded templates do not parse
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}
