// Package webform renders the catalog as an HTML form and runs the form
// adapter on submission.
package webform

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/logger"
	"github.com/liamcoop/churn/internal/presentation"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves GET / and POST /analyze
type Handler struct {
	catalog *catalog.Catalog
	form    *adapter.Form
	page    *template.Template

	overview  template.HTML
	technical template.HTML
	guide     template.HTML
}

// New parses the page template and pre-renders the markdown copy
func New(cat *catalog.Catalog, form *adapter.Form) (*Handler, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}

	h := &Handler{catalog: cat, form: form, page: page}
	for _, md := range []struct {
		src string
		dst *template.HTML
	}{
		{presentation.Overview, &h.overview},
		{presentation.Technical, &h.technical},
		{presentation.InterpretationGuide, &h.guide},
	} {
		html, err := markdown(md.src)
		if err != nil {
			return nil, err
		}
		*md.dst = html
	}
	return h, nil
}

func markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// ServeForm renders the form filled with catalog defaults
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.view(h.catalog.Defaults(), nil))
}

// Analyze reads the submitted fields positionally and shows the adapter's text
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, h.view(h.catalog.Defaults(), &adapter.Analysis{
			Text: fmt.Sprintf("%s Input Error: %s", adapter.WarningMarker, err),
			Err:  err,
		}))
		return
	}

	values := Values(h.catalog, r)
	a := h.form.Run(r.Context(), values...)
	h.render(w, http.StatusOK, h.view(values, &a))
}

// Values collects one value per catalog field. Unchecked checkboxes are false;
// other missing fields stay nil so validation reports them.
func Values(cat *catalog.Catalog, r *http.Request) []any {
	fields := cat.Fields()
	values := make([]any, len(fields))
	for i, f := range fields {
		if f.Widget == catalog.WidgetCheckbox {
			values[i] = checked(r.PostForm.Get(f.Name))
			continue
		}
		if _, ok := r.PostForm[f.Name]; ok {
			values[i] = r.PostForm.Get(f.Name)
		}
	}
	return values
}

func checked(v string) bool {
	b, err := strconv.ParseBool(v)
	return v == "on" || (err == nil && b)
}

func (h *Handler) render(w http.ResponseWriter, status int, v pageView) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, v); err != nil {
		logger.Error("Failed to render form page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
