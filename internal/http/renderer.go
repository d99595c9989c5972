package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/target/shop-admin/internal/http/templates/core"
	"github.com/target/shop-admin/internal/util"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS // Filesystem containing templates (required)
	// Format renders prices, counts and Jalali dates (optional, defaults to fa).
	Format *util.Formatter
	// AssetBaseURL resolves relative image paths returned by the shop API.
	AssetBaseURL string
	// StaticPrefix is where static files are mounted, default "/static".
	StaticPrefix string
	Logger       *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	renderer := &TemplateRenderer{logger: cfg.Logger}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
		Format:             cfg.Format,
		AssetBaseURL:       cfg.AssetBaseURL,
		StaticPrefix:       cfg.StaticPrefix,
	})
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, renderParams{Name: "layout", Data: data})
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, renderParams{Name: "content", Data: data})
}

// RenderDialog renders the modal shell wrapping a record form or a confirm prompt.
func (r *TemplateRenderer) RenderDialog(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, renderParams{Name: "dialog", Data: data})
}

// RenderStatus renders the named template with a non-200 status. The status
// is written only after the template executed cleanly.
func (r *TemplateRenderer) RenderStatus(w http.ResponseWriter, name string, status int, data any) error {
	return r.renderTemplate(w, renderParams{Name: name, Status: status, Data: data})
}

// Render executes an arbitrary named template.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, data any) error {
	return r.renderTemplate(w, renderParams{Name: name, Data: data})
}

type renderParams struct {
	Name   string
	Status int
	Data   any
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, p renderParams) error {
	templateName := p.Name
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, p.Data); err != nil {
		r.logTemplateError(templateName, err)
		return err
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if p.Status != 0 && p.Status != http.StatusOK {
		w.WriteHeader(p.Status)
	}
	if _, err := buf.WriteTo(w); err != nil {
		if r.logger != nil {
			r.logger.Error("failed to write rendered template",
				slog.String("template", templateName),
				slog.Any("error", err),
			)
		}
		return err
	}

	return nil
}

// logTemplateError logs a template execution error with context.
func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}
