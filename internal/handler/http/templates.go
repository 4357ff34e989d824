package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/utils"
)

const templateBackend = "html/template"

// Templates at the root of a template directory are layouts shared by every
// page. Templates in subdirectories are pages, named by their relative
// path, e.g. "news_site/home.html".
//
//go:embed templates
var appTemplates embed.FS

// contextProcessor adds values to the context of every rendered template.
type contextProcessor func(r *http.Request) map[string]any

var contextProcessorRegistry = map[string]func(h *Handler) contextProcessor{
	config.ContextProcessorDebug: func(h *Handler) contextProcessor {
		return func(*http.Request) map[string]any {
			return map[string]any{"debug": h.settings.Debug}
		}
	},
	config.ContextProcessorRequest: func(*Handler) contextProcessor {
		return func(r *http.Request) map[string]any {
			return map[string]any{"request": r}
		}
	},
}

// loadTemplates parses the templates of every engine. Directories listed in
// Dirs override application templates with the same name; missing
// directories are skipped.
func (h *Handler) loadTemplates(engines []config.TemplateEngine) (map[string]*template.Template, []contextProcessor, error) {
	if len(engines) == 0 {
		return nil, nil, ErrNoTemplateEngine
	}

	layouts := template.New("").Funcs(h.templateFuncs())
	sources := make(map[string]string)
	var processors []contextProcessor
	seen := make(map[string]struct{})

	for _, engine := range engines {
		if engine.Backend != templateBackend {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedTemplateBackend, engine.Backend)
		}

		var dirs []fs.FS
		if engine.AppDirs {
			sub, err := fs.Sub(appTemplates, "templates")
			if err != nil {
				return nil, nil, err
			}
			dirs = append(dirs, sub)
		}
		for _, dir := range engine.Dirs {
			dirs = append(dirs, os.DirFS(dir))
		}

		for _, dir := range dirs {
			if err := collectTemplates(dir, layouts, sources); err != nil {
				return nil, nil, err
			}
		}

		for _, name := range engine.ContextProcessors {
			factory, ok := contextProcessorRegistry[name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnknownContextProcessor, name)
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			processors = append(processors, factory(h))
		}
	}

	pages := make(map[string]*template.Template, len(sources))
	for name, text := range sources {
		page, err := layouts.Clone()
		if err != nil {
			return nil, nil, err
		}
		if _, err = page.New(name).Parse(text); err != nil {
			return nil, nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		pages[name] = page
	}

	return pages, processors, nil
}

func collectTemplates(dir fs.FS, layouts *template.Template, pages map[string]string) error {
	return fs.WalkDir(dir, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		data, err := fs.ReadFile(dir, p)
		if err != nil {
			return err
		}

		if !strings.Contains(p, "/") {
			if _, err = layouts.New(p).Parse(string(data)); err != nil {
				return fmt.Errorf("error parsing template %s: %w", p, err)
			}
			return nil
		}

		pages[p] = string(data)
		return nil
	})
}

func (h *Handler) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url": func(name string) (string, error) {
			return h.routes.Reverse(name)
		},
		"static": func(name string) string {
			return h.settings.Static.URL + strings.TrimPrefix(name, "/")
		},
	}
}

// render executes the page template into a buffer and writes it with
// status 200. Rendering failures answer 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	log := logger.FromRequest(r)

	page, ok := h.pages[name]
	if !ok {
		log.Error().Err(ErrTemplateDoesNotExist).Str("template", name).Send()
		writeError(w, ErrTemplateDoesNotExist)
		return
	}

	ctx := map[string]any{"language_code": h.settings.I18N.LanguageCode}
	for _, processor := range h.processors {
		maps.Copy(ctx, processor(r))
	}
	maps.Copy(ctx, data)

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, name, ctx); err != nil {
		log.Error().Err(err).Str("template", name).Msg("error rendering template")
		utils.WriteError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
