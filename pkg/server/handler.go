package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/shwimple/shwimple"
	"github.com/shwimple/shwimple/el"
	"github.com/shwimple/shwimple/internal/dev"
	"github.com/shwimple/shwimple/pkg/builder"
	"github.com/shwimple/shwimple/pkg/dom"
	"github.com/shwimple/shwimple/pkg/middleware"
	"github.com/shwimple/shwimple/pkg/pagefile"
)

// ErrPageNotFound is returned when no page file matches a name.
var ErrPageNotFound = stderrors.New("page not found")

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "page")
	if name == "" {
		name = IndexPage
	}

	ctx, span := middleware.StartSpan(r.Context(), "render page", attribute.String("page", name))
	defer span.End()

	html, err := s.RenderPage(name)
	s.metrics.RecordRender(name, err)
	if err != nil {
		middleware.RecordError(ctx, err)
		if stderrors.Is(err, ErrPageNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("render failed", "page", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// RenderPage loads and renders the named page file.
func (s *Server) RenderPage(name string) (string, error) {
	path, ok := pagefile.Lookup(s.opts.PagesDir, name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}

	file, err := pagefile.Load(path)
	if err != nil {
		return "", err
	}
	page, err := file.Page(s.opts.Layout, builder.WithLogger(s.logger))
	if err != nil {
		return "", err
	}
	if s.hub != nil {
		page.Builder().AddRenderFunction(reloadSection())
	}

	return s.renderer.RenderToString(page.Render())
}

// reloadSection mounts the live reload client in the document head.
func reloadSection() *shwimple.Section {
	return shwimple.Head(shwimple.Single(func(*shwimple.Context) *dom.Node {
		return el.Script(dev.ClientScript(dev.ReloadPath))
	}))
}
