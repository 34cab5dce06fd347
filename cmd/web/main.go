package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	"milagres.org/milagres-web/internal/cms"
	"milagres.org/milagres-web/internal/config"
	"milagres.org/milagres-web/internal/i18n"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/observability"
)

// app wires configuration, services, and templates for the handlers.
// Everything is injected here; there is no ambient global state.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	bundle   *i18n.Bundle
	pages    *cms.Store
	client   *catalog.Client
	queries  *catalog.QueryService
	overview *catalog.Overview
	importer *catalog.Reconciler
	filters  *catalog.FilterStore

	tmpl *template.Template // parsed once in prod; nil in dev (reparse per request)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := i18n.Load(cfg.Locale.Dir, cfg.Locale.Default, cfg.Locale.Supported)
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	client := catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	a := &app{
		cfg:      cfg,
		log:      logger,
		bundle:   bundle,
		pages:    cms.NewStore(cfg.Assets.ContentDir, cfg.Locale.Default),
		client:   client,
		queries:  catalog.NewQueryService(client),
		overview: catalog.NewOverview(client, 0),
		importer: catalog.NewReconciler(client),
		filters:  catalog.NewFilterStore(catalog.Filters{}),
	}
	a.filters.Subscribe(func(f catalog.Filters) {
		logger.Debug("filters changed", zap.String("query", f.PageQuery().Encode()))
	})

	if !cfg.Dev {
		tc, err := a.parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		a.tmpl = tc
	}

	sessions := mw.NewSessionManager(cfg.Session.SigningKey, cfg.Session.Secure)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.routes(sessions),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.Bool("dev", cfg.Dev),
			zap.Bool("offline", client.Offline()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("web stopped")
}

func (a *app) routes(sessions *mw.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(sessions.Middleware)
	r.Use(mw.Locale(a.bundle))
	r.Use(sessions.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.RequestLogger(a.log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(a.cfg.Assets.PublicDir, "assets")))

	r.Get("/", a.HomeHandler)
	r.Get("/miracles/grid", a.MiracleGridFrag)
	r.Get("/miracles/{id}", a.MiracleDetailHandler)
	r.Get("/about", a.AboutHandler)
	r.Get("/legal/{slug}", a.LegalHandler)
	r.Get("/contact", a.ContactHandler)
	r.Post("/contact", a.ContactSubmitHandler)

	r.Get("/admin/login", a.AdminLoginHandler)
	r.Post("/admin/login", a.AdminLoginSubmit)
	r.Post("/admin/logout", a.AdminLogout)
	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAdmin("/admin/login"))
		pr.Get("/admin", a.AdminDashboard)
		pr.Get("/admin/miracles/new", a.AdminMiracleNew)
		pr.Post("/admin/miracles/new", a.AdminMiracleCreate)
		pr.Get("/admin/miracles/{id}/edit", a.AdminMiracleEdit)
		pr.Post("/admin/miracles/{id}/edit", a.AdminMiracleUpdate)
		pr.Post("/admin/miracles/{id}/delete", a.AdminDeleteMiracle)
		pr.Post("/admin/miracles/by-century/delete", a.AdminDeleteByCentury)
		pr.Get("/admin/import", a.AdminImportForm)
		pr.Post("/admin/import", a.AdminImportSubmit)
		pr.Get("/admin/import/template", a.AdminImportTemplate)
	})

	r.NotFound(a.NotFoundHandler)
	return r
}

func (a *app) parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"t":   a.bundle.T,
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(a.cfg.Assets.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", a.cfg.Assets.TemplatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// renderPage executes the named page template. In dev mode templates are
// reparsed on each request.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	a.renderStatus(w, r, http.StatusOK, name, data)
}

func (a *app) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t := a.tmpl
	if a.cfg.Dev {
		tc, err := a.parseTemplates()
		if err != nil {
			a.log.Error("template parse", zap.Error(err))
			http.Error(w, "template parse error", http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if t == nil {
		http.Error(w, "templates not initialized", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		a.log.Error("template exec", zap.String("template", name), zap.Error(err))
	}
}
