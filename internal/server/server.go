package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/dustin/go-humanize"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	api       *bloodapi.Client
	templates *template.Template

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(config *types.Config, logger *logrus.Logger, api *bloodapi.Client) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		api:    api,
		cookie: securecookie.New(hashKey, blockKey),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.NotFound = http.HandlerFunc(s.handleNotFound)

	r.HandleFunc("/", s.handleHome, http.MethodGet)

	r.HandleFunc("/donors", s.handleDonors, http.MethodGet)
	r.HandleFunc("/donors/:id/notify", s.handleGetNotifyDonor, http.MethodGet)
	r.HandleFunc("/donors/:id/notify", s.handlePostNotifyDonor, http.MethodPost)
	r.HandleFunc("/register-donor", s.handleGetRegisterDonor, http.MethodGet)
	r.HandleFunc("/register-donor", s.handlePostRegisterDonor, http.MethodPost)

	r.HandleFunc("/requests", s.handleRequests, http.MethodGet)
	r.HandleFunc("/request/:id", s.handleRequestDetail, http.MethodGet)
	r.HandleFunc("/new-request", s.handleGetNewRequest, http.MethodGet)
	r.HandleFunc("/new-request", s.handlePostNewRequest, http.MethodPost)

	// Stateless acceptance-confirmation page reached from donor emails
	r.HandleFunc("/accept", s.handleAccept, http.MethodGet)

	r.HandleFunc("/admin-login", s.handleGetAdminLogin, http.MethodGet)
	r.HandleFunc("/admin-login", s.handlePostAdminLogin, http.MethodPost)
	r.HandleFunc("/admin-logout", s.handleAdminLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin-panel", s.handleAdminPanel, http.MethodGet)
		r.HandleFunc("/admin-panel/donors/:id", s.handleAdminSaveDonor, http.MethodPost)
		r.HandleFunc("/admin-panel/donors/:id/delete", s.handleAdminDeleteDonor, http.MethodPost)
		r.HandleFunc("/admin-panel/requests/:id", s.handleAdminSaveRequest, http.MethodPost)
		r.HandleFunc("/admin-panel/requests/:id/delete", s.handleAdminDeleteRequest, http.MethodPost)

		r.HandleFunc("/admin-dashboard", s.handleAdminDashboard, http.MethodGet)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"derefInt": func(i *int) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%d", *i)
		},
		"humandate": func(s string) string {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return s
			}
			return humanize.Time(t)
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
