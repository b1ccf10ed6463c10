package server

import (
	"net/http"
	"net/url"
	"strings"

	"bloodnet/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &types.HomePageData{
		BasePageData: s.basePageData(r, ""),
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := &types.NotFoundPageData{
		BasePageData: s.basePageData(r, "Page Not Found"),
	}

	w.WriteHeader(http.StatusNotFound)
	if err := s.renderTemplate(w, r, "page.not-found", data); err != nil {
		s.logger.WithError(err).Error("failed to render not found page")
		s.internalServerError(w)
		return
	}
}

// basePageData seeds a page with its title and any flash message carried in
// the query string after a redirect.
func (s *Service) basePageData(r *http.Request, title string) types.BasePageData {
	return types.BasePageData{
		Title:  title,
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
	}
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path string, notice string) {
	http.Redirect(w, r, withFlash(path, "notice", notice), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path string, msg string) {
	http.Redirect(w, r, withFlash(path, "error", msg), http.StatusSeeOther)
}

// withFlash appends a flash param to a path that may already carry a query
// string.
func withFlash(path, key, value string) string {
	v := url.Values{}
	v.Set(key, value)

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + v.Encode()
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
