package server

import (
	"net/http"

	"bloodnet/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	adminEmail, _ := r.Context().Value(contextKeyAdminEmail).(string)
	if adminEmail == "" {
		if session, err := s.adminSessionFromRequest(r); err == nil {
			adminEmail = session.Email
		}
	}

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAdmin:    adminEmail != "",
			AdminEmail: adminEmail,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}
