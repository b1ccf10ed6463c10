package server

import (
	"net/http"
	"strconv"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/alexedwards/flow"
)

// handleDonors renders the public donor directory. The city and blood-group
// filters are forwarded to the backing service as query parameters; one page
// render is exactly one upstream call.
func (s *Service) handleDonors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := bloodapi.DonorFilter{
		City:       r.URL.Query().Get("city"),
		BloodGroup: r.URL.Query().Get("bloodGroup"),
	}

	data := &types.DonorsPageData{
		BasePageData:     s.basePageData(r, "Available Donors"),
		FilterCity:       filter.City,
		FilterBloodGroup: filter.BloodGroup,
		BloodGroups:      types.BloodGroups,
	}

	donors, err := s.api.Donors(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donors")
		data.Error = "Unable to load donors right now. Please try again later."
	}
	data.Donors = donors

	if err := s.renderTemplate(w, r, "page.donors", data); err != nil {
		s.logger.WithError(err).Error("failed to render donors page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetRegisterDonor(w http.ResponseWriter, r *http.Request) {
	data := &types.RegisterDonorPageData{
		BasePageData: s.basePageData(r, "Register as a Blood Donor"),
		BloodGroups:  types.BloodGroups,
	}

	if err := s.renderTemplate(w, r, "page.register-donor", data); err != nil {
		s.logger.WithError(err).Error("failed to render donor registration page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/register-donor", "invalid form payload")
		return
	}

	var f types.DonorForm
	if err := decoder.Decode(&f, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/register-donor", "invalid form payload")
		return
	}

	data := &types.RegisterDonorPageData{
		BasePageData: s.basePageData(r, "Register as a Blood Donor"),
		Form:         f,
		BloodGroups:  types.BloodGroups,
	}

	data.FieldErrors = validateDonorForm(f)
	if len(data.FieldErrors) > 0 {
		s.logger.WithField("field_errors", data.FieldErrors).Info("validation errors during donor registration")

		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.register-donor", data); err != nil {
			s.logger.WithError(err).Error("failed to render donor registration page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	created, err := s.api.CreateDonor(ctx, donorFromForm(f))
	if err != nil {
		s.logger.WithError(err).Error("failed to register donor")

		if bloodapi.IsConflict(err) {
			data.FieldErrors = map[string]string{"email": "Email already exists! Try another."}
			data.Error = "Please fix the highlighted fields."
		} else {
			data.Error = "Failed to register donor. Please try again later."
		}

		if err := s.renderTemplate(w, r, "page.register-donor", data); err != nil {
			s.logger.WithError(err).Error("failed to render donor registration page with service errors")
			s.internalServerError(w)
		}
		return
	}

	s.redirectWithNotice(w, r, "/register-donor", "Donor "+created.Name+" registered successfully!")
}

func (s *Service) handleGetNotifyDonor(w http.ResponseWriter, r *http.Request) {
	donorID, err := strconv.ParseInt(flow.Param(r.Context(), "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	data := &types.NotifyDonorPageData{
		BasePageData: s.basePageData(r, "Send Email to Donor"),
		DonorID:      donorID,
		DonorName:    r.URL.Query().Get("name"),
	}

	if err := s.renderTemplate(w, r, "page.notify-donor", data); err != nil {
		s.logger.WithError(err).Error("failed to render notify donor page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostNotifyDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/donors", "invalid form payload")
		return
	}

	var f types.NotifyForm
	if err := decoder.Decode(&f, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/donors", "invalid form payload")
		return
	}

	data := &types.NotifyDonorPageData{
		BasePageData: s.basePageData(r, "Send Email to Donor"),
		DonorID:      donorID,
		DonorName:    r.URL.Query().Get("name"),
		Form:         f,
		FieldErrors:  map[string]string{},
	}

	if !required(f.Subject) {
		data.FieldErrors["subject"] = "Subject is required."
	}
	if !required(f.Message) {
		data.FieldErrors["message"] = "Message is required."
	}

	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.notify-donor", data); err != nil {
			s.logger.WithError(err).Error("failed to render notify donor page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	confirmation, err := s.api.NotifyDonor(ctx, donorID, f.Subject, f.Message)
	if err != nil {
		s.logger.WithError(err).Error("failed to send donor email")
		s.redirectWithError(w, r, "/donors", "Failed to send email.")
		return
	}

	if confirmation == "" {
		confirmation = "Email sent successfully!"
	}

	s.redirectWithNotice(w, r, "/donors", confirmation)
}
