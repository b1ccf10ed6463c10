package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) adminEmailFromContext(r *http.Request) string {
	email, _ := r.Context().Value(contextKeyAdminEmail).(string)
	return email
}

func (s *Service) handleGetAdminLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := s.adminSessionFromRequest(r); err == nil {
		s.logger.Info("admin is already logged in, redirecting to panel")
		http.Redirect(w, r, "/admin-panel", http.StatusSeeOther)
		return
	}

	data := &types.AdminLoginPageData{
		BasePageData: s.basePageData(r, "Admin Login"),
	}

	if err := s.renderTemplate(w, r, "page.admin-login", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin login page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	data := &types.AdminLoginPageData{
		BasePageData: s.basePageData(r, "Admin Login"),
		Email:        email,
	}

	if !required(email) || !required(password) {
		data.Error = "Email and password are required."
		if err := s.renderTemplate(w, r, "page.admin-login", data); err != nil {
			s.logger.WithError(err).Error("failed to render admin login page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	if err := s.api.Login(ctx, email, password); err != nil {
		s.logger.WithError(err).Warn("admin login rejected")

		switch {
		case bloodapi.IsNotFound(err):
			data.Error = "No user found with that email."
		case bloodapi.IsForbidden(err):
			data.Error = "Incorrect password or not an admin."
		default:
			data.Error = "Server error. Please try again later."
		}

		if err := s.renderTemplate(w, r, "page.admin-login", data); err != nil {
			s.logger.WithError(err).Error("failed to render admin login page with service errors")
			s.internalServerError(w)
		}
		return
	}

	if err := s.issueAdminSession(w, email); err != nil {
		s.logger.WithError(err).Error("failed to issue admin session")
		s.internalServerError(w)
		return
	}

	// Honor a pending unauthed redirect, as set by RequireAdmin
	if redirectCookie, err := r.Cookie(redirectCookieName); err == nil {
		path := redirectCookie.Value
		s.clearRedirectCookie(w)
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin-panel", http.StatusSeeOther)
}

func (s *Service) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAdminSession(w)
	http.Redirect(w, r, "/admin-login", http.StatusSeeOther)
}

// handleAdminPanel renders the tabbed CRUD tables. The edit query param keys
// the single row rendered as inputs; the donors query param opens the
// accepted-donors modal for a request. The summary strip is fetched
// independently of the table and is not transactionally consistent with it.
func (s *Service) handleAdminPanel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tab := r.URL.Query().Get("tab")
	if tab != "donors" {
		tab = "requests"
	}

	data := &types.AdminPanelPageData{
		BasePageData: s.basePageData(r, "Admin Panel"),
		Tab:          tab,
		BloodGroups:  types.BloodGroups,
	}

	if editID, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); err == nil {
		data.EditID = editID
	}

	if tab == "donors" {
		donors, err := s.api.Donors(ctx, bloodapi.DonorFilter{})
		if err != nil {
			s.logger.WithError(err).Error("failed to load donors for admin panel")
			data.Error = "Failed to load data."
		}
		data.Donors = donors
	} else {
		list, err := s.api.Requests(ctx)
		if err != nil {
			s.logger.WithError(err).Error("failed to load requests for admin panel")
			data.Error = "Failed to load data."
		} else {
			data.Requests = list.Requests
		}

		if modalID, err := strconv.ParseInt(r.URL.Query().Get("donors"), 10, 64); err == nil {
			for _, request := range data.Requests {
				if request.ID == modalID {
					data.ModalRequest = request
					break
				}
			}
		}
	}

	summary, err := s.api.Summary(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load summary for admin panel")
	}
	data.Summary = summary

	if err := s.renderTemplate(w, r, "page.admin-panel", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin panel")
		s.internalServerError(w)
		return
	}
}

// handleAdminSaveDonor posts the full edited row back to the backing service
// at its identity-scoped endpoint.
func (s *Service) handleAdminSaveDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin-panel?tab=donors", "invalid form payload")
		return
	}

	var f types.DonorForm
	if err := decoder.Decode(&f, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/admin-panel?tab=donors", "invalid form payload")
		return
	}

	donor := donorFromForm(f)
	donor.ID = id

	if _, err := s.api.UpdateDonor(ctx, id, s.adminEmailFromContext(r), donor); err != nil {
		s.logger.WithError(err).Error("failed to update donor")
		s.redirectWithError(w, r, "/admin-panel?tab=donors", "Update failed")
		return
	}

	s.redirectWithNotice(w, r, "/admin-panel?tab=donors", "Donor updated successfully!")
}

func (s *Service) handleAdminDeleteDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	if err := s.api.DeleteDonor(ctx, id); err != nil {
		s.logger.WithError(err).Error("failed to delete donor")
		s.redirectWithError(w, r, "/admin-panel?tab=donors", "Delete failed")
		return
	}

	s.redirectWithNotice(w, r, "/admin-panel?tab=donors", "Deleted successfully")
}

// handleAdminSaveRequest merges the edited fields over the current record so
// the PUT carries the full row, accepted donors included.
func (s *Service) handleAdminSaveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin-panel?tab=requests", "invalid form payload")
		return
	}

	var f types.AdminRequestForm
	if err := decoder.Decode(&f, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/admin-panel?tab=requests", "invalid form payload")
		return
	}

	current, err := s.api.Request(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch request before update")
		s.redirectWithError(w, r, "/admin-panel?tab=requests", "Update failed")
		return
	}

	current.PatientName = strings.TrimSpace(f.PatientName)
	current.BloodGroup = f.BloodGroup
	current.Hospital = strings.TrimSpace(f.Hospital)
	current.City = strings.TrimSpace(f.City)
	current.ContactPhone = strings.TrimSpace(f.ContactPhone)
	current.ContactEmail = strings.TrimSpace(f.ContactEmail)
	current.Urgent = f.Urgent
	current.NeededBy = f.NeededBy
	current.Status = strings.TrimSpace(f.Status)

	if _, err := s.api.UpdateRequest(ctx, id, current); err != nil {
		s.logger.WithError(err).Error("failed to update request")
		s.redirectWithError(w, r, "/admin-panel?tab=requests", "Update failed")
		return
	}

	s.redirectWithNotice(w, r, "/admin-panel?tab=requests", "Request updated successfully!")
}

func (s *Service) handleAdminDeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	if err := s.api.DeleteRequest(ctx, id); err != nil {
		s.logger.WithError(err).Error("failed to delete request")
		s.redirectWithError(w, r, "/admin-panel?tab=requests", "Delete failed")
		return
	}

	s.redirectWithNotice(w, r, "/admin-panel?tab=requests", "Deleted successfully")
}

func (s *Service) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &types.DashboardPageData{
		BasePageData: s.basePageData(r, "Admin Dashboard"),
	}

	summary, err := s.api.Summary(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load dashboard summary")
		data.Error = "Failed to load dashboard data."
		summary = &types.Summary{}
	}

	data.Summary = summary
	data.Bars = summaryBars(summary)
	data.Slices = urgencySlices(summary)

	if err := s.renderTemplate(w, r, "page.admin-dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin dashboard")
		s.internalServerError(w)
		return
	}
}

func summaryBars(summary *types.Summary) []types.BarDatum {
	bars := []types.BarDatum{
		{Label: "Total Donors", Value: summary.TotalDonors},
		{Label: "Total Requests", Value: summary.TotalRequests},
		{Label: "Urgent Requests", Value: summary.UrgentOpen},
		{Label: "Accepted Donations", Value: summary.AcceptedTotal},
	}

	max := 0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}

	for i := range bars {
		if max > 0 {
			bars[i].Percent = bars[i].Value * 100 / max
		}
	}

	return bars
}

// urgencySlices turns the urgent/normal split into SVG pie wedges on a
// 200x200 viewbox.
func urgencySlices(summary *types.Summary) []types.PieSlice {
	urgent := summary.UrgentOpen
	normal := summary.TotalRequests - summary.UrgentOpen
	if normal < 0 {
		normal = 0
	}

	total := urgent + normal
	if total == 0 {
		return nil
	}

	slices := []types.PieSlice{
		{Label: "Urgent", Value: urgent, Color: "#ef4444"},
		{Label: "Normal", Value: normal, Color: "#22c55e"},
	}

	const cx, cy, radius = 100.0, 100.0, 90.0

	angle := -math.Pi / 2
	for i := range slices {
		share := float64(slices[i].Value) / float64(total)
		slices[i].Percent = int(math.Round(share * 100))

		if slices[i].Value == 0 {
			continue
		}

		if slices[i].Value == total {
			slices[i].Path = fmt.Sprintf(
				"M %.2f %.2f m -%.2f 0 a %.2f %.2f 0 1 0 %.2f 0 a %.2f %.2f 0 1 0 -%.2f 0",
				cx, cy, radius, radius, radius, radius*2, radius, radius, radius*2)
			continue
		}

		start := angle
		end := angle + share*2*math.Pi
		angle = end

		largeArc := 0
		if share > 0.5 {
			largeArc = 1
		}

		slices[i].Path = fmt.Sprintf(
			"M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
			cx, cy,
			cx+radius*math.Cos(start), cy+radius*math.Sin(start),
			radius, radius, largeArc,
			cx+radius*math.Cos(end), cy+radius*math.Sin(end))
	}

	return slices
}
