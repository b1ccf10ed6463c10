package server

import (
	"net/http"
	"net/url"
	"strconv"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/alexedwards/flow"
)

// handleRequests fetches every open request once; the urgent filter is
// applied to the fetched slice, never as a second round trip.
func (s *Service) handleRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := r.URL.Query().Get("filter")

	data := &types.RequestsPageData{
		BasePageData: s.basePageData(r, "Active Blood Requests"),
		Filter:       filter,
	}

	list, err := s.api.Requests(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch requests")
		data.Error = "Unable to load requests right now. Please try again later."
	} else {
		data.Requests = list.Requests
		if list.Message != "" && data.Notice == "" {
			data.Notice = list.Message
		}
	}

	if filter == "urgent" {
		urgent := make([]*types.BloodRequest, 0, len(data.Requests))
		for _, request := range data.Requests {
			if request.Urgent {
				urgent = append(urgent, request)
			}
		}
		data.Requests = urgent
	}

	if err := s.renderTemplate(w, r, "page.requests", data); err != nil {
		s.logger.WithError(err).Error("failed to render requests page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleRequestDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(flow.Param(ctx, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	request, err := s.api.Request(ctx, id)
	if err != nil {
		if bloodapi.IsNotFound(err) {
			s.handleNotFound(w, r)
			return
		}

		s.logger.WithError(err).Error("failed to fetch request")
		s.redirectWithError(w, r, "/requests", "Unable to load that request right now.")
		return
	}

	data := &types.RequestDetailPageData{
		BasePageData: s.basePageData(r, "Request Details"),
		Request:      request,
	}

	if err := s.renderTemplate(w, r, "page.request-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render request detail page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetNewRequest(w http.ResponseWriter, r *http.Request) {
	data := &types.NewRequestPageData{
		BasePageData: s.basePageData(r, "Blood Request Form"),
		BloodGroups:  types.BloodGroups,
	}

	if err := s.renderTemplate(w, r, "page.new-request", data); err != nil {
		s.logger.WithError(err).Error("failed to render new request page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostNewRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/new-request", "invalid form payload")
		return
	}

	var f types.RequestForm
	if err := decoder.Decode(&f, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/new-request", "invalid form payload")
		return
	}

	data := &types.NewRequestPageData{
		BasePageData: s.basePageData(r, "Blood Request Form"),
		Form:         f,
		BloodGroups:  types.BloodGroups,
	}

	data.FieldErrors = validateRequestForm(f)
	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.new-request", data); err != nil {
			s.logger.WithError(err).Error("failed to render new request page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	result, err := s.api.CreateRequest(ctx, requestFromForm(f))
	if err != nil {
		s.logger.WithError(err).Error("failed to submit blood request")
		data.Error = "Failed to submit request. Please try again."
		if err := s.renderTemplate(w, r, "page.new-request", data); err != nil {
			s.logger.WithError(err).Error("failed to render new request page with service errors")
			s.internalServerError(w)
		}
		return
	}

	// Render the confirmation panel with a link to the donor directory
	// pre-filtered by the submitted city and blood group.
	link := url.Values{}
	link.Set("city", f.City)
	link.Set("bloodGroup", f.BloodGroup)

	data.Form = types.RequestForm{}
	data.Created = true
	data.DonorCount = result.DonorCount
	data.City = f.City
	data.BloodGroup = f.BloodGroup
	data.DonorsLink = "/donors?" + link.Encode()
	data.Notice = "Blood request submitted successfully!"

	if err := s.renderTemplate(w, r, "page.new-request", data); err != nil {
		s.logger.WithError(err).Error("failed to render new request confirmation")
		s.internalServerError(w)
		return
	}
}

// handleAccept lands the emailed acceptance link. Four terminal states:
// invalid when a query parameter is missing (no upstream call is made),
// otherwise exactly one accept call resolves to success or error.
func (s *Service) handleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := r.URL.Query().Get("requestId")
	donorEmail := r.URL.Query().Get("donorEmail")

	data := &types.AcceptPageData{
		BasePageData: s.basePageData(r, "Donation Confirmation"),
	}

	id, parseErr := strconv.ParseInt(requestID, 10, 64)
	if requestID == "" || donorEmail == "" || parseErr != nil {
		data.State = "invalid"
		if err := s.renderTemplate(w, r, "page.accept", data); err != nil {
			s.logger.WithError(err).Error("failed to render accept page")
			s.internalServerError(w)
		}
		return
	}

	confirmation, err := s.api.AcceptRequest(ctx, id, donorEmail)
	if err != nil {
		s.logger.WithError(err).Error("failed to confirm acceptance")
		data.State = "error"
	} else {
		data.State = "success"
		data.Message = confirmation
	}

	if err := s.renderTemplate(w, r, "page.accept", data); err != nil {
		s.logger.WithError(err).Error("failed to render accept page")
		s.internalServerError(w)
		return
	}
}
