package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bloodnet/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminBackend answers the reads the admin pages issue alongside the call
// under test.
func adminBackend(extra http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/requests/summary":
			_, _ = w.Write([]byte(`{"totalDonors":10,"totalRequests":6,"urgentOpen":2,"acceptedTotal":5}`))
		case r.Method == http.MethodGet && r.URL.Path == "/requests":
			_, _ = w.Write([]byte(`[{"id":4,"patientName":"Sarah Kim","status":"open","acceptedDonors":["a@example.com","b@example.com"]}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/donors":
			_, _ = w.Write([]byte(`[{"id":7,"name":"Liam Johnson","email":"liam@example.com","contactNumber":"5550100002","bloodGroup":"A-","city":"Chicago","age":41}]`))
		default:
			if extra != nil {
				extra(w, r)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestAdminLoginSuccessIssuesSession(t *testing.T) {
	s := newTestService(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/login", r.URL.Path)
		_, _ = w.Write([]byte("Welcome Admin"))
	}))

	rec := s.testPostForm(t, "/admin-login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"hunter2"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-panel", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == s.config.CookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the admin session cookie")
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)

	// The issued cookie must open the admin panel.
	rec = s.testGet(t, "/admin-panel", &http.Cookie{Name: session.Name, Value: session.Value})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarah Kim")
}

func TestAdminLoginRejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{"unknown email", http.StatusNotFound, "No user found with that email."},
		{"bad password", http.StatusForbidden, "Incorrect password or not an admin."},
		{"upstream down", http.StatusInternalServerError, "Server error. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rec := s.testPostForm(t, "/admin-login", url.Values{
				"email":    {"admin@example.com"},
				"password": {"wrong"},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			for _, c := range rec.Result().Cookies() {
				assert.NotEqual(t, s.config.CookieName, c.Name, "rejected login must not set a session")
			}
		})
	}
}

func TestAdminLoginRequiresCredentials(t *testing.T) {
	var calls int32
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	rec := s.testPostForm(t, "/admin-login", url.Values{"email": {"admin@example.com"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Contains(t, rec.Body.String(), "Email and password are required.")
}

func TestAdminPanelRequiresSession(t *testing.T) {
	var calls int32
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	rec := s.testGet(t, "/admin-panel")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-login", rec.Header().Get("Location"))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestAdminLoginHonorsRedirectCookie(t *testing.T) {
	s := newTestService(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Welcome Admin"))
	}))

	// An unauthenticated dashboard visit stores the destination.
	rec := s.testGet(t, "/admin-dashboard")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var redirect *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == redirectCookieName {
			redirect = c
		}
	}
	require.NotNil(t, redirect)
	assert.Equal(t, "/admin-dashboard", redirect.Value)

	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(url.Values{
		"email":    {"admin@example.com"},
		"password": {"hunter2"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(redirect)
	rec = s.testRequest(t, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-dashboard", rec.Header().Get("Location"))
}

func TestAdminSessionExpiry(t *testing.T) {
	s := newTestService(t, adminBackend(nil))

	stale, err := s.cookie.Encode(s.config.CookieName, adminSession{
		ID:       "stale",
		Email:    "admin@example.com",
		IssuedAt: time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	rec := s.testGet(t, "/admin-panel", &http.Cookie{Name: s.config.CookieName, Value: stale})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-login", rec.Header().Get("Location"))
}

func TestAdminPanelTabs(t *testing.T) {
	s := newTestService(t, adminBackend(nil))
	cookie := s.adminCookie(t, "admin@example.com")

	rec := s.testGet(t, "/admin-panel", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarah Kim")
	assert.Contains(t, rec.Body.String(), "Total Donors")

	rec = s.testGet(t, "/admin-panel?tab=donors", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Liam Johnson")
}

func TestAdminPanelEditRowRendersInputs(t *testing.T) {
	s := newTestService(t, adminBackend(nil))

	rec := s.testGet(t, "/admin-panel?tab=donors&edit=7", s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `form="edit-donor"`)
	assert.Contains(t, body, `action="/admin-panel/donors/7"`)
	assert.Contains(t, body, `value="Liam Johnson"`)
}

func TestAdminPanelAcceptedDonorsModal(t *testing.T) {
	s := newTestService(t, adminBackend(nil))

	rec := s.testGet(t, "/admin-panel?tab=requests&donors=4", s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Accepted Donors for Request #4")
	assert.Contains(t, body, "a@example.com")
	assert.Contains(t, body, "b@example.com")
}

func TestAdminSaveDonorPutsFullRow(t *testing.T) {
	var gotDonor types.Donor
	var gotEmail string

	s := newTestService(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/donors/7", r.URL.Path)
		gotEmail = r.URL.Query().Get("email")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDonor))
		_ = json.NewEncoder(w).Encode(gotDonor)
	}))

	rec := s.testPostForm(t, "/admin-panel/donors/7", url.Values{
		"name":          {"Liam Johnson"},
		"email":         {"liam@example.com"},
		"contactNumber": {"5550100002"},
		"bloodGroup":    {"A-"},
		"city":          {"Boston"},
		"age":           {"41"},
	}, s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin-panel?tab=donors")
	assert.Contains(t, rec.Header().Get("Location"), "notice=Donor+updated+successfully")

	assert.Equal(t, "admin@example.com", gotEmail)
	assert.Equal(t, int64(7), gotDonor.ID)
	assert.Equal(t, "Boston", gotDonor.City)
	require.NotNil(t, gotDonor.Age)
	assert.Equal(t, 41, *gotDonor.Age)
}

func TestAdminSaveRequestKeepsAcceptedDonors(t *testing.T) {
	var gotRequest types.BloodRequest

	s := newTestService(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/requests/4":
			_, _ = w.Write([]byte(`{"id":4,"patientName":"Sarah Kim","bloodGroup":"AB-","hospital":"Dell Seton","city":"Austin","contactPhone":"5550200003","contactEmail":"sarah@example.com","status":"open","acceptedDonors":["a@example.com"]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/requests/4":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
			_ = json.NewEncoder(w).Encode(gotRequest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	rec := s.testPostForm(t, "/admin-panel/requests/4", url.Values{
		"patientName":  {"Sarah Kim"},
		"bloodGroup":   {"AB-"},
		"hospital":     {"Dell Seton"},
		"city":         {"Austin"},
		"contactPhone": {"5550200003"},
		"contactEmail": {"sarah@example.com"},
		"status":       {"fulfilled"},
		"urgent":       {"true"},
	}, s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin-panel?tab=requests")

	assert.Equal(t, "fulfilled", gotRequest.Status)
	assert.True(t, gotRequest.Urgent)
	assert.Equal(t, []string{"a@example.com"}, gotRequest.AcceptedDonors)
}

func TestAdminDeleteRequest(t *testing.T) {
	var deleted int32

	s := newTestService(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/requests/9", r.URL.Path)
		atomic.AddInt32(&deleted, 1)
	}))

	rec := s.testPostForm(t, "/admin-panel/requests/9/delete", url.Values{}, s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&deleted))
	assert.Contains(t, rec.Header().Get("Location"), "/admin-panel?tab=requests")
}

func TestAdminDashboardCharts(t *testing.T) {
	s := newTestService(t, adminBackend(nil))

	rec := s.testGet(t, "/admin-dashboard", s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Overall System Statistics")
	assert.Contains(t, body, "Urgent: 2 (33%)")
	assert.Contains(t, body, "Normal: 4 (67%)")
}

func TestAdminDashboardSummaryFailure(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := s.testGet(t, "/admin-dashboard", s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load dashboard data.")
}

func TestAdminLogoutClearsSession(t *testing.T) {
	s := newTestService(t, adminBackend(nil))

	rec := s.testPostForm(t, "/admin-logout", url.Values{}, s.adminCookie(t, "admin@example.com"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-login", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == s.config.CookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
	assert.Negative(t, session.MaxAge)
}
