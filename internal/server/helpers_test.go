package server

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bloodnet/internal/bloodapi"
	"bloodnet/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, upstream http.Handler) *Service {
	t.Helper()

	backend := httptest.NewServer(upstream)
	t.Cleanup(backend.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		Environment:      "test",
		ServerPort:       0,
		ReadTimeoutSec:   5,
		WriteTimeoutSec:  5,
		APIBaseURL:       backend.URL,
		CookieName:       "bloodnet_admin",
		SessionMaxAgeSec: 3600,
		CookieHashKey:    base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x5a}, 32)),
		CookieBlockKey:   base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x3c}, 32)),
	}

	s, err := New(config, logger, bloodapi.New(backend.URL, logger))
	require.NoError(t, err)

	return s
}

func (s *Service) testRequest(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (s *Service) testGet(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.testRequest(t, req)
}

func (s *Service) testPostForm(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.testRequest(t, req)
}

func (s *Service) adminCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	encoded, err := s.cookie.Encode(s.config.CookieName, adminSession{
		ID:       "test-session",
		Email:    email,
		IssuedAt: time.Now(),
	})
	require.NoError(t, err)

	return &http.Cookie{Name: s.config.CookieName, Value: encoded}
}
