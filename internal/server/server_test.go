package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if opts.Mode == "" {
		opts.Mode = "release"
	}
	return New(opts, db), mock
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	s.Handler().ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "warehouse reachable",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"healthy","warehouse":"connected"}`,
		},
		{
			name:           "warehouse unreachable",
			pingErr:        errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unhealthy","error":"warehouse unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestServer(t, Options{})
			mock.ExpectPing().WillReturnError(tt.pingErr)

			resp := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.expectedStatus, resp.Code)
			require.JSONEq(t, tt.expectedBody, resp.Body.String())
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAppHealth(t *testing.T) {
	s, _ := newTestServer(t, Options{AppName: "Experiment Tracker"})

	resp := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"status":"ok","app_name":"Experiment Tracker"}`, resp.Body.String())
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	resp := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Len(t, resp.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	resp = serve(s, req)
	require.Equal(t, "req-123", resp.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, Options{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := serve(s, req)

	require.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	resp = serve(s, req)
	require.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	resp := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "go_goroutines")
}

func TestStaticDir(t *testing.T) {
	s, _ := newTestServer(t, Options{StaticDir: "testdata/static"})

	resp := serve(s, httptest.NewRequest(http.MethodGet, "/app/app.js", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "tracker")

	missing, _ := newTestServer(t, Options{StaticDir: "testdata/none"})
	resp = serve(missing, httptest.NewRequest(http.MethodGet, "/app/app.js", nil))
	require.Equal(t, http.StatusNotFound, resp.Code)
}
