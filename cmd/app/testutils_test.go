package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/currytech/internal/blogservice"
	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/contactservice"
	"github.com/sushihentaime/currytech/internal/testimonialservice"
	"github.com/sushihentaime/currytech/internal/userservice"
)

const testJWTSecret = "test-secret-0123456789abcdef"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Port:           4000,
		Environment:    "development",
		Version:        "test",
		TrustedOrigins: []string{"*"},
		JWTSecret:      testJWTSecret,
		JWTExpire:      time.Hour,
		AdminEmail:     "admin@currytech.example",
	}
}

// newAppWithDB wires every service to db without starting the mail consumers.
func newAppWithDB(t *testing.T, db *sql.DB, cfg *Config) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTExpire)
	require.NoError(t, err)

	producer := common.NewNopProducer()

	return &application{
		config:             cfg,
		logger:             logger,
		userService:        userservice.NewUserService(db, producer, tokens, logger),
		blogService:        blogservice.NewBlogService(db),
		testimonialService: testimonialservice.NewTestimonialService(db),
		contactService:     contactservice.NewContactService(db, producer, logger),
		limiters:           common.NewCache(time.Minute, time.Minute),
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := common.TestDB(t)
	return newAppWithDB(t, db, testConfig()), db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) put(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

// data returns the "data" member of a response as a JSON object.
func data(t *testing.T, env envelope) map[string]any {
	t.Helper()

	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is %T, not an object", env["data"])
	}
	return m
}
