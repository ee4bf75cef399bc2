package main

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/MacarenaGarciaM/Tingeso1/testutil"
)

func runGet(t *testing.T, args ...string) (*testutil.RecordingTransport, string, error) {
	t.Helper()

	for _, key := range []string{"API_URL", "API_TIMEOUT", "LOG_LEVEL", "REQUEST_ID_HEADER", "TLS_CA_FILE", "TLS_CERT_FILE", "TLS_KEY_FILE", "TLS_INSECURE_SKIP_VERIFY"} {
		t.Setenv(key, "")
	}

	recorder := &testutil.RecordingTransport{}
	transport := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if _, err := recorder.RoundTrip(req); err != nil {
			return nil, err
		}
		return &http.Response{
			Status:     "200 OK",
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`[{"id":1}]`)),
			Request:    req,
		}, nil
	})

	var out, errOut bytes.Buffer
	cmd := newRootCmdWithOptions(&rootOptions{transport: transport}, &out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"get"}, args...))

	err := cmd.Execute()
	return recorder, out.String(), err
}

func TestGet_WithToken(t *testing.T) {
	recorder, out, err := runGet(t, "/api/tools", "--token", "cli-token", "--base-url", "https://api.example.com")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	req := recorder.Last(t)
	if req.URL.String() != "https://api.example.com/api/tools" {
		t.Errorf("unexpected URL: %s", req.URL)
	}

	if req.Header.Get("Authorization") != "Bearer cli-token" {
		t.Errorf("unexpected authorization header: %q", req.Header.Get("Authorization"))
	}

	if _, ok := req.Header["X-Request-Id"]; ok {
		t.Error("request ids should be off unless configured")
	}

	if out != "200 OK\n[{\"id\":1}]" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestGet_WithoutToken(t *testing.T) {
	t.Setenv("API_TOKEN", "")

	recorder, _, err := runGet(t, "/api/tools")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	req := recorder.Last(t)
	if len(req.Header) != 0 {
		t.Errorf("request without token should carry no added headers, got %v", req.Header)
	}

	if req.URL.String() != "http://localhost:8090/api/tools" {
		t.Errorf("expected default base URL, got %s", req.URL)
	}
}

func TestGet_TokenFromEnv(t *testing.T) {
	t.Setenv("API_TOKEN", "env-token")

	recorder, _, err := runGet(t, "/api/tools")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if got := recorder.Last(t).Header.Get("Authorization"); got != "Bearer env-token" {
		t.Errorf("unexpected authorization header: %q", got)
	}
}

func TestGet_FlagOverridesEnvToken(t *testing.T) {
	t.Setenv("API_TOKEN", "env-token")

	recorder, _, err := runGet(t, "/api/tools", "--token", "flag-token")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if got := recorder.Last(t).Header.Get("Authorization"); got != "Bearer flag-token" {
		t.Errorf("unexpected authorization header: %q", got)
	}
}

func TestGet_RequestIDFromEnv(t *testing.T) {
	recorder, _, err := runGet(t, "/api/tools", "--token", "cli-token")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if recorder.Last(t).Header.Get("X-Trace-ID") != "" {
		t.Fatal("request id header set without configuration")
	}

	t.Setenv("REQUEST_ID_HEADER", "X-Trace-ID")
	var out bytes.Buffer
	rec := &testutil.RecordingTransport{}
	cmd := newRootCmdWithOptions(&rootOptions{transport: rec}, &out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"get", "/api/tools"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if rec.Last(t).Header.Get("X-Trace-ID") == "" {
		t.Error("expected request id header once configured")
	}
}

func TestHelp_DoesNotPrintToken(t *testing.T) {
	t.Setenv("API_TOKEN", "super-secret-token")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"get", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	if !strings.Contains(out.String(), "--token") {
		t.Fatalf("help output missing --token flag: %q", out.String())
	}
	if strings.Contains(out.String(), "super-secret-token") {
		t.Errorf("help output leaks the token: %q", out.String())
	}
}

func TestGet_RequiresPath(t *testing.T) {
	_, _, err := runGet(t)
	if err == nil {
		t.Fatal("expected error without path argument")
	}
}

func TestGet_InvalidBaseURL(t *testing.T) {
	_, _, err := runGet(t, "/api/tools", "--base-url", "not a url")
	if err == nil {
		t.Fatal("expected error for invalid base URL")
	}

	if !strings.Contains(err.Error(), "invalid base URL") {
		t.Errorf("unexpected error: %v", err)
	}
}
