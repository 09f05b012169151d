package vision

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/you/gatesvc/domain"
)

func analysisServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzerImpl_Analyze(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		threshold     int
		expectErr     bool
		expectMatched bool
	}{
		{
			name:          "confident match",
			status:        http.StatusOK,
			body:          `{"match":true,"confidence":93,"summary":"resident match"}`,
			threshold:     70,
			expectMatched: true,
		},
		{
			name:          "reported match below threshold is rejected",
			status:        http.StatusOK,
			body:          `{"match":true,"confidence":55,"summary":"weak match"}`,
			threshold:     70,
			expectMatched: false,
		},
		{
			name:          "no match",
			status:        http.StatusOK,
			body:          `{"match":false,"confidence":12,"summary":"unknown face"}`,
			threshold:     70,
			expectMatched: false,
		},
		{
			name:      "collaborator-reported error becomes a typed error",
			status:    http.StatusOK,
			body:      `{"error":"camera frame unreadable"}`,
			threshold: 70,
			expectErr: true,
		},
		{
			name:      "non-200 response is unavailable",
			status:    http.StatusBadGateway,
			body:      `upstream timeout`,
			threshold: 70,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := analysisServer(t, tt.status, tt.body)
			analyzer := NewAnalyzer(srv.URL, "test-key", tt.threshold, 2*time.Second)

			analysis, err := analyzer.Analyze(context.Background(), []byte("frame"))
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if analysis.Matched != tt.expectMatched {
				t.Errorf("expected matched=%v, got %v (detail %q)", tt.expectMatched, analysis.Matched, analysis.Detail)
			}
		})
	}
}

func TestAnalyzerImpl_TransportFailure(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	analyzer := NewAnalyzer(srv.URL, "", 70, time.Second)
	_, err := analyzer.Analyze(context.Background(), []byte("frame"))
	if !errors.Is(err, domain.ErrAnalysisUnavailable) {
		t.Errorf("expected ErrAnalysisUnavailable, got %v", err)
	}
}

func TestAnalyzerImpl_DemoModeWithoutEndpoint(t *testing.T) {
	analyzer := NewAnalyzer("", "", 70, time.Second)

	analysis, err := analyzer.Analyze(context.Background(), []byte("frame"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !analysis.Matched {
		t.Error("expected demo mode to report a simulated match")
	}
}
