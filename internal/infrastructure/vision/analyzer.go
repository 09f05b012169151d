package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/you/gatesvc/domain"
)

// AnalyzerImpl implements domain.FaceAnalyzer against an external HTTP
// analysis service. The free-text/err shape of the collaborator response
// is mapped to a typed domain.FaceAnalysis here, at the boundary; callers
// never inspect response strings.
type AnalyzerImpl struct {
	endpoint   string
	apiKey     string
	threshold  int
	httpClient *http.Client
}

// analysisResponse is the collaborator's wire shape.
type analysisResponse struct {
	Match      bool   `json:"match"`
	Confidence int    `json:"confidence"`
	Summary    string `json:"summary"`
	Error      string `json:"error"`
}

// NewAnalyzer creates a new face analysis adapter. threshold is the
// facial-confidence floor (50-99) below which a reported match is
// rejected.
func NewAnalyzer(endpoint, apiKey string, threshold int, timeout time.Duration) domain.FaceAnalyzer {
	return &AnalyzerImpl{
		endpoint:  endpoint,
		apiKey:    apiKey,
		threshold: threshold,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Analyze implements domain.FaceAnalyzer. Transport failures and
// collaborator-reported errors come back as errors; the caller maps them
// to "not granted", never to a crash of the gate flow.
func (a *AnalyzerImpl) Analyze(ctx context.Context, image []byte) (*domain.FaceAnalysis, error) {
	// Without an endpoint the analyzer runs in demo mode, mirroring the
	// unconfigured-dashboard behavior.
	if a.endpoint == "" {
		log.Printf("FACE_ANALYSIS_SIMULATED: no analysis endpoint configured")
		return &domain.FaceAnalysis{
			Matched:    true,
			Detail:     "simulated analysis: no endpoint configured",
			Confidence: a.threshold,
		}, nil
	}

	body, err := json.Marshal(map[string]any{"image": image})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrAnalysisUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrAnalysisUnavailable
	}

	var result analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("analysis failed: %s", result.Error)
	}

	analysis := &domain.FaceAnalysis{
		Matched:    result.Match,
		Detail:     result.Summary,
		Confidence: result.Confidence,
	}

	// The confidence threshold from the security settings gates the
	// match decision at this boundary.
	if analysis.Matched && analysis.Confidence < a.threshold {
		analysis.Matched = false
		analysis.Detail = fmt.Sprintf("confidence %d below threshold %d", analysis.Confidence, a.threshold)
	}

	return analysis, nil
}

// Compile-time interface compliance verification
var _ domain.FaceAnalyzer = (*AnalyzerImpl)(nil)
