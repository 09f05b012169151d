package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockFaceAnalyzer implements domain.FaceAnalyzer interface for testing
type MockFaceAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, image []byte) (*domain.FaceAnalysis, error)
}

// NewMockFaceAnalyzer creates a new MockFaceAnalyzer with default behaviors
func NewMockFaceAnalyzer() *MockFaceAnalyzer {
	return &MockFaceAnalyzer{}
}

// Analyze runs the mock analysis
func (m *MockFaceAnalyzer) Analyze(ctx context.Context, image []byte) (*domain.FaceAnalysis, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, image)
	}
	// Default behavior: no match
	return &domain.FaceAnalysis{Matched: false, Detail: "no match"}, nil
}

// Compile-time interface compliance verification
var _ domain.FaceAnalyzer = (*MockFaceAnalyzer)(nil)
