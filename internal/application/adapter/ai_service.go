// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// AICategoryRequest represents a request to classify one expense description.
type AICategoryRequest struct {
	Description     string
	KnownCategories []string
}

// AICategoryResult represents the model's classification.
type AICategoryResult struct {
	Category   string
	Confidence float64
}

// AICategoryService classifies expense descriptions with a language model.
type AICategoryService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// Classify returns the suggested category, or an empty category when the
	// model has no opinion.
	Classify(ctx context.Context, request *AICategoryRequest) (*AICategoryResult, error)
}
