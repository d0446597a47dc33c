package domain

import "errors"

var (
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrGenerationProvider signals an answer-generation provider failure.
	ErrGenerationProvider = errors.New("generation provider error")
	// ErrIndexUnavailable signals that the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("search index unavailable")
	// ErrJurisdictionNotFound signals a jurisdiction with no indexed ordinance.
	ErrJurisdictionNotFound = errors.New("jurisdiction not found")
)
