package ordino

import "github.com/parcelworks/ordino/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmbeddingProvider    = domain.ErrEmbeddingProvider
	ErrGenerationProvider   = domain.ErrGenerationProvider
	ErrIndexUnavailable     = domain.ErrIndexUnavailable
	ErrJurisdictionNotFound = domain.ErrJurisdictionNotFound
)
