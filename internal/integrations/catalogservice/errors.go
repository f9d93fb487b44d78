package catalogservice

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog has no such service.
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrProviderNotFound is returned when the catalog has no such provider.
	ErrProviderNotFound = errors.New("catalogservice: provider not found")

	// ErrInvalidResponse is returned when CatalogService answers with an
	// unexpected status code or an unparseable body.
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal is returned for request construction or transport errors.
	ErrInternal = errors.New("catalogservice: internal error")
)
