package api

import "errors"

var (
	// ErrAuthServiceRequired is returned when constructing a server
	// without an authentication service.
	ErrAuthServiceRequired = errors.New("auth service is required")

	// ErrDispatcherRequired is returned when constructing a server
	// without an ingestion dispatcher.
	ErrDispatcherRequired = errors.New("ingestion dispatcher is required")

	// ErrSearcherRequired is returned when constructing a server
	// without a searcher.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrBackupServiceRequired is returned when constructing a server
	// without a backup service.
	ErrBackupServiceRequired = errors.New("backup service is required")

	// ErrNoteRepositoryRequired is returned when constructing a server
	// without a note repository.
	ErrNoteRepositoryRequired = errors.New("note repository is required")

	// ErrFetcherRequired is returned when constructing a server
	// without a metadata fetcher.
	ErrFetcherRequired = errors.New("metadata fetcher is required")

	// ErrProviderRequired is returned when constructing a server
	// without an AI provider.
	ErrProviderRequired = errors.New("ai provider is required")
)
