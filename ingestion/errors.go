// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import "errors"

var (
	// ErrNoteRepositoryRequired indicates a nil note repository was provided.
	ErrNoteRepositoryRequired = errors.New("note repository is required")

	// ErrFetcherRequired indicates a nil metadata fetcher was provided.
	ErrFetcherRequired = errors.New("metadata fetcher is required")

	// ErrProviderRequired indicates a nil AI provider was provided.
	ErrProviderRequired = errors.New("AI provider is required")

	// ErrMissingOwner indicates a submission without a resolved owner.
	ErrMissingOwner = errors.New("submission owner is required")

	// ErrMissingSubmission indicates a nil submission.
	ErrMissingSubmission = errors.New("submission is required")
)
