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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidNote indicates a Note failed validation.
	ErrInvalidNote = errors.New("invalid note")

	// ErrEmptyOwner indicates the owner identity is missing.
	ErrEmptyOwner = errors.New("owner cannot be empty")

	// ErrMissingKind indicates a submission carried no kind.
	ErrMissingKind = errors.New("submission kind is required")

	// ErrInvalidKind indicates an unrecognized Kind value.
	ErrInvalidKind = errors.New("invalid note kind")

	// ErrInvalidState indicates an unrecognized ProcessingState value.
	ErrInvalidState = errors.New("invalid processing state")

	// ErrTooManyTags indicates the tag count exceeds MaxTags.
	ErrTooManyTags = errors.New("too many tags")
)
