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

import "fmt"

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - Kind must be one of the closed variant set
//   - ProcessingState must be pending or complete
//   - Tags must not exceed MaxTags
//
// NOT validated (populated by enrichment providers):
//   - Summary, Thumbnail, SourcePlatform (empty is a valid
//     "not available" value, never an error)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyOwner)
	}

	if err := ValidateKind(note.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	if err := ValidateState(note.ProcessingState); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	if len(note.Tags) > MaxTags {
		return fmt.Errorf("%w: %w: %d", ErrInvalidNote, ErrTooManyTags, len(note.Tags))
	}

	return nil
}

// ValidateKind validates that a Kind has a value from the closed set.
func ValidateKind(kind Kind) error {
	switch kind {
	case KindLink, KindText, KindVoice, KindImage:
		return nil
	case "":
		return ErrMissingKind
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

// ValidateState validates that a ProcessingState has a known value.
func ValidateState(state ProcessingState) error {
	if state != StatePending && state != StateComplete {
		return fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return nil
}
