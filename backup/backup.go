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


// Package backup exports and imports a user's notes.
//
// Export is verbatim: every note the owner has, plus a count and
// timestamp. Import is idempotent by note ID — records whose ID already
// exists in the store are skipped, never overwritten, so re-importing
// the same archive is a no-op.
package backup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// ErrNoteRepositoryRequired is returned when a note repository is not provided.
var ErrNoteRepositoryRequired = errors.New("note repository required")

// Archive is the backup wire format.
type Archive struct {
	ExportedAt time.Time    `json:"exported_at"`
	UserID     string       `json:"user_id"`
	Count      int          `json:"count"`
	Notes      []*core.Note `json:"notes"`
}

// Service exports and imports note archives for a single owner at a time.
type Service struct {
	notes  storage.NoteRepository
	logger *slog.Logger
}

// NewService creates a backup service.
func NewService(notes storage.NoteRepository) (*Service, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	return &Service{
		notes:  notes,
		logger: slog.Default().With("component", "backup"),
	}, nil
}

// Export returns every note belonging to the owner.
func (s *Service) Export(ctx context.Context, owner string) (*Archive, error) {
	notes, err := s.notes.AllByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*core.Note{}
	}
	return &Archive{
		ExportedAt: time.Now().UTC(),
		UserID:     owner,
		Count:      len(notes),
		Notes:      notes,
	}, nil
}

// Import inserts the archive's notes under the given owner and reports
// how many were actually inserted. Records lacking an ID get a fresh
// one; records whose ID already exists in the store are skipped.
func (s *Service) Import(ctx context.Context, owner string, notes []*core.Note) (int, error) {
	inserted := 0
	for _, note := range notes {
		if note == nil {
			continue
		}

		record := *note
		record.UserID = owner
		if record.ID == "" {
			record.ID = core.NewNoteID()
		}
		if record.Kind == "" {
			record.Kind = core.KindText
		}
		if record.ProcessingState == "" {
			record.ProcessingState = core.StateComplete
		}
		record.Tags = core.ClampTags(record.Tags)
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
		if record.UpdatedAt.IsZero() {
			record.UpdatedAt = record.CreatedAt
		}

		err := s.notes.Insert(ctx, &record)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				s.logger.Debug("skipping existing note", "id", record.ID)
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
