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


package badger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// newNoteRepository is an internal constructor that returns the concrete type.
func newNoteRepository(backend *Backend) *NoteRepository {
	return &NoteRepository{backend: backend}
}

// NewNoteRepository creates a note repository over the given backend.
//
// Returns storage.NoteRepository interface to enforce abstraction.
func NewNoteRepository(backend *Backend) storage.NoteRepository {
	return newNoteRepository(backend)
}

// Close is a no-op; the repository does not own the backend.
func (r *NoteRepository) Close() error {
	return nil
}

// Insert adds a note to storage.
func (r *NoteRepository) Insert(ctx context.Context, note *core.Note) error {
	if err := core.ValidateNote(note); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(note.ID)

		// Duplicate IDs are rejected regardless of owner.
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		value, err := storage.MarshalNote(note)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}

		ownerKey := makeNoteOwnerKey(note.UserID, note.CreatedAt, note.ID)
		if err := tx.Set(ownerKey, []byte(note.ID)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Update replaces an existing note belonging to the same owner.
func (r *NoteRepository) Update(ctx context.Context, note *core.Note) error {
	if err := core.ValidateNote(note); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(note.ID)

		old, err := r.readNote(tx, key)
		if err != nil {
			return err
		}
		if old == nil || old.UserID != note.UserID {
			return storage.ErrNotFound
		}

		note.UpdatedAt = time.Now().UTC()

		value, err := storage.MarshalNote(note)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Move the recency index entry if the creation time changed.
		if !old.CreatedAt.Equal(note.CreatedAt) {
			oldOwnerKey := makeNoteOwnerKey(old.UserID, old.CreatedAt, old.ID)
			if err := tx.Delete(oldOwnerKey); err != nil {
				return err
			}
			newOwnerKey := makeNoteOwnerKey(note.UserID, note.CreatedAt, note.ID)
			if err := tx.Set(newOwnerKey, []byte(note.ID)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// Get retrieves a single note by ID for the given owner.
func (r *NoteRepository) Get(ctx context.Context, owner, id string) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		note, err := r.readNote(tx, makeNoteKey(id))
		if err != nil {
			return err
		}
		if note == nil || note.UserID != owner {
			return storage.ErrNotFound
		}
		result = note
		return nil
	}, false)
	return result, err
}

// Delete removes a note by ID for the given owner.
func (r *NoteRepository) Delete(ctx context.Context, owner, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(id)

		note, err := r.readNote(tx, key)
		if err != nil {
			return err
		}
		if note == nil || note.UserID != owner {
			return storage.ErrNotFound
		}

		ownerKey := makeNoteOwnerKey(note.UserID, note.CreatedAt, note.ID)
		if err := tx.Delete(ownerKey); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// ListByOwner retrieves the owner's notes matching filter, newest first.
func (r *NoteRepository) ListByOwner(ctx context.Context, owner string, filter storage.NoteFilter, skip, limit int) ([]*core.Note, error) {
	if skip < 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Note
	err := r.scanOwnerNotes(owner, func(note *core.Note) bool {
		if !matchesFilter(note, filter) {
			return true
		}
		if skip > 0 {
			skip--
			return true
		}
		results = append(results, note)
		return limit <= 0 || len(results) < limit
	})
	return results, err
}

// CountByOwner returns how many of the owner's notes match filter.
func (r *NoteRepository) CountByOwner(ctx context.Context, owner string, filter storage.NoteFilter) (int, error) {
	count := 0
	err := r.scanOwnerNotes(owner, func(note *core.Note) bool {
		if matchesFilter(note, filter) {
			count++
		}
		return true
	})
	return count, err
}

// MatchSubstring retrieves up to limit of the owner's notes whose
// searchable fields contain the query, case-insensitively, newest first.
func (r *NoteRepository) MatchSubstring(ctx context.Context, owner, query string, limit int) ([]*core.Note, error) {
	query = strings.ToLower(query)

	var results []*core.Note
	err := r.scanOwnerNotes(owner, func(note *core.Note) bool {
		if !noteContains(note, query) {
			return true
		}
		results = append(results, note)
		return limit <= 0 || len(results) < limit
	})
	return results, err
}

// Recent retrieves the owner's limit most recent notes, newest first.
func (r *NoteRepository) Recent(ctx context.Context, owner string, limit int) ([]*core.Note, error) {
	var results []*core.Note
	err := r.scanOwnerNotes(owner, func(note *core.Note) bool {
		results = append(results, note)
		return limit <= 0 || len(results) < limit
	})
	return results, err
}

// AllByOwner retrieves every note belonging to the owner, newest first.
func (r *NoteRepository) AllByOwner(ctx context.Context, owner string) ([]*core.Note, error) {
	var results []*core.Note
	err := r.scanOwnerNotes(owner, func(note *core.Note) bool {
		results = append(results, note)
		return true
	})
	return results, err
}

// scanOwnerNotes walks the owner's recency index newest first, reading
// each note and handing it to visit. Iteration stops when visit returns
// false.
func (r *NoteRepository) scanOwnerNotes(owner string, visit func(note *core.Note) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makePartialNoteOwnerKey(owner)
		seekKey := makeNoteOwnerSeekKey(owner)

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			// Read the ID from the index
			var noteID string
			if err := iter.Item().Value(func(val []byte) error {
				noteID = string(val)
				return nil
			}); err != nil {
				return err
			}

			// Look up the full note
			note, err := r.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note == nil {
				continue
			}
			if !visit(note) {
				return nil
			}
		}
		return nil
	}, false)
}

// readNote reads and deserializes a note, returning nil if absent.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var err error
		note, err = storage.UnmarshalNote(val)
		return err
	})
	return note, err
}

// matchesFilter reports whether the note satisfies the listing filter.
func matchesFilter(note *core.Note, filter storage.NoteFilter) bool {
	if filter.Tag == "" {
		return true
	}
	for _, tag := range note.Tags {
		if tag == filter.Tag {
			return true
		}
	}
	return false
}

// noteContains reports whether any searchable field of the note contains
// the already-lowercased query.
func noteContains(note *core.Note, query string) bool {
	fields := []string{
		note.Title,
		note.Summary,
		note.RawContent,
		note.URL,
		note.SourcePlatform,
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
