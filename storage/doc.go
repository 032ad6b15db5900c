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


// Package storage provides the storage abstraction layer for linkstash.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic. It allows for different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	notes, err := badger.NewNoteRepository(backend)  // returns storage.NoteRepository interface
//
// Internal package constructors (newNoteRepository, newBackend, etc.) may
// return concrete types since they're only used within the implementation
// package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - NoteRepository: Operations for notes, always owner-scoped
//   - UserRepository: Operations for user accounts
//   - SessionRepository: Operations for login sessions
//
// # Usage
//
// Create repositories over a shared backend:
//
//	backend, err := badger.OpenBackend("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	notes := badger.NewNoteRepository(backend)
//	defer notes.Close()
//
// Use in tests with in-memory storage:
//
//	notes, users, sessions, err := badger.NewMemoryStores()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support. Pass context.Background() for operations without
// specific timeout requirements.
package storage
