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


package auth

import "errors"

var (
	// ErrUserRepositoryRequired is returned when a user repository is not provided.
	ErrUserRepositoryRequired = errors.New("user repository required")

	// ErrSessionRepositoryRequired is returned when a session repository is not provided.
	ErrSessionRepositoryRequired = errors.New("session repository required")

	// ErrSecretRequired is returned when no signing secret is configured.
	ErrSecretRequired = errors.New("signing secret required")

	// ErrWeakPassword indicates a password below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. Deliberately
	// identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a missing, invalid, revoked, or
	// expired session.
	ErrUnauthenticated = errors.New("unauthenticated")
)
