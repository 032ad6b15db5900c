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


package storage

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/linkstash/linkstash/core"
)

// MarshalNote serializes a Note to bytes.
func MarshalNote(note *core.Note) ([]byte, error) {
	data, err := sonic.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalNote deserializes a Note from bytes.
func UnmarshalNote(data []byte) (*core.Note, error) {
	var note core.Note
	if err := sonic.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &note, nil
}

// storedUser is the persisted form of core.User. The API shape hides
// the password hash via `json:"-"`; storage must keep it.
type storedUser struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MarshalUser serializes a User to bytes, password hash included.
func MarshalUser(user *core.User) ([]byte, error) {
	data, err := sonic.Marshal(storedUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalUser deserializes a User from bytes.
func UnmarshalUser(data []byte) (*core.User, error) {
	var stored storedUser
	if err := sonic.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &core.User{
		ID:           stored.ID,
		Email:        stored.Email,
		Name:         stored.Name,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
	}, nil
}

// MarshalSession serializes a Session to bytes.
func MarshalSession(session *core.Session) ([]byte, error) {
	data, err := sonic.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalSession deserializes a Session from bytes.
func UnmarshalSession(data []byte) (*core.Session, error) {
	var session core.Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &session, nil
}
