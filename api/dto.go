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


package api

import (
	"encoding/base64"
	"errors"

	"github.com/linkstash/linkstash/core"
)

// errUnknownKind rejects note creation with a type outside the closed set.
var errUnknownKind = errors.New("unknown note type")

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// createNoteRequest carries one submission variant selected by Type.
// Audio and Image are base64-encoded on the wire.
type createNoteRequest struct {
	Type    string `json:"type" validate:"required"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Audio   string `json:"audio"`
	Image   string `json:"image"`
}

// toSubmission maps the wire request onto the submission variant for
// its declared type, decoding binary payloads.
func (req *createNoteRequest) toSubmission() (core.Submission, error) {
	switch core.Kind(req.Type) {
	case core.KindLink:
		if req.URL == "" {
			return nil, errors.New("url is required for link notes")
		}
		return core.LinkSubmission{URL: req.URL, Title: req.Title}, nil
	case core.KindText:
		return core.TextSubmission{Content: req.Content, Title: req.Title}, nil
	case core.KindVoice:
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			return nil, errors.New("audio must be base64-encoded")
		}
		return core.VoiceSubmission{Audio: audio, Title: req.Title}, nil
	case core.KindImage:
		image, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return nil, errors.New("image must be base64-encoded")
		}
		return core.ImageSubmission{Image: image, Title: req.Title}, nil
	default:
		return nil, errUnknownKind
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type importRequest struct {
	Notes []*core.Note `json:"notes"`
}

type extractMetadataRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type noteListResponse struct {
	Notes []*core.Note `json:"notes"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
}

type searchResponse struct {
	Notes []*core.Note `json:"notes"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *core.User `json:"user"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// metadataResponse is the preview produced without creating a note.
type metadataResponse struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Thumbnail      string   `json:"thumbnail"`
	SourcePlatform string   `json:"source_platform"`
	Summary        string   `json:"summary"`
	Tags           []string `json:"tags"`
}
