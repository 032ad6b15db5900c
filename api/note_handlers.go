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
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkstash/linkstash/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	submission, err := req.toSubmission()
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	note, err := s.dispatcher.Ingest(r.Context(), GetUserID(r), submission)
	if err != nil {
		s.logger.Error("note ingestion failed", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	owner := GetUserID(r)
	filter := storage.NoteFilter{Tag: r.URL.Query().Get("tag")}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	notes, err := s.notes.ListByOwner(r.Context(), owner, filter, (page-1)*limit, limit)
	if err != nil {
		s.logger.Error("note listing failed", "error", err)
		internalError(w)
		return
	}
	total, err := s.notes.CountByOwner(r.Context(), owner, filter)
	if err != nil {
		s.logger.Error("note count failed", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, noteListResponse{Notes: notes, Total: total, Page: page})
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.Get(r.Context(), GetUserID(r), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			notFound(w, "note not found")
			return
		}
		s.logger.Error("note lookup failed", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	err := s.notes.Delete(r.Context(), GetUserID(r), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			notFound(w, "note not found")
			return
		}
		s.logger.Error("note deletion failed", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	notes, err := s.searcher.Search(r.Context(), GetUserID(r), req.Query)
	if err != nil {
		s.logger.Error("search failed", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Notes: notes})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
