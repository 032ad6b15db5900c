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
	"net/http"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/webmeta"
)

// handleExtractMetadata previews a URL without creating a note: page
// metadata, platform, and an AI annotation. Provider and fetch failures
// degrade to empty fields, same as ingestion.
func (s *Server) handleExtractMetadata(w http.ResponseWriter, r *http.Request) {
	var req extractMetadataRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	meta, err := s.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn("metadata fetch failed", "url", req.URL, "error", err)
		meta = webmeta.Metadata{}
	}

	resp := metadataResponse{
		Title:          meta.Title,
		Description:    meta.Description,
		Thumbnail:      meta.Thumbnail,
		SourcePlatform: webmeta.Detect(req.URL),
		Tags:           []string{},
	}

	annotation, err := s.provider.Summarizer().Summarize(r.Context(), ai.SummaryInput{
		Title:       meta.Title,
		Description: meta.Description,
		URL:         req.URL,
	})
	if err != nil {
		s.logger.Warn("metadata summarization failed", "url", req.URL, "error", err)
	} else {
		resp.Summary = annotation.Summary
		resp.Tags = core.ClampTags(annotation.Tags)
	}

	writeJSON(w, http.StatusOK, resp)
}
