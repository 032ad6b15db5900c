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


package openai

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/linkstash/linkstash/ai"
)

// stripFences removes markdown code fences that models sometimes wrap
// around JSON output despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON fixes the most common malformation in model JSON output:
// a key missing its opening quote after { or , (e.g. `, tags":` for
// `, "tags":`). Anything it cannot recognize is passed through unchanged.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		out.WriteRune(ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace following the delimiter.
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			out.WriteRune(runes[i])
			i++
		}

		// A bare identifier followed by ": means the opening quote is missing.
		start := i
		for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '_') {
			i++
		}
		if i > start && i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			out.WriteRune('"')
		}
		out.WriteString(string(runes[start:i]))
	}

	return out.String()
}

// annotationPayload matches the JSON shape the summarizer model is
// instructed to produce.
type annotationPayload struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// parseAnnotation decodes a summarizer response. The raw output must be
// strict structured data; tags beyond ai.MaxTags are discarded silently.
func parseAnnotation(text string) (ai.Annotation, error) {
	text = repairJSON(stripFences(text))

	var payload annotationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return ai.Annotation{}, err
	}

	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	if len(tags) > ai.MaxTags {
		tags = tags[:ai.MaxTags]
	}

	return ai.Annotation{
		Summary: strings.TrimSpace(payload.Summary),
		Tags:    tags,
	}, nil
}

// indicesPayload matches the JSON shape the ranker model is instructed
// to produce.
type indicesPayload struct {
	Indices []json.Number `json:"indices"`
}

// parseIndices decodes a ranker response, tolerating models that emit
// indices as floats.
func parseIndices(text string) ([]int, error) {
	text = repairJSON(stripFences(text))

	var payload indicesPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(payload.Indices))
	for _, n := range payload.Indices {
		if i, err := n.Int64(); err == nil {
			indices = append(indices, int(i))
			continue
		}
		if f, err := n.Float64(); err == nil {
			indices = append(indices, int(f))
		}
	}
	return indices, nil
}
