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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// Token is the API token. Use "none" for local OpenAI-compatible
	// services that don't require authentication.
	Token string

	// ChatModel is the model used for summarization and ranking.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	ChatModel string

	// VisionModel is the model used for image text extraction.
	// Defaults to ChatModel when empty.
	VisionModel string

	// AudioModel is the audio-capable model used for transcription.
	// Example: "gpt-4o-audio-preview"
	AudioModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithChatModel sets the summarization/ranking model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithVisionModel sets the image extraction model identifier.
func WithVisionModel(model string) ConfigOption {
	return func(c *Config) {
		c.VisionModel = model
	}
}

// WithAudioModel sets the transcription model identifier.
func WithAudioModel(model string) ConfigOption {
	return func(c *Config) {
		c.AudioModel = model
	}
}

// DefaultConfig returns a Config with defaults for the hosted OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:       "https://api.openai.com/v1",
		Token:      "none",
		ChatModel:  "gpt-4o-mini",
		AudioModel: "gpt-4o-audio-preview",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds
// the /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc), and fills the
// vision model from the chat model.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.VisionModel == "" {
		c.VisionModel = c.ChatModel
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.AudioModel == "" {
		return errors.New("ai config: AudioModel is required")
	}
	return nil
}
