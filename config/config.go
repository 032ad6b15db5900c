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


// Package config loads process configuration from the environment,
// with .env file support for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	AI     AIConfig
	Auth   AuthConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string
	Port string
}

// StoreConfig configures the BadgerDB store.
type StoreConfig struct {
	Path     string
	InMemory bool
}

// AIConfig configures the enrichment provider.
type AIConfig struct {
	Host       string
	Token      string
	ChatModel  string
	AudioModel string
}

// AuthConfig configures session issuance.
type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored if present.
func Load() (*Config, error) {
	godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Store: StoreConfig{
			Path:     getEnv("STORE_PATH", "./data"),
			InMemory: getEnvAsBool("STORE_IN_MEMORY", false),
		},
		AI: AIConfig{
			Host:       getEnv("AI_HOST", "https://api.openai.com/v1"),
			Token:      getEnv("AI_TOKEN", "none"),
			ChatModel:  getEnv("AI_CHAT_MODEL", ""),
			AudioModel: getEnv("AI_AUDIO_MODEL", ""),
		},
		Auth: AuthConfig{
			Secret:     getEnv("AUTH_SECRET", "dev-secret-change-in-production"),
			SessionTTL: sessionTTL,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	switch value {
	case "1", "true", "TRUE", "True", "yes":
		return true
	case "0", "false", "FALSE", "False", "no":
		return false
	default:
		return fallback
	}
}
