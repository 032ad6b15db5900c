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


// Package api is the HTTP boundary of linkstash. It maps requests onto
// the ingestion, search, backup, and auth services and maps their
// results onto status codes and JSON bodies.
//
// All /api routes except register and login require a session token,
// presented either as a Bearer Authorization header or as the
// session_token cookie set at login.
package api
