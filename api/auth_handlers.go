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
	"time"

	"github.com/linkstash/linkstash/auth"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := s.authn.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	token, user, err := s.authn.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		unauthorized(w, "invalid credentials")
		return
	}

	// The cookie mirrors the token so browser clients stay signed in
	// without an Authorization header.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.DefaultSessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authn.Logout(r.Context(), bearerToken(r)); err != nil {
		internalError(w)
		return
	}

	// Expire the cookie regardless of how the token was presented.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authn.GetUser(r.Context(), GetUserID(r))
	if err != nil {
		unauthorized(w, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
