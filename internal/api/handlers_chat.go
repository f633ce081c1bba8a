// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/logging"
)

// SessionTokenHeader carries the chat session token for non-browser clients.
const SessionTokenHeader = "X-Session-Token"

// DefaultSessionCookie is the cookie name when none is configured.
const DefaultSessionCookie = "pelismatch_session"

const maxSessionTokenLength = 128

// ChatResponse is a chatbot reply with the session token that produced it.
type ChatResponse struct {
	dialogue.Reply
	SessionToken string `json:"session_token"`
}

// Chat handles one conversation turn.
//
// POST /api/v1/chat {"message": "..."}
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		rw.FromError(err)
		return
	}

	token, _ := h.sessionToken(r)
	reply, err := h.turn(r.Context(), token, req.Message)
	if err != nil {
		rw.FromError(err)
		return
	}
	h.setSessionCookie(w, r, token)
	rw.Success(ChatResponse{Reply: *reply, SessionToken: token})
}

func (h *Handler) turn(ctx context.Context, token, message string) (*dialogue.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, h.requestTimeout())
	defer cancel()
	ctx = logging.ContextWithSession(ctx, token)
	return h.conversation.Handle(ctx, token, message)
}

func (h *Handler) cookieName() string {
	if name := h.config.Session.CookieName; name != "" {
		return name
	}
	return DefaultSessionCookie
}

// sessionToken returns the caller's token, or a fresh one with issued set.
// The cookie wins over the header.
func (h *Handler) sessionToken(r *http.Request) (token string, issued bool) {
	if c, err := r.Cookie(h.cookieName()); err == nil && validSessionToken(c.Value) {
		return c.Value, false
	}
	if v := r.Header.Get(SessionTokenHeader); validSessionToken(v) {
		return v, false
	}
	return logging.GenerateRequestID(), true
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	cookie := &http.Cookie{
		Name:     h.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	}
	if ttl := h.config.Session.TTL; ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// validSessionToken accepts short tokens of letters, digits, '-' and '_'.
func validSessionToken(token string) bool {
	if token == "" || len(token) > maxSessionTokenLength {
		return false
	}
	for _, c := range token {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
