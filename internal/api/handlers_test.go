// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/dialogue"
	"github.com/tomtom215/pelismatch/internal/discovery"
	"github.com/tomtom215/pelismatch/internal/middleware"
	"github.com/tomtom215/pelismatch/internal/models"
	"github.com/tomtom215/pelismatch/internal/recommend"
	"github.com/tomtom215/pelismatch/internal/recommend/storage"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeDiscovery struct {
	mu        sync.Mutex
	similar   *discovery.SimilarResult
	favorites *discovery.FavoritesResult
	top       []models.RankedMovie
	logic     []models.MovieSummary
	err       error

	lastTitle    string
	lastFavorite discovery.FavoritesRequest
	lastLogic    discovery.LogicQuery
}

func (f *fakeDiscovery) SimilarMovies(_ context.Context, title string) (*discovery.SimilarResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTitle = title
	return f.similar, f.err
}

func (f *fakeDiscovery) LogicSearch(_ context.Context, q discovery.LogicQuery) []models.MovieSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogic = q
	return f.logic
}

func (f *fakeDiscovery) RecommendFromFavorites(_ context.Context, req discovery.FavoritesRequest) (*discovery.FavoritesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFavorite = req
	return f.favorites, f.err
}

func (f *fakeDiscovery) TopMovies(context.Context) ([]models.RankedMovie, error) {
	return f.top, f.err
}

type fakeConversation struct {
	mu     sync.Mutex
	tokens []string
	msgs   []string
	err    error
}

func (f *fakeConversation) Handle(_ context.Context, token, message string) (*dialogue.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tokens = append(f.tokens, token)
	f.msgs = append(f.msgs, message)
	return &dialogue.Reply{Text: "eco: " + message, State: dialogue.StateGenre}, nil
}

type fakeGenres struct {
	genres []models.Genre
	err    error
}

func (f *fakeGenres) Genres(context.Context) ([]models.Genre, error) { return f.genres, f.err }

type fakeModel struct {
	ready bool
	ids   []int
}

func (f *fakeModel) Ready() bool           { return f.ready }
func (f *fakeModel) Model() *storage.Model { return nil }
func (f *fakeModel) AvailableIDs() ([]int, error) {
	if !f.ready {
		return nil, recommend.ErrNotReady
	}
	return f.ids, nil
}

type testEnv struct {
	disc   *fakeDiscovery
	conv   *fakeConversation
	genres *fakeGenres
	model  *fakeModel
	perf   *middleware.PerformanceMonitor
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Timeout: 5 * time.Second},
		Session: config.SessionConfig{CookieName: "pelismatch_session", TTL: 30 * time.Minute},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000"},
			RateLimitDisabled: true,
		},
	}
	env := &testEnv{
		disc:   &fakeDiscovery{},
		conv:   &fakeConversation{},
		genres: &fakeGenres{},
		model:  &fakeModel{},
		perf:   middleware.NewPerformanceMonitor(50),
	}
	h := NewHandler(Deps{
		Config:       cfg,
		Discovery:    env.disc,
		Conversation: env.conv,
		Genres:       env.genres,
		Model:        env.model,
		Perf:         env.perf,
		SessionStore: "memory",
	})
	env.router = NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(cfg.Security))).Setup()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil || env.Error.Code != code {
		t.Errorf("error = %+v, want code %s", env.Error, code)
	}
}

// ============================================================================
// Chat
// ============================================================================

func TestChat_IssuesToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"hola"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.SessionToken == "" || resp.Text != "eco: hola" || resp.State != dialogue.StateGenre {
		t.Errorf("response = %+v", resp)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pelismatch_session" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != resp.SessionToken || !cookie.HttpOnly {
		t.Errorf("cookie = %+v, want HttpOnly token %q", cookie, resp.SessionToken)
	}
	if cookie != nil && cookie.MaxAge != 1800 {
		t.Errorf("cookie MaxAge = %d, want 1800", cookie.MaxAge)
	}
}

func TestChat_ReusesCookieOverHeader(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"uno"}`, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "pelismatch_session", Value: "cookie-token"})
		r.Header.Set(SessionTokenHeader, "header-token")
	})
	env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"dos"}`, func(r *http.Request) {
		r.Header.Set(SessionTokenHeader, "header-token")
	})

	want := []string{"cookie-token", "header-token"}
	if fmt.Sprint(env.conv.tokens) != fmt.Sprint(want) {
		t.Errorf("tokens = %v, want %v", env.conv.tokens, want)
	}
}

func TestChat_InvalidTokenReplaced(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"x"}`, func(r *http.Request) {
		r.Header.Set(SessionTokenHeader, "bad token with spaces")
	})
	if len(env.conv.tokens) != 1 || env.conv.tokens[0] == "bad token with spaces" {
		t.Errorf("tokens = %v, unsafe token must be replaced", env.conv.tokens)
	}
}

func TestChat_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"empty message", `{"message":""}`},
		{"blank message", `{"message":"  \t "}`},
		{"wrong type", `{"message":5}`},
		{"unknown field", `{"message":"hola","extra":true}`},
		{"not json", `hola`},
		{"too long", `{"message":"` + strings.Repeat("a", 501) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			expectError(t, env.do(t, http.MethodPost, "/api/v1/chat", tt.body), http.StatusBadRequest, ErrCodeValidationFailed)
			if len(env.conv.msgs) != 0 {
				t.Error("conversation must not run on invalid input")
			}
		})
	}
}

func TestChat_ConversationErrorClassified(t *testing.T) {
	env := newTestEnv(t)
	env.conv.err = errors.New("store down")
	expectError(t, env.do(t, http.MethodPost, "/api/v1/chat", `{"message":"hola"}`), http.StatusInternalServerError, ErrCodeInternalError)
}

// ============================================================================
// Recommendations and movies
// ============================================================================

func TestRecommendFavorites(t *testing.T) {
	env := newTestEnv(t)
	env.disc.favorites = &discovery.FavoritesResult{
		BasedOn:         []int{603},
		Recommendations: []models.MovieSummary{{ExternalID: 604, Title: "Matrix Reloaded", PosterURL: "p"}},
	}

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations/favorites",
		`{"favorite_external_ids":[603],"weights":{"603":2.5},"top_n":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}
	if env.disc.lastFavorite.TopN != 5 || env.disc.lastFavorite.Weights[603] != 2.5 {
		t.Errorf("request = %+v", env.disc.lastFavorite)
	}

	var res discovery.FavoritesResult
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].ExternalID != 604 {
		t.Errorf("result = %+v", res)
	}
}

func TestRecommendFavorites_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"empty list", `{"favorite_external_ids":[]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing list", `{}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"non-integer ids", `{"favorite_external_ids":["a"]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"negative id", `{"favorite_external_ids":[-1]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"not ready", `{"favorite_external_ids":[1]}`, recommend.ErrNotReady, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"none resolve", `{"favorite_external_ids":[1]}`, fmt.Errorf("none: %w", models.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.disc.err = tt.err
			expectError(t, env.do(t, http.MethodPost, "/api/v1/recommendations/favorites", tt.body), tt.status, tt.code)
		})
	}
}

func TestSimilarMovies(t *testing.T) {
	env := newTestEnv(t)
	env.disc.similar = &discovery.SimilarResult{
		Movie:   models.MovieSummary{ExternalID: 603, Title: "Matrix"},
		Similar: []models.SimilarMovie{{ExternalID: 604, Title: "Matrix Reloaded", Similarity: 6}},
	}

	rec := env.do(t, http.MethodGet, "/api/v1/movies/similar/the%20matrix", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}
	if env.disc.lastTitle != "the matrix" {
		t.Errorf("title = %q", env.disc.lastTitle)
	}
}

func TestSimilarMovies_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("search: %w", models.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"upstream", fmt.Errorf("search: %w", models.ErrUpstream), http.StatusBadGateway, ErrCodeExternalServiceFail},
		{"timeout", context.DeadlineExceeded, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.disc.err = tt.err
			expectError(t, env.do(t, http.MethodGet, "/api/v1/movies/similar/heat", ""), tt.status, tt.code)
		})
	}
}

func TestSimilarMovies_TitleTooLong(t *testing.T) {
	env := newTestEnv(t)
	expectError(t, env.do(t, http.MethodGet, "/api/v1/movies/similar/"+strings.Repeat("a", maxTitleLength+1), ""),
		http.StatusBadRequest, ErrCodeValidationFailed)
}

func TestLogicSearch(t *testing.T) {
	env := newTestEnv(t)
	env.disc.logic = []models.MovieSummary{{ExternalID: 1}, {ExternalID: 2}}

	rec := env.do(t, http.MethodPost, "/api/v1/search/logic", `{"include":{"directors":[525]},"exclude":{"genres":[27]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}
	env2 := decodeEnvelope(t, rec)
	if env2.Meta.Count == nil || *env2.Meta.Count != 2 {
		t.Errorf("meta count = %v", env2.Meta.Count)
	}
	if env.disc.lastLogic.Include.Directors[0] != 525 || env.disc.lastLogic.Exclude.Genres[0] != 27 {
		t.Errorf("query = %+v", env.disc.lastLogic)
	}

	expectError(t, env.do(t, http.MethodPost, "/api/v1/search/logic", `{"include":{"actors":[0]}}`),
		http.StatusBadRequest, ErrCodeValidationFailed)
}

func TestTopGenresPeopleAvailable(t *testing.T) {
	env := newTestEnv(t)
	env.disc.top = []models.RankedMovie{{ExternalID: 1, WeightedScore: 8.1}}
	env.genres.genres = []models.Genre{{ID: 28, Name: "Acción"}}

	for _, path := range []string{"/api/v1/movies/top", "/api/v1/genres", "/api/v1/people"} {
		if rec := env.do(t, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}

	expectError(t, env.do(t, http.MethodGet, "/api/v1/movies/available", ""), http.StatusServiceUnavailable, ErrCodeServiceUnavailable)

	env.model.ready = true
	env.model.ids = []int{11, 603}
	rec := env.do(t, http.MethodGet, "/api/v1/movies/available", "")
	var ids []int
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &ids); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(ids) != "[11 603]" {
		t.Errorf("ids = %v", ids)
	}

	env.genres.err = fmt.Errorf("genres: %w", models.ErrUpstream)
	expectError(t, env.do(t, http.MethodGet, "/api/v1/genres", ""), http.StatusBadGateway, ErrCodeExternalServiceFail)
}

func TestPeopleCatalog(t *testing.T) {
	env := newTestEnv(t)
	var people PeopleResponse
	if err := json.Unmarshal(decodeEnvelope(t, env.do(t, http.MethodGet, "/api/v1/people", "")).Data, &people); err != nil {
		t.Fatal(err)
	}
	if len(people.Directors) == 0 || len(people.Actors) == 0 {
		t.Errorf("people = %+v", people)
	}
}

// ============================================================================
// Health, routing, middleware
// ============================================================================

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	var status HealthStatus
	_ = json.Unmarshal(decodeEnvelope(t, env.do(t, http.MethodGet, "/health", "")).Data, &status)
	if status.Status != "degraded" || status.ModelReady || status.SessionStore != "memory" {
		t.Errorf("status = %+v", status)
	}
	if rec := env.do(t, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready = %d, want 503", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("live = %d", rec.Code)
	}

	env.model.ready = true
	_ = json.Unmarshal(decodeEnvelope(t, env.do(t, http.MethodGet, "/health", "")).Data, &status)
	if status.Status != "healthy" || !status.ModelReady {
		t.Errorf("status = %+v", status)
	}
	if rec := env.do(t, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/health", "")
	rec := env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("api_requests_total")) {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestLatencyReport(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/v1/people", "")

	var report LatencyReport
	if err := json.Unmarshal(decodeEnvelope(t, env.do(t, http.MethodGet, "/api/v1/stats/latency", "")).Data, &report); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range report.Endpoints {
		if e.Endpoint == "GET /api/v1/people" {
			found = true
		}
	}
	if !found {
		t.Errorf("endpoints = %+v", report.Endpoints)
	}
}

func TestRouting_NotFoundAndMethod(t *testing.T) {
	env := newTestEnv(t)
	expectError(t, env.do(t, http.MethodGet, "/api/v1/nope", ""), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, env.do(t, http.MethodGet, "/api/v1/chat", ""), http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRequestIDEchoedInEnvelope(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/people", "", func(r *http.Request) {
		r.Header.Set("X-Request-ID", "abc-123")
	})
	if rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("header = %q", rec.Header().Get("X-Request-ID"))
	}
	if m := decodeEnvelope(t, rec).Meta; m == nil || m.RequestID != "abc-123" {
		t.Errorf("meta = %+v", m)
	}
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/people", "", func(r *http.Request) {
		r.Header.Set("Origin", "http://localhost:3000")
	})
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("allow origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRateLimit(t *testing.T) {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})
	h := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if fmt.Sprint(codes) != "[200 200 429]" {
		t.Errorf("codes = %v", codes)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("x: %w", models.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", models.ErrServiceUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("x: %w", models.ErrUpstream), http.StatusBadGateway},
		{errRequestBody, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := classify(tt.err).status; got != tt.status {
			t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x00c"); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := sanitizeLogValue(strings.Repeat("x", 200)); len(got) != 100 {
		t.Errorf("len = %d", len(got))
	}
}
