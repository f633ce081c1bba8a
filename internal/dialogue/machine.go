// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pelismatch/internal/catalog"
	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/fuzzy"
	"github.com/tomtom215/pelismatch/internal/metrics"
	"github.com/tomtom215/pelismatch/internal/models"
)

// Completion reasons reported to listeners and metrics.
const (
	ReasonRecommended    = "recommended"
	ReasonNoResults      = "no_results"
	ReasonDiscoverFailed = "discover_failed"
	ReasonReset          = "reset"
	ReasonRetryLimit     = "retry_limit"
)

// Catalog is what the machine needs from TMDb.
type Catalog interface {
	Discover(ctx context.Context, filters catalog.DiscoverFilters) ([]models.MovieSummary, error)
	RemotePersonCandidates(ctx context.Context, query string, limit int) ([]models.PersonCandidate, error)
}

// Completion describes a conversation that ended.
type Completion struct {
	Token           string
	Reason          string
	Criteria        Criteria
	Recommendations []string
}

// Listener is told about finished conversations. Implementations must not block.
type Listener interface {
	ConversationCompleted(ctx context.Context, c Completion)
}

// Machine runs conversations. It is safe for concurrent use; turns on the
// same token are serialized.
type Machine struct {
	store    SessionStore
	catalog  Catalog
	cfg      config.DialogueConfig
	locks    *keyedMutex
	listener Listener
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMachine creates a machine. Zero config values take the defaults
// (cutoffs reset 80, match 70, none 80, person 70; auto-select 85; six local
// candidates; five remote results; three titles).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMachine(store SessionStore, cat Catalog, cfg config.DialogueConfig, logger zerolog.Logger) *Machine {
	return &Machine{
		store:   store,
		catalog: cat,
		cfg:     withDefaults(cfg),
		locks:   newKeyedMutex(),
		now:     time.Now,
		logger:  logger.With().Str("component", "dialogue").Logger(),
	}
}

// SetListener installs the completion listener.
func (m *Machine) SetListener(l Listener) {
	m.listener = l
}

func withDefaults(cfg config.DialogueConfig) config.DialogueConfig {
	if cfg.ResetCutoff <= 0 {
		cfg.ResetCutoff = 80
	}
	if cfg.MatchCutoff <= 0 {
		cfg.MatchCutoff = 70
	}
	if cfg.NoneCutoff <= 0 {
		cfg.NoneCutoff = 80
	}
	if cfg.PersonCutoff <= 0 {
		cfg.PersonCutoff = 70
	}
	if cfg.AutoSelectScore <= 0 {
		cfg.AutoSelectScore = 85
	}
	if cfg.MaxLocalCandidates <= 0 {
		cfg.MaxLocalCandidates = 6
	}
	if cfg.RemotePersonLimit <= 0 {
		cfg.RemotePersonLimit = catalog.DefaultPersonLimit
	}
	if cfg.RecommendationCount <= 0 {
		cfg.RecommendationCount = 3
	}
	return cfg
}

// turn is the working state of one Handle call.
type turn struct {
	token   string
	message string
	session *Session

	// cleared drops the session instead of saving it.
	cleared bool
	reason  string
}

// Handle processes one user message. Errors come only from the session store;
// unmatched input is answered with a re-prompt.
func (m *Machine) Handle(ctx context.Context, token, message string) (*Reply, error) {
	if token == "" {
		return nil, fmt.Errorf("session token is required: %w", models.ErrValidation)
	}

	unlock := m.locks.Lock(token)
	defer unlock()

	session, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		session = NewSession()
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	t := &turn{token: token, message: message, session: session}
	from := session.State
	reply := m.step(ctx, t)

	if t.cleared {
		reply.State = StateStart
		if err := m.store.Clear(ctx, token); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
	} else {
		reply.State = t.session.State
		t.session.UpdatedAt = m.now()
		if err := m.store.Put(ctx, token, t.session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	metrics.RecordDialogueTurn(string(from), string(reply.State))
	if t.reason != "" {
		metrics.DialogueCompletedTotal.WithLabelValues(t.reason).Inc()
	}
	m.logger.Debug().
		Str("from", string(from)).
		Str("to", string(reply.State)).
		Str("reason", t.reason).
		Msg("dialogue turn")
	return reply, nil
}

func (m *Machine) step(ctx context.Context, t *turn) *Reply {
	if _, ok := fuzzy.BestMatch(t.message, resetWords, m.cfg.ResetCutoff); ok {
		if t.session.State == StateStart {
			t.cleared = true
		} else {
			m.finish(ctx, t, ReasonReset, nil)
		}
		return &Reply{Text: msgReset}
	}

	switch t.session.State {
	case StateStart:
		t.session = NewSession()
		t.session.State = StateGenre
		return &Reply{Text: msgAskGenre}
	case StateGenre:
		return m.onGenre(ctx, t)
	case StateEra:
		return m.onEra(ctx, t)
	case StatePerson:
		return m.onPerson(ctx, t)
	case StateConfirmPerson:
		return m.onConfirmPerson(ctx, t)
	default:
		m.logger.Warn().Str("state", string(t.session.State)).Msg("unknown dialogue state, restarting")
		t.cleared = true
		return &Reply{Text: msgReset}
	}
}

func (m *Machine) onGenre(ctx context.Context, t *turn) *Reply {
	entry, _, ok := genres.Lookup(t.message, m.cfg.MatchCutoff)
	if !ok {
		return m.retry(ctx, t, msgGenreUnknown)
	}
	t.session.Criteria.GenreID = entry.Value.ID
	t.session.Criteria.Genre = entry.Value.Name
	m.advance(t, StateEra)
	return &Reply{Text: msgAskEra(entry.Value.Name)}
}

func (m *Machine) onEra(ctx context.Context, t *turn) *Reply {
	entry, _, ok := eras.Lookup(t.message, m.cfg.MatchCutoff)
	if !ok {
		return m.retry(ctx, t, msgEraUnknown)
	}
	era := entry.Value
	t.session.Criteria.Era = &era
	m.advance(t, StatePerson)
	return &Reply{Text: msgAskPerson(entry.Label)}
}

func (m *Machine) onPerson(ctx context.Context, t *turn) *Reply {
	if m.isNone(t.message) {
		return m.recommend(ctx, t)
	}

	local, scores := people.LookupMany(t.message, m.cfg.PersonCutoff, m.cfg.MaxLocalCandidates)
	candidates := make([]models.PersonCandidate, len(local))
	for i, e := range local {
		candidates[i] = models.PersonCandidate{ID: e.Value.ID, Label: e.Value.Name, Kind: e.Value.Kind, Score: scores[i]}
	}

	switch {
	case len(candidates) == 1:
		return m.selectPerson(ctx, t, candidates[0])
	case len(candidates) > 1:
		return m.confirm(t, candidates, msgChooseLocal)
	}

	remote, err := m.catalog.RemotePersonCandidates(ctx, t.message, m.cfg.RemotePersonLimit)
	if err != nil {
		m.logger.Warn().Err(err).Str("query", t.message).Msg("remote person search failed")
		remote = nil
	}
	if len(remote) == 0 {
		return m.retry(ctx, t, msgPersonNotFound(t.message))
	}
	if remote[0].Score >= m.cfg.AutoSelectScore {
		return m.selectPerson(ctx, t, remote[0])
	}
	return m.confirm(t, remote, msgChooseRemote)
}

func (m *Machine) onConfirmPerson(ctx context.Context, t *turn) *Reply {
	if m.isNone(t.message) {
		return m.recommend(ctx, t)
	}

	id, err := strconv.Atoi(strings.TrimSpace(t.message))
	if err != nil {
		return m.retry(ctx, t, msgNeedNumericID)
	}
	if _, ok := t.session.hasCandidate(id); !ok {
		return m.retry(ctx, t, msgInvalidID)
	}

	t.session.Criteria.PersonID = id
	reply := m.recommend(ctx, t)
	reply.ConfirmedPersonID = id
	return reply
}

func (m *Machine) selectPerson(ctx context.Context, t *turn, c models.PersonCandidate) *Reply {
	t.session.Criteria.PersonID = c.ID
	reply := m.recommend(ctx, t)
	reply.SelectedPerson = &c
	return reply
}

func (m *Machine) confirm(t *turn, candidates []models.PersonCandidate, prompt string) *Reply {
	t.session.Candidates = candidates
	m.advance(t, StateConfirmPerson)
	return &Reply{Text: prompt, PendingCandidates: candidates}
}

// recommend is the terminal action: one discover call with the collected
// criteria, then the session is cleared.
func (m *Machine) recommend(ctx context.Context, t *turn) *Reply {
	criteria := t.session.Criteria
	movies, err := m.catalog.Discover(ctx, criteria.Filters())
	if err != nil {
		m.logger.Warn().Err(err).Interface("criteria", criteria).Msg("discover failed")
		m.finish(ctx, t, ReasonDiscoverFailed, nil)
		return &Reply{Text: msgDiscoverFailed, Criteria: &criteria}
	}

	n := min(m.cfg.RecommendationCount, len(movies))
	titles := make([]string, 0, n)
	for _, mv := range movies[:n] {
		titles = append(titles, mv.Title)
	}
	if len(titles) == 0 {
		m.finish(ctx, t, ReasonNoResults, nil)
		return &Reply{Text: msgNoResults, Criteria: &criteria}
	}

	m.finish(ctx, t, ReasonRecommended, titles)
	return &Reply{Text: msgRecommendations(titles), Recommendations: titles, Criteria: &criteria}
}

// retry records an unmatched turn and re-prompts, restarting the conversation
// once the configured ceiling is reached.
func (m *Machine) retry(ctx context.Context, t *turn, prompt string) *Reply {
	t.session.Retries++
	if m.cfg.MaxRetries > 0 && t.session.Retries >= m.cfg.MaxRetries {
		m.finish(ctx, t, ReasonRetryLimit, nil)
		return &Reply{Text: msgRetryLimit}
	}
	return &Reply{Text: prompt}
}

func (m *Machine) advance(t *turn, next State) {
	t.session.State = next
	t.session.Retries = 0
}

func (m *Machine) finish(ctx context.Context, t *turn, reason string, titles []string) {
	t.cleared = true
	t.reason = reason
	if m.listener != nil {
		m.listener.ConversationCompleted(ctx, Completion{
			Token:           t.token,
			Reason:          reason,
			Criteria:        t.session.Criteria,
			Recommendations: titles,
		})
	}
}

func (m *Machine) isNone(message string) bool {
	_, ok := fuzzy.BestMatch(message, noneWords, m.cfg.NoneCutoff)
	return ok
}
