// Package session owns the per-conversation state machine that decides,
// after every student message, whether to greet, ask clarifying questions,
// emit career recommendations, or free-discuss.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pathfinder-core/server/internal/counselor/extract"
	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
	"github.com/pathfinder-core/server/internal/counselor/recommend"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

// Deps aggregates the collaborators a session needs. Gateway may be nil, in
// which case every component runs its deterministic fallback strategy.
type Deps struct {
	History     model.HistoryRepository
	Extractor   *extract.Extractor
	Recommender *recommend.Generator
	Gateway     gateway.Generator
	Limiter     *ratelimit.Limiter
	Response    model.ResponseModelConfig
}

// Session is one counseling conversation: a profile, a conversation state,
// bounded history, and the counters driving the transition policy. A session
// processes messages strictly sequentially; the mutex serializes callers.
type Session struct {
	id   string
	cfg  model.CounselorConfig
	deps Deps
	log  zerolog.Logger

	mu        sync.Mutex
	profile   *model.StudentProfile
	state     model.State
	noNewInfo int
	recsGiven bool
	asked     []string
}

// New creates a session in the Greeting state with an empty profile.
func New(id string, cfg model.CounselorConfig, deps Deps) *Session {
	return &Session{
		id:      id,
		cfg:     cfg,
		deps:    deps,
		log:     logx.Component("session").With().Str("sessionID", id).Logger(),
		profile: model.NewStudentProfile(),
		state:   model.StateGreeting,
	}
}

// Reset clears all session state: history, profile, conversation state,
// counters, and the recommendations-given flag.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deps.History.Clear(ctx, s.id); err != nil {
		return err
	}
	s.profile = model.NewStudentProfile()
	s.state = model.StateGreeting
	s.noNewInfo = 0
	s.recsGiven = false
	s.asked = nil
	s.log.Info().Msg("session reset")
	return nil
}

// Status reports the observable state of the session.
func (s *Session) Status(ctx context.Context) (model.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.deps.History.Count(ctx, s.id)
	if err != nil {
		return model.SessionStatus{}, err
	}
	return model.SessionStatus{
		State:                s.state,
		Completeness:         s.profile.Completeness(),
		HistoryLength:        n,
		RecommendationsGiven: s.recsGiven,
		Profile:              s.profile.Summary(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}
