package session

import (
	"context"
	"strings"
	"time"

	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/prompts"
)

func gatewayOptions(cfg model.ResponseModelConfig, system string) gateway.Options {
	return gateway.Options{
		System:      system,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// careerQuestionKeywords flags an explicit request for career guidance.
var careerQuestionKeywords = []string{
	"career", "job", "profession", "recommend", "suggestion",
	"what should i", "advice", "path", "future", "work",
}

func isCareerQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range careerQuestionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

const greetingText = `Hi there! I'm your career counselor, and I'm really excited to help you explore potential career paths that might be perfect for you.

I'd love to learn about what makes you tick! Could you start by telling me:
- What subjects or activities do you genuinely enjoy?
- What do you like to do in your free time?
- Are there any particular strengths you've noticed about yourself?

There are no wrong answers here - I'm just trying to understand what might make you happy and successful in your future career. What would you like to share first?`

const clarifyFallbackText = "I'd love to learn more about you! What are some " +
	"activities that you really enjoy doing, and what school subjects do you " +
	"find most interesting or easiest?"

const discussFallbackText = "That's a great question! Tell me more about what " +
	"you'd like to know - whether it's about a specific career, the education " +
	"it needs, or what the day-to-day work looks like."

const fallbackText = "I'm having a bit of trouble processing that right now. " +
	"Could you tell me more about what interests you or what you enjoy doing? " +
	"I'm here to help you explore career options, so anything you share about " +
	"your favorite activities, subjects, or goals will be really helpful!"

// ProcessMessage runs one turn of the conversation: append to history,
// extract, merge, decide, respond. It never returns an error to its caller;
// any internal failure becomes a fallback response flagged in metadata.
func (s *Session) ProcessMessage(ctx context.Context, message string) (resp *model.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("panic recovered while processing message")
			resp = s.fallbackResponse()
		}
	}()

	s.log.Info().Str("state", s.state.String()).Msg("processing message")

	s.appendTurn(ctx, model.RoleStudent, message)
	resp = s.respond(ctx, message)
	s.appendTurn(ctx, model.RoleCounselor, resp.Text)

	return resp
}

// respond evaluates the transition policy once, in fixed precedence order.
func (s *Session) respond(ctx context.Context, message string) *model.Response {
	// a brand new session always greets first, no extraction needed on
	// the triggering message
	if s.state == model.StateGreeting {
		s.state = model.StateGatheringInfo
		return &model.Response{
			Kind: model.KindGreeting,
			Text: greetingText,
			Metadata: map[string]any{
				"profile_completeness": 0,
				"next_expected":        "student_interests",
			},
		}
	}

	snapshot := s.profile.Snapshot()
	delta := s.deps.Extractor.Extract(ctx, message)
	s.profile.Merge(delta)
	changed := s.profile.ChangedSince(snapshot)

	careerQuestion := isCareerQuestion(message)
	if careerQuestion || changed {
		s.noNewInfo = 0
	} else {
		s.noNewInfo++
	}

	completeness := s.profile.Completeness()
	s.log.Debug().
		Float64("completeness", completeness).
		Bool("changed", changed).
		Bool("career_question", careerQuestion).
		Int("no_new_info", s.noNewInfo).
		Msg("transition inputs")

	switch {
	case careerQuestion && completeness > 0:
		return s.recommendResponse(ctx)
	case s.state == model.StateDiscussing:
		return s.discussResponse(ctx, message)
	case completeness >= s.cfg.CompletenessThreshold && !s.recsGiven:
		return s.recommendResponse(ctx)
	case s.noNewInfo > s.cfg.Patience:
		s.noNewInfo = 0
		return s.recommendResponse(ctx)
	default:
		return s.clarifyResponse(ctx)
	}
}

// recommendResponse transitions through Recommending into Discussing and
// marks recommendations as given, suppressing further unsolicited bursts.
func (s *Session) recommendResponse(ctx context.Context) *model.Response {
	s.state = model.StateRecommending
	text := s.deps.Recommender.Recommend(ctx, s.profile)
	s.state = model.StateDiscussing
	s.recsGiven = true

	cats := s.profile.DominantCategories()
	dominant := make([]string, 0, len(cats))
	for _, c := range cats {
		dominant = append(dominant, string(c))
	}
	return &model.Response{
		Kind: model.KindRecommendations,
		Text: text,
		Metadata: map[string]any{
			"profile_completeness": int(s.profile.Completeness() * 100),
			"dominant_interests":   dominant,
			"student_profile":      s.profile.Summary(),
		},
	}
}

// clarifyResponse asks 2-3 questions targeted at the emptiest profile areas.
func (s *Session) clarifyResponse(ctx context.Context) *model.Response {
	s.state = model.StateClarifying

	text := s.generateClarifying(ctx)
	s.rememberQuestion(text)

	return &model.Response{
		Kind: model.KindQuestions,
		Text: text,
		Metadata: map[string]any{
			"profile_completeness": int(s.profile.Completeness() * 100),
			"missing_areas":        s.profile.MissingAreas(),
		},
	}
}

func (s *Session) generateClarifying(ctx context.Context) string {
	if s.deps.Gateway == nil {
		return clarifyFallbackText
	}
	if err := s.deps.Limiter.Wait(ctx); err != nil {
		s.log.Warn().Err(err).Msg("rate limiter interrupted, using canned clarifying question")
		return clarifyFallbackText
	}
	prompt, err := prompts.RenderClarifying(ctx, s.profile, s.asked)
	if err != nil {
		s.log.Warn().Err(err).Msg("clarify prompt render failed, using canned clarifying question")
		return clarifyFallbackText
	}
	text, err := s.deps.Gateway.Generate(ctx, prompt, gatewayOptions(s.deps.Response,
		"You are a friendly, encouraging career counselor asking thoughtful questions."))
	if err != nil {
		s.log.Warn().Err(err).Msg("clarifying generation failed, using canned clarifying question")
		return clarifyFallbackText
	}
	return text
}

// discussResponse keeps the conversation going after recommendations without
// forcing a state change.
func (s *Session) discussResponse(ctx context.Context, message string) *model.Response {
	return &model.Response{
		Kind: model.KindDiscussion,
		Text: s.generateDiscussion(ctx, message),
		Metadata: map[string]any{
			"profile_completeness": int(s.profile.Completeness() * 100),
		},
	}
}

const discussContextTurns = 6

func (s *Session) generateDiscussion(ctx context.Context, message string) string {
	if s.deps.Gateway == nil {
		return discussFallbackText
	}
	if err := s.deps.Limiter.Wait(ctx); err != nil {
		s.log.Warn().Err(err).Msg("rate limiter interrupted, using canned discussion reply")
		return discussFallbackText
	}
	turns, err := s.deps.History.Load(ctx, s.id)
	if err != nil {
		s.log.Warn().Err(err).Msg("history load failed, continuing without context")
		turns = nil
	}
	if len(turns) > discussContextTurns {
		turns = turns[len(turns)-discussContextTurns:]
	}
	prompt, err := prompts.RenderDiscussion(ctx, s.profile, turns, message)
	if err != nil {
		s.log.Warn().Err(err).Msg("discussion prompt render failed, using canned discussion reply")
		return discussFallbackText
	}
	text, err := s.deps.Gateway.Generate(ctx, prompt, gatewayOptions(s.deps.Response,
		"You are an encouraging career counselor discussing career options with a student."))
	if err != nil {
		s.log.Warn().Err(err).Msg("discussion generation failed, using canned discussion reply")
		return discussFallbackText
	}
	return text
}

func (s *Session) fallbackResponse() *model.Response {
	return &model.Response{
		Kind: model.KindFallback,
		Text: fallbackText,
		Metadata: map[string]any{
			"error":                true,
			"profile_completeness": int(s.profile.Completeness() * 100),
		},
	}
}

// rememberQuestion records asked questions so later prompts can avoid
// repeating them. The list is kept small; only recent questions matter.
const maxRememberedQuestions = 10

func (s *Session) rememberQuestion(q string) {
	s.asked = append(s.asked, q)
	if len(s.asked) > maxRememberedQuestions {
		s.asked = s.asked[len(s.asked)-maxRememberedQuestions:]
	}
}

// appendTurn records a turn; history failures are logged but never interrupt
// the conversation.
func (s *Session) appendTurn(ctx context.Context, role model.Role, content string) {
	err := s.deps.History.Append(ctx, s.id, model.Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		State:     s.state,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to append turn to history")
	}
}
