package recommend

import (
	"context"

	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/prompts"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

const recommenderSystemPrompt = "You are an expert career counselor providing " +
	"personalized, encouraging, and realistic career recommendations."

// Generator produces career recommendations from a profile, through the
// model gateway when available and through the rule-based matcher otherwise.
type Generator struct {
	gen     gateway.Generator
	limiter *ratelimit.Limiter
	cfg     model.ResponseModelConfig
}

// New creates a Generator. A nil gateway selects the rule-based fallback.
func New(gen gateway.Generator, limiter *ratelimit.Limiter, cfg model.ResponseModelConfig) *Generator {
	return &Generator{gen: gen, limiter: limiter, cfg: cfg}
}

// Recommend returns formatted recommendation text for the profile. It never
// fails: any gateway problem degrades to the rule table.
func (g *Generator) Recommend(ctx context.Context, p *model.StudentProfile) string {
	if g.gen == nil {
		return Format(Fallback(p))
	}

	if err := g.limiter.Wait(ctx); err != nil {
		logx.Warn().Err(err).Msg("rate limiter interrupted, using rule-based recommendations")
		return Format(Fallback(p))
	}

	prompt, err := prompts.RenderRecommendations(ctx, p)
	if err != nil {
		logx.Warn().Err(err).Msg("recommendation prompt render failed, using rule-based recommendations")
		return Format(Fallback(p))
	}

	text, err := g.gen.Generate(ctx, prompt, gateway.Options{
		System:      recommenderSystemPrompt,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("recommendation generation failed, using rule-based recommendations")
		return Format(Fallback(p))
	}
	return text
}
