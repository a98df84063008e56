package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/prompts"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

const extractorSystemPrompt = "You are an expert at extracting structured " +
	"information from natural language. Always return valid JSON."

// Extractor turns one free-text student message into a partial profile
// delta. With a gateway it asks the model for structured JSON; without one,
// or when the gateway fails, it falls back to deterministic keyword and
// regex extraction. Extract never returns an error: the worst case is an
// empty delta.
type Extractor struct {
	gen     gateway.Generator
	limiter *ratelimit.Limiter
	cfg     model.ExtractorModelConfig
}

// New creates an Extractor. A nil generator selects the fallback strategy
// for every message.
func New(gen gateway.Generator, limiter *ratelimit.Limiter, cfg model.ExtractorModelConfig) *Extractor {
	return &Extractor{gen: gen, limiter: limiter, cfg: cfg}
}

// Extract analyses the message and returns whatever profile information it
// carries.
func (e *Extractor) Extract(ctx context.Context, message string) *model.ProfileDelta {
	if strings.TrimSpace(message) == "" {
		return &model.ProfileDelta{}
	}
	if e.gen == nil {
		return Fallback(message)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		logx.Warn().Err(err).Msg("rate limiter interrupted, using fallback extraction")
		return Fallback(message)
	}

	prompt, err := prompts.RenderExtraction(ctx, message)
	if err != nil {
		logx.Warn().Err(err).Msg("extraction prompt render failed, using fallback extraction")
		return Fallback(message)
	}

	raw, err := e.gen.Generate(ctx, prompt, gateway.Options{
		System:      extractorSystemPrompt,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("extraction generation failed, using fallback extraction")
		return Fallback(message)
	}

	return parseDelta(raw)
}

// parseDelta locates the first brace-delimited JSON object in the model
// output and parses it into a delta. Absent or malformed JSON yields an
// empty delta rather than an error.
func parseDelta(raw string) *model.ProfileDelta {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		logx.Warn().Msg("no JSON object found in extraction response")
		return &model.ProfileDelta{}
	}

	var delta model.ProfileDelta
	if err := json.Unmarshal([]byte(raw[start:end+1]), &delta); err != nil {
		logx.Warn().Err(err).Msg("failed to parse extraction JSON")
		return &model.ProfileDelta{}
	}
	return &delta
}
