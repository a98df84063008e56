package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/pathfinder-core/server/internal/counselor/extract"
	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/history"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
	"github.com/pathfinder-core/server/internal/counselor/recommend"
	"github.com/pathfinder-core/server/internal/counselor/session"
	"github.com/pathfinder-core/server/internal/core"
	logx "github.com/pathfinder-core/server/pkg/logger"
	pkgredis "github.com/pathfinder-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the counselor service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port int    `envconfig:"PORT" default:"8080"`

	// LLM provider; an empty key runs the service in deterministic
	// fallback mode with no outbound calls.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Counselor configs
	Extractor model.ExtractorModelConfig
	Response  model.ResponseModelConfig
	Counselor model.CounselorConfig
	History   model.HistoryConfig
}

// app wires all counselor collaborators together for the serve and chat
// commands.
type app struct {
	cfg        AppConfig
	newSession func(id string) *session.Session
}

func buildApp(ctx context.Context) (*app, error) {
	if err := godotenv.Load(".env"); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Env)})

	limiter := ratelimit.New(cfg.Counselor.RequestsPerMinute)
	timeout := time.Duration(cfg.Counselor.GatewayTimeout) * time.Second

	// One gateway per concern, mirroring the extraction/response model
	// split: extraction wants a cold model, responses a warmer one.
	var extractorGen, responseGen gateway.Generator
	if cfg.APIKey != "" {
		eg, err := gateway.NewGemini(ctx, gateway.GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Extractor.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		rg, err := gateway.NewGemini(ctx, gateway.GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Response.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		extractorGen, responseGen = eg, rg
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set, running with deterministic fallbacks only")
	}

	var hist model.HistoryRepository
	if cfg.History.Driver == "redis" {
		var redisCfg pkgredis.Config
		if err := envconfig.Process("redis", &redisCfg); err != nil {
			return nil, fmt.Errorf("process redis config: %w", err)
		}
		client, err := redisCfg.New()
		if err != nil {
			return nil, fmt.Errorf("initialise redis client: %w", err)
		}
		hist, err = history.New(cfg.History, cfg.Counselor.MaxHistory, client)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		hist, err = history.New(cfg.History, cfg.Counselor.MaxHistory, nil)
		if err != nil {
			return nil, err
		}
	}

	extractor := extract.New(extractorGen, limiter, cfg.Extractor)
	recommender := recommend.New(responseGen, limiter, cfg.Response)

	deps := session.Deps{
		History:     hist,
		Extractor:   extractor,
		Recommender: recommender,
		Gateway:     responseGen,
		Limiter:     limiter,
		Response:    cfg.Response,
	}

	return &app{
		cfg: cfg,
		newSession: func(id string) *session.Session {
			return session.New(id, cfg.Counselor, deps)
		},
	}, nil
}
