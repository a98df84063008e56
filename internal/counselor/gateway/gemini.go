package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/pathfinder-core/server/internal/core/error"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

// GeminiConfig holds everything needed to build the Gemini-backed gateway.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds every Generate call so a hung upstream degrades to
	// the caller's fallback strategy instead of stalling the session.
	Timeout time.Duration
}

// Gemini generates text through an Eino Gemini chat model.
type Gemini struct {
	chatModel *gemini.ChatModel
	modelName string
	timeout   time.Duration
}

// NewGemini creates the genai client and wraps it in an Eino chat model.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  cfg.Model,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	return &Gemini{
		chatModel: chatModel,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}, nil
}

// Generate runs one prompt through the chat model and returns the text
// content of the reply.
func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := make([]*schema.Message, 0, 2)
	if opts.System != "" {
		messages = append(messages, schema.SystemMessage(opts.System))
	}
	messages = append(messages, schema.UserMessage(prompt))

	var callOpts []einomodel.Option
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, einomodel.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, einomodel.WithTemperature(opts.Temperature))
	}

	out, err := g.chatModel.Generate(ctx, messages, callOpts...)
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("generation failed")
		return "", errx.WrapGateway(err)
	}
	if out == nil {
		return "", errx.New(fmt.Errorf("empty model response"), http.StatusBadGateway, errx.GatewayErrorMessage)
	}

	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		logx.Debug().
			Str("model", g.modelName).
			Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
			Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
			Msg("token usage")
	}

	return out.Content, nil
}

var _ Generator = (*Gemini)(nil)
