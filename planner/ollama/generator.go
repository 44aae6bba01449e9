// Package ollama generates recipes with a local Ollama model over its chat
// API.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pantryassistant/planner"
	"pantryassistant/recipe"

	"github.com/go-resty/resty/v2"
)

type options struct {
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumCtx        int     `json:"num_ctx,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Format   string    `json:"format,omitempty"`
	Options  options   `json:"options,omitempty"`
}

type wireResponse struct {
	Message message `json:"message"`
}

type GeneratorOpts struct {
	BaseEndpoint string
	ModelID      string
	Timeout      time.Duration
}

// Generator implements planner.Generator against an Ollama server.
type Generator struct {
	client  *resty.Client
	model   string
	options options
}

var _ planner.Generator = (*Generator)(nil)

func NewGenerator(opts GeneratorOpts) (*Generator, error) {
	if opts.BaseEndpoint == "" {
		return nil, fmt.Errorf("ollama base endpoint is required")
	}
	if opts.ModelID == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Minute
	}

	client := resty.New().
		SetBaseURL(opts.BaseEndpoint).
		SetHeader("Content-Type", "application/json").
		SetTimeout(opts.Timeout)

	return &Generator{
		client: client,
		model:  opts.ModelID,
		options: options{
			Temperature:   0.7,
			TopP:          0.9,
			RepeatPenalty: 1.05,
			NumCtx:        8192,
		},
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string, servings int) (recipe.Recipe, error) {
	slog.Info("GENERATOR: Invoking Ollama", "model", g.model, "prompt_len", len(prompt))

	req := wireRequest{
		Model: g.model,
		Messages: []message{
			{Role: "system", Content: planner.SystemPrompt()},
			{Role: "user", Content: prompt},
		},
		Stream:  false,
		Format:  "json",
		Options: g.options,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/chat")
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to send request to Ollama: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return recipe.Recipe{}, fmt.Errorf("ollama returned %s: %s", resp.Status(), resp.String())
	}

	var wr wireResponse
	if err := json.Unmarshal(resp.Body(), &wr); err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to parse Ollama response: %w", err)
	}

	r, err := recipe.ParseJSON(wr.Message.Content)
	if err != nil {
		slog.Warn("GENERATOR: Ollama returned unusable recipe", "content", wr.Message.Content)
		return recipe.Recipe{}, err
	}
	if r.Servings == 0 {
		r.Servings = servings
	}
	return r, nil
}
