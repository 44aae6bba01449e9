package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"

	"pantryassistant"
	"pantryassistant/internal/app"
	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/tools"
)

// Params is either a command ({"text": ...}) or a tool call
// ({"tool": ..., "input": {...}}).
type Params struct {
	Text  string         `json:"text,omitempty"`
	Tool  string         `json:"tool,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

type Results struct {
	Response *interpreter.Response `json:"response,omitempty"`
	Output   map[string]any        `json:"output,omitempty"`
}

// The inventory lives in memory for the lifetime of the execution
// environment, seeded once from S3 on the first invocation.
var (
	once     sync.Once
	assembly *app.App
	setupErr error
	flush    = func(context.Context) error { return nil }
)

func setup(ctx context.Context) (*app.App, error) {
	once.Do(func() {
		cfg, err := pantryassistant.LoadConfig()
		if err != nil {
			setupErr = err
			return
		}

		store := inventory.NewMemoryStore()
		seed, err := app.NewSeedState(ctx, cfg.Assistant)
		if err != nil {
			setupErr = err
			return
		}
		if _, err := app.SeedInventory(ctx, store, seed, false); err != nil {
			setupErr = err
			return
		}

		opts := app.Options{
			Store:   store,
			Journal: pantryassistant.NewStdoutCommandJournal(),
		}
		if cfg.Server.OtelEnabled {
			// Providers outlive a single invocation; spans are flushed
			// before each response instead of shutting down.
			tracerProvider, meterProvider, _, err := pantryassistant.InitOtel(ctx)
			if err != nil {
				setupErr = err
				return
			}
			opts.TracerProvider = tracerProvider
			opts.MeterProvider = meterProvider
			flush = func(ctx context.Context) error {
				return errors.Join(tracerProvider.ForceFlush(ctx), meterProvider.ForceFlush(ctx))
			}
		}

		assembly, setupErr = app.New(ctx, cfg, opts)
	})
	return assembly, setupErr
}

func handle(ctx context.Context, params Params) (Results, error) {
	a, err := setup(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize", "error", err)
		return Results{}, err
	}

	switch {
	case params.Tool != "":
		out, err := a.Tools.Run(ctx, tools.Call{Name: params.Tool, Input: params.Input})
		if err != nil {
			slog.Error("RESULT: Tool call failed", "tool", params.Tool, "error", err)
			return Results{}, err
		}
		return Results{Output: out}, nil
	case params.Text != "":
		resp := a.Commands.Process(ctx, params.Text)
		return Results{Response: &resp}, nil
	default:
		return Results{}, errors.New("event must carry either text or tool")
	}
}

func main() {
	lambda.Start(func(ctx context.Context, params Params) (Results, error) {
		res, err := handle(ctx, params)
		if ferr := flush(ctx); ferr != nil {
			slog.Error("SETUP: Failed to flush telemetry", "error", ferr)
		}
		if err != nil {
			return Results{}, fmt.Errorf("pantry assistant: %w", err)
		}
		return res, nil
	})
}
