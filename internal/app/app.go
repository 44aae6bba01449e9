// Package app assembles the assistant's services from configuration. Every
// entrypoint under cmd/ builds on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"pantryassistant"
	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/planner"
	"pantryassistant/planner/bedrock"
	"pantryassistant/planner/mock"
	"pantryassistant/planner/ollama"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
	"pantryassistant/slack"
	"pantryassistant/storage"
	"pantryassistant/tools"
)

const slackTimeout = 10 * time.Second

// Options carries what differs between entrypoints. Nil providers disable
// instrumentation; a nil Journal discards command logs.
type Options struct {
	Store          inventory.Store
	Journal        pantryassistant.CommandJournal
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// App holds the wired services.
type App struct {
	Inventory *inventory.Service
	Planner   *planner.Service
	Shopping  *shopping.Service
	Commands  interpreter.Processor
	Tools     *tools.Registry
	// Notifier is nil when no Slack webhook is configured.
	Notifier *slack.Notifier
}

func New(ctx context.Context, cfg pantryassistant.Config, opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("inventory store is required")
	}

	gen, err := NewGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cache, err := NewRecipeCache(ctx, cfg.Assistant)
	if err != nil {
		return nil, err
	}

	inv := inventory.NewService(opts.Store)

	var engine recipe.Applier = recipe.NewEngine(inv)
	if opts.TracerProvider != nil && opts.MeterProvider != nil {
		engine = recipe.NewInstrumentedEngine(engine,
			opts.TracerProvider.Tracer(pantryassistant.TracerNameEngine),
			opts.MeterProvider.Meter(pantryassistant.MeterName))
	}

	plan := planner.NewService(inv, gen, cache, engine)
	shop := shopping.NewService(inv, cfg.Assistant.DefaultThreshold)

	interpreterOpts := []interpreter.Option{interpreter.WithStrictMatching(cfg.Assistant.StrictMatching)}
	if opts.Journal != nil {
		interpreterOpts = append(interpreterOpts, interpreter.WithJournal(opts.Journal))
	}
	var commands interpreter.Processor = interpreter.New(inv, plan, shop, interpreterOpts...)
	if opts.TracerProvider != nil && opts.MeterProvider != nil {
		commands = interpreter.NewInstrumentedProcessor(commands,
			opts.TracerProvider.Tracer(pantryassistant.TracerNameInterpreter),
			opts.MeterProvider.Meter(pantryassistant.MeterName))
	}

	registry, err := tools.NewRegistry(tools.Dependencies{
		Inventory: inv,
		Planner:   plan,
		Shopping:  shop,
		Commands:  commands,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}

	var notifier *slack.Notifier
	if cfg.Assistant.SlackWebhookURL != "" {
		var httpClient pantryassistant.HTTPClient = &http.Client{Timeout: slackTimeout}
		notifier = slack.NewNotifier(slack.NewClient(cfg.Assistant.SlackWebhookURL, httpClient), cfg.Assistant.SlackChannel)
		slog.Info("SETUP: Slack notifications enabled", "channel", cfg.Assistant.SlackChannel)
	}

	return &App{
		Inventory: inv,
		Planner:   plan,
		Shopping:  shop,
		Commands:  commands,
		Tools:     registry,
		Notifier:  notifier,
	}, nil
}

// NewGenerator picks the recipe generator named by PLANNER.
func NewGenerator(ctx context.Context, cfg pantryassistant.Config) (planner.Generator, error) {
	switch cfg.Assistant.Planner {
	case "", "mock":
		slog.Info("SETUP: Using mock recipe generator")
		return mock.NewGenerator(), nil
	case "bedrock":
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Info("SETUP: Using Bedrock recipe generator", "model", cfg.Model.ModelID)
		return bedrock.NewGenerator(bedrockruntime.NewFromConfig(awsCfg), bedrock.LLMOptions{
			ModelID:     cfg.Model.ModelID,
			MaxTokens:   cfg.Model.MaxTokens,
			Temperature: cfg.Model.Temperature,
			TopP:        cfg.Model.TopP,
		}), nil
	case "ollama":
		slog.Info("SETUP: Using Ollama recipe generator", "endpoint", cfg.Assistant.BaseOllamaEndpoint, "model", cfg.Assistant.OllamaModel)
		return ollama.NewGenerator(ollama.GeneratorOpts{
			BaseEndpoint: cfg.Assistant.BaseOllamaEndpoint,
			ModelID:      cfg.Assistant.OllamaModel,
		})
	default:
		return nil, fmt.Errorf("unknown planner %q: want mock, bedrock or ollama", cfg.Assistant.Planner)
	}
}

// NewRecipeCache uses Redis when REDIS_ADDR is set and a capped in-memory
// cache otherwise.
func NewRecipeCache(ctx context.Context, cfg pantryassistant.AssistantConfig) (recipe.Cache, error) {
	if cfg.RedisAddr == "" {
		return recipe.NewMemoryCache(cfg.RecipeCacheSize, cfg.RecipeCacheTTL), nil
	}
	client, err := recipe.DialRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	slog.Info("SETUP: Using Redis recipe cache", "addr", cfg.RedisAddr, "ttl", cfg.RecipeCacheTTL)
	return recipe.NewRedisCache(client, cfg.RecipeCacheTTL), nil
}

// NewSeedState returns the configured seed source: S3 when a bucket is set,
// then a local file, else nil for the built-in seed.
func NewSeedState(ctx context.Context, cfg pantryassistant.AssistantConfig) (storage.SeedState, error) {
	switch {
	case cfg.SeedS3Bucket != "":
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3SeedState(s3.NewFromConfig(awsCfg), cfg.SeedS3Bucket, cfg.SeedS3Key), nil
	case cfg.SeedPath != "":
		return storage.NewFileSeedState(cfg.SeedPath), nil
	default:
		return nil, nil
	}
}

// SeedInventory loads items from state, or the built-in seed when state is
// nil, and writes them to an empty store. force overwrites a non-empty one.
func SeedInventory(ctx context.Context, store inventory.Store, state storage.SeedState, force bool) (int, error) {
	items := storage.DefaultSeed()
	if state != nil {
		loaded, err := storage.LoadSeed(ctx, state)
		if err != nil {
			return 0, err
		}
		items = loaded
	}

	n, err := inventory.Seed(ctx, store, items, force)
	if err != nil {
		return n, fmt.Errorf("failed to seed inventory: %w", err)
	}
	return n, nil
}

// OpenJournal opens a file journal at path, creating its directory. An empty
// path yields a journal that discards entries. The cleanup func flushes the
// journal and closes the file.
func OpenJournal(path string) (pantryassistant.CommandJournal, func() error, error) {
	if path == "" {
		return pantryassistant.NewNoOpCommandJournal(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	journal := pantryassistant.NewFileCommandJournal(f)
	cleanup := func() error {
		return errors.Join(journal.Flush(), f.Close())
	}
	return journal, cleanup, nil
}
