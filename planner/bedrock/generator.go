// Package bedrock generates recipes with the Bedrock Converse API, forcing
// the model to answer through a structured submit_recipe tool.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"pantryassistant/planner"
	"pantryassistant/recipe"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

const (
	// defaultModelID is an inference profile ID, not a foundation model ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	// A recipe fits comfortably in 1k tokens.
	defaultMaxTokens = 1024

	// Recipes benefit from some variety, unlike tool routing.
	defaultTemperature = 0.7

	defaultTopP = 0.9

	submitToolName = "submit_recipe"
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type LLMOptions struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// Generator implements planner.Generator on Bedrock.
type Generator struct {
	brc  bedrockRuntimeClient
	opts LLMOptions
}

var _ planner.Generator = (*Generator)(nil)

func NewGenerator(brc bedrockRuntimeClient, opts LLMOptions) *Generator {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Generator{brc: brc, opts: opts}
}

func (g *Generator) Generate(ctx context.Context, prompt string, servings int) (recipe.Recipe, error) {
	slog.Info("GENERATOR: Invoking Bedrock", "model", g.opts.ModelID, "prompt_len", len(prompt))

	spec, err := buildToolSpec(submitToolName, "Submit the suggested recipe.", recipeSchema())
	if err != nil {
		return recipe.Recipe{}, err
	}

	in := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.opts.ModelID),
		System:  []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: planner.SystemPrompt()}},
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(g.opts.MaxTokens),
			Temperature: aws.Float32(g.opts.Temperature),
			TopP:        aws.Float32(g.opts.TopP),
		},
		ToolConfig: &types.ToolConfiguration{
			Tools: []types.Tool{&types.ToolMemberToolSpec{Value: spec}},
			ToolChoice: &types.ToolChoiceMemberTool{
				Value: types.SpecificToolChoice{Name: aws.String(submitToolName)},
			},
		},
	}

	out, err := g.brc.Converse(ctx, in)
	if err != nil {
		slog.Error("GENERATOR: Bedrock invoke failed", "error", err)
		return recipe.Recipe{}, fmt.Errorf("bedrock converse: %w", err)
	}

	if out.Usage != nil {
		slog.Info("GENERATOR: Bedrock invoke succeeded",
			"stop_reason", out.StopReason,
			"input_tokens", aws.ToInt32(out.Usage.InputTokens),
			"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
		)
	}

	switch out.StopReason {
	case types.StopReasonMaxTokens:
		return recipe.Recipe{}, fmt.Errorf("model hit MaxTokens limit; consider increasing MaxTokens")
	case types.StopReasonGuardrailIntervened, types.StopReasonContentFiltered:
		return recipe.Recipe{}, fmt.Errorf("model response blocked by Bedrock safety filters")
	}

	r, err := recipeFromOutput(out)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if r.Servings == 0 {
		r.Servings = servings
	}
	return r, nil
}

// recipeFromOutput prefers the submit_recipe tool input and falls back to a
// JSON text block.
func recipeFromOutput(out *bedrockruntime.ConverseOutput) (recipe.Recipe, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || msg == nil {
		return recipe.Recipe{}, fmt.Errorf("bedrock returned no message")
	}

	var texts []string
	for _, cb := range msg.Value.Content {
		switch b := cb.(type) {
		case *types.ContentBlockMemberToolUse:
			if aws.ToString(b.Value.Name) != submitToolName || b.Value.Input == nil {
				continue
			}
			var input map[string]any
			if err := b.Value.Input.UnmarshalSmithyDocument(&input); err != nil {
				return recipe.Recipe{}, fmt.Errorf("decode %s input: %w", submitToolName, err)
			}
			raw, err := json.Marshal(normalizeInput(input))
			if err != nil {
				return recipe.Recipe{}, fmt.Errorf("encode %s input: %w", submitToolName, err)
			}
			return recipe.ParseJSON(string(raw))
		case *types.ContentBlockMemberText:
			texts = append(texts, b.Value)
		}
	}

	if len(texts) == 0 {
		return recipe.Recipe{}, fmt.Errorf("bedrock returned neither a %s call nor text", submitToolName)
	}
	return recipe.ParseJSON(strings.Join(texts, "\n"))
}

// normalizeInput replaces smithy document numbers with float64 so the value
// re-encodes as plain JSON.
func normalizeInput(val any) any {
	switch v := val.(type) {
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		if err != nil {
			return 0.0
		}
		return f
	case []any:
		for i := range v {
			v[i] = normalizeInput(v[i])
		}
		return v
	case map[string]any:
		for key, inner := range v {
			v[key] = normalizeInput(inner)
		}
		return v
	default:
		return v
	}
}

// buildToolSpec round-trips the schema through JSON so the document encoder
// sees the schema's own MarshalJSON output.
func buildToolSpec(name, description string, schema *jsonschema.Schema) (types.ToolSpecification, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return types.ToolSpecification{}, fmt.Errorf("failed to marshal tool schema for %s: %w", name, err)
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return types.ToolSpecification{}, fmt.Errorf("failed to unmarshal tool schema for %s: %w", name, err)
	}

	return types.ToolSpecification{
		Name:        aws.String(name),
		Description: aws.String(description),
		InputSchema: &types.ToolInputSchemaMemberJson{
			Value: document.NewLazyDocument(schemaMap),
		},
	}, nil
}

func recipeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"servings":    {Type: "integer"},
			"ingredients": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"name":     {Type: "string"},
						"quantity": {Type: "number"},
						"unit":     {Type: "string"},
					},
					Required: []string{"name", "quantity", "unit"},
				},
			},
			"instructions": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"name", "servings", "ingredients", "instructions"},
	}
}
