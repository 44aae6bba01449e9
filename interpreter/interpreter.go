// Package interpreter turns free-form household commands into inventory,
// recipe and shopping operations and phrases the outcome as a reply.
package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"pantryassistant"
	"pantryassistant/inventory"
	"pantryassistant/parse"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
)

// State is a step of command interpretation. Process always ends in one of
// Succeeded, ClarificationNeeded or OperationFailed.
type State int

const (
	Classifying State = iota
	ExtractingSlots
	ExtractingItemName
	Validating
	Succeeded
	ClarificationNeeded
	OperationFailed
)

func (s State) String() string {
	switch s {
	case Classifying:
		return "classifying"
	case ExtractingSlots:
		return "extracting_slots"
	case ExtractingItemName:
		return "extracting_item_name"
	case Validating:
		return "validating"
	case Succeeded:
		return "succeeded"
	case ClarificationNeeded:
		return "clarification_needed"
	case OperationFailed:
		return "operation_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action tells a client what the reply's Data holds.
type Action string

const (
	ActionNone             Action = ""
	ActionInventoryUpdated Action = "inventory_updated"
	ActionRecipeSuggested  Action = "recipe_suggested"
	ActionShoppingList     Action = "shopping_list"
	ActionInventoryList    Action = "inventory_list"
)

// MarshalJSON encodes ActionNone as null.
func (a Action) MarshalJSON() ([]byte, error) {
	if a == ActionNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

func (a *Action) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ActionNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*a = Action(s)
	return nil
}

type Response struct {
	Text   string `json:"text"`
	Action Action `json:"action"`
	Data   any    `json:"data"`

	Intent parse.Intent `json:"-"`
	State  State        `json:"-"`

	failure string
}

// Processor runs one command to completion.
type Processor interface {
	Process(ctx context.Context, text string) Response
}

type InventoryService interface {
	Add(ctx context.Context, name string, quantity float64, unit string) (inventory.Item, error)
	Remove(ctx context.Context, name string, quantity *float64) (inventory.RemoveResult, error)
	Update(ctx context.Context, name string, quantity float64, unit string) (inventory.Item, error)
	List(ctx context.Context) ([]inventory.Item, error)
}

type RecipeSuggester interface {
	Suggest(ctx context.Context, preferences string, servings int) (recipe.Recipe, error)
}

type ShoppingLister interface {
	Generate(ctx context.Context) ([]shopping.Item, error)
}

type Option func(*Interpreter)

// WithJournal records every processed command.
func WithJournal(j pantryassistant.CommandJournal) Option {
	return func(it *Interpreter) { it.journal = j }
}

// WithStrictMatching classifies on whole-token synonym matches only.
func WithStrictMatching(strict bool) Option {
	return func(it *Interpreter) {
		if strict {
			it.classify = parse.ClassifyStrict
		} else {
			it.classify = parse.Classify
		}
	}
}

// Interpreter holds no per-command state; one value serves concurrent
// callers as long as its collaborators do.
type Interpreter struct {
	inv      InventoryService
	recipes  RecipeSuggester
	shopping ShoppingLister
	journal  pantryassistant.CommandJournal
	classify func([]string) parse.Classification
}

var _ Processor = (*Interpreter)(nil)

func New(inv InventoryService, recipes RecipeSuggester, shop ShoppingLister, opts ...Option) *Interpreter {
	it := &Interpreter{
		inv:      inv,
		recipes:  recipes,
		shopping: shop,
		journal:  pantryassistant.NewNoOpCommandJournal(),
		classify: parse.Classify,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Process interprets text and performs the requested operation. It never
// panics; collaborator failures become apologetic replies.
func (it *Interpreter) Process(ctx context.Context, text string) (resp Response) {
	entry := pantryassistant.NewCommandLog(text)

	defer func() {
		if p := recover(); p != nil {
			slog.Error("INTERPRETER: Recovered from panic", "input", text, "panic", p)
			resp = Response{
				Text:    fmt.Sprintf("Sorry, I encountered an error: %v", p),
				Intent:  resp.Intent,
				State:   OperationFailed,
				failure: fmt.Sprint(p),
			}
		}

		entry.Intent = resp.Intent.String()
		entry.State = resp.State.String()
		entry.Action = string(resp.Action)
		entry.Response = resp.Text
		entry.Error = resp.failure
		if err := it.journal.LogCommand(entry); err != nil {
			slog.Warn("INTERPRETER: Failed to journal command", "error", err)
		}
	}()

	tokens := parse.Tokenize(text)
	c := it.classify(tokens)
	slog.Info("INTERPRETER: Classified command", "input", text, "intent", c.Intent, "anchor", c.Anchor)

	switch c.Intent {
	case parse.Add:
		resp = it.add(ctx, tokens, c.Anchor)
	case parse.Remove:
		resp = it.remove(ctx, tokens, c.Anchor)
	case parse.Update:
		resp = it.update(ctx, tokens, c.Anchor)
	case parse.Recipe:
		resp = it.suggestRecipe(ctx)
	case parse.Shopping:
		resp = it.shoppingList(ctx)
	case parse.Inventory:
		resp = it.listInventory(ctx)
	default:
		resp = Response{Text: helpText, State: Succeeded}
	}
	resp.Intent = c.Intent
	return resp
}

func clarify(text string) Response {
	return Response{Text: text, State: ClarificationNeeded}
}

func failed(verb, subject string, err error) Response {
	slog.Error("INTERPRETER: Operation failed", "verb", verb, "subject", subject, "error", err)
	return Response{
		Text:    fmt.Sprintf("Sorry, I couldn't %s %s: %v", verb, subject, err),
		State:   OperationFailed,
		failure: err.Error(),
	}
}

func succeeded(text string, action Action, data any) Response {
	return Response{Text: text, Action: action, Data: data, State: Succeeded}
}
