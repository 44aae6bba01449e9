package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"pantryassistant"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
)

// Notifier formats assistant events as Slack messages. A Notifier with no
// client drops every message.
type Notifier struct {
	client  pantryassistant.SlackClient
	channel string
}

func NewNotifier(client pantryassistant.SlackClient, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

func (n *Notifier) RecipeApplied(ctx context.Context, res recipe.ApplicationResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, ":cook: %s", res.Message)
	for _, u := range res.Used {
		fmt.Fprintf(&b, "\n• used %s %s of %s", formatQty(u.Used), u.Unit, u.Name)
		if u.Partial {
			b.WriteString(" (partial)")
		}
	}
	for _, f := range res.Failed {
		fmt.Fprintf(&b, "\n• %s: %s", f.Name, strings.ReplaceAll(string(f.Reason), "_", " "))
		if f.Required != "" {
			fmt.Fprintf(&b, ", need %s", f.Required)
		}
		if f.Available != "" {
			fmt.Fprintf(&b, ", have %s", f.Available)
		}
	}
	return n.post(ctx, b.String())
}

func (n *Notifier) ShoppingList(ctx context.Context, items []shopping.Item) error {
	if len(items) == 0 {
		return n.post(ctx, ":white_check_mark: Nothing to buy, inventory looks good.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, ":shopping_trolley: Shopping list (%d items)", len(items))
	for _, it := range items {
		fmt.Fprintf(&b, "\n• %s: buy %s %s (have %s)", it.Name, formatQty(it.SuggestedQuantity), it.Unit, formatQty(it.CurrentQuantity))
	}
	return n.post(ctx, b.String())
}

func (n *Notifier) post(ctx context.Context, msg string) error {
	if n == nil || n.client == nil {
		return nil
	}
	if err := n.client.PostMessage(ctx, n.channel, msg); err != nil {
		slog.Error("SLACK: Failed to post notification", "error", err)
		return err
	}
	return nil
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
