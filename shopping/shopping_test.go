package shopping

import (
	"context"
	"errors"
	"math"
	"testing"

	"pantryassistant/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	items []inventory.Item
	err   error
}

func (s stubLister) List(context.Context) ([]inventory.Item, error) { return s.items, s.err }

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	stock := stubLister{items: []inventory.Item{
		{Name: "salt", Quantity: 0.5, Unit: "cups"},
		{Name: "eggs", Quantity: 12, Unit: "pieces"},
		{Name: "butter", Quantity: 1, Unit: "cups"},
		{Name: "milk", Quantity: 2, Unit: "liters"},
	}}

	svc := NewService(stock, 1)
	_, err := svc.UpdateThreshold("Eggs", 12)
	require.NoError(t, err)

	list, err := svc.Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, []Item{
		{Name: "butter", CurrentQuantity: 1, Unit: "cups", Threshold: 1, SuggestedQuantity: 1},
		{Name: "eggs", CurrentQuantity: 12, Unit: "pieces", Threshold: 12, SuggestedQuantity: 12},
		{Name: "salt", CurrentQuantity: 0.5, Unit: "cups", Threshold: 1, SuggestedQuantity: 1.5},
	}, list)
}

func TestService_GenerateEmpty(t *testing.T) {
	svc := NewService(stubLister{items: []inventory.Item{{Name: "rice", Quantity: 5, Unit: "cups"}}}, 1)
	list, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_GenerateError(t *testing.T) {
	svc := NewService(stubLister{err: errors.New("closed")}, 1)
	_, err := svc.Generate(context.Background())
	assert.ErrorContains(t, err, "closed")
}

func TestService_UpdateThreshold(t *testing.T) {
	tests := []struct {
		name      string
		item      string
		threshold float64
		wantErr   error
	}{
		{name: "valid", item: " Olive Oil ", threshold: 2},
		{name: "zero allowed", item: "salt", threshold: 0},
		{name: "negative", item: "salt", threshold: -1, wantErr: ErrInvalidThreshold},
		{name: "nan", item: "salt", threshold: math.NaN(), wantErr: ErrInvalidThreshold},
		{name: "blank name", item: " ", threshold: 1, wantErr: inventory.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(stubLister{}, 1)
			got, err := svc.UpdateThreshold(tt.item, tt.threshold)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, inventory.NormalizeName(tt.item), got.Name)
			assert.Equal(t, tt.threshold, svc.Threshold(tt.item))
		})
	}
}
