package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_Validation(t *testing.T) {
	_, err := NewGenerator(GeneratorOpts{ModelID: "llama3.1"})
	assert.Error(t, err)
	_, err = NewGenerator(GeneratorOpts{BaseEndpoint: "http://localhost:11434"})
	assert.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		content     string
		wantName    string
		wantServ    int
		expectedErr string
	}{
		{
			name:     "valid recipe",
			status:   http.StatusOK,
			content:  `{"name":"Garlic Rice","description":"Simple","servings":2,"ingredients":[{"name":"rice","quantity":1,"unit":"cups"}],"instructions":["Cook"]}`,
			wantName: "Garlic Rice",
			wantServ: 2,
		},
		{
			name:     "servings filled in",
			status:   http.StatusOK,
			content:  `{"name":"Eggs","ingredients":[{"name":"eggs","quantity":2,"unit":"pieces"}]}`,
			wantName: "Eggs",
			wantServ: 6,
		},
		{
			name:        "unparseable content",
			status:      http.StatusOK,
			content:     "sorry",
			expectedErr: "parse recipe JSON",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			expectedErr: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got wireRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/chat", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					_ = json.NewEncoder(w).Encode(wireResponse{Message: message{Role: "assistant", Content: tt.content}})
				} else {
					_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
				}
			}))
			defer srv.Close()

			g, err := NewGenerator(GeneratorOpts{BaseEndpoint: srv.URL, ModelID: "llama3.1"})
			require.NoError(t, err)

			r, err := g.Generate(context.Background(), "Available ingredients:\n- rice: 2 cups", 6)

			assert.Equal(t, "llama3.1", got.Model)
			assert.Equal(t, "json", got.Format)
			assert.False(t, got.Stream)
			require.Len(t, got.Messages, 2)
			assert.Equal(t, "system", got.Messages[0].Role)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, tt.wantServ, r.Servings)
		})
	}
}
