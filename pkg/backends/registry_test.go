package backends

import (
	"errors"
	"testing"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

func testRegistry() *Registry {
	return NewRegistry(map[string]config.BackendConfig{
		"kokkoro":    {Endpoint: "http://kokkoro:8001"},
		"chatterbox": {Endpoint: ""},
	})
}

func TestRegistryResolve(t *testing.T) {
	registry := testRegistry()

	tests := []struct {
		name       string
		model      string
		wantErr    bool
		configured bool
	}{
		{
			name:       "configured model resolves",
			model:      "kokkoro",
			configured: true,
		},
		{
			name:       "unconfigured model resolves",
			model:      "chatterbox",
			configured: false,
		},
		{
			name:    "unknown model fails",
			model:   "nonexistent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := registry.Resolve(tt.model)

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModel) {
					t.Fatalf("expected ErrUnknownModel, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Name != tt.model {
				t.Errorf("expected name %q, got %q", tt.model, entry.Name)
			}
			if entry.Configured() != tt.configured {
				t.Errorf("expected configured=%v, got %v", tt.configured, entry.Configured())
			}
		})
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := testRegistry()

	names := registry.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0] != "chatterbox" || names[1] != "kokkoro" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestRegistryNamesCopy(t *testing.T) {
	registry := testRegistry()

	names := registry.Names()
	names[0] = "mutated"

	if registry.Names()[0] != "chatterbox" {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestEntryURLs(t *testing.T) {
	entry := Entry{Name: "kokkoro", Endpoint: "http://kokkoro:8001"}

	if got := entry.GenerateURL(); got != "http://kokkoro:8001/generate" {
		t.Errorf("unexpected generate URL: %s", got)
	}
	if got := entry.StreamURL(); got != "http://kokkoro:8001/generate/stream" {
		t.Errorf("unexpected stream URL: %s", got)
	}
	if got := entry.HealthURL(); got != "http://kokkoro:8001/health" {
		t.Errorf("unexpected health URL: %s", got)
	}
}

func TestRegistryContains(t *testing.T) {
	registry := testRegistry()

	if !registry.Contains("chatterbox") {
		t.Error("expected registry to contain chatterbox")
	}
	if registry.Contains("nonexistent") {
		t.Error("did not expect registry to contain nonexistent")
	}
}
