package backends

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

// ErrUnknownModel is returned by Resolve for model names outside the
// registered set. It is distinct from a known model with no endpoint,
// which resolves successfully to an unconfigured Entry.
var ErrUnknownModel = errors.New("unknown model")

// Entry describes one registered backend: a logical model name and its
// endpoint URL. An empty endpoint means the model is known but not
// configured.
type Entry struct {
	// Name is the logical model name (e.g., "kokkoro").
	Name string

	// Endpoint is the backend's base URL, or empty when unconfigured.
	Endpoint string
}

// Configured reports whether the entry has an endpoint.
func (e Entry) Configured() bool {
	return e.Endpoint != ""
}

// GenerateURL returns the backend's non-streaming generation URL.
func (e Entry) GenerateURL() string {
	return e.Endpoint + "/generate"
}

// StreamURL returns the backend's streaming generation URL.
func (e Entry) StreamURL() string {
	return e.Endpoint + "/generate/stream"
}

// HealthURL returns the backend's liveness probe URL.
func (e Entry) HealthURL() string {
	return e.Endpoint + "/health"
}

// Registry is the immutable mapping from logical model name to backend
// entry. It is built once at startup from configuration and is safe for
// concurrent use without locking because it is never mutated afterwards.
type Registry struct {
	entries map[string]Entry
	names   []string
}

// NewRegistry builds a registry from the configured backend map.
func NewRegistry(backends map[string]config.BackendConfig) *Registry {
	entries := make(map[string]Entry, len(backends))
	names := make([]string, 0, len(backends))

	for name, backend := range backends {
		entries[name] = Entry{
			Name:     name,
			Endpoint: backend.Endpoint,
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{
		entries: entries,
		names:   names,
	}
}

// Resolve looks up the entry for a logical model name. It returns
// ErrUnknownModel for names outside the registered set; a known model
// with no endpoint resolves successfully and reports Configured() false.
func (r *Registry) Resolve(name string) (Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return entry, nil
}

// Contains reports whether name is in the registered set.
func (r *Registry) Contains(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered model names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Entries returns all registered entries in sorted name order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.names))
	for _, name := range r.names {
		entries = append(entries, r.entries[name])
	}
	return entries
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.entries)
}
