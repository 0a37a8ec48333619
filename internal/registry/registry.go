// Package registry provides the read-only agent directory consumed by the
// planner and executor. Agents are declared in a YAML file and may be hot
// reloaded when the file changes.
package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/maestro/pkg/models"
)

// Registry is a thread-safe directory mapping agent name to metadata.
// It is read-only during a query and may be shared across concurrent
// queries; Reload swaps the whole map atomically under the lock.
type Registry struct {
	mu     sync.RWMutex
	path   string
	agents map[string]models.AgentMetadata

	watcher *watcher
}

// registryFile is the on-disk shape of the agents YAML file.
type registryFile struct {
	Agents []models.AgentMetadata `yaml:"agents"`
}

// Load reads the agents file at path and builds a registry from it.
func Load(path string) (*Registry, error) {
	r := &Registry{
		path:   path,
		agents: make(map[string]models.AgentMetadata),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// FromAgents builds a registry directly from metadata (for testing).
func FromAgents(agents ...models.AgentMetadata) *Registry {
	r := &Registry{
		agents: make(map[string]models.AgentMetadata, len(agents)),
	}
	for _, a := range agents {
		r.agents[a.Name] = a
	}
	return r
}

// Reload re-reads the agents file and replaces the directory contents.
// On any error the previous contents are kept.
func (r *Registry) Reload() error {
	if r.path == "" {
		return fmt.Errorf("registry has no backing file")
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read registry file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse registry file %s: %w", r.path, err)
	}

	agents := make(map[string]models.AgentMetadata, len(file.Agents))
	for _, a := range file.Agents {
		if a.Name == "" {
			return fmt.Errorf("registry file %s: agent with empty name", r.path)
		}
		if !a.Type.Valid() {
			return fmt.Errorf("registry file %s: agent %s has unknown type %q", r.path, a.Name, a.Type)
		}
		if _, dup := agents[a.Name]; dup {
			return fmt.Errorf("registry file %s: duplicate agent %s", r.path, a.Name)
		}
		agents[a.Name] = a
	}

	r.mu.Lock()
	r.agents = agents
	r.mu.Unlock()

	return nil
}

// Get looks up an agent by name.
func (r *Registry) Get(name string) (models.AgentMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.agents[name]
	return meta, ok
}

// List returns all registered agents sorted by name.
func (r *Registry) List() []models.AgentMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AgentMetadata, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// Path returns the backing file path, if any.
func (r *Registry) Path() string {
	return r.path
}
