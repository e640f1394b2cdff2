// Package plugin provides a registry for AI providers (STT, LLM, TTS) so
// shells can select providers by name without importing them directly.
// Providers register themselves from init() functions.
package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Provider kinds accepted by the registry.
const (
	KindSTT = "stt"
	KindLLM = "llm"
	KindTTS = "tts"
)

// Factory creates a new provider instance from configuration.
// The returned value is cast to the appropriate provider interface
// (stt.STT, llm.LLM or tts.TTS) by the caller.
type Factory func(cfg map[string]any) (any, error)

// Plugin represents a registered provider with its metadata.
type Plugin struct {
	Kind        string // "stt", "llm" or "tts"
	Name        string // e.g. "openai", "gtts"
	Factory     Factory
	Description string
	Version     string
}

// Registry manages plugin registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]*Plugin // [kind][name] -> Plugin
}

var globalRegistry = &Registry{
	plugins: make(map[string]map[string]*Plugin),
}

// Register adds a plugin to the global registry. Typically called from init()
// in provider packages. Panics on duplicate kind/name registration.
func Register(kind, name string, factory Factory) {
	globalRegistry.Register(kind, name, factory)
}

// RegisterWithMetadata adds a plugin with metadata to the global registry.
func RegisterWithMetadata(plugin *Plugin) {
	globalRegistry.RegisterWithMetadata(plugin)
}

// Get retrieves a plugin factory from the global registry.
func Get(kind, name string) (Factory, bool) {
	return globalRegistry.Get(kind, name)
}

// List returns all registered plugins of a specific kind, or all plugins when
// kind is empty.
func List(kind string) []*Plugin {
	return globalRegistry.List(kind)
}

// Register adds a plugin to this registry instance.
func (r *Registry) Register(kind, name string, factory Factory) {
	r.RegisterWithMetadata(&Plugin{Kind: kind, Name: name, Factory: factory})
}

// RegisterWithMetadata adds a plugin with metadata to this registry instance.
// Panics if a plugin with the same kind and name is already registered.
func (r *Registry) RegisterWithMetadata(plugin *Plugin) {
	if plugin.Kind == "" {
		panic("plugin kind cannot be empty")
	}
	if plugin.Name == "" {
		panic("plugin name cannot be empty")
	}
	if plugin.Factory == nil {
		panic("plugin factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[plugin.Kind] == nil {
		r.plugins[plugin.Kind] = make(map[string]*Plugin)
	}
	if existing, exists := r.plugins[plugin.Kind][plugin.Name]; exists {
		panic(fmt.Sprintf("plugin %s/%s already registered (existing version: %s, new version: %s)",
			plugin.Kind, plugin.Name, existing.Version, plugin.Version))
	}
	r.plugins[plugin.Kind][plugin.Name] = plugin
}

// Get retrieves a plugin factory from this registry instance.
func (r *Registry) Get(kind, name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kindMap, exists := r.plugins[kind]
	if !exists {
		return nil, false
	}
	plugin, exists := kindMap[name]
	if !exists {
		return nil, false
	}
	return plugin.Factory, true
}

// List returns registered plugins of a kind sorted by kind then name.
// An empty kind returns every plugin.
func (r *Registry) List(kind string) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var plugins []*Plugin
	for k, kindMap := range r.plugins {
		if kind != "" && k != kind {
			continue
		}
		for _, plugin := range kindMap {
			plugins = append(plugins, plugin)
		}
	}

	sort.Slice(plugins, func(i, j int) bool {
		if plugins[i].Kind != plugins[j].Kind {
			return plugins[i].Kind < plugins[j].Kind
		}
		return plugins[i].Name < plugins[j].Name
	})
	return plugins
}

// Clear removes all plugins from this registry instance. Test helper.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = make(map[string]map[string]*Plugin)
}
