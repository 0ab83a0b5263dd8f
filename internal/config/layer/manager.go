package layer

import (
	"sort"
	"sync"
)

// Manager holds layers and caches their merged result.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // sorted by priority, ascending
	merged map[string]any
	dirty  bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// AddLayer adds a layer, replacing any layer with the same name.
func (m *Manager) AddLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.layers {
		if existing.Name == l.Name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			break
		}
	}
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// Layers returns the layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Merge combines all layers into one map. The result is a copy.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty {
		merged := make(map[string]any)
		for _, l := range m.layers {
			merged = DeepMerge(merged, Clone(l.Data))
		}
		m.merged = merged
		m.dirty = false
	}
	return Clone(m.merged)
}

// Get returns the effective value at path and the layer providing it.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if v, ok := GetByPath(m.layers[i].Data, path); ok {
			return v, m.layers[i], true
		}
	}
	return nil, nil, false
}

// Set sets a value in the named layer, creating it with source if needed.
func (m *Manager) Set(name string, source Source, path string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var target *Layer
	for _, l := range m.layers {
		if l.Name == name {
			target = l
			break
		}
	}
	if target == nil {
		target = NewLayer(name, source, nil)
		m.layers = append(m.layers, target)
		sort.SliceStable(m.layers, func(i, j int) bool {
			return m.layers[i].Priority < m.layers[j].Priority
		})
	}
	SetByPath(target.Data, path, value)
	m.dirty = true
}

// WhichLayer returns the name of the layer providing path, or "".
func (m *Manager) WhichLayer(path string) string {
	_, l, ok := m.Get(path)
	if !ok {
		return ""
	}
	return l.Name
}
