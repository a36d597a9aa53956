// Package store keeps summaries of resolved tessellations.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
)

// ErrNotFound is returned when no summary is stored under a name.
var ErrNotFound = errors.New("store: summary not found")

// Store persists summaries by tessellation name.
type Store interface {
	Save(ctx context.Context, s pipeline.Summary) error
	Load(ctx context.Context, name string) (pipeline.Summary, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Memory implements Store in memory.
// Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]pipeline.Summary
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]pipeline.Summary)}
}

func clone(s pipeline.Summary) pipeline.Summary {
	s.Shape = slices.Clone(s.Shape)
	s.Grammar = slices.Clone(s.Grammar)
	s.Stabilizer = slices.Clone(s.Stabilizer)
	s.Classes = slices.Clone(s.Classes)
	for i := range s.Classes {
		s.Classes[i].Neighbors = slices.Clone(s.Classes[i].Neighbors)
	}
	return s
}

// Save stores a copy of s.
func (m *Memory) Save(_ context.Context, s pipeline.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.Name] = clone(s)
	return nil
}

// Load returns a copy of the summary called name.
func (m *Memory) Load(_ context.Context, name string) (pipeline.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[name]
	if !ok {
		return pipeline.Summary{}, ErrNotFound
	}
	return clone(s), nil
}

// Delete removes name; missing names are ignored.
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}

// List returns the stored names, sorted.
func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.data))
	for n := range m.data {
		names = append(names, n)
	}
	slices.Sort(names)
	return names, nil
}
