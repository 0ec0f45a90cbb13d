package solver

import (
	"context"
	"fmt"
	"sync"
)

// Answer is one computed result of a puzzle.
type Answer struct {
	// Part numbers the answers of a puzzle, starting at 1.
	Part int `json:"part"`

	// Label describes the answer for display.
	Label string `json:"label"`

	// Value is the answer itself.
	Value int64 `json:"value"`
}

// Solver computes the answers of one puzzle.
type Solver interface {
	// Name returns the registry key, e.g. "passwords".
	Name() string

	// Solve parses input and returns the answers in part order.
	Solve(ctx context.Context, input []byte) ([]Answer, error)
}

// Registry holds solvers by name in registration order.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	solvers map[string]Solver
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		solvers: make(map[string]Solver),
	}
}

// Register adds a solver. Names must be unique.
func (r *Registry) Register(s Solver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if name == "" {
		return fmt.Errorf("solver name is empty")
	}
	if _, exists := r.solvers[name]; exists {
		return fmt.Errorf("solver %q already registered", name)
	}

	r.solvers[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns the solver registered under name.
func (r *Registry) Get(name string) (Solver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.solvers[name]
	return s, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
