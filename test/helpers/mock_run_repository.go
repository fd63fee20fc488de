package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
)

// MockRunRepository is an in-memory RunRepository for handler and BDD tests
type MockRunRepository struct {
	mu      sync.Mutex
	runs    map[string]*evaluation.Run
	saveErr error
}

// NewMockRunRepository creates an empty in-memory run repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{runs: make(map[string]*evaluation.Run)}
}

// SetSaveError makes every subsequent Save fail with err
func (m *MockRunRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Save stores the run, rejecting duplicate ids like the real repository
func (m *MockRunRepository) Save(ctx context.Context, run *evaluation.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	if _, exists := m.runs[run.ID()]; exists {
		return fmt.Errorf("run %s already exists", run.ID())
	}
	m.runs[run.ID()] = run
	return nil
}

// FindByID returns the stored run or *evaluation.ErrRunNotFound
func (m *MockRunRepository) FindByID(ctx context.Context, id string) (*evaluation.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, &evaluation.ErrRunNotFound{RunID: id}
	}
	return run, nil
}

// List returns stored runs newest first, honouring mode, limit and offset
func (m *MockRunRepository) List(ctx context.Context, opts evaluation.ListOptions) ([]*evaluation.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runs := make([]*evaluation.Run, 0, len(m.runs))
	for _, run := range m.runs {
		if opts.Mode != "" && run.Mode().String() != opts.Mode {
			continue
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt().Equal(runs[j].StartedAt()) {
			return runs[i].StartedAt().After(runs[j].StartedAt())
		}
		return runs[i].ID() < runs[j].ID()
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(runs) {
			return []*evaluation.Run{}, nil
		}
		runs = runs[opts.Offset:]
	}
	if opts.Limit > 0 && len(runs) > opts.Limit {
		runs = runs[:opts.Limit]
	}
	return runs, nil
}

// Count returns the number of stored runs
func (m *MockRunRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}
