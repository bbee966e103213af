package workspace

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/build"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("workspace not found")

// Workspace is one builder instance with its own orchestrator
type Workspace struct {
	ID           string
	CreatedAt    time.Time
	Orchestrator *build.Orchestrator
}

// Info is the API view of a workspace
type Info struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Build     types.BuildSnapshot `json:"build"`
}

// Info returns the API view of w
func (w *Workspace) Info() Info {
	return Info{ID: w.ID, CreatedAt: w.CreatedAt, Build: w.Orchestrator.Snapshot()}
}

// Manager owns the open builder workspaces
type Manager struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace // Protected by mu

	steps    []types.BuildStep
	logger   *logging.Logger
	recorder build.Recorder
	metrics  *monitoring.Metrics
	wait     build.WaitFunc
}

// NewManager creates a manager whose workspaces run steps
func NewManager(steps []types.BuildStep, logger *logging.Logger) (*Manager, error) {
	if err := build.ValidateSteps(steps); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		workspaces: make(map[string]*Workspace),
		steps:      steps,
		logger:     logger,
	}, nil
}

// WithRecorder sets the history recorder shared by all workspaces
func (m *Manager) WithRecorder(r build.Recorder) *Manager {
	m.recorder = r
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithWait overrides the step timer of new workspaces
func (m *Manager) WithWait(wait build.WaitFunc) *Manager {
	m.wait = wait
	return m
}

// Create opens a new workspace
func (m *Manager) Create() (*Workspace, error) {
	orch, err := build.NewOrchestrator(m.steps, m.logger.Component("orchestrator"))
	if err != nil {
		return nil, err
	}
	orch.WithRecorder(m.recorder).WithMetrics(m.metrics)
	if m.wait != nil {
		orch.WithWait(m.wait)
	}

	ws := &Workspace{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Orchestrator: orch,
	}

	m.mu.Lock()
	m.workspaces[ws.ID] = ws
	count := len(m.workspaces)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetWorkspaces(count)
	}
	m.logger.Info("Workspace created", zap.String("workspace_id", ws.ID))

	return ws, nil
}

// Get retrieves a workspace by id
func (m *Manager) Get(id string) (*Workspace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, ok := m.workspaces[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ws, nil
}

// List returns all workspaces, oldest first
func (m *Manager) List() []Info {
	m.mu.RLock()
	all := make([]*Workspace, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		all = append(all, ws)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	out := make([]Info, len(all))
	for i, ws := range all {
		out[i] = ws.Info()
	}
	return out
}

// Delete cancels the workspace build and removes it
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	ws, ok := m.workspaces[id]
	if ok {
		delete(m.workspaces, id)
	}
	count := len(m.workspaces)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	ws.Orchestrator.Close()
	if m.metrics != nil {
		m.metrics.SetWorkspaces(count)
	}
	m.logger.Info("Workspace deleted", zap.String("workspace_id", id))
	return nil
}

// Count returns the number of open workspaces
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

// Close cancels every running build
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.workspaces
	m.workspaces = make(map[string]*Workspace)
	m.mu.Unlock()

	for _, ws := range all {
		ws.Orchestrator.Close()
	}
}
