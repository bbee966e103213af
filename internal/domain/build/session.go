package build

import (
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

// session is the mutable state of one build run. Guarded by Orchestrator.mu.
type session struct {
	id         string
	config     types.ProjectConfig
	logs       []string
	progress   int
	building   bool
	completed  bool
	cancelled  bool
	startedAt  time.Time
	finishedAt time.Time
}

func (s *session) state() types.BuildState {
	switch {
	case s.building:
		return types.BuildBuilding
	case s.completed:
		return types.BuildCompleted
	default:
		return types.BuildIdle
	}
}

func (s *session) snapshot() types.BuildSnapshot {
	logs := make([]string, len(s.logs))
	copy(logs, s.logs)

	snap := types.BuildSnapshot{
		ID:        s.id,
		State:     s.state(),
		Logs:      logs,
		Progress:  s.progress,
		Building:  s.building,
		Completed: s.completed,
		Cancelled: s.cancelled,
		Config:    s.config,
		StartedAt: s.startedAt,
	}
	if !s.finishedAt.IsZero() {
		finished := s.finishedAt
		snap.FinishedAt = &finished
	}
	return snap
}
