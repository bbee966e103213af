package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/build"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instant(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(build.DefaultSteps(), nil)
	require.NoError(t, err)
	return m.WithWait(instant).WithMetrics(monitoring.NewMetrics())
}

func TestNewManagerRejectsInvalidSteps(t *testing.T) {
	_, err := NewManager(nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestCreateGetDelete(t *testing.T) {
	m := newTestManager(t)

	ws, err := m.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, ws.ID)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(ws.ID)
	require.NoError(t, err)
	assert.Same(t, ws, got)

	require.NoError(t, m.Delete(ws.ID))
	_, err = m.Get(ws.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ws.ID), ErrNotFound)
	assert.Zero(t, m.Count())
}

func TestWorkspacesAreIndependent(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Create()
	require.NoError(t, err)
	b, err := m.Create()
	require.NoError(t, err)

	_, started := a.Orchestrator.Start(context.Background(), types.ProjectConfig{Name: "Demo", URL: "https://demo.io"})
	require.True(t, started)
	<-a.Orchestrator.Done()

	assert.True(t, a.Orchestrator.Snapshot().Completed)
	assert.Equal(t, types.BuildIdle, b.Orchestrator.Snapshot().State)
}

func TestListOrdered(t *testing.T) {
	m := newTestManager(t)

	var ids []string
	for i := 0; i < 3; i++ {
		ws, err := m.Create()
		require.NoError(t, err)
		ids = append(ids, ws.ID)
		time.Sleep(time.Millisecond)
	}

	list := m.List()
	require.Len(t, list, 3)
	for i, info := range list {
		assert.Equal(t, ids[i], info.ID)
		assert.Equal(t, types.BuildIdle, info.Build.State)
	}
}

func TestConcurrentCreate(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, m.Count())
	m.Close()
	assert.Zero(t, m.Count())
}
