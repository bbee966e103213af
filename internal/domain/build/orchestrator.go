package build

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/id"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"go.uber.org/zap"
)

const subscriberBuffer = 64

// Recorder receives the project of every started build
type Recorder interface {
	Record(entry types.HistoryEntry) error
}

// WaitFunc blocks for d or until ctx is done
type WaitFunc func(ctx context.Context, d time.Duration) error

// Orchestrator runs simulated builds for one builder workspace. At most one
// build runs at a time.
type Orchestrator struct {
	steps    []types.BuildStep
	logger   *logging.Logger
	recorder Recorder
	metrics  *monitoring.Metrics
	wait     WaitFunc
	now      func() time.Time

	mu      sync.Mutex
	current *session // Protected by mu
	cancel  context.CancelFunc
	done    chan struct{}
	subs    map[int]chan types.BuildEvent
	nextSub int
	closed  bool
}

// NewOrchestrator validates the step table and returns an idle orchestrator
func NewOrchestrator(steps []types.BuildStep, logger *logging.Logger) (*Orchestrator, error) {
	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	owned := make([]types.BuildStep, len(steps))
	copy(owned, steps)

	done := make(chan struct{})
	close(done)

	return &Orchestrator{
		steps:  owned,
		logger: logger,
		wait:   sleep,
		now:    time.Now,
		done:   done,
		subs:   make(map[int]chan types.BuildEvent),
	}, nil
}

// WithRecorder sets the history recorder notified on each start
func (o *Orchestrator) WithRecorder(r Recorder) *Orchestrator {
	o.recorder = r
	return o
}

// WithMetrics adds metrics tracking to the orchestrator
func (o *Orchestrator) WithMetrics(metrics *monitoring.Metrics) *Orchestrator {
	o.metrics = metrics
	return o
}

// WithWait replaces the step timer. Tests pass a no-op to run instantly.
func (o *Orchestrator) WithWait(wait WaitFunc) *Orchestrator {
	o.wait = wait
	return o
}

// Start begins a build with cfg. It reports false without touching any state
// when cfg has no name or URL, when a build is already running, or after Close.
func (o *Orchestrator) Start(ctx context.Context, cfg types.ProjectConfig) (types.BuildSnapshot, bool) {
	o.mu.Lock()

	if o.closed || !cfg.Buildable() || (o.current != nil && o.current.building) {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, false
	}

	now := o.now()
	sess := &session{
		id:        id.NewBuildID().String(),
		config:    cfg,
		logs:      []string{InitialLine},
		building:  true,
		startedAt: now,
	}

	// The run outlives the request that started it.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	o.current = sess
	o.cancel = cancel
	o.done = done

	o.publishLocked(types.BuildEvent{
		Type:      types.EventBuildStart,
		SessionID: sess.id,
		Line:      InitialLine,
		Timestamp: now.UnixMilli(),
	})
	snap := sess.snapshot()
	o.mu.Unlock()

	if o.metrics != nil {
		o.metrics.BuildStarted()
	}
	o.logger.Info("Build started",
		zap.String("session_id", sess.id),
		zap.String("name", cfg.Name),
		zap.String("url", cfg.URL),
	)

	if o.recorder != nil {
		if err := o.recorder.Record(types.HistoryEntry{Name: cfg.Name, URL: cfg.URL}); err != nil {
			o.logger.Warn("Failed to record project history", zap.String("session_id", sess.id), zap.Error(err))
		}
	}

	go o.run(runCtx, sess, done)

	return snap, true
}

func (o *Orchestrator) run(ctx context.Context, sess *session, done chan struct{}) {
	defer close(done)

	for _, step := range o.steps {
		if err := o.wait(ctx, step.Delay); err != nil {
			return
		}

		o.mu.Lock()
		if o.current != sess || !sess.building {
			o.mu.Unlock()
			return
		}
		sess.logs = append(sess.logs, step.Message)
		sess.progress = step.Progress
		o.publishLocked(types.BuildEvent{
			Type:      types.EventBuildLog,
			SessionID: sess.id,
			Line:      step.Message,
			Progress:  step.Progress,
			Timestamp: o.now().UnixMilli(),
		})
		o.mu.Unlock()
	}

	o.mu.Lock()
	if o.current != sess || !sess.building {
		o.mu.Unlock()
		return
	}
	sess.building = false
	sess.completed = true
	sess.finishedAt = o.now()
	o.publishLocked(types.BuildEvent{
		Type:      types.EventBuildComplete,
		SessionID: sess.id,
		Progress:  sess.progress,
		Timestamp: sess.finishedAt.UnixMilli(),
	})
	duration := sess.finishedAt.Sub(sess.startedAt)
	o.mu.Unlock()

	if o.metrics != nil {
		o.metrics.BuildFinished("completed", duration)
	}
	o.logger.Info("Build completed", zap.String("session_id", sess.id), zap.Duration("duration", duration))
}

// Cancel stops a running build. Remaining steps are discarded and the
// session stays incomplete. Reports false when nothing was running.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()

	sess := o.current
	if sess == nil || !sess.building {
		o.mu.Unlock()
		return false
	}

	sess.building = false
	sess.cancelled = true
	sess.finishedAt = o.now()
	o.cancel()
	o.publishLocked(types.BuildEvent{
		Type:      types.EventBuildCancelled,
		SessionID: sess.id,
		Progress:  sess.progress,
		Timestamp: sess.finishedAt.UnixMilli(),
	})
	duration := sess.finishedAt.Sub(sess.startedAt)
	o.mu.Unlock()

	if o.metrics != nil {
		o.metrics.BuildFinished("cancelled", duration)
	}
	o.logger.Info("Build cancelled", zap.String("session_id", sess.id), zap.Int("progress", sess.progress))

	return true
}

// Reset returns a completed builder to idle. The log stays visible until the
// next Start. Ignored (false) while a build is running.
func (o *Orchestrator) Reset() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return true
	}
	if o.current.building {
		return false
	}
	o.current.completed = false
	return true
}

// Snapshot returns a copy of the current session
func (o *Orchestrator) Snapshot() types.BuildSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() types.BuildSnapshot {
	if o.current == nil {
		return types.BuildSnapshot{State: types.BuildIdle, Logs: []string{}}
	}
	return o.current.snapshot()
}

// Done is closed when the most recently started run goroutine exits
func (o *Orchestrator) Done() <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.done
}

// Subscribe registers an observer. Events arrive in step order. A subscriber
// that falls subscriberBuffer events behind is dropped and its channel closed.
// After Close the returned channel is already closed.
func (o *Orchestrator) Subscribe() (<-chan types.BuildEvent, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan types.BuildEvent, subscriberBuffer)
	if o.closed {
		close(ch)
		return ch, func() {}
	}

	key := o.nextSub
	o.nextSub++
	o.subs[key] = ch

	unsubscribe := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if sub, ok := o.subs[key]; ok {
			delete(o.subs, key)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (o *Orchestrator) publishLocked(event types.BuildEvent) {
	for key, ch := range o.subs {
		select {
		case ch <- event:
		default:
			delete(o.subs, key)
			close(ch)
			o.logger.Warn("Dropping slow build subscriber", zap.String("session_id", event.SessionID))
		}
	}
}

// Close cancels any running build and releases every subscriber. Later
// Start calls are ignored and later subscribers get a closed channel.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	o.Cancel()

	o.mu.Lock()
	defer o.mu.Unlock()
	for key, ch := range o.subs {
		delete(o.subs, key)
		close(ch)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
