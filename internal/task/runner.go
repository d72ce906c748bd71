package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// DrainTimeout bounds how long Stop waits for queued tasks to finish
	// before abandoning them.
	DrainTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:  2,
		QueueSize:    100,
		DrainTimeout: 10 * time.Second,
	}
}

// Runner manages background task processing on a fixed pool of workers.
// Tasks are held only in memory and failures are never retried, which is
// the intended contract for best-effort mail. Stop drains the queue
// within DrainTimeout before the workers exit.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)

	mu     sync.Mutex
	closed bool
}

// NewRunner creates a new Runner
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = DefaultRunnerConfig().DrainTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue.
// Returns an error if the queue is full or the runner has stopped.
func (r *Runner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("task runner is stopped")
	}

	select {
	case r.taskChan <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("task runner started",
		"worker_count", r.config.WorkerCount,
		"queue_size", r.config.QueueSize)
}

// Stop shuts down the task runner. New submissions are refused
// immediately; the workers keep draining the queue until it is empty or
// DrainTimeout elapses, at which point remaining work is canceled.
// Stop is idempotent.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.taskChan)
	r.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(r.config.DrainTimeout):
		r.logger.Warn("drain timeout elapsed, canceling remaining tasks",
			"drain_timeout", r.config.DrainTimeout)
		r.cancelFunc()
		<-drained
	}

	r.cancelFunc()
	r.logger.Info("task runner stopped")
}

// worker processes tasks until the queue is closed and empty.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for task := range r.taskChan {
		if r.ctx.Err() != nil {
			r.logger.Debug("discarding task after cancellation",
				"worker_id", id, "task_id", task.ID())
			continue
		}
		r.processTask(task, id)
	}

	r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

// processTask handles execution of a single task
func (r *Runner) processTask(task Task, workerID int) {
	log := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	log.Debug("processing task")

	if err := task.Execute(r.ctx); err != nil {
		r.errHandler(task, err)
		return
	}

	log.Debug("task completed")
}
