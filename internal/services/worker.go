package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrWorkerStopped is returned by Do once the pool has been stopped.
	ErrWorkerStopped = errors.New("worker pool stopped")
	// ErrTaskPanicked is returned by Do when fn panicked. The worker that ran
	// it keeps serving the queue.
	ErrTaskPanicked = errors.New("task panicked")
)

// Worker runs CPU-bound extraction and ranking off the request goroutines.
type Worker interface {
	Start()
	Stop()
	Do(ctx context.Context, fn func()) error
}

type task struct {
	fn   func()
	done chan struct{}
	// err is written before done is closed.
	err error
}

type worker struct {
	jobQueue    chan *task
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	logger      *zap.Logger
}

func NewWorker(concurrency, queueSize int, logger *zap.Logger) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &worker{
		jobQueue:    make(chan *task, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements Worker.
func (w *worker) Start() {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(i + 1)
	}

	w.logger.Info("worker pool started", zap.Int("concurrency", w.concurrency))
}

// Stop implements Worker. Tasks already running finish; queued tasks are
// dropped and their callers see ErrWorkerStopped or their own deadline.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		w.logger.Info("worker pool stopped")
	})
}

// Do queues fn and waits for it to finish or for ctx to end. When Do returns
// an error fn may still be running, so callers must not read its results.
func (w *worker) Do(ctx context.Context, fn func()) error {
	t := &task{fn: fn, done: make(chan struct{})}

	select {
	case <-w.stopChan:
		return ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- t:
	case <-w.stopChan:
		return ErrWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return t.err
	case <-w.stopChan:
		select {
		case <-t.done:
			return t.err
		default:
			return ErrWorkerStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *worker) processJobs(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker stopped", zap.Int("worker", workerID))
			return
		case t := <-w.jobQueue:
			w.run(workerID, t)
		}
	}
}

func (w *worker) run(workerID int, t *task) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("task panicked", zap.Int("worker", workerID), zap.Any("panic", r))
			t.err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	t.fn()
}
