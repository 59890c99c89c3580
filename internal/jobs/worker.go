package jobs

import (
	"context"
	"log"
	"time"
)

// Runner is a job executed by the worker. The ingestion pipeline
// implements it.
type Runner interface {
	Run(ctx context.Context) error
}

// Worker runs a job once at startup and then on a fixed interval.
// An interval of zero or less disables the periodic reruns.
type Worker struct {
	runner   Runner
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewWorker creates a new Worker instance
func NewWorker(runner Runner, interval time.Duration) *Worker {
	return &Worker{
		runner:   runner,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start runs the job immediately, then reruns it on every interval tick
// until the context is cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	defer close(w.doneChan)

	if err := w.runner.Run(ctx); err != nil {
		log.Printf("Worker initial run failed: %v", err)
	}

	if w.interval <= 0 {
		log.Println("Worker finished: no rerun interval configured")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Worker started with rerun interval: %v", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("Worker stopped: stop signal received")
			return
		case <-ticker.C:
			if err := w.runner.Run(ctx); err != nil {
				log.Printf("Worker run failed: %v", err)
			}
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Println("Worker shutdown complete")
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }
