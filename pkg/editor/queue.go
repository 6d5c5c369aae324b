package editor

import (
	"errors"
	"sync"
)

// TaskQueue is a FIFO of deferred tasks, drained once per event-loop turn.
//
// Tasks deferred while a drain is running are kept for the next drain, so a
// task never observes edits scheduled after it within the same turn.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func() error
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Defer enqueues task. Nil tasks are ignored.
func (q *TaskQueue) Defer(task func() error) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of pending tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every task pending at the time of the call, in order. A failing
// task does not stop the ones behind it; all errors are joined.
func (q *TaskQueue) Drain() error {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	var errs []error
	for _, task := range batch {
		if err := task(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
