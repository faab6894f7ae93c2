package layoutanim

import "sync"

// RuntimeExecutor schedules fn on the host's callback context. It must not
// block the caller and must not run fn synchronously while a pull or tick is
// still holding the manager's locks; the manager only submits after
// releasing them.
type RuntimeExecutor func(fn func())

// GoExecutor runs each callback on its own goroutine. Callbacks are not
// ordered relative to each other.
func GoExecutor(fn func()) {
	go fn()
}

// SerialExecutor runs submitted callbacks one at a time, in submission order,
// on a single goroutine. Execute never blocks: the queue is unbounded.
type SerialExecutor struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	closed  bool
	running sync.WaitGroup
}

// NewSerialExecutor starts the worker goroutine. Call Close to stop it.
func NewSerialExecutor() *SerialExecutor {
	e := &SerialExecutor{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	e.running.Add(1)
	go e.loop()
	return e
}

// Execute queues fn. After Close, fn is dropped.
func (e *SerialExecutor) Execute(fn func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, fn)
	e.mu.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every callback queued before the call has run.
func (e *SerialExecutor) Flush() {
	ch := make(chan struct{})
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, func() { close(ch) })
	e.mu.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
	<-ch
}

// Close runs the callbacks already queued, then stops the worker.
func (e *SerialExecutor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	close(e.done)
	e.running.Wait()
}

func (e *SerialExecutor) loop() {
	defer e.running.Done()
	for {
		e.mu.Lock()
		batch := e.queue
		e.queue = nil
		closed := e.closed
		e.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		select {
		case <-e.wake:
		case <-e.done:
		}
	}
}
