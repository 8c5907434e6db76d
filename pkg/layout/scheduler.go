package layout

import (
	"errors"
	"sync"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// ErrSchedulerClosed is returned by Submit after Close.
var ErrSchedulerClosed = errors.New("layout scheduler closed")

// Result is delivered to a request's callback once its run finishes.
type Result struct {
	Tree *tree.Tree
	Root tree.NodeID
	Err  error
}

type request struct {
	tree *tree.Tree
	done func(Result)
}

// Scheduler runs layout requests one at a time on a single worker goroutine.
//
// At most one request waits behind the running one. Submitting while a
// request is waiting replaces it; the replaced request's callback is never
// called. A running request always finishes.
type Scheduler struct {
	engine *Engine

	mu      sync.Mutex
	pending *request
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

// NewScheduler starts a scheduler that lays out trees with engine.
func NewScheduler(engine *Engine) *Scheduler {
	s := &Scheduler{
		engine:  engine,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Submit queues a layout of t. done is called from the worker goroutine
// unless the request is superseded or the scheduler closes first.
// It reports whether an earlier waiting request was replaced.
func (s *Scheduler) Submit(t *tree.Tree, done func(Result)) (replaced bool, err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrSchedulerClosed
	}
	defer s.mu.Unlock()
	replaced = s.pending != nil
	s.pending = &request{tree: t, done: done}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return replaced, nil
}

// Close stops the worker after the running request, if any, and drops the
// waiting one. It blocks until the worker exits and is safe to call twice.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.pending = nil
		close(s.wake)
	}
	s.mu.Unlock()
	<-s.stopped
}

func (s *Scheduler) loop() {
	defer close(s.stopped)
	for range s.wake {
		for {
			s.mu.Lock()
			req := s.pending
			s.pending = nil
			s.mu.Unlock()
			if req == nil {
				break
			}
			s.run(req)
		}
	}
}

func (s *Scheduler) run(req *request) {
	res := Result{Tree: req.tree, Root: tree.None}
	res.Err = s.engine.Run(req.tree, func(root tree.NodeID) {
		res.Root = root
	})
	if req.done != nil {
		req.done(res)
	}
}
