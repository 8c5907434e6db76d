package layout

import (
	"runtime"
	"sync"

	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/theme"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Engine lays out trees with a fixed, validated theme.
// An Engine is safe for concurrent use; passes run one at a time.
type Engine struct {
	theme theme.Theme
	mu    sync.Mutex
}

// New validates th and returns an engine using it.
func New(th theme.Theme) (*Engine, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return &Engine{theme: th}, nil
}

// Theme returns the engine's theme.
func (e *Engine) Theme() theme.Theme { return e.theme }

// Layout runs all passes over t and returns when every node is placed.
func (e *Engine) Layout(t *tree.Tree) error {
	return e.Run(t, nil)
}

// Run runs the base, top and overlap passes over t, yielding the processor
// between them, and then calls done with the root. done may be nil. There is
// no way to interrupt a run once started.
func (e *Engine) Run(t *tree.Tree, done func(root tree.NodeID)) error {
	if t == nil || t.Root() == tree.None {
		return errs.New(errs.ErrCodeInvalidInput, "layout: %v", tree.ErrEmptyTree)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stages := []func(*tree.Tree){
		e.computeBase,
		e.computeTop,
		e.resolveOverlap,
	}
	for _, stage := range stages {
		stage(t)
		runtime.Gosched()
	}
	if done != nil {
		done(t.Root())
	}
	return nil
}
