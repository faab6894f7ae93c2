package layoutanim_test

import (
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/phanxgames/layoutanim"
	"github.com/phanxgames/layoutanim/viewtree"
)

type fakeClock struct {
	mu  sync.Mutex
	now int64
}

func (c *fakeClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(ms int64) {
	c.mu.Lock()
	c.now = ms
	c.mu.Unlock()
}

func (c *fakeClock) Advance(ms int64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// syncExecutor runs callbacks on the calling goroutine. The manager only
// submits once its locks are released, so this is safe and deterministic.
func syncExecutor(fn func()) { fn() }

type recorder struct {
	mu          sync.Mutex
	completions []layoutanim.Completion
}

func (r *recorder) callback(c layoutanim.Completion) {
	r.mu.Lock()
	r.completions = append(r.completions, c)
	r.mu.Unlock()
}

func (r *recorder) calls() []layoutanim.Completion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]layoutanim.Completion(nil), r.completions...)
}

type recordingDelegate struct {
	mu     sync.Mutex
	events []string
}

func (d *recordingDelegate) AnimationsStarted(s layoutanim.SurfaceID) {
	d.mu.Lock()
	d.events = append(d.events, fmt.Sprintf("started %d", s))
	d.mu.Unlock()
}

func (d *recordingDelegate) AnimationsComplete(s layoutanim.SurfaceID) {
	d.mu.Lock()
	d.events = append(d.events, fmt.Sprintf("complete %d", s))
	d.mu.Unlock()
}

func (d *recordingDelegate) list() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func view(tag, parent layoutanim.Tag, x float64) layoutanim.ShadowView {
	return layoutanim.ShadowView{
		Tag:           tag,
		ComponentName: "View",
		ParentTag:     parent,
		Layout:        layoutanim.Rect{X: x, Width: 10, Height: 10},
		Props:         layoutanim.Props{"opacity": layoutanim.Number(1)},
	}
}

func leaf(tag, parent layoutanim.Tag, x float64) viewtree.Shape {
	return viewtree.Shape{View: view(tag, parent, x)}
}

// surfaceHarness drives one surface: model is the tree the differ knows,
// mounted is what the executor shows after applying the manager's output.
type surfaceHarness struct {
	m       *layoutanim.Manager
	surface layoutanim.SurfaceID
	model   viewtree.Shape
	mounted *viewtree.Tree
}

func newSurfaceHarness(m *layoutanim.Manager, surface layoutanim.SurfaceID, initial viewtree.Shape) *surfaceHarness {
	mounted := viewtree.FromShape(initial)
	mounted.StrictViews = true
	return &surfaceHarness{m: m, surface: surface, model: initial, mounted: mounted}
}

// pull diffs the model against to, hands the batch to the manager and
// applies the result.
func (h *surfaceHarness) pull(to viewtree.Shape) (layoutanim.MutationList, error) {
	batch := viewtree.Diff(h.model, to)
	layoutanim.SortMutations(batch)
	out := h.m.PullTransaction(h.surface, batch)
	h.model = to
	if err := h.mounted.Apply(out); err != nil {
		return out, fmt.Errorf("surface %d pull: %w", h.surface, err)
	}
	return out, nil
}

func (h *surfaceHarness) tick() (layoutanim.MutationList, error) {
	out := h.m.Tick(h.surface)
	if err := h.mounted.Apply(out); err != nil {
		return out, fmt.Errorf("surface %d tick: %w", h.surface, err)
	}
	return out, nil
}

// converged reports how the mounted tree differs from the model.
func (h *surfaceHarness) converged() error {
	if diff := cmp.Diff(h.model, h.mounted.Shape()); diff != "" {
		return fmt.Errorf("surface %d mounted tree differs from model (-model +mounted):\n%s", h.surface, diff)
	}
	if got, want := h.mounted.Len(), len(h.mounted.Tags()); got != want {
		return fmt.Errorf("surface %d leaks %d detached nodes", h.surface, got-want)
	}
	return nil
}
