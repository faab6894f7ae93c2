// Package scenario replays scripted animation sessions. A script names an
// initial view tree and a list of steps (configure, pull, tick, stop,
// expect), each at a point in time. Runner drives a layoutanim.Manager
// through them and applies every emitted mutation to a strict
// viewtree.Tree, so a script doubles as a regression test.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/phanxgames/layoutanim"
	"github.com/phanxgames/layoutanim/viewtree"
	"gopkg.in/yaml.v3"
)

// ErrExpectation is wrapped by the error Run returns when an expect step
// does not hold.
var ErrExpectation = errors.New("scenario: expectation failed")

// Node is one view in a script's tree.
type Node struct {
	Tag       int32          `yaml:"tag" validate:"gt=0"`
	Component string         `yaml:"component"`
	Layout    Layout         `yaml:"layout"`
	Props     map[string]any `yaml:"props"`
	Children  []Node         `yaml:"children" validate:"dive"`
}

// Layout is a node's layout rectangle.
type Layout struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" validate:"gte=0"`
}

// Expect lists assertions checked at a step. Unset fields are not checked.
type Expect struct {
	Inflight *int             `yaml:"inflight"`
	Tags     []int32          `yaml:"tags"`
	Props    map[int32]Props  `yaml:"props"`
	Layout   map[int32]Layout `yaml:"layout"`
	Settled  bool             `yaml:"settled"`
}

// Props are expected numeric props of one node.
type Props map[string]float64

// Step is a single action. Exactly one of Configure, Preset, Pull, Tick,
// Stop and Expect is set.
type Step struct {
	At        *int64         `yaml:"at" validate:"omitempty,gte=0"`
	Configure map[string]any `yaml:"configure"`
	Preset    string         `yaml:"preset" validate:"omitempty,oneof=easeInEaseOut linear spring"`
	Pull      *Node          `yaml:"pull"`
	Tick      bool           `yaml:"tick"`
	Stop      bool           `yaml:"stop"`
	Expect    *Expect        `yaml:"expect"`
}

func (s Step) action() string {
	var set []string
	if s.Configure != nil {
		set = append(set, "configure")
	}
	if s.Preset != "" {
		set = append(set, "preset")
	}
	if s.Pull != nil {
		set = append(set, "pull")
	}
	if s.Tick {
		set = append(set, "tick")
	}
	if s.Stop {
		set = append(set, "stop")
	}
	if s.Expect != nil {
		set = append(set, "expect")
	}
	if len(set) != 1 {
		return ""
	}
	return set[0]
}

// Script is the top-level YAML structure of a scenario file.
type Script struct {
	Name     string   `yaml:"name"`
	Surface  int32    `yaml:"surface"`
	Registry []string `yaml:"registry"`
	Tree     Node     `yaml:"tree"`
	Steps    []Step   `yaml:"steps" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse decodes and validates a YAML scenario script.
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validate.Struct(&script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, st := range script.Steps {
		if st.action() == "" {
			return nil, fmt.Errorf("parse scenario: step %d: want exactly one action", i)
		}
	}
	return &script, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// Frame records what one step did.
type Frame struct {
	Step      int
	At        int64
	Action    string
	Mutations layoutanim.MutationList
}

// Result is the outcome of a run.
type Result struct {
	Frames      []Frame
	Final       viewtree.Shape
	Completions []layoutanim.Completion
}

// Runner executes a script. Construct with NewRunner.
type Runner struct {
	script  *Script
	logger  *slog.Logger
	metrics *layoutanim.Metrics

	now         int64
	mgr         *layoutanim.Manager
	model       viewtree.Shape
	mounted     *viewtree.Tree
	completions []layoutanim.Completion
}

// NewRunner prepares a run of script. A nil logger discards output.
func NewRunner(script *Script, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{script: script, logger: logger}
}

// SetMetrics records the run's manager metrics into m.
func (r *Runner) SetMetrics(m *layoutanim.Metrics) {
	r.metrics = m
}

func (r *Runner) surface() layoutanim.SurfaceID {
	return layoutanim.SurfaceID(r.script.Surface)
}

// Run executes every step in order. It stops at the first mutation the view
// tree rejects or the first failed expectation; the frames up to that point
// are returned alongside the error.
func (r *Runner) Run() (*Result, error) {
	r.now = 0
	r.completions = nil
	r.mgr = layoutanim.NewManager(func(fn func()) { fn() }, nil)
	r.mgr.SetClock(func() int64 { return r.now })
	r.mgr.SetLogger(r.logger)
	r.mgr.SetMetrics(r.metrics)
	r.mgr.SetDebugMode(true)
	if len(r.script.Registry) > 0 {
		reg := make(layoutanim.RegistryMap, len(r.script.Registry))
		for _, name := range r.script.Registry {
			reg[name] = layoutanim.LinearProps
		}
		r.mgr.SetRegistry(reg)
	}
	r.model = r.script.Tree.shape(0)
	r.mounted = viewtree.FromShape(r.model)
	r.mounted.StrictViews = true

	res := &Result{}
	for i, st := range r.script.Steps {
		if st.At != nil {
			if *st.At < r.now {
				return res, fmt.Errorf("step %d: time %d is before %d", i, *st.At, r.now)
			}
			r.now = *st.At
		}
		frame, err := r.step(i, st)
		res.Frames = append(res.Frames, frame)
		if err != nil {
			return res, fmt.Errorf("step %d (%s at %d): %w", i, frame.Action, r.now, err)
		}
	}
	res.Final = r.mounted.Shape()
	res.Completions = r.completions
	return res, nil
}

func (r *Runner) step(i int, st Step) (Frame, error) {
	frame := Frame{Step: i, At: r.now, Action: st.action()}
	r.logger.Debug("scenario step", "step", i, "action", frame.Action, "at", r.now)

	switch frame.Action {
	case "configure":
		err := r.mgr.ConfigureNextAnimationRaw(st.Configure, r.record, nil)
		if err != nil {
			return frame, err
		}
	case "preset":
		anim := presets[st.Preset]()
		anim.OnSuccess = r.record
		r.mgr.ConfigureNextAnimation(anim)
	case "pull":
		to := st.Pull.shape(0)
		batch := viewtree.Diff(r.model, to)
		layoutanim.SortMutations(batch)
		r.model = to
		frame.Mutations = r.mgr.PullTransaction(r.surface(), batch)
		if err := r.mounted.Apply(frame.Mutations); err != nil {
			return frame, err
		}
	case "tick":
		frame.Mutations = r.mgr.Tick(r.surface())
		if err := r.mounted.Apply(frame.Mutations); err != nil {
			return frame, err
		}
	case "stop":
		r.mgr.StopSurface(r.surface())
	case "expect":
		if err := r.check(st.Expect); err != nil {
			return frame, err
		}
	}
	return frame, nil
}

func (r *Runner) record(c layoutanim.Completion) {
	r.completions = append(r.completions, c)
}

var presets = map[string]func() layoutanim.LayoutAnimation{
	"easeInEaseOut": layoutanim.PresetEaseInEaseOut,
	"linear":        layoutanim.PresetLinear,
	"spring":        layoutanim.PresetSpring,
}

func (r *Runner) check(e *Expect) error {
	if e.Inflight != nil {
		if got := r.mgr.InflightCount(r.surface()); got != *e.Inflight {
			return fmt.Errorf("%w: inflight = %d, want %d", ErrExpectation, got, *e.Inflight)
		}
	}
	if e.Tags != nil {
		var got []int32
		for _, tag := range r.mounted.Tags() {
			got = append(got, int32(tag))
		}
		if !slices.Equal(got, e.Tags) {
			return fmt.Errorf("%w: mounted tags = %v, want %v", ErrExpectation, got, e.Tags)
		}
	}
	for tag, want := range e.Props {
		n, ok := r.mounted.Node(layoutanim.Tag(tag))
		if !ok {
			return fmt.Errorf("%w: tag %d not mounted", ErrExpectation, tag)
		}
		for name, v := range want {
			if got, _ := n.View.Props.Number(name); !near(got, v) {
				return fmt.Errorf("%w: tag %d %s = %v, want %v", ErrExpectation, tag, name, got, v)
			}
		}
	}
	for tag, want := range e.Layout {
		n, ok := r.mounted.Node(layoutanim.Tag(tag))
		if !ok {
			return fmt.Errorf("%w: tag %d not mounted", ErrExpectation, tag)
		}
		got := n.View.Layout
		if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Width, want.Width) || !near(got.Height, want.Height) {
			return fmt.Errorf("%w: tag %d layout = %+v, want %+v", ErrExpectation, tag, got, want)
		}
	}
	if e.Settled {
		if r.mgr.InflightCount(r.surface()) != 0 {
			return fmt.Errorf("%w: animations still in flight", ErrExpectation)
		}
		if r.mounted.Len() != len(r.mounted.Tags()) {
			return fmt.Errorf("%w: detached nodes remain", ErrExpectation)
		}
		if diff := cmp.Diff(r.model, r.mounted.Shape(), cmpopts.EquateEmpty()); diff != "" {
			return fmt.Errorf("%w: mounted tree differs from the last pulled tree (-pulled +mounted):\n%s", ErrExpectation, diff)
		}
	}
	return nil
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func (n Node) view(parent int32) layoutanim.ShadowView {
	v := layoutanim.ShadowView{
		Tag:           layoutanim.Tag(n.Tag),
		ComponentName: n.Component,
		ParentTag:     layoutanim.Tag(parent),
		Layout: layoutanim.Rect{
			X: n.Layout.X, Y: n.Layout.Y, Width: n.Layout.Width, Height: n.Layout.Height,
		},
	}
	if v.ComponentName == "" {
		v.ComponentName = "View"
	}
	if len(n.Props) > 0 {
		v.Props = make(layoutanim.Props, len(n.Props))
		for name, raw := range n.Props {
			switch x := raw.(type) {
			case int:
				v.Props[name] = layoutanim.Number(float64(x))
			case float64:
				v.Props[name] = layoutanim.Number(x)
			default:
				v.Props[name] = layoutanim.Enum(fmt.Sprint(x))
			}
		}
	}
	return v
}

func (n Node) shape(parent int32) viewtree.Shape {
	s := viewtree.Shape{View: n.view(parent)}
	for _, c := range n.Children {
		s.Children = append(s.Children, c.shape(n.Tag))
	}
	return s
}
