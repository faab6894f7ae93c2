package layoutanim_test

import (
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/phanxgames/layoutanim"
	"github.com/phanxgames/layoutanim/viewtree"
)

// treeModel is the differ's side of a randomized replay: a tree edited at
// random between pulls.
type treeModel struct {
	next  layoutanim.Tag
	views map[layoutanim.Tag]layoutanim.ShadowView
	kids  map[layoutanim.Tag][]layoutanim.Tag
}

func newTreeModel() *treeModel {
	md := &treeModel{
		next:  2,
		views: map[layoutanim.Tag]layoutanim.ShadowView{1: view(1, 0, 0)},
		kids:  map[layoutanim.Tag][]layoutanim.Tag{},
	}
	return md
}

func (md *treeModel) shape() viewtree.Shape {
	var build func(tag layoutanim.Tag) viewtree.Shape
	build = func(tag layoutanim.Tag) viewtree.Shape {
		s := viewtree.Shape{View: md.views[tag]}
		for _, k := range md.kids[tag] {
			s.Children = append(s.Children, build(k))
		}
		return s
	}
	return build(1)
}

func (md *treeModel) tags() []layoutanim.Tag {
	return slices.Sorted(maps.Keys(md.views))
}

func (md *treeModel) pick(r *rand.Rand, withRoot bool) (layoutanim.Tag, bool) {
	tags := md.tags()
	if !withRoot {
		tags = tags[1:]
	}
	if len(tags) == 0 {
		return 0, false
	}
	return tags[r.Intn(len(tags))], true
}

func (md *treeModel) subtree(tag layoutanim.Tag) []layoutanim.Tag {
	out := []layoutanim.Tag{tag}
	for _, k := range md.kids[tag] {
		out = append(out, md.subtree(k)...)
	}
	return out
}

func (md *treeModel) detach(tag layoutanim.Tag) {
	parent := md.views[tag].ParentTag
	md.kids[parent] = slices.DeleteFunc(md.kids[parent], func(t layoutanim.Tag) bool { return t == tag })
	if len(md.kids[parent]) == 0 {
		delete(md.kids, parent)
	}
}

func (md *treeModel) attach(r *rand.Rand, tag, parent layoutanim.Tag) {
	v := md.views[tag]
	v.ParentTag = parent
	md.views[tag] = v
	at := r.Intn(len(md.kids[parent]) + 1)
	md.kids[parent] = slices.Insert(md.kids[parent], at, tag)
}

func (md *treeModel) edit(r *rand.Rand) {
	switch r.Intn(4) {
	case 0:
		parent, _ := md.pick(r, true)
		tag := md.next
		md.next++
		v := view(tag, parent, float64(r.Intn(100)))
		if r.Intn(4) == 0 {
			v.ComponentName = "Text"
		}
		md.views[tag] = v
		md.attach(r, tag, parent)
	case 1:
		tag, ok := md.pick(r, false)
		if !ok {
			return
		}
		md.detach(tag)
		for _, t := range md.subtree(tag) {
			delete(md.views, t)
			delete(md.kids, t)
		}
	case 2:
		tag, ok := md.pick(r, false)
		if !ok {
			return
		}
		target, _ := md.pick(r, true)
		if slices.Contains(md.subtree(tag), target) {
			return
		}
		md.detach(tag)
		md.attach(r, tag, target)
	default:
		tag, _ := md.pick(r, true)
		v := md.views[tag]
		switch r.Intn(3) {
		case 0:
			v.Layout.X = float64(r.Intn(200))
		case 1:
			v = v.WithProp("opacity", layoutanim.Number(r.Float64()))
		default:
			v = v.WithProp("display", layoutanim.Enum([]string{"flex", "none"}[r.Intn(2)]))
		}
		md.views[tag] = v
	}
}

func randomAnimation(r *rand.Rand) layoutanim.LayoutAnimation {
	anim := layoutanim.LayoutAnimation{Duration: 100}
	mk := func(kind layoutanim.ConfigKind) *layoutanim.AnimationConfig {
		if r.Intn(3) == 0 {
			return nil
		}
		return &layoutanim.AnimationConfig{
			Kind:          kind,
			Easing:        layoutanim.Easing(r.Intn(6)),
			Property:      layoutanim.AnimatedProperty(r.Intn(4)),
			Duration:      float64(r.Intn(200)),
			Delay:         float64(r.Intn(3) * 20),
			SpringDamping: 0.5,
		}
	}
	anim.Create = mk(layoutanim.KindCreate)
	anim.Update = mk(layoutanim.KindUpdate)
	anim.Delete = mk(layoutanim.KindDelete)
	return anim
}

func TestRandomizedReplayConverges(t *testing.T) {
	const seeds, steps = 300, 40
	for seed := int64(0); seed < seeds; seed++ {
		r := rand.New(rand.NewSource(seed))
		clock := &fakeClock{now: 0}
		rec := &recorder{}
		m := newTestManager(clock)
		if seed%4 == 0 {
			m.SetRegistry(layoutanim.RegistryMap{"View": layoutanim.LinearProps})
		}

		md := newTreeModel()
		for range 4 {
			md.edit(r)
		}
		h := newSurfaceHarness(m, surface, md.shape())
		configured := 0

		for step := range steps {
			switch op := r.Intn(10); {
			case op < 4:
				if r.Intn(2) == 0 {
					anim := randomAnimation(r)
					anim.OnSuccess = rec.callback
					m.ConfigureNextAnimation(anim)
					configured++
				}
				for range 1 + r.Intn(3) {
					md.edit(r)
				}
				if _, err := h.pull(md.shape()); err != nil {
					t.Fatalf("seed %d step %d: %v", seed, step, err)
				}
			case op < 8:
				clock.Advance(int64(r.Intn(80)))
				if _, err := h.tick(); err != nil {
					t.Fatalf("seed %d step %d: %v", seed, step, err)
				}
			case op == 8:
				m.StopSurface(surface)
			default:
				if _, err := h.pull(md.shape()); err != nil {
					t.Fatalf("seed %d step %d: %v", seed, step, err)
				}
			}
		}

		// A stop left pending is handled here as well.
		if _, err := h.pull(md.shape()); err != nil {
			t.Fatalf("seed %d settle pull: %v", seed, err)
		}
		clock.Advance(1_000)
		if _, err := h.tick(); err != nil {
			t.Fatalf("seed %d settle tick: %v", seed, err)
		}
		if err := h.converged(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got := m.InflightCount(surface); got != 0 {
			t.Fatalf("seed %d: InflightCount = %d after settling", seed, got)
		}
		if got := len(rec.calls()); got > configured {
			t.Fatalf("seed %d: %d completions for %d configured animations", seed, got, configured)
		}
	}
}
