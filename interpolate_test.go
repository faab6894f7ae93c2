package layoutanim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearPropsNumbers(t *testing.T) {
	start := Props{"opacity": Number(0), "scaleX": Number(1)}
	end := Props{"opacity": Number(1), "scaleX": Number(3)}
	got := LinearProps.InterpolateProps(0.25, start, end)
	want := Props{"opacity": Number(0.25), "scaleX": Number(1.5)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearPropsDiscreteSwitchesAtHalf(t *testing.T) {
	start := Props{"display": Enum("flex"), "gone": Number(1)}
	end := Props{"display": Enum("none"), "added": Number(2)}

	early := LinearProps.InterpolateProps(0.49, start, end)
	if diff := cmp.Diff(Props{"display": Enum("flex"), "gone": Number(1)}, early); diff != "" {
		t.Errorf("before half (-want +got):\n%s", diff)
	}
	late := LinearProps.InterpolateProps(0.5, start, end)
	if diff := cmp.Diff(Props{"display": Enum("none"), "added": Number(2)}, late); diff != "" {
		t.Errorf("at half (-want +got):\n%s", diff)
	}
}

func TestLinearPropsEndpointsExact(t *testing.T) {
	start := Props{"opacity": Number(0.1)}
	end := Props{"opacity": Number(0.7), "display": Enum("none")}
	if got := LinearProps.InterpolateProps(0, start, end); !got.Equal(start) {
		t.Errorf("progress 0 = %v, want start", got)
	}
	if got := LinearProps.InterpolateProps(1, start, end); !got.Equal(end) {
		t.Errorf("progress 1 = %v, want end", got)
	}
}

func TestLinearPropsDoesNotModifyInputs(t *testing.T) {
	start := Props{"opacity": Number(0)}
	end := Props{"opacity": Number(1)}
	LinearProps.InterpolateProps(0.5, start, end)
	if v, _ := start.Number("opacity"); v != 0 {
		t.Errorf("start modified: %v", v)
	}
	if v, _ := end.Number("opacity"); v != 1 {
		t.Errorf("end modified: %v", v)
	}
}

func TestInterpolateView(t *testing.T) {
	start := ShadowView{
		Tag: 5, ComponentName: "View", ParentTag: 1,
		Layout: Rect{X: 0, Y: 0, Width: 100, Height: 100},
		Props:  Props{"opacity": Number(1)},
	}
	end := start
	end.Layout = Rect{X: 100, Y: 0, Width: 100, Height: 100}
	end.Props = Props{"opacity": Number(0)}

	if got := Interpolate(0, start, end, nil); !got.Equal(start) {
		t.Errorf("progress 0 = %+v, want start", got)
	}
	if got := Interpolate(1, start, end, nil); !got.Equal(end) {
		t.Errorf("progress 1 = %+v, want end", got)
	}
	mid := Interpolate(0.5, start, end, nil)
	if mid.Layout.X != 50 {
		t.Errorf("mid X = %v, want 50", mid.Layout.X)
	}
	if v, _ := mid.Props.Number("opacity"); v != 0.5 {
		t.Errorf("mid opacity = %v, want 0.5", v)
	}
	if mid.Tag != 5 || mid.ComponentName != "View" {
		t.Errorf("identity lost: %+v", mid)
	}
}

func TestInterpolateCustomInterpolator(t *testing.T) {
	calls := 0
	pi := PropsInterpolatorFunc(func(progress float64, start, end Props) Props {
		calls++
		return end
	})
	start := ShadowView{Tag: 1, Props: Props{"a": Number(0)}}
	end := ShadowView{Tag: 1, Props: Props{"a": Number(1)}}
	got := Interpolate(0.3, start, end, pi)
	if calls != 1 {
		t.Errorf("interpolator called %d times, want 1", calls)
	}
	if v, _ := got.Props.Number("a"); v != 1 {
		t.Errorf("a = %v, want 1", v)
	}
}

func TestRegistryMap(t *testing.T) {
	r := RegistryMap{"View": LinearProps}
	if _, ok := r.PropsInterpolator("View"); !ok {
		t.Error("View should be registered")
	}
	if _, ok := r.PropsInterpolator("Image"); ok {
		t.Error("Image should not be registered")
	}
}

// monotoneRects returns start/end pairs where every layout field of end is
// at least the same field of start.
func monotoneRects() [][2]Rect {
	pairs := [][2]Rect{
		{{}, {}},
		{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 100, Y: 0, Width: 10, Height: 10}},
		{{X: -50, Y: -20, Width: 0, Height: 0}, {X: 50, Y: 20, Width: 300, Height: 1}},
		{{X: 1e-9, Y: 3, Width: 7, Height: 7}, {X: 2e-9, Y: 3, Width: 7, Height: 9}},
	}
	r := rand.New(rand.NewSource(7))
	for range 200 {
		var a, b Rect
		for _, f := range []struct{ lo, hi *float64 }{{&a.X, &b.X}, {&a.Y, &b.Y}, {&a.Width, &b.Width}, {&a.Height, &b.Height}} {
			*f.lo = r.Float64()*2000 - 1000
			*f.hi = *f.lo + r.Float64()*1000
		}
		pairs = append(pairs, [2]Rect{a, b})
	}
	return pairs
}

// checkMonotoneLayout samples at from 0 to 1 and fails if any layout field
// goes down by more than tol times the field's magnitude.
func checkMonotoneLayout(t *testing.T, name string, pair [2]Rect, tol float64, at func(progress float64) Rect) {
	t.Helper()
	const steps = 64
	below := func(cur, prev, a, b float64) bool {
		return cur < prev-tol*(math.Abs(a)+math.Abs(b))
	}
	a, b := pair[0], pair[1]
	prev := at(0)
	if prev != a {
		t.Errorf("%s: progress 0 = %+v, want %+v", name, prev, a)
	}
	for i := 1; i <= steps; i++ {
		cur := at(float64(i) / steps)
		if below(cur.X, prev.X, a.X, b.X) || below(cur.Y, prev.Y, a.Y, b.Y) ||
			below(cur.Width, prev.Width, a.Width, b.Width) || below(cur.Height, prev.Height, a.Height, b.Height) {
			t.Fatalf("%s: layout went down at step %d: %+v -> %+v (pair %+v)", name, i, prev, cur, pair)
		}
		prev = cur
	}
	if prev != pair[1] {
		t.Errorf("%s: progress 1 = %+v, want %+v", name, prev, pair[1])
	}
}

func TestRectLerpMonotone(t *testing.T) {
	for _, pair := range monotoneRects() {
		checkMonotoneLayout(t, "Lerp", pair, 1e-12, func(p float64) Rect {
			return pair[0].Lerp(pair[1], p)
		})
	}
}

func TestInterpolateLayoutMonotone(t *testing.T) {
	for _, pair := range monotoneRects() {
		start := ShadowView{Tag: 2, Layout: pair[0], Props: Props{"opacity": Number(1)}}
		end := ShadowView{Tag: 2, Layout: pair[1], Props: Props{"opacity": Number(0)}}
		for _, e := range allEasings {
			// Curves are evaluated in float32.
			checkMonotoneLayout(t, e.String(), pair, 1e-6, func(p float64) Rect {
				return Interpolate(e.Apply(p), start, end, nil).Layout
			})
		}
	}
}
