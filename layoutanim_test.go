package layoutanim

import (
	"testing"
)

func TestRectLerpEndpoints(t *testing.T) {
	a := Rect{X: 0.1, Y: 0.7, Width: 3.3, Height: 100}
	b := Rect{X: 17, Y: -4.2, Width: 0.3, Height: 1e-3}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
}

func TestRectLerpMidpoint(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	b := Rect{X: 100, Y: 20, Width: 200, Height: 50}
	want := Rect{X: 50, Y: 10, Width: 150, Height: 50}
	if got := a.Lerp(b, 0.5); got != want {
		t.Errorf("Lerp(0.5) = %+v, want %+v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{30, 15, true},
		{20, 12, true},
		{9.9, 12, false},
		{20, 15.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPropsWithCopies(t *testing.T) {
	p := Props{"opacity": Number(1)}
	q := p.With("opacity", Number(0))
	if v, _ := p.Number("opacity"); v != 1 {
		t.Errorf("original opacity = %v, want 1", v)
	}
	if v, _ := q.Number("opacity"); v != 0 {
		t.Errorf("copy opacity = %v, want 0", v)
	}
}

func TestPropsNumberRejectsEnum(t *testing.T) {
	p := Props{"display": Enum("flex")}
	if _, ok := p.Number("display"); ok {
		t.Error("Number on enum prop should report false")
	}
	if _, ok := p.Number("missing"); ok {
		t.Error("Number on missing prop should report false")
	}
}

func TestPropsEqualNilEmpty(t *testing.T) {
	var nilProps Props
	if !nilProps.Equal(Props{}) {
		t.Error("nil props should equal empty props")
	}
	if nilProps.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestShadowViewWithPropLeavesOriginal(t *testing.T) {
	v := ShadowView{Tag: 3, Props: Props{"opacity": Number(1)}}
	w := v.WithProp("opacity", Number(0.25))
	if v.Equal(w) {
		t.Fatal("views should differ after WithProp")
	}
	if got, _ := v.Props.Number("opacity"); got != 1 {
		t.Errorf("original opacity = %v, want 1", got)
	}
}

func TestMutationTag(t *testing.T) {
	parent := ShadowView{Tag: 1}
	child := ShadowView{Tag: 7}
	tests := []struct {
		m    Mutation
		want Tag
	}{
		{CreateMutation(child), 7},
		{DeleteMutation(child), 7},
		{InsertMutation(parent, child, 0), 7},
		{RemoveMutation(parent, child, 0), 7},
		{UpdateMutation(parent, child, child), 7},
	}
	for _, tt := range tests {
		if got := tt.m.Tag(); got != tt.want {
			t.Errorf("%s: Tag() = %d, want %d", tt.m.Type, got, tt.want)
		}
	}
}
