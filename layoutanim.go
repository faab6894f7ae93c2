package layoutanim

import (
	"maps"
	"strconv"
)

// Tag identifies a node. A tag is stable for the lifetime of the node and is
// unique within its surface.
type Tag int32

// SurfaceID identifies an independent root tree. All animation state is
// partitioned by surface.
type SurfaceID int32

// Rect is an axis-aligned layout rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Lerp returns the rectangle at fraction t between r and to, per axis.
// Lerp(0) is exactly r and Lerp(1) is exactly to.
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X:      lerp(r.X, to.X, t),
		Y:      lerp(r.Y, to.Y, t),
		Width:  lerp(r.Width, to.Width, t),
		Height: lerp(r.Height, to.Height, t),
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// lerp is written as a weighted sum so both endpoints are reproduced exactly.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// ValueKind distinguishes interpolatable numbers from discrete values.
type ValueKind uint8

const (
	ValueNumber ValueKind = iota // interpolates linearly
	ValueEnum                    // switches from start to end at progress 0.5
)

// Value is a single named view property. Numeric values are interpolated;
// enum values (colors by name, display modes, ...) snap.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number returns a numeric property value.
func Number(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

// Enum returns a discrete property value.
func Enum(s string) Value {
	return Value{Kind: ValueEnum, Str: s}
}

func (v Value) String() string {
	if v.Kind == ValueNumber {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return strconv.Quote(v.Str)
}

// Props is the open set of animatable properties of a view. A Props value
// belongs to an immutable ShadowView snapshot: never write to a map obtained
// from a view, derive a new one with With or Clone instead.
type Props map[string]Value

// Clone returns a shallow copy of p. Clone of a nil map is nil.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// With returns a copy of p with name set to v.
func (p Props) With(name string, v Value) Props {
	out := make(Props, len(p)+1)
	maps.Copy(out, p)
	out[name] = v
	return out
}

// Number returns the numeric value of name, if present and numeric.
func (p Props) Number(name string) (float64, bool) {
	v, ok := p[name]
	if !ok || v.Kind != ValueNumber {
		return 0, false
	}
	return v.Num, true
}

// Equal reports whether p and other hold the same properties. A nil map
// equals an empty one.
func (p Props) Equal(other Props) bool {
	return maps.Equal(p, other)
}

// ShadowView is an immutable snapshot of one node at a point in time. Two
// snapshots of the same tag taken at different times are the endpoints of an
// interpolation.
type ShadowView struct {
	Tag           Tag
	ComponentName string
	ParentTag     Tag // by reference only; the view does not own its parent
	Layout        Rect
	Props         Props
}

// Equal reports whether v and other describe the same snapshot.
func (v ShadowView) Equal(other ShadowView) bool {
	return v.Tag == other.Tag &&
		v.ComponentName == other.ComponentName &&
		v.ParentTag == other.ParentTag &&
		v.Layout == other.Layout &&
		v.Props.Equal(other.Props)
}

// WithProp returns a copy of v with the property name set to value.
func (v ShadowView) WithProp(name string, value Value) ShadowView {
	v.Props = v.Props.With(name, value)
	return v
}
