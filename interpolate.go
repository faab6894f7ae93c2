package layoutanim

// PropsInterpolator blends two property sets. Implementations must return
// start at progress 0 and end at progress 1 and must not modify either
// input.
type PropsInterpolator interface {
	InterpolateProps(progress float64, start, end Props) Props
}

// PropsInterpolatorFunc adapts a function to PropsInterpolator.
type PropsInterpolatorFunc func(progress float64, start, end Props) Props

// InterpolateProps calls f.
func (f PropsInterpolatorFunc) InterpolateProps(progress float64, start, end Props) Props {
	return f(progress, start, end)
}

// LinearProps interpolates numeric properties linearly and switches every
// other property (enums, and properties present on one side only) at
// progress 0.5.
var LinearProps PropsInterpolator = PropsInterpolatorFunc(lerpProps)

func lerpProps(progress float64, start, end Props) Props {
	if progress <= 0 {
		return start
	}
	if progress >= 1 {
		return end
	}
	late := progress >= 0.5
	out := make(Props, len(end))
	for name, ev := range end {
		sv, ok := start[name]
		switch {
		case ok && sv.Kind == ValueNumber && ev.Kind == ValueNumber:
			out[name] = Number(lerp(sv.Num, ev.Num, progress))
		case !ok || late:
			if late {
				out[name] = ev
			}
		default:
			out[name] = sv
		}
	}
	if !late {
		for name, sv := range start {
			if _, ok := end[name]; !ok {
				out[name] = sv
			}
		}
	}
	return out
}

// Registry maps a component name to the interpolator for its props. It
// stands in for the component descriptor registry of the host.
type Registry interface {
	PropsInterpolator(componentName string) (PropsInterpolator, bool)
}

// RegistryMap is a Registry backed by a map.
type RegistryMap map[string]PropsInterpolator

// PropsInterpolator returns the interpolator registered for componentName.
func (r RegistryMap) PropsInterpolator(componentName string) (PropsInterpolator, bool) {
	pi, ok := r[componentName]
	return pi, ok
}

// Interpolate returns the view at progress between start and end. Layout
// interpolates per axis; props go through pi (LinearProps when nil).
// Identity fields come from start before the halfway point and from end
// after it, so Interpolate(0, s, e) == s and Interpolate(1, s, e) == e.
func Interpolate(progress float64, start, end ShadowView, pi PropsInterpolator) ShadowView {
	if progress <= 0 {
		return start
	}
	if progress >= 1 {
		return end
	}
	if pi == nil {
		pi = LinearProps
	}
	out := end
	if progress < 0.5 {
		out = start
	}
	out.Layout = start.Layout.Lerp(end.Layout, progress)
	out.Props = pi.InterpolateProps(progress, start.Props, end.Props)
	return out
}
