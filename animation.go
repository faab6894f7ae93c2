package layoutanim

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing selects the curve that remaps linear progress before
// interpolation. Every curve satisfies f(0)=0 and f(1)=1 and never
// decreases.
type Easing uint8

const (
	EasingLinear        Easing = iota // constant rate
	EasingEaseIn                      // quadratic acceleration
	EasingEaseOut                     // quadratic deceleration
	EasingEaseInEaseOut               // quadratic in and out
	EasingSpring                      // fast start, soft landing; no overshoot
	EasingKeyboard                    // matches the software keyboard slide
)

var easingNames = [...]string{
	EasingLinear:        "linear",
	EasingEaseIn:        "easeIn",
	EasingEaseOut:       "easeOut",
	EasingEaseInEaseOut: "easeInEaseOut",
	EasingSpring:        "spring",
	EasingKeyboard:      "keyboard",
}

// ParseEasing returns the easing with the given host name.
func ParseEasing(name string) (Easing, error) {
	if e, ok := lookupName[Easing](easingNames[:], name); ok {
		return e, nil
	}
	return EasingLinear, fmt.Errorf("unknown easing %q", name)
}

func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", e)
}

// TweenFunc returns the gween curve backing e.
func (e Easing) TweenFunc() ease.TweenFunc {
	switch e {
	case EasingEaseIn:
		return ease.InQuad
	case EasingEaseOut:
		return ease.OutQuad
	case EasingEaseInEaseOut:
		return ease.InOutQuad
	case EasingSpring:
		return ease.OutCubic
	case EasingKeyboard:
		return ease.InOutSine
	default:
		return ease.Linear
	}
}

// Apply maps linear progress t in [0, 1] through the curve. The result is
// clamped so float32 rounding inside the curve cannot leave [0, 1].
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return clamp01(float64(e.TweenFunc()(float32(t), 0, 1, 1)))
}

// SampleCurve returns steps+1 evenly spaced samples of the curve, from
// progress 0 to 1 inclusive. Useful for previewing a curve.
func SampleCurve(e Easing, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	tw := gween.New(0, 1, float32(steps), e.TweenFunc())
	out := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v, _ := tw.Set(float32(i))
		out = append(out, clamp01(float64(v)))
	}
	return out
}

// Progress returns how far an animation governed by cfg and started at
// start (milliseconds) has advanced at now. linear is
// clamp((now - start - delay) / duration, 0, 1); eased is linear mapped
// through cfg.Easing. Before the delay elapses both are 0. A zero duration
// jumps straight to 1 once the delay has elapsed.
func Progress(now, start int64, cfg AnimationConfig) (linear, eased float64) {
	elapsed := float64(now-start) - cfg.Delay
	switch {
	case elapsed < 0:
		linear = 0
	case cfg.Duration <= 0:
		linear = 1
	default:
		linear = clamp01(elapsed / cfg.Duration)
	}
	return linear, cfg.Easing.Apply(linear)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
