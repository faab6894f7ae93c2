package layoutanim

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every decoding failure.
var ErrInvalidConfig = errors.New("layoutanim: invalid animation config")

// ConfigKind names the mutation family an AnimationConfig governs.
type ConfigKind uint8

const (
	KindCreate ConfigKind = iota // nodes appearing
	KindUpdate                   // layout and prop changes of existing nodes
	KindDelete                   // nodes disappearing
)

var configKindNames = [...]string{
	KindCreate: "create",
	KindUpdate: "update",
	KindDelete: "delete",
}

func (k ConfigKind) String() string {
	if int(k) < len(configKindNames) {
		return configKindNames[k]
	}
	return fmt.Sprintf("ConfigKind(%d)", k)
}

// AnimatedProperty selects which property a create or delete animation fades
// from or to zero. Update animations interpolate every property.
type AnimatedProperty uint8

const (
	PropertyOpacity AnimatedProperty = iota // "opacity"
	PropertyScaleX                          // "scaleX"
	PropertyScaleY                          // "scaleY"
	PropertyScaleXY                         // "scaleX" and "scaleY"
)

var animatedPropertyNames = [...]string{
	PropertyOpacity: "opacity",
	PropertyScaleX:  "scaleX",
	PropertyScaleY:  "scaleY",
	PropertyScaleXY: "scaleXY",
}

func (p AnimatedProperty) String() string {
	if int(p) < len(animatedPropertyNames) {
		return animatedPropertyNames[p]
	}
	return fmt.Sprintf("AnimatedProperty(%d)", p)
}

// hidden returns v with the animated property zeroed: the invisible
// endpoint of a create or delete animation.
func (p AnimatedProperty) hidden(v ShadowView) ShadowView {
	switch p {
	case PropertyScaleX:
		return v.WithProp("scaleX", Number(0))
	case PropertyScaleY:
		return v.WithProp("scaleY", Number(0))
	case PropertyScaleXY:
		return v.WithProp("scaleX", Number(0)).WithProp("scaleY", Number(0))
	default:
		return v.WithProp("opacity", Number(0))
	}
}

// AnimationConfig describes how one kind of mutation animates. Durations and
// delays are in milliseconds.
type AnimationConfig struct {
	Kind            ConfigKind
	Easing          Easing
	Property        AnimatedProperty
	Duration        float64 `validate:"gte=0"`
	Delay           float64 `validate:"gte=0"`
	SpringDamping   float64 `validate:"gt=0,lte=1"`
	InitialVelocity float64
}

// Completion is passed to a success callback once every keyframe of a
// LayoutAnimation has terminated. Interrupted is set when at least one of
// them was cut short by a conflicting mutation or a stopped surface.
type Completion struct {
	Interrupted bool
}

// Callback receives the completion of a LayoutAnimation.
type Callback func(Completion)

// FailureCallback receives the reason a configuration was rejected.
type FailureCallback func(error)

// LayoutAnimation governs the mutations of one transaction pull. Any of
// Create, Update and Delete may be nil, in which case mutations of that kind
// apply immediately.
type LayoutAnimation struct {
	Duration  float64
	Create    *AnimationConfig
	Update    *AnimationConfig
	Delete    *AnimationConfig
	OnSuccess Callback
	OnFailure FailureCallback
}

func (a *LayoutAnimation) config(kind ConfigKind) *AnimationConfig {
	if a == nil {
		return nil
	}
	switch kind {
	case KindCreate:
		return a.Create
	case KindUpdate:
		return a.Update
	default:
		return a.Delete
	}
}

var validate = validator.New()

// DecodeLayoutAnimation decodes a host configuration value, as produced by
// decoding JSON or YAML into an any, into a LayoutAnimation carrying the two
// callbacks. The top-level "duration" is required. Each of the optional
// "create", "update" (alias "layout") and "delete" objects requires a
// "type" naming its easing; "property", "duration", "delay",
// "springDamping" and "initialVelocity" are optional.
//
// Errors wrap ErrInvalidConfig. A failed decode never yields a partial
// animation, and neither callback is invoked here.
func DecodeLayoutAnimation(raw any, onSuccess Callback, onFailure FailureCallback) (LayoutAnimation, error) {
	obj, ok := asObject(raw)
	if !ok {
		return LayoutAnimation{}, fmt.Errorf("%w: expected object, got %T", ErrInvalidConfig, raw)
	}
	duration, ok, err := numberField(obj, "duration")
	if err != nil {
		return LayoutAnimation{}, err
	}
	if !ok {
		return LayoutAnimation{}, fmt.Errorf("%w: missing duration", ErrInvalidConfig)
	}
	if err := validate.Var(duration, "gte=0"); err != nil {
		return LayoutAnimation{}, fmt.Errorf("%w: duration: %v", ErrInvalidConfig, err)
	}

	anim := LayoutAnimation{Duration: duration, OnSuccess: onSuccess, OnFailure: onFailure}
	if _, hasUpdate := obj["update"]; hasUpdate {
		if _, hasLayout := obj["layout"]; hasLayout {
			return LayoutAnimation{}, fmt.Errorf("%w: both update and layout given", ErrInvalidConfig)
		}
	}
	for _, key := range []string{"create", "update", "layout", "delete"} {
		sub, present := obj[key]
		if !present || sub == nil {
			continue
		}
		kind := KindUpdate
		switch key {
		case "create":
			kind = KindCreate
		case "delete":
			kind = KindDelete
		}
		cfg, err := decodeAnimationConfig(key, sub, kind, duration)
		if err != nil {
			return LayoutAnimation{}, err
		}
		switch kind {
		case KindCreate:
			anim.Create = cfg
		case KindUpdate:
			anim.Update = cfg
		case KindDelete:
			anim.Delete = cfg
		}
	}
	return anim, nil
}

// DecodeLayoutAnimationYAML decodes a YAML (or JSON) document and passes the
// result to DecodeLayoutAnimation.
func DecodeLayoutAnimationYAML(data []byte, onSuccess Callback, onFailure FailureCallback) (LayoutAnimation, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return LayoutAnimation{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return DecodeLayoutAnimation(raw, onSuccess, onFailure)
}

func decodeAnimationConfig(key string, raw any, kind ConfigKind, parentDuration float64) (*AnimationConfig, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected object, got %T", ErrInvalidConfig, key, raw)
	}
	cfg := &AnimationConfig{
		Kind:          kind,
		Duration:      parentDuration,
		SpringDamping: 0.5,
	}

	typ, ok := obj["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing or non-string type", ErrInvalidConfig, key)
	}
	if cfg.Easing, ok = lookupName[Easing](easingNames[:], typ); !ok {
		return nil, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidConfig, key, typ)
	}

	if v, present := obj["property"]; present {
		name, isString := v.(string)
		if !isString {
			return nil, fmt.Errorf("%w: %s: property must be a string", ErrInvalidConfig, key)
		}
		p, known := lookupName[AnimatedProperty](animatedPropertyNames[:], name)
		if !known {
			return nil, fmt.Errorf("%w: %s: unknown property %q", ErrInvalidConfig, key, name)
		}
		cfg.Property = p
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"duration", &cfg.Duration},
		{"delay", &cfg.Delay},
		{"springDamping", &cfg.SpringDamping},
		{"initialVelocity", &cfg.InitialVelocity},
	} {
		v, ok, err := numberField(obj, f.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if ok {
			*f.dst = v
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return cfg, nil
}

func lookupName[T ~uint8](names []string, name string) (T, bool) {
	for i, n := range names {
		if n == name {
			return T(i), true
		}
	}
	return 0, false
}

func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// numberField reports ok=false when name is absent and an error when it is
// present but not a number.
func numberField(obj map[string]any, name string) (float64, bool, error) {
	raw, present := obj[name]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case uint:
		return float64(v), true, nil
	case uint64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidConfig, name, raw)
	}
}

// PresetEaseInEaseOut mirrors the host's easeInEaseOut preset: 300 ms,
// opacity fades for creates and deletes.
func PresetEaseInEaseOut() LayoutAnimation {
	return preset(300, EasingEaseInEaseOut, EasingEaseInEaseOut, 0.5)
}

// PresetLinear mirrors the host's linear preset: 500 ms throughout.
func PresetLinear() LayoutAnimation {
	return preset(500, EasingLinear, EasingLinear, 0.5)
}

// PresetSpring mirrors the host's spring preset: 700 ms, linear fades and a
// spring curve for updates.
func PresetSpring() LayoutAnimation {
	return preset(700, EasingLinear, EasingSpring, 0.4)
}

func preset(duration float64, fade, update Easing, damping float64) LayoutAnimation {
	mk := func(kind ConfigKind, e Easing) *AnimationConfig {
		return &AnimationConfig{
			Kind:          kind,
			Easing:        e,
			Property:      PropertyOpacity,
			Duration:      duration,
			SpringDamping: damping,
		}
	}
	return LayoutAnimation{
		Duration: duration,
		Create:   mk(KindCreate, fade),
		Update:   mk(KindUpdate, update),
		Delete:   mk(KindDelete, fade),
	}
}
