package fireworks

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// FadeCurve shapes how a particle's alpha falls from full to zero once its
// age passes the fade threshold. It follows gween's (t, b, c, d) convention:
// t is the time into the fade, b the start value, c the change and d the
// fade duration.
type FadeCurve = ease.TweenFunc

// fadeCurves lists the curves selectable by name from configuration.
var fadeCurves = map[string]FadeCurve{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
}

// LookupFadeCurve returns the fade curve registered under name. The empty
// name selects the linear ramp.
func LookupFadeCurve(name string) (FadeCurve, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := fadeCurves[name]
	if !ok {
		return nil, fmt.Errorf("unknown fade easing %q (have %v)", name, FadeCurveNames())
	}
	return fn, nil
}

// FadeCurveNames returns the registered curve names in sorted order.
func FadeCurveNames() []string {
	names := make([]string, 0, len(fadeCurves))
	for n := range fadeCurves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// fadeAlpha evaluates curve for a fade that starts at base alpha and reaches
// zero after duration seconds. elapsed is clamped to [0, duration].
func fadeAlpha(curve FadeCurve, base uint8, elapsed, duration float64) int {
	if elapsed <= 0 {
		return int(base)
	}
	if elapsed >= duration {
		return 0
	}
	b := float32(base)
	v := curve(float32(elapsed), b, -b, float32(duration))
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}
