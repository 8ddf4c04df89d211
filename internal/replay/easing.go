package replay

import "strings"

// Easing maps linear progress in [0,1] to eased progress in [0,1]
type Easing func(float64) float64

func linear(t float64) float64 { return t }

func easeIn(t float64) float64 { return t * t }

func easeOut(t float64) float64 { return t * (2 - t) }

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

var easings = map[string]Easing{
	"linear":      linear,
	"ease-in":     easeIn,
	"ease-out":    easeOut,
	"ease-in-out": easeInOut,
}

// EasingByName looks up a named curve. Unknown names fall back to linear.
// Names are case-insensitive and accept camelCase ("easeInOut").
func EasingByName(name string) Easing {
	key := strings.ToLower(strings.TrimSpace(name))
	if e, ok := easings[key]; ok {
		return e
	}
	switch key {
	case "easein":
		return easeIn
	case "easeout":
		return easeOut
	case "easeinout":
		return easeInOut
	}
	return linear
}

// EasingNames lists the supported curve names
func EasingNames() []string {
	return []string{"linear", "ease-in", "ease-out", "ease-in-out"}
}
