package habit

import "math"

const DefaultRingRadius = 40.0

// Ring is the geometry of a radial progress indicator drawn as an SVG circle
// whose stroke dash offset hides the unfinished fraction.
type Ring struct {
	Radius        float64 `json:"radius"`
	Circumference float64 `json:"circumference"`
	DashOffset    float64 `json:"dash_offset"`
	Percent       int     `json:"percent"`
}

func NewRing(rate, radius float64) Ring {
	rate = math.Max(0, math.Min(rate, 1))
	c := 2 * math.Pi * radius
	return Ring{
		Radius:        radius,
		Circumference: c,
		DashOffset:    (1 - rate) * c,
		Percent:       int(math.Round(rate * 100)),
	}
}
