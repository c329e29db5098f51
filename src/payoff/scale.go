package payoff

import (
	"github.com/jiaming2012/options-machine/src/eventmodels"
)

const DefaultChartMargin = 10.0

// ChartScale maps curve coordinates linearly onto a width x height canvas with y growing downward.
type ChartScale struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	MinX   float64 `json:"min_x"`
	MaxX   float64 `json:"max_x"`
	MinY   float64 `json:"min_y"`
	MaxY   float64 `json:"max_y"`
}

// NewChartScale pads the payoff range by margin on both sides. An empty curve falls back to the current point.
func NewChartScale(curve eventmodels.PayoffCurve, width, height, margin float64) ChartScale {
	scale := ChartScale{Width: width, Height: height}

	points := curve.Points
	if len(points) == 0 {
		points = []eventmodels.PayoffPoint{curve.Current}
	}

	scale.MinX, scale.MaxX = points[0].Price, points[0].Price
	minY, maxY := points[0].PayoffPerShare, points[0].PayoffPerShare
	for _, pt := range points[1:] {
		if pt.Price < scale.MinX {
			scale.MinX = pt.Price
		}
		if pt.Price > scale.MaxX {
			scale.MaxX = pt.Price
		}
		if pt.PayoffPerShare < minY {
			minY = pt.PayoffPerShare
		}
		if pt.PayoffPerShare > maxY {
			maxY = pt.PayoffPerShare
		}
	}

	scale.MinY = minY - margin
	scale.MaxY = maxY + margin

	return scale
}

func (s ChartScale) X(price float64) float64 {
	if s.MaxX == s.MinX {
		return s.Width / 2
	}

	return (price - s.MinX) / (s.MaxX - s.MinX) * s.Width
}

func (s ChartScale) Y(payoff float64) float64 {
	if s.MaxY == s.MinY {
		return s.Height / 2
	}

	return s.Height - (payoff-s.MinY)/(s.MaxY-s.MinY)*s.Height
}

// ZeroLine is the canvas y of the break-even axis.
func (s ChartScale) ZeroLine() float64 {
	return s.Y(0)
}

type CanvasPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s ChartScale) Project(points []eventmodels.PayoffPoint) []CanvasPoint {
	out := make([]CanvasPoint, len(points))
	for i, pt := range points {
		out[i] = CanvasPoint{X: s.X(pt.Price), Y: s.Y(pt.PayoffPerShare)}
	}

	return out
}
