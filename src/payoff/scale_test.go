package payoff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

func TestChartScale(t *testing.T) {
	t.Run("maps domain and padded range onto the canvas", func(t *testing.T) {
		curve := BuildCurve(longCall(), eventmodels.CurveRange{Min: 90, Max: 120, Step: 10})
		scale := NewChartScale(curve, 300, 200, DefaultChartMargin)

		assert.Equal(t, 90.0, scale.MinX)
		assert.Equal(t, 120.0, scale.MaxX)
		assert.Equal(t, -15.0, scale.MinY)
		assert.Equal(t, 25.0, scale.MaxY)

		assert.Equal(t, 0.0, scale.X(90))
		assert.Equal(t, 300.0, scale.X(120))
		assert.Equal(t, 200.0, scale.Y(-15))
		assert.Equal(t, 0.0, scale.Y(25))
		assert.Equal(t, 125.0, scale.ZeroLine())
	})

	t.Run("flat curve without margin maps to the vertical center", func(t *testing.T) {
		curve := eventmodels.PayoffCurve{
			Points: []eventmodels.PayoffPoint{
				{Price: 1, PayoffPerShare: 3},
				{Price: 2, PayoffPerShare: 3},
			},
		}
		scale := NewChartScale(curve, 100, 50, 0)

		assert.Equal(t, 25.0, scale.Y(3))
		assert.Equal(t, 25.0, scale.Y(-100))
	})

	t.Run("single price maps to the horizontal center", func(t *testing.T) {
		curve := eventmodels.PayoffCurve{Current: eventmodels.PayoffPoint{Price: 100, PayoffPerShare: 0}}
		scale := NewChartScale(curve, 100, 50, 0)

		assert.Equal(t, 50.0, scale.X(100))
		assert.Equal(t, 25.0, scale.Y(0))
	})

	t.Run("project", func(t *testing.T) {
		curve := BuildCurve(longCall(), eventmodels.CurveRange{Min: 90, Max: 120, Step: 10})
		scale := NewChartScale(curve, 300, 200, DefaultChartMargin)

		projected := scale.Project(curve.Points)

		assert.Len(t, projected, 4)
		assert.Equal(t, CanvasPoint{X: 0, Y: 150}, projected[0])
	})
}
