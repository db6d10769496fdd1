package render

import (
	"gonum.org/v1/gonum/interp"
)

// smoothSteps is the number of interpolated segments between two points.
const smoothSteps = 8

// smoothCurve returns a monotone cubic interpolation of the points.
// Fewer than two points, or x values that are not strictly increasing,
// are returned unchanged.
func smoothCurve(xs, ys []float64) ([]float64, []float64) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return xs, ys
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return xs, ys
		}
	}

	var fb interp.FritschButland
	if err := fb.Fit(xs, ys); err != nil {
		return xs, ys
	}

	n := (len(xs)-1)*smoothSteps + 1
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < len(xs)-1; i++ {
		step := (xs[i+1] - xs[i]) / smoothSteps
		for s := 0; s < smoothSteps; s++ {
			x := xs[i] + float64(s)*step
			outX = append(outX, x)
			outY = append(outY, fb.Predict(x))
		}
	}
	last := len(xs) - 1
	outX = append(outX, xs[last])
	outY = append(outY, ys[last])
	return outX, outY
}
