package camera

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Homogeneous 3x3 affine matrices acting on column vectors (x, y, 1).

func translation(x, y float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	})
}

func scaling(sx, sy float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})
}

func rotation(theta float64) *mat.Dense {
	sin, cos := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	})
}

// compose multiplies left to right, so the last matrix is applied first.
func compose(ms ...*mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(ms[0])
	for _, m := range ms[1:] {
		var next mat.Dense
		next.Mul(out, m)
		out = &next
	}
	return out
}

func apply(m *mat.Dense, p r2.Vec) r2.Vec {
	var v mat.VecDense
	v.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Y, 1}))
	return r2.Vec{X: v.AtVec(0), Y: v.AtVec(1)}
}
