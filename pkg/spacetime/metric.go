package spacetime

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// Component is a metric or connection coefficient evaluated at a 4-position
type Component func(pos core.Vec4) float64

func zero(core.Vec4) float64 { return 0 }

func invR(pos core.Vec4) float64 { return 1 / pos.R }

// metricDiagonal holds g_tt, g_rr, g_θθ, g_φφ
var metricDiagonal = [4]Component{
	func(pos core.Vec4) float64 { return -(1 - 1/pos.R) },
	func(pos core.Vec4) float64 { return 1 / (1 - 1/pos.R) },
	func(pos core.Vec4) float64 { return pos.R * pos.R },
	func(pos core.Vec4) float64 {
		s := math.Sin(pos.Theta)
		return pos.R * pos.R * s * s
	},
}

// Metric returns g_{μν} as a function of 4-position. The metric is diagonal,
// so every off-diagonal component is exactly zero.
func Metric(mu, nu int) Component {
	if mu != nu {
		return zero
	}
	return metricDiagonal[mu]
}

type index3 struct{ lambda, mu, nu int }

// connection lists the independent nonzero Γ^λ_{μν} with μ ≤ ν
var connection = map[index3]Component{
	{0, 0, 1}: func(pos core.Vec4) float64 { return 1 / (2 * pos.R * (pos.R - 1)) },
	{1, 0, 0}: func(pos core.Vec4) float64 { return (pos.R - 1) / (2 * pos.R * pos.R * pos.R) },
	{1, 1, 1}: func(pos core.Vec4) float64 { return -1 / (2 * pos.R * (pos.R - 1)) },
	{1, 2, 2}: func(pos core.Vec4) float64 { return -(pos.R - 1) },
	{1, 3, 3}: func(pos core.Vec4) float64 {
		s := math.Sin(pos.Theta)
		return -(pos.R - 1) * s * s
	},
	{2, 1, 2}: invR,
	{2, 3, 3}: func(pos core.Vec4) float64 { return -math.Sin(pos.Theta) * math.Cos(pos.Theta) },
	{3, 1, 3}: invR,
	{3, 2, 3}: func(pos core.Vec4) float64 { return math.Cos(pos.Theta) / math.Sin(pos.Theta) },
}

// connectionTable is the full 4x4x4 table, symmetric in the lower indices
var connectionTable [4][4][4]Component

// nonzeroTerms enumerates every (λ, μ, ν) whose coefficient is not identically zero
var nonzeroTerms []index3

func init() {
	for lambda := 0; lambda < 4; lambda++ {
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				lo, hi := mu, nu
				if lo > hi {
					lo, hi = hi, lo
				}
				c, ok := connection[index3{lambda, lo, hi}]
				if !ok {
					connectionTable[lambda][mu][nu] = zero
					continue
				}
				connectionTable[lambda][mu][nu] = c
				nonzeroTerms = append(nonzeroTerms, index3{lambda, mu, nu})
			}
		}
	}
}

// Christoffel returns the connection coefficient Γ^λ_{μν}.
// Γ^λ_{μν} and Γ^λ_{νμ} are the same function.
func Christoffel(lambda, mu, nu int) Component {
	return connectionTable[lambda][mu][nu]
}

// GeodesicAcceleration returns, for each λ, Σ_{μ,ν} Γ^λ_{μν}(pos) v^μ v^ν.
// Terms with an identically zero coefficient are skipped.
func GeodesicAcceleration(pos, vel core.Vec4) core.Vec4 {
	var acc [4]float64
	for _, term := range nonzeroTerms {
		acc[term.lambda] += connectionTable[term.lambda][term.mu][term.nu](pos) * vel.At(term.mu) * vel.At(term.nu)
	}
	return core.NewVec4(acc[0], acc[1], acc[2], acc[3])
}

// Interval returns g_{μν} v^μ v^ν, which is zero for a null vector
func Interval(pos, vel core.Vec4) float64 {
	sum := 0.0
	for mu := 0; mu < 4; mu++ {
		v := vel.At(mu)
		sum += Metric(mu, mu)(pos) * v * v
	}
	return sum
}

// EnforceNull rescales the spatial part of vel to unit proper length and
// solves for v^t so that vel is a null vector at pos. At or inside the
// horizon (g_tt >= 0) no solution exists and v^t is NaN; callers must check.
func EnforceNull(pos, vel core.Vec4) core.Vec4 {
	gtt := Metric(0, 0)(pos)
	grr := Metric(1, 1)(pos)
	gthth := Metric(2, 2)(pos)
	gphph := Metric(3, 3)(pos)

	spatial := grr*vel.R*vel.R + gthth*vel.Theta*vel.Theta + gphph*vel.Phi*vel.Phi
	if spatial > 0 && !math.IsInf(spatial, 0) {
		scale := 1 / math.Sqrt(spatial)
		vel.R *= scale
		vel.Theta *= scale
		vel.Phi *= scale
		spatial = grr*vel.R*vel.R + gthth*vel.Theta*vel.Theta + gphph*vel.Phi*vel.Phi
	}

	if !(gtt < 0) {
		vel.T = math.NaN()
		return vel
	}
	vel.T = math.Sqrt(spatial / -gtt)
	return vel
}
