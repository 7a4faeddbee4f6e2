package rgb2spec

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/achilleasa/prism/cie"
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/types"
)

const (
	lambdaMin = cie.LambdaMin
	lambdaMax = cie.LambdaMax

	// fineSamples subdivides every 5nm observer step in three for the
	// Simpson 3/8 quadrature, plus the closing endpoint.
	fineSamples = (cie.NSamples-1)*3 + 1

	fitIterations = 15
	// fitEpsilon is the central difference step for the Jacobian.
	fitEpsilon = 1e-4
	// pivotEpsilon is the LUP pivot tolerance; the fit runs in float64
	// precisely because this threshold sits below float32 resolution.
	pivotEpsilon = 1e-15
	// coeffClamp limits runaway coefficients between iterations.
	coeffClamp = 200.0
)

// DefaultResolution is the grid size used when a table has to be
// fitted in process. Prebuilt assets normally use 64.
const DefaultResolution = 16

// quadrature caches the wavelengths and weighted observer values the
// residual integrates over. The polynomial is fitted in a wavelength
// domain normalized to [0, 1] to keep the normal equations well
// conditioned; coefficients are rescaled to nanometers when stored.
type quadrature struct {
	lambda [fineSamples]float64
	xyz    [3][fineSamples]float64
}

func newQuadrature() *quadrature {
	q := &quadrature{}
	h := (lambdaMax - lambdaMin) / float64(fineSamples-1)

	var yInt float64
	for i := 0; i < fineSamples; i++ {
		lambda := lambdaMin + h*float64(i)

		weight := 3.0 / 8.0 * h
		switch {
		case i == 0 || i == fineSamples-1:
		case (i-1)%3 == 2:
			weight *= 2
		default:
			weight *= 3
		}

		q.lambda[i] = (lambda - lambdaMin) / (lambdaMax - lambdaMin)
		q.xyz[0][i] = cie.Interp(&cie.X, lambda) * weight
		q.xyz[1][i] = cie.Interp(&cie.Y, lambda) * weight
		q.xyz[2][i] = cie.Interp(&cie.Z, lambda) * weight
		yInt += q.xyz[1][i]
	}

	// Normalizing by the Y integral makes a unit reflectance map to
	// unit luminance, matching the runtime spectrum to XYZ conversion.
	for k := 0; k < 3; k++ {
		for i := range q.xyz[k] {
			q.xyz[k][i] /= yInt
		}
	}
	return q
}

func sigmoid64(x float64) float64 {
	if math.IsInf(x, 0) {
		if x > 0 {
			return 1
		}
		return 0
	}
	return 0.5 + x/(2*math.Sqrt(1+x*x))
}

// xyzToLab converts a tristimulus value to CIE Lab relative to the
// given reference white.
func xyzToLab(v, white types.Vec3d) types.Vec3d {
	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return (t*903.3 + 16) / 116
	}
	fx := f(v[0] / white[0])
	fy := f(v[1] / white[1])
	fz := f(v[2] / white[2])
	return types.Vec3d{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

type fitContext struct {
	quad     *quadrature
	rgbToXYZ types.Mat3d
	white    types.Vec3d
}

// residual measures the Lab distance between the target RGB and the
// color produced by the sigmoid polynomial with the given coefficients.
func (fc *fitContext) residual(coeffs [3]float64, target types.Vec3d) types.Vec3d {
	var est types.Vec3d
	for i := 0; i < fineSamples; i++ {
		l := fc.quad.lambda[i]
		s := sigmoid64(l*l*coeffs[0] + l*coeffs[1] + coeffs[2])
		est[0] += fc.quad.xyz[0][i] * s
		est[1] += fc.quad.xyz[1][i] * s
		est[2] += fc.quad.xyz[2][i] * s
	}

	want := xyzToLab(fc.rgbToXYZ.MulVec(target), fc.white)
	got := xyzToLab(est, fc.white)
	return types.Vec3d{want[0] - got[0], want[1] - got[1], want[2] - got[2]}
}

// jacobian approximates the residual derivative with central
// differences.
func (fc *fitContext) jacobian(coeffs [3]float64, target types.Vec3d) types.Mat3d {
	var j types.Mat3d
	for i := 0; i < 3; i++ {
		tmp := coeffs
		tmp[i] -= fitEpsilon
		r0 := fc.residual(tmp, target)

		tmp = coeffs
		tmp[i] += fitEpsilon
		r1 := fc.residual(tmp, target)

		for row := 0; row < 3; row++ {
			j[row][i] = (r1[row] - r0[row]) / (2 * fitEpsilon)
		}
	}
	return j
}

// gaussNewton refines coeffs in place towards the target RGB. The
// returned error carries the offending Jacobian when the normal
// equations go singular.
func (fc *fitContext) gaussNewton(target types.Vec3d, coeffs *[3]float64) error {
	for it := 0; it < fitIterations; it++ {
		r := fc.residual(*coeffs, target)
		j := fc.jacobian(*coeffs, target)

		l, u, p, err := types.LUPDecompose(j, pivotEpsilon)
		if err != nil {
			return fmt.Errorf("%v for jacobian %v", err, j)
		}
		step := types.LUPSolve(l, u, p, r)

		for i := 0; i < 3; i++ {
			coeffs[i] -= step[i]
		}

		max := math.Max(coeffs[0], math.Max(coeffs[1], coeffs[2]))
		if max > coeffClamp {
			for i := 0; i < 3; i++ {
				coeffs[i] *= coeffClamp / max
			}
		}

		if r[0]*r[0]+r[1]*r[1]+r[2]*r[2] < 1e-6 {
			break
		}
	}
	return nil
}

// store rescales coefficients from the normalized fitting domain to
// raw nanometer wavelengths and writes them into the table.
func (t *Table) store(maxc, zi, yi, xi int, coeffs [3]float64) {
	const (
		m = lambdaMin
		s = 1 / (lambdaMax - lambdaMin)
	)
	a, b, c := coeffs[0], coeffs[1], coeffs[2]

	idx := (((maxc*t.Resolution+zi)*t.Resolution+yi)*t.Resolution + xi) * 3
	t.Coeffs[idx+0] = float32(a * s * s)
	t.Coeffs[idx+1] = float32(b*s - 2*a*m*s*s)
	t.Coeffs[idx+2] = float32(c - b*m*s + a*(m*s)*(m*s))
}

// fitColumn fits every z cell of one (dominant channel, y, x) column.
// The walk starts a fifth of the way up the z axis and proceeds
// outward in both directions so each cell seeds its neighbor, which
// keeps the solver on the smooth branch of the coefficient manifold.
func (fc *fitContext) fitColumn(t *Table, zNodes []float64, maxc, yi, xi int) error {
	res := t.Resolution
	x := float64(xi) / float64(res-1)
	y := float64(yi) / float64(res-1)

	fit := func(zi int, coeffs *[3]float64) error {
		z := zNodes[zi]
		var target types.Vec3d
		target[maxc] = z
		target[(maxc+1)%3] = x * z
		target[(maxc+2)%3] = y * z

		if err := fc.gaussNewton(target, coeffs); err != nil {
			return fmt.Errorf("rgb2spec: fitting %s cell (maxc=%d z=%d y=%d x=%d): %v",
				t.Gamut, maxc, zi, yi, xi, err)
		}
		t.store(maxc, zi, yi, xi, *coeffs)
		return nil
	}

	start := res / 5

	var coeffs [3]float64
	for zi := start; zi < res; zi++ {
		if err := fit(zi, &coeffs); err != nil {
			return err
		}
	}
	coeffs = [3]float64{}
	for zi := start; zi >= 0; zi-- {
		if err := fit(zi, &coeffs); err != nil {
			return err
		}
	}
	return nil
}

// Build fits a coefficient table for the given gamut. Columns are
// distributed over one worker per CPU; the output does not depend on
// the worker count. Building is expensive and meant for asset
// generation or as a fallback when no prebuilt table is available.
func Build(g colorspace.Gamut, res int) (*Table, error) {
	if res < 4 {
		return nil, fmt.Errorf("rgb2spec: table resolution must be at least 4; got %d", res)
	}

	rgbToXYZ, _, err := g.Primaries().Matrices()
	if err != nil {
		return nil, fmt.Errorf("rgb2spec: gamut %s: %v", g.Name(), err)
	}

	t := &Table{
		Gamut:      g.Name(),
		Resolution: res,
		ZNodes:     make([]float32, res),
		Coeffs:     make([]float32, 3*res*res*res*3),
	}

	zNodes := make([]float64, res)
	for i := range zNodes {
		zNodes[i] = types.Smoothstep(types.Smoothstep(float64(i) / float64(res-1)))
		t.ZNodes[i] = float32(zNodes[i])
	}

	fc := &fitContext{
		quad:     newQuadrature(),
		rgbToXYZ: rgbToXYZ,
		white:    g.Primaries().WhitepointXYZ(),
	}

	type column struct{ maxc, yi, xi int }
	jobs := make(chan column, res)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		buildErr error
	)
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := fc.fitColumn(t, zNodes, job.maxc, job.yi, job.xi); err != nil {
					errMu.Lock()
					if buildErr == nil {
						buildErr = err
					}
					errMu.Unlock()
				}
			}
		}()
	}

	for maxc := 0; maxc < 3; maxc++ {
		for yi := 0; yi < res; yi++ {
			for xi := 0; xi < res; xi++ {
				jobs <- column{maxc: maxc, yi: yi, xi: xi}
			}
		}
	}
	close(jobs)
	wg.Wait()

	if buildErr != nil {
		return nil, buildErr
	}
	return t, nil
}
