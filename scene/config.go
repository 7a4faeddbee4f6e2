package scene

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/spectral"
	"github.com/achilleasa/prism/types"
)

// The TOML layout for scene descriptions. Material and spectrum
// blocks are unions; the type/source keys select which fields apply.
type sceneConfig struct {
	Camera     cameraConfig      `toml:"camera"`
	Background *spectrumConfig   `toml:"background"`
	Primitives []primitiveConfig `toml:"primitives"`
}

type cameraConfig struct {
	Position []float32 `toml:"position"`
	LookAt   []float32 `toml:"look_at"`
	Up       []float32 `toml:"up"`
	FOV      float32   `toml:"fov"`
}

type primitiveConfig struct {
	Shape    string         `toml:"shape"`
	Center   []float32      `toml:"center"`
	Radius   float32        `toml:"radius"`
	Corner   []float32      `toml:"corner"`
	EdgeU    []float32      `toml:"edge_u"`
	EdgeV    []float32      `toml:"edge_v"`
	Material materialConfig `toml:"material"`
}

type materialConfig struct {
	Type        string          `toml:"type"`
	Albedo      *spectrumConfig `toml:"albedo"`
	Radiance    *spectrumConfig `toml:"radiance"`
	Reflectance *spectrumConfig `toml:"reflectance"`
	Scale       float32         `toml:"scale"`
	Fuzz        float32         `toml:"fuzz"`
	IOR         float32         `toml:"ior"`
	CauchyB     float32         `toml:"cauchy_b"`
}

type spectrumConfig struct {
	RGB        []float32 `toml:"rgb"`
	Gamut      string    `toml:"gamut"`
	Encoded    bool      `toml:"encoded"`
	Illuminant string    `toml:"illuminant"`
	Blackbody  float32   `toml:"blackbody"`
	D65        bool      `toml:"d65"`
	Samples    []float32 `toml:"samples"`
	Normalize  bool      `toml:"normalize"`
	Constant   *float32  `toml:"constant"`
}

// Load reads a TOML scene description from a local path or http(s)
// URL.
func Load(path string) (*Scene, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, fmt.Errorf("scene: could not open scene config: %v", err)
	}
	defer res.Close()

	sc, err := Parse(res)
	if err != nil {
		return nil, err
	}
	logger.Noticef("loaded scene with %d primitives from %s", len(sc.Primitives), res.Path())
	return sc, nil
}

// Parse decodes a TOML scene description from a stream. Unknown keys
// are rejected so typos surface as errors instead of silently
// dropping scene elements.
func Parse(r io.Reader) (*Scene, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg sceneConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("scene: could not decode scene config: %v", err)
	}
	return cfg.build()
}

func (cfg *sceneConfig) build() (*Scene, error) {
	sc := &Scene{}

	camera, err := cfg.Camera.build()
	if err != nil {
		return nil, err
	}
	sc.Camera = camera

	if cfg.Background != nil {
		if sc.Background, err = buildSpectrum(cfg.Background, true); err != nil {
			return nil, fmt.Errorf("scene: background: %v", err)
		}
	}

	for i, prim := range cfg.Primitives {
		built, err := prim.build()
		if err != nil {
			return nil, fmt.Errorf("scene: primitive %d: %v", i, err)
		}
		sc.Primitives = append(sc.Primitives, built)
	}
	return sc, nil
}

func (cfg *cameraConfig) build() (*Camera, error) {
	camera := NewCamera(45)
	var err error
	if len(cfg.Position) != 0 {
		if camera.Position, err = vec3Of("camera position", cfg.Position); err != nil {
			return nil, err
		}
	}
	if len(cfg.LookAt) != 0 {
		if camera.LookAt, err = vec3Of("camera look_at", cfg.LookAt); err != nil {
			return nil, err
		}
	}
	if len(cfg.Up) != 0 {
		if camera.Up, err = vec3Of("camera up", cfg.Up); err != nil {
			return nil, err
		}
	}
	if cfg.FOV != 0 {
		camera.FOV = cfg.FOV
	}

	if camera.FOV <= 0 || camera.FOV >= 180 {
		return nil, fmt.Errorf("scene: camera fov must be in (0, 180); got %v", camera.FOV)
	}
	if camera.Position.Sub(camera.LookAt).Len() == 0 {
		return nil, fmt.Errorf("scene: camera position and look_at must not coincide")
	}
	if camera.Up.Len() == 0 {
		return nil, fmt.Errorf("scene: camera up vector must not be zero")
	}
	return camera, nil
}

func (cfg *primitiveConfig) build() (Primitive, error) {
	mat, err := cfg.Material.build()
	if err != nil {
		return nil, err
	}

	switch cfg.Shape {
	case "sphere":
		center, err := vec3Of("sphere center", cfg.Center)
		if err != nil {
			return nil, err
		}
		if cfg.Radius <= 0 {
			return nil, fmt.Errorf("sphere needs a positive radius; got %v", cfg.Radius)
		}
		return NewSphere(center, cfg.Radius, mat), nil
	case "quad":
		corner, err := vec3Of("quad corner", cfg.Corner)
		if err != nil {
			return nil, err
		}
		edgeU, err := vec3Of("quad edge_u", cfg.EdgeU)
		if err != nil {
			return nil, err
		}
		edgeV, err := vec3Of("quad edge_v", cfg.EdgeV)
		if err != nil {
			return nil, err
		}
		if edgeU.Cross(edgeV).Len() == 0 {
			return nil, fmt.Errorf("quad edges must span a plane")
		}
		return NewQuad(corner, edgeU, edgeV, mat), nil
	case "":
		return nil, fmt.Errorf("missing shape")
	default:
		return nil, fmt.Errorf("unsupported shape %q", cfg.Shape)
	}
}

func (cfg *materialConfig) build() (Material, error) {
	switch cfg.Type {
	case "lambert":
		if cfg.Albedo == nil {
			return nil, fmt.Errorf("lambert material needs an albedo spectrum")
		}
		albedo, err := buildSpectrum(cfg.Albedo, false)
		if err != nil {
			return nil, fmt.Errorf("lambert albedo: %v", err)
		}
		return &Lambert{Albedo: albedo}, nil
	case "emissive":
		if cfg.Radiance == nil {
			return nil, fmt.Errorf("emissive material needs a radiance spectrum")
		}
		radiance, err := buildSpectrum(cfg.Radiance, true)
		if err != nil {
			return nil, fmt.Errorf("emissive radiance: %v", err)
		}
		scale := cfg.Scale
		if scale == 0 {
			scale = 1
		} else if scale < 0 {
			return nil, fmt.Errorf("emissive scale must not be negative; got %v", scale)
		}
		return &Emissive{Radiance: radiance, Scale: scale}, nil
	case "metal":
		if cfg.Reflectance == nil {
			return nil, fmt.Errorf("metal material needs a reflectance spectrum")
		}
		refl, err := buildSpectrum(cfg.Reflectance, false)
		if err != nil {
			return nil, fmt.Errorf("metal reflectance: %v", err)
		}
		if cfg.Fuzz < 0 || cfg.Fuzz > 1 {
			return nil, fmt.Errorf("metal fuzz must be in [0, 1]; got %v", cfg.Fuzz)
		}
		return &Metal{Reflectance: refl, Fuzz: cfg.Fuzz}, nil
	case "dielectric":
		if cfg.IOR <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive index of refraction; got %v", cfg.IOR)
		}
		if cfg.CauchyB < 0 {
			return nil, fmt.Errorf("dielectric dispersion coefficient must not be negative; got %v", cfg.CauchyB)
		}
		return &Dielectric{IOR: cfg.IOR, CauchyB: cfg.CauchyB}, nil
	case "":
		return nil, fmt.Errorf("missing material type")
	default:
		return nil, fmt.Errorf("unsupported material type %q", cfg.Type)
	}
}

// buildSpectrum maps a spectrum block to a spectral.Spectrum. Exactly
// one source key must be present. Emissive blocks additionally accept
// blackbody and d65 sources and treat rgb values as illuminants.
func buildSpectrum(cfg *spectrumConfig, emissive bool) (spectral.Spectrum, error) {
	sources := 0
	if len(cfg.RGB) != 0 {
		sources++
	}
	if len(cfg.Samples) != 0 {
		sources++
	}
	if cfg.Constant != nil {
		sources++
	}
	if cfg.Blackbody != 0 {
		sources++
	}
	if cfg.D65 {
		sources++
	}
	if sources != 1 {
		return nil, fmt.Errorf("spectrum needs exactly one of rgb, samples, constant, blackbody or d65; got %d sources", sources)
	}

	switch {
	case len(cfg.RGB) != 0:
		return buildRGBSpectrum(cfg, emissive)
	case len(cfg.Samples) != 0:
		return spectral.NewPiecewiseLinearInterleaved(cfg.Samples, cfg.Normalize)
	case cfg.Constant != nil:
		if *cfg.Constant < 0 {
			return nil, fmt.Errorf("constant spectrum must not be negative; got %v", *cfg.Constant)
		}
		return spectral.NewConstant(*cfg.Constant), nil
	case cfg.Blackbody != 0:
		if !emissive {
			return nil, fmt.Errorf("blackbody spectra describe emission, not reflectance")
		}
		if cfg.Blackbody < 0 {
			return nil, fmt.Errorf("blackbody temperature must not be negative; got %v", cfg.Blackbody)
		}
		return spectral.NewBlackbody(cfg.Blackbody), nil
	default:
		if !emissive {
			return nil, fmt.Errorf("the d65 spectrum describes emission, not reflectance")
		}
		return spectral.D65Illuminant(), nil
	}
}

func buildRGBSpectrum(cfg *spectrumConfig, emissive bool) (spectral.Spectrum, error) {
	rgb, err := vec3Of("rgb triplet", cfg.RGB)
	if err != nil {
		return nil, err
	}

	fit := albedoFit
	if emissive {
		switch cfg.Illuminant {
		case "", "d65":
			fit = illuminantFit
		case "none":
			fit = unboundedFit
		default:
			return nil, fmt.Errorf("unsupported illuminant %q", cfg.Illuminant)
		}
	} else {
		if cfg.Illuminant != "" {
			return nil, fmt.Errorf("reflectance spectra do not take an illuminant")
		}
		for i, v := range rgb {
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("reflectance rgb component %d must be in [0, 1]; got %v", i, v)
			}
		}
	}

	switch cfg.Gamut {
	case "", "srgb":
		return rgbSpectrumIn[colorspace.SRGB](rgb, cfg.Encoded, fit)
	case "dci-p3-d65":
		return rgbSpectrumIn[colorspace.DCIP3D65](rgb, cfg.Encoded, fit)
	case "adobe-rgb":
		return rgbSpectrumIn[colorspace.AdobeRGB](rgb, cfg.Encoded, fit)
	case "rec-2020":
		return rgbSpectrumIn[colorspace.Rec2020](rgb, cfg.Encoded, fit)
	case "aces-cg":
		return rgbSpectrumIn[colorspace.ACEScg](rgb, cfg.Encoded, fit)
	case "aces-2065-1":
		return rgbSpectrumIn[colorspace.ACES20651](rgb, cfg.Encoded, fit)
	default:
		return nil, fmt.Errorf("unsupported gamut %q", cfg.Gamut)
	}
}

type rgbFit int

const (
	albedoFit rgbFit = iota
	illuminantFit
	unboundedFit
)

func rgbSpectrumIn[G colorspace.Gamut](rgb types.Vec3, encoded bool, fit rgbFit) (spectral.Spectrum, error) {
	var c colorspace.Color[G, colorspace.Untoned, colorspace.LinearTF]
	if encoded {
		c = colorspace.Decode(colorspace.NewEncoded[G, colorspace.SRGBCurve](rgb[0], rgb[1], rgb[2]))
	} else {
		c = colorspace.NewFromVec[G](rgb)
	}

	switch fit {
	case illuminantFit:
		return spectral.NewRGBIlluminant(c)
	case unboundedFit:
		return spectral.NewRGBUnbounded(c)
	default:
		return spectral.NewRGBAlbedo(c)
	}
}

func vec3Of(name string, vals []float32) (types.Vec3, error) {
	if len(vals) != 3 {
		return types.Vec3{}, fmt.Errorf("%s needs three components; got %d", name, len(vals))
	}
	return types.Vec3{vals[0], vals[1], vals[2]}, nil
}
