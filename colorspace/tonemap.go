package colorspace

import (
	"fmt"

	"github.com/achilleasa/prism/types"
)

// ToneMap compresses linear HDR values into a displayable range.
type ToneMap interface {
	Name() string
	Map(rgb types.Vec3) types.Vec3
}

// InvertibleToneMap is implemented by tone maps whose compression can
// be undone, allowing a toned color back into the untoned state.
type InvertibleToneMap interface {
	ToneMap
	Unmap(rgb types.Vec3) types.Vec3
}

// Identity performs no tone compression.
type Identity struct{}

func (Identity) Name() string { return "identity" }
func (Identity) Map(rgb types.Vec3) types.Vec3 { return rgb }
func (Identity) Unmap(rgb types.Vec3) types.Vec3 { return rgb }

// Reinhard applies the classic x/(1+x) curve per component.
type Reinhard struct{}

func (Reinhard) Name() string { return "reinhard" }

func (Reinhard) Map(rgb types.Vec3) types.Vec3 {
	return types.Vec3{
		rgb[0] / (1 + rgb[0]),
		rgb[1] / (1 + rgb[1]),
		rgb[2] / (1 + rgb[2]),
	}
}

func (Reinhard) Unmap(rgb types.Vec3) types.Vec3 {
	return types.Vec3{
		rgb[0] / (1 - rgb[0]),
		rgb[1] / (1 - rgb[1]),
		rgb[2] / (1 - rgb[2]),
	}
}

// AllToneMaps lists every supported tone map.
func AllToneMaps() []ToneMap {
	return []ToneMap{Identity{}, Reinhard{}}
}

// ToneMapByName resolves a tone map from its Name identifier.
func ToneMapByName(name string) (ToneMap, error) {
	for _, tm := range AllToneMaps() {
		if tm.Name() == name {
			return tm, nil
		}
	}
	return nil, fmt.Errorf("colorspace: unknown tone map %q", name)
}
