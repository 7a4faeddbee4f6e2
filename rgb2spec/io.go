package rgb2spec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrBadTableSize is returned when a table asset payload does not
// match the byte length implied by its resolution.
var ErrBadTableSize = errors.New("rgb2spec: table data size mismatch")

// AssetName returns the canonical file name for a table asset.
func AssetName(gamut string, res int) string {
	return fmt.Sprintf("%s_%d.r2s", gamut, res)
}

// Encode writes the table in its binary asset layout: Resolution
// little-endian float32 z nodes followed by the 3*Resolution^3
// coefficient triples in dominant-channel, z, y, x, component order.
// The resolution is not part of the payload; callers carry it in the
// asset name (see AssetName).
func (t *Table) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, t.ZNodes); err != nil {
		return fmt.Errorf("rgb2spec: encoding z nodes: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, t.Coeffs); err != nil {
		return fmt.Errorf("rgb2spec: encoding coefficients: %v", err)
	}
	return nil
}

// Decode reads a binary table asset fitted for the named gamut at the
// given resolution. The payload length must match the resolution
// exactly and the z nodes must form a strictly increasing grid.
func Decode(r io.Reader, gamut string, res int) (*Table, error) {
	if res < 4 {
		return nil, fmt.Errorf("rgb2spec: table resolution must be at least 4; got %d", res)
	}

	t := &Table{
		Gamut:      gamut,
		Resolution: res,
		ZNodes:     make([]float32, res),
		Coeffs:     make([]float32, 3*res*res*res*3),
	}
	if err := binary.Read(r, binary.LittleEndian, t.ZNodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTableSize, err)
	}
	if err := binary.Read(r, binary.LittleEndian, t.Coeffs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTableSize, err)
	}

	var scratch [1]byte
	if _, err := io.ReadFull(r, scratch[:]); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrBadTableSize)
	}

	for i := 0; i < res-1; i++ {
		if t.ZNodes[i] >= t.ZNodes[i+1] {
			return nil, fmt.Errorf("rgb2spec: corrupt table asset for gamut %s: z nodes not increasing at index %d", gamut, i)
		}
	}
	return t, nil
}
