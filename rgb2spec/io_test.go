package rgb2spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := newSyntheticTable(8)

	var buf bytes.Buffer
	if err := table.Encode(&buf); err != nil {
		t.Fatalf("encode table: %v", err)
	}

	expLen := 4 * (8 + 3*8*8*8*3)
	if buf.Len() != expLen {
		t.Fatalf("expected encoded payload to be %d bytes; got %d", expLen, buf.Len())
	}

	got, err := Decode(&buf, table.Gamut, table.Resolution)
	if err != nil {
		t.Fatalf("decode table: %v", err)
	}
	if diff := cmp.Diff(table, got); diff != "" {
		t.Fatalf("decoded table mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	table := newSyntheticTable(4)

	var full bytes.Buffer
	if err := table.Encode(&full); err != nil {
		t.Fatalf("encode table: %v", err)
	}

	specs := []struct {
		descr   string
		payload []byte
	}{
		{
			descr:   "empty payload",
			payload: nil,
		},
		{
			descr:   "truncated z nodes",
			payload: full.Bytes()[:4*3],
		},
		{
			descr:   "truncated coefficients",
			payload: full.Bytes()[:full.Len()/2],
		},
		{
			descr:   "trailing data",
			payload: append(append([]byte(nil), full.Bytes()...), 0xff),
		},
	}

	for specIndex, spec := range specs {
		_, err := Decode(bytes.NewReader(spec.payload), table.Gamut, table.Resolution)
		if !errors.Is(err, ErrBadTableSize) {
			t.Fatalf("[spec %d] %s: expected ErrBadTableSize; got %v", specIndex, spec.descr, err)
		}
	}
}

func TestDecodeNonMonotonicZNodes(t *testing.T) {
	table := newSyntheticTable(8)
	table.ZNodes[2], table.ZNodes[3] = table.ZNodes[3], table.ZNodes[2]

	var buf bytes.Buffer
	if err := table.Encode(&buf); err != nil {
		t.Fatalf("encode table: %v", err)
	}

	_, err := Decode(&buf, table.Gamut, table.Resolution)
	expErr := "rgb2spec: corrupt table asset for gamut srgb: z nodes not increasing at index 2"
	if err == nil || err.Error() != expErr {
		t.Fatalf("expected error %q; got %v", expErr, err)
	}
}

func TestDecodeResolutionTooSmall(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), "srgb", 3)
	expErr := "rgb2spec: table resolution must be at least 4; got 3"
	if err == nil || err.Error() != expErr {
		t.Fatalf("expected error %q; got %v", expErr, err)
	}
}

func TestDecodeRejectsForeignPayload(t *testing.T) {
	// A payload sized for a different resolution must not decode.
	table := newSyntheticTable(8)
	var buf bytes.Buffer
	if err := table.Encode(&buf); err != nil {
		t.Fatalf("encode table: %v", err)
	}

	if _, err := Decode(&buf, table.Gamut, 16); !errors.Is(err, ErrBadTableSize) {
		t.Fatalf("expected ErrBadTableSize; got %v", err)
	}
}

func TestAssetName(t *testing.T) {
	if got, want := AssetName("srgb", 64), "srgb_64.r2s"; got != want {
		t.Fatalf("expected asset name %q; got %q", want, got)
	}
}

func TestEncodedLayout(t *testing.T) {
	table := newSyntheticTable(4)

	var buf bytes.Buffer
	if err := table.Encode(&buf); err != nil {
		t.Fatalf("encode table: %v", err)
	}
	raw := buf.Bytes()

	// The first float32 is ZNodes[0], the word right after the z node
	// block is the first coefficient of the (0,0,0,0) cell.
	if got := binary.LittleEndian.Uint32(raw[0:4]); got != math.Float32bits(table.ZNodes[0]) {
		t.Fatalf("expected leading word to encode ZNodes[0]")
	}
	if got := binary.LittleEndian.Uint32(raw[4*4 : 4*5]); got != math.Float32bits(table.Coeffs[0]) {
		t.Fatalf("expected first post-node word to encode Coeffs[0]")
	}
}
