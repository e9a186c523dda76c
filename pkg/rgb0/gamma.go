package rgb0

import (
	"encoding/binary"
	"fmt"
)

// The gamma region is a fixed 256-entry LUT of big-endian uint16 values,
// one per 8-bit input level. The codec stores and returns it untouched;
// computing curves is the vendor tooling's business.

// IdentityGamma returns the pass-through LUT written when no table is given:
// entry i maps to i.
func IdentityGamma() []uint16 {
	lut := make([]uint16, GammaEntries)
	for i := range lut {
		lut[i] = uint16(i)
	}
	return lut
}

// UnpackGamma deserializes the 512-byte gamma region.
func UnpackGamma(data []byte) ([]uint16, error) {
	if len(data) < GammaSize {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedGammaTable, len(data), GammaSize)
	}

	lut := make([]uint16, GammaEntries)
	for i := range lut {
		lut[i] = binary.BigEndian.Uint16(data[i*2 : i*2+2])
	}
	return lut, nil
}

// PackGamma serializes a 256-entry LUT to 512 bytes. A nil table packs the
// identity curve; any other length is rejected.
func PackGamma(lut []uint16) ([]byte, error) {
	if lut == nil {
		lut = IdentityGamma()
	}
	if len(lut) != GammaEntries {
		return nil, fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidGammaTable, GammaEntries, len(lut))
	}

	buf := make([]byte, GammaSize)
	for i, v := range lut {
		binary.BigEndian.PutUint16(buf[i*2:i*2+2], v)
	}
	return buf, nil
}
