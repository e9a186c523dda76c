package rgb0

import (
	"bytes"
	"errors"
	"testing"
)

func TestIdentityGamma(t *testing.T) {
	lut := IdentityGamma()
	if len(lut) != GammaEntries {
		t.Fatalf("length = %d, want %d", len(lut), GammaEntries)
	}
	for _, i := range []int{0, 1, 128, 255} {
		if lut[i] != uint16(i) {
			t.Errorf("entry %d = %d, want %d", i, lut[i], i)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	lut := make([]uint16, GammaEntries)
	for i := range lut {
		lut[i] = uint16(i * 257) // spreads across the full uint16 range
	}

	packed, err := PackGamma(lut)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}
	if len(packed) != GammaSize {
		t.Fatalf("packed size = %d, want %d", len(packed), GammaSize)
	}

	got, err := UnpackGamma(packed)
	if err != nil {
		t.Fatalf("Failed to unpack: %v", err)
	}
	for i := range lut {
		if got[i] != lut[i] {
			t.Fatalf("entry %d = %d, want %d", i, got[i], lut[i])
		}
	}
}

func TestPackGammaNil(t *testing.T) {
	fromNil, err := PackGamma(nil)
	if err != nil {
		t.Fatalf("Failed to pack nil table: %v", err)
	}

	fromIdentity, err := PackGamma(IdentityGamma())
	if err != nil {
		t.Fatalf("Failed to pack identity table: %v", err)
	}

	if !bytes.Equal(fromNil, fromIdentity) {
		t.Error("nil table does not pack as the identity curve")
	}
	if !bytes.Equal(fromNil[:6], []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x02}) {
		t.Errorf("identity prefix = %x, want 000000010002", fromNil[:6])
	}
}

func TestPackGammaWrongLength(t *testing.T) {
	_, err := PackGamma(make([]uint16, 255))
	if !errors.Is(err, ErrInvalidGammaTable) {
		t.Fatalf("err = %v, want ErrInvalidGammaTable", err)
	}
}

func TestUnpackGammaTruncated(t *testing.T) {
	_, err := UnpackGamma(make([]byte, GammaSize-1))
	if !errors.Is(err, ErrTruncatedGammaTable) {
		t.Fatalf("err = %v, want ErrTruncatedGammaTable", err)
	}
}
