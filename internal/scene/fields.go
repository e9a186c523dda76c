package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uwwint/GC-5016/pkg/rgb0"
)

// Manifest descriptor fields travel as hex strings ("0x06", "0x80FA") so
// the opaque hardware bytes stay opaque. Empty fields take the caller's
// default.

// ParseHexByte parses byte fields like "0x06", "06" or "6".
func ParseHexByte(s string, def uint8) (uint8, error) {
	if s == "" {
		return def, nil
	}
	v, err := parseHex(s, 8)
	if err != nil {
		return def, err
	}
	return uint8(v), nil
}

// ParseHexWord parses word fields like "0x80FA".
func ParseHexWord(s string, def uint16) (uint16, error) {
	if s == "" {
		return def, nil
	}
	v, err := parseHex(s, 16)
	if err != nil {
		return def, err
	}
	return uint16(v), nil
}

func parseHex(s string, bits int) (uint64, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(cleaned, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid hex field %q: %w", s, err)
	}
	return v, nil
}

// ParseColor parses "#RRGGBB" (the # is optional) into an LED triplet.
func ParseColor(s string) (rgb0.RGB, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(cleaned) != 6 {
		return rgb0.RGB{}, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(cleaned, 16, 32)
	if err != nil {
		return rgb0.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return rgb0.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
