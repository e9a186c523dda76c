package rgb0

// Core wire-format constants that never change.
// For the GC-5016 write profile defaults, see defaults.go.

const (
	// Magic and version tags, stored as 4 ASCII bytes each at the start
	// of every capture. Only the magic is validated on read.
	Magic   = "RGB0"
	Version = "1001"

	// Sentinel value at header offset 8. Every capture produced by the
	// vendor tooling carries all-ones here; it is written verbatim and
	// passed through on read.
	Sentinel = 0xFFFFFFFF

	// Fixed region sizes on the wire
	HeaderSize    = 23  // Fixed header prefix
	PortEntrySize = 13  // One port descriptor record
	GammaEntries  = 256 // LUT entries, one per 8-bit input level
	GammaSize     = GammaEntries * 2

	// Channel count byte written at header offset 22
	ChannelCount = 1

	// Bit 7 of a descriptor's loop byte carries the loop flag; the
	// remaining bits are opaque hardware state.
	LoopFlagBit = 0x80

	// MaxPortCount is the largest port table the 16-bit header_end field
	// can address: HeaderEndOffset(MaxPortCount) still fits in the field,
	// HeaderEndOffset(MaxPortCount+1) would wrap.
	MaxPortCount = (0xFFFF - HeaderSize - GammaSize + 1) / PortEntrySize
)

// Port mode bytes observed in captures from the vendor tooling. They are
// stored and displayed only; nothing in the codec branches on them.
const (
	ModeDMX512 = 0x03
	ModeSPITTL = 0x06
	ModeTM1814 = 0x1B
)

// HeaderEndOffset returns the header_end field value for a port count: the
// offset of the last preamble byte. Frame data begins at the next byte.
func HeaderEndOffset(portCount int) int {
	return HeaderSize + portCount*PortEntrySize + GammaSize - 1
}
