package rgb0

// =================================
// GC-5016 write profile
// =================================
// Values lifted from working captures the controller replays from SD cards.
// The writer fills zero-value shape fields (LEDsPerPort, PortCount) from
// these; the descriptor bytes are written verbatim, so the mode, flags and
// loop values here are applied by the manifest layer when a field is absent.
const (
	DefaultLEDsPerPort = 1000
	DefaultPortCount   = 16
	DefaultMode        = ModeSPITTL
	DefaultFlags       = 0x80FA
	DefaultLoopByte    = 0x50
)

// =================================
// Frame geometry
// =================================
const (
	// Bytes per LED on RGB ports
	BytesPerLED = 3
)

// =================================
// Scene file naming
// =================================
const (
	// SceneFilePattern is the name the controller scans for, keyed by the
	// two-digit run number.
	SceneFilePattern = "Sc-%02d-01.rgb"
)
