package rgb0

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RGB is one LED's worth of channel data on the write path.
type RGB struct {
	R, G, B uint8
}

// EncodeOptions control the capture layout. A zero LEDsPerPort or PortCount
// takes the GC-5016 profile default from defaults.go; Mode, Flags and
// LoopByte are written exactly as given, zero included, so callers wanting
// the profile values pass them explicitly.
type EncodeOptions struct {
	LEDsPerPort int      // LEDs on every port
	PortCount   int      // ports per frame
	Gamma       []uint16 // 256 entries; nil writes the identity curve
	Mode        uint8    // port mode byte, stored verbatim
	Flags       uint16   // port flags, stored verbatim
	LoopByte    uint8    // raw loop byte, stored verbatim
}

func (o *EncodeOptions) applyDefaults() {
	if o.LEDsPerPort == 0 {
		o.LEDsPerPort = DefaultLEDsPerPort
	}
	if o.PortCount == 0 {
		o.PortCount = DefaultPortCount
	}
}

// Encode serializes frames into a complete capture. frames[i][p] lists the
// LEDs on port p of frame i; every frame must carry exactly PortCount ports
// of exactly LEDsPerPort LEDs.
func Encode(frames [][][]RGB, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, frames, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo serializes frames to w in one linear pass: header prefix, port
// table, gamma LUT, then every frame's port blocks in table order.
func EncodeTo(w io.Writer, frames [][][]RGB, opts EncodeOptions) error {
	opts.applyDefaults()

	if len(frames) == 0 {
		return ErrNoFrames
	}
	if err := validateShape(frames, opts.PortCount, opts.LEDsPerPort); err != nil {
		return err
	}

	gamma, err := PackGamma(opts.Gamma)
	if err != nil {
		return err
	}

	bytesPerPort := opts.LEDsPerPort * BytesPerLED
	frameSize := opts.PortCount * bytesPerPort
	if opts.PortCount > MaxPortCount {
		return fmt.Errorf("port count %d exceeds the format limit %d", opts.PortCount, MaxPortCount)
	}
	if bytesPerPort > 0xFFFF {
		return fmt.Errorf("port length %d exceeds the 16-bit descriptor field", bytesPerPort)
	}
	if len(frames) > 0xFFFF {
		return fmt.Errorf("frame count %d exceeds the 16-bit header field", len(frames))
	}

	if _, err := w.Write(PackHeader(uint16(len(frames)), uint32(frameSize), uint16(opts.PortCount))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(PackPortTable(opts.PortCount, uint16(bytesPerPort), opts.Mode, opts.Flags, opts.LoopByte)); err != nil {
		return fmt.Errorf("writing port table: %w", err)
	}
	if _, err := w.Write(gamma); err != nil {
		return fmt.Errorf("writing gamma table: %w", err)
	}

	frameBuf := make([]byte, 0, frameSize)
	for i, frame := range frames {
		frameBuf = frameBuf[:0]
		for _, port := range frame {
			for _, led := range port {
				frameBuf = append(frameBuf, led.R, led.G, led.B)
			}
		}
		if _, err := w.Write(frameBuf); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}

	return nil
}

// validateShape rejects ragged input before a single byte is written. The
// error names the first offending frame or port.
func validateShape(frames [][][]RGB, portCount, ledsPerPort int) error {
	for i, frame := range frames {
		if len(frame) != portCount {
			return fmt.Errorf("%w: frame %d contains %d ports; expected %d", ErrShapeMismatch, i, len(frame), portCount)
		}
		for j, port := range frame {
			if len(port) != ledsPerPort {
				return fmt.Errorf("%w: frame %d port %d has %d LEDs; expected %d", ErrShapeMismatch, i, j, len(port), ledsPerPort)
			}
		}
	}
	return nil
}

// ScenePath returns the file name the controller scans for, keyed by the
// two-digit run number.
func ScenePath(dir string, run int) string {
	return filepath.Join(dir, fmt.Sprintf(SceneFilePattern, run))
}

// WriteScene encodes frames and persists them under the run-number naming
// scheme, creating dir if needed. The capture is serialized in memory first;
// nothing touches the filesystem until the frames validate, so a rejected
// scene never leaves a stub file behind for the controller to pick up.
func WriteScene(dir string, run int, frames [][][]RGB, opts EncodeOptions) (string, error) {
	data, err := Encode(frames, opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := ScenePath(dir, run)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
