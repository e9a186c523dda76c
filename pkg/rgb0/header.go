package rgb0

import (
	"encoding/binary"
	"fmt"
)

// Header mirrors the fixed 23-byte prefix of a capture plus the decoded
// port table and gamma LUT that follow it. All integers are big-endian on
// the wire.
//
// Binary layout of the prefix:
//
//	offset  size  field
//	0       4     magic "RGB0"
//	4       4     version "1001"
//	8       4     sentinel (0xFFFFFFFF)
//	12      2     header_end (offset of last preamble byte)
//	14      2     frame_count (0 = unknown, read to EOF)
//	16      4     frame_size (bytes per frame)
//	20      2     port_count
//	22      1     channel_count
type Header struct {
	Magic      string
	Version    string // not validated on read
	Sentinel   uint32 // passed through verbatim
	HeaderEnd  uint16 // frames begin at HeaderEnd+1; the decoder reads sequentially
	FrameCount uint16
	FrameSize  uint32
	PortCount  uint16
	Channels   uint8

	Ports []PortDescriptor // table order defines the frame layout
	Gamma []uint16         // exactly GammaEntries values once decoded
}

// UnpackHeader deserializes the 23-byte header prefix. The magic is
// validated; everything else is carried as found.
func UnpackHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedHeader, len(data), HeaderSize)
	}

	h := &Header{
		Magic:      string(data[0:4]),
		Version:    string(data[4:8]),
		Sentinel:   binary.BigEndian.Uint32(data[8:12]),
		HeaderEnd:  binary.BigEndian.Uint16(data[12:14]),
		FrameCount: binary.BigEndian.Uint16(data[14:16]),
		FrameSize:  binary.BigEndian.Uint32(data[16:20]),
		PortCount:  binary.BigEndian.Uint16(data[20:22]),
		Channels:   data[22],
	}

	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrMalformedHeader, h.Magic)
	}

	return h, nil
}

// PackHeader serializes a header prefix to exactly 23 bytes, filling in the
// constant magic, version, sentinel and channel count.
func PackHeader(frameCount uint16, frameSize uint32, portCount uint16) []byte {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], Magic)
	copy(buf[4:8], Version)
	binary.BigEndian.PutUint32(buf[8:12], Sentinel)
	binary.BigEndian.PutUint16(buf[12:14], uint16(HeaderEndOffset(int(portCount))))
	binary.BigEndian.PutUint16(buf[14:16], frameCount)
	binary.BigEndian.PutUint32(buf[16:20], frameSize)
	binary.BigEndian.PutUint16(buf[20:22], portCount)
	buf[22] = ChannelCount

	return buf
}

// Validate checks the structural invariants the tolerant decoder does not
// enforce on its own: magic, port table consistency with the declared count
// and frame size, gamma entry count, and duplicate port indices.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: magic %q", ErrMalformedHeader, h.Magic)
	}
	if int(h.PortCount) != len(h.Ports) {
		return fmt.Errorf("port count %d does not match table length %d", h.PortCount, len(h.Ports))
	}

	sum := 0
	seen := make(map[uint16]bool, len(h.Ports))
	for _, p := range h.Ports {
		if seen[p.Index] {
			return fmt.Errorf("duplicate port index %d", p.Index)
		}
		seen[p.Index] = true
		sum += int(p.Length)
	}
	if uint32(sum) != h.FrameSize {
		return fmt.Errorf("frame size %d does not match port length sum %d", h.FrameSize, sum)
	}

	if len(h.Gamma) != GammaEntries {
		return fmt.Errorf("%w: %d entries", ErrInvalidGammaTable, len(h.Gamma))
	}

	return nil
}
