package rgb0

import "fmt"

// Frame layout: a frame is the concatenation of every port's block in
// table order, so a port's offset is the sum of the lengths of the ports
// that precede it. Port indices do not have to match table positions.

// PortOffsets returns each port's byte offset inside a frame. When a
// (malformed) table repeats an index, the first occurrence wins, matching
// ExtractPort.
func (h *Header) PortOffsets() map[uint16]int {
	offsets := make(map[uint16]int, len(h.Ports))
	off := 0
	for _, p := range h.Ports {
		if _, seen := offsets[p.Index]; !seen {
			offsets[p.Index] = off
		}
		off += int(p.Length)
	}
	return offsets
}

// PortSpan returns the offset and length of one port's block inside a
// frame. The first table entry with a matching index wins.
func (h *Header) PortSpan(index uint16) (offset, length int, err error) {
	off := 0
	for i := range h.Ports {
		if h.Ports[i].Index == index {
			return off, int(h.Ports[i].Length), nil
		}
		off += int(h.Ports[i].Length)
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrUnknownPort, index)
}

// ExtractPort slices one port's block out of a single frame. The returned
// slice aliases frame.
func (h *Header) ExtractPort(frame []byte, index uint16) ([]byte, error) {
	offset, length, err := h.PortSpan(index)
	if err != nil {
		return nil, err
	}
	if offset+length > len(frame) {
		return nil, fmt.Errorf("frame too short for port %d: need %d bytes, got %d", index, offset+length, len(frame))
	}
	return frame[offset : offset+length], nil
}

// portLengthSum totals the table's declared lengths; on a well-formed
// capture it equals FrameSize.
func (h *Header) portLengthSum() int {
	sum := 0
	for _, p := range h.Ports {
		sum += int(p.Length)
	}
	return sum
}
