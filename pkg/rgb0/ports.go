package rgb0

import (
	"encoding/binary"
	"fmt"
)

// PortDescriptor is one 13-byte port table record.
//
// Binary layout:
//
//	offset  size  field
//	0       2     port index
//	2       2     port length (bytes per frame)
//	4       4     reserved
//	8       1     mode
//	9       2     flags
//	11      1     loop byte (bit 7 = loop flag)
//	12      1     reserved
//
// Mode, flags and the loop byte are hardware state the codec stores
// verbatim and never interprets beyond the loop flag bit.
type PortDescriptor struct {
	Index    uint16
	Length   uint16 // bytes this port contributes to every frame
	Mode     uint8
	Flags    uint16
	LoopByte uint8
}

// LoopFlag reports bit 7 of the loop byte.
func (p *PortDescriptor) LoopFlag() bool {
	return p.LoopByte&LoopFlagBit != 0
}

// Pack serializes the descriptor to exactly 13 bytes. Reserved bytes stay
// zero, matching the vendor tooling.
func (p *PortDescriptor) Pack() []byte {
	buf := make([]byte, PortEntrySize)

	binary.BigEndian.PutUint16(buf[0:2], p.Index)
	binary.BigEndian.PutUint16(buf[2:4], p.Length)
	buf[8] = p.Mode
	binary.BigEndian.PutUint16(buf[9:11], p.Flags)
	buf[11] = p.LoopByte

	return buf
}

// UnpackPortDescriptor deserializes one 13-byte record.
func UnpackPortDescriptor(data []byte) (*PortDescriptor, error) {
	if len(data) != PortEntrySize {
		return nil, fmt.Errorf("invalid port record size: expected %d, got %d", PortEntrySize, len(data))
	}

	return &PortDescriptor{
		Index:    binary.BigEndian.Uint16(data[0:2]),
		Length:   binary.BigEndian.Uint16(data[2:4]),
		Mode:     data[8],
		Flags:    binary.BigEndian.Uint16(data[9:11]),
		LoopByte: data[11],
	}, nil
}

// UnpackPortTable deserializes portCount consecutive records.
func UnpackPortTable(data []byte, portCount int) ([]PortDescriptor, error) {
	need := portCount * PortEntrySize
	if len(data) < need {
		return nil, fmt.Errorf("%w: got %d of %d bytes for %d ports", ErrTruncatedPortTable, len(data), need, portCount)
	}

	ports := make([]PortDescriptor, portCount)
	for i := range ports {
		p, err := UnpackPortDescriptor(data[i*PortEntrySize : (i+1)*PortEntrySize])
		if err != nil {
			return nil, err
		}
		ports[i] = *p
	}
	return ports, nil
}

// PackPortTable serializes the uniform table the writer emits: sequential
// indices starting at zero with identical length, mode, flags and loop byte
// on every record.
func PackPortTable(portCount int, length uint16, mode uint8, flags uint16, loopByte uint8) []byte {
	buf := make([]byte, 0, portCount*PortEntrySize)
	for i := 0; i < portCount; i++ {
		p := PortDescriptor{
			Index:    uint16(i),
			Length:   length,
			Mode:     mode,
			Flags:    flags,
			LoopByte: loopByte,
		}
		buf = append(buf, p.Pack()...)
	}
	return buf
}
