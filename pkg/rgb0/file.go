package rgb0

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// File is one fully decoded capture: the preamble plus every whole frame
// that followed it.
type File struct {
	Header *Header
	Frames [][]byte // each exactly Header.FrameSize bytes
}

// PortFrames returns one port's block from every frame, in frame order.
// The blocks alias the frame buffers.
func (f *File) PortFrames(index uint16) ([][]byte, error) {
	offset, length, err := f.Header.PortSpan(index)
	if err != nil {
		return nil, err
	}

	blocks := make([][]byte, 0, len(f.Frames))
	for i, frame := range f.Frames {
		if offset+length > len(frame) {
			return nil, fmt.Errorf("frame %d too short for port %d: need %d bytes, got %d", i, index, offset+length, len(frame))
		}
		blocks = append(blocks, frame[offset:offset+length])
	}
	return blocks, nil
}

// FrameDigests hashes every frame with xxhash64. Stage captures repeat
// frames heavily, so digests expose the repetition without byte-by-byte
// comparisons.
func (f *File) FrameDigests() []uint64 {
	digests := make([]uint64, len(f.Frames))
	for i, frame := range f.Frames {
		digests[i] = xxhash.Sum64(frame)
	}
	return digests
}

// UniqueFrames counts distinct frame digests.
func (f *File) UniqueFrames() int {
	seen := make(map[uint64]struct{}, len(f.Frames))
	for _, d := range f.FrameDigests() {
		seen[d] = struct{}{}
	}
	return len(seen)
}
