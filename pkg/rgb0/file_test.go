package rgb0

import (
	"bytes"
	"errors"
	"testing"
)

func TestPortFrames(t *testing.T) {
	h := layoutHeader(
		PortDescriptor{Index: 0, Length: 6},
		PortDescriptor{Index: 1, Length: 9},
	)

	first := make([]byte, 15)
	second := make([]byte, 15)
	for i := range first {
		first[i] = byte(i)
		second[i] = byte(i + 100)
	}
	f := &File{Header: h, Frames: [][]byte{first, second}}

	blocks, err := f.PortFrames(1)
	if err != nil {
		t.Fatalf("PortFrames(1) failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if !bytes.Equal(blocks[0], first[6:]) || !bytes.Equal(blocks[1], second[6:]) {
		t.Error("port 1 blocks do not match the 9-byte tail of each frame")
	}

	if _, err := f.PortFrames(5); !errors.Is(err, ErrUnknownPort) {
		t.Fatalf("PortFrames(5) err = %v, want ErrUnknownPort", err)
	}

	f.Frames = append(f.Frames, make([]byte, 10))
	if _, err := f.PortFrames(1); err == nil {
		t.Fatal("Expected bounds error for the 10-byte frame")
	}
}

func TestFrameDigests(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6, 7, 8}
	c := []byte{9, 10, 11, 12}
	f := &File{Frames: [][]byte{a, b, append([]byte(nil), a...), c}}

	digests := f.FrameDigests()
	if len(digests) != 4 {
		t.Fatalf("digests = %d, want 4", len(digests))
	}
	if digests[0] != digests[2] {
		t.Error("identical frames hash differently")
	}
	if digests[0] == digests[1] {
		t.Error("distinct frames share a digest")
	}

	if got := f.UniqueFrames(); got != 3 {
		t.Errorf("UniqueFrames() = %d, want 3", got)
	}
}
