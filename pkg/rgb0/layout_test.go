package rgb0

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func layoutHeader(ports ...PortDescriptor) *Header {
	sum := 0
	for _, p := range ports {
		sum += int(p.Length)
	}
	return &Header{
		Magic:     Magic,
		Version:   Version,
		FrameSize: uint32(sum),
		PortCount: uint16(len(ports)),
		Ports:     ports,
		Gamma:     IdentityGamma(),
	}
}

func TestPortOffsets(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		h := layoutHeader(
			PortDescriptor{Index: 0, Length: 3000},
			PortDescriptor{Index: 1, Length: 3000},
		)

		offsets := h.PortOffsets()
		if offsets[0] != 0 {
			t.Errorf("port 0 offset = %d, want 0", offsets[0])
		}
		if offsets[1] != 3000 {
			t.Errorf("port 1 offset = %d, want 3000", offsets[1])
		}
	})

	t.Run("unordered_indices", func(t *testing.T) {
		h := layoutHeader(
			PortDescriptor{Index: 5, Length: 10},
			PortDescriptor{Index: 2, Length: 20},
			PortDescriptor{Index: 9, Length: 30},
		)

		offsets := h.PortOffsets()
		want := map[uint16]int{5: 0, 2: 10, 9: 30}
		for index, off := range want {
			if offsets[index] != off {
				t.Errorf("port %d offset = %d, want %d", index, offsets[index], off)
			}
		}
	})
}

func TestPortSpan(t *testing.T) {
	h := layoutHeader(
		PortDescriptor{Index: 0, Length: 3000},
		PortDescriptor{Index: 1, Length: 1500},
	)

	offset, length, err := h.PortSpan(1)
	if err != nil {
		t.Fatalf("PortSpan(1) failed: %v", err)
	}
	if offset != 3000 || length != 1500 {
		t.Errorf("PortSpan(1) = (%d, %d), want (3000, 1500)", offset, length)
	}

	_, _, err = h.PortSpan(4)
	if !errors.Is(err, ErrUnknownPort) {
		t.Fatalf("PortSpan(4) err = %v, want ErrUnknownPort", err)
	}
}

func TestExtractPort(t *testing.T) {
	h := layoutHeader(
		PortDescriptor{Index: 0, Length: 3000},
		PortDescriptor{Index: 1, Length: 3000},
	)

	frame := make([]byte, 6000)
	for i := range frame {
		frame[i] = byte(i % 251)
	}

	block, err := h.ExtractPort(frame, 0)
	if err != nil {
		t.Fatalf("ExtractPort(0) failed: %v", err)
	}
	if !bytes.Equal(block, frame[:3000]) {
		t.Error("port 0 block does not match the first 3000 frame bytes")
	}

	block, err = h.ExtractPort(frame, 1)
	if err != nil {
		t.Fatalf("ExtractPort(1) failed: %v", err)
	}
	if !bytes.Equal(block, frame[3000:]) {
		t.Error("port 1 block does not match the last 3000 frame bytes")
	}

	_, err = h.ExtractPort(frame[:4000], 1)
	if err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("short frame err = %v, want bounds error", err)
	}
}

func TestDuplicatePortIndexFirstWins(t *testing.T) {
	h := layoutHeader(
		PortDescriptor{Index: 1, Length: 10},
		PortDescriptor{Index: 1, Length: 20},
	)

	offset, length, err := h.PortSpan(1)
	if err != nil {
		t.Fatalf("PortSpan(1) failed: %v", err)
	}
	if offset != 0 || length != 10 {
		t.Errorf("PortSpan(1) = (%d, %d), want the first record (0, 10)", offset, length)
	}
	if got := h.PortOffsets()[1]; got != 0 {
		t.Errorf("PortOffsets()[1] = %d, want 0", got)
	}
}
