package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uwwint/GC-5016/pkg/rgb0"
)

func dumpFixture(t *testing.T) *rgb0.File {
	t.Helper()

	frames := make([][][]rgb0.RGB, 2)
	for f := range frames {
		frames[f] = make([][]rgb0.RGB, 2)
		for p := range frames[f] {
			leds := make([]rgb0.RGB, 4)
			for l := range leds {
				leds[l] = rgb0.RGB{R: uint8(f), G: uint8(p), B: uint8(l)}
			}
			frames[f][p] = leds
		}
	}

	data, err := rgb0.Encode(frames, rgb0.EncodeOptions{LEDsPerPort: 4, PortCount: 2})
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	file, err := rgb0.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return file
}

func TestDumpPortStream(t *testing.T) {
	file := dumpFixture(t)
	out := filepath.Join(t.TempDir(), "port1.bin")

	if err := dumpPortStream(file, "scene.rgb", 1, out); err != nil {
		t.Fatalf("dumpPortStream failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read dump: %v", err)
	}
	want := make([]byte, 0, 24)
	for f := 0; f < 2; f++ {
		for l := 0; l < 4; l++ {
			want = append(want, byte(f), 1, byte(l))
		}
	}
	if !bytes.Equal(got, want) {
		t.Errorf("dump = %x, want %x", got, want)
	}
}

func TestDumpPortStreamRejectsBadArgs(t *testing.T) {
	file := dumpFixture(t)

	testCases := []struct {
		name    string
		port    int
		out     string
		wantMsg string
	}{
		{"missing_out", 1, "", "--out"},
		{"port_over_16_bits", 65536, filepath.Join(t.TempDir(), "x.bin"), "16-bit"},
		{"unknown_port", 9, filepath.Join(t.TempDir(), "y.bin"), "unknown port index"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := dumpPortStream(file, "scene.rgb", tc.port, tc.out)
			if err == nil || !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("err = %v, want it to contain %q", err, tc.wantMsg)
			}
			if tc.out != "" {
				if _, statErr := os.Stat(tc.out); !os.IsNotExist(statErr) {
					t.Errorf("dump file created despite the error")
				}
			}
		})
	}
}
