package compress

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// samplePayload compresses well and is long enough to span several blocks.
func samplePayload() []byte {
	data := bytes.Repeat([]byte("RGB0 frame data "), 512)
	for i := 0; i < 64; i++ {
		data = append(data, byte(i))
	}
	return data
}

func TestCodecRoundTrip(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "compress_test",
		Level: hclog.Trace,
	})

	data := samplePayload()

	for _, codec := range []Codec{None, Gzip, Bzip2, Zstd} {
		t.Run(codec.String(), func(t *testing.T) {
			packed, err := Compress(data, codec)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			logger.Debug("📦 Compressed payload", "codec", codec, "raw", len(data), "packed", len(packed))

			if got := Detect(packed); got != codec {
				t.Fatalf("Detect() = %v, want %v", got, codec)
			}
			if codec != None && len(packed) >= len(data) {
				t.Errorf("packed size %d not smaller than raw %d", len(packed), len(data))
			}

			out, found, err := Decompress(packed)
			if err != nil {
				t.Fatalf("Failed to decompress: %v", err)
			}
			if found != codec {
				t.Errorf("Decompress codec = %v, want %v", found, codec)
			}
			if !bytes.Equal(out, data) {
				t.Error("round trip does not reproduce the payload")
			}
		})
	}
}

func TestOpenReaderSniffs(t *testing.T) {
	data := samplePayload()

	for _, codec := range []Codec{None, Gzip, Bzip2, Zstd} {
		t.Run(codec.String(), func(t *testing.T) {
			packed, err := Compress(data, codec)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}

			rc, found, err := OpenReader(bytes.NewReader(packed))
			if err != nil {
				t.Fatalf("OpenReader failed: %v", err)
			}
			defer rc.Close()

			if found != codec {
				t.Errorf("sniffed codec = %v, want %v", found, codec)
			}

			out, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("Failed to read stream: %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Error("unwrapped stream does not reproduce the payload")
			}
		})
	}
}

func TestOpenReaderEmptyStream(t *testing.T) {
	rc, codec, err := OpenReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("OpenReader failed on an empty stream: %v", err)
	}
	defer rc.Close()

	if codec != None {
		t.Errorf("codec = %v, want None", codec)
	}
	if out, _ := io.ReadAll(rc); len(out) != 0 {
		t.Errorf("read %d bytes from an empty stream", len(out))
	}
}

func TestParseCodec(t *testing.T) {
	testCases := []struct {
		name    string
		want    Codec
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"gzip", Gzip, false},
		{"gz", Gzip, false},
		{"bzip2", Bzip2, false},
		{"bz2", Bzip2, false},
		{"zstd", Zstd, false},
		{"zst", Zstd, false},
		{"lzma", None, true},
		{"GZIP", None, true},
	}

	for _, tc := range testCases {
		got, err := ParseCodec(tc.name)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedCodec) {
				t.Errorf("ParseCodec(%q) err = %v, want ErrUnsupportedCodec", tc.name, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseCodec(%q) = (%v, %v), want (%v, nil)", tc.name, got, err, tc.want)
		}
	}
}

func TestCodecExt(t *testing.T) {
	exts := map[Codec]string{None: "", Gzip: ".gz", Bzip2: ".bz2", Zstd: ".zst"}
	for codec, want := range exts {
		if got := codec.Ext(); got != want {
			t.Errorf("%v.Ext() = %q, want %q", codec, got, want)
		}
	}
}

func TestDetectShortPrefix(t *testing.T) {
	if got := Detect(nil); got != None {
		t.Errorf("Detect(nil) = %v, want None", got)
	}
	if got := Detect([]byte{0x1f}); got != None {
		t.Errorf("Detect(1f) = %v, want None", got)
	}
	if got := Detect([]byte{0x1f, 0x8b}); got != Gzip {
		t.Errorf("Detect(1f8b) = %v, want Gzip", got)
	}
}
