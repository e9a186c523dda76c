// Package compress detects and unwraps the archive codecs captures are
// stored with once they leave the controller's SD card.
package compress

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
)

// Codec identifies one supported archive codec.
type Codec uint8

const (
	None Codec = iota
	Gzip
	Bzip2
	Zstd
)

// ErrUnsupportedCodec reports a codec name or value outside the table above.
var ErrUnsupportedCodec = errors.New("unsupported compression codec")

// Magic prefixes for sniffing.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("codec(%d)", uint8(c))
}

// Ext returns the suffix appended to compressed capture names.
func (c Codec) Ext() string {
	switch c {
	case Gzip:
		return ".gz"
	case Bzip2:
		return ".bz2"
	case Zstd:
		return ".zst"
	}
	return ""
}

// ParseCodec maps a user-facing codec name to a Codec. The empty string
// means no compression.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "zstd", "zst":
		return Zstd, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnsupportedCodec, name)
}

// Detect sniffs the codec from the first bytes of a stream. Anything
// without a known magic is treated as raw data.
func Detect(prefix []byte) Codec {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, bzip2Magic):
		return Bzip2
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	}
	return None
}

// OpenReader sniffs r and wraps it in the matching decompressor, passing
// raw data through untouched. Closing the returned ReadCloser releases the
// decompressor but never closes r itself.
func OpenReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, fmt.Errorf("sniffing codec: %w", err)
	}

	codec := Detect(prefix)
	switch codec {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("creating gzip reader: %w", err)
		}
		return gr, codec, nil
	case Bzip2:
		zr, err := bzip2.NewReader(br, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, codec, fmt.Errorf("creating bzip2 reader: %w", err)
		}
		return zr, codec, nil
	case Zstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("creating zstd reader: %w", err)
		}
		return dec.IOReadCloser(), codec, nil
	}
	return io.NopCloser(br), None, nil
}

// Compress encodes data with the given codec. None returns data unchanged.
func Compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case None:
		return data, nil

	case Gzip:
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			gw.Close()
			return nil, fmt.Errorf("writing gzip data: %w", err)
		}
		if err := gw.Close(); err != nil {
			return nil, fmt.Errorf("closing gzip writer: %w", err)
		}
		return buf.Bytes(), nil

	case Bzip2:
		var buf bytes.Buffer
		bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: 9})
		if err != nil {
			return nil, fmt.Errorf("creating bzip2 writer: %w", err)
		}
		if _, err := bw.Write(data); err != nil {
			bw.Close()
			return nil, fmt.Errorf("writing bzip2 data: %w", err)
		}
		if err := bw.Close(); err != nil {
			return nil, fmt.Errorf("closing bzip2 writer: %w", err)
		}
		return buf.Bytes(), nil

	case Zstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnsupportedCodec, uint8(codec))
}

// Decompress sniffs data and returns it decoded, reporting which codec was
// found. Raw input comes back unchanged.
func Decompress(data []byte) ([]byte, Codec, error) {
	codec := Detect(data)
	switch codec {
	case None:
		return data, None, nil

	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, codec, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, codec, fmt.Errorf("decoding zstd data: %w", err)
		}
		return out, codec, nil
	}

	rc, _, err := OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, codec, err
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, codec, fmt.Errorf("reading %s data: %w", codec, err)
	}
	return out, codec, nil
}
