package rgb0

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/uwwint/GC-5016/pkg/compress"
)

// DecodeOptions adjust how much of a capture Decode consumes.
type DecodeOptions struct {
	// MaxFrames caps the number of frames read. When positive it replaces
	// the header's declared count entirely, in both directions: a capture
	// whose header lies can still be read past (or short of) its claim.
	MaxFrames int

	// Logger receives per-region progress. nil means silent.
	Logger hclog.Logger
}

// Decode reads a complete capture from r.
func Decode(r io.Reader) (*File, error) {
	return DecodeWithOptions(r, DecodeOptions{})
}

// DecodeWithOptions reads a complete capture from r.
//
// The preamble (header, port table, gamma LUT) must be complete; any
// shortfall there is fatal. Frame data is read tolerantly: a short trailing
// frame is dropped and the whole frames before it are returned. A declared
// frame count of zero means read until the stream ends.
func DecodeWithOptions(r io.Reader, opts DecodeOptions) (*File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	header, err := decodePreamble(r, logger)
	if err != nil {
		return nil, err
	}

	target := opts.MaxFrames
	if target <= 0 {
		target = int(header.FrameCount)
	}

	frames, err := readFrames(r, int(header.FrameSize), target, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("✅ Decoded capture",
		"frames", len(frames),
		"frame_size", header.FrameSize,
		"ports", header.PortCount,
	)

	return &File{Header: header, Frames: frames}, nil
}

// DecodeHeader reads only the preamble: header prefix, port table and
// gamma LUT. Frame data is left unread on r.
func DecodeHeader(r io.Reader) (*Header, error) {
	return decodePreamble(r, hclog.NewNullLogger())
}

// ReadFile decodes the capture at path. Captures archived with gzip, bzip2
// or zstd are sniffed and unwrapped transparently.
func ReadFile(path string) (*File, error) {
	return ReadFileWithOptions(path, DecodeOptions{})
}

// ReadFileWithOptions decodes the capture at path with explicit options.
func ReadFileWithOptions(path string, opts DecodeOptions) (*File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, codec, err := compress.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	if codec != compress.None {
		logger.Debug("📦 Compressed capture", "path", path, "codec", codec)
	}

	return DecodeWithOptions(src, opts)
}

// decodePreamble reads the three fixed regions in order. Every shortfall
// here is fatal; nothing downstream can be located without them.
func decodePreamble(r io.Reader, logger hclog.Logger) (*Header, error) {
	prefix := make([]byte, HeaderSize)
	if n, err := io.ReadFull(r, prefix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedHeader, n, HeaderSize)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	header, err := UnpackHeader(prefix)
	if err != nil {
		return nil, err
	}
	logger.Debug("📂 Header",
		"frame_count", header.FrameCount,
		"frame_size", header.FrameSize,
		"ports", header.PortCount,
		"channels", header.Channels,
	)

	tableSize := int(header.PortCount) * PortEntrySize
	table := make([]byte, tableSize)
	if n, err := io.ReadFull(r, table); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedPortTable, n, tableSize)
		}
		return nil, fmt.Errorf("reading port table: %w", err)
	}
	if header.Ports, err = UnpackPortTable(table, int(header.PortCount)); err != nil {
		return nil, err
	}

	gamma := make([]byte, GammaSize)
	if n, err := io.ReadFull(r, gamma); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedGammaTable, n, GammaSize)
		}
		return nil, fmt.Errorf("reading gamma table: %w", err)
	}
	if header.Gamma, err = UnpackGamma(gamma); err != nil {
		return nil, err
	}

	// Captures with a disagreeing port table exist; the hardware plays them
	// by frame_size, so the decoder does too.
	if sum := header.portLengthSum(); sum != int(header.FrameSize) {
		logger.Warn("⚠️ Frame size disagrees with port table",
			"frame_size", header.FrameSize,
			"port_sum", sum,
		)
	}

	return header, nil
}

// readFrames reads frameSize-byte frames until target frames have been
// read or the stream ends. target 0 means read to EOF. A short trailing
// frame is discarded silently.
func readFrames(r io.Reader, frameSize, target int, logger hclog.Logger) ([][]byte, error) {
	if frameSize == 0 {
		logger.Warn("⚠️ Zero frame size, skipping frame data")
		return nil, nil
	}

	var frames [][]byte
	for target == 0 || len(frames) < target {
		frame := make([]byte, frameSize)
		n, err := io.ReadFull(r, frame)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if n > 0 {
					logger.Debug("🔍 Dropping partial trailing frame",
						"bytes", n,
						"frame_size", frameSize,
					)
				}
				break
			}
			return nil, fmt.Errorf("reading frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
