package rgb0

import "errors"

// Decode and encode failure conditions. Call sites wrap these with
// fmt.Errorf("%w: ...") to carry offsets and indices; match with errors.Is.
//
// A short read inside frame data is deliberately absent: captures in the
// wild are routinely cut mid-frame, so the decoder drops the partial frame
// and returns what it has.
var (
	ErrMalformedHeader     = errors.New("malformed header")
	ErrTruncatedHeader     = errors.New("truncated header")
	ErrTruncatedPortTable  = errors.New("truncated port table")
	ErrTruncatedGammaTable = errors.New("truncated gamma table")
	ErrShapeMismatch       = errors.New("frame shape mismatch")
	ErrInvalidGammaTable   = errors.New("invalid gamma table")
	ErrUnknownPort         = errors.New("unknown port index")
	ErrNoFrames            = errors.New("no frames to write")
)
