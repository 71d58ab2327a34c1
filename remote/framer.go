package remote

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxFrameBytes bounds a single frame so a corrupt or hostile length
// prefix cannot make ReadFrame allocate without limit.
const maxFrameBytes = 64 << 20

// WriteFrame writes payload to w prefixed with its length as a 4-byte
// big-endian unsigned integer.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > maxFrameBytes {
		return fmt.Errorf("remote: frame of %d bytes exceeds max %d", len(payload), maxFrameBytes)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("remote: write frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("remote: write frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads a 4-byte big-endian length prefix from r, then reads
// and returns exactly that many bytes.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxFrameBytes {
		return nil, fmt.Errorf("remote: frame of %d bytes exceeds max %d", n, maxFrameBytes)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("remote: read frame payload: %w", err)
	}
	return buf, nil
}
