package cosim

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteFrame writes one length-prefixed frame: a 4-byte little-endian
// byte count followed by the payload.
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("cosim: write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("cosim: write frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame, returning ErrShortFrame if
// the stream ends before the declared payload length is satisfied.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrShortFrame, err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrShortFrame, err)
	}
	return payload, nil
}

// EncodeMatrix serializes an N x N matrix of float64 as IEEE-754 doubles
// in row-major order, the shared shape used for both the neighbour-ID
// frame and the link-power frame; sentinel values (-1 for
// neighbour IDs, -Inf for power) are written as-is.
func EncodeMatrix(m [][]float64) []byte {
	n := len(m)
	out := make([]byte, 0, n*n*8)
	var buf [8]byte
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m[i][j]))
			out = append(out, buf[:]...)
		}
	}
	return out
}

// DecodeMatrix parses a row-major N x N matrix of IEEE-754 doubles. n must
// match the encoder's agent count; a payload of the wrong length returns
// ErrShortFrame.
func DecodeMatrix(payload []byte, n int) ([][]float64, error) {
	want := n * n * 8
	if len(payload) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(payload), want)
	}
	out := make([][]float64, n)
	pos := 0
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			bits := binary.LittleEndian.Uint64(payload[pos : pos+8])
			out[i][j] = math.Float64frombits(bits)
			pos += 8
		}
	}
	return out, nil
}
