package cosim_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/flocksim/swarmcore/cosim"
)

func TestFrameRoundTrip(t *testing.T) {
	m := [][]float64{
		{0, -50.5, math.Inf(-1)},
		{-50.5, 0, -70},
		{math.Inf(-1), -70, 0},
	}
	payload := cosim.EncodeMatrix(m)

	var buf bytes.Buffer
	if err := cosim.WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := cosim.ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	decoded, err := cosim.DecodeMatrix(got, 3)
	if err != nil {
		t.Fatalf("DecodeMatrix: %v", err)
	}

	for i := range m {
		for j := range m[i] {
			if decoded[i][j] != m[i][j] {
				t.Errorf("decoded[%d][%d] = %v, want %v", i, j, decoded[i][j], m[i][j])
			}
		}
	}
}

func TestReadFrameShortRead(t *testing.T) {
	buf := bytes.NewBuffer([]byte{10, 0, 0, 0, 1, 2, 3})
	_, err := cosim.ReadFrame(buf)
	if err == nil {
		t.Fatal("expected ErrShortFrame")
	}
}

func TestDecodeMatrixWrongLength(t *testing.T) {
	_, err := cosim.DecodeMatrix([]byte{1, 2, 3}, 2)
	if err == nil {
		t.Fatal("expected error for wrong-length payload")
	}
}
