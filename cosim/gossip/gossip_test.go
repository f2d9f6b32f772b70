//go:build !nogossip
// +build !nogossip

package gossip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRowRoundTrip(t *testing.T) {
	neighbors := []int{3, 7, -1, -1}
	powers := []float64{-40.5, -90, -12.25}

	buf, err := encodeRow(5, neighbors, powers)
	require.NoError(t, err)

	id, gotNeighbors, gotPowers, err := decodeRow(buf)
	require.NoError(t, err)

	assert.Equal(t, 5, id)
	assert.Equal(t, neighbors, gotNeighbors)
	assert.Equal(t, powers, gotPowers)
}

func TestDecodeRowShortBufferErrors(t *testing.T) {
	_, _, _, err := decodeRow([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestOracleServesPublishedRows(t *testing.T) {
	o := &Oracle{
		selfID:    0,
		neighbors: make(map[int][]int),
		powers:    make(map[int][]float64),
	}
	o.recordRow(2, []int{0, 1}, []float64{-50, -60})

	n, err := o.NeighborsFor(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, n)

	p, err := o.PowersFor(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-50, -60}, p)
}

func TestOracleUnknownAgentReturnsEmpty(t *testing.T) {
	o := &Oracle{neighbors: make(map[int][]int), powers: make(map[int][]float64)}
	n, err := o.NeighborsFor(99)
	require.NoError(t, err)
	assert.Nil(t, n)
}
