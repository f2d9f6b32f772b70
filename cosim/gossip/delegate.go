//go:build !nogossip
// +build !nogossip

package gossip

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hashicorp/memberlist"

	"github.com/flocksim/swarmcore/cosim"
)

// broadcast implements memberlist.Broadcast for one gossiped row update.
// Rows are never coalesced or invalidated by a later one; the delegate
// simply keeps whatever arrives, so Invalidates always returns false.
type broadcast struct {
	msg []byte
}

func (b *broadcast) Invalidates(memberlist.Broadcast) bool { return false }
func (b *broadcast) Message() []byte                       { return b.msg }
func (b *broadcast) Finished()                             {}

// delegate implements memberlist.Delegate, routing gossiped row updates
// into the owning Oracle and declining to carry any node metadata or
// full-state sync (every row is small and self-healing on the next tick,
// so a TCP push/pull sync would be redundant work).
type delegate struct {
	oracle *Oracle
}

func (d *delegate) NodeMeta(limit int) []byte { return nil }

func (d *delegate) NotifyMsg(msg []byte) {
	id, neighbors, powers, err := decodeRow(msg)
	if err != nil {
		return
	}
	d.oracle.recordRow(id, neighbors, powers)
}

func (d *delegate) GetBroadcasts(overhead, limit int) [][]byte {
	return d.oracle.queue.GetBroadcasts(overhead, limit)
}

func (d *delegate) LocalState(join bool) []byte            { return nil }
func (d *delegate) MergeRemoteState(buf []byte, join bool) {}

// encodeRow packs one agent's gossiped row as:
// agent ID (int32) | neighbour count (uint32) | neighbour IDs (int32 each)
// | power count (uint32) | powers (float64 each, cosim's wire encoding).
func encodeRow(id int, neighbors []int, powers []float64) ([]byte, error) {
	out := make([]byte, 0, 8+len(neighbors)*4+len(powers)*8)
	var b4 [4]byte

	binary.LittleEndian.PutUint32(b4[:], uint32(int32(id)))
	out = append(out, b4[:]...)

	binary.LittleEndian.PutUint32(b4[:], uint32(len(neighbors)))
	out = append(out, b4[:]...)
	for _, n := range neighbors {
		binary.LittleEndian.PutUint32(b4[:], uint32(int32(n)))
		out = append(out, b4[:]...)
	}

	binary.LittleEndian.PutUint32(b4[:], uint32(len(powers)))
	out = append(out, b4[:]...)
	for _, p := range powers {
		var b8 [8]byte
		binary.LittleEndian.PutUint64(b8[:], math.Float64bits(p))
		out = append(out, b8[:]...)
	}
	return out, nil
}

func decodeRow(buf []byte) (id int, neighbors []int, powers []float64, err error) {
	if len(buf) < 8 {
		return 0, nil, nil, fmt.Errorf("%w: gossip row header", cosim.ErrShortFrame)
	}
	id = int(int32(binary.LittleEndian.Uint32(buf[0:4])))
	nCount := int(binary.LittleEndian.Uint32(buf[4:8]))
	pos := 8
	if len(buf) < pos+nCount*4+4 {
		return 0, nil, nil, fmt.Errorf("%w: gossip row neighbours", cosim.ErrShortFrame)
	}
	neighbors = make([]int, nCount)
	for i := 0; i < nCount; i++ {
		neighbors[i] = int(int32(binary.LittleEndian.Uint32(buf[pos : pos+4])))
		pos += 4
	}
	pCount := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
	pos += 4
	if len(buf) < pos+pCount*8 {
		return 0, nil, nil, fmt.Errorf("%w: gossip row powers", cosim.ErrShortFrame)
	}
	powers = make([]float64, pCount)
	for i := 0; i < pCount; i++ {
		powers[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos : pos+8]))
		pos += 8
	}
	return id, neighbors, powers, nil
}
