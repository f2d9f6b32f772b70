// Package cosim defines the interface and wire format external
// co-simulation collaborators use to hand the core pre-computed neighbour
// lists and link powers, bypassing the core's own radio model. The
// transport itself (a length-prefixed byte stream) is an external
// collaborator's concern; this package only specifies the interface the
// core consumes and the frame codec external adapters (e.g. cosim/gossip)
// use to implement it.
package cosim

import "errors"

// ErrShortFrame is returned by frame decoding when fewer bytes are
// available than the declared frame length promises. A short read is
// fatal to the tick loop, since the caller cannot know which agent's data
// was truncated.
var ErrShortFrame = errors.New("cosim: short frame read")

// RadioOracle supplies pre-computed neighbour IDs and link powers for one
// agent, bypassing the core's own radio model and neighbour selection.
// When an oracle is supplied, local GPS noise and link-power computation
// are skipped entirely in favour of its values.
type RadioOracle interface {
	// NeighborsFor returns the neighbour IDs for agent id, sentinel -1
	// padded. The core clamps the result to Size_Neighbourhood.
	NeighborsFor(id int) ([]int, error)

	// PowersFor returns the received power (dBm) from agent id to every
	// other agent, indexed by agent ID, sentinel -Inf for absent links.
	PowersFor(id int) ([]float64, error)
}
