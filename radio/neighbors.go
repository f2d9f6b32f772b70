package radio

import "sort"

// candidate is a scratch pairing of agent ID to link power, used only
// during selection.
type candidate struct {
	id    int
	power float64
}

// DefineNeighborhood thresholds the link powers from one agent to every
// other agent by sensitivityThresh, sorts the survivors by descending
// power, and keeps at most maxNeighbours of them. The
// returned slice always has length maxNeighbours, padded with the
// sentinel ID -1 (matching power -Inf) when fewer candidates qualify.
func DefineNeighborhood(selfID int, powerToOthers map[int]float64, sensitivityThresh float64, maxNeighbours int) []int {
	cands := make([]candidate, 0, len(powerToOthers))
	for id, p := range powerToOthers {
		if id == selfID {
			continue
		}
		if p >= sensitivityThresh {
			cands = append(cands, candidate{id: id, power: p})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].power != cands[j].power {
			return cands[i].power > cands[j].power
		}
		return cands[i].id < cands[j].id // deterministic tie-break
	})

	out := make([]int, maxNeighbours)
	for i := range out {
		if i < len(cands) {
			out[i] = cands[i].id
		} else {
			out[i] = -1
		}
	}
	return out
}

// CountActive returns the number of non-sentinel entries in a neighbour
// slice.
func CountActive(neighbours []int) int {
	n := 0
	for _, id := range neighbours {
		if id >= 0 {
			n++
		}
	}
	return n
}
