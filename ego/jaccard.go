package ego

// JaccardSimilarity computes the signed Jaccard coefficient between agent
// i and agent j's neighbour sets:
//
//	J(i,j) = +|N_i ∩ N_j| / |N_i ∪ N_j|   if i and j are mutual neighbours
//	       = -|N_i ∩ N_j| / |N_i ∪ N_j|   otherwise
//
// neighborsOf maps an agent ID to its (sentinel-free) neighbour-ID set.
// The empty-union case (two agents with no neighbours at all) returns 0.
func JaccardSimilarity(i, j int, neighborsOf func(id int) []int) float64 {
	ni := toSet(neighborsOf(i))
	nj := toSet(neighborsOf(j))

	union := make(map[int]struct{}, len(ni)+len(nj))
	for id := range ni {
		union[id] = struct{}{}
	}
	for id := range nj {
		union[id] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	intersection := 0
	for id := range ni {
		if _, ok := nj[id]; ok {
			intersection++
		}
	}

	ratio := float64(intersection) / float64(len(union))

	_, iHasJ := ni[j]
	_, jHasI := nj[i]
	mutual := iHasJ && jHasI

	if mutual {
		return ratio
	}
	return -ratio
}

func toSet(ids []int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id >= 0 {
			s[id] = struct{}{}
		}
	}
	return s
}
