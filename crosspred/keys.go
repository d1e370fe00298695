package crosspred

import "sort"

// Keys is the index registry: one entry per dataset row recording its essay
// set and original row index. It is built once at harness construction and
// read-only afterwards, so concurrent training units may share it freely.
type Keys struct {
	// EssaySet is the essay set per original row index.
	EssaySet []int

	// Ref is the original row index, Ref[i] == i. Kept explicit so grouped
	// sub-selections carry original indices rather than positions.
	Ref []int
}

func newKeys(group []int) *Keys {
	k := &Keys{
		EssaySet: make([]int, len(group)),
		Ref:      make([]int, len(group)),
	}
	copy(k.EssaySet, group)
	for i := range k.Ref {
		k.Ref[i] = i
	}
	return k
}

// groupRows maps essay set -> original row indices, restricted to the given
// rows. Building the explicit map (rather than iterating two independently
// grouped collections) is what lets callers compare the key sets of train
// and test directly.
func (k *Keys) groupRows(rows []int) map[int][]int {
	bySet := make(map[int][]int)
	for _, r := range rows {
		set := k.EssaySet[r]
		bySet[set] = append(bySet[set], r)
	}
	return bySet
}

// sortedSets returns the map's essay sets in ascending order, so iteration
// over grouped rows is deterministic.
func sortedSets(bySet map[int][]int) []int {
	sets := make([]int, 0, len(bySet))
	for set := range bySet {
		sets = append(sets, set)
	}
	sort.Ints(sets)
	return sets
}
