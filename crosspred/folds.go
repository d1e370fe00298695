package crosspred

import (
	"fmt"
	"math/rand"
	"sort"
)

// Fold is one train/test row-index partition. Train and Test are disjoint
// and sorted ascending; across all folds the test sets partition the full
// index range exactly once.
type Fold struct {
	Train []int
	Test  []int
}

// stratifiedKFold splits row indices into nFold folds, stratified by essay
// set: each set's rows are shuffled with the provided RNG and dealt into
// near-equal test chunks, so every fold's train and test halves preserve the
// global essay-set proportions as closely as the row counts allow.
//
// Fails with ErrFoldCount if any essay set has fewer rows than nFold.
func stratifiedKFold(group []int, nFold int, rng *rand.Rand) ([]Fold, error) {
	if nFold < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", nFold)
	}

	bySet := make(map[int][]int)
	for i, set := range group {
		bySet[set] = append(bySet[set], i)
	}

	testSets := make([][]int, nFold)
	for _, set := range sortedSets(bySet) {
		rows := bySet[set]
		if len(rows) < nFold {
			return nil, fmt.Errorf("essay set %d has %d rows for %d folds: %w",
				set, len(rows), nFold, ErrFoldCount)
		}

		shuffled := make([]int, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		// Deal this set's rows into nFold contiguous chunks; the first
		// len%nFold chunks get one extra row.
		base := len(shuffled) / nFold
		extra := len(shuffled) % nFold
		start := 0
		for k := 0; k < nFold; k++ {
			size := base
			if k < extra {
				size++
			}
			testSets[k] = append(testSets[k], shuffled[start:start+size]...)
			start += size
		}
	}

	folds := make([]Fold, nFold)
	for k := 0; k < nFold; k++ {
		inTest := make([]bool, len(group))
		for _, idx := range testSets[k] {
			inTest[idx] = true
		}
		train := make([]int, 0, len(group)-len(testSets[k]))
		for i := range group {
			if !inTest[i] {
				train = append(train, i)
			}
		}
		test := make([]int, len(testSets[k]))
		copy(test, testSets[k])
		sort.Ints(test)
		folds[k] = Fold{Train: train, Test: test}
	}
	return folds, nil
}
