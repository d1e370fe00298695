package crosspred

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"
)

// ratioTolerance is the sanity threshold on the train:test ratio spread
// across (fold, essay set) pairs: maxRatio/minRatio must stay strictly
// below it. The value is a heuristic, kept as-is deliberately.
const ratioTolerance = 1.02

// PairCount holds train/test row counts for one (fold, essay set) pair.
type PairCount struct {
	Fold       int
	EssaySet   int
	TrainCount int
	TestCount  int
	Ratio      float64
}

// StructureReport summarizes the partition: one PairCount per (fold, essay
// set) combination, sorted by fold then essay set, plus the observed ratio
// extremes. len(Pairs) is the number of distinct models a full
// cross-prediction will fit.
type StructureReport struct {
	Pairs    []PairCount
	MinRatio float64
	MaxRatio float64
}

// AnalyzeStructure runs sanity checks to ensure the CV folds are working as
// expected. For every (fold, essay set) pair it recomputes train and test
// row counts and their ratio; if the ratio spread reaches ratioTolerance the
// partition is unusable (typically an essay set too small to split evenly
// across folds) and ErrDegenerateSplit is returned.
//
// New runs this check once at construction; it is cheap enough to call again
// at any time.
func (c *CrossPredict) AnalyzeStructure() (*StructureReport, error) {
	var pairs []PairCount
	for k, fold := range c.folds {
		trnBySet := c.keys.groupRows(fold.Train)
		tstBySet := c.keys.groupRows(fold.Test)
		for _, set := range sortedSets(tstBySet) {
			trainCount := len(trnBySet[set])
			testCount := len(tstBySet[set])
			if trainCount == 0 || testCount == 0 {
				return nil, fmt.Errorf("fold %d essay set %d: train count %d, test count %d: %w",
					k, set, trainCount, testCount, ErrDegenerateSplit)
			}
			pairs = append(pairs, PairCount{
				Fold:       k,
				EssaySet:   set,
				TrainCount: trainCount,
				TestCount:  testCount,
				Ratio:      float64(trainCount) / float64(testCount),
			})
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no (fold, essay set) pairs: %w", ErrDegenerateSplit)
	}

	ratios := make([]float64, len(pairs))
	for i, p := range pairs {
		ratios[i] = p.Ratio
	}
	minRatio := floats.Min(ratios)
	maxRatio := floats.Max(ratios)
	if maxRatio/minRatio >= ratioTolerance {
		lo := pairs[floats.MinIdx(ratios)]
		hi := pairs[floats.MaxIdx(ratios)]
		return nil, fmt.Errorf(
			"ratio spread %.4f (fold %d essay set %d at %.3f vs fold %d essay set %d at %.3f): %w",
			maxRatio/minRatio, lo.Fold, lo.EssaySet, lo.Ratio, hi.Fold, hi.EssaySet, hi.Ratio,
			ErrDegenerateSplit)
	}

	if c.cfg.Verbose > 0 {
		log.Printf("cross predict involves fitting and predicting with %d different models, one for every fold-essay set combination", len(pairs))
		log.Printf("the ratio of training data to testing data in the folds ranges from %v to %v", minRatio, maxRatio)
	}
	return &StructureReport{Pairs: pairs, MinRatio: minRatio, MaxRatio: maxRatio}, nil
}
