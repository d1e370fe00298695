package crosspred

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/Noofbiz/essayBowl/datasets"
	"github.com/Noofbiz/essayBowl/learners"
)

// Prediction is one held-out prediction: the predicted score, the true
// score, the original row index and the row's essay set.
type Prediction struct {
	Pred     float32
	Truth    float32
	Idx      int
	EssaySet int
}

// Config holds the harness knobs.
type Config struct {
	// NFold is the number of cross-validation folds (default 5).
	NFold int

	// Seed drives fold shuffling. The harness never touches process-wide
	// RNG state; the same seed over the same data yields identical folds.
	Seed int64

	// Verbose enables progress and structure reporting (integer verbosity
	// level; 0 is silent).
	Verbose int

	// Workers bounds the fold worker pool (default NumCPU).
	Workers int
}

// CrossPredict fits a learner per (fold, essay set) combination and gathers
// out-of-fold predictions. The dataset and index registry are immutable
// after construction; learners are constructed fresh per combination and
// discarded after predicting.
type CrossPredict struct {
	data    *datasets.Dataset
	factory learners.Factory
	params  learners.Config
	cfg     Config

	folds []Fold
	keys  *Keys
}

// New builds the harness: it computes the stratified folds from cfg.Seed,
// builds the index registry, and runs the structural sanity check, failing
// construction on a degenerate partition.
func New(data *datasets.Dataset, factory learners.Factory, params learners.Config, cfg Config) (*CrossPredict, error) {
	if data == nil || data.Len() == 0 {
		return nil, fmt.Errorf("dataset is nil or empty")
	}
	if factory == nil {
		return nil, fmt.Errorf("learner factory is nil")
	}
	if cfg.NFold == 0 {
		cfg.NFold = 5
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	folds, err := stratifiedKFold(data.Group, cfg.NFold, rng)
	if err != nil {
		return nil, err
	}

	c := &CrossPredict{
		data:    data,
		factory: factory,
		params:  params,
		cfg:     cfg,
		folds:   folds,
		keys:    newKeys(data.Group),
	}

	// Check integrity of the CV structure before anything trains on it.
	if _, err := c.AnalyzeStructure(); err != nil {
		return nil, err
	}
	return c, nil
}

// Folds returns the computed folds. The returned slice must not be modified.
func (c *CrossPredict) Folds() []Fold {
	return c.folds
}

// trainAndPredict fits a fresh learner on the train rows and predicts the
// test rows, returning one Prediction per test row. The shared
// hyperparameters are cloned so no learner can mutate them for another.
func (c *CrossPredict) trainAndPredict(trainIdx, testIdx []int) ([]Prediction, error) {
	trainData, err := c.data.Select(trainIdx)
	if err != nil {
		return nil, err
	}
	testData, err := c.data.Select(testIdx)
	if err != nil {
		return nil, err
	}

	learner, err := c.factory(c.params.Clone())
	if err != nil {
		return nil, fmt.Errorf("constructing learner: %w", err)
	}
	if err := learner.Train(trainData); err != nil {
		return nil, fmt.Errorf("training learner: %w", err)
	}
	preds, err := learner.Predict(testData.X)
	if err != nil {
		return nil, fmt.Errorf("predicting: %w", err)
	}
	if len(preds) != len(testIdx) {
		return nil, fmt.Errorf("learner returned %d predictions for %d test rows", len(preds), len(testIdx))
	}

	records := make([]Prediction, len(testIdx))
	for i, idx := range testIdx {
		records[i] = Prediction{
			Pred:     preds[i],
			Truth:    testData.Y[i],
			Idx:      idx,
			EssaySet: c.keys.EssaySet[idx],
		}
	}
	return records, nil
}

// trainAndPredictOneFold fits one model per essay set present in fold k.
// We fit a totally separate model for each essay set, so the fold's rows are
// further grouped by set before training.
func (c *CrossPredict) trainAndPredictOneFold(k int) ([]Prediction, error) {
	if c.cfg.Verbose > 0 {
		log.Printf("training fold %d", k)
	}
	trnBySet := c.keys.groupRows(c.folds[k].Train)
	tstBySet := c.keys.groupRows(c.folds[k].Test)

	// The essay sets covered by train and test rows must be identical, or
	// the CV split was terribly uneven.
	if err := sameSets(trnBySet, tstBySet, k); err != nil {
		return nil, err
	}

	var records []Prediction
	for _, set := range sortedSets(tstBySet) {
		recs, err := c.trainAndPredict(trnBySet[set], tstBySet[set])
		if err != nil {
			return nil, fmt.Errorf("fold %d essay set %d: %w", k, set, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

// sameSets verifies train and test cover the same essay sets in fold k.
func sameSets(trn, tst map[int][]int, k int) error {
	if len(trn) != len(tst) {
		return fmt.Errorf("fold %d: train covers %d essay sets, test covers %d: %w",
			k, len(trn), len(tst), ErrGroupMismatch)
	}
	for set := range tst {
		if _, ok := trn[set]; !ok {
			return fmt.Errorf("fold %d: essay set %d present in test but not train: %w",
				k, set, ErrGroupMismatch)
		}
	}
	return nil
}

// Run drives the trainer across all folds and returns the concatenated
// predictions sorted ascending by original row index. Each row's prediction
// comes from a model that never saw that row in training; the result holds
// exactly one record per dataset row.
//
// Folds are independent, so they are trained by a bounded worker pool; the
// concatenation and sort happen only after every fold completes. The first
// fold error aborts the call.
func (c *CrossPredict) Run() ([]Prediction, error) {
	nFold := len(c.folds)
	results := make([][]Prediction, nFold)
	errs := make([]error, nFold)

	workerCount := c.cfg.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount > nFold {
		workerCount = nFold
	}

	jobs := make(chan int, nFold)
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for k := range jobs {
				results[k], errs[k] = c.trainAndPredictOneFold(k)
			}
		}()
	}
	for k := 0; k < nFold; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var preds []Prediction
	for _, recs := range results {
		preds = append(preds, recs...)
	}
	sort.Slice(preds, func(i, j int) bool { return preds[i].Idx < preds[j].Idx })
	return preds, nil
}

// Cheat bypasses folding entirely: for each essay set it trains and predicts
// on the same rows, producing in-sample fitted values rather than held-out
// predictions. Only useful as a diagnostic baseline; never report its output
// as cross-validated.
func (c *CrossPredict) Cheat() ([]Prediction, error) {
	bySet := c.keys.groupRows(c.keys.Ref)
	var preds []Prediction
	for _, set := range sortedSets(bySet) {
		recs, err := c.trainAndPredict(bySet[set], bySet[set])
		if err != nil {
			return nil, fmt.Errorf("essay set %d: %w", set, err)
		}
		preds = append(preds, recs...)
	}
	return preds, nil
}
