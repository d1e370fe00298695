// Command compare runs the essay feature pipeline and compares out-of-fold
// cross-prediction against in-sample fitted values ("cheat") for a chosen
// learner.
//
// Typical usage, starting from the raw ASAP training CSV:
//
//	compare -raw data/training_set.csv -workdir output -stages all
//	compare -raw data/training_set.csv -workdir output -learner mlp \
//	        -plot output/scatter.png -out output/preds.csv
//
// The pipeline stages write their intermediate artifacts (tokenized docs,
// reduced docs, embedding tables, feature CSVs) under -workdir, so stages
// can be re-run individually.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Noofbiz/essayBowl/crosspred"
	"github.com/Noofbiz/essayBowl/datasets"
	"github.com/Noofbiz/essayBowl/learners"
	"github.com/Noofbiz/essayBowl/pipeline"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// config mirrors the optional JSON config file. CLI flags override any value
// set here.
type config struct {
	Harness struct {
		NFold   int   `json:"n_fold"`
		Seed    int64 `json:"seed"`
		Verbose int   `json:"verbose"`
		Workers int   `json:"workers"`
	} `json:"harness"`
	Learner struct {
		Kind         string  `json:"kind"`
		HiddenSizes  []int   `json:"hidden_sizes"`
		LearningRate float64 `json:"learning_rate"`
		Epochs       int     `json:"epochs"`
		BatchSize    int     `json:"batch_size"`
		K            int     `json:"k"`
	} `json:"learner"`
}

func main() {
	var (
		rawPath    = flag.String("raw", "", "raw essay CSV (columns essay, essay_set, domain1_score)")
		workdir    = flag.String("workdir", "output", "directory for pipeline artifacts")
		stages     = flag.String("stages", "", "comma-separated pipeline stages to run: tokenize,token-features,reduce,word2vec,essay-features,doc2vec or 'all'")
		featGlob   = flag.String("features", "", "glob of feature CSVs to train on (default <workdir>/*_features.csv)")
		learnerStr = flag.String("learner", "mlp", "learner to fit: mlp, knn or mean")
		nFold      = flag.Int("nfold", 5, "number of cross-validation folds")
		seed       = flag.Int64("seed", 0, "seed for fold shuffling and learner init")
		verbose    = flag.Int("verbose", 0, "verbosity level")
		workers    = flag.Int("workers", 0, "fold worker pool size (0 = NumCPU)")
		outPath    = flag.String("out", "", "where to write the prediction CSV")
		plotPath   = flag.String("plot", "", "where to write a pred-vs-truth scatter plot (png/svg/pdf)")
		configPath = flag.String("config", "", "optional JSON config file; flags override it")
	)
	flag.Parse()

	if *rawPath == "" {
		log.Fatal("missing -raw: path to the raw essay CSV is required")
	}
	if err := os.MkdirAll(*workdir, 0o755); err != nil {
		log.Fatalf("failed to create workdir: %v", err)
	}

	cfg := loadConfig(*configPath)
	if *nFold != 5 || cfg.Harness.NFold == 0 {
		cfg.Harness.NFold = *nFold
	}
	if *seed != 0 || cfg.Harness.Seed == 0 {
		cfg.Harness.Seed = *seed
	}
	if *verbose != 0 {
		cfg.Harness.Verbose = *verbose
	}
	if *workers != 0 {
		cfg.Harness.Workers = *workers
	}
	if *learnerStr != "mlp" || cfg.Learner.Kind == "" {
		cfg.Learner.Kind = *learnerStr
	}

	if *stages != "" {
		if err := runStages(*stages, *rawPath, *workdir, cfg.Harness.Seed); err != nil {
			log.Fatalf("pipeline stage failed: %v", err)
		}
	}

	if *outPath == "" && *plotPath == "" {
		// Pipeline-only invocation.
		return
	}

	glob := *featGlob
	if glob == "" {
		glob = filepath.Join(*workdir, "*_features.csv")
	}
	data, err := buildDataset(*rawPath, glob)
	if err != nil {
		log.Fatalf("failed to assemble dataset: %v", err)
	}
	log.Printf("dataset: %d essays, %d features", data.Len(), data.NumFeatures())

	factory, err := learnerFactory(cfg.Learner.Kind)
	if err != nil {
		log.Fatal(err)
	}
	params := learners.Config{
		HiddenSizes:  cfg.Learner.HiddenSizes,
		LearningRate: cfg.Learner.LearningRate,
		Epochs:       cfg.Learner.Epochs,
		BatchSize:    cfg.Learner.BatchSize,
		Seed:         cfg.Harness.Seed,
		K:            cfg.Learner.K,
	}

	harness, err := crosspred.New(data, factory, params, crosspred.Config{
		NFold:   cfg.Harness.NFold,
		Seed:    cfg.Harness.Seed,
		Verbose: cfg.Harness.Verbose,
		Workers: cfg.Harness.Workers,
	})
	if err != nil {
		log.Fatalf("failed to construct harness: %v", err)
	}

	crossPreds, err := harness.Run()
	if err != nil {
		log.Fatalf("cross prediction failed: %v", err)
	}
	cheatPreds, err := harness.Cheat()
	if err != nil {
		log.Fatalf("cheat prediction failed: %v", err)
	}

	if *outPath != "" {
		if err := writePredictions(*outPath, crossPreds); err != nil {
			log.Fatalf("failed to write predictions: %v", err)
		}
		log.Printf("wrote %d out-of-fold predictions to %s", len(crossPreds), *outPath)
	}
	if *plotPath != "" {
		if err := plotScatter(*plotPath, crossPreds, cheatPreds); err != nil {
			log.Fatalf("failed to write plot: %v", err)
		}
		log.Printf("wrote scatter plot to %s", *plotPath)
	}
}

func loadConfig(path string) *config {
	cfg := &config{}
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read config %s: %v", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Fatalf("failed to parse config %s: %v", path, err)
	}
	return cfg
}

// runStages executes the requested pipeline stages in dependency order. File
// names under workdir are fixed so stages compose across invocations.
func runStages(stages, rawPath, workdir string, seed int64) error {
	want := make(map[string]bool)
	all := stages == "all"
	for _, s := range strings.Split(stages, ",") {
		want[strings.TrimSpace(s)] = true
	}

	tokenized := filepath.Join(workdir, "tokenized.json")
	reduced := filepath.Join(workdir, "reduced.json")
	embeddingCSV := filepath.Join(workdir, "word_vectors.csv")

	type stage struct {
		name string
		run  func() error
	}
	plan := []stage{
		{"tokenize", func() error { return pipeline.Tokenize(rawPath, tokenized) }},
		{"token-features", func() error {
			return pipeline.TokenFeatures(tokenized, filepath.Join(workdir, "token_features.csv"))
		}},
		{"reduce", func() error { return pipeline.ReduceDocsToSmallerVocab(tokenized, reduced, "") }},
		{"word2vec", func() error { return pipeline.FitWordVectors(reduced, embeddingCSV, seed) }},
		{"essay-features", func() error {
			return pipeline.EssayFeaturesFromWordVectors(embeddingCSV, reduced, filepath.Join(workdir, "essay_features.csv"))
		}},
		{"doc2vec", func() error {
			return pipeline.FitDocVectors(tokenized,
				filepath.Join(workdir, "docvec_features.csv"),
				filepath.Join(workdir, "doc2vec.gob"), seed)
		}},
	}
	for _, s := range plan {
		if !all && !want[s.name] {
			continue
		}
		log.Printf("running stage %s", s.name)
		if err := s.run(); err != nil {
			return fmt.Errorf("stage %s: %w", s.name, err)
		}
	}
	return nil
}

// buildDataset joins the feature CSVs matching glob with the labels and
// essay sets from the raw table.
func buildDataset(rawPath, glob string) (*datasets.Dataset, error) {
	raw, err := datasets.ReadRawEssays(rawPath)
	if err != nil {
		return nil, err
	}
	x, _, err := datasets.ReadFeatureGlob(glob)
	if err != nil {
		return nil, err
	}
	if len(x) != raw.Len() {
		return nil, fmt.Errorf("feature tables have %d rows, raw table has %d", len(x), raw.Len())
	}
	return raw.Labeled(x)
}

func learnerFactory(kind string) (learners.Factory, error) {
	switch kind {
	case "mlp":
		return learners.NewMLP, nil
	case "knn":
		return learners.NewKNN, nil
	case "mean":
		return learners.NewMean, nil
	}
	return nil, fmt.Errorf("unknown learner %q (want mlp, knn or mean)", kind)
}

func writePredictions(path string, preds []crosspred.Prediction) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"pred", "truth", "idx", "essay_set"}); err != nil {
		return err
	}
	for _, p := range preds {
		record := []string{
			strconv.FormatFloat(float64(p.Pred), 'g', -1, 32),
			strconv.FormatFloat(float64(p.Truth), 'g', -1, 32),
			strconv.Itoa(p.Idx),
			strconv.Itoa(p.EssaySet),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// plotScatter draws pred vs truth for both runs. The cheat points hug the
// diagonal much more tightly than the out-of-fold points when the learner is
// overfitting; keeping both on one plot makes that obvious.
func plotScatter(path string, crossPreds, cheatPreds []crosspred.Prediction) error {
	p := plot.New()
	p.Title.Text = "out-of-fold vs in-sample predictions"
	p.X.Label.Text = "true score"
	p.Y.Label.Text = "predicted score"

	toXYs := func(preds []crosspred.Prediction) plotter.XYs {
		xys := make(plotter.XYs, len(preds))
		for i, pr := range preds {
			xys[i].X = float64(pr.Truth)
			xys[i].Y = float64(pr.Pred)
		}
		return xys
	}

	cross, err := plotter.NewScatter(toXYs(crossPreds))
	if err != nil {
		return err
	}
	cross.GlyphStyle.Color = color.RGBA{R: 217, G: 72, B: 54, A: 255}
	cross.GlyphStyle.Radius = vg.Points(1.5)

	cheat, err := plotter.NewScatter(toXYs(cheatPreds))
	if err != nil {
		return err
	}
	cheat.GlyphStyle.Color = color.RGBA{R: 57, G: 106, B: 177, A: 255}
	cheat.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(cross, cheat)
	p.Legend.Add("cross_predict", cross)
	p.Legend.Add("cheat (in-sample)", cheat)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
